package gui

import (
	"evilground/src/base"
	"evilground/src/ground"
	"evilground/src/ui/gui/gbase"
	"evilground/src/ui/gui/ghelper"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Surface keeps the last rendered view and paints it on every ebiten Draw.
// Translate only moves pieces inside that view.
type Surface struct {
	view   *ground.View
	assets *ghelper.GUIAssetsWorker
	theme  gbase.Palette

	border     *ebiten.Image
	borderSize int
}

func NewSurface(assets *ghelper.GUIAssetsWorker, theme gbase.Palette) *Surface {
	return &Surface{assets: assets, theme: theme}
}

func (s *Surface) Render(v *ground.View) error {
	s.view = v
	return nil
}

func (s *Surface) Translate(k base.Key, offset base.Vector) error {
	if s.view == nil || !k.IsValid() {
		return ground.ErrMissingSquare
	}
	sq := &s.view.Squares[k]
	if sq.Piece == nil {
		return ground.ErrMissingSquare
	}
	sq.Piece.Offset = offset
	return nil
}

func (s *Surface) SetTheme(p gbase.Palette) {
	s.theme = p
	s.border = nil
}

func (s *Surface) Draw(screen *ebiten.Image) error {
	screen.Fill(s.theme.Bg)
	v := s.view
	if v == nil || v.Bounds.Width <= 0 {
		return nil
	}
	b := v.Bounds
	size := int(b.SquareWidth())

	if s.border == nil || s.borderSize != int(b.Width) {
		pad := 6
		s.border = ghelper.RenderRoundedRect(int(b.Width)+2*pad, int(b.Height)+2*pad, 8, s.theme.Border, s.theme.Border, 1)
		s.borderSize = int(b.Width)
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(b.Left-6, b.Top-6)
	screen.DrawImage(s.border, op)

	// squares and highlights
	for _, sq := range v.Squares {
		r := base.SquareToPixel(sq.Key, b, v.Orientation)
		pos := sq.Key.Pos()
		bg := s.theme.Dark
		if (pos.File+pos.Rank)%2 == 1 {
			bg = s.theme.Light
		}
		ghelper.DrawRect(screen, r.X, r.Y, r.W, r.H, bg)
		for _, hl := range []struct {
			flag ground.SquareFlags
			c    color.RGBA
		}{
			{ground.FlagLastMove, s.theme.LastMove},
			{ground.FlagSelected, s.theme.Selected},
			{ground.FlagCurrentPremove, s.theme.Premove},
			{ground.FlagCheck, s.theme.Check},
			{ground.FlagHover, s.theme.Hover},
		} {
			if sq.Flags.Has(hl.flag) {
				ghelper.DrawRect(screen, r.X, r.Y, r.W, r.H, hl.c)
			}
		}
	}

	// captured pieces fade out under the moving ones
	for k, p := range v.Fadings {
		if err := s.drawPiece(screen, v, k, p, base.Vector{}, 0.5, size); err != nil {
			return err
		}
	}
	if v.Ghost != nil {
		if err := s.drawPiece(screen, v, v.Ghost.Key, v.Ghost.Piece, base.Vector{}, 0.3, size); err != nil {
			return err
		}
	}

	var moving, dragging []ground.SquareView
	for _, sq := range v.Squares {
		if sq.Piece == nil {
			continue
		}
		switch {
		case sq.Piece.Dragging:
			dragging = append(dragging, sq)
		case !sq.Piece.Offset.IsZero():
			moving = append(moving, sq)
		default:
			if err := s.drawPiece(screen, v, sq.Key, sq.Piece.Piece, base.Vector{}, 1, size); err != nil {
				return err
			}
		}
	}

	for _, sq := range v.Squares {
		var c color.RGBA
		switch {
		case sq.Flags.Has(ground.FlagMoveDest):
			c = s.theme.MoveDest
		case sq.Flags.Has(ground.FlagPremoveDest):
			c = s.theme.PremoveDest
		default:
			continue
		}
		r := base.SquareToPixel(sq.Key, b, v.Orientation)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(r.X, r.Y)
		screen.DrawImage(s.assets.Dot(size, c, sq.Piece != nil), op)
	}

	// pieces in flight are painted last, the dragged one on top of all
	for _, sq := range append(moving, dragging...) {
		if err := s.drawPiece(screen, v, sq.Key, sq.Piece.Piece, sq.Piece.Offset, 1, size); err != nil {
			return err
		}
	}
	return nil
}

func (s *Surface) drawPiece(screen *ebiten.Image, v *ground.View, k base.Key, p base.Piece, offset base.Vector, alpha float32, size int) error {
	img, err := s.assets.Piece(p, size)
	if err != nil {
		return err
	}
	r := base.SquareToPixel(k, v.Bounds, v.Orientation)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(r.X+offset.X, r.Y+offset.Y)
	op.ColorScale.ScaleAlpha(alpha)
	screen.DrawImage(img, op)
	return nil
}
