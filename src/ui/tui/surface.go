package tui

import (
	"evilground/src/base"
	"evilground/src/ground"
	"math"

	"github.com/gdamore/tcell/v2"
)

// Square size in terminal cells.
const (
	CellW = 6
	CellH = 3
)

var (
	lightSq    = tcell.NewRGBColor(0xf0, 0xd9, 0xb5)
	darkSq     = tcell.NewRGBColor(0xb5, 0x88, 0x63)
	selectedSq = tcell.NewRGBColor(0x82, 0x97, 0x69)
	lastMoveSq = tcell.NewRGBColor(0xcd, 0xd2, 0x6a)
	checkSq    = tcell.NewRGBColor(0xe0, 0x50, 0x50)
	premoveSq  = tcell.NewRGBColor(0x7a, 0x86, 0xb0)
	hoverSq    = tcell.NewRGBColor(0x9a, 0xb0, 0x80)
	destDot    = tcell.NewRGBColor(0x14, 0x55, 0x1e)
	whitePiece = tcell.NewRGBColor(0xff, 0xff, 0xff)
	blackPiece = tcell.NewRGBColor(0x10, 0x10, 0x10)
	dimPiece   = tcell.NewRGBColor(0x70, 0x70, 0x70)
)

// Surface paints a board view with one character per piece. Pixels are terminal cells.
type Surface struct {
	screen tcell.Screen
	view   *ground.View
}

func NewSurface(s tcell.Screen) *Surface {
	return &Surface{screen: s}
}

// BoardBounds places the board one cell below and three right of the screen corner.
func BoardBounds() base.Bounds {
	return base.Bounds{Left: 3, Top: 1, Width: 8 * CellW, Height: 8 * CellH}
}

func (s *Surface) Render(v *ground.View) error {
	s.view = v
	s.draw()
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
	s.draw()
	return nil
}

func (s *Surface) draw() {
	v := s.view
	if v == nil {
		return
	}
	for _, sq := range v.Squares {
		s.fillSquare(v, sq)
	}
	s.drawLabels(v)

	for k, p := range v.Fadings {
		s.drawPiece(v, k, p, base.Vector{}, dimPiece)
	}
	if v.Ghost != nil {
		s.drawPiece(v, v.Ghost.Key, v.Ghost.Piece, base.Vector{}, dimPiece)
	}
	var moving []ground.SquareView
	for _, sq := range v.Squares {
		if sq.Piece == nil {
			continue
		}
		if !sq.Piece.Offset.IsZero() {
			moving = append(moving, sq)
			continue
		}
		s.drawPiece(v, sq.Key, sq.Piece.Piece, base.Vector{}, pieceColor(sq.Piece.Piece))
	}
	for _, sq := range moving {
		s.drawPiece(v, sq.Key, sq.Piece.Piece, sq.Piece.Offset, pieceColor(sq.Piece.Piece))
	}
}

func (s *Surface) fillSquare(v *ground.View, sq ground.SquareView) {
	r := base.SquareToPixel(sq.Key, v.Bounds, v.Orientation)
	bg := squareColor(sq)
	style := tcell.StyleDefault.Background(bg)
	x0, y0 := int(r.X), int(r.Y)
	for y := y0; y < y0+CellH; y++ {
		for x := x0; x < x0+CellW; x++ {
			s.screen.SetContent(x, y, ' ', nil, style)
		}
	}
	if sq.Flags.Has(ground.FlagMoveDest) || sq.Flags.Has(ground.FlagPremoveDest) {
		s.screen.SetContent(x0+CellW-1, y0+CellH-1, '•', nil, style.Foreground(destDot))
	}
}

func (s *Surface) drawLabels(v *ground.View) {
	b := v.Bounds
	for i := 0; i < 8; i++ {
		file, rank := i+1, 8-i
		if v.Orientation == base.Black {
			file, rank = 8-i, i+1
		}
		x := int(b.Left) + i*CellW + CellW/2
		s.screen.SetContent(x, int(b.Top+b.Height), rune('a'+file-1), nil, tcell.StyleDefault)
		y := int(b.Top) + i*CellH + CellH/2
		s.screen.SetContent(int(b.Left)-2, y, rune('0'+rank), nil, tcell.StyleDefault)
	}
}

func (s *Surface) drawPiece(v *ground.View, k base.Key, p base.Piece, offset base.Vector, fg tcell.Color) {
	r := base.SquareToPixel(k, v.Bounds, v.Orientation)
	x := int(math.Floor(r.X+offset.X)) + CellW/2
	y := int(math.Floor(r.Y+offset.Y)) + CellH/2
	// keep the square color under the piece
	_, _, style, _ := s.screen.GetContent(x, y)
	s.screen.SetContent(x, y, glyph(p), nil, style.Foreground(fg).Bold(true))
}

func squareColor(sq ground.SquareView) tcell.Color {
	switch {
	case sq.Flags.Has(ground.FlagCheck):
		return checkSq
	case sq.Flags.Has(ground.FlagSelected):
		return selectedSq
	case sq.Flags.Has(ground.FlagHover):
		return hoverSq
	case sq.Flags.Has(ground.FlagCurrentPremove):
		return premoveSq
	case sq.Flags.Has(ground.FlagLastMove):
		return lastMoveSq
	}
	pos := sq.Key.Pos()
	if (pos.File+pos.Rank)%2 == 1 {
		return lightSq
	}
	return darkSq
}

func pieceColor(p base.Piece) tcell.Color {
	if p.Color == base.White {
		return whitePiece
	}
	return blackPiece
}

// solid glyphs for both colors, the foreground tells them apart
func glyph(p base.Piece) rune {
	switch p.Role {
	case base.King:
		return '♚'
	case base.Queen:
		return '♛'
	case base.Rook:
		return '♜'
	case base.Bishop:
		return '♝'
	case base.Knight:
		return '♞'
	case base.Pawn:
		return '♟'
	default:
		return '?'
	}
}
