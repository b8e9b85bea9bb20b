package ghelper

import (
	"evilground/src/base"
	"evilground/src/ui/gui/ghelper/gfont"
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	whiteFill = color.RGBA{0xfa, 0xfa, 0xfa, 0xff}
	blackFill = color.RGBA{0x2b, 0x2b, 0x2b, 0xff}
)

// GUIAssetsWorker draws piece sprites with gg and keeps them for the current square size.
type GUIAssetsWorker struct {
	fonts     *gfont.Fonts
	size      int
	pieces    map[base.Piece]*ebiten.Image
	dots      map[bool]*ebiten.Image
	dotsColor color.RGBA
	icons     map[int]image.Image
}

func NewGUIAssetsWorker() (*GUIAssetsWorker, error) {
	f, err := gfont.LoadFonts()
	if err != nil {
		return nil, err
	}
	aw := &GUIAssetsWorker{fonts: f, icons: make(map[int]image.Image)}
	for _, size := range []int{16, 32, 48, 60} {
		img, err := aw.renderPiece(base.Piece{Role: base.King, Color: base.White}, size)
		if err != nil {
			return nil, err
		}
		aw.icons[size] = img
	}
	return aw, nil
}

func (aw *GUIAssetsWorker) Fonts() *gfont.Fonts {
	return aw.fonts
}

func (aw *GUIAssetsWorker) IconNative(x int) image.Image {
	return aw.icons[x]
}

// Piece returns the sprite for p on a square of size pixels.
func (aw *GUIAssetsWorker) Piece(p base.Piece, size int) (*ebiten.Image, error) {
	aw.resize(size)
	if img, ok := aw.pieces[p]; ok {
		return img, nil
	}
	img, err := aw.renderPiece(p, size)
	if err != nil {
		return nil, err
	}
	eimg := ebiten.NewImageFromImage(img)
	aw.pieces[p] = eimg
	return eimg, nil
}

// Dot returns the destination marker for the current square size.
func (aw *GUIAssetsWorker) Dot(size int, c color.RGBA, ring bool) *ebiten.Image {
	aw.resize(size)
	if aw.dots == nil || aw.dotsColor != c {
		aw.dots = map[bool]*ebiten.Image{
			false: RenderDot(size, c, false),
			true:  RenderDot(size, c, true),
		}
		aw.dotsColor = c
	}
	return aw.dots[ring]
}

// resize drops every sprite drawn for another square size.
func (aw *GUIAssetsWorker) resize(size int) {
	if size == aw.size && aw.pieces != nil {
		return
	}
	aw.size = size
	aw.pieces = make(map[base.Piece]*ebiten.Image)
	aw.dots = nil
}

func (aw *GUIAssetsWorker) renderPiece(p base.Piece, size int) (image.Image, error) {
	face, err := aw.fonts.PieceFace(size)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	fill, ink := whiteFill, blackFill
	if p.Color == base.Black {
		fill, ink = blackFill, whiteFill
	}
	s := float64(size)
	dc := gg.NewContext(size, size)
	// pawns are smaller, kings and queens get a thicker rim
	r := s * 0.40
	if p.Role == base.Pawn {
		r = s * 0.32
	}
	dc.DrawCircle(s/2, s/2, r)
	dc.SetColor(fill)
	dc.FillPreserve()
	dc.SetColor(ink)
	rim := s / 32
	if p.Role == base.King || p.Role == base.Queen {
		rim = s / 18
	}
	dc.SetLineWidth(rim)
	dc.Stroke()

	dc.SetFontFace(face)
	dc.DrawStringAnchored(string(base.ConvertRuneFromPiece(base.Piece{Role: p.Role, Color: base.White})), s/2, s/2, 0.5, 0.38)
	return dc.Image(), nil
}
