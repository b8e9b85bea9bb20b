package ghelper

import (
	"image/color"

	"github.com/fogleman/gg"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

func RenderRoundedRect(w, h, radius int, fill color.RGBA, stroke color.RGBA, strokeW float64) *ebiten.Image {
	// create a context with alpha and draw rounded rectangle using gg (anti-aliased)
	dc := gg.NewContext(w, h)
	dc.SetRGBA255(int(fill.R), int(fill.G), int(fill.B), int(fill.A))
	dc.DrawRoundedRectangle(0, 0, float64(w), float64(h), float64(radius))
	dc.FillPreserve()
	dc.SetRGBA255(int(stroke.R), int(stroke.G), int(stroke.B), int(stroke.A))
	dc.SetLineWidth(strokeW)
	dc.Stroke()
	return ebiten.NewImageFromImage(dc.Image())
}

// RenderDot is a move destination marker: a filled dot on an empty square, a ring on an occupied one.
func RenderDot(size int, c color.RGBA, ring bool) *ebiten.Image {
	dc := gg.NewContext(size, size)
	dc.SetRGBA255(int(c.R), int(c.G), int(c.B), int(c.A))
	half := float64(size) / 2
	if ring {
		dc.SetLineWidth(float64(size) / 12)
		dc.DrawCircle(half, half, half-float64(size)/24)
		dc.Stroke()
	} else {
		dc.DrawCircle(half, half, float64(size)/6)
		dc.Fill()
	}
	return ebiten.NewImageFromImage(dc.Image())
}

func DrawRect(screen *ebiten.Image, x, y, w, h float64, c color.Color) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), c, false)
}

func DrawRectStroke(screen *ebiten.Image, x, y, w, h, thickness float64, c color.Color) {
	if screen == nil || w <= 0 || h <= 0 || thickness <= 0 {
		return
	}
	vector.StrokeRect(screen, float32(x+thickness/2), float32(y+thickness/2),
		float32(w-thickness), float32(h-thickness), float32(thickness), c, false)
}
