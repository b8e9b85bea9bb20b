package gbase

import (
	"errors"
	"image/color"
)

// ---- Exit Call ----

var ErrExit = errors.New("exit request")

// --- UI constants ---

const (
	BoardMargin = 24
	DebugH      = 18
)

// ---- Styles (palettes) ----

type Palette struct {
	Bg          color.RGBA
	Light       color.RGBA
	Dark        color.RGBA
	Border      color.RGBA
	Selected    color.RGBA
	LastMove    color.RGBA
	Check       color.RGBA
	MoveDest    color.RGBA
	PremoveDest color.RGBA
	Premove     color.RGBA
	Hover       color.RGBA
	Text        color.RGBA
}

func (p Palette) String() string {
	switch p {
	case LightPalette:
		return "light"
	case DarkPalette:
		return "dark"
	default:
	}
	return ""
}

func PaletteFromString(p string) Palette {
	switch p {
	case "light":
		return LightPalette
	case "dark":
		return DarkPalette
	default:
	}
	return LightPalette
}

var LightPalette = Palette{
	Bg:          color.RGBA{0xf7, 0xf7, 0xf7, 0xff},
	Light:       color.RGBA{0xf0, 0xd9, 0xb5, 0xff},
	Dark:        color.RGBA{0xb5, 0x88, 0x63, 0xff},
	Border:      color.RGBA{0x88, 0x88, 0x88, 0xff},
	Selected:    color.RGBA{0x14, 0x55, 0x1e, 0x80},
	LastMove:    color.RGBA{0x9b, 0xc7, 0x00, 0x69},
	Check:       color.RGBA{0xff, 0x00, 0x00, 0x90},
	MoveDest:    color.RGBA{0x14, 0x55, 0x1e, 0x80},
	PremoveDest: color.RGBA{0x14, 0x1e, 0x55, 0x80},
	Premove:     color.RGBA{0x14, 0x1e, 0x55, 0x66},
	Hover:       color.RGBA{0x14, 0x55, 0x1e, 0x4c},
	Text:        color.RGBA{0x22, 0x22, 0x22, 0xff},
}

var DarkPalette = Palette{
	Bg:          color.RGBA{0x12, 0x12, 0x12, 0xff},
	Light:       color.RGBA{0xde, 0xe3, 0xe6, 0xff},
	Dark:        color.RGBA{0x8c, 0xa2, 0xad, 0xff},
	Border:      color.RGBA{0xdd, 0xdd, 0xdd, 0xff},
	Selected:    color.RGBA{0x2a, 0xa1, 0xd1, 0x80},
	LastMove:    color.RGBA{0x2a, 0xa1, 0xd1, 0x50},
	Check:       color.RGBA{0xff, 0x30, 0x30, 0x90},
	MoveDest:    color.RGBA{0x2a, 0xa1, 0xd1, 0x90},
	PremoveDest: color.RGBA{0xa1, 0x2a, 0xd1, 0x90},
	Premove:     color.RGBA{0xa1, 0x2a, 0xd1, 0x60},
	Hover:       color.RGBA{0x2a, 0xa1, 0xd1, 0x40},
	Text:        color.RGBA{0xee, 0xee, 0xee, 0xff},
}
