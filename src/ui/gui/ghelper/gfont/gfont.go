package gfont

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

type Fonts struct {
	Normal font.Face
	Bold   font.Face

	bold *opentype.Font
}

// LoadFonts parses the Go fonts bundled with x/image, no files are read.
func LoadFonts() (*Fonts, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, err
	}

	fonts := &Fonts{bold: bold}
	fonts.Normal, err = opentype.NewFace(regular, &opentype.FaceOptions{
		Size:    13,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}

	// for titles
	fonts.Bold, err = opentype.NewFace(bold, &opentype.FaceOptions{
		Size:    16,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	return fonts, nil
}

// PieceFace is the bold face scaled to a square of size pixels.
func (f *Fonts) PieceFace(size int) (font.Face, error) {
	return opentype.NewFace(f.bold, &opentype.FaceOptions{
		Size:    float64(size) * 0.42,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}
