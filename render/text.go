package render

import (
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/Yesmaniamaurora/DouPinPinv2/imageutil"
)

// loadFace returns the face used for labels, coordinates, and legend
// text: the built-in 7x13 bitmap face by default, or a truetype face at
// the given point size when path names a TTF file.
func loadFace(path string, size float64) (font.Face, error) {
	if path == "" {
		return basicfont.Face7x13, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file: %w", err)
	}
	f, err := freetype.ParseFont(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	face := truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	return face, nil
}

// drawString draws s with its baseline starting at (x, y).
func drawString(img *image.RGBA, face font.Face, x, y int, c color.Color, s string) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// textWidth measures s in whole pixels.
func textWidth(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}

// textColor picks black or white text for legibility over c, using
// Rec. 601 luma.
func textColor(c imageutil.RGB) color.Color {
	luma := 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
	if luma > 140 {
		return color.Black
	}
	return color.White
}
