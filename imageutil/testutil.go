package imageutil

import (
	"image"
	"image/color"
	"math"
)

// CreateSolidImage creates a solid color image.
func CreateSolidImage(width, height int, c RGB) *RGBAImage {
	img := NewRGBAImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGB(x, y, c)
		}
	}
	return img
}

// CreateGradientImage creates a horizontal grayscale gradient.
func CreateGradientImage(width, height int) *RGBAImage {
	img := NewRGBAImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint8(255 * x / (width - 1))
			img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}

// CreateCheckerboardImage creates a black and white checkerboard.
func CreateCheckerboardImage(width, height, squareSize int) *RGBAImage {
	img := NewRGBAImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			isWhite := ((x/squareSize)+(y/squareSize))%2 == 0
			if isWhite {
				img.SetRGBA(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
			} else {
				img.SetRGBA(x, y, color.RGBA{A: 255})
			}
		}
	}
	return img
}

// CreateColorBarsImage creates a color bars test pattern.
func CreateColorBarsImage(width, height int) *RGBAImage {
	img := NewRGBAImage(width, height)
	colors := []RGB{
		{255, 255, 255}, // White
		{255, 255, 0},   // Yellow
		{0, 255, 255},   // Cyan
		{0, 255, 0},     // Green
		{255, 0, 255},   // Magenta
		{255, 0, 0},     // Red
		{0, 0, 255},     // Blue
		{0, 0, 0},       // Black
	}

	barWidth := width / len(colors)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			colorIdx := x / barWidth
			if colorIdx >= len(colors) {
				colorIdx = len(colors) - 1
			}
			img.SetRGB(x, y, colors[colorIdx])
		}
	}
	return img
}

// CreateFramedImage creates a frame of one color around a solid center.
func CreateFramedImage(width, height, margin int, frame, fill RGB) *RGBAImage {
	img := CreateSolidImage(width, height, frame)
	for y := margin; y < height-margin; y++ {
		for x := margin; x < width-margin; x++ {
			img.SetRGB(x, y, fill)
		}
	}
	return img
}

// CreateBullseyeImage creates concentric square rings, outermost color
// first. Each ring is an equal share of the distance to the center;
// leftover interior pixels take the innermost color.
func CreateBullseyeImage(width, height int, rings []RGB) *RGBAImage {
	img := NewRGBAImage(width, height)
	if len(rings) == 0 {
		return img
	}
	step := min(width, height) / (2 * len(rings))
	if step < 1 {
		step = 1
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			d := min(min(x, width-1-x), min(y, height-1-y))
			idx := d / step
			if idx >= len(rings) {
				idx = len(rings) - 1
			}
			img.SetRGB(x, y, rings[idx])
		}
	}
	return img
}

// CreateTransparentRectImage creates a solid image with a fully
// transparent rectangular hole.
func CreateTransparentRectImage(width, height int, fill RGB, hole image.Rectangle) *RGBAImage {
	img := CreateSolidImage(width, height, fill)
	for y := hole.Min.Y; y < hole.Max.Y; y++ {
		for x := hole.Min.X; x < hole.Max.X; x++ {
			img.SetRGBA(x, y, color.RGBA{})
		}
	}
	return img
}

// CalculateMSE calculates the Mean Squared Error between two RGBA images.
func CalculateMSE(img1, img2 *RGBAImage) float64 {
	if img1.Width() != img2.Width() || img1.Height() != img2.Height() {
		return math.MaxFloat64
	}

	width, height := img1.Width(), img1.Height()
	var sumSq float64
	count := float64(width * height * 3) // 3 channels

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c1 := img1.RGBAAt(x, y)
			c2 := img2.RGBAAt(x, y)
			dr := float64(c1.R) - float64(c2.R)
			dg := float64(c1.G) - float64(c2.G)
			db := float64(c1.B) - float64(c2.B)
			sumSq += dr*dr + dg*dg + db*db
		}
	}

	return sumSq / count
}
