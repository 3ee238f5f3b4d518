package doupinpin

import (
	"image"

	"github.com/Yesmaniamaurora/DouPinPinv2/imageutil"
)

// procScale is the supersampling factor of the working buffer: each
// pattern cell is quantized from a procScale x procScale pixel block.
const procScale = 4

// aspectCrop returns the centered crop of a srcW x srcH image that
// matches the target aspect ratio. A source wider than the target loses
// its left and right edges; a taller one loses top and bottom.
func aspectCrop(srcW, srcH, targetW, targetH int) image.Rectangle {
	srcAspect := float64(srcW) / float64(srcH)
	targetAspect := float64(targetW) / float64(targetH)

	cropW, cropH := srcW, srcH
	if srcAspect > targetAspect {
		cropW = int(float64(srcH) * targetAspect)
	} else {
		cropH = int(float64(srcW) / targetAspect)
	}
	if cropW < 1 {
		cropW = 1
	}
	if cropH < 1 {
		cropH = 1
	}

	x0 := (srcW - cropW) / 2
	y0 := (srcH - cropH) / 2
	return image.Rect(x0, y0, x0+cropW, y0+cropH)
}

// prepare crops the source to the pattern's aspect ratio and resamples
// the crop into the supersampled working buffer, optionally sharpening
// the result.
func prepare(img image.Image, targetW, targetH int, sharpen bool) *imageutil.RGBAImage {
	src := imageutil.RGBAImageFromImage(img)
	crop := aspectCrop(src.Width(), src.Height(), targetW, targetH)
	buf := imageutil.ResizeRegion(src, crop, targetW*procScale, targetH*procScale, imageutil.InterpolationArea)
	if sharpen {
		buf = imageutil.Sharpen(buf)
	}
	return buf
}
