package imageutil

import (
	"image"

	"golang.org/x/image/draw"
)

// Interpolation specifies the resampling filter used when scaling.
type Interpolation int

const (
	// InterpolationArea uses Catmull-Rom, a good default for the
	// strong downscaling this pipeline performs.
	InterpolationArea Interpolation = iota

	// InterpolationLinear uses bilinear interpolation.
	InterpolationLinear

	// InterpolationNearest uses nearest-neighbor interpolation.
	// Fastest but lowest quality.
	InterpolationNearest
)

func scalerFor(interp Interpolation) draw.Scaler {
	switch interp {
	case InterpolationLinear:
		return draw.BiLinear
	case InterpolationNearest:
		return draw.NearestNeighbor
	default:
		return draw.CatmullRom
	}
}

// Resize scales an RGBA image to the specified dimensions using the
// given interpolation method.
func Resize(img *RGBAImage, width, height int, interp Interpolation) *RGBAImage {
	return ResizeRegion(img, img.Bounds(), width, height, interp)
}

// ResizeRegion scales a rectangular region of an RGBA image to the
// specified dimensions. The region is clipped to the image bounds; an
// empty region yields a zeroed destination.
func ResizeRegion(img *RGBAImage, region image.Rectangle, width, height int, interp Interpolation) *RGBAImage {
	dst := NewRGBAImage(width, height)
	region = region.Intersect(img.Bounds())
	if region.Empty() {
		return dst
	}
	scalerFor(interp).Scale(dst.RGBA, dst.Bounds(), img.RGBA, region, draw.Over, nil)
	return dst
}
