package doupinpin

import (
	"image"
	"math"

	"github.com/Yesmaniamaurora/DouPinPinv2/imageutil"
)

// backgroundMask flood-fills near-white pixels reachable from the
// working buffer's corners and returns the mask, indexed y*w+x.
//
// A pixel counts as near-white when its Euclidean RGB distance to pure
// white is below 2*tolerance (tolerance clamps to [0, 100]). Because
// the fill only grows inward from the border, enclosed near-white
// regions stay unmasked: a white shirt inside the motif keeps its
// beads while the white backdrop around the motif is dropped.
func backgroundMask(buf *imageutil.RGBAImage, tolerance float64) []bool {
	w, h := buf.Width(), buf.Height()
	if tolerance < 0 {
		tolerance = 0
	} else if tolerance > 100 {
		tolerance = 100
	}
	limit := 2 * tolerance

	nearWhite := func(x, y int) bool {
		c := buf.RGBAAt(x, y)
		dr := 255 - float64(c.R)
		dg := 255 - float64(c.G)
		db := 255 - float64(c.B)
		return math.Sqrt(dr*dr+dg*dg+db*db) < limit
	}

	corners := []image.Point{{0, 0}, {w - 1, 0}, {0, h - 1}, {w - 1, h - 1}}
	_, mask := floodFill(w, h, corners, nearWhite)
	return mask
}
