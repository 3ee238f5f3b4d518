package doupinpin

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/Yesmaniamaurora/DouPinPinv2/imageutil"
)

// Lab is a color in CIELAB under the D65 white point, on the classic
// scale: L* in [0, 100], a* and b* roughly in [-128, 127].
type Lab struct {
	L, A, B float64
}

// RGBToLab converts an 8-bit sRGB color to CIELAB. go-colorful carries
// the sRGB companding and D65 conversion; its unit-scaled channels are
// multiplied back to the classic ranges so that white lands at L* = 100.
func RGBToLab(c imageutil.RGB) Lab {
	col := colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
	l, a, b := col.Lab()
	return Lab{L: l * 100, A: a * 100, B: b * 100}
}

// DeltaE returns the CIE76 color difference, the Euclidean distance
// between two Lab colors. Roughly: below 2 is imperceptible, above 10
// reads as a different color.
func DeltaE(a, b Lab) float64 {
	dl := a.L - b.L
	da := a.A - b.A
	db := a.B - b.B
	return math.Sqrt(dl*dl + da*da + db*db)
}
