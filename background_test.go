package doupinpin

import (
	"testing"

	"github.com/Yesmaniamaurora/DouPinPinv2/imageutil"
)

var (
	testWhite = imageutil.RGB{R: 255, G: 255, B: 255}
	testRed   = imageutil.RGB{R: 200, G: 0, B: 0}
)

func TestBackgroundMaskFramed(t *testing.T) {
	t.Parallel()

	// White frame floods in from the corners; the red center survives
	img := imageutil.CreateFramedImage(40, 40, 8, testWhite, testRed)
	mask := backgroundMask(img, 30)

	w := img.Width()
	if !mask[0] {
		t.Error("Corner should be masked")
	}
	if !mask[0*w+20] {
		t.Error("Top edge should be masked")
	}
	if mask[20*w+20] {
		t.Error("Center should not be masked")
	}
}

func TestBackgroundMaskEnclosedWhiteStays(t *testing.T) {
	t.Parallel()

	// White border, red ring, white center: the enclosed white cannot
	// be reached from the corners
	img := imageutil.CreateBullseyeImage(60, 60, []imageutil.RGB{testWhite, testRed, testWhite})
	mask := backgroundMask(img, 30)

	w := img.Width()
	if !mask[0] {
		t.Error("Border white should be masked")
	}
	if mask[30*w+30] {
		t.Error("Enclosed white should stay unmasked")
	}
}

func TestBackgroundMaskZeroTolerance(t *testing.T) {
	t.Parallel()

	img := imageutil.CreateSolidImage(20, 20, testWhite)
	mask := backgroundMask(img, 0)
	for i, m := range mask {
		if m {
			t.Fatalf("Zero tolerance should mask nothing, cell %d masked", i)
		}
	}
}

func TestBackgroundMaskDarkImage(t *testing.T) {
	t.Parallel()

	img := imageutil.CreateSolidImage(20, 20, imageutil.RGB{R: 10, G: 10, B: 10})
	mask := backgroundMask(img, 100)
	for i, m := range mask {
		if m {
			t.Fatalf("Dark image should mask nothing, cell %d masked", i)
		}
	}
}

func TestBackgroundMaskToleranceClamped(t *testing.T) {
	t.Parallel()

	// 150-gray sits inside the limit of a tolerance of 100; anything
	// above 100 must behave identically
	gray := imageutil.RGB{R: 150, G: 150, B: 150}
	img := imageutil.CreateSolidImage(10, 10, gray)

	huge := backgroundMask(img, 100000)
	hundred := backgroundMask(img, 100)
	for i := range huge {
		if huge[i] != hundred[i] {
			t.Fatal("Tolerance above 100 should behave like 100")
		}
	}
	if !hundred[0] {
		t.Error("150-gray should be masked at tolerance 100")
	}
}
