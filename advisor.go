package doupinpin

import (
	"fmt"
	"image"
	"sort"

	"github.com/cenkalti/dominantcolor"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/Yesmaniamaurora/DouPinPinv2/imageutil"
)

// advisorMaxSamples caps how many pixels feed the clusterer; large
// photos are strided down to roughly this many observations.
const advisorMaxSamples = 10000

// RecommendColors clusters the image in Lab space and resolves each
// cluster center to its nearest bead in the brand's palette, heaviest
// cluster first. Duplicate codes collapse, so fewer than n entries may
// come back. Handy for deciding which beads to buy before committing
// to a pattern.
func RecommendColors(img image.Image, store *PaletteStore, brand string, n int) ([]ColorInfo, error) {
	if n < 1 {
		return nil, fmt.Errorf("need at least one color, got %d", n)
	}
	palette, err := store.Palette(brand)
	if err != nil {
		return nil, err
	}

	obs := sampleObservations(img)
	if len(obs) == 0 {
		return nil, fmt.Errorf("no opaque pixels to sample")
	}
	k := n
	if k > len(obs) {
		k = len(obs)
	}

	km := kmeans.New()
	cs, err := km.Partition(obs, k)
	if err != nil {
		return nil, fmt.Errorf("clustering failed: %w", err)
	}
	sort.Slice(cs, func(i, j int) bool {
		return len(cs[i].Observations) > len(cs[j].Observations)
	})

	seen := make(map[string]bool)
	var out []ColorInfo
	for _, c := range cs {
		center := Lab{L: c.Center[0], A: c.Center[1], B: c.Center[2]}
		info := closestIn(palette, center)
		if seen[info.Code] {
			continue
		}
		seen[info.Code] = true
		out = append(out, info)
	}
	return out, nil
}

// DominantBead resolves the image's dominant color to its nearest bead
// in the brand's palette.
func DominantBead(img image.Image, store *PaletteStore, brand string) (ColorInfo, error) {
	if img == nil || img.Bounds().Empty() {
		return ColorInfo{}, fmt.Errorf("no source image")
	}
	c := dominantcolor.Find(img)
	return store.FindClosest(imageutil.RGB{R: c.R, G: c.G, B: c.B}, brand)
}

// sampleObservations collects one Lab observation per sampled pixel,
// striding the image so at most about advisorMaxSamples points feed
// the clusterer. Fully transparent pixels are skipped.
func sampleObservations(img image.Image) clusters.Observations {
	if img == nil {
		return nil
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w < 1 || h < 1 {
		return nil
	}

	step := 1
	for (w/step)*(h/step) > advisorMaxSamples {
		step++
	}

	var obs clusters.Observations
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			c, ok := colorful.MakeColor(img.At(x, y))
			if !ok {
				continue
			}
			l, a, b := c.Lab()
			obs = append(obs, clusters.Coordinates{l * 100, a * 100, b * 100})
		}
	}
	return obs
}
