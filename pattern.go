// Package doupinpin converts raster images into bead patterns: grids of
// cells resolved against a brand's physical bead palette by perceptual
// color distance.
//
// A pattern is produced in stages. The source is center-cropped to the
// pattern's aspect ratio and resampled into a 4x supersampled working
// buffer. Optionally, near-white regions touching the border are
// flood-filled into a background mask. The buffer is then quantized
// block by block under one of four strategies, and every sampled color
// resolves to its nearest bead in CIELAB space. MergeRegion and
// AutoMerge clean up color fragmentation afterwards, and Tally turns a
// finished grid into a bill of materials.
package doupinpin

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/Yesmaniamaurora/DouPinPinv2/imageutil"
)

// Algorithm selects the block quantization strategy.
type Algorithm string

const (
	// AlgorithmNearest samples the center pixel of each block.
	AlgorithmNearest Algorithm = "nearest"

	// AlgorithmAverage averages each block.
	AlgorithmAverage Algorithm = "average"

	// AlgorithmGradient averages each block, then boosts cells that sit
	// on color edges.
	AlgorithmGradient Algorithm = "gradient_enhanced"

	// AlgorithmDominant pools each block into coarse RGB buckets and
	// keeps the fullest one.
	AlgorithmDominant Algorithm = "dominant_pooling"
)

// ErrUnknownAlgorithm is returned for algorithm names outside
// Algorithms.
var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// Algorithms lists the supported strategies in display order.
func Algorithms() []Algorithm {
	return []Algorithm{AlgorithmNearest, AlgorithmAverage, AlgorithmGradient, AlgorithmDominant}
}

func (a Algorithm) valid() bool {
	switch a {
	case AlgorithmNearest, AlgorithmAverage, AlgorithmGradient, AlgorithmDominant:
		return true
	}
	return false
}

// MaxPatternSize is the upper bound on pattern width and height, in
// beads.
const MaxPatternSize = 120

// Grid is a finished bead pattern: rows of resolved cells, indexed
// grid[row][col].
type Grid [][]ColorInfo

// Width returns the number of columns.
func (g Grid) Width() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// Height returns the number of rows.
func (g Grid) Height() int {
	return len(g)
}

// Clone returns a deep copy of the grid.
func (g Grid) Clone() Grid {
	out := make(Grid, len(g))
	for i, row := range g {
		out[i] = make([]ColorInfo, len(row))
		copy(out[i], row)
	}
	return out
}

// Options controls one pattern generation run.
type Options struct {
	// Width and Height are the pattern dimensions in beads, clamped to
	// [1, MaxPatternSize].
	Width  int
	Height int

	// Algorithm selects the quantization strategy.
	Algorithm Algorithm

	// Palette names the bead brand to resolve colors against.
	Palette string

	// Brightness shifts every sampled channel by 15 per step before
	// clamping. Zero leaves the image untouched.
	Brightness int

	// Sharpen runs a mild sharpening kernel over the working buffer
	// before quantization.
	Sharpen bool

	// RemoveBackground masks near-white regions connected to the image
	// border; cells falling in the mask come out flagged Background.
	RemoveBackground bool

	// BackgroundTolerance sets how far from pure white a pixel may be
	// and still count as background, in [0, 100].
	BackgroundTolerance float64
}

// DefaultOptions returns the standard starting point: a 50x50 averaged
// pattern against the mard palette with background removal off.
func DefaultOptions() Options {
	return Options{
		Width:               50,
		Height:              50,
		Algorithm:           AlgorithmAverage,
		Palette:             "mard",
		BackgroundTolerance: 30,
	}
}

// Generator turns images into bead patterns against one palette store.
type Generator struct {
	store *PaletteStore
}

// NewGenerator returns a Generator backed by the given palette store.
func NewGenerator(store *PaletteStore) *Generator {
	return &Generator{store: store}
}

func clampSize(v int) int {
	if v < 1 {
		return 1
	}
	if v > MaxPatternSize {
		return MaxPatternSize
	}
	return v
}

// Generate converts an image into a bead pattern grid.
//
// Unknown palettes and algorithms are errors; out-of-range dimensions
// and tolerances are clamped instead. Degenerate sampling blocks fall
// back to white rather than failing.
func (gen *Generator) Generate(img image.Image, opts Options) (Grid, error) {
	if img == nil {
		return nil, fmt.Errorf("no source image")
	}
	bounds := img.Bounds()
	if bounds.Dx() < 1 || bounds.Dy() < 1 {
		return nil, fmt.Errorf("empty source image (%dx%d)", bounds.Dx(), bounds.Dy())
	}
	if !opts.Algorithm.valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, opts.Algorithm)
	}
	palette, err := gen.store.Palette(opts.Palette)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	width := clampSize(opts.Width)
	height := clampSize(opts.Height)

	buf := prepare(img, width, height, opts.Sharpen)

	var mask []bool
	if opts.RemoveBackground {
		mask = backgroundMask(buf, opts.BackgroundTolerance)
	}

	q := newQuantizer(buf, mask, width, height, opts.Brightness)
	samples, err := q.quantize(opts.Algorithm)
	if err != nil {
		return nil, err
	}

	// Resolve samples to beads, memoizing per distinct color. Blocks
	// repeat colors constantly, so this skips most palette scans.
	grid := make(Grid, height)
	memo := make(map[imageutil.RGB]ColorInfo)
	for row, line := range samples {
		grid[row] = make([]ColorInfo, len(line))
		for col, s := range line {
			info, ok := memo[s.rgb]
			if !ok {
				info = closestIn(palette, RGBToLab(s.rgb))
				memo[s.rgb] = info
			}
			info.Background = s.background
			grid[row][col] = info
		}
	}

	Logf("pattern: %dx%d %s/%s in %v", width, height, opts.Algorithm, opts.Palette,
		time.Since(start).Round(time.Millisecond))
	return grid, nil
}

// BackgroundPreview runs only the crop, resample, and background fill
// stages and returns the mask as a grayscale image (white pixels are
// background). Useful for tuning BackgroundTolerance before committing
// to a pattern.
func (gen *Generator) BackgroundPreview(img image.Image, opts Options) (*imageutil.GrayImage, error) {
	if img == nil {
		return nil, fmt.Errorf("no source image")
	}
	bounds := img.Bounds()
	if bounds.Dx() < 1 || bounds.Dy() < 1 {
		return nil, fmt.Errorf("empty source image (%dx%d)", bounds.Dx(), bounds.Dy())
	}

	width := clampSize(opts.Width)
	height := clampSize(opts.Height)
	buf := prepare(img, width, height, opts.Sharpen)
	mask := backgroundMask(buf, opts.BackgroundTolerance)

	out := imageutil.NewGrayImage(buf.Width(), buf.Height())
	for y := 0; y < buf.Height(); y++ {
		for x := 0; x < buf.Width(); x++ {
			if mask[y*buf.Width()+x] {
				out.SetGrayValue(x, y, 255)
			}
		}
	}
	return out, nil
}
