package doupinpin

import (
	"fmt"
	"math"

	"github.com/Yesmaniamaurora/DouPinPinv2/imageutil"
)

// defaultCellColor fills blocks that contain no usable pixels.
var defaultCellColor = imageutil.RGB{R: 255, G: 255, B: 255}

// cellSample is one quantized block before palette resolution.
type cellSample struct {
	rgb        imageutil.RGB
	background bool
}

// quantizer reduces the working buffer to one sample per pattern cell.
type quantizer struct {
	buf        *imageutil.RGBAImage
	mask       []bool // nil when background removal is off
	cols, rows int
	blockW     float64
	blockH     float64
	brightness float64 // per-channel offset, already multiplied out
}

func newQuantizer(buf *imageutil.RGBAImage, mask []bool, cols, rows, brightness int) *quantizer {
	return &quantizer{
		buf:        buf,
		mask:       mask,
		cols:       cols,
		rows:       rows,
		blockW:     float64(buf.Width()) / float64(cols),
		blockH:     float64(buf.Height()) / float64(rows),
		brightness: float64(brightness) * 15,
	}
}

// quantize runs the selected strategy over every block.
func (q *quantizer) quantize(algorithm Algorithm) ([][]cellSample, error) {
	switch algorithm {
	case AlgorithmNearest:
		return q.nearest(), nil
	case AlgorithmAverage:
		return q.average(), nil
	case AlgorithmGradient:
		return q.gradientEnhanced(), nil
	case AlgorithmDominant:
		return q.dominant(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algorithm)
	}
}

func (q *quantizer) newGrid() [][]cellSample {
	grid := make([][]cellSample, q.rows)
	for i := range grid {
		grid[i] = make([]cellSample, q.cols)
	}
	return grid
}

// blockBounds returns the pixel range of block index i along one axis:
// [floor(i*size), ceil((i+1)*size)) clamped to limit. Edges are real
// valued, so adjacent blocks may share a pixel column.
func blockBounds(i int, size float64, limit int) (int, int) {
	lo := int(math.Floor(float64(i) * size))
	hi := int(math.Ceil(float64(i+1) * size))
	if lo < 0 {
		lo = 0
	}
	if hi > limit {
		hi = limit
	}
	return lo, hi
}

func (q *quantizer) masked(x, y int) bool {
	return q.mask != nil && q.mask[y*q.buf.Width()+x]
}

// sample returns the brightness-adjusted color at (x, y).
func (q *quantizer) sample(x, y int) imageutil.RGB {
	c := q.buf.RGBAAt(x, y)
	return imageutil.RGB{
		R: clampChannel(float64(c.R) + q.brightness),
		G: clampChannel(float64(c.G) + q.brightness),
		B: clampChannel(float64(c.B) + q.brightness),
	}
}

func clampChannel(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// nearest samples the pixel at each block's geometric center. The cell
// is background exactly when that pixel is masked.
func (q *quantizer) nearest() [][]cellSample {
	grid := q.newGrid()
	for by := range grid {
		for bx := range grid[by] {
			x0, x1 := blockBounds(bx, q.blockW, q.buf.Width())
			y0, y1 := blockBounds(by, q.blockH, q.buf.Height())
			if x0 >= x1 || y0 >= y1 {
				grid[by][bx] = cellSample{rgb: defaultCellColor}
				continue
			}
			cx := x0 + (x1-x0)/2
			cy := y0 + (y1-y0)/2
			grid[by][bx] = cellSample{
				rgb:        q.sample(cx, cy),
				background: q.masked(cx, cy),
			}
		}
	}
	return grid
}

// average takes the mean of the brightness-adjusted colors in each
// block. The cell is background when more than half its pixels are
// masked.
func (q *quantizer) average() [][]cellSample {
	grid := q.newGrid()
	for by := range grid {
		for bx := range grid[by] {
			grid[by][bx] = q.averageBlock(bx, by)
		}
	}
	return grid
}

func (q *quantizer) averageBlock(bx, by int) cellSample {
	x0, x1 := blockBounds(bx, q.blockW, q.buf.Width())
	y0, y1 := blockBounds(by, q.blockH, q.buf.Height())
	total := (x1 - x0) * (y1 - y0)
	if total <= 0 {
		return cellSample{rgb: defaultCellColor}
	}

	var sumR, sumG, sumB float64
	maskedCount := 0
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c := q.sample(x, y)
			sumR += float64(c.R)
			sumG += float64(c.G)
			sumB += float64(c.B)
			if q.masked(x, y) {
				maskedCount++
			}
		}
	}

	n := float64(total)
	return cellSample{
		rgb: imageutil.RGB{
			R: clampChannel(sumR / n),
			G: clampChannel(sumG / n),
			B: clampChannel(sumB / n),
		},
		background: float64(maskedCount)/n > 0.5,
	}
}

// dominant pools each block into RGB buckets rounded to the nearest 10
// per channel and keeps the fullest bucket. Pixels with alpha below 10
// count toward the background ratio and join no bucket; masked pixels
// count toward the ratio but still vote for a bucket.
func (q *quantizer) dominant() [][]cellSample {
	grid := q.newGrid()
	for by := range grid {
		for bx := range grid[by] {
			grid[by][bx] = q.dominantBlock(bx, by)
		}
	}
	return grid
}

func (q *quantizer) dominantBlock(bx, by int) cellSample {
	x0, x1 := blockBounds(bx, q.blockW, q.buf.Width())
	y0, y1 := blockBounds(by, q.blockH, q.buf.Height())
	total := (x1 - x0) * (y1 - y0)
	if total <= 0 {
		return cellSample{rgb: defaultCellColor}
	}

	counts := make(map[uint32]int)
	backgroundish := 0
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if q.buf.RGBAAt(x, y).A < 10 {
				backgroundish++
				continue
			}
			if q.masked(x, y) {
				backgroundish++
			}
			counts[packBucket(q.sample(x, y))]++
		}
	}

	// Fullest bucket wins; equal counts fall to the lowest packed key
	// so the choice never depends on map order.
	var bestKey uint32
	bestCount := 0
	for key, n := range counts {
		if n > bestCount || (n == bestCount && key < bestKey) {
			bestKey = key
			bestCount = n
		}
	}

	rgb := defaultCellColor
	if bestCount > 0 {
		rgb = unpackBucket(bestKey)
	}
	return cellSample{
		rgb:        rgb,
		background: float64(backgroundish)/float64(total) > 0.5,
	}
}

// packBucket rounds each channel to the nearest 10 and packs the
// result into one key. Rounded channels reach 260, so each gets 9 bits.
func packBucket(c imageutil.RGB) uint32 {
	r := uint32((int(c.R) + 5) / 10 * 10)
	g := uint32((int(c.G) + 5) / 10 * 10)
	b := uint32((int(c.B) + 5) / 10 * 10)
	return r<<18 | g<<9 | b
}

func unpackBucket(k uint32) imageutil.RGB {
	return imageutil.RGB{
		R: clampChannel(float64(k >> 18)),
		G: clampChannel(float64((k >> 9) & 0x1FF)),
		B: clampChannel(float64(k & 0x1FF)),
	}
}

// gradientEnhanced post-processes the averaged grid: cells that differ
// enough from their neighborhood get pushed away from the neighborhood
// mean, which keeps outlines readable at bead resolution.
func (q *quantizer) gradientEnhanced() [][]cellSample {
	base := q.average()
	grid := q.newGrid()
	for by := range base {
		for bx := range base[by] {
			grid[by][bx] = enhanceCell(base, bx, by)
		}
	}
	return grid
}

// enhanceCell boosts one cell of the averaged grid. The neighborhood
// difference is the mean absolute per-channel distance to the existing
// 4-connected neighbors; below 15 the cell passes through unchanged.
// Missing neighbors at the grid edge contribute the center's own value
// to the boost term. Background classification carries over.
func enhanceCell(base [][]cellSample, bx, by int) cellSample {
	cell := base[by][bx]

	var sumR, sumG, sumB float64
	var diff float64
	neighbors := 0
	for _, off := range gridOffsets {
		nx, ny := bx+off[0], by+off[1]
		if ny < 0 || ny >= len(base) || nx < 0 || nx >= len(base[ny]) {
			continue
		}
		n := base[ny][nx].rgb
		neighbors++
		sumR += float64(n.R)
		sumG += float64(n.G)
		sumB += float64(n.B)
		diff += math.Abs(float64(cell.rgb.R) - float64(n.R))
		diff += math.Abs(float64(cell.rgb.G) - float64(n.G))
		diff += math.Abs(float64(cell.rgb.B) - float64(n.B))
	}
	if neighbors == 0 || diff/float64(neighbors*3) < 15 {
		return cell
	}

	missing := float64(len(gridOffsets) - neighbors)
	cr := float64(cell.rgb.R)
	cg := float64(cell.rgb.G)
	cb := float64(cell.rgb.B)
	return cellSample{
		rgb: imageutil.RGB{
			R: clampChannel(2*cr - 0.1*sumR - 0.1*missing*cr),
			G: clampChannel(2*cg - 0.1*sumG - 0.1*missing*cg),
			B: clampChannel(2*cb - 0.1*sumB - 0.1*missing*cb),
		},
		background: cell.background,
	}
}
