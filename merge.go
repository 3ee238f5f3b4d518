package doupinpin

import "image"

// MergeRegion flood-fills from the seed cell across 4-connected
// neighbors whose color stays within threshold (CIE76) of the seed's
// color, then rewrites the whole region to its most frequent color.
// Background cells never join a region. An out-of-range seed, a
// background seed, or a threshold <= 0 leaves the pattern as it was.
//
// The input grid is never modified; the result is a fresh grid either
// way.
func MergeRegion(grid Grid, row, col int, threshold float64) Grid {
	out := grid.Clone()
	mergeAt(out, row, col, threshold, nil)
	return out
}

// AutoMerge runs the seeded merge over every cell in row-major order,
// visiting each connected region once per sweep, and re-sweeps until a
// full sweep changes nothing. A threshold <= 0 disables merging. The
// input grid is never modified.
func AutoMerge(grid Grid, threshold float64) Grid {
	out := grid.Clone()
	if threshold <= 0 {
		return out
	}

	h, w := out.Height(), out.Width()
	for {
		changed := false
		done := make([]bool, w*h)
		for row := 0; row < h; row++ {
			for col := 0; col < w; col++ {
				if done[row*w+col] || out[row][col].Background {
					continue
				}
				if mergeAt(out, row, col, threshold, done) {
					changed = true
				}
			}
		}
		if !changed {
			return out
		}
	}
}

// mergeAt merges the region seeded at (row, col) in place. When done is
// non-nil the region's cells are marked in it, so a sweep skips cells
// already settled. Reports whether any cell changed color.
func mergeAt(grid Grid, row, col int, threshold float64, done []bool) bool {
	h := grid.Height()
	w := grid.Width()
	if threshold <= 0 || row < 0 || row >= h || col < 0 || col >= w {
		return false
	}
	seed := grid[row][col]
	if seed.Background {
		return false
	}

	accept := func(x, y int) bool {
		cell := grid[y][x]
		return !cell.Background && DeltaE(cell.Lab, seed.Lab) < threshold
	}
	cells, _ := floodFill(w, h, []image.Point{{X: col, Y: row}}, accept)

	best := regionColor(grid, cells)

	changed := false
	for _, p := range cells {
		if done != nil {
			done[p.Y*w+p.X] = true
		}
		if grid[p.Y][p.X].Code != best.Code {
			grid[p.Y][p.X] = best
			changed = true
		}
	}
	return changed
}

// regionColor picks the representative for a merged region: the most
// frequent color, with ties going to the color discovered first in the
// fill. cells must be non-empty.
func regionColor(grid Grid, cells []image.Point) ColorInfo {
	type tally struct {
		count int
		order int
		color ColorInfo
	}
	counts := make(map[string]*tally)
	for i, p := range cells {
		c := grid[p.Y][p.X]
		if t, ok := counts[c.Code]; ok {
			t.count++
			continue
		}
		counts[c.Code] = &tally{count: 1, order: i, color: c}
	}

	var best *tally
	for _, t := range counts {
		if best == nil || t.count > best.count ||
			(t.count == best.count && t.order < best.order) {
			best = t
		}
	}
	return best.color
}
