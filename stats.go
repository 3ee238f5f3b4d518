package doupinpin

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/Yesmaniamaurora/DouPinPinv2/imageutil"
)

// BeadCount is one line of a pattern's bill of materials.
type BeadCount struct {
	Code  string
	RGB   imageutil.RGB
	Count int
}

// Tally counts the beads per code, most used first; equal counts order
// by code. Background cells are not beads and are not counted.
func (g Grid) Tally() []BeadCount {
	index := make(map[string]int)
	var out []BeadCount
	for _, row := range g {
		for _, cell := range row {
			if cell.Background {
				continue
			}
			i, ok := index[cell.Code]
			if !ok {
				i = len(out)
				index[cell.Code] = i
				out = append(out, BeadCount{Code: cell.Code, RGB: cell.RGB})
			}
			out[i].Count++
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Code < out[j].Code
	})
	return out
}

// Beads returns the number of non-background cells.
func (g Grid) Beads() int {
	n := 0
	for _, row := range g {
		for _, cell := range row {
			if !cell.Background {
				n++
			}
		}
	}
	return n
}

// SuggestMergeThreshold proposes an AutoMerge threshold from the
// pattern itself: the first quartile of the deltaE values between
// 4-adjacent non-background cells holding different codes. Merging at
// the suggestion collapses roughly the most similar quarter of those
// seams. Returns 0 when no two adjacent cells differ.
func SuggestMergeThreshold(g Grid) float64 {
	var diffs []float64
	edge := func(a, b ColorInfo) {
		if a.Background || b.Background || a.Code == b.Code {
			return
		}
		diffs = append(diffs, DeltaE(a.Lab, b.Lab))
	}
	for y, row := range g {
		for x, cell := range row {
			if x+1 < len(row) {
				edge(cell, row[x+1])
			}
			if y+1 < len(g) && x < len(g[y+1]) {
				edge(cell, g[y+1][x])
			}
		}
	}
	if len(diffs) == 0 {
		return 0
	}
	sort.Float64s(diffs)
	return stat.Quantile(0.25, stat.Empirical, diffs, nil)
}
