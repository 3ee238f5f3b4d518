package doupinpin

import (
	"strings"
	"testing"

	"github.com/Yesmaniamaurora/DouPinPinv2/imageutil"
)

// mergeColors maps the single-letter codes used by grid fixtures to
// colors. 'a' and 'b' sit a small deltaE apart; 'z' is far from both.
var mergeColors = map[rune]imageutil.RGB{
	'a': {R: 250},
	'b': {R: 230},
	'z': {B: 250},
}

// gridFromCodes builds a test grid from rows of single-letter codes.
// '.' marks a background cell.
func gridFromCodes(rows []string, colors map[rune]imageutil.RGB) Grid {
	g := make(Grid, len(rows))
	for y, row := range rows {
		g[y] = make([]ColorInfo, len(row))
		for x, r := range row {
			if r == '.' {
				g[y][x] = ColorInfo{Code: "bg", Background: true}
				continue
			}
			rgb := colors[r]
			g[y][x] = ColorInfo{Code: string(r), RGB: rgb, Lab: RGBToLab(rgb)}
		}
	}
	return g
}

// codesOf flattens a grid back to its code rows for comparison.
func codesOf(g Grid) string {
	var rows []string
	for _, row := range g {
		var sb strings.Builder
		for _, cell := range row {
			if cell.Background {
				sb.WriteByte('.')
				continue
			}
			sb.WriteString(cell.Code)
		}
		rows = append(rows, sb.String())
	}
	return strings.Join(rows, "|")
}

func TestMergeRegionCollapsesSimilar(t *testing.T) {
	t.Parallel()

	g := gridFromCodes([]string{
		"aab",
		"aab",
		"zzz",
	}, mergeColors)

	out := MergeRegion(g, 0, 0, 10)
	if got := codesOf(out); got != "aaa|aaa|zzz" {
		t.Errorf("Expected aaa|aaa|zzz, got %s", got)
	}
	// The input grid stays as it was
	if g[0][2].Code != "b" {
		t.Errorf("Input grid was modified: %s", codesOf(g))
	}
}

func TestMergeRegionBackgroundSeed(t *testing.T) {
	t.Parallel()

	g := gridFromCodes([]string{
		"ab",
		".a",
	}, mergeColors)

	out := MergeRegion(g, 1, 0, 10)
	if got := codesOf(out); got != codesOf(g) {
		t.Errorf("Background seed should change nothing, got %s", got)
	}
}

func TestMergeRegionNoOps(t *testing.T) {
	t.Parallel()

	g := gridFromCodes([]string{"ab"}, mergeColors)

	if got := codesOf(MergeRegion(g, 5, 5, 10)); got != "ab" {
		t.Errorf("Out-of-range seed should change nothing, got %s", got)
	}
	if got := codesOf(MergeRegion(g, 0, 0, 0)); got != "ab" {
		t.Errorf("Zero threshold should change nothing, got %s", got)
	}
}

func TestMergeRegionBackgroundBarrier(t *testing.T) {
	t.Parallel()

	g := gridFromCodes([]string{"ab.ba"}, mergeColors)

	// The fill cannot cross the background cell, so only the left pair
	// merges; the equal-count tie goes to the code discovered first.
	out := MergeRegion(g, 0, 0, 10)
	if got := codesOf(out); got != "aa.ba" {
		t.Errorf("Expected aa.ba, got %s", got)
	}
	if !out[0][2].Background {
		t.Error("Background cell lost its flag")
	}
}

func TestMergeRegionTieFirstDiscovered(t *testing.T) {
	t.Parallel()

	g := gridFromCodes([]string{"ba"}, mergeColors)

	out := MergeRegion(g, 0, 0, 10)
	if got := codesOf(out); got != "bb" {
		t.Errorf("Expected bb, got %s", got)
	}
}

func TestAutoMergeZeroThreshold(t *testing.T) {
	t.Parallel()

	g := gridFromCodes([]string{"ab", "za"}, mergeColors)

	out := AutoMerge(g, 0)
	if got := codesOf(out); got != codesOf(g) {
		t.Errorf("Zero threshold should change nothing, got %s", got)
	}
}

func TestAutoMergeCollapses(t *testing.T) {
	t.Parallel()

	g := gridFromCodes([]string{
		"aabb",
		"aabb",
	}, mergeColors)

	out := AutoMerge(g, 10)
	if got := codesOf(out); got != "aaaa|aaaa" {
		t.Errorf("Expected aaaa|aaaa, got %s", got)
	}

	// A huge threshold flattens even unrelated colors into one code
	g = gridFromCodes([]string{"az", "zb"}, mergeColors)
	out = AutoMerge(g, 1000)
	if got := codesOf(out); got != "zz|zz" {
		t.Errorf("Expected zz|zz, got %s", got)
	}
}

func TestAutoMergeIdempotent(t *testing.T) {
	t.Parallel()

	g := gridFromCodes([]string{
		"abab",
		"zzab",
	}, mergeColors)

	once := AutoMerge(g, 10)
	twice := AutoMerge(once, 10)
	if codesOf(once) != codesOf(twice) {
		t.Errorf("Second pass changed the result: %s then %s", codesOf(once), codesOf(twice))
	}
}

func TestAutoMergePreservesBackground(t *testing.T) {
	t.Parallel()

	g := gridFromCodes([]string{"a.z"}, mergeColors)

	out := AutoMerge(g, 1000)
	if got := codesOf(out); got != "a.z" {
		t.Errorf("Expected a.z, got %s", got)
	}
	if !out[0][1].Background {
		t.Error("Background cell lost its flag")
	}
}
