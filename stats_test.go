package doupinpin

import (
	"math"
	"testing"
)

func TestTally(t *testing.T) {
	t.Parallel()

	g := gridFromCodes([]string{
		"aab",
		"z.b",
	}, mergeColors)

	got := g.Tally()
	want := []BeadCount{
		{Code: "a", RGB: mergeColors['a'], Count: 2},
		{Code: "b", RGB: mergeColors['b'], Count: 2},
		{Code: "z", RGB: mergeColors['z'], Count: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("Expected %d entries, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Entry %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}

	sum := 0
	for _, e := range got {
		sum += e.Count
	}
	if sum != g.Beads() {
		t.Errorf("Expected tally counts to sum to %d beads, got %d", g.Beads(), sum)
	}
}

func TestBeads(t *testing.T) {
	t.Parallel()

	g := gridFromCodes([]string{
		"aa.",
		"..z",
	}, mergeColors)
	if got := g.Beads(); got != 3 {
		t.Errorf("Expected 3 beads, got %d", got)
	}
	if got := (Grid{}).Beads(); got != 0 {
		t.Errorf("Expected 0 beads on an empty grid, got %d", got)
	}
}

func TestSuggestMergeThresholdUniform(t *testing.T) {
	t.Parallel()

	g := gridFromCodes([]string{
		"aaa",
		"aaa",
	}, mergeColors)
	if got := SuggestMergeThreshold(g); got != 0 {
		t.Errorf("Expected 0 for a uniform grid, got %f", got)
	}
}

func TestSuggestMergeThreshold(t *testing.T) {
	t.Parallel()

	// Three differing seams: a-b is small, b-z and a-z are large, so
	// the first quartile lands on the a-b distance.
	g := gridFromCodes([]string{
		"ab",
		"az",
	}, mergeColors)

	got := SuggestMergeThreshold(g)
	want := DeltaE(RGBToLab(mergeColors['a']), RGBToLab(mergeColors['b']))
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Expected %f, got %f", want, got)
	}

	// Nudged past the suggestion, AutoMerge collapses the a-b seam
	merged := AutoMerge(g, got+0.001)
	if merged[0][0].Code != merged[0][1].Code {
		t.Errorf("Expected the top row to merge, got %s", codesOf(merged))
	}
}

func TestSuggestMergeThresholdIgnoresBackground(t *testing.T) {
	t.Parallel()

	g := gridFromCodes([]string{"a.z"}, mergeColors)
	if got := SuggestMergeThreshold(g); got != 0 {
		t.Errorf("Expected 0 when background separates all colors, got %f", got)
	}
}
