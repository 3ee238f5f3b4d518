package doupinpin

import (
	"errors"
	"strings"
	"testing"

	"github.com/Yesmaniamaurora/DouPinPinv2/imageutil"
)

// testTable is a small two-brand color table. The "not-a-color" and
// "#FFF" rows are deliberately malformed, and beta carries no code for
// the blue row.
const testTable = `hex,alpha,beta
#FF0000,R1,BR
#00FF00,G1,BG
#0000FF,B1,
not-a-color,X1,BX
#FFF,Y1,BY
#FFFFFF,W1,BW
#000000,K1,BK
`

func loadTestStore(t *testing.T) *PaletteStore {
	t.Helper()
	store, err := ParsePalettes(strings.NewReader(testTable))
	if err != nil {
		t.Fatalf("Failed to parse test table: %v", err)
	}
	return store
}

func TestParsePalettesBrands(t *testing.T) {
	t.Parallel()

	store := loadTestStore(t)
	brands := store.Brands()
	if len(brands) != 2 || brands[0] != "alpha" || brands[1] != "beta" {
		t.Errorf("Expected brands [alpha beta], got %v", brands)
	}
}

func TestParsePalettesSkipsInvalidRows(t *testing.T) {
	t.Parallel()

	store := loadTestStore(t)
	alpha, err := store.Palette("alpha")
	if err != nil {
		t.Fatalf("Failed to get alpha palette: %v", err)
	}
	if len(alpha) != 5 {
		t.Errorf("Expected 5 alpha colors, got %d", len(alpha))
	}
	for _, c := range alpha {
		if c.Code == "X1" || c.Code == "Y1" {
			t.Errorf("Row with invalid hex should have been skipped, found %s", c.Code)
		}
	}
}

func TestParsePalettesEmptyCodeSkipsBrand(t *testing.T) {
	t.Parallel()

	store := loadTestStore(t)
	beta, err := store.Palette("beta")
	if err != nil {
		t.Fatalf("Failed to get beta palette: %v", err)
	}
	if len(beta) != 4 {
		t.Errorf("Expected 4 beta colors, got %d", len(beta))
	}
	for _, c := range beta {
		if c.RGB == (imageutil.RGB{B: 255}) {
			t.Error("beta has no code for blue and should not carry it")
		}
	}
}

func TestParsePalettesPrecomputesLab(t *testing.T) {
	t.Parallel()

	store := loadTestStore(t)
	alpha, err := store.Palette("alpha")
	if err != nil {
		t.Fatalf("Failed to get alpha palette: %v", err)
	}
	for _, c := range alpha {
		if c.Lab != RGBToLab(c.RGB) {
			t.Errorf("%s: stored Lab %v does not match its color", c.Code, c.Lab)
		}
		if c.Background {
			t.Errorf("%s: palette entries must not be background", c.Code)
		}
	}
}

func TestParsePalettesNoValidRows(t *testing.T) {
	t.Parallel()

	_, err := ParsePalettes(strings.NewReader("hex,alpha\nnope,A1\n"))
	if err == nil {
		t.Fatal("Expected error for table with no valid rows")
	}
}

func TestParsePalettesNarrowHeader(t *testing.T) {
	t.Parallel()

	_, err := ParsePalettes(strings.NewReader("hex\n#FFFFFF\n"))
	if err == nil {
		t.Fatal("Expected error for header without brand columns")
	}
}

func TestParseHexColor(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want imageutil.RGB
		ok   bool
	}{
		{"#FFFFFF", imageutil.RGB{R: 255, G: 255, B: 255}, true},
		{"#000000", imageutil.RGB{}, true},
		{"#FfA01b", imageutil.RGB{R: 255, G: 160, B: 27}, true},
		{"FFFFFF", imageutil.RGB{}, false},
		{"#FFF", imageutil.RGB{}, false},
		{"#GGGGGG", imageutil.RGB{}, false},
		{"", imageutil.RGB{}, false},
	}
	for _, tc := range cases {
		got, ok := ParseHexColor(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseHexColor(%q): expected (%v, %v), got (%v, %v)",
				tc.in, tc.want, tc.ok, got, ok)
		}
	}
}

func TestPaletteUnknownBrand(t *testing.T) {
	t.Parallel()

	store := loadTestStore(t)
	_, err := store.Palette("gamma")
	if !errors.Is(err, ErrUnknownPalette) {
		t.Errorf("Expected ErrUnknownPalette, got %v", err)
	}
}

func TestLoadPalettesEmbedded(t *testing.T) {
	t.Parallel()

	store, err := LoadPalettes()
	if err != nil {
		t.Fatalf("Failed to load embedded palettes: %v", err)
	}

	want := []string{"mard", "coco", "manman", "hama"}
	brands := store.Brands()
	if len(brands) != len(want) {
		t.Fatalf("Expected %d brands, got %v", len(want), brands)
	}
	for i := range want {
		if brands[i] != want[i] {
			t.Errorf("Expected brand %q at %d, got %q", want[i], i, brands[i])
		}
	}

	for _, brand := range want {
		p, err := store.Palette(brand)
		if err != nil {
			t.Errorf("Brand %s should load: %v", brand, err)
			continue
		}
		if len(p) == 0 {
			t.Errorf("Brand %s should carry colors", brand)
		}
	}

	// Spot-check two known table entries
	if c, err := store.FindClosest(imageutil.RGB{R: 255, G: 255, B: 255}, "mard"); err != nil || c.Code != "A01" {
		t.Errorf("Expected white to resolve to mard A01, got %v (%v)", c.Code, err)
	}
	if c, err := store.FindClosest(imageutil.RGB{}, "hama"); err != nil || c.Code != "H18" {
		t.Errorf("Expected black to resolve to hama H18, got %v (%v)", c.Code, err)
	}
}
