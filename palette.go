package doupinpin

import (
	"embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Yesmaniamaurora/DouPinPinv2/imageutil"
)

//go:embed colordata/beads.csv
var beadData embed.FS

// defaultPaletteFile is the embedded bead color table.
const defaultPaletteFile = "colordata/beads.csv"

// ErrUnknownPalette is returned when a palette key does not name a
// loaded brand.
var ErrUnknownPalette = errors.New("unknown palette")

// ColorInfo identifies one bead color: its brand code, its sRGB value,
// the precomputed Lab value used for perceptual matching, and whether
// the grid cell carrying it was classified as background. Palette
// entries always have Background false.
type ColorInfo struct {
	Code       string
	RGB        imageutil.RGB
	Lab        Lab
	Background bool
}

// PaletteStore holds the bead palettes parsed from one color table,
// keyed by brand.
type PaletteStore struct {
	brands   []string
	palettes map[string][]ColorInfo
}

// LoadPalettes parses the embedded bead color table.
func LoadPalettes() (*PaletteStore, error) {
	f, err := beadData.Open(defaultPaletteFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded palette table: %w", err)
	}
	defer f.Close()
	return ParsePalettes(f)
}

// ParsePalettes reads a bead color table. The first header cell labels
// the hex column, the remaining header cells name brands. Each data row
// holds one color: its hex value plus that color's code per brand; an
// empty code cell means the brand does not carry the color. Rows whose
// hex cell is not a 7-character #RRGGBB value are skipped.
//
// A table that cannot be read, or that yields no valid rows, is a
// configuration error.
func ParsePalettes(r io.Reader) (*PaletteStore, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read palette header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("palette header needs a hex column and at least one brand, got %d columns", len(header))
	}

	brands := make([]string, 0, len(header)-1)
	for _, name := range header[1:] {
		brands = append(brands, strings.TrimSpace(name))
	}

	store := &PaletteStore{
		brands:   brands,
		palettes: make(map[string][]ColorInfo, len(brands)),
	}

	rows, skipped := 0, 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read palette row: %w", err)
		}

		rgb, ok := ParseHexColor(strings.TrimSpace(record[0]))
		if !ok {
			skipped++
			continue
		}
		rows++
		lab := RGBToLab(rgb)

		for i, brand := range brands {
			if i+1 >= len(record) {
				break
			}
			code := strings.TrimSpace(record[i+1])
			if code == "" {
				continue
			}
			store.palettes[brand] = append(store.palettes[brand], ColorInfo{
				Code: code,
				RGB:  rgb,
				Lab:  lab,
			})
		}
	}

	if rows == 0 {
		return nil, fmt.Errorf("palette table has no valid rows")
	}
	Logf("palette: %d colors across %d brands (%d rows skipped)", rows, len(brands), skipped)
	return store, nil
}

// ParseHexColor parses a #RRGGBB hex color. It reports ok=false for
// anything that is not a 7-character string starting with '#'.
func ParseHexColor(s string) (imageutil.RGB, bool) {
	if len(s) != 7 || s[0] != '#' {
		return imageutil.RGB{}, false
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return imageutil.RGB{}, false
	}
	return imageutil.RGB{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}, true
}

// Brands returns the brand keys in table order.
func (s *PaletteStore) Brands() []string {
	out := make([]string, len(s.brands))
	copy(out, s.brands)
	return out
}

// Palette returns the ordered bead colors for a brand. A brand that is
// absent from the table, or that carries no colors, is unknown.
func (s *PaletteStore) Palette(brand string) ([]ColorInfo, error) {
	p, ok := s.palettes[brand]
	if !ok || len(p) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPalette, brand)
	}
	return p, nil
}
