package doupinpin

import "github.com/Yesmaniamaurora/DouPinPinv2/imageutil"

// FindClosest returns the palette entry of the given brand nearest to c
// by CIE76 distance in Lab space. Among equally distant entries the
// earliest table entry wins.
func (s *PaletteStore) FindClosest(c imageutil.RGB, brand string) (ColorInfo, error) {
	palette, err := s.Palette(brand)
	if err != nil {
		return ColorInfo{}, err
	}
	return closestIn(palette, RGBToLab(c)), nil
}

// closestIn scans a palette for the entry nearest to lab. The strict
// less-than keeps the first of any tied entries.
func closestIn(palette []ColorInfo, lab Lab) ColorInfo {
	best := palette[0]
	bestDist := DeltaE(lab, best.Lab)
	for _, entry := range palette[1:] {
		if d := DeltaE(lab, entry.Lab); d < bestDist {
			best = entry
			bestDist = d
		}
	}
	return best
}
