package astro

import "math"

// AngleDiff returns the shortest arc between two ecliptic longitudes, in
// [0, 180]. Inputs may be any finite values.
func AngleDiff(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 360)
	if d > 180 {
		d = 360 - d
	}
	return d
}

// normalize maps a longitude into [0, 360).
func normalize(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	return d
}
