package astro

import (
	"sort"
	"time"

	"AstroTrade/internal/domain/models"
)

// nearestRow returns the index of the sample closest to target. Ties keep
// the first row seen.
func nearestRow(rows []models.TransitRow, target time.Time) int {
	best := -1
	var bestDiff time.Duration
	for i := range rows {
		d := rows[i].Time.Sub(target)
		if d < 0 {
			d = -d
		}
		if best < 0 || d < bestDiff {
			best, bestDiff = i, d
		}
	}
	return best
}

// TransitPairs classifies every pair of planets in the sample nearest to
// target and returns the matches sorted by ascending deviation.
func TransitPairs(rows []models.TransitRow, target time.Time, cat Catalog) []models.TransitAspect {
	out := make([]models.TransitAspect, 0)
	idx := nearestRow(rows, target)
	if idx < 0 {
		return out
	}
	row := rows[idx]

	for i, p1 := range cat.Planets {
		d1, ok := row.Degree(p1.Column)
		if !ok {
			continue
		}
		for _, p2 := range cat.Planets[i+1:] {
			d2, ok := row.Degree(p2.Column)
			if !ok {
				continue
			}
			m, ok := Classify(AngleDiff(d1, d2), DefaultOrb, cat.Aspects)
			if !ok {
				continue
			}
			out = append(out, models.TransitAspect{
				Planet1:    p1.Name,
				Icon1:      p1.Icon,
				Degree1:    d1,
				Planet2:    p2.Name,
				Icon2:      p2.Icon,
				Degree2:    d2,
				Aspect:     m.Name,
				Exact:      m.Exact,
				AspectIcon: m.Icon,
				Polarity:   m.Polarity,
				Deviation:  m.Deviation,
				Time:       row.Time,
			})
		}
	}

	sort.SliceStable(out, func(a, b int) bool { return out[a].Deviation < out[b].Deviation })
	return out
}

// PositionsAt lists each catalog planet's placement in the sample nearest to
// target. Planets missing from that sample are omitted.
func PositionsAt(rows []models.TransitRow, target time.Time, cat Catalog) []models.PlanetPosition {
	out := make([]models.PlanetPosition, 0, len(cat.Planets))
	idx := nearestRow(rows, target)
	if idx < 0 {
		return out
	}
	row := rows[idx]
	for _, p := range cat.Planets {
		deg, ok := row.Degree(p.Column)
		if !ok {
			continue
		}
		sign := SignOf(deg)
		pos := models.PlanetPosition{
			Planet:       p.Name,
			Icon:         p.Icon,
			Longitude:    deg,
			Sign:         sign.String(),
			DegreeInSign: DegreeInSign(deg),
			Text:         FormatPosition(p.Name, deg),
			Time:         row.Time,
		}
		if d, ok := DignityOf(p.Name, sign); ok {
			pos.Dignity = string(d)
		}
		out = append(out, pos)
	}
	return out
}
