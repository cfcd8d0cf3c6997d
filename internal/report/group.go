package report

import (
	"fmt"
	"sort"
	"time"

	"AstroTrade/internal/domain/models"
	"AstroTrade/internal/services/astro"
)

// wholeDaySpan marks a window that covers every hourly sample of a day.
const wholeDaySpan = 23 * time.Hour

type windowKey struct {
	transit, natal, aspect string
}

// GroupNatal folds hourly hits into one window per (transit planet, natal
// planet, aspect). Windows are ordered by that key; the peak is the first hit
// with the smallest deviation.
func GroupNatal(hits []models.NatalAspect) []models.AspectWindow {
	groups := make(map[windowKey][]models.NatalAspect)
	for _, h := range hits {
		k := windowKey{h.TransitPlanet, h.NatalPlanet, h.Aspect}
		groups[k] = append(groups[k], h)
	}

	keys := make([]windowKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.transit != b.transit {
			return a.transit < b.transit
		}
		if a.natal != b.natal {
			return a.natal < b.natal
		}
		return a.aspect < b.aspect
	})

	out := make([]models.AspectWindow, 0, len(keys))
	for _, k := range keys {
		out = append(out, window(groups[k]))
	}
	return out
}

func window(g []models.NatalAspect) models.AspectWindow {
	sort.SliceStable(g, func(i, j int) bool { return g[i].Time.Before(g[j].Time) })
	best := g[0]
	for _, h := range g[1:] {
		if h.Deviation < best.Deviation {
			best = h
		}
	}
	start, end := g[0].Time, g[len(g)-1].Time
	natalSign := astro.SignOf(best.NatalDegree)
	return models.AspectWindow{
		TransitPlanet:   best.TransitPlanet,
		TransitIcon:     best.TransitIcon,
		NatalPlanet:     best.NatalPlanet,
		Aspect:          best.Aspect,
		AspectIcon:      best.AspectIcon,
		Polarity:        best.Polarity,
		Start:           start,
		End:             end,
		Peak:            best.Time,
		PeakDeviation:   best.Deviation,
		WholeDay:        end.Sub(start) >= wholeDaySpan,
		Hits:            len(g),
		Timeframe:       astro.Timeframe(best.TransitPlanet),
		NatalPosition:   fmt.Sprintf("%s in %s %d°", best.NatalPlanet, natalSign, int(astro.DegreeInSign(best.NatalDegree))),
		TransitPosition: astro.FormatPosition(best.TransitPlanet, best.TransitDegree),
		PlanetMeaning:   best.PlanetMeaning,
		AspectMeaning:   best.AspectMeaning,
		Note:            best.Note,
	}
}
