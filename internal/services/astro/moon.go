package astro

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"AstroTrade/internal/domain/models"
)

// MoonFix is a resolved Moon position.
type MoonFix struct {
	Time         time.Time
	Longitude    float64
	Sign         Sign
	DegreeInSign float64
}

// MoonPosition resolves the Moon at `at` from samples keyed by column. A
// sample stamped exactly on the hour of `at` is preferred; otherwise the
// latest sample at or before `at` is used. Samples after `at` are never used.
func MoonPosition(rows []models.TransitRow, column string, at time.Time) (MoonFix, bool) {
	hour := time.Date(at.Year(), at.Month(), at.Day(), at.Hour(), 0, 0, 0, at.Location())

	for _, r := range rows {
		if !r.Time.Equal(hour) {
			continue
		}
		if fix, ok := moonFix(r, column); ok {
			return fix, true
		}
	}

	best := -1
	for i, r := range rows {
		if r.Time.After(at) {
			continue
		}
		if _, ok := r.Degree(column); !ok {
			continue
		}
		if best < 0 || !r.Time.Before(rows[best].Time) {
			best = i
		}
	}
	if best < 0 {
		return MoonFix{}, false
	}
	return moonFix(rows[best], column)
}

func moonFix(r models.TransitRow, column string) (MoonFix, bool) {
	deg, ok := r.Degree(column)
	if !ok {
		return MoonFix{}, false
	}
	sign, ok := ParseSign(r.Sign)
	if !ok {
		sign = SignOf(deg)
	}
	return MoonFix{
		Time:         r.Time,
		Longitude:    deg,
		Sign:         sign,
		DegreeInSign: DegreeInSign(deg),
	}, true
}

// GeneralNote summarises the transit-to-transit sky at `at` as one line of
// warnings and supports.
func GeneralNote(general []models.TransitRow, at time.Time, cat Catalog) string {
	var notes []string
	for _, a := range TransitPairs(general, at, cat) {
		switch a.Polarity {
		case models.PolarityNegative:
			notes = append(notes, fmt.Sprintf("⚠️ general warning: %s %s %s", a.Planet1, a.Aspect, a.Planet2))
		case models.PolarityPositive:
			notes = append(notes, fmt.Sprintf("✅ general support: %s %s %s", a.Planet1, a.Aspect, a.Planet2))
		}
	}
	return strings.Join(notes, " | ")
}

// MoonIntraday lists the stocks whose natal planets the Moon activates at
// `at`. It reports false when no Moon position can be resolved.
func MoonIntraday(stocks []models.NatalRow, moon []models.TransitRow, at time.Time, general []models.TransitRow, cat Catalog) (models.MoonHour, bool) {
	fix, ok := MoonPosition(moon, cat.MoonColumn, at)
	if !ok {
		return models.MoonHour{}, false
	}
	hour := models.MoonHour{
		Time:          at,
		MoonSign:      fix.Sign.String(),
		MoonDegree:    fix.DegreeInSign,
		Element:       ElementOf(fix.Sign).Label(),
		Opportunities: make([]models.MoonOpportunity, 0),
	}
	note := GeneralNote(general, at, cat)

	type key struct{ stock, planet, aspect string }
	seen := make(map[key]struct{})
	for _, s := range stocks {
		if !models.IsFinite(s.Degree) {
			continue
		}
		m, ok := Classify(AngleDiff(fix.Longitude, s.Degree), MoonDetectionOrb, cat.Aspects)
		if !ok || !m.Applying || m.Deviation > ActivationOrb {
			continue
		}
		k := key{NormalizeStockName(s.Stock), s.Planet, m.Name}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}

		status, advice := moonAdvice(m)
		hour.Opportunities = append(hour.Opportunities, models.MoonOpportunity{
			Stock:     s.Stock,
			Planet:    s.Planet,
			Aspect:    m.Name,
			Icon:      m.Icon,
			Polarity:  m.Polarity,
			Deviation: m.Deviation,
			Exact:     m.Deviation < ExactOrb,
			Status:    status,
			Advice:    advice,
			Note:      note,
		})
	}
	return hour, true
}

func moonAdvice(m models.AspectMatch) (string, string) {
	if m.Deviation < ExactOrb {
		status := "🔥 exact now"
		switch m.Polarity {
		case models.PolarityPositive:
			return status, "opportunity: positive reaction expected (rebound)"
		case models.PolarityNegative:
			return status, "caution: negative reaction (profit taking)"
		default:
			return status, "pivot: watch for a reversal in either direction"
		}
	}
	status := "⏳ activating (approaching exact)"
	switch m.Polarity {
	case models.PolarityPositive:
		return status, "📈 price moves with the trend"
	case models.PolarityNegative:
		return status, "📉 selling pressure increasing"
	default:
		return status, "↔️ momentum building, direction pending"
	}
}

// ScanMoonDay evaluates MoonIntraday at each hour of day in loc and keeps the
// hours with at least one opportunity, keyed by hour of day.
func ScanMoonDay(stocks []models.NatalRow, moon []models.TransitRow, day time.Time, loc *time.Location, general []models.TransitRow, cat Catalog) map[int]models.MoonHour {
	start, _ := DayWindow(day, loc)
	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		out = make(map[int]models.MoonHour)
	)
	for h := 0; h < 24; h++ {
		wg.Add(1)
		go func(h int) {
			defer wg.Done()
			at := start.Add(time.Duration(h) * time.Hour)
			mh, ok := MoonIntraday(stocks, moon, at, general, cat)
			if !ok || len(mh.Opportunities) == 0 {
				return
			}
			mh.Hour = h
			mu.Lock()
			out[h] = mh
			mu.Unlock()
		}(h)
	}
	wg.Wait()
	return out
}
