package astro

import (
	"strings"
	"time"

	"AstroTrade/internal/domain/models"
)

// NormalizeStockName folds case and whitespace so that spelling variants of
// one stock id compare equal.
func NormalizeStockName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// StockQueryKey is the form of query ResolveStock matches on. Queries with
// equal keys resolve identically.
func StockQueryKey(query string) string {
	return strings.ToLower(query)
}

// ResolveStock returns every natal row whose stock id contains query,
// case-insensitively, and the id of the first such row in table order.
// Without a match it returns no rows and the query itself.
func ResolveStock(natal []models.NatalRow, query string) ([]models.NatalRow, string) {
	q := StockQueryKey(query)
	var rows []models.NatalRow
	for _, r := range natal {
		if strings.Contains(strings.ToLower(r.Stock), q) {
			rows = append(rows, r)
		}
	}
	if len(rows) == 0 {
		return nil, query
	}
	return rows, rows[0].Stock
}

// StockNames lists distinct stock ids in table order.
func StockNames(natal []models.NatalRow) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, r := range natal {
		if _, ok := seen[r.Stock]; ok {
			continue
		}
		seen[r.Stock] = struct{}{}
		out = append(out, r.Stock)
	}
	return out
}

// DayWindow returns the first and last instants of day's calendar date in loc.
func DayWindow(day time.Time, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := day.In(loc).Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1).Add(-time.Nanosecond)
}

func rowsBetween(rows []models.TransitRow, start, end time.Time) []models.TransitRow {
	var out []models.TransitRow
	for _, r := range rows {
		if !r.Time.Before(start) && !r.Time.After(end) {
			out = append(out, r)
		}
	}
	return out
}

// StockAspects finds the active transit aspects to the natal planets of the
// stock matching query during day. The second result is the resolved stock
// id, or the query when nothing matched.
func StockAspects(natal []models.NatalRow, transits []models.TransitRow, query string, day time.Time, loc *time.Location, cat Catalog) ([]models.NatalAspect, string) {
	out := make([]models.NatalAspect, 0)
	rows, name := ResolveStock(natal, query)
	if len(rows) == 0 {
		return out, name
	}
	start, end := DayWindow(day, loc)
	window := rowsBetween(transits, start, end)
	if len(window) == 0 {
		return out, name
	}

	for _, n := range rows {
		if !models.IsFinite(n.Degree) {
			continue
		}
		for _, t := range window {
			for _, p := range cat.Planets {
				if IsMoon(p.Name) {
					continue
				}
				deg, ok := t.Degree(p.Column)
				if !ok {
					continue
				}
				m, ok := Classify(AngleDiff(n.Degree, deg), DefaultOrb, cat.Aspects)
				if !ok {
					continue
				}
				if IsNode(p.Name) && m.Exact == 180 {
					continue
				}
				status := ActivationStatus(m.Deviation, m.Applying)
				if status == "" {
					continue
				}
				out = append(out, models.NatalAspect{
					Stock:         n.Stock,
					NatalPlanet:   n.Planet,
					NatalSign:     n.Sign,
					NatalDegree:   n.Degree,
					TransitPlanet: p.Name,
					TransitIcon:   p.Icon,
					TransitDegree: deg,
					Aspect:        m.Name,
					Exact:         m.Exact,
					AspectIcon:    m.Icon,
					Polarity:      m.Polarity,
					Deviation:     m.Deviation,
					Applying:      m.Applying,
					Time:          t.Time,
					PlanetMeaning: PlanetMeaning(p.Name),
					AspectMeaning: AspectMeaning(m.Name),
					Note: joinNotes(
						status,
						NeptuneNote(p.Name, m.Name, m.Polarity),
						MarsNote(p.Name, m.Name),
						EntrySignal(m.Polarity, m.Deviation, m.Applying),
					),
				})
			}
		}
	}
	return out, name
}

func joinNotes(notes ...string) string {
	kept := notes[:0]
	for _, n := range notes {
		if n != "" {
			kept = append(kept, n)
		}
	}
	return strings.Join(kept, " | ")
}
