package report

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"AstroTrade/internal/domain/models"
)

var day = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func hit(transit, natal, aspect string, hour int, dev float64) models.NatalAspect {
	return models.NatalAspect{
		Stock:         "Aramco",
		NatalPlanet:   natal,
		NatalDegree:   15,
		TransitPlanet: transit,
		TransitDegree: 135,
		Aspect:        aspect,
		Polarity:      models.PolarityPositive,
		Deviation:     dev,
		Time:          day.Add(time.Duration(hour) * time.Hour),
	}
}

func TestGroupNatal(t *testing.T) {
	hits := []models.NatalAspect{
		hit("Mars", "Venus", "Square", 23, 0.9),
		hit("Jupiter", "Sun", "Trine", 12, 0.2),
		hit("Jupiter", "Sun", "Trine", 10, 0.5),
		hit("Mars", "Venus", "Square", 0, 0.4),
		hit("Jupiter", "Sun", "Trine", 11, 0.2),
	}

	windows := GroupNatal(hits)
	require.Len(t, windows, 2)

	j := windows[0]
	assert.Equal(t, "Jupiter", j.TransitPlanet)
	assert.Equal(t, 3, j.Hits)
	assert.Equal(t, 10, j.Start.Hour())
	assert.Equal(t, 12, j.End.Hour())
	assert.Equal(t, 11, j.Peak.Hour(), "first minimum wins")
	assert.False(t, j.WholeDay)
	assert.Equal(t, "Sun in Aries 15°", j.NatalPosition)
	assert.Equal(t, "Jupiter in Leo 15°", j.TransitPosition)

	m := windows[1]
	assert.Equal(t, "Mars", m.TransitPlanet)
	assert.True(t, m.WholeDay)
	assert.Equal(t, 0.4, m.PeakDeviation)

	assert.Empty(t, GroupNatal(nil))
}

func TestWholeDayBoundary(t *testing.T) {
	cases := []struct {
		name      string
		last      int
		wholeDay  bool
		timeRange string
	}{
		{"22h span", 22, false, "12:00 AM - 10:00 PM"},
		{"23h span", 23, true, "active all day"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := GroupNatal([]models.NatalAspect{
				hit("Mars", "Venus", "Square", 0, 0.4),
				hit("Mars", "Venus", "Square", tc.last, 0.9),
			})
			require.Len(t, w, 1)
			assert.Equal(t, tc.wholeDay, w[0].WholeDay)
			assert.Contains(t, StockText(&models.StockReport{Stock: "Aramco", Found: true, Windows: w}), tc.timeRange)
		})
	}
}

func TestStockText(t *testing.T) {
	r := &models.StockReport{
		Query: "aram", Stock: "Aramco", Date: "2025-03-10", Found: true,
		Rating:  models.Rating{Stars: "⭐⭐⭐⭐", Label: "good", Summary: "balanced energy"},
		Outlook: models.Outlook{Status: "🚀 upside"},
		Windows: GroupNatal([]models.NatalAspect{hit("Jupiter", "Sun", "Trine", 10, 0.5)}),
	}
	out := StockText(r)
	assert.Contains(t, out, "📌 Stock: Aramco")
	assert.Contains(t, out, "⭐⭐⭐⭐ (good)")
	assert.Contains(t, out, "10:00 AM - 10:00 AM (peak 10:00 AM)")
	assert.Contains(t, out, "No general aspects active.")

	missing := StockText(&models.StockReport{Query: "zzz"})
	assert.Contains(t, missing, `"zzz"`)
}

func TestMoonTextEmptyAndTruncated(t *testing.T) {
	empty := MoonText(&models.MoonScan{Date: "2025-03-10"})
	assert.True(t, strings.HasSuffix(empty, "No intraday opportunities for this day."))

	opps := make([]models.MoonOpportunity, 200)
	for i := range opps {
		opps[i] = models.MoonOpportunity{Stock: "Stock", Planet: "Sun", Aspect: "Trine", Advice: "📈 price moves with the trend"}
	}
	big := MoonText(&models.MoonScan{Date: "2025-03-10", Hours: []models.MoonHour{{Hour: 9, Time: day.Add(9 * time.Hour), Opportunities: opps}}})
	assert.Equal(t, MaxRunes, utf8.RuneCountInString(big))
}

func TestTransitTextLimitsAspects(t *testing.T) {
	aspects := make([]models.TransitAspect, 15)
	for i := range aspects {
		aspects[i] = models.TransitAspect{Planet1: "Sun", Planet2: "Mars", Aspect: "Square", Exact: 90}
	}
	out := TransitText(&models.TransitReport{At: day.Add(14 * time.Hour), Aspects: aspects})
	assert.Equal(t, maxTransits, strings.Count(out, "(90°"))
	assert.Contains(t, out, "2025-03-10 | ⏰ 14:00")
}

func TestSectorText(t *testing.T) {
	out := SectorText(&models.SectorReport{Sign: "Leo", Sector: "energy", Date: "2025-03-10", Stocks: []models.SectorEntry{
		{Stock: "Aramco", Rating: models.Rating{Stars: "⭐⭐", Label: "fair"}, Aspects: []models.NatalAspect{hit("Jupiter", "Sun", "Trine", 10, 0.5)}},
	}})
	assert.Contains(t, out, "🏭 Sector: energy (Leo)")
	assert.Contains(t, out, "📌 Aramco ⭐⭐ (fair)")
	assert.Contains(t, out, "Jupiter Trine")

	empty := SectorText(&models.SectorReport{Sign: "Leo", Sector: "energy"})
	assert.Contains(t, empty, "No active opportunities")
}
