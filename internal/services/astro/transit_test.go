package astro

import (
	"math"
	"testing"
	"time"

	"AstroTrade/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(at time.Time, degrees map[string]float64) models.TransitRow {
	return models.TransitRow{Time: at, Degrees: degrees}
}

func TestTransitPairs(t *testing.T) {
	cat := DefaultCatalog()
	base := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	rows := []models.TransitRow{
		sample(base, map[string]float64{"Sun Lng": 0, "Mars Lng": 0}),
		sample(base.Add(12*time.Hour), map[string]float64{
			"Sun Lng":     10,
			"Venus Lng":   70.5,
			"Mars Lng":    100.2,
			"Jupiter Lng": 130.9,
			"Saturn Lng":  math.NaN(),
		}),
	}

	// Sun-Mars 0.2, Venus-Mars 0.3, Venus-Jupiter 0.4, Sun-Venus 0.5,
	// Mars-Jupiter 0.7, Sun-Jupiter 0.9
	got := TransitPairs(rows, base.Add(11*time.Hour), cat)
	require.Len(t, got, 6)

	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i-1].Deviation, got[i].Deviation)
	}
	assert.Equal(t, models.PlanetSun, got[0].Planet1)
	assert.Equal(t, models.PlanetMars, got[0].Planet2)
	assert.Equal(t, models.AspectSquare, got[0].Aspect)
	assert.InDelta(t, 0.2, got[0].Deviation, 1e-9)
	assert.Equal(t, base.Add(12*time.Hour), got[0].Time)
	assert.Equal(t, models.AspectSemiSextile, got[1].Aspect)
	assert.Equal(t, models.AspectTrine, got[5].Aspect)

	for _, a := range got {
		assert.NotEqual(t, models.PlanetSaturn, a.Planet1)
		assert.NotEqual(t, models.PlanetSaturn, a.Planet2)
	}
}

func TestTransitPairsEmpty(t *testing.T) {
	got := TransitPairs(nil, time.Now(), DefaultCatalog())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestTransitPairsTargetBeforeAllSamples(t *testing.T) {
	base := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	rows := []models.TransitRow{
		sample(base, map[string]float64{"Sun Lng": 0, "Mars Lng": 90}),
		sample(base.Add(time.Hour), map[string]float64{"Sun Lng": 0, "Mars Lng": 120}),
	}
	got := TransitPairs(rows, base.AddDate(-1, 0, 0), DefaultCatalog())
	require.Len(t, got, 1)
	assert.Equal(t, models.AspectSquare, got[0].Aspect)
}

func TestTransitPairsTieKeepsFirstRow(t *testing.T) {
	base := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	rows := []models.TransitRow{
		sample(base, map[string]float64{"Sun Lng": 0, "Mars Lng": 90}),
		sample(base.Add(2*time.Hour), map[string]float64{"Sun Lng": 0, "Mars Lng": 120}),
	}
	got := TransitPairs(rows, base.Add(time.Hour), DefaultCatalog())
	require.Len(t, got, 1)
	assert.Equal(t, models.AspectSquare, got[0].Aspect)
}

func TestTransitPairsIdempotent(t *testing.T) {
	base := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	rows := []models.TransitRow{
		sample(base, map[string]float64{"Sun Lng": 10, "Venus Lng": 70.5, "Mars Lng": 100.2}),
	}
	first := TransitPairs(rows, base, DefaultCatalog())
	second := TransitPairs(rows, base, DefaultCatalog())
	assert.Equal(t, first, second)
	assert.Equal(t, 10.0, rows[0].Degrees["Sun Lng"])
}

func TestPositionsAt(t *testing.T) {
	base := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	rows := []models.TransitRow{
		sample(base, map[string]float64{"Sun Lng": 139.0, "Moon Lng": 299.5}),
	}
	got := PositionsAt(rows, base, DefaultCatalog())
	require.Len(t, got, 2)
	assert.Equal(t, models.PlanetSun, got[0].Planet)
	assert.Equal(t, "Leo", got[0].Sign)
	assert.Equal(t, string(Ruler), got[0].Dignity)
	assert.Equal(t, "Moon in Capricorn 29° (detriment ⚠️)", got[1].Text)

	assert.Empty(t, PositionsAt(nil, base, DefaultCatalog()))
}
