package rating

import (
	"testing"

	"AstroTrade/internal/domain/models"

	"github.com/stretchr/testify/assert"
)

func hit(aspect, transit, natal string, p models.Polarity) models.NatalAspect {
	return models.NatalAspect{Aspect: aspect, TransitPlanet: transit, NatalPlanet: natal, Polarity: p}
}

func TestRateEmpty(t *testing.T) {
	r := Rate(nil, DefaultPlanetSets())
	assert.Equal(t, "⭐", r.Stars)
	assert.Equal(t, "no relationships", r.Label)
	assert.Equal(t, 0, r.Score)
}

func TestRate(t *testing.T) {
	sets := DefaultPlanetSets()
	cases := []struct {
		name  string
		hits  []models.NatalAspect
		score int
		stars string
		label string
	}{
		{
			name:  "benefic trine",
			hits:  []models.NatalAspect{hit(models.AspectTrine, models.PlanetJupiter, models.PlanetVenus, models.PolarityPositive)},
			score: 5, stars: "⭐⭐⭐⭐", label: "excellent",
		},
		{
			name:  "malefic square",
			hits:  []models.NatalAspect{hit(models.AspectSquare, models.PlanetSaturn, models.PlanetSun, models.PolarityNegative)},
			score: -3, stars: "⭐", label: "weak",
		},
		{
			name:  "double malefic opposition",
			hits:  []models.NatalAspect{hit(models.AspectOpposition, models.PlanetMars, models.PlanetPluto, models.PolarityNegative)},
			score: -4, stars: "⭐", label: "weak",
		},
		{
			name:  "benefic conjunction beats malefic",
			hits:  []models.NatalAspect{hit(models.AspectConjunction, models.PlanetSaturn, models.PlanetVenus, models.PolarityNeutral)},
			score: 2, stars: "⭐⭐⭐", label: "good",
		},
		{
			name:  "malefic conjunction",
			hits:  []models.NatalAspect{hit(models.AspectConjunction, models.PlanetMars, models.PlanetSun, models.PolarityNeutral)},
			score: -1, stars: "⭐", label: "weak",
		},
		{
			name:  "plain conjunction and sextile",
			hits: []models.NatalAspect{
				hit(models.AspectConjunction, models.PlanetSun, models.PlanetMoon, models.PolarityNeutral),
				hit(models.AspectSextile, models.PlanetVenus, models.PlanetSun, models.PolarityPositive),
			},
			score: 1, stars: "⭐⭐", label: "average",
		},
		{
			name: "golden",
			hits: []models.NatalAspect{
				hit(models.AspectTrine, models.PlanetJupiter, models.PlanetVenus, models.PolarityPositive),
				hit(models.AspectTrine, models.PlanetSun, models.PlanetMoon, models.PolarityPositive),
			},
			score: 8, stars: "⭐⭐⭐⭐⭐", label: "golden opportunity",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := Rate(tc.hits, sets)
			assert.Equal(t, tc.score, r.Score)
			assert.Equal(t, tc.stars, r.Stars)
			assert.Equal(t, tc.label, r.Label)
		})
	}
}

func TestRateCounts(t *testing.T) {
	r := Rate([]models.NatalAspect{
		hit(models.AspectTrine, models.PlanetSun, models.PlanetSun, models.PolarityPositive),
		hit(models.AspectSquare, models.PlanetSun, models.PlanetSun, models.PolarityNegative),
		hit(models.AspectSextile, models.PlanetSun, models.PlanetSun, models.PolarityPositive),
	}, DefaultPlanetSets())
	assert.Equal(t, 1, r.Positive, "sextile is not counted")
	assert.Equal(t, 1, r.Negative)
	assert.Equal(t, "balanced energy", r.Summary)
}

func TestRateCountsConjunctionByPlanets(t *testing.T) {
	sets := DefaultPlanetSets()
	r := Rate([]models.NatalAspect{
		hit(models.AspectSextile, models.PlanetSun, models.PlanetSun, models.PolarityPositive),
		hit(models.AspectQuincunx, models.PlanetSun, models.PlanetSun, models.PolarityNegative),
		hit(models.AspectConjunction, models.PlanetVenus, models.PlanetSun, models.PolarityNeutral),
	}, sets)
	assert.Equal(t, 1, r.Positive)
	assert.Equal(t, 0, r.Negative)
	assert.Equal(t, 2, r.Score)
	assert.Equal(t, "strong positive energy", r.Summary)

	r = Rate([]models.NatalAspect{
		hit(models.AspectConjunction, models.PlanetMars, models.PlanetSun, models.PolarityNeutral),
		hit(models.AspectConjunction, models.PlanetSun, models.PlanetMercury, models.PolarityNeutral),
	}, sets)
	assert.Equal(t, 1, r.Positive)
	assert.Equal(t, 1, r.Negative)
	assert.Equal(t, 0, r.Score)
}

func TestCustomPlanetSets(t *testing.T) {
	sets := NewPlanetSets([]string{"sun"}, nil)
	r := Rate([]models.NatalAspect{hit(models.AspectTrine, models.PlanetSun, models.PlanetMoon, models.PolarityPositive)}, sets)
	assert.Equal(t, 4, r.Score)
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "strong positive energy", Summary(3, 1))
	assert.Equal(t, "moderately positive energy", Summary(3, 2))
	assert.Equal(t, "balanced energy", Summary(2, 2))
	assert.Equal(t, "difficult energy, caution advised", Summary(1, 2))
}

func TestOutlook(t *testing.T) {
	neg := []models.TransitAspect{{Polarity: models.PolarityNegative}, {Polarity: models.PolarityNeutral}}
	pos := []models.TransitAspect{{Polarity: models.PolarityPositive}}

	assert.Contains(t, Outlook(neg, 3).Status, "weak movement")
	assert.Contains(t, Outlook(neg, -2).Status, "dangerous grind")
	assert.Contains(t, Outlook(pos, 0).Status, "upside")
	assert.Contains(t, Outlook(pos, -1).Status, "mixed")
	assert.Equal(t, -1, Outlook(neg, 0).GeneralScore)
}
