package astro

import (
	"testing"

	"AstroTrade/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAngleDiff(t *testing.T) {
	cases := []struct {
		a, b, want float64
	}{
		{0, 0, 0},
		{10, 370, 0},
		{10, 350, 20},
		{350, 10, 20},
		{0, 180, 180},
		{45, 270, 135},
		{-30, 30, 60},
		{720.5, 0, 0.5},
	}
	for _, tc := range cases {
		got := AngleDiff(tc.a, tc.b)
		assert.InDelta(t, tc.want, got, 1e-9, "AngleDiff(%v, %v)", tc.a, tc.b)
		assert.InDelta(t, got, AngleDiff(tc.b, tc.a), 1e-9, "symmetry for (%v, %v)", tc.a, tc.b)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 180.0)
	}
}

func TestClassify(t *testing.T) {
	defs := DefaultCatalog().Aspects

	t.Run("exact square", func(t *testing.T) {
		m, ok := Classify(90, DefaultOrb, defs)
		require.True(t, ok)
		assert.Equal(t, models.AspectSquare, m.Name)
		assert.Equal(t, models.PolarityNegative, m.Polarity)
		assert.InDelta(t, 0.0, m.Deviation, 1e-9)
		assert.True(t, m.Applying)
	})

	t.Run("outside orb", func(t *testing.T) {
		_, ok := Classify(88.5, DefaultOrb, defs)
		assert.False(t, ok)
	})

	t.Run("conjunction across 360", func(t *testing.T) {
		m, ok := Classify(359.5, DefaultOrb, defs)
		require.True(t, ok)
		assert.Equal(t, models.AspectConjunction, m.Name)
		assert.InDelta(t, 0.5, m.Deviation, 1e-9)
	})

	t.Run("conjunction near zero", func(t *testing.T) {
		m, ok := Classify(0.05, DefaultOrb, defs)
		require.True(t, ok)
		assert.Equal(t, models.AspectConjunction, m.Name)
		assert.InDelta(t, 0.05, m.Deviation, 1e-9)
	})

	t.Run("conjunction only within epsilon above zero", func(t *testing.T) {
		_, ok := Classify(0.5, DefaultOrb, defs)
		assert.False(t, ok)
	})

	t.Run("trine edge of orb", func(t *testing.T) {
		m, ok := Classify(121, DefaultOrb, defs)
		require.True(t, ok)
		assert.Equal(t, models.AspectTrine, m.Name)
		assert.InDelta(t, 1.0, m.Deviation, 1e-9)
	})

	t.Run("wider moon orb", func(t *testing.T) {
		m, ok := Classify(61.4, MoonDetectionOrb, defs)
		require.True(t, ok)
		assert.Equal(t, models.AspectSextile, m.Name)
		assert.InDelta(t, 1.4, m.Deviation, 1e-9)
	})

	t.Run("deviation never exceeds orb", func(t *testing.T) {
		for a := 0.0; a <= 180; a += 0.05 {
			if m, ok := Classify(a, DefaultOrb, defs); ok {
				assert.LessOrEqual(t, m.Deviation, DefaultOrb, "angle %v", a)
			}
		}
	})
}

func TestValidateAspects(t *testing.T) {
	require.NoError(t, ValidateAspects(DefaultCatalog().Aspects, MoonDetectionOrb))

	overlapping := []models.AspectDef{
		{Name: "A", Exact: 60, Polarity: models.PolarityPositive},
		{Name: "B", Exact: 62, Polarity: models.PolarityNegative},
	}
	assert.Error(t, ValidateAspects(overlapping, DefaultOrb))

	badPolarity := []models.AspectDef{{Name: "A", Exact: 60, Polarity: "great"}}
	assert.Error(t, ValidateAspects(badPolarity, DefaultOrb))

	assert.Error(t, ValidateAspects(nil, DefaultOrb))
}

func TestCatalogValidate(t *testing.T) {
	cat := DefaultCatalog()
	require.NoError(t, cat.Validate(MoonDetectionOrb))

	cat.Planets = append(cat.Planets, models.PlanetRef{Name: models.PlanetSun, Column: "Sun Lng"})
	assert.Error(t, cat.Validate(MoonDetectionOrb))
}
