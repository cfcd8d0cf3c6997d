package astro

import (
	"testing"

	"AstroTrade/internal/domain/models"

	"github.com/stretchr/testify/assert"
)

func TestSignOf(t *testing.T) {
	cases := []struct {
		deg  float64
		want Sign
	}{
		{0, Aries},
		{29.99, Aries},
		{30, Taurus},
		{185, Libra},
		{359.9, Pisces},
		{360, Aries},
		{-1, Pisces},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SignOf(tc.deg), "SignOf(%v)", tc.deg)
	}
}

func TestDegreeInSign(t *testing.T) {
	assert.InDelta(t, 5.0, DegreeInSign(185), 1e-9)
	assert.InDelta(t, 29.5, DegreeInSign(299.5), 1e-9)
	assert.InDelta(t, 29.0, DegreeInSign(-1), 1e-9)
}

func TestParseSign(t *testing.T) {
	for label, want := range map[string]Sign{
		"Aries":      Aries,
		" capricorn": Capricorn,
		"SAG":        Sagittarius,
		"الحوت":      Pisces,
		"الأسد":      Leo,
	} {
		got, ok := ParseSign(label)
		assert.True(t, ok, label)
		assert.Equal(t, want, got, label)
	}
	_, ok := ParseSign("Ophiuchus")
	assert.False(t, ok)
}

func TestElementOf(t *testing.T) {
	assert.Equal(t, Fire, ElementOf(Sagittarius))
	assert.Equal(t, Earth, ElementOf(Virgo))
	assert.Equal(t, Air, ElementOf(Aquarius))
	assert.Equal(t, Water, ElementOf(Scorpio))
	assert.Equal(t, Element(""), ElementOf(SignUnknown))
	assert.Equal(t, "Water 💧", Water.Label())
}

func TestDignityOf(t *testing.T) {
	d, ok := DignityOf(models.PlanetMoon, Capricorn)
	assert.True(t, ok)
	assert.Equal(t, Detriment, d)

	d, ok = DignityOf(models.PlanetMercury, Virgo)
	assert.True(t, ok)
	assert.Equal(t, Ruler, d)

	_, ok = DignityOf(models.PlanetSun, Gemini)
	assert.False(t, ok)

	_, ok = DignityOf(models.PlanetNorthNode, Aries)
	assert.False(t, ok)
}

func TestFormatPosition(t *testing.T) {
	assert.Equal(t, "Moon in Capricorn 29° (detriment ⚠️)", FormatPosition(models.PlanetMoon, 299.5))
	assert.Equal(t, "Sun in Gemini 10°", FormatPosition(models.PlanetSun, 70.2))
}

func TestSectorOf(t *testing.T) {
	assert.Equal(t, "Technology", SectorOf(Aquarius))
	assert.Empty(t, SectorOf(SignUnknown))
}
