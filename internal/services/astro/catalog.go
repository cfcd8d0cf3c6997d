package astro

import (
	"fmt"
	"strings"

	"AstroTrade/internal/domain/models"
)

// Catalog holds the ordered planet and aspect tables the engines iterate.
type Catalog struct {
	Planets    []models.PlanetRef
	Aspects    []models.AspectDef
	MoonColumn string
}

// DefaultCatalog returns the shipped planet list and aspect table.
// Aspect order matters: classification is first-match.
func DefaultCatalog() Catalog {
	return Catalog{
		Planets: []models.PlanetRef{
			{Name: models.PlanetSun, Column: "Sun Lng", Icon: "☉"},
			{Name: models.PlanetMoon, Column: "Moon Lng", Icon: "☽"},
			{Name: models.PlanetMercury, Column: "Mercury Lng", Icon: "☿"},
			{Name: models.PlanetVenus, Column: "Venus Lng", Icon: "♀"},
			{Name: models.PlanetMars, Column: "Mars Lng", Icon: "♂"},
			{Name: models.PlanetJupiter, Column: "Jupiter Lng", Icon: "♃"},
			{Name: models.PlanetSaturn, Column: "Saturn Lng", Icon: "♄"},
			{Name: models.PlanetUranus, Column: "Uranus Lng", Icon: "♅"},
			{Name: models.PlanetNeptune, Column: "Neptune Lng", Icon: "♆"},
			{Name: models.PlanetPluto, Column: "Pluto Lng", Icon: "♇"},
			{Name: models.PlanetNorthNode, Column: "Lunar North Node (True) Lng", Icon: "☊"},
			{Name: models.PlanetSouthNode, Column: "Lunar South Node (True) Lng", Icon: "☋"},
		},
		Aspects: []models.AspectDef{
			{Name: models.AspectConjunction, Exact: 0, Icon: "☌", Polarity: models.PolarityNeutral},
			{Name: models.AspectSemiSextile, Exact: 30, Icon: "⚺", Polarity: models.PolarityNeutral},
			{Name: models.AspectSextile, Exact: 60, Icon: "⚹", Polarity: models.PolarityPositive},
			{Name: models.AspectSquare, Exact: 90, Icon: "□", Polarity: models.PolarityNegative},
			{Name: models.AspectTrine, Exact: 120, Icon: "△", Polarity: models.PolarityPositive},
			{Name: models.AspectQuincunx, Exact: 150, Icon: "⚻", Polarity: models.PolarityNegative},
			{Name: models.AspectOpposition, Exact: 180, Icon: "☍", Polarity: models.PolarityNegative},
		},
		MoonColumn: "Moon Lng",
	}
}

// Planet looks up a planet by name, case-insensitively.
func (c Catalog) Planet(name string) (models.PlanetRef, bool) {
	for _, p := range c.Planets {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return models.PlanetRef{}, false
}

// Icon returns the planet icon or an empty string.
func (c Catalog) Icon(name string) string {
	p, _ := c.Planet(name)
	return p.Icon
}

// Validate checks that the catalog can be used with the given maximum orb.
func (c Catalog) Validate(maxOrb float64) error {
	if len(c.Planets) == 0 {
		return fmt.Errorf("catalog: no planets")
	}
	seen := make(map[string]struct{}, len(c.Planets))
	for _, p := range c.Planets {
		if p.Name == "" || p.Column == "" {
			return fmt.Errorf("catalog: planet %q has no name or column", p.Name)
		}
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("catalog: duplicate planet %q", p.Name)
		}
		seen[p.Name] = struct{}{}
	}
	if c.MoonColumn == "" {
		return fmt.Errorf("catalog: moon column is empty")
	}
	return ValidateAspects(c.Aspects, maxOrb)
}

// IsNode reports whether the planet is a lunar node.
func IsNode(planet string) bool {
	return strings.Contains(strings.ToLower(planet), "node")
}

// IsMoon reports whether the planet is the Moon.
func IsMoon(planet string) bool {
	return strings.EqualFold(planet, models.PlanetMoon)
}

var sectors = map[Sign]string{
	Aries:       "Energy & Defense",
	Taurus:      "Banking & Agriculture",
	Gemini:      "Telecom & Media",
	Cancer:      "Real Estate & Food",
	Leo:         "Entertainment & Luxury",
	Virgo:       "Healthcare & Services",
	Libra:       "Retail & Consumer",
	Scorpio:     "Insurance & Mining",
	Sagittarius: "Transport & Education",
	Capricorn:   "Industrials & Construction",
	Aquarius:    "Technology",
	Pisces:      "Pharma & Shipping",
}

// SectorOf returns the market sector associated with a sign.
func SectorOf(s Sign) string {
	return sectors[s]
}
