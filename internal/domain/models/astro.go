package models

import (
	"math"
	"time"
)

// Polarity is the trading character of an aspect.
type Polarity string

const (
	PolarityPositive Polarity = "positive"
	PolarityNegative Polarity = "negative"
	PolarityNeutral  Polarity = "neutral"
)

// Aspect names used by the shipped catalog and the rating rules.
const (
	AspectConjunction = "Conjunction"
	AspectSemiSextile = "Semi-Sextile"
	AspectSextile     = "Sextile"
	AspectSquare      = "Square"
	AspectTrine       = "Trine"
	AspectQuincunx    = "Quincunx"
	AspectOpposition  = "Opposition"
)

// Canonical planet names.
const (
	PlanetSun       = "Sun"
	PlanetMoon      = "Moon"
	PlanetMercury   = "Mercury"
	PlanetVenus     = "Venus"
	PlanetMars      = "Mars"
	PlanetJupiter   = "Jupiter"
	PlanetSaturn    = "Saturn"
	PlanetUranus    = "Uranus"
	PlanetNeptune   = "Neptune"
	PlanetPluto     = "Pluto"
	PlanetNorthNode = "North Node"
	PlanetSouthNode = "South Node"
)

// PlanetRef binds a planet name to its icon and its longitude column in
// transit samples.
type PlanetRef struct {
	Name   string `json:"name"`
	Column string `json:"column"`
	Icon   string `json:"icon"`
}

// AspectDef is one entry of the ordered aspect catalog.
type AspectDef struct {
	Name     string   `json:"name"`
	Exact    float64  `json:"exact"`
	Icon     string   `json:"icon"`
	Polarity Polarity `json:"polarity"`
}

// AspectMatch is the result of classifying an angle.
type AspectMatch struct {
	Name      string   `json:"name"`
	Exact     float64  `json:"exact"`
	Icon      string   `json:"icon"`
	Polarity  Polarity `json:"polarity"`
	Deviation float64  `json:"deviation"`
	Applying  bool     `json:"applying"`
}

// NatalRow is one natal planet of one stock.
type NatalRow struct {
	Stock  string  `json:"stock"`
	Planet string  `json:"planet"`
	Sign   string  `json:"sign"`
	Degree float64 `json:"degree"`
}

// TransitRow is one timestamped sample of planetary longitudes keyed by
// column name. Sign is only set on moon samples that carry a sign label.
type TransitRow struct {
	Time    time.Time          `json:"time"`
	Degrees map[string]float64 `json:"degrees"`
	Sign    string             `json:"sign,omitempty"`
}

// Degree returns the longitude stored under column. Missing and non-finite
// values report false.
func (r TransitRow) Degree(column string) (float64, bool) {
	v, ok := r.Degrees[column]
	if !ok || !IsFinite(v) {
		return 0, false
	}
	return v, true
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// TransitAspect is an aspect between two transiting planets.
type TransitAspect struct {
	Planet1    string    `json:"planet1"`
	Icon1      string    `json:"icon1"`
	Degree1    float64   `json:"degree1"`
	Planet2    string    `json:"planet2"`
	Icon2      string    `json:"icon2"`
	Degree2    float64   `json:"degree2"`
	Aspect     string    `json:"aspect"`
	Exact      float64   `json:"exact"`
	AspectIcon string    `json:"aspect_icon"`
	Polarity   Polarity  `json:"polarity"`
	Deviation  float64   `json:"deviation"`
	Time       time.Time `json:"time"`
}

// NatalAspect is a transit planet aspecting a stock's natal planet.
type NatalAspect struct {
	Stock         string    `json:"stock"`
	NatalPlanet   string    `json:"natal_planet"`
	NatalSign     string    `json:"natal_sign"`
	NatalDegree   float64   `json:"natal_degree"`
	TransitPlanet string    `json:"transit_planet"`
	TransitIcon   string    `json:"transit_icon"`
	TransitDegree float64   `json:"transit_degree"`
	Aspect        string    `json:"aspect"`
	Exact         float64   `json:"exact"`
	AspectIcon    string    `json:"aspect_icon"`
	Polarity      Polarity  `json:"polarity"`
	Deviation     float64   `json:"deviation"`
	Applying      bool      `json:"applying"`
	Time          time.Time `json:"time"`
	PlanetMeaning string    `json:"planet_meaning"`
	AspectMeaning string    `json:"aspect_meaning"`
	Note          string    `json:"note"`
}

// MoonOpportunity is one stock activated by the Moon at a given hour.
type MoonOpportunity struct {
	Stock     string   `json:"stock"`
	Planet    string   `json:"planet"`
	Aspect    string   `json:"aspect"`
	Icon      string   `json:"icon"`
	Polarity  Polarity `json:"polarity"`
	Deviation float64  `json:"deviation"`
	Exact     bool     `json:"exact"`
	Status    string   `json:"status"`
	Advice    string   `json:"advice"`
	Note      string   `json:"note,omitempty"`
}

// MoonHour is the Moon position at one instant and the stocks it activates.
type MoonHour struct {
	Hour          int               `json:"hour"`
	Time          time.Time         `json:"time"`
	MoonSign      string            `json:"moon_sign"`
	MoonDegree    float64           `json:"moon_degree"`
	Element       string            `json:"element"`
	Opportunities []MoonOpportunity `json:"opportunities"`
}

// PlanetPosition is a planet's placement at the nearest sample.
type PlanetPosition struct {
	Planet       string    `json:"planet"`
	Icon         string    `json:"icon"`
	Longitude    float64   `json:"longitude"`
	Sign         string    `json:"sign"`
	DegreeInSign float64   `json:"degree_in_sign"`
	Dignity      string    `json:"dignity,omitempty"`
	Text         string    `json:"text"`
	Time         time.Time `json:"time"`
}

// Snapshot is an immutable set of reference tables. A reload produces a new
// snapshot; readers never observe a partially loaded one.
type Snapshot struct {
	Version  uint64       `json:"version"`
	LoadedAt time.Time    `json:"loaded_at"`
	Natal    []NatalRow   `json:"-"`
	Transits []TransitRow `json:"-"`
	Moon     []TransitRow `json:"-"`
}

// MoonSource returns the dedicated moon samples, or the transit samples when
// no moon table was loaded.
func (s *Snapshot) MoonSource() []TransitRow {
	if len(s.Moon) > 0 {
		return s.Moon
	}
	return s.Transits
}
