package astro

import (
	"fmt"
	"math"
	"strings"

	"AstroTrade/internal/domain/models"
)

// Sign is a zodiac sign, Aries = 0 through Pisces = 11.
type Sign int

const (
	Aries Sign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

// SignUnknown is returned for labels that name no sign.
const SignUnknown Sign = -1

var signNames = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// Arabic labels appear in the source reference tables.
var arabicSigns = [12]string{
	"الحمل", "الثور", "الجوزاء", "السرطان", "الأسد", "العذراء",
	"الميزان", "العقرب", "القوس", "الجدي", "الدلو", "الحوت",
}

var signAliases = func() map[string]Sign {
	m := make(map[string]Sign, 48)
	for i, name := range signNames {
		s := Sign(i)
		m[strings.ToLower(name)] = s
		m[strings.ToLower(name[:3])] = s
		m[arabicSigns[i]] = s
	}
	m["الاسد"] = Leo
	return m
}()

func (s Sign) Valid() bool { return s >= Aries && s <= Pisces }

func (s Sign) String() string {
	if !s.Valid() {
		return "Unknown"
	}
	return signNames[s]
}

// SignOf returns the sign containing an ecliptic longitude.
func SignOf(deg float64) Sign {
	return Sign(int(normalize(deg)/30) % 12)
}

// DegreeInSign returns the longitude's offset within its sign, in [0, 30).
func DegreeInSign(deg float64) float64 {
	return math.Mod(normalize(deg), 30)
}

// ParseSign resolves an English (full or three-letter) or Arabic sign label.
func ParseSign(label string) (Sign, bool) {
	s, ok := signAliases[strings.ToLower(strings.TrimSpace(label))]
	if !ok {
		return SignUnknown, false
	}
	return s, true
}

// Element is the classical element of a sign.
type Element string

const (
	Fire  Element = "Fire"
	Earth Element = "Earth"
	Air   Element = "Air"
	Water Element = "Water"
)

var elementIcons = map[Element]string{Fire: "🔥", Earth: "🌱", Air: "💨", Water: "💧"}

// Label returns the element with its icon.
func (e Element) Label() string {
	if e == "" {
		return ""
	}
	return string(e) + " " + elementIcons[e]
}

// ElementOf returns the element of a sign, or "" for an invalid sign.
func ElementOf(s Sign) Element {
	if !s.Valid() {
		return ""
	}
	switch s % 4 {
	case 0:
		return Fire
	case 1:
		return Earth
	case 2:
		return Air
	default:
		return Water
	}
}

// Dignity is an essential dignity or debility of a planet in a sign.
type Dignity string

const (
	Ruler      Dignity = "ruler"
	Exaltation Dignity = "exaltation"
	Detriment  Dignity = "detriment"
	Fall       Dignity = "fall"
)

var dignityIcons = map[Dignity]string{
	Ruler:      "👑",
	Exaltation: "⬆️",
	Detriment:  "⚠️",
	Fall:       "⬇️",
}

// Icon returns the dignity marker.
func (d Dignity) Icon() string { return dignityIcons[d] }

type placement struct {
	dignity Dignity
	signs   []Sign
}

// Checked in order; the first dignity listing the sign wins.
var dignityTable = map[string][]placement{
	models.PlanetSun:     {{Ruler, []Sign{Leo}}, {Exaltation, []Sign{Aries}}, {Detriment, []Sign{Aquarius}}, {Fall, []Sign{Libra}}},
	models.PlanetMoon:    {{Ruler, []Sign{Cancer}}, {Exaltation, []Sign{Taurus}}, {Detriment, []Sign{Capricorn}}, {Fall, []Sign{Scorpio}}},
	models.PlanetMercury: {{Ruler, []Sign{Gemini, Virgo}}, {Exaltation, []Sign{Virgo}}, {Detriment, []Sign{Sagittarius, Pisces}}, {Fall, []Sign{Pisces}}},
	models.PlanetVenus:   {{Ruler, []Sign{Taurus, Libra}}, {Exaltation, []Sign{Pisces}}, {Detriment, []Sign{Scorpio, Aries}}, {Fall, []Sign{Virgo}}},
	models.PlanetMars:    {{Ruler, []Sign{Aries, Scorpio}}, {Exaltation, []Sign{Capricorn}}, {Detriment, []Sign{Libra, Taurus}}, {Fall, []Sign{Cancer}}},
	models.PlanetJupiter: {{Ruler, []Sign{Sagittarius, Pisces}}, {Exaltation, []Sign{Cancer}}, {Detriment, []Sign{Gemini, Virgo}}, {Fall, []Sign{Capricorn}}},
	models.PlanetSaturn:  {{Ruler, []Sign{Capricorn, Aquarius}}, {Exaltation, []Sign{Libra}}, {Detriment, []Sign{Cancer, Leo}}, {Fall, []Sign{Aries}}},
	models.PlanetUranus:  {{Ruler, []Sign{Aquarius}}, {Exaltation, []Sign{Scorpio}}, {Detriment, []Sign{Leo}}, {Fall, []Sign{Taurus}}},
	models.PlanetNeptune: {{Ruler, []Sign{Pisces}}, {Exaltation, []Sign{Cancer}}, {Detriment, []Sign{Virgo}}, {Fall, []Sign{Capricorn}}},
	models.PlanetPluto:   {{Ruler, []Sign{Scorpio}}, {Exaltation, []Sign{Aries}}, {Detriment, []Sign{Taurus}}, {Fall, []Sign{Libra}}},
}

// DignityOf returns the planet's dignity in a sign. Planets without a table
// entry, and neutral placements, report false.
func DignityOf(planet string, s Sign) (Dignity, bool) {
	for _, p := range dignityTable[planet] {
		for _, candidate := range p.signs {
			if candidate == s {
				return p.dignity, true
			}
		}
	}
	return "", false
}

// FormatPosition renders a placement such as "Moon in Capricorn 29° (detriment ⚠️)".
func FormatPosition(planet string, deg float64) string {
	sign := SignOf(deg)
	text := fmt.Sprintf("%s in %s %d°", planet, sign, int(DegreeInSign(deg)))
	if d, ok := DignityOf(planet, sign); ok {
		text += fmt.Sprintf(" (%s %s)", d, d.Icon())
	}
	return text
}
