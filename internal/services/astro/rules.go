package astro

import "AstroTrade/internal/domain/models"

var planetMeanings = map[string]string{
	models.PlanetSun:       "leadership, visibility and management news",
	models.PlanetMoon:      "crowd mood and short-term flows",
	models.PlanetMercury:   "news, contracts and trading volume",
	models.PlanetVenus:     "liquidity, valuation and investor appetite",
	models.PlanetMars:      "aggressive moves and sharp volatility",
	models.PlanetJupiter:   "expansion, growth and optimism",
	models.PlanetSaturn:    "restriction, pressure and corrections",
	models.PlanetUranus:    "sudden surprises and gaps",
	models.PlanetNeptune:   "rumours, illusion and speculation",
	models.PlanetPluto:     "deep transformation and large players",
	models.PlanetNorthNode: "future direction and new trend",
	models.PlanetSouthNode: "release of old patterns",
}

var aspectMeanings = map[string]string{
	models.AspectConjunction: "merging of energies, a new cycle starts",
	models.AspectSemiSextile: "minor adjustment",
	models.AspectSextile:     "opportunity that needs action",
	models.AspectSquare:      "friction and obstacles",
	models.AspectTrine:       "easy flow and support",
	models.AspectQuincunx:    "awkward adjustment and strain",
	models.AspectOpposition:  "tension between opposite forces",
}

var timeframes = map[string]string{
	models.PlanetSun:       "Daily",
	models.PlanetMoon:      "1H",
	models.PlanetMercury:   "4H",
	models.PlanetVenus:     "Daily",
	models.PlanetMars:      "Daily",
	models.PlanetJupiter:   "Weekly",
	models.PlanetSaturn:    "Monthly",
	models.PlanetUranus:    "Monthly",
	models.PlanetNeptune:   "Monthly",
	models.PlanetPluto:     "Monthly",
	models.PlanetNorthNode: "Weekly",
	models.PlanetSouthNode: "Weekly",
}

// PlanetMeaning returns the market theme of a transiting planet.
func PlanetMeaning(planet string) string { return planetMeanings[planet] }

// AspectMeaning returns the market theme of an aspect.
func AspectMeaning(aspect string) string { return aspectMeanings[aspect] }

// Timeframe returns the chart timeframe a transit of planet plays out on.
func Timeframe(planet string) string {
	if tf, ok := timeframes[planet]; ok {
		return tf
	}
	return "Daily"
}

// ActivationStatus describes where an applying aspect stands. Empty means
// the aspect is not active and must be dropped.
func ActivationStatus(dev float64, applying bool) string {
	if !applying || dev > ActivationOrb {
		return ""
	}
	if dev < ExactOrb {
		return "⚡ exact: reaction due now"
	}
	return "⏳ activating: action building toward exact"
}

// NeptuneNote warns about Neptune transits, which blur price signals.
func NeptuneNote(planet, aspect string, polarity models.Polarity) string {
	if planet != models.PlanetNeptune {
		return ""
	}
	switch {
	case polarity == models.PolarityNegative:
		return "🌫️ Neptune: beware misleading news and false breakouts"
	case aspect == models.AspectConjunction:
		return "🌫️ Neptune: direction unclear, wait for confirmation"
	case polarity == models.PolarityPositive:
		return "🌫️ Neptune: optimism may be inflated, take partial profits"
	}
	return ""
}

// MarsNote flags hard Mars contacts.
func MarsNote(planet, aspect string) string {
	if planet != models.PlanetMars {
		return ""
	}
	switch aspect {
	case models.AspectConjunction, models.AspectSquare, models.AspectOpposition:
		return "🔥 Mars: expect sharp volatility, keep stops tight"
	}
	return ""
}

// EntrySignal suggests an entry stance for aspects close to exact.
func EntrySignal(polarity models.Polarity, dev float64, applying bool) string {
	if !applying || dev > 0.5 {
		return ""
	}
	switch polarity {
	case models.PolarityPositive:
		return "🎯 entry: buy zone near exact"
	case models.PolarityNegative:
		return "🛑 no entry: protect open positions"
	}
	return ""
}
