package rating

import (
	"strings"

	"AstroTrade/internal/domain/models"
)

// PlanetSets classifies planets as benefic or malefic for scoring.
type PlanetSets struct {
	benefic map[string]struct{}
	malefic map[string]struct{}
}

// NewPlanetSets builds sets from planet names; matching is case-insensitive.
func NewPlanetSets(benefic, malefic []string) PlanetSets {
	return PlanetSets{benefic: toSet(benefic), malefic: toSet(malefic)}
}

// DefaultPlanetSets uses the traditional benefics and malefics.
func DefaultPlanetSets() PlanetSets {
	return NewPlanetSets(
		[]string{models.PlanetVenus, models.PlanetJupiter},
		[]string{models.PlanetMars, models.PlanetSaturn, models.PlanetPluto},
	)
}

func toSet(names []string) map[string]struct{} {
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		m[strings.ToLower(strings.TrimSpace(n))] = struct{}{}
	}
	return m
}

func (s PlanetSets) IsBenefic(planet string) bool {
	_, ok := s.benefic[strings.ToLower(planet)]
	return ok
}

func (s PlanetSets) IsMalefic(planet string) bool {
	_, ok := s.malefic[strings.ToLower(planet)]
	return ok
}

type tier struct {
	min   int
	stars string
	label string
}

var tiers = []tier{
	{8, "⭐⭐⭐⭐⭐", "golden opportunity"},
	{5, "⭐⭐⭐⭐", "excellent"},
	{2, "⭐⭐⭐", "good"},
	{0, "⭐⭐", "average"},
}

const (
	weakStars = "⭐"
	weakLabel = "weak"
	noneLabel = "no relationships"
)

// Score returns the contribution of one aspect hit.
func Score(hit models.NatalAspect, sets PlanetSets) int {
	s, _ := contribution(hit, sets)
	return s
}

// contribution scores hit and reports which side of the energy tally it
// counts on: +1 positive, -1 negative, 0 not counted. Sextile and quincunx
// score nothing and are not counted.
func contribution(hit models.NatalAspect, sets PlanetSets) (score, tally int) {
	switch hit.Aspect {
	case models.AspectTrine:
		score = 3
		if sets.IsBenefic(hit.TransitPlanet) {
			score++
		}
		if sets.IsBenefic(hit.NatalPlanet) {
			score++
		}
		return score, 1
	case models.AspectConjunction:
		switch {
		case sets.IsBenefic(hit.TransitPlanet) || sets.IsBenefic(hit.NatalPlanet):
			return 2, 1
		case sets.IsMalefic(hit.TransitPlanet) || sets.IsMalefic(hit.NatalPlanet):
			return -1, -1
		default:
			return 1, 1
		}
	case models.AspectSquare, models.AspectOpposition:
		score = -2
		if sets.IsMalefic(hit.TransitPlanet) {
			score--
		}
		if sets.IsMalefic(hit.NatalPlanet) {
			score--
		}
		return score, -1
	}
	return 0, 0
}

// Rate scores a stock's aspect hits and maps the total to a star tier.
func Rate(hits []models.NatalAspect, sets PlanetSets) models.Rating {
	if len(hits) == 0 {
		return models.Rating{Stars: weakStars, Label: noneLabel, Summary: Summary(0, 0)}
	}
	r := models.Rating{}
	for _, h := range hits {
		score, tally := contribution(h, sets)
		r.Score += score
		switch tally {
		case 1:
			r.Positive++
		case -1:
			r.Negative++
		}
	}
	r.Stars, r.Label = weakStars, weakLabel
	for _, t := range tiers {
		if r.Score >= t.min {
			r.Stars, r.Label = t.stars, t.label
			break
		}
	}
	r.Summary = Summary(r.Positive, r.Negative)
	return r
}

// Summary describes the balance of positive and negative aspects.
func Summary(pos, neg int) string {
	switch {
	case pos > 2*neg:
		return "strong positive energy"
	case pos > neg:
		return "moderately positive energy"
	case pos == neg:
		return "balanced energy"
	default:
		return "difficult energy, caution advised"
	}
}
