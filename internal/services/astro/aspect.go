package astro

import (
	"fmt"
	"math"
	"sort"

	"AstroTrade/internal/domain/models"
)

const (
	// DefaultOrb is the tolerance for transit aspects.
	DefaultOrb = 1.0
	// MoonDetectionOrb is the wider first-stage tolerance of the moon scan.
	MoonDetectionOrb = 1.5
	// ActivationOrb is the deviation under which an applying aspect counts.
	ActivationOrb = 1.0
	// ExactOrb is the deviation under which an aspect is treated as exact.
	ExactOrb = 0.1
	// ConjunctionEpsilon is the near-zero window accepted for conjunctions.
	ConjunctionEpsilon = 0.1
)

// Classify matches angle against the ordered definitions and returns the
// first one within orb. Every match is reported as applying.
//
// A conjunction matches when the angle is within orb of 360 or no more than
// ConjunctionEpsilon above zero. AngleDiff never yields values above 180, so
// for engine output only the near-zero window applies.
func Classify(angle, orb float64, defs []models.AspectDef) (models.AspectMatch, bool) {
	for _, def := range defs {
		if def.Exact == 0 {
			if angle >= 360-orb || angle <= ConjunctionEpsilon {
				dev := math.Abs(angle)
				if angle >= 180 {
					dev = math.Abs(angle - 360)
				}
				return newMatch(def, dev), true
			}
			continue
		}
		if dev := math.Abs(angle - def.Exact); dev <= orb {
			return newMatch(def, dev), true
		}
	}
	return models.AspectMatch{}, false
}

func newMatch(def models.AspectDef, dev float64) models.AspectMatch {
	return models.AspectMatch{
		Name:      def.Name,
		Exact:     def.Exact,
		Icon:      def.Icon,
		Polarity:  def.Polarity,
		Deviation: dev,
		Applying:  true,
	}
}

// ValidateAspects rejects catalogs whose windows overlap at maxOrb, which
// would make first-match differ from closest-match.
func ValidateAspects(defs []models.AspectDef, maxOrb float64) error {
	if len(defs) == 0 {
		return fmt.Errorf("aspects: empty catalog")
	}
	if maxOrb <= 0 {
		return fmt.Errorf("aspects: orb must be positive, got %v", maxOrb)
	}
	exacts := make([]float64, 0, len(defs))
	for _, d := range defs {
		if d.Name == "" {
			return fmt.Errorf("aspects: definition at %v has no name", d.Exact)
		}
		if d.Exact < 0 || d.Exact > 180 {
			return fmt.Errorf("aspects: %s exact angle %v outside [0, 180]", d.Name, d.Exact)
		}
		switch d.Polarity {
		case models.PolarityPositive, models.PolarityNegative, models.PolarityNeutral:
		default:
			return fmt.Errorf("aspects: %s has unknown polarity %q", d.Name, d.Polarity)
		}
		exacts = append(exacts, d.Exact)
	}
	sort.Float64s(exacts)
	for i := 1; i < len(exacts); i++ {
		if exacts[i]-exacts[i-1] <= 2*maxOrb {
			return fmt.Errorf("aspects: windows around %v and %v overlap at orb %v", exacts[i-1], exacts[i], maxOrb)
		}
	}
	return nil
}
