package rating

import "AstroTrade/internal/domain/models"

// GeneralScore nets positive against negative transit-to-transit aspects.
func GeneralScore(aspects []models.TransitAspect) int {
	score := 0
	for _, a := range aspects {
		switch a.Polarity {
		case models.PolarityPositive:
			score++
		case models.PolarityNegative:
			score--
		}
	}
	return score
}

func polarityOf(score int) models.Polarity {
	if score < 0 {
		return models.PolarityNegative
	}
	return models.PolarityPositive
}

// Outlook combines the general sky with a stock's rating score.
func Outlook(general []models.TransitAspect, stockScore int) models.Outlook {
	gs := GeneralScore(general)
	o := models.Outlook{
		GeneralScore: gs,
		General:      polarityOf(gs),
		Stock:        polarityOf(stockScore),
	}
	switch {
	case o.General == models.PolarityNegative && o.Stock == models.PolarityPositive:
		o.Status = "⚠️ weak movement: stock supported but the general sky is heavy"
	case o.General == models.PolarityNegative && o.Stock == models.PolarityNegative:
		o.Status = "⛔ dangerous grind: general sky and stock both negative"
	case o.General == models.PolarityPositive && o.Stock == models.PolarityPositive:
		o.Status = "🚀 upside: general sky and stock both supportive"
	default:
		o.Status = "⚖️ mixed: general sky supportive, stock under pressure"
	}
	return o
}
