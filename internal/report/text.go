package report

import (
	"fmt"
	"strings"

	"AstroTrade/internal/domain/models"
	"AstroTrade/pkg/util"
)

// MaxRunes is the longest message a chat transport accepts.
const MaxRunes = 4000

const (
	clockLayout = "03:04 PM"
	rule        = "──────────────"
	maxTransits = 10
)

// StockText renders a stock day report.
func StockText(r *models.StockReport) string {
	var b strings.Builder
	if !r.Found {
		fmt.Fprintf(&b, "⚠️ No natal data for %q.\n", r.Query)
		return b.String()
	}
	fmt.Fprintf(&b, "📌 Stock: %s\n", r.Stock)
	fmt.Fprintf(&b, "📅 Date: %s\n", r.Date)
	fmt.Fprintf(&b, "🧠 Opportunity rating: %s (%s)\n", r.Rating.Stars, r.Rating.Label)
	fmt.Fprintf(&b, "⚖️ Energy: %s\n", r.Rating.Summary)
	fmt.Fprintf(&b, "📊 Outlook: %s\n\n%s\n\n", r.Outlook.Status, rule)

	if len(r.Windows) == 0 {
		b.WriteString("No active aspects for this day.\n\n")
	} else {
		b.WriteString("🎯 Aspect windows for the day:\n\n")
	}
	for _, w := range r.Windows {
		aspect := w.Aspect
		if w.AspectMeaning != "" {
			aspect += " (" + w.AspectMeaning + ")"
		}
		fmt.Fprintf(&b, "🔹 %s (transit) %s %s %s (natal)\n", w.TransitPlanet, aspect, w.AspectIcon, w.NatalPlanet)
		fmt.Fprintf(&b, "   🔸 %s\n", w.TransitPosition)
		fmt.Fprintf(&b, "   🔸 %s\n", w.NatalPosition)
		fmt.Fprintf(&b, "   📝 %s %s\n", w.Note, w.PlanetMeaning)
		fmt.Fprintf(&b, "   ⏱️ Timeframe: %s\n", w.Timeframe)
		if w.WholeDay {
			b.WriteString("   ⏰ 🔄 active all day\n\n")
		} else {
			fmt.Fprintf(&b, "   ⏰ %s - %s (peak %s)\n\n",
				w.Start.Format(clockLayout), w.End.Format(clockLayout), w.Peak.Format(clockLayout))
		}
	}

	fmt.Fprintf(&b, "%s\n🌍 General sky:\n", rule)
	if len(r.General) == 0 {
		b.WriteString("No general aspects active.\n")
	}
	for _, a := range r.General {
		fmt.Fprintf(&b, "🔹 %s %s %s %s\n", a.Icon1, a.Aspect, a.AspectIcon, a.Icon2)
	}
	return util.TruncateRunes(b.String(), MaxRunes)
}

// TransitText renders the transit-to-transit aspects at an instant.
func TransitText(r *models.TransitReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🌍 General sky\n📅 %s | ⏰ %s\n\n", r.At.Format(util.DayLayout), r.At.Format("15:04"))

	if len(r.Positions) > 0 {
		b.WriteString("🪐 Positions:\n")
		for _, p := range r.Positions {
			fmt.Fprintf(&b, "%s %s\n", p.Icon, p.Text)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "%s\n🔥 Active aspects:\n\n", rule)
	if len(r.Aspects) == 0 {
		b.WriteString("No aspects active right now.\n")
	}
	for i, a := range r.Aspects {
		if i == maxTransits {
			break
		}
		fmt.Fprintf(&b, "🔹 %s %s %.2f°\n", a.Icon1, a.Planet1, a.Degree1)
		fmt.Fprintf(&b, "   🔸 %s %s %.2f°\n", a.Icon2, a.Planet2, a.Degree2)
		fmt.Fprintf(&b, "   🔹 %s %s (%d°, orb %.2f°)\n\n", a.Aspect, a.AspectIcon, int(a.Exact), a.Deviation)
	}
	return util.TruncateRunes(b.String(), MaxRunes)
}

// MoonText renders an hourly moon scan.
func MoonText(s *models.MoonScan) string {
	var b strings.Builder
	b.WriteString("🌙 Intraday trading (Moon) - hourly scan\n")
	if s.Stock != "" {
		fmt.Fprintf(&b, "📌 %s\n", s.Stock)
	}
	fmt.Fprintf(&b, "📅 %s\n", s.Date)
	if s.MoonSign != "" {
		fmt.Fprintf(&b, "🌑 Moon in %s (%.2f°)\n", s.MoonSign, s.MoonDegree)
		fmt.Fprintf(&b, "Element: %s\n", s.Element)
	}
	fmt.Fprintf(&b, "\n%s\n", rule)

	if len(s.Hours) == 0 {
		b.WriteString("⚠️ No intraday opportunities for this day.")
		return b.String()
	}
	for _, h := range s.Hours {
		fmt.Fprintf(&b, "⏰ %s\n", h.Time.Format(clockLayout))
		for _, o := range h.Opportunities {
			fmt.Fprintf(&b, "   🔹 %s (%s)\n", o.Stock, o.Planet)
			fmt.Fprintf(&b, "      %s %s (orb %.2f°)\n", o.Aspect, o.Icon, o.Deviation)
			fmt.Fprintf(&b, "      %s\n", o.Status)
			fmt.Fprintf(&b, "      💡 %s\n", o.Advice)
			if o.Note != "" {
				fmt.Fprintf(&b, "      🌍 %s\n", o.Note)
			}
		}
		b.WriteString("\n")
	}
	return util.TruncateRunes(b.String(), MaxRunes)
}

// SectorText renders the stocks of one sign's sector.
func SectorText(r *models.SectorReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🏭 Sector: %s (%s)\n📅 %s\n\n", r.Sector, r.Sign, r.Date)
	if len(r.Stocks) == 0 {
		b.WriteString("No active opportunities for this sector on this day.")
		return b.String()
	}
	for _, e := range r.Stocks {
		fmt.Fprintf(&b, "📌 %s %s (%s)\n", e.Stock, e.Rating.Stars, e.Rating.Label)
		for _, a := range e.Aspects {
			fmt.Fprintf(&b, "   %s %s %s %s %s (orb %.2f°)\n",
				a.TransitIcon, a.TransitPlanet, a.Aspect, a.AspectIcon, a.NatalPlanet, a.Deviation)
		}
		b.WriteString("\n")
	}
	return util.TruncateRunes(b.String(), MaxRunes)
}
