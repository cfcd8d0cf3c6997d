package models

import "time"

// Rating is the scored summary of a stock's aspects for a day.
type Rating struct {
	Stars    string `json:"stars"`
	Label    string `json:"label"`
	Score    int    `json:"score"`
	Positive int    `json:"positive"`
	Negative int    `json:"negative"`
	Summary  string `json:"summary"`
}

// Outlook combines the general sky with a stock's own rating.
type Outlook struct {
	GeneralScore int      `json:"general_score"`
	General      Polarity `json:"general"`
	Stock        Polarity `json:"stock"`
	Status       string   `json:"status"`
}

// AspectWindow groups the hourly hits of one (transit planet, natal planet,
// aspect) triple within a day.
type AspectWindow struct {
	TransitPlanet   string    `json:"transit_planet"`
	TransitIcon     string    `json:"transit_icon"`
	NatalPlanet     string    `json:"natal_planet"`
	Aspect          string    `json:"aspect"`
	AspectIcon      string    `json:"aspect_icon"`
	Polarity        Polarity  `json:"polarity"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	Peak            time.Time `json:"peak"`
	PeakDeviation   float64   `json:"peak_deviation"`
	WholeDay        bool      `json:"whole_day"`
	Hits            int       `json:"hits"`
	Timeframe       string    `json:"timeframe"`
	NatalPosition   string    `json:"natal_position"`
	TransitPosition string    `json:"transit_position"`
	PlanetMeaning   string    `json:"planet_meaning"`
	AspectMeaning   string    `json:"aspect_meaning"`
	Note            string    `json:"note"`
}

// StockReport is the full day analysis for one stock query.
type StockReport struct {
	Query   string          `json:"query"`
	Stock   string          `json:"stock"`
	Date    string          `json:"date"`
	Found   bool            `json:"found"`
	Rating  Rating          `json:"rating"`
	Outlook Outlook         `json:"outlook"`
	Windows []AspectWindow  `json:"windows"`
	Aspects []NatalAspect   `json:"aspects"`
	General []TransitAspect `json:"general"`
	Version uint64          `json:"snapshot_version"`
}

// TransitReport lists transit-to-transit aspects and positions at an instant.
type TransitReport struct {
	At        time.Time        `json:"at"`
	Aspects   []TransitAspect  `json:"aspects"`
	Positions []PlanetPosition `json:"positions"`
	Version   uint64           `json:"snapshot_version"`
}

// MoonScan is the hourly moon scan of one day, optionally for one stock.
type MoonScan struct {
	Date       string     `json:"date"`
	Stock      string     `json:"stock,omitempty"`
	MoonSign   string     `json:"moon_sign,omitempty"`
	MoonDegree float64    `json:"moon_degree"`
	Element    string     `json:"element,omitempty"`
	Hours      []MoonHour `json:"hours"`
	Version    uint64     `json:"snapshot_version"`
}

// Opportunities counts opportunities across all hours.
func (s *MoonScan) Opportunities() int {
	n := 0
	for _, h := range s.Hours {
		n += len(h.Opportunities)
	}
	return n
}

// SectorEntry is one stock of a sector listing.
type SectorEntry struct {
	Stock   string        `json:"stock"`
	Rating  Rating        `json:"rating"`
	Aspects []NatalAspect `json:"aspects"`
}

// SectorReport lists stocks with a natal placement in one sign.
type SectorReport struct {
	Sign    string        `json:"sign"`
	Sector  string        `json:"sector"`
	Date    string        `json:"date"`
	Stocks  []SectorEntry `json:"stocks"`
	Version uint64        `json:"snapshot_version"`
}

// ReloadResult describes a completed reference-data reload.
type ReloadResult struct {
	Version  uint64    `json:"version"`
	LoadedAt time.Time `json:"loaded_at"`
	Natal    int       `json:"natal_rows"`
	Transits int       `json:"transit_rows"`
	Moon     int       `json:"moon_rows"`
	Stocks   int       `json:"stocks"`
}
