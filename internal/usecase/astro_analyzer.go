package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"AstroTrade/internal/domain/models"
	domrepo "AstroTrade/internal/domain/repository"
	"AstroTrade/internal/report"
	"AstroTrade/internal/services/astro"
	"AstroTrade/internal/services/rating"
	"AstroTrade/pkg/cache"
	applogger "AstroTrade/pkg/logger"
	"AstroTrade/pkg/metrics"
	"AstroTrade/pkg/util"
)

var (
	// ErrNoSnapshot is returned before the first successful reload.
	ErrNoSnapshot = errors.New("reference data not loaded")
	// ErrUnknownSign is returned for a sign label that cannot be parsed.
	ErrUnknownSign = errors.New("unknown zodiac sign")
)

const (
	generalTop       = 5
	defaultTransits  = 10
	defaultSectorTop = 2
)

type stockHits struct {
	found bool
	name  string
	hits  []models.NatalAspect
}

// Analyzer answers stock, transit, moon and sector queries against the
// currently published snapshot.
type Analyzer struct {
	store   domrepo.SnapshotStore
	aspects *cache.MemoryCache[string, stockHits]
	cat     astro.Catalog
	sets    rating.PlanetSets
	loc     *time.Location
	metrics domrepo.Metrics
	l       *applogger.Logger
}

// AnalyzerOption configures Analyzer.
type AnalyzerOption func(*Analyzer)

func WithCatalog(cat astro.Catalog) AnalyzerOption {
	return func(a *Analyzer) { a.cat = cat }
}

func WithPlanetSets(s rating.PlanetSets) AnalyzerOption {
	return func(a *Analyzer) { a.sets = s }
}

func WithLocation(loc *time.Location) AnalyzerOption {
	return func(a *Analyzer) {
		if loc != nil {
			a.loc = loc
		}
	}
}

func WithMetrics(m domrepo.Metrics) AnalyzerOption {
	return func(a *Analyzer) {
		if m != nil {
			a.metrics = m
		}
	}
}

// WithAspectCapacity bounds the per-(stock, day) aspect cache.
func WithAspectCapacity(n int) AnalyzerOption {
	return func(a *Analyzer) {
		a.aspects = cache.NewMemoryCache[string, stockHits](cache.WithMemoryMaxSize(n))
	}
}

func NewAnalyzer(store domrepo.SnapshotStore, opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{
		store:   store,
		aspects: cache.NewMemoryCache[string, stockHits](cache.WithMemoryMaxSize(2000)),
		cat:     astro.DefaultCatalog(),
		sets:    rating.DefaultPlanetSets(),
		loc:     time.UTC,
		metrics: metrics.Nop{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// SetLogger injects a structured logger.
func (a *Analyzer) SetLogger(l *applogger.Logger) { a.l = l }

// Location is the timezone calendar days are evaluated in.
func (a *Analyzer) Location() *time.Location { return a.loc }

// Version returns the published snapshot version, zero before the first load.
func (a *Analyzer) Version() uint64 {
	if snap := a.store.Current(); snap != nil {
		return snap.Version
	}
	return 0
}

// Purge drops every cached aspect list.
func (a *Analyzer) Purge() { a.aspects.Purge() }

func (a *Analyzer) snapshot() (*models.Snapshot, error) {
	snap := a.store.Current()
	if snap == nil {
		a.metrics.RecordError("no_snapshot")
		return nil, ErrNoSnapshot
	}
	return snap, nil
}

func (a *Analyzer) observe(op string, start time.Time) {
	a.metrics.RecordLatency(op, time.Since(start).Seconds())
}

// Stocks lists distinct stock ids in table order.
func (a *Analyzer) Stocks(ctx context.Context) ([]string, error) {
	snap, err := a.snapshot()
	if err != nil {
		return nil, err
	}
	return astro.StockNames(snap.Natal), nil
}

// stockAspects returns the day's natal hits for query, memoized per
// snapshot version, match key and date.
func (a *Analyzer) stockAspects(snap *models.Snapshot, query string, day time.Time) stockHits {
	key := cache.GenerateKeyWithParams("aspects", snap.Version, astro.StockQueryKey(query), day.Format(util.DayLayout))
	if v, ok := a.aspects.Get(key); ok {
		a.metrics.RecordCache("hit")
		return v
	}
	a.metrics.RecordCache("miss")

	rows, _ := astro.ResolveStock(snap.Natal, query)
	hits, name := astro.StockAspects(snap.Natal, snap.Transits, query, day, a.loc, a.cat)
	v := stockHits{found: len(rows) > 0, name: name, hits: hits}
	a.metrics.RecordAspects("natal", len(hits))
	a.aspects.Set(key, v)
	return v
}

// StockReport analyses one stock for a calendar day.
func (a *Analyzer) StockReport(ctx context.Context, query string, day time.Time) (*models.StockReport, error) {
	defer a.observe("stock_report", time.Now())
	snap, err := a.snapshot()
	if err != nil {
		return nil, err
	}
	day = day.In(a.loc)

	sh := a.stockAspects(snap, query, day)
	general := astro.TransitPairs(snap.Transits, util.Noon(day), a.cat)
	a.metrics.RecordAspects("transit", len(general))

	r := &models.StockReport{
		Query:   query,
		Stock:   sh.name,
		Date:    day.Format(util.DayLayout),
		Found:   sh.found,
		Rating:  rating.Rate(sh.hits, a.sets),
		Windows: report.GroupNatal(sh.hits),
		Aspects: sh.hits,
		General: general,
		Version: snap.Version,
	}
	r.Outlook = rating.Outlook(general, r.Rating.Score)
	if len(r.General) > generalTop {
		r.General = r.General[:generalTop]
	}

	a.l.Debug("stock report",
		applogger.String("query", query),
		applogger.String("stock", r.Stock),
		applogger.String("date", r.Date),
		applogger.Int("hits", len(sh.hits)))
	return r, nil
}

// Transits lists the transit-to-transit aspects and positions nearest to at.
func (a *Analyzer) Transits(ctx context.Context, at time.Time, limit int) (*models.TransitReport, error) {
	defer a.observe("transits", time.Now())
	snap, err := a.snapshot()
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultTransits
	}
	at = at.In(a.loc)

	aspects := astro.TransitPairs(snap.Transits, at, a.cat)
	a.metrics.RecordAspects("transit", len(aspects))
	if len(aspects) > limit {
		aspects = aspects[:limit]
	}
	return &models.TransitReport{
		At:        at,
		Aspects:   aspects,
		Positions: astro.PositionsAt(snap.Transits, at, a.cat),
		Version:   snap.Version,
	}, nil
}

// MoonDay scans every hour of day for moon opportunities. A non-empty stock
// restricts the scan to rows whose normalized id equals it; an unknown
// stock yields an empty scan.
func (a *Analyzer) MoonDay(ctx context.Context, day time.Time, stock string) (*models.MoonScan, error) {
	defer a.observe("moon_day", time.Now())
	snap, err := a.snapshot()
	if err != nil {
		return nil, err
	}
	day = day.In(a.loc)

	stocks := snap.Natal
	if stock != "" {
		want := astro.NormalizeStockName(stock)
		stocks = make([]models.NatalRow, 0)
		for _, r := range snap.Natal {
			if astro.NormalizeStockName(r.Stock) == want {
				stocks = append(stocks, r)
			}
		}
	}

	moon := snap.MoonSource()
	byHour := astro.ScanMoonDay(stocks, moon, day, a.loc, snap.Transits, a.cat)

	scan := &models.MoonScan{
		Date:    day.Format(util.DayLayout),
		Stock:   stock,
		Hours:   make([]models.MoonHour, 0, len(byHour)),
		Version: snap.Version,
	}
	hours := make([]int, 0, len(byHour))
	for h := range byHour {
		hours = append(hours, h)
	}
	sort.Ints(hours)
	for _, h := range hours {
		scan.Hours = append(scan.Hours, byHour[h])
	}

	if len(scan.Hours) > 0 {
		first := scan.Hours[0]
		scan.MoonSign, scan.MoonDegree, scan.Element = first.MoonSign, first.MoonDegree, first.Element
	} else if fix, ok := astro.MoonPosition(moon, a.cat.MoonColumn, util.Noon(day)); ok {
		scan.MoonSign, scan.MoonDegree = fix.Sign.String(), fix.DegreeInSign
		scan.Element = astro.ElementOf(fix.Sign).Label()
	}

	a.metrics.RecordAspects("moon", scan.Opportunities())
	a.l.Debug("moon scan",
		applogger.String("date", scan.Date),
		applogger.String("stock", stock),
		applogger.Int("hours", len(scan.Hours)),
		applogger.Int("opportunities", scan.Opportunities()))
	return scan, nil
}

// Sector analyses, for day, every stock with a natal row in sign and keeps
// the stocks that have active aspects, each with its first top hits.
func (a *Analyzer) Sector(ctx context.Context, signLabel string, day time.Time, top int) (*models.SectorReport, error) {
	defer a.observe("sector", time.Now())
	sign, ok := astro.ParseSign(signLabel)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSign, signLabel)
	}
	snap, err := a.snapshot()
	if err != nil {
		return nil, err
	}
	if top <= 0 {
		top = defaultSectorTop
	}
	day = day.In(a.loc)

	var names []string
	seen := make(map[string]struct{})
	for _, r := range snap.Natal {
		if s, ok := astro.ParseSign(r.Sign); !ok || s != sign {
			continue
		}
		if _, dup := seen[r.Stock]; dup {
			continue
		}
		seen[r.Stock] = struct{}{}
		names = append(names, r.Stock)
	}

	entries := make([]*models.SectorEntry, len(names))
	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			sh := a.stockAspects(snap, name, day)
			if len(sh.hits) == 0 {
				return
			}
			hits := sh.hits
			if len(hits) > top {
				hits = hits[:top]
			}
			entries[i] = &models.SectorEntry{Stock: name, Rating: rating.Rate(sh.hits, a.sets), Aspects: hits}
		}(i, name)
	}
	wg.Wait()

	r := &models.SectorReport{
		Sign:    sign.String(),
		Sector:  astro.SectorOf(sign),
		Date:    day.Format(util.DayLayout),
		Stocks:  make([]models.SectorEntry, 0, len(entries)),
		Version: snap.Version,
	}
	for _, e := range entries {
		if e != nil {
			r.Stocks = append(r.Stocks, *e)
		}
	}
	return r, nil
}
