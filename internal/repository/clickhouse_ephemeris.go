package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"AstroTrade/internal/domain/models"
	pkgch "AstroTrade/pkg/clickhouse"
	applogger "AstroTrade/pkg/logger"
)

// EphemerisTables names the reference tables inside one database.
type EphemerisTables struct {
	Database   string
	Natal      string
	Transit    string
	Moon       string
	MoonColumn string
}

func (t EphemerisTables) qualified(name string) string {
	return t.Database + "." + name
}

// Schema returns idempotent DDL for the reference tables.
func (t EphemerisTables) Schema() []string {
	return []string{
		"CREATE DATABASE IF NOT EXISTS " + t.Database,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			seq UInt32, stock String, planet String, sign String, degree Nullable(Float64)
		) ENGINE=MergeTree ORDER BY seq`, t.qualified(t.Natal)),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			ts DateTime('UTC'), column String, lng Nullable(Float64)
		) ENGINE=MergeTree ORDER BY (ts, column)`, t.qualified(t.Transit)),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			ts DateTime('UTC'), lng Nullable(Float64), sign String
		) ENGINE=MergeTree ORDER BY ts`, t.qualified(t.Moon)),
	}
}

// CHEphemerisSource loads natal positions and transit samples from ClickHouse.
// Transit samples are stored long (one row per timestamp and column) and
// pivoted into one row per timestamp.
type CHEphemerisSource struct {
	db     *sql.DB
	tables EphemerisTables
	loc    *time.Location
	l      *applogger.Logger
}

func NewCHEphemerisSource(ch *pkgch.Client, tables EphemerisTables, loc *time.Location) *CHEphemerisSource {
	return &CHEphemerisSource{db: ch.DB(), tables: tables, loc: loc}
}

// SetLogger injects a structured logger.
func (s *CHEphemerisSource) SetLogger(l *applogger.Logger) { s.l = l }

// Load reads all three tables into a new snapshot.
func (s *CHEphemerisSource) Load(ctx context.Context) (*models.Snapshot, error) {
	natal, err := s.loadNatal(ctx)
	if err != nil {
		return nil, err
	}
	transits, err := s.loadTransits(ctx)
	if err != nil {
		return nil, err
	}
	moon, err := s.loadMoon(ctx)
	if err != nil {
		return nil, err
	}
	return &models.Snapshot{
		LoadedAt: time.Now().In(s.loc),
		Natal:    natal,
		Transits: transits,
		Moon:     moon,
	}, nil
}

func (s *CHEphemerisSource) loadNatal(ctx context.Context) ([]models.NatalRow, error) {
	table := s.tables.qualified(s.tables.Natal)
	q := fmt.Sprintf("SELECT stock, planet, sign, degree FROM %s ORDER BY seq ASC", table)
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		s.l.Error("clickhouse load_natal query error", applogger.String("table", table), applogger.Error(err))
		return nil, fmt.Errorf("load natal: %w", err)
	}
	defer rows.Close()

	out := make([]models.NatalRow, 0, 256)
	skipped := 0
	for rows.Next() {
		var (
			r   models.NatalRow
			deg sql.NullFloat64
		)
		if err := rows.Scan(&r.Stock, &r.Planet, &r.Sign, &deg); err != nil {
			return nil, fmt.Errorf("scan natal: %w", err)
		}
		if !deg.Valid || !models.IsFinite(deg.Float64) || r.Stock == "" {
			skipped++
			continue
		}
		r.Degree = deg.Float64
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("natal rows: %w", err)
	}
	if skipped > 0 {
		s.l.Warn("natal rows skipped", applogger.String("table", table), applogger.Int("skipped", skipped))
	}
	return out, nil
}

type transitSample struct {
	ts     time.Time
	column string
	lng    sql.NullFloat64
}

func (s *CHEphemerisSource) loadTransits(ctx context.Context) ([]models.TransitRow, error) {
	table := s.tables.qualified(s.tables.Transit)
	q := fmt.Sprintf("SELECT ts, column, lng FROM %s ORDER BY ts ASC, column ASC", table)
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		s.l.Error("clickhouse load_transits query error", applogger.String("table", table), applogger.Error(err))
		return nil, fmt.Errorf("load transits: %w", err)
	}
	defer rows.Close()

	samples := make([]transitSample, 0, 4096)
	for rows.Next() {
		var smp transitSample
		if err := rows.Scan(&smp.ts, &smp.column, &smp.lng); err != nil {
			return nil, fmt.Errorf("scan transit: %w", err)
		}
		samples = append(samples, smp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("transit rows: %w", err)
	}
	return pivotTransits(samples, s.loc), nil
}

// pivotTransits folds time-ordered long samples into one row per timestamp.
// Null and non-finite longitudes are left out of the row.
func pivotTransits(samples []transitSample, loc *time.Location) []models.TransitRow {
	out := make([]models.TransitRow, 0)
	for _, smp := range samples {
		if smp.ts.IsZero() {
			continue
		}
		if n := len(out); n == 0 || !out[n-1].Time.Equal(smp.ts) {
			out = append(out, models.TransitRow{Time: smp.ts.In(loc), Degrees: make(map[string]float64)})
		}
		if smp.lng.Valid && models.IsFinite(smp.lng.Float64) {
			out[len(out)-1].Degrees[smp.column] = smp.lng.Float64
		}
	}
	return out
}

func (s *CHEphemerisSource) loadMoon(ctx context.Context) ([]models.TransitRow, error) {
	table := s.tables.qualified(s.tables.Moon)
	q := fmt.Sprintf("SELECT ts, lng, sign FROM %s ORDER BY ts ASC", table)
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		s.l.Error("clickhouse load_moon query error", applogger.String("table", table), applogger.Error(err))
		return nil, fmt.Errorf("load moon: %w", err)
	}
	defer rows.Close()

	out := make([]models.TransitRow, 0, 1024)
	for rows.Next() {
		var (
			ts   time.Time
			lng  sql.NullFloat64
			sign string
		)
		if err := rows.Scan(&ts, &lng, &sign); err != nil {
			return nil, fmt.Errorf("scan moon: %w", err)
		}
		row := models.TransitRow{Time: ts.In(s.loc), Degrees: make(map[string]float64, 1), Sign: sign}
		if lng.Valid && models.IsFinite(lng.Float64) {
			row.Degrees[s.tables.MoonColumn] = lng.Float64
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("moon rows: %w", err)
	}
	return out, nil
}
