package repository

import (
	"database/sql"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPivotTransits(t *testing.T) {
	base := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	riyadh := time.FixedZone("AST", 3*3600)
	samples := []transitSample{
		{ts: base, column: "Mars Lng", lng: sql.NullFloat64{Float64: 12.5, Valid: true}},
		{ts: base, column: "Sun Lng", lng: sql.NullFloat64{Float64: 349.1, Valid: true}},
		{ts: base.Add(time.Hour), column: "Mars Lng", lng: sql.NullFloat64{}},
		{ts: base.Add(time.Hour), column: "Sun Lng", lng: sql.NullFloat64{Float64: math.NaN(), Valid: true}},
		{ts: base.Add(time.Hour), column: "Venus Lng", lng: sql.NullFloat64{Float64: 3.2, Valid: true}},
		{ts: time.Time{}, column: "Sun Lng", lng: sql.NullFloat64{Float64: 1, Valid: true}},
	}

	rows := pivotTransits(samples, riyadh)
	require.Len(t, rows, 2)

	assert.True(t, rows[0].Time.Equal(base))
	assert.Equal(t, riyadh, rows[0].Time.Location())
	assert.Equal(t, map[string]float64{"Mars Lng": 12.5, "Sun Lng": 349.1}, rows[0].Degrees)
	assert.Equal(t, map[string]float64{"Venus Lng": 3.2}, rows[1].Degrees)
}

func TestEphemerisSchema(t *testing.T) {
	tables := EphemerisTables{Database: "astro", Natal: "natal_positions", Transit: "transit_samples", Moon: "moon_samples"}
	stmts := tables.Schema()
	require.Len(t, stmts, 4)
	assert.Equal(t, "CREATE DATABASE IF NOT EXISTS astro", stmts[0])
	assert.True(t, strings.Contains(stmts[1], "astro.natal_positions"))
	assert.True(t, strings.Contains(stmts[2], "astro.transit_samples"))
	assert.True(t, strings.Contains(stmts[3], "astro.moon_samples"))
}
