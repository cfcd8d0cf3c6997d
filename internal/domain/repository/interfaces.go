package repository

import (
	"context"

	"AstroTrade/internal/domain/models"
)

// EphemerisSource loads the reference tables. The returned snapshot has no
// version; the store assigns one on swap.
type EphemerisSource interface {
	Load(ctx context.Context) (*models.Snapshot, error)
}

// SnapshotStore holds the currently published snapshot.
type SnapshotStore interface {
	// Current returns the published snapshot or nil before the first load.
	Current() *models.Snapshot
	// Swap publishes next and returns it with its assigned version.
	Swap(next *models.Snapshot) *models.Snapshot
}

// AlertPublisher delivers moon scan opportunities to downstream consumers.
type AlertPublisher interface {
	PublishMoonScan(ctx context.Context, scan *models.MoonScan) error
	Close() error
}

type Metrics interface {
	RecordLatency(op string, seconds float64)
	RecordError(kind string)
	RecordAspects(engine string, n int)
	RecordCache(result string)
	RecordReload(ok bool, natal, transits int)
	RecordAlerts(n int)
}
