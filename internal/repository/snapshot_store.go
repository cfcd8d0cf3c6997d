package repository

import (
	"sync"
	"sync/atomic"

	"AstroTrade/internal/domain/models"
	domrepo "AstroTrade/internal/domain/repository"
)

// AtomicSnapshotStore publishes snapshots through an atomic pointer so
// readers never block and never see a half-built snapshot. Writers are
// serialized so versions are published in order.
type AtomicSnapshotStore struct {
	current atomic.Pointer[models.Snapshot]
	mu      sync.Mutex
	version uint64
}

func NewSnapshotStore() domrepo.SnapshotStore {
	return &AtomicSnapshotStore{}
}

func (s *AtomicSnapshotStore) Current() *models.Snapshot {
	return s.current.Load()
}

// Swap stamps next with the following version and publishes it. The caller
// must not mutate next afterwards.
func (s *AtomicSnapshotStore) Swap(next *models.Snapshot) *models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.version++
	next.Version = s.version
	s.current.Store(next)
	return next
}
