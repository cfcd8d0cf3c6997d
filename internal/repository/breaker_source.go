package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/sony/gobreaker"

	"AstroTrade/internal/domain/models"
	domrepo "AstroTrade/internal/domain/repository"
	applogger "AstroTrade/pkg/logger"
)

// BreakerSource guards an EphemerisSource with a circuit breaker. After
// failures consecutive load errors, loads fail fast until cooldown passes.
type BreakerSource struct {
	next domrepo.EphemerisSource
	cb   *gobreaker.CircuitBreaker
	l    *applogger.Logger
}

func NewBreakerSource(next domrepo.EphemerisSource, name string, failures uint32, cooldown time.Duration) *BreakerSource {
	if failures == 0 {
		failures = 3
	}
	s := &BreakerSource{next: next}
	s.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     cooldown,
		ReadyToTrip: func(c gobreaker.Counts) bool { return c.ConsecutiveFailures >= failures },
		OnStateChange: func(name string, from, to gobreaker.State) {
			s.l.Warn("ephemeris breaker state change",
				applogger.String("breaker", name),
				applogger.String("from", from.String()),
				applogger.String("to", to.String()))
		},
	})
	return s
}

// SetLogger injects a structured logger.
func (s *BreakerSource) SetLogger(l *applogger.Logger) { s.l = l }

func (s *BreakerSource) Load(ctx context.Context) (*models.Snapshot, error) {
	v, err := s.cb.Execute(func() (interface{}, error) {
		return s.next.Load(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("ephemeris %s: %w", s.cb.Name(), err)
	}
	return v.(*models.Snapshot), nil
}

// State reports the breaker state name.
func (s *BreakerSource) State() string { return s.cb.State().String() }
