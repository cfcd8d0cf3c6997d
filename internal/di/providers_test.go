package di

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"AstroTrade/internal/domain/models"
	internalrepo "AstroTrade/internal/repository"
	icache "AstroTrade/internal/service/cache"
	"AstroTrade/internal/service/ratelimit"
	"AstroTrade/pkg/config"
	"AstroTrade/pkg/server"
)

var (
	_ server.Sweeper = (*ratelimit.Limiter)(nil)
	_ server.Sweeper = (*icache.TTLCache)(nil)
)

type memorySource struct{}

func (memorySource) Load(context.Context) (*models.Snapshot, error) {
	return &models.Snapshot{Natal: []models.NatalRow{{Stock: "Aramco", Planet: models.PlanetSun, Sign: "Aries", Degree: 15}}}, nil
}

// The graph below mirrors InitializeApp with an in-memory source in place
// of ClickHouse; Kafka and Redis stay disabled.
func TestProvidersWireApp(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)

	l, err := ProvideLogger(cfg)
	require.NoError(t, err)
	m := ProvideMetrics()
	store := ProvideSnapshotStore()
	analyzer := ProvideAnalyzer(store, m, cfg, l)
	reloader := ProvideReloader(memorySource{}, store, analyzer, m, cfg, l)

	pub, err := ProvideAlertPublisher(cfg, l)
	require.NoError(t, err)
	assert.IsType(t, internalrepo.NopAlertPublisher{}, pub)

	sched := ProvideScheduler(cfg, reloader, analyzer, pub, m, l)
	rl := ProvideRateLimiter(cfg)
	c, err := ProvideResponseCache(cfg, l)
	require.NoError(t, err)
	assert.IsType(t, &icache.TTLCache{}, c)

	h := ProvideAstroHandler(analyzer, reloader, rl, c, cfg, l)
	app := ProvideApp(cfg, l, nil, reloader, sched, pub, h, c, rl)
	require.NotNil(t, app)

	_, err = reloader.Reload(context.Background())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stocks", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Aramco")
}
