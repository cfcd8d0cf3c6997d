package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	APILatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "astrotrade",
			Subsystem: "api",
			Name:      "latency_seconds",
			Help:      "Latency of API endpoints",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	APIErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "astrotrade",
			Subsystem: "api",
			Name:      "errors_total",
			Help:      "Errors by API endpoint",
		},
		[]string{"endpoint"},
	)

	APIResponseCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "astrotrade",
			Subsystem: "api",
			Name:      "response_cache_total",
			Help:      "Rendered response cache lookups by result",
		},
		[]string{"result"},
	)
)

// Register adds the API collectors to the default registry once.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(APILatency, APIErrors, APIResponseCache)
	})
}
