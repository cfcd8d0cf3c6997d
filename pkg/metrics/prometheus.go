package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	latency     *prometheus.HistogramVec
	errorsTotal *prometheus.CounterVec
	aspects     *prometheus.CounterVec
	cache       *prometheus.CounterVec
	reloads     *prometheus.CounterVec
	rows        *prometheus.GaugeVec
	alerts      prometheus.Counter
}

// New creates a recorder registered on reg. Pass prometheus.DefaultRegisterer
// to expose the series on /metrics.
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "astrotrade_operation_duration_seconds",
				Help:    "Duration of engine operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		errorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "astrotrade_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		aspects: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "astrotrade_aspects_found_total",
				Help: "Aspects produced by each engine",
			},
			[]string{"engine"},
		),
		cache: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "astrotrade_aspect_cache_requests_total",
				Help: "Aspect cache lookups by result",
			},
			[]string{"result"},
		),
		reloads: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "astrotrade_reloads_total",
				Help: "Reference data reloads by outcome",
			},
			[]string{"ok"},
		),
		rows: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "astrotrade_reference_rows",
				Help: "Rows in the published snapshot",
			},
			[]string{"table"},
		),
		alerts: f.NewCounter(
			prometheus.CounterOpts{
				Name: "astrotrade_moon_alerts_published_total",
				Help: "Moon opportunities published as alerts",
			},
		),
	}
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

func (r *Recorder) RecordAspects(engine string, n int) {
	r.aspects.WithLabelValues(engine).Add(float64(n))
}

func (r *Recorder) RecordCache(result string) {
	r.cache.WithLabelValues(result).Inc()
}

// RecordReload counts a reload and, on success, publishes the row counts.
func (r *Recorder) RecordReload(ok bool, natal, transits int) {
	r.reloads.WithLabelValues(strconv.FormatBool(ok)).Inc()
	if !ok {
		return
	}
	r.rows.WithLabelValues("natal").Set(float64(natal))
	r.rows.WithLabelValues("transits").Set(float64(transits))
}

func (r *Recorder) RecordAlerts(n int) {
	r.alerts.Add(float64(n))
}

// Nop discards every measurement.
type Nop struct{}

func (Nop) RecordLatency(string, float64) {}
func (Nop) RecordError(string) {}
func (Nop) RecordAspects(string, int) {}
func (Nop) RecordCache(string) {}
func (Nop) RecordReload(bool, int, int) {}
func (Nop) RecordAlerts(int) {}
