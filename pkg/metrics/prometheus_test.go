package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorder(t *testing.T) {
	r := New(prometheus.NewRegistry())

	r.RecordAspects("natal", 3)
	r.RecordAspects("natal", 2)
	r.RecordCache("hit")
	r.RecordReload(true, 40, 720)
	r.RecordReload(false, 0, 0)
	r.RecordAlerts(4)

	assert.Equal(t, 5.0, testutil.ToFloat64(r.aspects.WithLabelValues("natal")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.cache.WithLabelValues("hit")))
	assert.Equal(t, 720.0, testutil.ToFloat64(r.rows.WithLabelValues("transits")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.reloads.WithLabelValues("false")))
	assert.Equal(t, 4.0, testutil.ToFloat64(r.alerts))
}

func TestRecordersOnSeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}
