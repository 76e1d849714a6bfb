package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewBookingMetrics(reg)
	m.ObserveSubmission("accepted", "en")
	m.ObserveSubmission("accepted", "en")
	m.ObserveSubmission("invalid", "zh")
	m.ObserveTransition("ready")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.submissionsTotal.WithLabelValues("accepted", "en")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.submissionsTotal.WithLabelValues("invalid", "zh")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transitionsTotal.WithLabelValues("ready")))
}

func TestRecordMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewRecordMetrics(reg)
	m.ObserveWrite("sheet", "error", 0.2)
	m.ObserveWrite("sheet", "ok", 0.1)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.writesTotal.WithLabelValues("sheet", "error")))

	families, err := reg.Gather()
	require.NoError(t, err)
	var hist *dto.Histogram
	for _, f := range families {
		if f.GetName() == "jwbeauty_records_write_latency_seconds" {
			hist = f.GetMetric()[0].GetHistogram()
		}
	}
	require.NotNil(t, hist)
	assert.Equal(t, uint64(2), hist.GetSampleCount())
}

func TestAdvisorMetricsSkipsZeroLatency(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewAdvisorMetrics(reg)
	m.ObserveRequest("gemini", "ok", 1.5)
	m.ObserveRequest("none", "unconfigured", 0)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("none", "unconfigured")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.latency))
}

func TestMetricsNilSafe(t *testing.T) {
	var b *BookingMetrics
	b.ObserveSubmission("accepted", "en")
	b.ObserveTransition("ready")
	var r *RecordMetrics
	r.ObserveWrite("sheet", "ok", 0.1)
	var a *AdvisorMetrics
	a.ObserveRequest("gemini", "ok", 0.1)
}
