package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "jwbeauty"

// BookingMetrics exposes counters for booking form submissions.
type BookingMetrics struct {
	submissionsTotal *prometheus.CounterVec
	transitionsTotal *prometheus.CounterVec
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "booking",
			Name:      "submissions_total",
			Help:      "Booking form submissions by outcome",
		}, []string{"outcome", "locale"}),
		transitionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "booking",
			Name:      "phase_transitions_total",
			Help:      "Submission state machine transitions by target phase",
		}, []string{"phase"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.transitionsTotal)
	return m
}

func (m *BookingMetrics) ObserveSubmission(outcome, locale string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(outcome, locale).Inc()
}

func (m *BookingMetrics) ObserveTransition(phase string) {
	if m == nil {
		return
	}
	m.transitionsTotal.WithLabelValues(phase).Inc()
}

// RecordMetrics exposes counters/histograms for record-keeping sink writes.
type RecordMetrics struct {
	writesTotal  *prometheus.CounterVec
	writeLatency *prometheus.HistogramVec
}

func NewRecordMetrics(reg prometheus.Registerer) *RecordMetrics {
	m := &RecordMetrics{
		writesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "records",
			Name:      "writes_total",
			Help:      "Record sink writes by sink and status",
		}, []string{"sink", "status"}),
		writeLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "records",
			Name:      "write_latency_seconds",
			Help:      "Latency of record sink writes",
			Buckets:   prometheus.DefBuckets,
		}, []string{"sink"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.writesTotal, m.writeLatency)
	return m
}

func (m *RecordMetrics) ObserveWrite(sink, status string, seconds float64) {
	if m == nil {
		return
	}
	m.writesTotal.WithLabelValues(sink, status).Inc()
	m.writeLatency.WithLabelValues(sink).Observe(seconds)
}

// AdvisorMetrics exposes counters/histograms for AI advisor completions.
type AdvisorMetrics struct {
	requestsTotal *prometheus.CounterVec
	latency       *prometheus.HistogramVec
}

func NewAdvisorMetrics(reg prometheus.Registerer) *AdvisorMetrics {
	m := &AdvisorMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "advisor",
			Name:      "requests_total",
			Help:      "Advisor questions by provider and status",
		}, []string{"provider", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "advisor",
			Name:      "completion_latency_seconds",
			Help:      "Latency of LLM completions",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16},
		}, []string{"provider"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.requestsTotal, m.latency)
	return m
}

func (m *AdvisorMetrics) ObserveRequest(provider, status string, seconds float64) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(provider, status).Inc()
	if seconds > 0 {
		m.latency.WithLabelValues(provider).Observe(seconds)
	}
}
