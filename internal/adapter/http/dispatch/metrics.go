package dispatch

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts dispatched calls per route and error kind. A nil *Metrics
// records nothing.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "resume_tailor",
			Name:      "requests_total",
			Help:      "Dispatched calls by route and error kind (empty kind on success).",
		}, []string{"route", "error"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "resume_tailor",
			Name:      "request_duration_seconds",
			Help:      "Time spent in dispatch, including session validation.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
	if reg != nil {
		reg.MustRegister(m.requests, m.duration)
	}
	return m
}

func (m *Metrics) observe(route, kind string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, kind).Inc()
	m.duration.WithLabelValues(route).Observe(elapsed.Seconds())
}
