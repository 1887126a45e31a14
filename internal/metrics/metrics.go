package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the API client guard.
type Metrics struct {
	FetchTotal       *prometheus.CounterVec
	FetchDuration    *prometheus.HistogramVec
	GovernorDenied   prometheus.Counter
	GovernorRemain   prometheus.Gauge
	SectionFailures  *prometheus.CounterVec
	LookupsCompleted prometheus.Counter
}

// New registers all instruments on reg. Passing a fresh registry per
// process (or per test) avoids duplicate registration panics.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		FetchTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "ippriv_fetch_total",
			Help: "Guarded API fetches by endpoint and outcome",
		}, []string{"endpoint", "outcome"}),
		FetchDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ippriv_fetch_duration_seconds",
			Help:    "Latency of guarded API fetches that reached the network",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		GovernorDenied: f.NewCounter(prometheus.CounterOpts{
			Name: "ippriv_ratelimit_denied_total",
			Help: "Calls refused by the client-side rate governor",
		}),
		GovernorRemain: f.NewGauge(prometheus.GaugeOpts{
			Name: "ippriv_ratelimit_remaining",
			Help: "Slots left in the current rate governor window",
		}),
		SectionFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "ippriv_lookup_section_failures_total",
			Help: "Composite lookup sections that came back unavailable",
		}, []string{"section", "kind"}),
		LookupsCompleted: f.NewCounter(prometheus.CounterOpts{
			Name: "ippriv_lookups_total",
			Help: "Composite lookups completed",
		}),
	}
}

// ObserveFetch records one fetch outcome. A nil receiver is a no-op so
// callers can run without metrics.
func (m *Metrics) ObserveFetch(endpoint, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.FetchTotal.WithLabelValues(endpoint, outcome).Inc()
	if d > 0 {
		m.FetchDuration.WithLabelValues(endpoint).Observe(d.Seconds())
	}
}

func (m *Metrics) ObserveGovernor(allowed bool, remaining int) {
	if m == nil {
		return
	}
	if !allowed {
		m.GovernorDenied.Inc()
	}
	m.GovernorRemain.Set(float64(remaining))
}

func (m *Metrics) IncrementSectionFailure(section, kind string) {
	if m == nil {
		return
	}
	m.SectionFailures.WithLabelValues(section, kind).Inc()
}

func (m *Metrics) IncrementLookups() {
	if m == nil {
		return
	}
	m.LookupsCompleted.Inc()
}
