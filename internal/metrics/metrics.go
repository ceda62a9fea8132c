// Package metrics defines the Prometheus collectors of the CMS.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Search outcomes.
const (
	OutcomeOK              = "ok"
	OutcomeInvalidSort     = "invalid_sort"
	OutcomeEmptyPredicates = "empty_predicates"
	OutcomeError           = "error"
)

// Search records article search traffic.
type Search struct {
	requests *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewSearch creates the search collectors and registers them with reg.
func NewSearch(reg prometheus.Registerer) *Search {
	s := &Search{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "cms",
				Name:      "search_requests_total",
				Help:      "Total number of article searches by outcome.",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "cms",
				Name:      "search_duration_seconds",
				Help:      "Latency of article searches that reached the database.",
				Buckets:   prometheus.DefBuckets,
			},
		),
	}
	reg.MustRegister(s.requests, s.duration)
	return s
}

// Observe counts one search. Only searches that ran queries contribute to
// the latency histogram.
func (s *Search) Observe(outcome string, elapsed time.Duration) {
	s.requests.WithLabelValues(outcome).Inc()
	if outcome == OutcomeOK || outcome == OutcomeError {
		s.duration.Observe(elapsed.Seconds())
	}
}

// RequestsCounter returns the request counter of one outcome.
func (s *Search) RequestsCounter(outcome string) prometheus.Counter {
	return s.requests.WithLabelValues(outcome)
}
