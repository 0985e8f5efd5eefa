// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httpapi

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks resolution request outcomes and latency for the HTTP
// surface.
type Metrics struct {
	ResolveRequests *prometheus.CounterVec
	ResolveDuration prometheus.Histogram
}

// NewMetrics registers the HTTP metrics on reg. A nil reg uses the
// default registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		ResolveRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "scholar_resolve_requests_total",
			Help: "Total author resolution requests by outcome",
		}, []string{"outcome"}),
		ResolveDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "scholar_resolve_duration_seconds",
			Help:    "Duration of author resolution requests",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30},
		}),
	}
}

// ObserveResolve records one finished resolution request.
// Call with time.Now() captured at the start of the request.
func (m *Metrics) ObserveResolve(outcome string, start time.Time) {
	m.ResolveRequests.WithLabelValues(outcome).Inc()
	m.ResolveDuration.Observe(time.Since(start).Seconds())
}
