// Package metrics exposes Prometheus instrumentation for the metadata
// client and HTTP surface.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the collectors. It satisfies igdb.Observer.
type Metrics struct {
	upstreamRequests *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	cacheHits        *prometheus.CounterVec
	cacheMisses      *prometheus.CounterVec
}

// New registers the collectors with reg and returns the set.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		upstreamRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "igdb_upstream_requests_total",
			Help: "Upstream metadata API requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		upstreamDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "igdb_upstream_request_duration_seconds",
			Help:    "Upstream metadata API request duration.",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		cacheHits: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "igdb_cache_hits_total",
			Help: "Result cache hits by operation.",
		}, []string{"operation"}),
		cacheMisses: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "igdb_cache_misses_total",
			Help: "Result cache misses by operation.",
		}, []string{"operation"}),
	}
}

// UpstreamRequest records one upstream call.
func (m *Metrics) UpstreamRequest(endpoint, outcome string, d time.Duration) {
	m.upstreamRequests.WithLabelValues(endpoint, outcome).Inc()
	m.upstreamDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}

// CacheHit records a result cache hit.
func (m *Metrics) CacheHit(op string) {
	m.cacheHits.WithLabelValues(op).Inc()
}

// CacheMiss records a result cache miss.
func (m *Metrics) CacheMiss(op string) {
	m.cacheMisses.WithLabelValues(op).Inc()
}
