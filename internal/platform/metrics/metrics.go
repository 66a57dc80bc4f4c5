package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the server-wide Prometheus metrics.
type Metrics struct {
	// Request latency by route pattern and status class
	RequestLatency *prometheus.HistogramVec

	// Page cache lookups by result
	PageCacheResults *prometheus.CounterVec
}

// New creates and registers all server metrics.
func New() *Metrics {
	return &Metrics{
		RequestLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "landing_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by route and status class",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"route", "status"}),

		PageCacheResults: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "landing_page_cache_lookups_total",
			Help: "Total landing page cache lookups by result",
		}, []string{"result"}), // result: "hit", "miss", "error"
	}
}

// ObserveRequest records one request's latency.
func (m *Metrics) ObserveRequest(route, status string, d time.Duration) {
	if m != nil {
		m.RequestLatency.WithLabelValues(route, status).Observe(d.Seconds())
	}
}

// IncrementCacheResult records a page cache lookup.
func (m *Metrics) IncrementCacheResult(result string) {
	if m != nil {
		m.PageCacheResults.WithLabelValues(result).Inc()
	}
}
