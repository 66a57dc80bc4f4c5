package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the consent banner.
type Metrics struct {
	// Pages rendered with the consent banner visible
	BannerShown prometheus.Counter

	// Accept actions processed
	ConsentAccepted prometheus.Counter

	// Analytics integrations initialised after consent, by integration
	AnalyticsInitialized *prometheus.CounterVec
}

// New creates a new Metrics instance with all consent metrics registered.
func New() *Metrics {
	return &Metrics{
		BannerShown: promauto.NewCounter(prometheus.CounterOpts{
			Name: "landing_consent_banner_shown_total",
			Help: "Total pages rendered with the cookie consent banner visible",
		}),

		ConsentAccepted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "landing_consent_accepted_total",
			Help: "Total cookie consent accept actions",
		}),

		AnalyticsInitialized: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "landing_analytics_initialized_total",
			Help: "Total analytics integrations initialised after consent",
		}, []string{"integration"}), // integration: "gtag", "ga"
	}
}

// IncrementBannerShown records a page showing the consent banner.
func (m *Metrics) IncrementBannerShown() {
	if m != nil {
		m.BannerShown.Inc()
	}
}

// IncrementAccepted records an accept action.
func (m *Metrics) IncrementAccepted() {
	if m != nil {
		m.ConsentAccepted.Inc()
	}
}

// IncrementAnalyticsInitialized records an initialised integration.
func (m *Metrics) IncrementAnalyticsInitialized(integration string) {
	if m != nil {
		m.AnalyticsInitialized.WithLabelValues(integration).Inc()
	}
}
