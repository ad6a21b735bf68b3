package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the chat proxy and contact form.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	ChatRequests     *prometheus.CounterVec
	UpstreamLatency  *prometheus.HistogramVec
	ContactSubmitted *prometheus.CounterVec
}

// NewMetrics registers the collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		ChatRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "portfolio_chat_requests_total",
			Help: "Chat requests by upstream provider and outcome",
		}, []string{"provider", "outcome"}),

		// Upstream LLM calls can take tens of seconds
		UpstreamLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "portfolio_chat_upstream_duration_seconds",
			Help:    "Latency of upstream chat provider calls in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		}, []string{"provider"}),

		ContactSubmitted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "portfolio_contact_submissions_total",
			Help: "Contact form submissions by outcome",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) observeChat(provider, outcome string) {
	if m == nil {
		return
	}
	m.ChatRequests.WithLabelValues(provider, outcome).Inc()
}

func (m *Metrics) observeUpstream(provider string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.UpstreamLatency.WithLabelValues(provider).Observe(elapsed.Seconds())
}

func (m *Metrics) observeContact(outcome string) {
	if m == nil {
		return
	}
	m.ContactSubmitted.WithLabelValues(outcome).Inc()
}
