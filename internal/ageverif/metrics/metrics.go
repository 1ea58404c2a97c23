package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the age verification flow. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	// Token verifications by result: verified, decode_only, rejected
	Verifications *prometheus.CounterVec

	// Persist calls by outcome (domain.Outcome)
	PersistOutcomes *prometheus.CounterVec

	// Webhooks by result: accepted, invalid_json, bad_signature, unsigned_rejected
	Webhooks *prometheus.CounterVec

	// Sessions created, and removed by housekeeping
	SessionsCreated prometheus.Counter
	SessionsPurged  prometheus.Counter

	// Order lookups by method (name, email_postcode) and result
	OrderLookups *prometheus.CounterVec

	// Admin API call latency by operation
	UpstreamLatency *prometheus.HistogramVec
}

// New registers all metrics with reg. Pass prometheus.DefaultRegisterer in
// production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		Verifications: f.NewCounterVec(prometheus.CounterOpts{
			Name: "ageverif_token_verifications_total",
			Help: "Assurance token verifications by result",
		}, []string{"result"}),

		PersistOutcomes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "ageverif_persist_outcomes_total",
			Help: "Evidence persistence calls by outcome",
		}, []string{"outcome"}),

		Webhooks: f.NewCounterVec(prometheus.CounterOpts{
			Name: "ageverif_webhooks_total",
			Help: "Inbound webhooks by validation result",
		}, []string{"result"}),

		SessionsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "ageverif_sessions_created_total",
			Help: "Verification sessions created",
		}),

		SessionsPurged: f.NewCounter(prometheus.CounterOpts{
			Name: "ageverif_sessions_purged_total",
			Help: "Expired verification sessions removed by housekeeping",
		}),

		OrderLookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "ageverif_order_lookups_total",
			Help: "Order lookups by method and result",
		}, []string{"method", "result"}),

		UpstreamLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ageverif_admin_api_duration_seconds",
			Help:    "Duration of Shopify Admin API calls by operation",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"operation"}),
	}
}

func (m *Metrics) IncVerification(result string) {
	if m != nil {
		m.Verifications.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) IncPersistOutcome(outcome string) {
	if m != nil {
		m.PersistOutcomes.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) IncWebhook(result string) {
	if m != nil {
		m.Webhooks.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) IncSessionsCreated() {
	if m != nil {
		m.SessionsCreated.Inc()
	}
}

func (m *Metrics) AddSessionsPurged(n int64) {
	if m != nil && n > 0 {
		m.SessionsPurged.Add(float64(n))
	}
}

func (m *Metrics) IncOrderLookup(method, result string) {
	if m != nil {
		m.OrderLookups.WithLabelValues(method, result).Inc()
	}
}

// ObserveUpstream records how long an Admin API operation took.
func (m *Metrics) ObserveUpstream(operation string, d time.Duration) {
	if m != nil {
		m.UpstreamLatency.WithLabelValues(operation).Observe(d.Seconds())
	}
}
