// internal/metrics/metrics.go

// Package metrics provides observability for the deal workflow.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks transition throughput and notification fan-out volume.
type Metrics struct {
	DealTransitions      *prometheus.CounterVec
	DealsExpired         prometheus.Counter
	NotificationsCreated prometheus.Counter
	EmailFailures        prometheus.Counter
	TransitionDuration   prometheus.Histogram
}

// New creates a Metrics instance with all workflow metrics registered.
func New() *Metrics {
	return &Metrics{
		DealTransitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "dealdesk_deal_transitions_total",
			Help: "Total number of applied deal status transitions, by new status",
		}, []string{"new_status"}),
		DealsExpired: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dealdesk_deals_expired_total",
			Help: "Total number of deals moved to EXPIRED by the sweep",
		}),
		NotificationsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dealdesk_notifications_created_total",
			Help: "Total number of in-app notifications created by fan-out",
		}),
		EmailFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dealdesk_email_failures_total",
			Help: "Total number of swallowed email delivery failures",
		}),
		TransitionDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "dealdesk_transition_duration_seconds",
			Help:    "Duration of deal transition operations including audit write",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// ObserveTransition records an applied transition and its duration. Call with
// time.Now() captured at the start of the operation.
func (m *Metrics) ObserveTransition(newStatus string, start time.Time) {
	m.DealTransitions.WithLabelValues(newStatus).Inc()
	m.TransitionDuration.Observe(time.Since(start).Seconds())
}
