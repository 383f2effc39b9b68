// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "property_booking"

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Count of HTTP requests by method, route and status code.",
		},
		[]string{"method", "route", "code"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	relayForwarded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "relay_forwarded_total",
			Help:      "Count of CRM relay submissions by form and outcome.",
		},
		[]string{"form", "outcome"},
	)

	bookingStatus = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_status_changes_total",
			Help:      "Count of booking status transitions by new status.",
		},
		[]string{"status"},
	)

	invoices = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoices_total",
			Help:      "Count of invoice events (created, reused, paid).",
		},
		[]string{"event"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, relayForwarded, bookingStatus, invoices)
	})
}

func ObserveHTTP(method, route, code string, seconds float64) {
	httpRequests.WithLabelValues(method, route, code).Inc()
	httpDuration.WithLabelValues(method, route).Observe(seconds)
}

func IncRelay(form, outcome string) {
	relayForwarded.WithLabelValues(form, outcome).Inc()
}

func IncBookingStatus(status string) {
	bookingStatus.WithLabelValues(status).Inc()
}

func IncInvoice(event string) {
	invoices.WithLabelValues(event).Inc()
}
