// Package metrics provides Prometheus metrics for the scooter client.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "scooter"

var (
	// BackendRequestsTotal counts rental API calls by operation and HTTP status.
	BackendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_requests_total",
			Help:      "Total number of rental API requests",
		},
		[]string{"operation", "status"},
	)

	// BackendRequestDuration measures rental API latency.
	BackendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_request_duration_seconds",
			Help:      "Duration of rental API requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// IdentityCallsTotal counts identity provider calls by operation and outcome.
	IdentityCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "identity_calls_total",
			Help:      "Total number of identity provider calls",
		},
		[]string{"operation", "outcome"},
	)

	// AuthEventsTotal counts published auth events by kind and status.
	AuthEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_events_total",
			Help:      "Total number of published auth events",
		},
		[]string{"kind", "status"},
	)

	// ActiveWorkspaces tracks visitor workspaces held by the portal.
	ActiveWorkspaces = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_workspaces",
			Help:      "Number of visitor workspaces currently held",
		},
	)

	// RateLimitedTotal counts requests rejected by the rate limiter.
	RateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Total number of rate limited requests",
		},
		[]string{"path"},
	)
)

// RecordBackendRequest records one rental API call.
func RecordBackendRequest(operation, status string, duration float64) {
	BackendRequestsTotal.WithLabelValues(operation, status).Inc()
	BackendRequestDuration.WithLabelValues(operation).Observe(duration)
}

// RecordIdentityCall records one identity provider call.
func RecordIdentityCall(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	IdentityCallsTotal.WithLabelValues(operation, outcome).Inc()
}

// RecordAuthEvent records one published auth event.
func RecordAuthEvent(kind string, err error) {
	status := "published"
	if err != nil {
		status = "failed"
	}
	AuthEventsTotal.WithLabelValues(kind, status).Inc()
}
