package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ledger_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	BalanceAdjustmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_balance_adjustments_total",
			Help: "Balance adjustments by direction and outcome",
		},
		[]string{"direction", "outcome"},
	)

	SnapshotSavesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_snapshot_saves_total",
			Help: "Snapshot writes by backend and outcome",
		},
		[]string{"backend", "outcome"},
	)

	RegisteredUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ledger_registered_users",
			Help: "Users in the last saved snapshot",
		},
	)

	RateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ledger_rate_limited_requests_total",
			Help: "Requests rejected by the rate limiter",
		},
	)
)

func RecordHTTPRequest(method, route, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration)
}

func RecordAdjustment(direction, outcome string) {
	BalanceAdjustmentsTotal.WithLabelValues(direction, outcome).Inc()
}

func RecordSave(backend string, err error, users int) {
	if err != nil {
		SnapshotSavesTotal.WithLabelValues(backend, "error").Inc()
		return
	}
	SnapshotSavesTotal.WithLabelValues(backend, "ok").Inc()
	RegisteredUsers.Set(float64(users))
}

func RecordRateLimited() {
	RateLimitedTotal.Inc()
}
