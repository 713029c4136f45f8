package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by method, path and status code",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method and path",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	TransactionsPosted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transactions_posted_total",
			Help: "Posted ledger transactions by type",
		},
		[]string{"type"},
	)

	PaymentsRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "schedule_payments_recorded_total",
			Help: "Payments recorded against payment schedules",
		},
	)

	LateFeesApplied = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "schedule_late_fees_applied_total",
			Help: "Late fees applied to overdue schedules",
		},
	)
)
