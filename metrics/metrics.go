// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestTotal counts HTTP requests by method, route pattern and status.
	RequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portfolio_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	// ListFallbacks counts ordered list queries that had to be retried
	// without ordering.
	ListFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_list_fallbacks_total",
			Help: "Ordered list queries retried without ordering",
		},
		[]string{"table", "result"},
	)
	// ContactOutcomes counts contact submissions by final save and email state.
	ContactOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_contact_submissions_total",
			Help: "Contact form submissions by outcome",
		},
		[]string{"state", "email"},
	)
	Notifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_notifications_total",
			Help: "Contact notifications by channel and status",
		},
		[]string{"channel", "status"},
	)
	Uploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_image_uploads_total",
			Help: "Image uploads by status",
		},
		[]string{"status"},
	)
	RealtimeSubscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "portfolio_realtime_subscribers",
			Help: "Open realtime subscriptions",
		},
	)
)
