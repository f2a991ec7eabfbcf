// Stockroom - Inventory and Storage Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stockroom

// Package metrics provides Prometheus instrumentation for the HTTP
// surface, the database layer and the WebSocket hub. Auth-specific
// counters live in internal/auth.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts requests by method, route pattern and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stockroom",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by method, route and status code.",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration observes handler latency by method and route.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "stockroom",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// HTTPActiveRequests gauges in-flight requests.
	HTTPActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "stockroom",
			Name:      "http_active_requests",
			Help:      "Number of HTTP requests currently being served.",
		},
	)

	// DBQueryDuration observes store query latency by operation.
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "stockroom",
			Name:      "db_query_duration_seconds",
			Help:      "Database query duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// WebSocketConnections gauges connected notification clients.
	WebSocketConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "stockroom",
			Name:      "websocket_connections",
			Help:      "Number of connected WebSocket clients.",
		},
	)

	// WebSocketMessagesSent counts broadcast messages delivered.
	WebSocketMessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "stockroom",
			Name:      "websocket_messages_sent_total",
			Help:      "Total WebSocket messages sent to clients.",
		},
	)
)

// RecordHTTPRequest records one completed request.
func RecordHTTPRequest(method, route, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		HTTPActiveRequests.Inc()
	} else {
		HTTPActiveRequests.Dec()
	}
}

// ObserveDBQuery records the latency of one store operation.
func ObserveDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
