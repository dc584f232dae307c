// Rollcall - Workforce Attendance and Headcount Tracking
// Copyright 2026 Rollcall HQ
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rollcall-hq/rollcall

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for production observability:
// - Event log publish/delivery throughput and long-poll behavior
// - API endpoint latency and throughput
// - Record store operations (BadgerDB)
// - Face-recognition client health (circuit breaker)

var (
	// Event Log Metrics
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventlog_published_total",
			Help: "Total number of events published per topic",
		},
		[]string{"topic"},
	)

	EventsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventlog_dropped_total",
			Help: "Total number of events dropped by ring buffer trimming",
		},
		[]string{"topic"},
	)

	EventsDelivered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventlog_delivered_total",
			Help: "Total number of events returned to poll callers",
		},
		[]string{"topic"},
	)

	TenantStores = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "eventlog_tenant_stores",
			Help: "Current number of per-tenant stores per topic",
		},
		[]string{"topic"},
	)

	// Long-Poll Metrics
	LongPollRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "longpoll_requests_total",
			Help: "Total number of poll calls by resolution outcome",
		},
		[]string{"topic", "outcome"}, // "immediate", "wakeup", "timeout", "canceled"
	)

	LongPollWaiting = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "longpoll_waiting_readers",
			Help: "Current number of poll calls suspended waiting for events",
		},
		[]string{"topic"},
	)

	LongPollWaitDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "longpoll_wait_duration_seconds",
			Help:    "Time poll calls spent suspended before resolving",
			Buckets: []float64{0.01, 0.05, 0.25, 1, 5, 15, 30, 60, 120, 300},
		},
		[]string{"topic"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Record Store Metrics (BadgerDB)
	StoreOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_operations_total",
			Help: "Total number of record store operations",
		},
		[]string{"kind", "operation"}, // kind: "attendance", "headcount", "overtime", "employee"
	)

	StoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_errors_total",
			Help: "Total number of record store errors",
		},
		[]string{"kind", "operation"},
	)

	StoreGCRuns = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "store_gc_runs_total",
			Help: "Total number of Badger value-log GC passes",
		},
	)

	// Recognizer Client Metrics
	RecognizerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recognizer_requests_total",
			Help: "Total number of face-recognition service requests",
		},
		[]string{"operation", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// WebSocket Stream Metrics
	StreamClients = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "stream_clients",
			Help: "Current number of connected WebSocket stream clients",
		},
		[]string{"topic"},
	)
)

// RecordAPIRequest records metrics for one completed API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the active request gauge.
func TrackActiveRequest(active bool) {
	if active {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordStoreOperation records one record store operation, counting errors separately.
func RecordStoreOperation(kind, operation string, err error) {
	StoreOperations.WithLabelValues(kind, operation).Inc()
	if err != nil {
		StoreErrors.WithLabelValues(kind, operation).Inc()
	}
}

// RecordPollOutcome records how one poll call resolved and how long it waited.
func RecordPollOutcome(topic, outcome string, waited time.Duration) {
	LongPollRequests.WithLabelValues(topic, outcome).Inc()
	if waited > 0 {
		LongPollWaitDuration.WithLabelValues(topic).Observe(waited.Seconds())
	}
}

// FormatStatusCode converts an HTTP status code to its label value.
func FormatStatusCode(code int) string {
	return strconv.Itoa(code)
}
