// BovTag - Livestock Tag Detection Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bovtag

package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Event store
	StoreQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bovtag_store_query_duration_seconds",
			Help:    "Duration of event store queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // "fetch_events", "fetch_summary", "ping"
	)

	StoreQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bovtag_store_query_errors_total",
			Help: "Total number of failed event store queries",
		},
		[]string{"operation", "error_type"},
	)

	// Reporting pipeline
	ReportBuildDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bovtag_report_build_duration_seconds",
			Help:    "Duration of dashboard builds in seconds, including the store read",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"outcome"}, // "ok", "empty", "store_unavailable", "malformed"
	)

	ReportEventsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bovtag_report_events_dropped_total",
			Help: "Events skipped by the normalizer because they had no usable timestamp",
		},
	)

	ReportEventsProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bovtag_report_events_processed_total",
			Help: "Events read from the store and normalized",
		},
	)

	// API
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bovtag_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bovtag_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bovtag_api_active_requests",
			Help: "Number of API requests currently being processed",
		},
	)

	// Circuit breaker
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through the circuit breaker",
		},
		[]string{"name", "result"}, // "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
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

	// Snapshot cache
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bovtag_cache_lookups_total",
			Help: "Store snapshot cache lookups by key and result",
		},
		[]string{"key", "result"},
	)

	// Live refresh
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bovtag_ws_connections",
			Help: "Number of connected live dashboard clients",
		},
	)

	WSMessagesSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bovtag_ws_messages_total",
			Help: "Messages broadcast to live dashboard clients",
		},
		[]string{"type"},
	)

	RefreshRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bovtag_refresh_runs_total",
			Help: "Live refresh cycles by outcome",
		},
		[]string{"outcome"},
	)

	// Export
	ExportRows = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bovtag_export_rows_total",
			Help: "Event rows written to spreadsheet exports",
		},
	)
)

// RecordStoreQuery records an event store query metric.
func RecordStoreQuery(operation string, duration time.Duration, err error) {
	StoreQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		StoreQueryErrors.WithLabelValues(operation, classifyError(err)).Inc()
	}
}

// classifyError keeps the error_type label bounded.
func classifyError(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "other"
	}
}

// RecordReportBuild records a dashboard build.
func RecordReportBuild(outcome string, duration time.Duration) {
	ReportBuildDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

// RecordNormalization records how many events were normalized and dropped.
func RecordNormalization(processed, dropped int) {
	ReportEventsProcessed.Add(float64(processed))
	if dropped > 0 {
		ReportEventsDropped.Add(float64(dropped))
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordCacheLookup counts a snapshot cache hit or miss.
func RecordCacheLookup(key string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookups.WithLabelValues(key, result).Inc()
}

// RecordBroadcast counts a message pushed to live clients.
func RecordBroadcast(messageType string) {
	WSMessagesSent.WithLabelValues(messageType).Inc()
}

// RecordRefresh counts a live refresh cycle.
func RecordRefresh(outcome string) {
	RefreshRuns.WithLabelValues(outcome).Inc()
}

// RecordExport counts rows written to an export.
func RecordExport(rows int) {
	ExportRows.Add(float64(rows))
}
