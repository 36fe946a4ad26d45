// BovTag - Livestock Tag Detection Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bovtag

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered on the default registry through promauto when the
package is imported, and are exposed by the API router at /metrics:

	curl http://localhost:8501/metrics

# Available Metrics

Event store:
  - bovtag_store_query_duration_seconds{operation}
  - bovtag_store_query_errors_total{operation,error_type}

Reporting pipeline:
  - bovtag_report_build_duration_seconds{outcome}
  - bovtag_report_events_dropped_total
  - bovtag_report_events_processed_total

HTTP API:
  - bovtag_api_requests_total{method,endpoint,status}
  - bovtag_api_request_duration_seconds{method,endpoint}
  - bovtag_api_active_requests

Circuit breaker (store):
  - circuit_breaker_state{name} (0=closed, 1=half-open, 2=open)
  - circuit_breaker_requests_total{name,result}
  - circuit_breaker_consecutive_failures{name}
  - circuit_breaker_transitions_total{name,from,to}

Live refresh:
  - bovtag_ws_connections
  - bovtag_ws_messages_total{type}
  - bovtag_refresh_runs_total{outcome}

Export:
  - bovtag_export_rows_total

# Usage

	start := time.Now()
	events, err := fetch(ctx)
	metrics.RecordStoreQuery("fetch_events", time.Since(start), err)
*/
package metrics
