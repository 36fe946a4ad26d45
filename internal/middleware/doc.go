// BovTag - Livestock Tag Detection Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bovtag

/*
Package middleware provides HTTP middleware components for the API router.

Key Components:

  - RequestID: UUID-based request tracking, propagated into the logging context
  - PrometheusMetrics: request count, latency and in-flight gauge per route
  - Compression: gzip for JSON payloads, skipped for already compressed content

All three use the http.HandlerFunc signature and are adapted to chi with the
router's chiMiddleware helper. CORS and rate limiting come from go-chi/cors and
go-chi/httprate in the api package.

Metrics are labelled with the chi route pattern (for example
"/api/v1/dashboard/{series}") rather than the raw path, so label cardinality
stays bounded whatever the client sends.
*/
package middleware
