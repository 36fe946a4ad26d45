// BovTag - Livestock Tag Detection Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bovtag

// Package main is the entry point for the BovTag dashboard server.
//
// BovTag reads ear-tag detection events from MongoDB, converts their UTC
// timestamps into the reporting zone (America/Manaus by default) and serves
// hourly, daily and monthly detection counts plus KPIs over a JSON API, a
// live WebSocket feed and an XLSX export.
//
// # Startup Order
//
//  1. Configuration: defaults, config.yaml, environment (Koanf v2)
//  2. Logging: zerolog configured from LOG_LEVEL and LOG_FORMAT
//  3. Event store: MongoDB client, gateway, circuit breaker and snapshot cache
//  4. Reporting: normalizer, filters and aggregations bound to the gateway
//  5. Live layer (REFRESH_ENABLED=true): WebSocket hub and refresher
//  6. API layer: chi router behind an http.Server
//
// Layers 5 and 6 run under a suture supervisor tree, so a crashed refresher
// restarts without taking the HTTP server down.
//
// # Required Environment
//
//	MONGO_URI=mongodb://localhost:27017
//	MONGO_DATABASE=bovtag
//	MONGO_EVENTS_COLLECTION=tags
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the root context. The HTTP server drains in-flight
// requests for HTTP_SHUTDOWN_TIMEOUT, live clients receive a close frame and
// the Mongo client disconnects last.
package main
