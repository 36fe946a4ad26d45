// BovTag - Livestock Tag Detection Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bovtag

/*
Package api serves the dashboard over HTTP using the chi router.

Routes:

	GET /api/v1/health/live           process liveness
	GET /api/v1/health/ready          event store reachability
	GET /api/v1/dashboard             full dashboard for a selection
	GET /api/v1/dashboard/kpi         indicators only
	GET /api/v1/dashboard/hourly      24 hour-of-day buckets
	GET /api/v1/dashboard/daily       one bucket per day of the month
	GET /api/v1/dashboard/monthly     12 month buckets
	GET /api/v1/dashboard/events      filtered detections
	GET /api/v1/dashboard/filters     picker values and default selection
	GET /api/v1/dashboard/export.xlsx workbook download
	GET /api/v1/live                  WebSocket push of refreshed dashboards
	GET /metrics                      Prometheus metrics

Dashboard routes accept date=YYYY-MM-DD, month=YYYY-MM and subject=<id>|ALL.
With no parameter the most recent local date, its month and every subject
are selected.

Every JSON body uses the APIResponse envelope. Status codes:

	200 dashboard built; data.state is "empty" when nothing matched
	400 BAD_REQUEST       unparsable query string or a repeated filter parameter
	400 VALIDATION_ERROR  malformed filter parameter
	502 MALFORMED_EVENT   strict timestamp policy rejected a stored event
	503 STORE_UNAVAILABLE the event store could not be read
*/
package api
