// BovTag - Livestock Tag Detection Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bovtag

/*
Package live pushes dashboard refreshes to connected browsers.

A Hub tracks WebSocket clients and fans messages out to them. A Refresher
runs under the supervisor, rebuilds the default dashboard whenever its
Scheduler says a run is due, and broadcasts the result:

	dashboard_update    the rebuilt models.Dashboard
	store_unavailable   the event store could not be read; clients keep
	                    their last dashboard and the next run retries
	refresh_error       the rebuild failed for another reason

The scheduler state (Interval, NextRun) is owned by the refresher goroutine
and is never shared.
*/
package live
