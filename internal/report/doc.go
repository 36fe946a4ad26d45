// BovTag - Livestock Tag Detection Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bovtag

/*
Package report turns raw tag detections into the dashboard.

Every request runs the same pipeline over a fresh read of the event store:

	fetch -> normalize -> filter -> aggregate -> summarize

Normalize converts each UTC creation instant to the reporting timezone and
derives the local date, hour and month. Filter keeps the events matching the
selected date, month and animal. The aggregators count the selection into
complete series: 24 hours, every day of the displayed month and the 12 months
of the year, with zero-filled gaps. Summarize produces the KPI block.

All stages except the fetch are pure functions with no shared state, so
concurrent builds need no locking. A failed fetch stops the pipeline and is
returned as an error wrapping store.ErrStoreUnavailable; callers never see a
dashboard built from a partial or missing read.
*/
package report
