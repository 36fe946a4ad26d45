// BovTag - Livestock Tag Detection Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bovtag

/*
Package models defines the data structures shared by the BovTag dashboard.

The package holds the store-facing records, the values the reporting pipeline
derives from them and the payloads returned by the HTTP API. It has no
behaviour beyond small value helpers and imports nothing from the rest of the
module, so every other package can depend on it.

Key Components:

  - Event: one tag detection as read from the event collection
  - TenantSummary: the pre-aggregated per-farm counter document
  - NormalizedEvent: an Event with its wall-clock fields in the reporting timezone
  - BucketSeries: a complete, ordered count series over a fixed domain
  - KPI and Dashboard: the assembled dashboard for one filter selection
  - Date and YearMonth: civil calendar values used by filters and buckets

Timestamps:

Event.CreatedAt is a pointer. A nil value means the stored document had no
creation time or one that could not be parsed; such events never reach the
bucket series.

JSON Encoding:

Date and YearMonth implement encoding.TextMarshaler, so they appear as
"2006-01-02" and "2006-01" strings in every JSON payload.
*/
package models
