// BovTag - Livestock Tag Detection Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bovtag

// Package export renders dashboards as XLSX workbooks.
//
// The "Events" sheet holds one row per filtered detection in the reporting
// timezone. The "Summary" sheet holds the KPI block followed by the hourly,
// daily and monthly series.
package export
