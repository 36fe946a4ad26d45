// BovTag - Livestock Tag Detection Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bovtag

package models

import "time"

// Bucket dimensions.
const (
	DimensionHour  = "hour"
	DimensionDay   = "day"
	DimensionMonth = "month"
)

// NotAvailable is shown in place of a KPI that has no value for the selection.
const NotAvailable = "N/A"

// BucketPoint is one bucket of a series.
type BucketPoint struct {
	Key   int    `json:"key"`
	Label string `json:"label"` // e.g. "07", "15", "Mar"
	Count int    `json:"count"`
}

// BucketSeries is a count series over a fixed domain.
// Points cover every key of the domain in domain order; empty buckets have Count 0.
type BucketSeries struct {
	Dimension string        `json:"dimension"` // "hour", "day", "month"
	Points    []BucketPoint `json:"points"`
}

// Total returns the sum of all bucket counts.
func (s BucketSeries) Total() int {
	total := 0
	for _, p := range s.Points {
		total += p.Count
	}
	return total
}

// KPI holds the headline numbers of the dashboard.
//
// SubsetCount is the number of events in the filtered selection and TenantTotal
// the farm-wide counter from the summary document. TenantShare is
// SubsetCount/TenantTotal, or 0 when the total is unknown.
type KPI struct {
	SubsetCount      int     `json:"subset_count"`
	TenantTotal      int64   `json:"tenant_total"`
	LatestSubjectID  string  `json:"latest_subject_id"`
	GroupLabel       string  `json:"group_label"`
	DistinctSubjects int     `json:"distinct_subjects"`
	TenantShare      float64 `json:"tenant_share"`
}

// AllSubjects selects every subject.
const AllSubjects = "ALL"

// Selection is the user's filter choice. Nil Date or Month and an empty or
// AllSubjects SubjectID mean no restriction on that dimension.
type Selection struct {
	Date      *Date      `json:"date,omitempty"`
	Month     *YearMonth `json:"month,omitempty"`
	SubjectID string     `json:"subject_id"`
}

// DashboardState distinguishes a populated dashboard from one whose selection matched nothing.
type DashboardState string

const (
	DashboardStateOK    DashboardState = "ok"
	DashboardStateEmpty DashboardState = "empty"
)

// Dashboard is the full report for one selection.
// A store failure never produces a Dashboard.
type Dashboard struct {
	Selection   Selection         `json:"selection"`
	State       DashboardState    `json:"state"`
	KPI         KPI               `json:"kpi"`
	Hourly      BucketSeries      `json:"hourly"`
	Daily       BucketSeries      `json:"daily"`
	DailyMonth  YearMonth         `json:"daily_month"` // month the daily series covers
	Monthly     BucketSeries      `json:"monthly"`
	Events      []NormalizedEvent `json:"events"`
	Dropped     int               `json:"dropped"` // events without a usable timestamp
	GeneratedAt time.Time         `json:"generated_at"`
}

// FilterOptions lists the values offered by the dashboard filter pickers.
type FilterOptions struct {
	Months     []YearMonth `json:"months"`
	Subjects   []string    `json:"subjects"`
	LatestDate *Date       `json:"latest_date,omitempty"`
}

// HealthStatus is returned by the readiness endpoint.
type HealthStatus struct {
	Status         string  `json:"status"` // "ready" or "not_ready"
	Version        string  `json:"version"`
	StoreConnected bool    `json:"store_connected"`
	BreakerState   string  `json:"breaker_state,omitempty"`
	Uptime         float64 `json:"uptime_seconds"`
}
