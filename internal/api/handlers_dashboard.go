// BovTag - Livestock Tag Detection Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bovtag

package api

import (
	"net/http"

	"github.com/tomtom215/bovtag/internal/models"
	"github.com/tomtom215/bovtag/internal/report"
)

// SeriesResponse is one chart of the dashboard.
type SeriesResponse struct {
	Selection models.Selection      `json:"selection"`
	State     models.DashboardState `json:"state"`
	Series    models.BucketSeries   `json:"series"`
}

// KPIResponse is the indicator block of the dashboard.
type KPIResponse struct {
	Selection models.Selection      `json:"selection"`
	State     models.DashboardState `json:"state"`
	KPI       models.KPI            `json:"kpi"`
}

// EventsResponse is the raw detection table of the dashboard.
type EventsResponse struct {
	Selection models.Selection         `json:"selection"`
	State     models.DashboardState    `json:"state"`
	Count     int                      `json:"count"`
	Dropped   int                      `json:"dropped"`
	Events    []models.NormalizedEvent `json:"events"`
}

// FiltersResponse lists picker values and the default selection.
type FiltersResponse struct {
	Options *models.FilterOptions `json:"options"`
	Default models.Selection      `json:"default_selection"`
}

// Dashboard returns the full dashboard for the requested selection.
//
// Query: date=YYYY-MM-DD, month=YYYY-MM, subject=<id>|ALL. An empty result
// is a 200 with state "empty"; an unreachable store is a 503.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if d, ok := h.build(rw, r); ok {
		rw.Success(d)
	}
}

// DashboardKPI returns only the indicators.
func (h *Handler) DashboardKPI(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if d, ok := h.build(rw, r); ok {
		rw.Success(KPIResponse{Selection: d.Selection, State: d.State, KPI: d.KPI})
	}
}

// DashboardHourly returns the 24 hour-of-day buckets.
func (h *Handler) DashboardHourly(w http.ResponseWriter, r *http.Request) {
	h.series(w, r, func(d *models.Dashboard) models.BucketSeries { return d.Hourly })
}

// DashboardDaily returns one bucket per day of the selected month.
func (h *Handler) DashboardDaily(w http.ResponseWriter, r *http.Request) {
	h.series(w, r, func(d *models.Dashboard) models.BucketSeries { return d.Daily })
}

// DashboardMonthly returns the 12 month-of-year buckets.
func (h *Handler) DashboardMonthly(w http.ResponseWriter, r *http.Request) {
	h.series(w, r, func(d *models.Dashboard) models.BucketSeries { return d.Monthly })
}

func (h *Handler) series(w http.ResponseWriter, r *http.Request, pick func(*models.Dashboard) models.BucketSeries) {
	rw := NewResponseWriter(w, r)
	if d, ok := h.build(rw, r); ok {
		rw.Success(SeriesResponse{Selection: d.Selection, State: d.State, Series: pick(d)})
	}
}

// DashboardEvents returns the filtered detections in chronological order.
func (h *Handler) DashboardEvents(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if d, ok := h.build(rw, r); ok {
		rw.Success(EventsResponse{
			Selection: d.Selection,
			State:     d.State,
			Count:     len(d.Events),
			Dropped:   d.Dropped,
			Events:    d.Events,
		})
	}
}

// DashboardFilters returns the months and subjects present in the store and
// the selection used when a request carries no filter.
func (h *Handler) DashboardFilters(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	opts, err := h.service.Options(r.Context())
	if err != nil {
		writeBuildError(rw, r, err)
		return
	}
	rw.Success(FiltersResponse{Options: opts, Default: report.DefaultSelectionFrom(opts)})
}
