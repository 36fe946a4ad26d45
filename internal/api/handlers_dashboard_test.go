// BovTag - Livestock Tag Detection Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bovtag

package api

import (
	"net/http"
	"testing"

	"github.com/tomtom215/bovtag/internal/models"
)

func TestDashboard_DefaultSelection(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, healthyGateway(), nil)

	rec := env.get(t, "/api/v1/dashboard")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var d models.Dashboard
	decodeData(t, rec, &d)

	if d.Selection.Date == nil || d.Selection.Date.String() != "2024-09-15" {
		t.Errorf("selection date = %v, want 2024-09-15", d.Selection.Date)
	}
	if d.Selection.Month == nil || d.Selection.Month.String() != "2024-09" {
		t.Errorf("selection month = %v, want 2024-09", d.Selection.Month)
	}
	if d.Selection.SubjectID != models.AllSubjects {
		t.Errorf("selection subject = %q, want ALL", d.Selection.SubjectID)
	}
	if d.State != models.DashboardStateOK {
		t.Errorf("state = %q, want ok", d.State)
	}
	if d.KPI.SubsetCount != 2 || d.KPI.TenantTotal != 40 {
		t.Errorf("kpi counts = %d/%d, want 2/40", d.KPI.SubsetCount, d.KPI.TenantTotal)
	}
	if d.KPI.LatestSubjectID != "101" {
		t.Errorf("latest subject = %q, want 101", d.KPI.LatestSubjectID)
	}
	if d.KPI.GroupLabel != farm {
		t.Errorf("group label = %q", d.KPI.GroupLabel)
	}
	if len(d.Hourly.Points) != 24 || len(d.Daily.Points) != 30 || len(d.Monthly.Points) != 12 {
		t.Errorf("series lengths = %d/%d/%d, want 24/30/12",
			len(d.Hourly.Points), len(d.Daily.Points), len(d.Monthly.Points))
	}
	if d.Hourly.Points[8].Count != 1 || d.Hourly.Points[11].Count != 1 {
		t.Errorf("hourly 08/11 = %d/%d, want 1/1", d.Hourly.Points[8].Count, d.Hourly.Points[11].Count)
	}
	if d.Dropped != 1 {
		t.Errorf("dropped = %d, want 1", d.Dropped)
	}
}

func TestDashboard_Filters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		query      string
		wantState  models.DashboardState
		wantCount  int
		wantLatest string
		wantDays   int
	}{
		{"subject only", "?subject=101", models.DashboardStateOK, 2, "101", 30},
		{"explicit all", "?subject=ALL&month=2024-09", models.DashboardStateOK, 3, "101", 30},
		{"august month", "?month=2024-08", models.DashboardStateOK, 1, "103", 31},
		{"date and subject", "?date=2024-09-15&subject=102", models.DashboardStateOK, 1, "102", 30},
		{"nothing matches", "?date=2024-09-14&subject=102", models.DashboardStateEmpty, 0, models.NotAvailable, 30},
		{"leap february", "?month=2024-02", models.DashboardStateEmpty, 0, models.NotAvailable, 29},
		{"unknown subject", "?subject=999", models.DashboardStateEmpty, 0, models.NotAvailable, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env := newTestEnv(t, healthyGateway(), nil)

			rec := env.get(t, "/api/v1/dashboard"+tt.query)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
			}
			var d models.Dashboard
			decodeData(t, rec, &d)

			if d.State != tt.wantState {
				t.Errorf("state = %q, want %q", d.State, tt.wantState)
			}
			if d.KPI.SubsetCount != tt.wantCount || len(d.Events) != tt.wantCount {
				t.Errorf("count = %d (events %d), want %d", d.KPI.SubsetCount, len(d.Events), tt.wantCount)
			}
			if d.KPI.LatestSubjectID != tt.wantLatest {
				t.Errorf("latest = %q, want %q", d.KPI.LatestSubjectID, tt.wantLatest)
			}
			if len(d.Daily.Points) != tt.wantDays {
				t.Errorf("daily points = %d, want %d", len(d.Daily.Points), tt.wantDays)
			}
			if len(d.Hourly.Points) != 24 || len(d.Monthly.Points) != 12 {
				t.Errorf("hourly/monthly = %d/%d, want 24/12", len(d.Hourly.Points), len(d.Monthly.Points))
			}
		})
	}
}

func TestDashboard_MalformedQuery(t *testing.T) {
	t.Parallel()

	for _, query := range []string{"?date=%zz", "?subject=101&subject=102", "?month=2024-08&month=2024-09"} {
		t.Run(query, func(t *testing.T) {
			t.Parallel()
			env := newTestEnv(t, healthyGateway(), nil)

			rec := env.get(t, "/api/v1/dashboard"+query)
			expectError(t, rec, http.StatusBadRequest, ErrCodeBadRequest)
			if got := env.gateway.fetches.Load(); got != 0 {
				t.Errorf("store fetched %d times for a rejected query", got)
			}
		})
	}
}

func TestDashboard_InvalidQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
		field string
	}{
		{"bad date format", "?date=15/09/2024", "date"},
		{"impossible date", "?date=2024-02-30", "date"},
		{"bad month", "?month=2024-13", "month"},
		{"padded subject", "?subject=%20101", "subject"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env := newTestEnv(t, healthyGateway(), nil)

			rec := env.get(t, "/api/v1/dashboard"+tt.query)
			resp := expectError(t, rec, http.StatusBadRequest, ErrCodeValidationFailed)

			details, ok := resp.Error.Details.(map[string]interface{})
			if !ok || details["field"] != tt.field {
				t.Errorf("details = %v, want field %q", resp.Error.Details, tt.field)
			}
			if env.gateway.fetches.Load() != 0 {
				t.Error("store must not be read for an invalid query")
			}
		})
	}
}

func TestDashboard_StoreUnavailable(t *testing.T) {
	t.Parallel()

	for _, path := range []string{
		"/api/v1/dashboard",
		"/api/v1/dashboard?month=2024-09",
		"/api/v1/dashboard/kpi?subject=101",
		"/api/v1/dashboard/hourly?date=2024-09-15",
		"/api/v1/dashboard/events",
		"/api/v1/dashboard/filters",
		"/api/v1/dashboard/export.xlsx",
	} {
		env := newTestEnv(t, downGateway(), nil)
		rec := env.get(t, path)
		resp := expectError(t, rec, http.StatusServiceUnavailable, ErrCodeStoreUnavailable)
		if len(resp.Data) != 0 && string(resp.Data) != "null" {
			t.Errorf("%s: unavailable response carried data %s", path, resp.Data)
		}
	}
}

func TestDashboard_EmptyStoreIsNotUnavailable(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, &fakeGateway{}, nil)

	rec := env.get(t, "/api/v1/dashboard")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for an empty store", rec.Code)
	}
	var d models.Dashboard
	decodeData(t, rec, &d)
	if d.State != models.DashboardStateEmpty {
		t.Errorf("state = %q, want empty", d.State)
	}
	if d.KPI.LatestSubjectID != models.NotAvailable {
		t.Errorf("latest = %q, want N/A", d.KPI.LatestSubjectID)
	}
}

func TestDashboard_StrictPolicyRejectsMalformed(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, healthyGateway(), nil, strictPolicy)

	rec := env.get(t, "/api/v1/dashboard?month=2024-09")
	resp := expectError(t, rec, http.StatusBadGateway, ErrCodeMalformedEvent)
	details, _ := resp.Error.Details.(map[string]interface{})
	if details["event_id"] != "e5" {
		t.Errorf("details = %v, want event_id e5", resp.Error.Details)
	}
}

func TestDashboard_Parts(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, healthyGateway(), nil)
	query := "?month=2024-09"

	var kpi KPIResponse
	decodeData(t, env.get(t, "/api/v1/dashboard/kpi"+query), &kpi)
	if kpi.KPI.SubsetCount != 3 || kpi.KPI.DistinctSubjects != 2 {
		t.Errorf("kpi = %+v, want 3 events from 2 subjects", kpi.KPI)
	}

	series := map[string]int{"hourly": 24, "daily": 30, "monthly": 12}
	for part, points := range series {
		var resp SeriesResponse
		decodeData(t, env.get(t, "/api/v1/dashboard/"+part+query), &resp)
		if len(resp.Series.Points) != points {
			t.Errorf("%s points = %d, want %d", part, len(resp.Series.Points), points)
		}
		if resp.Series.Total() != 3 {
			t.Errorf("%s total = %d, want 3", part, resp.Series.Total())
		}
	}

	var events EventsResponse
	decodeData(t, env.get(t, "/api/v1/dashboard/events"+query), &events)
	if events.Count != 3 || len(events.Events) != 3 {
		t.Fatalf("events = %d/%d, want 3", events.Count, len(events.Events))
	}
	for i, want := range []string{"e1", "e2", "e3"} {
		if events.Events[i].ID != want {
			t.Errorf("events[%d] = %s, want %s (chronological)", i, events.Events[i].ID, want)
		}
	}
}

func TestDashboardFilters(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, healthyGateway(), nil)

	var resp FiltersResponse
	decodeData(t, env.get(t, "/api/v1/dashboard/filters"), &resp)

	if resp.Options == nil {
		t.Fatal("options missing")
	}
	var months []string
	for _, m := range resp.Options.Months {
		months = append(months, m.String())
	}
	if len(months) != 2 || months[0] != "2024-08" || months[1] != "2024-09" {
		t.Errorf("months = %v, want [2024-08 2024-09]", months)
	}
	want := []string{"101", "102", "103", "104"}
	if len(resp.Options.Subjects) != len(want) {
		t.Fatalf("subjects = %v, want %v", resp.Options.Subjects, want)
	}
	for i := range want {
		if resp.Options.Subjects[i] != want[i] {
			t.Errorf("subjects = %v, want %v", resp.Options.Subjects, want)
			break
		}
	}
	if resp.Default.Date == nil || resp.Default.Date.String() != "2024-09-15" {
		t.Errorf("default date = %v, want 2024-09-15", resp.Default.Date)
	}
}
