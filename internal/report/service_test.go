// BovTag - Livestock Tag Detection Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bovtag

package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/bovtag/internal/config"
	"github.com/tomtom215/bovtag/internal/models"
	"github.com/tomtom215/bovtag/internal/store"
)

func newTestService(t *testing.T, gw store.Gateway, policy string) *Service {
	t.Helper()
	svc, err := NewService(gw, &config.ReportingConfig{Timezone: "America/Manaus", TimestampPolicy: policy})
	require.NoError(t, err)
	svc.now = func() time.Time { return time.Date(2024, time.September, 15, 12, 0, 0, 0, time.UTC) }
	return svc
}

func sampleEvents() []models.Event {
	return []models.Event{
		event("e1", "BR-1", utc(2024, time.February, 28, 14, 0)),
		event("e2", "BR-2", utc(2024, time.February, 29, 7, 0)),
		event("e3", "BR-1", utc(2024, time.February, 29, 7, 30)),
		event("e4", "BR-3", utc(2024, time.February, 29, 13, 0)),
		event("e5", "BR-9", nil),
		event("e6", "BR-2", utc(2024, time.January, 15, 12, 0)),
	}
}

func TestNewService_InvalidTimezone(t *testing.T) {
	t.Parallel()

	_, err := NewService(&fakeGateway{}, &config.ReportingConfig{Timezone: "Nowhere/Land"})
	assert.Error(t, err)
}

func TestService_Build(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{events: sampleEvents(), summary: &models.TenantSummary{GroupLabel: "Boa Vista", TotalCount: 40}}
	svc := newTestService(t, gw, config.TimestampPolicyBestEffort)

	d := models.Date{Year: 2024, Month: time.February, Day: 29}
	dash, err := svc.Build(context.Background(), models.Selection{Date: &d, SubjectID: models.AllSubjects})
	require.NoError(t, err)

	assert.Equal(t, models.DashboardStateOK, dash.State)
	assert.Equal(t, 1, dash.Dropped)
	assert.Equal(t, 3, dash.KPI.SubsetCount)
	assert.Equal(t, int64(40), dash.KPI.TenantTotal)
	assert.Equal(t, "BR-3", dash.KPI.LatestSubjectID)
	assert.Equal(t, 3, dash.KPI.DistinctSubjects)

	// Leap February sizes the daily series from the selected date's month.
	assert.Len(t, dash.Daily.Points, 29)
	assert.Equal(t, 3, counts(dash.Daily)[29])
	assert.Len(t, dash.Hourly.Points, 24)
	assert.Equal(t, 2, counts(dash.Hourly)[3])
	assert.Equal(t, 1, counts(dash.Hourly)[9])
	assert.Len(t, dash.Monthly.Points, 12)
	assert.Equal(t, 3, counts(dash.Monthly)[2])

	ids := []string{}
	for _, e := range dash.Events {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"e2", "e3", "e4"}, ids, "events are in chronological order")
}

func TestService_Build_EmptySelection(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{events: sampleEvents()}
	svc := newTestService(t, gw, config.TimestampPolicyBestEffort)

	dash, err := svc.Build(context.Background(), models.Selection{SubjectID: "BR-404"})
	require.NoError(t, err)

	assert.Equal(t, models.DashboardStateEmpty, dash.State)
	assert.Equal(t, models.NotAvailable, dash.KPI.LatestSubjectID)
	assert.NotNil(t, dash.Events)
	assert.Len(t, dash.Hourly.Points, 24)
	assert.Len(t, dash.Monthly.Points, 12)
	assert.Zero(t, dash.Monthly.Total())
}

func TestService_Build_StoreUnavailable(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{eventsErr: &store.StoreError{Op: store.OpFetchEvents, Err: context.DeadlineExceeded}}
	svc := newTestService(t, gw, config.TimestampPolicyBestEffort)

	dash, err := svc.Build(context.Background(), models.Selection{})

	require.Error(t, err)
	assert.Nil(t, dash, "a store failure never yields a dashboard")
	assert.True(t, errors.Is(err, store.ErrStoreUnavailable))
	assert.True(t, IsStoreUnavailable(err))
	assert.Zero(t, gw.summaryCalls.Load(), "no stage runs after a failed fetch")
}

func TestService_Build_SummaryUnavailable(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{events: sampleEvents(), summaryErr: &store.StoreError{Op: store.OpFetchSummary, Err: errors.New("socket closed")}}
	svc := newTestService(t, gw, config.TimestampPolicyBestEffort)

	dash, err := svc.Build(context.Background(), models.Selection{})
	assert.Nil(t, dash)
	assert.True(t, IsStoreUnavailable(err))
}

func TestService_Build_EmptyStoreIsNotUnavailable(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &fakeGateway{events: []models.Event{}}, config.TimestampPolicyBestEffort)

	dash, err := svc.Build(context.Background(), models.Selection{})
	require.NoError(t, err)
	assert.Equal(t, models.DashboardStateEmpty, dash.State)
	// No selection and no events: the current month (September) sizes the daily series.
	assert.Len(t, dash.Daily.Points, 30)
}

func TestService_Build_StrictPolicy(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &fakeGateway{events: sampleEvents()}, config.TimestampPolicyStrict)

	_, err := svc.Build(context.Background(), models.Selection{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedEvent))
	assert.False(t, IsStoreUnavailable(err))
}

func TestService_DaysDomainMonth(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &fakeGateway{}, config.TimestampPolicyBestEffort)
	normalized := Normalize(sampleEvents(), svc.Location())

	sep := models.YearMonth{Year: 2023, Month: time.September}
	d := models.Date{Year: 2023, Month: time.April, Day: 3}

	assert.Equal(t, sep, svc.daysDomainMonth(models.Selection{Month: &sep, Date: &d}, normalized))
	assert.Equal(t, models.YearMonth{Year: 2023, Month: time.April}, svc.daysDomainMonth(models.Selection{Date: &d}, normalized))
	assert.Equal(t, models.YearMonth{Year: 2024, Month: time.February}, svc.daysDomainMonth(models.Selection{}, normalized))
	assert.Equal(t, models.YearMonth{Year: 2024, Month: time.September}, svc.daysDomainMonth(models.Selection{}, nil))
}

func TestService_Build_DailySeriesCoversOneMonth(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &fakeGateway{events: sampleEvents()}, config.TimestampPolicyBestEffort)

	// BR-2 has one event in January and one in February; with no month or
	// date selected the daily series covers the latest month only.
	dash, err := svc.Build(context.Background(), models.Selection{SubjectID: "BR-2"})
	require.NoError(t, err)

	assert.Equal(t, 2, dash.KPI.SubsetCount)
	assert.Equal(t, models.YearMonth{Year: 2024, Month: time.February}, dash.DailyMonth)
	assert.Len(t, dash.Daily.Points, 29)
	assert.Equal(t, 1, dash.Daily.Total())
	assert.Equal(t, 1, counts(dash.Daily)[29])
	assert.Zero(t, counts(dash.Daily)[15], "January's day 15 must not land in February's series")
	assert.Equal(t, 2, dash.Monthly.Total())
}

func TestService_OptionsAndDefaultSelection(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &fakeGateway{events: sampleEvents()}, config.TimestampPolicyBestEffort)

	opts, err := svc.Options(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.YearMonth{{Year: 2024, Month: time.January}, {Year: 2024, Month: time.February}}, opts.Months)
	assert.Equal(t, []string{"BR-1", "BR-2", "BR-3", "BR-9"}, opts.Subjects)
	require.NotNil(t, opts.LatestDate)
	assert.Equal(t, models.Date{Year: 2024, Month: time.February, Day: 29}, *opts.LatestDate)

	sel, err := svc.DefaultSelection(context.Background())
	require.NoError(t, err)
	require.NotNil(t, sel.Date)
	require.NotNil(t, sel.Month)
	assert.Equal(t, *opts.LatestDate, *sel.Date)
	assert.Equal(t, models.YearMonth{Year: 2024, Month: time.February}, *sel.Month)
	assert.Equal(t, models.AllSubjects, sel.SubjectID)
}

func TestDefaultSelectionFrom_NoData(t *testing.T) {
	t.Parallel()

	sel := DefaultSelectionFrom(&models.FilterOptions{})
	assert.Nil(t, sel.Date)
	assert.Nil(t, sel.Month)
	assert.Equal(t, models.AllSubjects, sel.SubjectID)
}
