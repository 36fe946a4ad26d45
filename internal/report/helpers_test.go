// BovTag - Livestock Tag Detection Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bovtag

package report

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tomtom215/bovtag/internal/models"
)

func manaus(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Manaus")
	require.NoError(t, err)
	return loc
}

func utc(year int, month time.Month, day, hour, minute int) *time.Time {
	ts := time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
	return &ts
}

func event(id, subject string, createdAt *time.Time) models.Event {
	return models.Event{ID: id, GroupLabel: "Boa Vista", SubjectID: subject, CreatedAt: createdAt}
}

func counts(s models.BucketSeries) map[int]int {
	out := make(map[int]int, len(s.Points))
	for _, p := range s.Points {
		out[p.Key] = p.Count
	}
	return out
}

func keys(s models.BucketSeries) []int {
	out := make([]int, 0, len(s.Points))
	for _, p := range s.Points {
		out = append(out, p.Key)
	}
	return out
}

func domain(first, last int) []int {
	out := make([]int, 0, last-first+1)
	for k := first; k <= last; k++ {
		out = append(out, k)
	}
	return out
}

// fakeGateway is an in-memory store.Gateway.
type fakeGateway struct {
	events       []models.Event
	summary      *models.TenantSummary
	eventsErr    error
	summaryErr   error
	eventCalls   atomic.Int32
	summaryCalls atomic.Int32
}

func (f *fakeGateway) FetchEvents(context.Context) ([]models.Event, error) {
	f.eventCalls.Add(1)
	if f.eventsErr != nil {
		return nil, f.eventsErr
	}
	return f.events, nil
}

func (f *fakeGateway) FetchTenantSummary(context.Context) (*models.TenantSummary, error) {
	f.summaryCalls.Add(1)
	if f.summaryErr != nil {
		return nil, f.summaryErr
	}
	return f.summary, nil
}

func (f *fakeGateway) Ping(context.Context) error {
	return f.eventsErr
}
