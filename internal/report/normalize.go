// BovTag - Livestock Tag Detection Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bovtag

package report

import (
	"time"

	"github.com/tomtom215/bovtag/internal/models"
)

// Normalize converts each event's creation instant to loc and derives its
// local date, hour and month. Events without a timestamp are dropped.
func Normalize(events []models.Event, loc *time.Location) []models.NormalizedEvent {
	out := make([]models.NormalizedEvent, 0, len(events))
	for _, e := range events {
		if !e.HasTimestamp() {
			continue
		}
		out = append(out, normalizeOne(e, loc))
	}
	return out
}

// NormalizeStrict is Normalize but fails on the first event without a timestamp.
func NormalizeStrict(events []models.Event, loc *time.Location) ([]models.NormalizedEvent, error) {
	out := make([]models.NormalizedEvent, 0, len(events))
	for _, e := range events {
		if !e.HasTimestamp() {
			return nil, &MalformedEventError{EventID: e.ID, Reason: "missing or unparsable createdAt"}
		}
		out = append(out, normalizeOne(e, loc))
	}
	return out, nil
}

func normalizeOne(e models.Event, loc *time.Location) models.NormalizedEvent {
	local := e.CreatedAt.In(loc)
	return models.NormalizedEvent{
		Event:      e,
		LocalTime:  local,
		LocalDate:  models.DateOf(local),
		LocalHour:  local.Hour(),
		LocalMonth: models.YearMonthOf(local),
	}
}
