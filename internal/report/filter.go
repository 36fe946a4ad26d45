// BovTag - Livestock Tag Detection Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bovtag

package report

import (
	"strings"

	"github.com/tomtom215/bovtag/internal/models"
)

// legacyAllSubjects is the "all animals" choice of the original dashboard picker.
const legacyAllSubjects = "Todos"

// Filter restricts normalized events to a date, a month and a subject.
// A nil Date or Month and an empty or "ALL" SubjectID leave that dimension open.
type Filter struct {
	Date      *models.Date
	Month     *models.YearMonth
	SubjectID string
}

// NewFilter builds a Filter from a dashboard selection.
func NewFilter(sel models.Selection) Filter {
	return Filter{Date: sel.Date, Month: sel.Month, SubjectID: sel.SubjectID}
}

// AllSubjects reports whether the subject dimension is unrestricted.
func (f Filter) AllSubjects() bool {
	return IsAllSubjects(f.SubjectID)
}

// IsAllSubjects reports whether id selects every subject.
func IsAllSubjects(id string) bool {
	id = strings.TrimSpace(id)
	return id == "" || strings.EqualFold(id, models.AllSubjects) || id == legacyAllSubjects
}

// Match reports whether e satisfies every dimension of the filter.
func (f Filter) Match(e models.NormalizedEvent) bool {
	if f.Date != nil && e.LocalDate != *f.Date {
		return false
	}
	if f.Month != nil && e.LocalMonth != *f.Month {
		return false
	}
	if !f.AllSubjects() && e.SubjectID != strings.TrimSpace(f.SubjectID) {
		return false
	}
	return true
}

// Apply returns the events that match the filter, preserving input order.
// The result is never nil.
func (f Filter) Apply(events []models.NormalizedEvent) []models.NormalizedEvent {
	out := make([]models.NormalizedEvent, 0, len(events))
	for _, e := range events {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	return out
}
