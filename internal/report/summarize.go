// BovTag - Livestock Tag Detection Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bovtag

package report

import (
	"github.com/tomtom215/bovtag/internal/models"
)

// Summarize computes the KPI block for a filtered selection.
// summary may be nil when the farm has no counter document.
func Summarize(filtered []models.NormalizedEvent, summary *models.TenantSummary) models.KPI {
	kpi := models.KPI{
		SubsetCount:     len(filtered),
		LatestSubjectID: models.NotAvailable,
		GroupLabel:      models.NotAvailable,
	}

	if summary != nil {
		kpi.TenantTotal = summary.TotalCount
		if summary.GroupLabel != "" {
			kpi.GroupLabel = summary.GroupLabel
		}
	}

	if latestEvent, ok := Latest(filtered); ok {
		kpi.LatestSubjectID = latestEvent.SubjectID
		if kpi.GroupLabel == models.NotAvailable && latestEvent.GroupLabel != "" {
			kpi.GroupLabel = latestEvent.GroupLabel
		}
	}

	subjects := make(map[string]struct{}, len(filtered))
	for _, e := range filtered {
		subjects[e.SubjectID] = struct{}{}
	}
	kpi.DistinctSubjects = len(subjects)

	if kpi.TenantTotal > 0 {
		kpi.TenantShare = float64(kpi.SubsetCount) / float64(kpi.TenantTotal)
	}
	return kpi
}

// Latest returns the event with the greatest creation instant. Ties go to the
// greater event ID, so the result does not depend on input order.
func Latest(events []models.NormalizedEvent) (models.NormalizedEvent, bool) {
	if len(events) == 0 {
		return models.NormalizedEvent{}, false
	}
	best := events[0]
	for _, e := range events[1:] {
		if laterThan(e, best) {
			best = e
		}
	}
	return best, true
}

func laterThan(a, b models.NormalizedEvent) bool {
	at, bt := *a.CreatedAt, *b.CreatedAt
	if !at.Equal(bt) {
		return at.After(bt)
	}
	return a.ID > b.ID
}
