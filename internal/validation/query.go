// BovTag - Livestock Tag Detection Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bovtag

package validation

import (
	"net/url"
	"strings"

	"github.com/tomtom215/bovtag/internal/models"
)

// FilterParams are the query parameters read by DashboardQueryFrom.
var FilterParams = []string{"date", "month", "subject"}

// DashboardQuery holds the raw filter parameters of a dashboard request.
type DashboardQuery struct {
	Date    string `query:"date" validate:"omitempty,datetime=2006-01-02"`
	Month   string `query:"month" validate:"omitempty,datetime=2006-01"`
	Subject string `query:"subject" validate:"omitempty,max=64,subject_id"`
}

// DashboardQueryFrom reads the filter parameters from a URL query.
func DashboardQueryFrom(values url.Values) DashboardQuery {
	return DashboardQuery{
		Date:    strings.TrimSpace(values.Get("date")),
		Month:   strings.TrimSpace(values.Get("month")),
		Subject: values.Get("subject"),
	}
}

// IsEmpty reports whether no filter parameter was given.
func (q DashboardQuery) IsEmpty() bool {
	return q.Date == "" && q.Month == "" && q.Subject == ""
}

// Selection converts a validated query into a dashboard selection.
// Call ValidateStruct first; unparsable values are left unset.
func (q DashboardQuery) Selection() models.Selection {
	sel := models.Selection{SubjectID: models.AllSubjects}
	if q.Date != "" {
		if d, err := models.ParseDate(q.Date); err == nil {
			sel.Date = &d
		}
	}
	if q.Month != "" {
		if ym, err := models.ParseYearMonth(q.Month); err == nil {
			sel.Month = &ym
		}
	}
	if q.Subject != "" {
		sel.SubjectID = q.Subject
	}
	return sel
}
