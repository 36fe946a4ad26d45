// BovTag - Livestock Tag Detection Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bovtag

package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/tomtom215/bovtag/internal/export"
	"github.com/tomtom215/bovtag/internal/logging"
	"github.com/tomtom215/bovtag/internal/models"
	"github.com/tomtom215/bovtag/internal/report"
)

// DashboardExport streams the dashboard for the selection as an XLSX
// workbook with an Events sheet and a Summary sheet.
func (h *Handler) DashboardExport(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	d, ok := h.build(rw, r)
	if !ok {
		return
	}

	data, err := export.WriteDashboard(d, h.service.Location())
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to render workbook")
		rw.InternalError("Failed to render workbook")
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFilename(d.Selection)))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Workbook write interrupted")
	}
}

// exportFilename names the workbook after the narrowest filter applied.
func exportFilename(sel models.Selection) string {
	scope := "all"
	switch {
	case sel.Date != nil:
		scope = sel.Date.String()
	case sel.Month != nil:
		scope = sel.Month.String()
	}
	if !report.IsAllSubjects(sel.SubjectID) {
		scope += "-" + sanitizeFilename(sel.SubjectID)
	}
	return "bovtag-" + scope + ".xlsx"
}

// sanitizeFilename keeps only characters that are safe in a download name.
func sanitizeFilename(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
