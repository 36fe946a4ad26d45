// BovTag - Livestock Tag Detection Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bovtag

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/bovtag/internal/logging"
	"github.com/tomtom215/bovtag/internal/report"
	"github.com/tomtom215/bovtag/internal/store"
)

// writeBuildError maps a pipeline error to its HTTP response.
func writeBuildError(rw *ResponseWriter, r *http.Request, err error) {
	var malformed *report.MalformedEventError
	switch {
	case r.Context().Err() != nil:
		// Client went away; nothing useful can be written.
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Request canceled")
	case errors.Is(err, store.ErrStoreUnavailable):
		rw.StoreUnavailable(err)
	case errors.As(err, &malformed):
		logging.Ctx(r.Context()).Error().Err(err).Str("event_id", malformed.EventID).Msg("Malformed event in store")
		rw.ErrorWithDetails(http.StatusBadGateway, ErrCodeMalformedEvent, "The event store returned a malformed event",
			map[string]string{"event_id": malformed.EventID, "reason": malformed.Reason})
	default:
		logging.Ctx(r.Context()).Error().Err(err).Msg("Dashboard build failed")
		rw.InternalError("Failed to build dashboard")
	}
}
