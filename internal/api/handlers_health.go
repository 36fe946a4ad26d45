// BovTag - Livestock Tag Detection Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bovtag

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/bovtag/internal/models"
)

const readyTimeout = 3 * time.Second

// HealthLive reports that the process is up. It never touches the store.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady pings the event store and returns 503 while it is unreachable.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	status := models.HealthStatus{
		Status:  "ready",
		Version: Version,
		Uptime:  time.Since(h.startTime).Seconds(),
	}
	if h.store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		status.StoreConnected = h.store.Probe(ctx) == nil
		cancel()
		status.BreakerState = h.store.State()
	}

	if !status.StoreConnected {
		status.Status = "not_ready"
		rw.ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeStoreUnavailable, "Event store unreachable", status)
		return
	}
	rw.Success(status)
}
