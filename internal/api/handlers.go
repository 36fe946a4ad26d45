// BovTag - Livestock Tag Detection Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bovtag

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/tomtom215/bovtag/internal/config"
	"github.com/tomtom215/bovtag/internal/live"
	"github.com/tomtom215/bovtag/internal/models"
	"github.com/tomtom215/bovtag/internal/report"
	"github.com/tomtom215/bovtag/internal/validation"
)

// Version is reported by the health endpoints; set at build time with
// -ldflags "-X github.com/tomtom215/bovtag/internal/api.Version=...".
var Version = "dev"

// DashboardService builds dashboards. Satisfied by *report.Service.
type DashboardService interface {
	Build(ctx context.Context, sel models.Selection) (*models.Dashboard, error)
	Options(ctx context.Context) (*models.FilterOptions, error)
	Location() *time.Location
}

// StoreProbe checks the event store. Satisfied by *store.BreakerGateway,
// whose Probe bypasses the circuit; State is reported in health responses.
type StoreProbe interface {
	Probe(ctx context.Context) error
	State() string
}

// Handler serves the dashboard API.
type Handler struct {
	service   DashboardService
	store     StoreProbe
	hub       *live.Hub
	config    *config.Config
	startTime time.Time
}

// NewHandler creates a handler. hub may be nil when live refresh is off.
func NewHandler(service DashboardService, store StoreProbe, hub *live.Hub, cfg *config.Config) *Handler {
	return &Handler{
		service:   service,
		store:     store,
		hub:       hub,
		config:    cfg,
		startTime: time.Now(),
	}
}

// selection reads and validates the filter parameters. Without any
// parameter the default selection (latest date, its month, every subject)
// is used. It writes the error response itself and returns false on failure.
func (h *Handler) selection(rw *ResponseWriter, r *http.Request) (models.Selection, bool) {
	values, err := url.ParseQuery(r.URL.RawQuery)
	if err != nil {
		rw.BadRequest("Malformed query string")
		return models.Selection{}, false
	}
	for _, key := range validation.FilterParams {
		if len(values[key]) > 1 {
			rw.BadRequest(fmt.Sprintf("Filter parameter %q given more than once", key))
			return models.Selection{}, false
		}
	}

	q := validation.DashboardQueryFrom(values)
	if verr := validation.ValidateStruct(q); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return models.Selection{}, false
	}
	if !q.IsEmpty() {
		return q.Selection(), true
	}

	opts, err := h.service.Options(r.Context())
	if err != nil {
		writeBuildError(rw, r, err)
		return models.Selection{}, false
	}
	return report.DefaultSelectionFrom(opts), true
}

// build resolves the selection and runs the pipeline.
func (h *Handler) build(rw *ResponseWriter, r *http.Request) (*models.Dashboard, bool) {
	sel, ok := h.selection(rw, r)
	if !ok {
		return nil, false
	}
	d, err := h.service.Build(r.Context(), sel)
	if err != nil {
		writeBuildError(rw, r, err)
		return nil, false
	}
	return d, true
}
