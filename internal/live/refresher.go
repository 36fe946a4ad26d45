// BovTag - Livestock Tag Detection Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bovtag

package live

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/bovtag/internal/logging"
	"github.com/tomtom215/bovtag/internal/metrics"
	"github.com/tomtom215/bovtag/internal/models"
	"github.com/tomtom215/bovtag/internal/report"
	"github.com/tomtom215/bovtag/internal/store"
)

// Refresh outcomes recorded in metrics.
const (
	OutcomeOK               = "ok"
	OutcomeEmpty            = "empty"
	OutcomeStoreUnavailable = "store_unavailable"
	OutcomeError            = "error"
	OutcomeIdle             = "idle"
)

// maxTick bounds how late a due refresh can start.
const maxTick = time.Second

// DashboardBuilder is the part of report.Service the refresher needs.
type DashboardBuilder interface {
	DefaultSelection(ctx context.Context) (models.Selection, error)
	Build(ctx context.Context, sel models.Selection) (*models.Dashboard, error)
}

// Broadcaster is the part of Hub the refresher needs.
type Broadcaster interface {
	Broadcast(msgType string, data interface{})
	ClientCount() int
}

// Refresher periodically rebuilds the default dashboard and pushes it to
// live clients. It implements suture.Service.
type Refresher struct {
	builder   DashboardBuilder
	hub       Broadcaster
	scheduler *Scheduler
	now       func() time.Time
}

// NewRefresher creates a refresher running every interval.
func NewRefresher(builder DashboardBuilder, hub Broadcaster, interval time.Duration) *Refresher {
	return &Refresher{
		builder:   builder,
		hub:       hub,
		scheduler: NewScheduler(interval),
		now:       time.Now,
	}
}

// Serve implements suture.Service.
func (r *Refresher) Serve(ctx context.Context) error {
	tick := r.scheduler.Interval
	if tick <= 0 || tick > maxTick {
		tick = maxTick
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	logging.Info().Dur("interval", r.scheduler.Interval).Msg("Live refresher started")
	for {
		now := r.now()
		if r.scheduler.Due(now) {
			r.scheduler.Advance(now)
			r.RefreshOnce(ctx)
		}

		select {
		case <-ctx.Done():
			logging.Info().Msg("Live refresher stopped")
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// String implements fmt.Stringer for supervisor logs.
func (r *Refresher) String() string {
	return "live-refresher"
}

// RefreshOnce rebuilds and broadcasts a single update, returning the outcome.
// Nothing is read from the store while no client is listening.
func (r *Refresher) RefreshOnce(ctx context.Context) string {
	outcome := r.refresh(logging.ContextWithNewCorrelationID(ctx))
	metrics.RecordRefresh(outcome)
	return outcome
}

func (r *Refresher) refresh(ctx context.Context) string {
	if r.hub.ClientCount() == 0 {
		return OutcomeIdle
	}
	logger := logging.Ctx(ctx)

	sel, err := r.builder.DefaultSelection(ctx)
	if err != nil {
		return r.fail(ctx, err)
	}
	dashboard, err := r.builder.Build(ctx, sel)
	if err != nil {
		return r.fail(ctx, err)
	}

	r.hub.Broadcast(MessageTypeDashboardUpdate, dashboard)
	logger.Debug().
		Str("state", string(dashboard.State)).
		Int("events", len(dashboard.Events)).
		Msg("Live dashboard pushed")
	if dashboard.State == models.DashboardStateEmpty {
		return OutcomeEmpty
	}
	return OutcomeOK
}

func (r *Refresher) fail(ctx context.Context, err error) string {
	logger := logging.Ctx(ctx)
	if errors.Is(ctx.Err(), context.Canceled) {
		return OutcomeError
	}
	if errors.Is(err, store.ErrStoreUnavailable) {
		logger.Warn().Err(err).Time("retry_at", r.scheduler.NextRun).Msg("Event store unavailable, keeping last dashboard")
		r.hub.Broadcast(MessageTypeStoreUnavailable, StoreUnavailableData{
			Message: "Event store unavailable",
			RetryAt: r.scheduler.NextRun.UTC(),
		})
		return OutcomeStoreUnavailable
	}

	code := "INTERNAL_ERROR"
	if errors.Is(err, report.ErrMalformedEvent) {
		code = "MALFORMED_EVENT"
	}
	logger.Error().Err(err).Msg("Live refresh failed")
	r.hub.Broadcast(MessageTypeRefreshError, RefreshErrorData{Code: code, Message: err.Error()})
	return OutcomeError
}
