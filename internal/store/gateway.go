// BovTag - Livestock Tag Detection Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bovtag

package store

import (
	"context"

	"github.com/tomtom215/bovtag/internal/models"
)

// Operation names used in errors, logs and metrics.
const (
	OpFetchEvents  = "fetch_events"
	OpFetchSummary = "fetch_summary"
	OpPing         = "ping"
)

// Gateway is read-only access to the event store.
type Gateway interface {
	// FetchEvents returns every event of the configured tenant.
	FetchEvents(ctx context.Context) ([]models.Event, error)

	// FetchTenantSummary returns the tenant's counter document, or nil, nil when none exists.
	FetchTenantSummary(ctx context.Context) (*models.TenantSummary, error)

	// Ping checks that the store is reachable.
	Ping(ctx context.Context) error
}
