// BovTag - Livestock Tag Detection Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bovtag

package store

import (
	"context"
	"slices"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/bovtag/internal/cache"
	"github.com/tomtom215/bovtag/internal/metrics"
	"github.com/tomtom215/bovtag/internal/models"
)

// summarySnapshot lets a missing summary (nil) be cached like any other result.
type summarySnapshot struct {
	summary *models.TenantSummary
}

// CachedGateway serves FetchEvents and FetchTenantSummary from a short-lived
// snapshot. Concurrent misses for the same operation share one store read.
// Errors are never cached and Ping always reaches the store.
type CachedGateway struct {
	next  Gateway
	cache *cache.Cache
	group singleflight.Group
}

// NewCachedGateway wraps next. A ttl of zero or less disables caching and
// every call goes straight to next.
func NewCachedGateway(next Gateway, ttl time.Duration) *CachedGateway {
	g := &CachedGateway{next: next}
	if ttl > 0 {
		g.cache = cache.New(ttl)
	}
	return g
}

// Invalidate drops both snapshots.
func (g *CachedGateway) Invalidate() {
	if g.cache != nil {
		g.cache.Clear()
	}
}

// FetchEvents implements Gateway. Callers get their own copy of the slice.
func (g *CachedGateway) FetchEvents(ctx context.Context) ([]models.Event, error) {
	if g.cache == nil {
		return g.next.FetchEvents(ctx)
	}
	v, err := g.load(ctx, OpFetchEvents, func(ctx context.Context) (any, error) {
		return g.next.FetchEvents(ctx)
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(v.([]models.Event)), nil
}

// FetchTenantSummary implements Gateway.
func (g *CachedGateway) FetchTenantSummary(ctx context.Context) (*models.TenantSummary, error) {
	if g.cache == nil {
		return g.next.FetchTenantSummary(ctx)
	}
	v, err := g.load(ctx, OpFetchSummary, func(ctx context.Context) (any, error) {
		s, err := g.next.FetchTenantSummary(ctx)
		if err != nil {
			return nil, err
		}
		return summarySnapshot{summary: s}, nil
	})
	if err != nil {
		return nil, err
	}
	snap := v.(summarySnapshot)
	if snap.summary == nil {
		return nil, nil
	}
	copied := *snap.summary
	return &copied, nil
}

// Ping implements Gateway.
func (g *CachedGateway) Ping(ctx context.Context) error {
	return g.next.Ping(ctx)
}

func (g *CachedGateway) load(ctx context.Context, key string, fetch func(context.Context) (any, error)) (any, error) {
	if v, ok := g.cache.Get(key); ok {
		metrics.RecordCacheLookup(key, true)
		return v, nil
	}
	metrics.RecordCacheLookup(key, false)

	ch := g.group.DoChan(key, func() (any, error) {
		// Detached so one canceled caller does not fail the others sharing the read.
		v, err := fetch(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		g.cache.Set(key, v)
		return v, nil
	})

	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
