// BovTag - Livestock Tag Detection Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bovtag

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/bovtag/internal/logging"
	"github.com/tomtom215/bovtag/internal/metrics"
	"github.com/tomtom215/bovtag/internal/models"
)

// BreakerSettings configures BreakerGateway.
type BreakerSettings struct {
	Name string

	// MinRequests is the number of requests in a window before the failure ratio is considered.
	MinRequests uint32

	// FailureRatio at or above which the circuit opens.
	FailureRatio float64

	// Interval resets the counts while closed.
	Interval time.Duration

	// Timeout is how long the circuit stays open before probing again.
	Timeout time.Duration
}

// DefaultBreakerSettings suits a dashboard polling every few seconds.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		Name:         "event-store",
		MinRequests:  5,
		FailureRatio: 0.6,
		Interval:     time.Minute,
		Timeout:      30 * time.Second,
	}
}

// BreakerGateway wraps a Gateway with a circuit breaker.
// While the circuit is open calls fail fast with a StoreError.
type BreakerGateway struct {
	next Gateway
	cb   *gobreaker.CircuitBreaker[any]
	name string
}

// NewBreakerGateway wraps next.
func NewBreakerGateway(next Gateway, s BreakerSettings) *BreakerGateway {
	name := s.Name
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        name,
		MaxRequests: 3, // probes allowed while half-open
		Interval:    s.Interval,
		Timeout:     s.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < s.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= s.FailureRatio
			if shouldTrip {
				logging.Warn().Str("breaker", name).Uint32("failures", counts.TotalFailures).Float64("failure_rate", failureRatio*100).Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := stateToString(from), stateToString(to)
			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},

		// A canceled request says nothing about store health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})

	return &BreakerGateway{next: next, cb: cb, name: name}
}

// State returns the current breaker state as "closed", "half-open" or "open".
func (b *BreakerGateway) State() string {
	return stateToString(b.cb.State())
}

func (b *BreakerGateway) execute(op string, fn func() (any, error)) (any, error) {
	result, err := b.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			logging.Warn().Err(err).Str("operation", op).Msg("[CIRCUIT BREAKER] Request rejected")
			return nil, newStoreError(op, err)
		}
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(float64(b.cb.Counts().ConsecutiveFailures))
		if !errors.Is(err, ErrStoreUnavailable) {
			err = newStoreError(op, err)
		}
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(0)
	return result, nil
}

// FetchEvents implements Gateway.
func (b *BreakerGateway) FetchEvents(ctx context.Context) ([]models.Event, error) {
	result, err := b.execute(OpFetchEvents, func() (any, error) {
		return b.next.FetchEvents(ctx)
	})
	if err != nil {
		return nil, err
	}
	events, ok := result.([]models.Event)
	if !ok {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return events, nil
}

// FetchTenantSummary implements Gateway.
func (b *BreakerGateway) FetchTenantSummary(ctx context.Context) (*models.TenantSummary, error) {
	return castResult[models.TenantSummary](b.execute(OpFetchSummary, func() (any, error) {
		return b.next.FetchTenantSummary(ctx)
	}))
}

// Ping implements Gateway.
func (b *BreakerGateway) Ping(ctx context.Context) error {
	_, err := b.execute(OpPing, func() (any, error) {
		return nil, b.next.Ping(ctx)
	})
	return err
}

// Probe pings the wrapped gateway without going through the circuit, so
// health checks neither count toward tripping it nor get rejected while it
// is open.
func (b *BreakerGateway) Probe(ctx context.Context) error {
	err := b.next.Ping(ctx)
	if err != nil && !errors.Is(err, ErrStoreUnavailable) {
		err = newStoreError(OpPing, err)
	}
	return err
}

// castResult type-asserts a breaker result. A nil pointer result is passed through.
func castResult[T any](result any, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	typed, ok := result.(*T)
	if !ok {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
