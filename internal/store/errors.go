// BovTag - Livestock Tag Detection Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bovtag

package store

import (
	"errors"
	"fmt"
)

var (
	// ErrStoreUnavailable matches every error returned by a Gateway.
	ErrStoreUnavailable = errors.New("event store unavailable")

	// ErrShapeMismatch means a stored document does not have the expected field types.
	ErrShapeMismatch = errors.New("document shape mismatch")
)

// StoreError wraps a failed store operation.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrStoreUnavailable) match any StoreError.
func (e *StoreError) Is(target error) bool {
	return target == ErrStoreUnavailable
}

func newStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}

// shapeError reports a field with an unexpected BSON type.
func shapeError(field string, got fmt.Stringer) error {
	return fmt.Errorf("%w: field %s has type %s", ErrShapeMismatch, field, got)
}
