// BovTag - Livestock Tag Detection Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bovtag

package report

import (
	"errors"
	"fmt"
)

// ErrMalformedEvent is returned under the strict timestamp policy when an
// event has no usable creation time.
var ErrMalformedEvent = errors.New("malformed event")

// MalformedEventError identifies the event that failed strict normalization.
type MalformedEventError struct {
	EventID string
	Reason  string
}

func (e *MalformedEventError) Error() string {
	return fmt.Sprintf("malformed event %s: %s", e.EventID, e.Reason)
}

// Is makes errors.Is(err, ErrMalformedEvent) match.
func (e *MalformedEventError) Is(target error) bool {
	return target == ErrMalformedEvent
}
