// BovTag - Livestock Tag Detection Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bovtag

package live

import "time"

// Scheduler decides when the next refresh may run. It is not safe for
// concurrent use; the refresher goroutine owns it.
type Scheduler struct {
	Interval time.Duration
	NextRun  time.Time
}

// NewScheduler returns a scheduler that is due immediately.
func NewScheduler(interval time.Duration) *Scheduler {
	return &Scheduler{Interval: interval}
}

// Due reports whether a refresh may run at now.
func (s *Scheduler) Due(now time.Time) bool {
	return s.NextRun.IsZero() || !now.Before(s.NextRun)
}

// Advance records a run at now and schedules the next one.
func (s *Scheduler) Advance(now time.Time) {
	s.NextRun = now.Add(s.Interval)
}
