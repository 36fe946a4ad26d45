// BovTag - Livestock Tag Detection Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bovtag

package models

import "time"

// Event is a single tag detection: an animal (subject) seen at a farm (group).
//
// ID is the store-assigned identifier (ObjectID hex). SubjectID repeats across
// events for the same animal. CreatedAt is stored in UTC and is nil when the
// source document had no usable timestamp.
type Event struct {
	ID         string     `json:"id"`
	GroupLabel string     `json:"group_label"`
	SubjectID  string     `json:"subject_id"`
	CreatedAt  *time.Time `json:"created_at"`
}

// HasTimestamp reports whether the event carries a creation instant.
func (e Event) HasTimestamp() bool {
	return e.CreatedAt != nil
}

// TenantSummary is the pre-aggregated counter kept per farm.
// It is maintained outside this service and may lag the event collection.
type TenantSummary struct {
	GroupLabel string `json:"group_label"`
	TotalCount int64  `json:"total_count"`
}

// NormalizedEvent is an Event with its creation instant converted to the
// reporting timezone and broken down into the fields the filters and buckets use.
type NormalizedEvent struct {
	Event
	LocalTime  time.Time `json:"local_time"`
	LocalDate  Date      `json:"local_date"`
	LocalHour  int       `json:"local_hour"` // 0-23
	LocalMonth YearMonth `json:"local_month"`
}
