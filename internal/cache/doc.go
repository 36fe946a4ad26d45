// BovTag - Livestock Tag Detection Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bovtag

/*
Package cache provides a thread-safe in-memory TTL cache.

The dashboard uses it to hold short-lived snapshots of the event store. A page
load issues several requests (KPI, hourly, daily, monthly, events) within a
second or two; with a snapshot TTL of a few seconds they share one read of the
events collection instead of one each.

# Expiration

Entries expire lazily. Get on an expired key deletes it and reports a miss.
Sweep removes every expired entry at once and is called from Set when the
cache has grown past its sweep threshold, so no background goroutine is needed.

# Usage

	c := cache.New(2 * time.Second)
	c.Set("events", events)
	if v, ok := c.Get("events"); ok {
	    events = v.([]models.Event)
	}

Only successful results should be stored. Errors are never cached so a store
outage surfaces on the next request.
*/
package cache
