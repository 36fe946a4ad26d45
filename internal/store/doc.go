// BovTag - Livestock Tag Detection Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bovtag

/*
Package store reads tag detections and farm counters from MongoDB.

The Gateway interface is the only way the rest of the service touches the
store. MongoGateway issues two read-only queries:

	events:  find({fazenda: <tenant>}, {_id, fazenda, id_boi, createdAt})
	summary: findOne({fazenda: <tenant>}) decoded as {fazenda, total_count}

The tenant filter is omitted when no tenant is configured.

Documents are decoded into explicit projection structs. A document whose
fields have the wrong BSON type fails the whole read with ErrShapeMismatch;
a missing or unparsable createdAt is not a shape error and yields an Event
with a nil CreatedAt.

Every failure, including timeouts and breaker rejections, is a *StoreError and
matches errors.Is(err, ErrStoreUnavailable). BreakerGateway wraps any Gateway
with a sony/gobreaker circuit breaker so a dead cluster is not hammered on
every poll.
*/
package store
