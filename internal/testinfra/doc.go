// BovTag - Livestock Tag Detection Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bovtag

// Package testinfra runs a disposable MongoDB for the event store gateway tests.
//
// The gateway decodes loosely typed documents (string or numeric tags, BSON
// datetimes or strings for createdAt), so it is checked against a real server
// rather than a mock.
//
//	func TestGateway(t *testing.T) {
//	    mongo := testinfra.StartMongo(t)
//	    client, err := store.Connect(ctx, &config.MongoConfig{URI: mongo.URI, ...})
//	    // insert fixtures into the events and summary collections, then query
//	}
//
// Files are behind the integration build tag. Without Docker the tests skip.
package testinfra
