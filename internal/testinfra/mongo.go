// BovTag - Livestock Tag Detection Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bovtag

//go:build integration

package testinfra

import (
	"context"
	"fmt"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

// DefaultMongoImage is the MongoDB image used by integration tests.
const DefaultMongoImage = "mongo:7"

// MongoContainer is a running single-node MongoDB. URI is a mongodb:// URI
// accepted by store.Connect; the server starts with no databases, so each
// test creates its events and summary collections by inserting into them.
type MongoContainer struct {
	*mongodb.MongoDBContainer
	URI string
}

// MongoOption configures the MongoDB container.
type MongoOption func(*mongoConfig)

type mongoConfig struct {
	image string
}

// WithMongoImage sets a custom MongoDB Docker image.
func WithMongoImage(image string) MongoOption {
	return func(c *mongoConfig) {
		c.image = image
	}
}

// NewMongoContainer creates and starts a MongoDB container.
func NewMongoContainer(ctx context.Context, opts ...MongoOption) (*MongoContainer, error) {
	cfg := &mongoConfig{image: DefaultMongoImage}
	for _, opt := range opts {
		opt(cfg)
	}

	container, err := mongodb.Run(ctx, cfg.image)
	if err != nil {
		return nil, fmt.Errorf("create mongodb container: %w", err)
	}

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get mongodb connection string: %w", err)
	}

	return &MongoContainer{MongoDBContainer: container, URI: uri}, nil
}

// StartMongo starts a MongoDB for t and terminates it when t finishes. The
// test is skipped when no container provider (Docker) is reachable.
func StartMongo(t *testing.T, opts ...MongoOption) *MongoContainer {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)

	container, err := NewMongoContainer(context.Background(), opts...)
	if err != nil {
		t.Fatalf("start mongodb: %v", err)
	}
	testcontainers.CleanupContainer(t, container.MongoDBContainer)
	return container
}
