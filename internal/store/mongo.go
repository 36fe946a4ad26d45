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

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/tomtom215/bovtag/internal/config"
	"github.com/tomtom215/bovtag/internal/logging"
	"github.com/tomtom215/bovtag/internal/metrics"
	"github.com/tomtom215/bovtag/internal/models"
)

// Connect opens a pooled client for cfg.URI and verifies it with a ping.
// The caller owns the client and must Disconnect it.
func Connect(ctx context.Context, cfg *config.MongoConfig) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ConnectTimeout).
		SetAppName("bovtag")

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, newStoreError("connect", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.PrimaryPreferred()); err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, newStoreError("connect", err)
	}
	return client, nil
}

// MongoGateway implements Gateway on a MongoDB database.
type MongoGateway struct {
	client       *mongo.Client
	events       *mongo.Collection
	summary      *mongo.Collection
	tenant       string
	queryTimeout time.Duration
}

// NewMongoGateway binds the collections named in cfg.
func NewMongoGateway(client *mongo.Client, cfg *config.MongoConfig) *MongoGateway {
	db := client.Database(cfg.Database)
	return &MongoGateway{
		client:       client,
		events:       db.Collection(cfg.EventsCollection),
		summary:      db.Collection(cfg.SummaryCollection),
		tenant:       cfg.Tenant,
		queryTimeout: cfg.QueryTimeout,
	}
}

// tenantFilter scopes both queries to the configured farm.
func (g *MongoGateway) tenantFilter() bson.D {
	if g.tenant == "" {
		return bson.D{}
	}
	return bson.D{{Key: "fazenda", Value: g.tenant}}
}

// FetchEvents reads every event of the tenant with the dashboard projection.
func (g *MongoGateway) FetchEvents(ctx context.Context) (events []models.Event, err error) {
	start := time.Now()
	defer func() { g.record(ctx, OpFetchEvents, start, err) }()

	ctx, cancel := context.WithTimeout(ctx, g.queryTimeout)
	defer cancel()

	cursor, err := g.events.Find(ctx, g.tenantFilter(), options.Find().SetProjection(eventProjection))
	if err != nil {
		return nil, newStoreError(OpFetchEvents, err)
	}
	defer func() {
		// The query context may already be done; closing still has to reach the server.
		if cerr := cursor.Close(context.WithoutCancel(ctx)); cerr != nil {
			logging.Debug().Err(cerr).Msg("Failed to close events cursor")
		}
	}()

	events = make([]models.Event, 0)
	for cursor.Next(ctx) {
		var doc eventDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, newStoreError(OpFetchEvents, fmt.Errorf("%w: %v", ErrShapeMismatch, err))
		}
		event, err := doc.toEvent()
		if err != nil {
			return nil, newStoreError(OpFetchEvents, err)
		}
		events = append(events, event)
	}
	if err := cursor.Err(); err != nil {
		return nil, newStoreError(OpFetchEvents, err)
	}
	return events, nil
}

// FetchTenantSummary reads the tenant's counter document.
func (g *MongoGateway) FetchTenantSummary(ctx context.Context) (summary *models.TenantSummary, err error) {
	start := time.Now()
	defer func() { g.record(ctx, OpFetchSummary, start, err) }()

	ctx, cancel := context.WithTimeout(ctx, g.queryTimeout)
	defer cancel()

	var doc summaryDocument
	err = g.summary.FindOne(ctx, g.tenantFilter()).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, newStoreError(OpFetchSummary, err)
	}

	summary, err = doc.toSummary()
	if err != nil {
		return nil, newStoreError(OpFetchSummary, err)
	}
	return summary, nil
}

// Ping checks connectivity to the primary or any secondary.
func (g *MongoGateway) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { g.record(ctx, OpPing, start, err) }()

	ctx, cancel := context.WithTimeout(ctx, g.queryTimeout)
	defer cancel()

	if err := g.client.Ping(ctx, readpref.PrimaryPreferred()); err != nil {
		return newStoreError(OpPing, err)
	}
	return nil
}

func (g *MongoGateway) record(ctx context.Context, op string, start time.Time, err error) {
	elapsed := time.Since(start)
	metrics.RecordStoreQuery(op, elapsed, err)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("operation", op).Dur("duration", elapsed).Msg("Event store query failed")
		return
	}
	logging.Ctx(ctx).Debug().Str("operation", op).Dur("duration", elapsed).Msg("Event store query completed")
}
