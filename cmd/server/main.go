// BovTag - Livestock Tag Detection Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bovtag

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/bovtag/internal/api"
	"github.com/tomtom215/bovtag/internal/config"
	"github.com/tomtom215/bovtag/internal/live"
	"github.com/tomtom215/bovtag/internal/logging"
	"github.com/tomtom215/bovtag/internal/report"
	"github.com/tomtom215/bovtag/internal/store"
	"github.com/tomtom215/bovtag/internal/supervisor"
	"github.com/tomtom215/bovtag/internal/supervisor/services"
)

func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("database", cfg.Mongo.Database).
		Str("collection", cfg.Mongo.EventsCollection).
		Str("tenant", cfg.Mongo.Tenant).
		Str("timezone", cfg.Reporting.Timezone).
		Str("timestamp_policy", cfg.Reporting.TimestampPolicy).
		Msg("Starting BovTag")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := store.Connect(ctx, &cfg.Mongo)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to connect to event store")
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(dctx); err != nil {
			logging.Error().Err(err).Msg("Error disconnecting event store")
		}
	}()
	logging.Info().Msg("Event store connected")

	gateway := store.NewBreakerGateway(store.NewMongoGateway(client, &cfg.Mongo), store.DefaultBreakerSettings())
	snapshots := store.NewCachedGateway(gateway, cfg.Mongo.CacheTTL)

	service, err := report.NewService(snapshots, &cfg.Reporting)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize reporting")
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout + 5*time.Second,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	var hub *live.Hub
	if cfg.Refresh.Enabled {
		hub = live.NewHub()
		tree.AddLiveService(hub)
		tree.AddLiveService(live.NewRefresher(service, hub, cfg.Refresh.Interval))
		logging.Info().Dur("interval", cfg.Refresh.Interval).Msg("Live refresh enabled")
	} else {
		logging.Info().Msg("Live refresh disabled")
	}

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}

	handler := api.NewHandler(service, gateway, hub, cfg)
	router := api.NewRouter(handler, api.ChiMiddlewareConfigFrom(cfg.Security))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree stopped with error")
	}

	if unstopped, err := tree.UnstoppedServiceReport(); err == nil && len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service did not stop in time")
		}
	}
	logging.Info().Msg("BovTag stopped")
}
