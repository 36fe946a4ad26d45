// BovTag - Livestock Tag Detection Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bovtag

package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/bovtag/internal/config"
	"github.com/tomtom215/bovtag/internal/live"
	"github.com/tomtom215/bovtag/internal/logging"
	"github.com/tomtom215/bovtag/internal/models"
	"github.com/tomtom215/bovtag/internal/report"
	"github.com/tomtom215/bovtag/internal/store"
)

//nolint:gochecknoinits // quiet logs for the whole package
func init() {
	logging.Init(logging.Config{Level: "error", Format: "console", Output: io.Discard})
}

const farm = "Fazenda Boa Vista"

type fakeGateway struct {
	events  []models.Event
	summary *models.TenantSummary
	err     error
	pingErr error
	fetches atomic.Int32
}

func (g *fakeGateway) FetchEvents(context.Context) ([]models.Event, error) {
	g.fetches.Add(1)
	if g.err != nil {
		return nil, g.err
	}
	return g.events, nil
}

func (g *fakeGateway) FetchTenantSummary(context.Context) (*models.TenantSummary, error) {
	if g.err != nil {
		return nil, g.err
	}
	return g.summary, nil
}

func (g *fakeGateway) Ping(context.Context) error {
	if g.pingErr != nil {
		return g.pingErr
	}
	return g.err
}

func ts(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &t
}

// sampleEvents spans two local dates in September and one in August.
// Manaus is UTC-4.
func sampleEvents() []models.Event {
	return []models.Event{
		{ID: "e1", GroupLabel: farm, SubjectID: "101", CreatedAt: ts("2024-09-14T13:00:00Z")},
		{ID: "e2", GroupLabel: farm, SubjectID: "102", CreatedAt: ts("2024-09-15T12:30:00Z")},
		{ID: "e3", GroupLabel: farm, SubjectID: "101", CreatedAt: ts("2024-09-15T15:00:00Z")},
		{ID: "e4", GroupLabel: farm, SubjectID: "103", CreatedAt: ts("2024-08-02T10:00:00Z")},
		{ID: "e5", GroupLabel: farm, SubjectID: "104"},
	}
}

type testEnv struct {
	gateway *fakeGateway
	handler *Handler
	server  http.Handler
}

type envOption func(*config.Config)

func strictPolicy(cfg *config.Config) {
	cfg.Reporting.TimestampPolicy = config.TimestampPolicyStrict
}

func newTestEnv(t *testing.T, gw *fakeGateway, hub *live.Hub, opts ...envOption) *testEnv {
	t.Helper()

	cfg := &config.Config{
		Reporting: config.ReportingConfig{
			Timezone:        "America/Manaus",
			TimestampPolicy: config.TimestampPolicyBestEffort,
		},
		Security: config.SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: true,
		},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	breaker := store.NewBreakerGateway(gw, store.DefaultBreakerSettings())
	svc, err := report.NewService(breaker, &cfg.Reporting)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	h := NewHandler(svc, breaker, hub, cfg)
	return &testEnv{
		gateway: gw,
		handler: h,
		server:  NewRouter(h, ChiMiddlewareConfigFrom(cfg.Security)).SetupChi(),
	}
}

func healthyGateway() *fakeGateway {
	return &fakeGateway{
		events:  sampleEvents(),
		summary: &models.TenantSummary{GroupLabel: farm, TotalCount: 40},
	}
}

func downGateway() *fakeGateway {
	return &fakeGateway{err: errors.New("server selection timeout")}
}

func (e *testEnv) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.server.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body %s)", err, rec.Body.String())
	}
	return env
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, into interface{}) {
	t.Helper()
	env := decodeEnvelope(t, rec)
	if !env.Success {
		t.Fatalf("expected success, got error %+v", env.Error)
	}
	if err := json.Unmarshal(env.Data, into); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

func expectError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) envelope {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, status, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	if env.Success || env.Error == nil {
		t.Fatalf("expected error envelope, got %s", rec.Body.String())
	}
	if env.Error.Code != code {
		t.Fatalf("error code = %q, want %q", env.Error.Code, code)
	}
	return env
}
