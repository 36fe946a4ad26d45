// BovTag - Livestock Tag Detection Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bovtag

package api

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tomtom215/bovtag/internal/config"
	"github.com/tomtom215/bovtag/internal/middleware"
)

func TestRouter_NotFoundAndMethod(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, healthyGateway(), nil)

	expectError(t, env.get(t, "/api/v1/nope"), http.StatusNotFound, ErrCodeNotFound)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/dashboard", nil)
	rec := httptest.NewRecorder()
	env.server.ServeHTTP(rec, req)
	expectError(t, rec, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed)
}

func TestRouter_RequestIDAndSecurityHeaders(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, healthyGateway(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/kpi", nil)
	req.Header.Set(middleware.RequestIDHeader, "trace-123")
	rec := httptest.NewRecorder()
	env.server.ServeHTTP(rec, req)

	if got := rec.Header().Get(middleware.RequestIDHeader); got != "trace-123" {
		t.Errorf("X-Request-ID = %q, want trace-123", got)
	}
	resp := decodeEnvelope(t, rec)
	if resp.Meta == nil || resp.Meta.RequestID != "trace-123" {
		t.Errorf("meta = %+v, want request id trace-123", resp.Meta)
	}

	headers := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Cache-Control":          "no-store",
	}
	for k, want := range headers {
		if got := rec.Header().Get(k); got != want {
			t.Errorf("%s = %q, want %q", k, got, want)
		}
	}
	if rec.Header().Get("Strict-Transport-Security") != "" {
		t.Error("HSTS must not be sent over plain HTTP")
	}
}

func TestRouter_HSTSBehindTLSProxy(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, healthyGateway(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health/live", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	rec := httptest.NewRecorder()
	env.server.ServeHTTP(rec, req)

	if rec.Header().Get("Strict-Transport-Security") == "" {
		t.Error("expected HSTS header behind a TLS proxy")
	}
}

func TestRouter_GzipsDashboard(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, healthyGateway(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	env.server.ServeHTTP(rec, req)

	if rec.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("Content-Encoding = %q, want gzip", rec.Header().Get("Content-Encoding"))
	}
	zr, err := gzip.NewReader(rec.Body)
	if err != nil {
		t.Fatal(err)
	}
	body, err := io.ReadAll(zr)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(body), `"success":true`) {
		t.Errorf("unexpected body %s", body)
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, healthyGateway(), nil, func(cfg *config.Config) {
		cfg.Security.CORSOrigins = []string{"https://dash.example.com"}
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/dashboard", nil)
	req.Header.Set("Origin", "https://dash.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	env.server.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://dash.example.com" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestRouter_RateLimit(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, healthyGateway(), nil, func(cfg *config.Config) {
		cfg.Security.RateLimitDisabled = false
		cfg.Security.RateLimitReqs = 2
	})

	for i := 0; i < 2; i++ {
		if rec := env.get(t, "/api/v1/dashboard/kpi"); rec.Code != http.StatusOK {
			t.Fatalf("request %d: status %d", i, rec.Code)
		}
	}
	expectError(t, env.get(t, "/api/v1/dashboard/kpi"), http.StatusTooManyRequests, ErrCodeTooManyRequests)
}

func TestRouter_Metrics(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, healthyGateway(), nil)

	env.get(t, "/api/v1/health/live")
	rec := env.get(t, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "bovtag_") {
		t.Error("metrics output missing bovtag_ series")
	}
}
