// BovTag - Livestock Tag Detection Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bovtag

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/tomtom215/bovtag/internal/config"
	"github.com/tomtom215/bovtag/internal/live"
)

func TestLive_DisabledWithoutHub(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, healthyGateway(), nil)

	rec := env.get(t, "/api/v1/live")
	expectError(t, rec, http.StatusServiceUnavailable, ErrCodeServiceUnavailable)
}

func TestLive_PushesBroadcasts(t *testing.T) {
	t.Parallel()

	hub := live.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = hub.RunWithContext(ctx) }()

	env := newTestEnv(t, healthyGateway(), hub)
	srv := httptest.NewServer(env.server)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/live"

	t.Run("missing origin rejected", func(t *testing.T) {
		_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
		if err == nil {
			t.Fatal("expected handshake failure")
		}
		if resp == nil || resp.StatusCode != http.StatusForbidden {
			t.Fatalf("response = %v, want 403", resp)
		}
	})

	t.Run("same origin receives updates", func(t *testing.T) {
		header := http.Header{"Origin": []string{srv.URL}}
		conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
		if err != nil {
			t.Fatalf("dial: %v", err)
		}
		defer conn.Close()

		deadline := time.Now().Add(2 * time.Second)
		for hub.ClientCount() == 0 && time.Now().Before(deadline) {
			time.Sleep(5 * time.Millisecond)
		}

		hub.Broadcast(live.MessageTypeStoreUnavailable, live.StoreUnavailableData{Message: "down"})

		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		var msg struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatal(err)
		}
		if msg.Type != live.MessageTypeStoreUnavailable {
			t.Errorf("type = %q", msg.Type)
		}
	})
}

func TestCheckWebSocketOrigin(t *testing.T) {
	t.Parallel()

	h := &Handler{config: &config.Config{Security: config.SecurityConfig{
		CORSOrigins: []string{"https://dash.example.com"},
	}}}

	tests := []struct {
		origin string
		want   bool
	}{
		{"", false},
		{"http://bovtag.local:8501", true},
		{"https://dash.example.com", true},
		{"https://evil.example.com", false},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "http://bovtag.local:8501/api/v1/live", nil)
		if tt.origin != "" {
			r.Header.Set("Origin", tt.origin)
		}
		if got := h.checkWebSocketOrigin(r); got != tt.want {
			t.Errorf("origin %q: got %v, want %v", tt.origin, got, tt.want)
		}
	}
}
