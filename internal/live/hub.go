// BovTag - Livestock Tag Detection Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bovtag

package live

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tomtom215/bovtag/internal/logging"
	"github.com/tomtom215/bovtag/internal/metrics"
)

// ShutdownReason identifies why the hub stopped.
type ShutdownReason string

const (
	ShutdownReasonContextCanceled ShutdownReason = "context_canceled"
	ShutdownReasonContextDeadline ShutdownReason = "context_deadline"
)

// Hub maintains the set of live clients and broadcasts messages to them.
// The most recent dashboard_update is replayed to clients as they join so
// a new browser does not wait a full interval for its first frame.
type Hub struct {
	clients    map[*Client]struct{}
	broadcast  chan Message
	Register   chan *Client
	Unregister chan *Client
	last       *Message
	mu         sync.RWMutex
	stopped    chan struct{}
	stopOnce   sync.Once
}

// NewHub creates an idle hub; call RunWithContext to start it.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		broadcast:  make(chan Message, 64),
		Register:   make(chan *Client, 16),
		Unregister: make(chan *Client, 16),
		stopped:    make(chan struct{}),
	}
}

// register hands c to the hub loop. It returns false once the hub has stopped.
func (h *Hub) register(c *Client) bool {
	select {
	case <-h.stopped:
		return false
	default:
	}
	select {
	case h.Register <- c:
		return true
	case <-h.stopped:
		return false
	}
}

// unregister hands c to the hub loop, or closes it directly once the hub
// has stopped.
func (h *Hub) unregister(c *Client) {
	select {
	case h.Unregister <- c:
	case <-h.stopped:
		c.close()
	}
}

// RunWithContext processes registrations and broadcasts until ctx is done.
// Lifecycle events are drained before broadcasts so a message never reaches
// a client that has already left.
func (h *Hub) RunWithContext(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			h.shutdown(ctx)
			return ctx.Err()
		default:
		}

		select {
		case c := <-h.Register:
			h.addClient(c)
			continue
		case c := <-h.Unregister:
			h.removeClient(c)
			continue
		default:
		}

		select {
		case <-ctx.Done():
			h.shutdown(ctx)
			return ctx.Err()
		case c := <-h.Register:
			h.addClient(c)
		case c := <-h.Unregister:
			h.removeClient(c)
		case msg := <-h.broadcast:
			h.broadcastToClients(msg)
		}
	}
}

// Serve implements suture.Service.
func (h *Hub) Serve(ctx context.Context) error {
	return h.RunWithContext(ctx)
}

// String implements fmt.Stringer for supervisor logs.
func (h *Hub) String() string {
	return "live-hub"
}

// Broadcast queues a message for every client. It never blocks; when the
// queue is full the message is dropped and logged.
func (h *Hub) Broadcast(msgType string, data interface{}) {
	msg := Message{Type: msgType, Data: data, Timestamp: time.Now().UTC()}
	select {
	case h.broadcast <- msg:
	default:
		logging.Warn().Str("type", msgType).Msg("Live broadcast queue full, dropping message")
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) addClient(c *Client) {
	// Register and Unregister are selected together, so a client can leave
	// before its registration is processed.
	if c.closed() {
		return
	}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	count := len(h.clients)
	last := h.last
	h.mu.Unlock()

	if last != nil {
		c.queue(*last)
	}
	metrics.WSConnections.Set(float64(count))
	logging.Debug().Uint64("client_id", c.id).Int("total_clients", count).Msg("Live client connected")
}

func (h *Hub) removeClient(c *Client) {
	h.mu.Lock()
	delete(h.clients, c)
	c.close()
	count := len(h.clients)
	h.mu.Unlock()

	metrics.WSConnections.Set(float64(count))
	logging.Debug().Uint64("client_id", c.id).Int("total_clients", count).Msg("Live client disconnected")
}

// broadcastToClients delivers in client ID order. Clients whose buffer is
// full are dropped.
func (h *Hub) broadcastToClients(msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if msg.Type == MessageTypeDashboardUpdate {
		m := msg
		h.last = &m
	}

	for _, c := range h.sortedClientsLocked() {
		if !c.queue(msg) {
			c.close()
			delete(h.clients, c)
		}
	}
	metrics.WSConnections.Set(float64(len(h.clients)))
	metrics.RecordBroadcast(msg.Type)
}

func (h *Hub) shutdown(ctx context.Context) {
	h.stopOnce.Do(func() { close(h.stopped) })

	h.mu.Lock()
	clients := h.sortedClientsLocked()
	for _, c := range clients {
		c.close()
		delete(h.clients, c)
	}
	h.mu.Unlock()
	metrics.WSConnections.Set(0)

	// Clients queued before stopped was closed never reached the loop.
drain:
	for {
		select {
		case c := <-h.Register:
			c.close()
		case c := <-h.Unregister:
			c.close()
		default:
			break drain
		}
	}

	logging.Info().
		Str("component", "live-hub").
		Str("reason", string(shutdownReason(ctx))).
		Int("clients_closed", len(clients)).
		Msg("Live hub stopped")
}

func (h *Hub) sortedClientsLocked() []*Client {
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	sort.Slice(clients, func(i, j int) bool { return clients[i].id < clients[j].id })
	return clients
}

func shutdownReason(ctx context.Context) ShutdownReason {
	if ctx.Err() == context.DeadlineExceeded {
		return ShutdownReasonContextDeadline
	}
	return ShutdownReasonContextCanceled
}
