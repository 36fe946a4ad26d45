// BovTag - Livestock Tag Detection Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bovtag

package live

import (
	"time"

	"github.com/goccy/go-json"
)

// Message types sent over the live socket.
const (
	MessageTypeDashboardUpdate  = "dashboard_update"
	MessageTypeStoreUnavailable = "store_unavailable"
	MessageTypeRefreshError     = "refresh_error"
	MessageTypePing             = "ping"
	MessageTypePong             = "pong"
)

// Message is the envelope for every frame sent to a client.
type Message struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

// StoreUnavailableData accompanies a store_unavailable message.
type StoreUnavailableData struct {
	Message string    `json:"message"`
	RetryAt time.Time `json:"retry_at"`
}

// RefreshErrorData accompanies a refresh_error message.
type RefreshErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MarshalMessage encodes a message for the wire.
func MarshalMessage(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}
