// BovTag - Livestock Tag Detection Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bovtag

// Package config loads the dashboard service configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: built-in values from defaultConfig()
//  2. Config File: optional YAML file (config.yaml, or CONFIG_PATH)
//  3. Environment Variables: override any setting
//
// The store settings have no defaults. A missing Mongo URI, database or events
// collection is a ConfigurationError at startup, never a runtime error.
package config

import (
	"errors"
	"fmt"
	"time"
	_ "time/tzdata" // reporting zones resolve on hosts without a zoneinfo database
)

// Config holds all application configuration.
//
// Config is immutable after LoadWithKoanf() and safe for concurrent reads.
type Config struct {
	Mongo     MongoConfig     `koanf:"mongo"`
	Reporting ReportingConfig `koanf:"reporting"`
	Refresh   RefreshConfig   `koanf:"refresh"`
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// MongoConfig holds the event store connection settings.
type MongoConfig struct {
	URI               string        `koanf:"uri"`
	Database          string        `koanf:"database"`
	EventsCollection  string        `koanf:"events_collection"`
	SummaryCollection string        `koanf:"summary_collection"`
	Tenant            string        `koanf:"tenant"` // Farm label; empty reads every farm in the collection
	ConnectTimeout    time.Duration `koanf:"connect_timeout"`
	QueryTimeout      time.Duration `koanf:"query_timeout"`
	CacheTTL          time.Duration `koanf:"cache_ttl"` // 0 disables the snapshot cache
}

// Timestamp policies for events whose createdAt is missing or unparsable.
const (
	TimestampPolicyBestEffort = "best_effort"
	TimestampPolicyStrict     = "strict"
)

// ReportingConfig controls how events are bucketed.
type ReportingConfig struct {
	// Timezone is an IANA zone name; stored UTC instants are converted into it.
	Timezone string `koanf:"timezone"`

	// TimestampPolicy is best_effort (drop bad events) or strict (fail the request).
	TimestampPolicy string `koanf:"timestamp_policy"`
}

// Location resolves Timezone. Validate() guarantees it succeeds on a loaded config.
func (r ReportingConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown reporting timezone %q: %w", r.Timezone, err)
	}
	return loc, nil
}

// RefreshConfig controls the live dashboard push.
type RefreshConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Interval time.Duration `koanf:"interval"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns host:port for http.Server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging settings passed to logging.Init.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json (production) or console (development).
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// ErrConfiguration is matched by every ConfigurationError.
var ErrConfiguration = errors.New("configuration error")

// ConfigurationError reports a missing or invalid setting. It is fatal at startup.
type ConfigurationError struct {
	Key    string // koanf path, e.g. "mongo.uri"
	EnvVar string // preferred environment variable
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.EnvVar != "" {
		return fmt.Sprintf("%s (%s): %s", e.Key, e.EnvVar, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Key, e.Reason)
}

// Is makes errors.Is(err, ErrConfiguration) true.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}
