// BovTag - Livestock Tag Detection Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bovtag

package config

import (
	"net/url"
	"strings"
	"time"
)

// Validate checks that required configuration is present and valid.
// Every failure is a *ConfigurationError.
func (c *Config) Validate() error {
	if err := c.validateMongo(); err != nil {
		return err
	}
	if err := c.validateReporting(); err != nil {
		return err
	}
	if err := c.validateRefresh(); err != nil {
		return err
	}
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateMongo() error {
	if c.Mongo.URI == "" {
		return &ConfigurationError{Key: "mongo.uri", EnvVar: "MONGO_URI", Reason: "is required"}
	}
	u, err := url.Parse(c.Mongo.URI)
	if err != nil || (u.Scheme != "mongodb" && u.Scheme != "mongodb+srv") {
		return &ConfigurationError{Key: "mongo.uri", EnvVar: "MONGO_URI", Reason: "must be a mongodb:// or mongodb+srv:// URI"}
	}
	if c.Mongo.Database == "" {
		return &ConfigurationError{Key: "mongo.database", EnvVar: "MONGO_DATABASE", Reason: "is required"}
	}
	if c.Mongo.EventsCollection == "" {
		return &ConfigurationError{Key: "mongo.events_collection", EnvVar: "MONGO_EVENTS_COLLECTION", Reason: "is required"}
	}
	if c.Mongo.SummaryCollection == "" {
		return &ConfigurationError{Key: "mongo.summary_collection", EnvVar: "MONGO_SUMMARY_COLLECTION", Reason: "must not be empty"}
	}
	if c.Mongo.ConnectTimeout <= 0 {
		return &ConfigurationError{Key: "mongo.connect_timeout", EnvVar: "MONGO_CONNECT_TIMEOUT", Reason: "must be positive"}
	}
	if c.Mongo.QueryTimeout <= 0 {
		return &ConfigurationError{Key: "mongo.query_timeout", EnvVar: "MONGO_QUERY_TIMEOUT", Reason: "must be positive"}
	}
	if c.Mongo.CacheTTL < 0 {
		return &ConfigurationError{Key: "mongo.cache_ttl", EnvVar: "MONGO_CACHE_TTL", Reason: "must not be negative"}
	}
	return nil
}

func (c *Config) validateReporting() error {
	if _, err := c.Reporting.Location(); err != nil {
		return &ConfigurationError{Key: "reporting.timezone", EnvVar: "REPORT_TIMEZONE", Reason: err.Error()}
	}
	switch c.Reporting.TimestampPolicy {
	case TimestampPolicyBestEffort, TimestampPolicyStrict:
		return nil
	default:
		return &ConfigurationError{
			Key:    "reporting.timestamp_policy",
			EnvVar: "REPORT_TIMESTAMP_POLICY",
			Reason: "must be best_effort or strict",
		}
	}
}

func (c *Config) validateRefresh() error {
	if c.Refresh.Enabled && c.Refresh.Interval < time.Second {
		return &ConfigurationError{Key: "refresh.interval", EnvVar: "REFRESH_INTERVAL", Reason: "must be at least 1s"}
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return &ConfigurationError{Key: "server.port", EnvVar: "HTTP_PORT", Reason: "must be between 1 and 65535"}
	}
	if c.Server.Timeout <= 0 {
		return &ConfigurationError{Key: "server.timeout", EnvVar: "HTTP_TIMEOUT", Reason: "must be positive"}
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return &ConfigurationError{Key: "security.rate_limit_reqs", EnvVar: "RATE_LIMIT_REQUESTS", Reason: "must be positive"}
	}
	if c.Security.RateLimitWindow <= 0 {
		return &ConfigurationError{Key: "security.rate_limit_window", EnvVar: "RATE_LIMIT_WINDOW", Reason: "must be positive"}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error":
	default:
		return &ConfigurationError{Key: "logging.level", EnvVar: "LOG_LEVEL", Reason: "must be trace, debug, info, warn or error"}
	}
	switch c.Logging.Format {
	case "json", "console":
		return nil
	default:
		return &ConfigurationError{Key: "logging.format", EnvVar: "LOG_FORMAT", Reason: "must be json or console"}
	}
}
