// BovTag - Livestock Tag Detection Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bovtag

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/bovtag/config.yaml",
	"/etc/bovtag/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// legacyPrefix holds values from the dashboard's original short env names
// (URI, BANCO, COLECAO). They only fill a setting the primary names left empty.
const legacyPrefix = "legacy."

func defaultConfig() *Config {
	return &Config{
		Mongo: MongoConfig{
			SummaryCollection: "resumo",
			ConnectTimeout:    10 * time.Second,
			QueryTimeout:      15 * time.Second,
			CacheTTL:          2 * time.Second,
		},
		Reporting: ReportingConfig{
			Timezone:        "America/Manaus",
			TimestampPolicy: TimestampPolicyBestEffort,
		},
		Refresh: RefreshConfig{
			Enabled:  true,
			Interval: 10 * time.Second, // matches the original dashboard rerun interval
		},
		Server: ServerConfig{
			Port:            8501,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Security: SecurityConfig{
			CORSOrigins:     []string{},
			RateLimitReqs:   300,
			RateLimitWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadWithKoanf loads configuration with layered sources (ENV > File > Defaults)
// and validates the result. Validation failures are *ConfigurationError.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := applyLegacyValues(k); err != nil {
		return nil, err
	}
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// applyLegacyValues copies legacy.* values into their real paths when those are empty.
func applyLegacyValues(k *koanf.Koanf) error {
	for _, target := range []string{"mongo.uri", "mongo.database", "mongo.events_collection"} {
		legacy := k.String(legacyPrefix + target)
		if legacy == "" || k.String(target) != "" {
			continue
		}
		if err := k.Set(target, legacy); err != nil {
			return fmt.Errorf("failed to set %s: %w", target, err)
		}
	}
	k.Delete(strings.TrimSuffix(legacyPrefix, "."))
	return nil
}

var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields splits comma-separated env values for slice settings.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envTransformFunc maps environment variable names to koanf paths.
// Unmapped variables return "" and are skipped.
func envTransformFunc(key string) string {
	envMappings := map[string]string{
		"mongo_uri":                "mongo.uri",
		"mongo_database":           "mongo.database",
		"mongo_events_collection":  "mongo.events_collection",
		"mongo_summary_collection": "mongo.summary_collection",
		"mongo_tenant":             "mongo.tenant",
		"mongo_connect_timeout":    "mongo.connect_timeout",
		"mongo_query_timeout":      "mongo.query_timeout",
		"mongo_cache_ttl":          "mongo.cache_ttl",

		// Names used by the original dashboard deployment (.env)
		"uri":     legacyPrefix + "mongo.uri",
		"banco":   legacyPrefix + "mongo.database",
		"colecao": legacyPrefix + "mongo.events_collection",

		"report_timezone":         "reporting.timezone",
		"report_timestamp_policy": "reporting.timestamp_policy",

		"refresh_enabled":  "refresh.enabled",
		"refresh_interval": "refresh.interval",

		"http_port":             "server.port",
		"http_host":             "server.host",
		"http_timeout":          "server.timeout",
		"http_shutdown_timeout": "server.shutdown_timeout",

		"cors_origins":        "security.cors_origins",
		"rate_limit_requests": "security.rate_limit_reqs",
		"rate_limit_window":   "security.rate_limit_window",
		"disable_rate_limit":  "security.rate_limit_disabled",

		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",
	}

	return envMappings[strings.ToLower(key)]
}
