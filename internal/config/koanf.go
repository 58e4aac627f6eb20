// Eatsential - Health-Aware Meal Recommendation Engine
// Copyright 2026 Taylor Brown (TaylorBrown96)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TaylorBrown96/CSC510-proj3

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
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/eatsential/config.yaml",
	"/etc/eatsential/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8000,
			Host:        "0.0.0.0",
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		Database: DatabaseConfig{
			Path:                   "/data/eatsential.duckdb",
			MaxMemory:              "1GB",
			Threads:                0,    // 0 = use runtime.NumCPU()
			PreserveInsertionOrder: true, // DuckDB default
			SeedDemoData:           false,
		},
		Feedback: FeedbackConfig{
			Path:           "/data/feedback",
			InMemory:       false,
			GCInterval:     10 * time.Minute,
			GCDiscardRatio: 0.5,
		},
		LLM: LLMConfig{
			Provider:          ProviderOpenAI, // Falls back to mock when no API key is set
			APIKey:            "",
			BaseURL:           "",
			Model:             "gpt-4o-mini",
			MaxTokens:         1024,
			Temperature:       0.7,
			Timeout:           5 * time.Second,
			RequestsPerSecond: 5,
			Burst:             10,

			BreakerMaxRequests: 3,
			BreakerInterval:    60 * time.Second,
			BreakerTimeout:     30 * time.Second,
			BreakerFailures:    5,
		},
		Recommend: RecommendConfig{
			Mode:             "llm",
			DefaultLimit:     10,
			MaxLimit:         50,
			MaxPerRestaurant: 2,
			LikeBoost:        1.2,
			DietWeight:       0.5,
			CuisineWeight:    0.3,
			PriceWeight:      0.2,
			MaxCandidates:    200,
			SnapshotCacheTTL: 5 * time.Minute,
		},
		API: APIConfig{
			DefaultPageSize:   20,
			MaxPageSize:       100,
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   1 * time.Minute,
			RateLimitDisabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
//
// This function is the preferred way to load configuration and provides:
//   - Type-safe configuration unmarshaling
//   - Clear precedence: ENV > File > Defaults
//   - Support for nested configuration via koanf struct tags
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// Transform environment variable names to koanf paths:
	// DUCKDB_PATH -> database.path
	// LLM_API_KEY -> llm.api_key
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Post-process slice fields from comma-separated strings
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	// Unmarshal into Config struct
	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	// Validate the configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	// Check environment variable first
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	// Search default paths
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"api.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// This is necessary because env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// If it's already a slice (from YAML file), skip
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		// If it's a string, split by comma
		if strVal, ok := val.(string); ok {
			if strVal == "" {
				continue
			}
			parts := strings.Split(strVal, ",")
			trimmed := make([]string, 0, len(parts))
			for _, p := range parts {
				p = strings.TrimSpace(p)
				if p != "" {
					trimmed = append(trimmed, p)
				}
			}
			if len(trimmed) > 0 {
				if err := k.Set(path, trimmed); err != nil {
					return fmt.Errorf("failed to set %s: %w", path, err)
				}
			}
		}
	}
	return nil
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - DUCKDB_PATH -> database.path
//   - LLM_API_KEY -> llm.api_key
//   - RECOMMEND_LIKE_BOOST -> recommend.like_boost
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	// Map environment variable names to config sections
	envMappings := map[string]string{
		// Server mappings
		"http_port":    "server.port",
		"http_host":    "server.host",
		"http_timeout": "server.timeout",
		"environment":  "server.environment",

		// Database mappings
		"duckdb_path":                     "database.path",
		"duckdb_max_memory":               "database.max_memory",
		"duckdb_threads":                  "database.threads",
		"duckdb_preserve_insertion_order": "database.preserve_insertion_order",
		"seed_demo_data":                  "database.seed_demo_data",

		// Feedback store mappings
		"feedback_path":             "feedback.path",
		"feedback_in_memory":        "feedback.in_memory",
		"feedback_gc_interval":      "feedback.gc_interval",
		"feedback_gc_discard_ratio": "feedback.gc_discard_ratio",

		// LLM mappings (OPENAI_API_KEY kept for drop-in compatibility)
		"llm_provider":             "llm.provider",
		"llm_api_key":              "llm.api_key",
		"openai_api_key":           "llm.api_key",
		"llm_base_url":             "llm.base_url",
		"llm_model":                "llm.model",
		"llm_max_tokens":           "llm.max_tokens",
		"llm_temperature":          "llm.temperature",
		"llm_timeout":              "llm.timeout",
		"llm_requests_per_second":  "llm.requests_per_second",
		"llm_burst":                "llm.burst",
		"llm_breaker_max_requests": "llm.breaker_max_requests",
		"llm_breaker_interval":     "llm.breaker_interval",
		"llm_breaker_timeout":      "llm.breaker_timeout",
		"llm_breaker_failures":     "llm.breaker_failures",

		// Recommendation policy mappings
		"recommend_mode":               "recommend.mode",
		"recommend_default_limit":      "recommend.default_limit",
		"recommend_max_limit":          "recommend.max_limit",
		"recommend_max_per_restaurant": "recommend.max_per_restaurant",
		"recommend_like_boost":         "recommend.like_boost",
		"recommend_diet_weight":        "recommend.diet_weight",
		"recommend_cuisine_weight":     "recommend.cuisine_weight",
		"recommend_price_weight":       "recommend.price_weight",
		"recommend_max_candidates":     "recommend.max_candidates",
		"recommend_snapshot_cache_ttl": "recommend.snapshot_cache_ttl",

		// API mappings
		"api_default_page_size": "api.default_page_size",
		"api_max_page_size":     "api.max_page_size",
		"cors_origins":          "api.cors_origins",
		"rate_limit_requests":   "api.rate_limit_reqs",
		"rate_limit_window":     "api.rate_limit_window",
		"disable_rate_limit":    "api.rate_limit_disabled",

		// Logging mappings
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	// For unmapped keys, return empty string to skip them
	// This prevents random environment variables from polluting config
	return ""
}

// WatchConfigFile sets up a file watcher for hot-reload capability.
// Note: The caller is responsible for mutex protection when accessing
// configuration during reloads.
//
// Example usage:
//
//	err := WatchConfigFile(configPath, func() {
//	    newCfg, err := LoadWithKoanf()
//	    if err != nil {
//	        logging.Err(err).Msg("Config reload failed")
//	        return
//	    }
//	    // swap under lock
//	})
func WatchConfigFile(path string, callback func()) error {
	provider := file.Provider(path)

	return provider.Watch(func(event interface{}, err error) {
		if err != nil {
			return
		}
		callback()
	})
}
