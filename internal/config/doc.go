// Eatsential - Health-Aware Meal Recommendation Engine
// Copyright 2026 Taylor Brown (TaylorBrown96)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TaylorBrown96/CSC510-proj3

/*
Package config provides centralized configuration management for Eatsential.

This package handles loading, validation, and parsing of configuration for
all application components. It ensures consistent configuration across the
recommendation services and provides sensible defaults for optional settings.

# Configuration Sources

Configuration is loaded via koanf in three layers, later layers overriding
earlier ones:

 1. Struct defaults (always present)
 2. YAML config file (CONFIG_PATH or a well-known location)
 3. Environment variables (highest precedence)

# Configuration Structure

The package organizes configuration into logical groups:

  - ServerConfig: HTTP server settings (host, port, timeouts)
  - DatabaseConfig: DuckDB catalog connection and tuning
  - FeedbackConfig: BadgerDB feedback store settings
  - LLMConfig: Generative provider, rate limiting, circuit breaker
  - RecommendConfig: Recommendation policy (limits, weights, boosts)
  - APIConfig: Pagination, CORS, and rate limiting
  - LoggingConfig: Log level and output format

# Environment Variables

HTTP Server (ServerConfig):
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_PORT: Listen port (default: 8000)
  - HTTP_TIMEOUT: Read/write timeout (default: 30s)
  - ENVIRONMENT: development, staging, or production

Catalog Database (DatabaseConfig):
  - DUCKDB_PATH: Database file path (default: /data/eatsential.duckdb)
  - DUCKDB_MAX_MEMORY: Memory limit (default: 1GB)
  - DUCKDB_THREADS: Thread count (default: 0 = all cores)
  - SEED_DEMO_DATA: Load demo catalog rows at startup (default: false)

Feedback Store (FeedbackConfig):
  - FEEDBACK_PATH: BadgerDB directory (default: /data/feedback)
  - FEEDBACK_IN_MEMORY: Run Badger without disk (default: false)
  - FEEDBACK_GC_INTERVAL: Value-log GC interval (default: 10m)
  - FEEDBACK_GC_DISCARD_RATIO: GC discard ratio (default: 0.5)

Generative Provider (LLMConfig):
  - LLM_PROVIDER: openai or mock (default: openai)
  - LLM_API_KEY: Provider API key (OPENAI_API_KEY also accepted)
  - LLM_BASE_URL: OpenAI-compatible base URL (optional)
  - LLM_MODEL: Model name (default: gpt-4o-mini)
  - LLM_TIMEOUT: Per-request timeout (default: 5s)
  - LLM_REQUESTS_PER_SECOND / LLM_BURST: Client-side rate limit
  - LLM_BREAKER_*: Circuit breaker tuning

Recommendation Policy (RecommendConfig):
  - RECOMMEND_MODE: llm or baseline (default: llm)
  - RECOMMEND_DEFAULT_LIMIT / RECOMMEND_MAX_LIMIT: Result sizing
  - RECOMMEND_MAX_PER_RESTAURANT: Diversity cap (default: 2)
  - RECOMMEND_LIKE_BOOST: Feedback boost factor (default: 1.2)
  - RECOMMEND_DIET_WEIGHT / RECOMMEND_CUISINE_WEIGHT / RECOMMEND_PRICE_WEIGHT

API (APIConfig):
  - CORS_ORIGINS: Comma-separated allowed origins (default: *)
  - RATE_LIMIT_REQUESTS / RATE_LIMIT_WINDOW: Per-IP rate limiting
  - DISABLE_RATE_LIMIT: Turn off rate limiting (default: false)

Logging (LoggingConfig):
  - LOG_LEVEL: trace through disabled (default: info)
  - LOG_FORMAT: json or console (default: json)
  - LOG_CALLER: Include caller file:line (default: false)

# Usage Example

Basic configuration loading:

	import "github.com/TaylorBrown96/CSC510-proj3/internal/config"

	// Load configuration (defaults -> YAML -> environment)
	cfg, err := config.Load()
	if err != nil {
	    log.Fatal().Err(err).Msg("Failed to load config")
	}

	// Access configuration values
	fmt.Printf("Starting server on %s\n", cfg.Server.Addr())
	fmt.Printf("Catalog: %s\n", cfg.Database.Path)
	fmt.Printf("Provider: %s\n", cfg.LLM.EffectiveProvider())

Testing with custom configuration:

	// Override environment variables for testing
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("RECOMMEND_MODE", "baseline")

	cfg, err := config.Load()
	// Use cfg for testing

# Validation

Load() validates the assembled configuration before returning it:

  - Numeric ranges: HTTP_PORT (1-65535), RECOMMEND_MAX_LIMIT (1-100)
  - Duration ranges: LLM_TIMEOUT (500ms-2m), FEEDBACK_GC_INTERVAL >= 1m
  - Enumerations: RECOMMEND_MODE, LLM_PROVIDER, ENVIRONMENT, LOG_FORMAT
  - Weights: each scoring weight in [0,1], at least one positive
  - URL format: LLM_BASE_URL must be a valid HTTP(S) URL

Validation errors name the offending environment variable so operators can
fix deployments without reading source.

# Defaults

A missing LLM_API_KEY is deliberately not a validation error. The service
degrades to the mock provider (see LLMConfig.EffectiveProvider) so local
development and CI work without credentials, and production misconfiguration
shows up as fallback metrics rather than a crash loop.

# Thread Safety

The Config struct is immutable after Load() returns, making it safe for
concurrent access from multiple goroutines without synchronization.

# See Also

  - config.example.yaml: Complete configuration template
  - README.md: User-facing configuration documentation
*/
package config
