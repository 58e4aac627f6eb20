// Eatsential - Health-Aware Meal Recommendation Engine
// Copyright 2026 Taylor Brown (TaylorBrown96)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TaylorBrown96/CSC510-proj3

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration loaded from environment variables
// and an optional config file.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all settings
//  2. Config File: Optional YAML config file (config.yaml) for persistent settings
//  3. Environment Variables: Override any setting
//
// Configuration Categories:
//
//  1. Infrastructure:
//     - Database: DuckDB catalog configuration (path, memory, demo seeding)
//     - Feedback: BadgerDB feedback store (path, value-log GC)
//     - Server: HTTP server configuration (port, host, timeout)
//
//  2. Recommendation:
//     - LLM: Generative candidate provider (OpenAI-compatible or mock)
//     - Recommend: Scoring weights, diversity caps, and result limits
//
//  3. API & Observability:
//     - API: Pagination, CORS, and rate limiting
//     - Logging: Log levels and output formats
//
// Example - Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Feedback  FeedbackConfig  `koanf:"feedback"`
	LLM       LLMConfig       `koanf:"llm"`
	Recommend RecommendConfig `koanf:"recommend"`
	API       APIConfig       `koanf:"api"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
//
// Environment Variables:
//   - HTTP_PORT: Listen port (default: 8000)
//   - HTTP_HOST: Bind address (default: 0.0.0.0)
//   - HTTP_TIMEOUT: Handler timeout (default: 30s)
//   - ENVIRONMENT: "development", "staging", "production" (default: development)
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"`
}

// DatabaseConfig holds DuckDB settings for the meal catalog.
//
// Environment Variables:
//   - DUCKDB_PATH: Database file path (default: /data/eatsential.duckdb)
//   - DUCKDB_MAX_MEMORY: Memory limit (default: 1GB)
//   - DUCKDB_THREADS: Thread count, 0 = runtime.NumCPU() (default: 0)
//   - SEED_DEMO_DATA: Seed demo restaurants and menu items on startup (default: false)
type DatabaseConfig struct {
	Path                   string `koanf:"path"`
	MaxMemory              string `koanf:"max_memory"`
	Threads                int    `koanf:"threads"`                  // Number of DuckDB threads (0 = use NumCPU)
	PreserveInsertionOrder bool   `koanf:"preserve_insertion_order"` // Whether to preserve insertion order (default true)
	SeedDemoData           bool   `koanf:"seed_demo_data"`           // Seed demo catalog data for local development and tests
}

// FeedbackConfig holds BadgerDB settings for the feedback store.
//
// Environment Variables:
//   - FEEDBACK_PATH: BadgerDB directory (default: /data/feedback)
//   - FEEDBACK_IN_MEMORY: Run Badger in memory, no persistence (default: false)
//   - FEEDBACK_GC_INTERVAL: Value-log GC cadence (default: 10m)
//   - FEEDBACK_GC_DISCARD_RATIO: Value-log GC discard ratio (default: 0.5)
type FeedbackConfig struct {
	Path           string        `koanf:"path"`
	InMemory       bool          `koanf:"in_memory"`
	GCInterval     time.Duration `koanf:"gc_interval"`
	GCDiscardRatio float64       `koanf:"gc_discard_ratio"`
}

// LLMConfig holds the generative candidate provider settings.
//
// The engine talks to any OpenAI-compatible completion endpoint. When no API
// key is configured (or the key is the literal "test"), the mock provider is
// used instead so the service stays fully functional offline.
//
// Environment Variables:
//   - LLM_PROVIDER: "openai" or "mock" (default: openai)
//   - LLM_API_KEY: API key; OPENAI_API_KEY also accepted (default: "")
//   - LLM_BASE_URL: Override endpoint for OpenAI-compatible servers (default: "")
//   - LLM_MODEL: Model name (default: gpt-4o-mini)
//   - LLM_MAX_TOKENS: Completion token budget (default: 1024)
//   - LLM_TEMPERATURE: Sampling temperature (default: 0.7)
//   - LLM_TIMEOUT: Per-request deadline (default: 5s)
//   - LLM_REQUESTS_PER_SECOND: Client-side rate limit (default: 5)
//   - LLM_BURST: Rate limiter burst (default: 10)
//   - LLM_BREAKER_MAX_REQUESTS: Circuit breaker half-open probe count (default: 3)
//   - LLM_BREAKER_INTERVAL: Circuit breaker count reset interval (default: 60s)
//   - LLM_BREAKER_TIMEOUT: Circuit breaker open duration (default: 30s)
//   - LLM_BREAKER_FAILURES: Consecutive failures before opening (default: 5)
type LLMConfig struct {
	Provider          string        `koanf:"provider"`
	APIKey            string        `koanf:"api_key"`
	BaseURL           string        `koanf:"base_url"`
	Model             string        `koanf:"model"`
	MaxTokens         int           `koanf:"max_tokens"`
	Temperature       float64       `koanf:"temperature"`
	Timeout           time.Duration `koanf:"timeout"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	Burst             int           `koanf:"burst"`

	// Circuit breaker settings (sony/gobreaker)
	BreakerMaxRequests uint32        `koanf:"breaker_max_requests"`
	BreakerInterval    time.Duration `koanf:"breaker_interval"`
	BreakerTimeout     time.Duration `koanf:"breaker_timeout"`
	BreakerFailures    uint32        `koanf:"breaker_failures"`
}

// ProviderOpenAI and ProviderMock are the recognized LLM provider names.
const (
	ProviderOpenAI = "openai"
	ProviderMock   = "mock"
)

// EffectiveProvider resolves the provider that will actually serve requests.
// The mock provider is used when explicitly configured, when no API key is
// present, or when the key is the literal "test". This keeps development and
// CI environments working without credentials.
func (c *LLMConfig) EffectiveProvider() string {
	if c.Provider == ProviderMock {
		return ProviderMock
	}
	if c.APIKey == "" || c.APIKey == "test" {
		return ProviderMock
	}
	return ProviderOpenAI
}

// RecommendConfig holds recommendation policy settings.
//
// These are the tunable knobs of the pipeline: baseline scoring weights,
// the feedback boost multiplier, and the diversity selection caps. Defaults
// match the product policy; change them only with product sign-off.
//
// Environment Variables:
//   - RECOMMEND_MODE: "llm" or "baseline" (default: llm)
//   - RECOMMEND_DEFAULT_LIMIT: Results when request omits limit (default: 10)
//   - RECOMMEND_MAX_LIMIT: Hard cap on requested limit (default: 50)
//   - RECOMMEND_MAX_PER_RESTAURANT: Diversity cap per restaurant (default: 2)
//   - RECOMMEND_LIKE_BOOST: Multiplier for liked items/restaurants (default: 1.2)
//   - RECOMMEND_DIET_WEIGHT: Baseline dietary match weight (default: 0.5)
//   - RECOMMEND_CUISINE_WEIGHT: Baseline cuisine match weight (default: 0.3)
//   - RECOMMEND_PRICE_WEIGHT: Baseline price match weight (default: 0.2)
//   - RECOMMEND_MAX_CANDIDATES: Max candidates scored per request (default: 200)
//   - RECOMMEND_SNAPSHOT_CACHE_TTL: Catalog snapshot cache TTL (default: 5m)
type RecommendConfig struct {
	// Mode selects the candidate generator: "llm" (with silent fallback to
	// baseline) or "baseline" (deterministic only).
	Mode string `koanf:"mode"`

	// DefaultLimit is the result count when the request does not specify one.
	DefaultLimit int `koanf:"default_limit"`

	// MaxLimit caps the per-request limit.
	MaxLimit int `koanf:"max_limit"`

	// MaxPerRestaurant caps results per restaurant during diversity selection.
	MaxPerRestaurant int `koanf:"max_per_restaurant"`

	// LikeBoost multiplies scores of items the user liked, or items from
	// restaurants with a liked item. Applied once, then clamped to [0,1].
	LikeBoost float64 `koanf:"like_boost"`

	// Baseline scoring weights. Must each be in [0,1].
	DietWeight    float64 `koanf:"diet_weight"`
	CuisineWeight float64 `koanf:"cuisine_weight"`
	PriceWeight   float64 `koanf:"price_weight"`

	// MaxCandidates limits candidates scored per request.
	MaxCandidates int `koanf:"max_candidates"`

	// SnapshotCacheTTL is how long catalog reference data (restaurants,
	// allergen relations) is cached. Feedback is never cached.
	SnapshotCacheTTL time.Duration `koanf:"snapshot_cache_ttl"`
}

// APIConfig holds API pagination, CORS, and rate limiting settings.
//
// Environment Variables:
//   - API_DEFAULT_PAGE_SIZE: Default page size for list endpoints (default: 20)
//   - API_MAX_PAGE_SIZE: Max page size for list endpoints (default: 100)
//   - CORS_ORIGINS: Comma-separated allowed origins (default: *)
//   - RATE_LIMIT_REQUESTS: Requests per window per IP (default: 100)
//   - RATE_LIMIT_WINDOW: Rate limit window (default: 1m)
//   - DISABLE_RATE_LIMIT: Disable rate limiting entirely (default: false)
type APIConfig struct {
	DefaultPageSize   int           `koanf:"default_page_size"`
	MaxPageSize       int           `koanf:"max_page_size"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging settings for zerolog.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// JSON is recommended for production.
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// Load reads configuration from environment variables and optional config file.
// Configuration is loaded in the following order (later sources override earlier ones):
//  1. Built-in defaults
//  2. Config file (config.yaml if exists, or path specified in CONFIG_PATH env var)
//  3. Environment variables
//
// See LoadWithKoanf() for the underlying implementation.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// Addr returns the host:port listen address for the HTTP server.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
