// Eatsential - Health-Aware Meal Recommendation Engine
// Copyright 2026 Taylor Brown (TaylorBrown96)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TaylorBrown96/CSC510-proj3

package config

import (
	"fmt"
	"time"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateDatabase(); err != nil {
		return err
	}

	if err := c.validateFeedback(); err != nil {
		return err
	}

	if err := c.validateLLM(); err != nil {
		return err
	}

	if err := c.validateRecommend(); err != nil {
		return err
	}

	if err := c.validateAPI(); err != nil {
		return err
	}

	return c.validateLogging()
}

// Server limit constants
const (
	serverMinPort    = 1
	serverMaxPort    = 65535
	serverMinTimeout = time.Second
	serverMaxTimeout = 10 * time.Minute
)

// validateServer validates HTTP server settings
func (c *Config) validateServer() error {
	if c.Server.Port < serverMinPort || c.Server.Port > serverMaxPort {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}

	if c.Server.Timeout < serverMinTimeout || c.Server.Timeout > serverMaxTimeout {
		return fmt.Errorf("HTTP_TIMEOUT must be between 1s and 10m, got %s", c.Server.Timeout)
	}

	switch c.Server.Environment {
	case "development", "staging", "production":
		return nil
	default:
		return fmt.Errorf("ENVIRONMENT must be development, staging, or production, got %q", c.Server.Environment)
	}
}

// validateDatabase validates DuckDB catalog settings
func (c *Config) validateDatabase() error {
	if c.Database.Path == "" {
		return fmt.Errorf("DUCKDB_PATH is required")
	}

	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must be >= 0 (0 = use all cores), got %d", c.Database.Threads)
	}

	return nil
}

// validateFeedback validates BadgerDB feedback store settings
func (c *Config) validateFeedback() error {
	if !c.Feedback.InMemory && c.Feedback.Path == "" {
		return fmt.Errorf("FEEDBACK_PATH is required when FEEDBACK_IN_MEMORY=false")
	}

	if c.Feedback.GCInterval < time.Minute {
		return fmt.Errorf("FEEDBACK_GC_INTERVAL must be at least 1m, got %s", c.Feedback.GCInterval)
	}

	if c.Feedback.GCDiscardRatio <= 0 || c.Feedback.GCDiscardRatio >= 1 {
		return fmt.Errorf("FEEDBACK_GC_DISCARD_RATIO must be in (0, 1), got %g", c.Feedback.GCDiscardRatio)
	}

	return nil
}

// LLM limit constants
const (
	llmMinTimeout   = 500 * time.Millisecond
	llmMaxTimeout   = 2 * time.Minute
	llmMaxMaxTokens = 32768
)

// validateLLM validates the generative provider settings.
// An absent API key is not an error: EffectiveProvider() falls back to the
// mock provider so the service keeps working without credentials.
func (c *Config) validateLLM() error {
	switch c.LLM.Provider {
	case ProviderOpenAI, ProviderMock:
	default:
		return fmt.Errorf("LLM_PROVIDER must be openai or mock, got %q", c.LLM.Provider)
	}

	if c.LLM.BaseURL != "" {
		if err := validateBaseURL(c.LLM.BaseURL, "LLM_BASE_URL"); err != nil {
			return err
		}
	}

	if c.LLM.MaxTokens < 1 || c.LLM.MaxTokens > llmMaxMaxTokens {
		return fmt.Errorf("LLM_MAX_TOKENS must be between 1 and 32768, got %d", c.LLM.MaxTokens)
	}

	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("LLM_TEMPERATURE must be between 0 and 2, got %g", c.LLM.Temperature)
	}

	if c.LLM.Timeout < llmMinTimeout || c.LLM.Timeout > llmMaxTimeout {
		return fmt.Errorf("LLM_TIMEOUT must be between 500ms and 2m, got %s", c.LLM.Timeout)
	}

	if c.LLM.RequestsPerSecond <= 0 {
		return fmt.Errorf("LLM_REQUESTS_PER_SECOND must be positive, got %g", c.LLM.RequestsPerSecond)
	}

	if c.LLM.Burst < 1 {
		return fmt.Errorf("LLM_BURST must be at least 1, got %d", c.LLM.Burst)
	}

	return c.validateLLMBreaker()
}

// validateLLMBreaker validates circuit breaker settings
func (c *Config) validateLLMBreaker() error {
	if c.LLM.BreakerMaxRequests < 1 {
		return fmt.Errorf("LLM_BREAKER_MAX_REQUESTS must be at least 1, got %d", c.LLM.BreakerMaxRequests)
	}

	if c.LLM.BreakerTimeout < time.Second {
		return fmt.Errorf("LLM_BREAKER_TIMEOUT must be at least 1s, got %s", c.LLM.BreakerTimeout)
	}

	if c.LLM.BreakerFailures < 1 {
		return fmt.Errorf("LLM_BREAKER_FAILURES must be at least 1, got %d", c.LLM.BreakerFailures)
	}

	return nil
}

// Recommendation policy limit constants
const (
	recommendMaxLimitCeiling = 100
	recommendMaxCandidates   = 10000
)

// validateRecommend validates recommendation policy settings
func (c *Config) validateRecommend() error {
	switch c.Recommend.Mode {
	case "llm", "baseline":
	default:
		return fmt.Errorf("RECOMMEND_MODE must be llm or baseline, got %q", c.Recommend.Mode)
	}

	if c.Recommend.MaxLimit < 1 || c.Recommend.MaxLimit > recommendMaxLimitCeiling {
		return fmt.Errorf("RECOMMEND_MAX_LIMIT must be between 1 and 100, got %d", c.Recommend.MaxLimit)
	}

	if c.Recommend.DefaultLimit < 1 || c.Recommend.DefaultLimit > c.Recommend.MaxLimit {
		return fmt.Errorf("RECOMMEND_DEFAULT_LIMIT must be between 1 and RECOMMEND_MAX_LIMIT (%d), got %d",
			c.Recommend.MaxLimit, c.Recommend.DefaultLimit)
	}

	if c.Recommend.MaxPerRestaurant < 1 {
		return fmt.Errorf("RECOMMEND_MAX_PER_RESTAURANT must be at least 1, got %d", c.Recommend.MaxPerRestaurant)
	}

	if c.Recommend.LikeBoost < 1 {
		return fmt.Errorf("RECOMMEND_LIKE_BOOST must be >= 1.0, got %g", c.Recommend.LikeBoost)
	}

	if err := c.validateRecommendWeights(); err != nil {
		return err
	}

	if c.Recommend.MaxCandidates < 1 || c.Recommend.MaxCandidates > recommendMaxCandidates {
		return fmt.Errorf("RECOMMEND_MAX_CANDIDATES must be between 1 and 10000, got %d", c.Recommend.MaxCandidates)
	}

	if c.Recommend.SnapshotCacheTTL < 0 {
		return fmt.Errorf("RECOMMEND_SNAPSHOT_CACHE_TTL must not be negative, got %s", c.Recommend.SnapshotCacheTTL)
	}

	return nil
}

// validateRecommendWeights validates baseline scoring weights.
// Each weight must be in [0,1] and at least one must be positive; weights
// need not sum to 1 because component scores are clamped after combination.
func (c *Config) validateRecommendWeights() error {
	weights := map[string]float64{
		"RECOMMEND_DIET_WEIGHT":    c.Recommend.DietWeight,
		"RECOMMEND_CUISINE_WEIGHT": c.Recommend.CuisineWeight,
		"RECOMMEND_PRICE_WEIGHT":   c.Recommend.PriceWeight,
	}

	sum := 0.0
	for name, w := range weights {
		if w < 0 || w > 1 {
			return fmt.Errorf("%s must be between 0 and 1, got %g", name, w)
		}
		sum += w
	}

	if sum == 0 {
		return fmt.Errorf("at least one of RECOMMEND_DIET_WEIGHT, RECOMMEND_CUISINE_WEIGHT, RECOMMEND_PRICE_WEIGHT must be positive")
	}

	return nil
}

// validateAPI validates API pagination and rate limiting settings
func (c *Config) validateAPI() error {
	if c.API.DefaultPageSize < 1 {
		return fmt.Errorf("API_DEFAULT_PAGE_SIZE must be at least 1, got %d", c.API.DefaultPageSize)
	}

	if c.API.MaxPageSize < c.API.DefaultPageSize {
		return fmt.Errorf("API_MAX_PAGE_SIZE (%d) must be >= API_DEFAULT_PAGE_SIZE (%d)",
			c.API.MaxPageSize, c.API.DefaultPageSize)
	}

	if !c.API.RateLimitDisabled {
		if c.API.RateLimitReqs < 1 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1, got %d", c.API.RateLimitReqs)
		}
		if c.API.RateLimitWindow < time.Second {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be at least 1s, got %s", c.API.RateLimitWindow)
		}
	}

	return nil
}

// validateLogging validates logging settings
func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error, fatal, panic, disabled, got %q", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "json", "console":
		return nil
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
}
