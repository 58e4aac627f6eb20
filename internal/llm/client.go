// Eatsential - Health-Aware Meal Recommendation Engine
// Copyright 2026 Taylor Brown (TaylorBrown96)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TaylorBrown96/CSC510-proj3

package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/TaylorBrown96/CSC510-proj3/internal/config"
	"github.com/TaylorBrown96/CSC510-proj3/internal/logging"
)

// ErrUnavailable is returned when the circuit breaker rejects a call before
// it reaches the backend. Callers fall back to the baseline generator; the
// error is never surfaced to API clients.
var ErrUnavailable = errors.New("llm provider unavailable")

// Client produces one completion for one prompt. Implementations must be
// safe for concurrent use.
type Client interface {
	// Complete sends prompt to the backend and returns the raw reply text.
	Complete(ctx context.Context, prompt string) (string, error)

	// Provider names the backend ("openai" or "mock") for logs and metrics.
	Provider() string
}

// New builds the completion client for the configured provider and wraps it
// in the rate-limiting circuit-breaker layer. The mock provider is selected
// automatically when no usable API key is configured.
func New(cfg *config.LLMConfig) (Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("llm config cannot be nil")
	}

	var base Client
	switch provider := cfg.EffectiveProvider(); provider {
	case config.ProviderMock:
		base = NewMock()
	case config.ProviderOpenAI:
		client, err := newOpenAIClient(cfg)
		if err != nil {
			return nil, err
		}
		base = client
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", provider)
	}

	logging.Info().
		Str("provider", base.Provider()).
		Str("model", cfg.Model).
		Msg("LLM client initialized")

	return newResilientClient(base, cfg), nil
}
