// Eatsential - Health-Aware Meal Recommendation Engine
// Copyright 2026 Taylor Brown (TaylorBrown96)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TaylorBrown96/CSC510-proj3

package main

import (
	"fmt"

	"github.com/TaylorBrown96/CSC510-proj3/internal/catalog"
	"github.com/TaylorBrown96/CSC510-proj3/internal/config"
	"github.com/TaylorBrown96/CSC510-proj3/internal/feedback"
	"github.com/TaylorBrown96/CSC510-proj3/internal/llm"
	"github.com/TaylorBrown96/CSC510-proj3/internal/logging"
	"github.com/TaylorBrown96/CSC510-proj3/internal/recommend"
)

// initRecommend wires the recommendation engine: the LLM client (real or
// mock, both behind the rate-limiting circuit-breaker layer) plus the
// catalog and feedback stores as the engine's providers.
func initRecommend(cfg *config.Config, cat *catalog.Store, fb *feedback.Store) (*recommend.Engine, error) {
	client, err := llm.New(&cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("create llm client: %w", err)
	}

	engine, err := recommend.NewEngine(buildEngineConfig(cfg), cat, fb, client, logging.Logger())
	if err != nil {
		return nil, fmt.Errorf("create recommendation engine: %w", err)
	}

	return engine, nil
}

// buildEngineConfig creates the engine configuration from app config.
func buildEngineConfig(cfg *config.Config) *recommend.Config {
	return &recommend.Config{
		Mode:             cfg.Recommend.Mode,
		DefaultLimit:     cfg.Recommend.DefaultLimit,
		MaxLimit:         cfg.Recommend.MaxLimit,
		MaxPerRestaurant: cfg.Recommend.MaxPerRestaurant,
		LikeBoost:        cfg.Recommend.LikeBoost,
		DietWeight:       cfg.Recommend.DietWeight,
		CuisineWeight:    cfg.Recommend.CuisineWeight,
		PriceWeight:      cfg.Recommend.PriceWeight,
		MaxCandidates:    cfg.Recommend.MaxCandidates,
	}
}
