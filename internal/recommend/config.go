// Eatsential - Health-Aware Meal Recommendation Engine
// Copyright 2026 Taylor Brown (TaylorBrown96)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TaylorBrown96/CSC510-proj3

package recommend

import "fmt"

// Config holds the engine's policy knobs. Zero values are invalid; start
// from DefaultConfig and override.
type Config struct {
	// Mode is the default generator when the request does not specify one:
	// ModeLLM or ModeBaseline. Default: ModeLLM.
	Mode string

	// DefaultLimit is the result count applied when the request omits a
	// limit. Default: 10.
	DefaultLimit int

	// MaxLimit is the largest per-request limit accepted. Default: 50.
	MaxLimit int

	// MaxPerRestaurant caps how many results a single restaurant may
	// occupy. Default: 2.
	MaxPerRestaurant int

	// LikeBoost multiplies the base score of candidates the user liked, or
	// candidates from a restaurant the user liked. The boosted score is
	// clamped back to [0,1]. Default: 1.2.
	LikeBoost float64

	// DietWeight, CuisineWeight, and PriceWeight are the baseline scoring
	// weights. Each must be in [0,1]. Defaults: 0.5, 0.3, 0.2.
	DietWeight    float64
	CuisineWeight float64
	PriceWeight   float64

	// MaxCandidates bounds how many pool entries are scored per request.
	// Default: 500.
	MaxCandidates int
}

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	return &Config{
		Mode:             ModeLLM,
		DefaultLimit:     10,
		MaxLimit:         50,
		MaxPerRestaurant: 2,
		LikeBoost:        1.2,
		DietWeight:       0.5,
		CuisineWeight:    0.3,
		PriceWeight:      0.2,
		MaxCandidates:    500,
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Mode != ModeLLM && c.Mode != ModeBaseline {
		return fmt.Errorf("mode must be %q or %q, got %q", ModeLLM, ModeBaseline, c.Mode)
	}
	if c.DefaultLimit < 1 {
		return fmt.Errorf("default limit must be positive, got %d", c.DefaultLimit)
	}
	if c.MaxLimit < c.DefaultLimit {
		return fmt.Errorf("max limit %d must be >= default limit %d", c.MaxLimit, c.DefaultLimit)
	}
	if c.MaxPerRestaurant < 1 {
		return fmt.Errorf("max per restaurant must be positive, got %d", c.MaxPerRestaurant)
	}
	if c.LikeBoost < 1.0 {
		return fmt.Errorf("like boost must be >= 1.0, got %g", c.LikeBoost)
	}
	for name, w := range map[string]float64{
		"diet":    c.DietWeight,
		"cuisine": c.CuisineWeight,
		"price":   c.PriceWeight,
	} {
		if w < 0 || w > 1 {
			return fmt.Errorf("%s weight must be in [0.0, 1.0], got %g", name, w)
		}
	}
	if c.MaxCandidates < 1 {
		return fmt.Errorf("max candidates must be positive, got %d", c.MaxCandidates)
	}
	return nil
}
