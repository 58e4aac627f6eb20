// Eatsential - Health-Aware Meal Recommendation Engine
// Copyright 2026 Taylor Brown (TaylorBrown96)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TaylorBrown96/CSC510-proj3

package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/TaylorBrown96/CSC510-proj3/internal/catalog"
	"github.com/TaylorBrown96/CSC510-proj3/internal/feedback"
)

// Generator modes selectable per request. ModeLLM is the default and falls
// back to the baseline generator on any generative failure.
const (
	ModeLLM      = "llm"
	ModeBaseline = "baseline"
)

// Candidate kinds. The pipeline is identical for both; only the candidate
// pool and the prompt wording differ.
const (
	KindMeal       = "meal"
	KindRestaurant = "restaurant"
)

var (
	// ErrInvalidRequest is returned when a request fails validation before
	// any candidates are generated. The API layer maps it to a 400.
	ErrInvalidRequest = errors.New("invalid recommendation request")

	// ErrGeneratorUnavailable marks a generative backend failure. It is
	// always recovered by falling back to the baseline generator and never
	// reaches the caller.
	ErrGeneratorUnavailable = errors.New("generative backend unavailable")
)

// Candidate is one scored recommendation as it moves through the pipeline.
// The JSON projection is the response wire shape; fields the pipeline needs
// internally (tags, base score, grouping key) are never serialized.
type Candidate struct {
	// ItemID identifies the menu item, or the restaurant for
	// restaurant-level recommendations.
	ItemID string `json:"item_id"`

	// Name is the display name of the item or restaurant.
	Name string `json:"name"`

	// Score is the adjusted score in [0,1] after feedback boosts.
	Score float64 `json:"score"`

	// Explanation is a short human-readable account of why the candidate
	// was recommended.
	Explanation string `json:"explanation"`

	// RestaurantName and RestaurantPlaceID locate the serving restaurant.
	// Empty for candidates without one.
	RestaurantName    string `json:"restaurant_name,omitempty"`
	RestaurantPlaceID string `json:"restaurant_place_id,omitempty"`

	// Price is the item price, or the average menu price for a restaurant
	// candidate. Nil when unknown.
	Price *float64 `json:"price,omitempty"`

	// Calories is nil when the catalog has no calorie data for the item.
	Calories *int `json:"calories,omitempty"`

	// RestaurantID is the diversity grouping key. Candidates with an empty
	// RestaurantID are never grouped together.
	RestaurantID string `json:"-"`

	// BaseScore is the generator-assigned score before feedback
	// adjustment. The adjuster always recomputes Score from BaseScore so
	// that re-adjusting is a no-op.
	BaseScore float64 `json:"-"`

	// Cuisine, Description, DietTags, and AllergenIDs carry the catalog
	// attributes the filtering and scoring stages consume.
	Cuisine     string   `json:"-"`
	Description string   `json:"-"`
	DietTags    []string `json:"-"`
	AllergenIDs []string `json:"-"`
}

// Filters narrows the candidate pool before scoring. All values are
// case-insensitive; Normalize lowercases them once at request entry.
type Filters struct {
	// Diet lists requested dietary preferences ("vegan", "gluten_free").
	// Scoring rewards items whose diet tags overlap the requested set.
	Diet []string `json:"diet,omitempty"`

	// Cuisine lists acceptable cuisines. When non-empty, items with a
	// different (non-empty) cuisine are excluded before scoring.
	Cuisine []string `json:"cuisine,omitempty"`

	// PriceRange is one of the four price tiers ("$".."$$$$"). When set,
	// items more than one tier away are excluded before scoring.
	PriceRange string `json:"price_range,omitempty"`
}

// Validate reports the first malformed filter value, wrapped in
// ErrInvalidRequest.
func (f *Filters) Validate() error {
	if f.PriceRange != "" && !catalog.ValidTier(f.PriceRange) {
		return fmt.Errorf("%w: price_range %q is not one of $, $$, $$$, $$$$", ErrInvalidRequest, f.PriceRange)
	}
	for _, d := range f.Diet {
		if strings.TrimSpace(d) == "" {
			return fmt.Errorf("%w: diet entries must be non-empty", ErrInvalidRequest)
		}
	}
	for _, c := range f.Cuisine {
		if strings.TrimSpace(c) == "" {
			return fmt.Errorf("%w: cuisine entries must be non-empty", ErrInvalidRequest)
		}
	}
	return nil
}

// Normalize lowercases and trims filter values in place so that matching
// against catalog data is case-insensitive.
func (f *Filters) Normalize() {
	for i, d := range f.Diet {
		f.Diet[i] = strings.ToLower(strings.TrimSpace(d))
	}
	for i, c := range f.Cuisine {
		f.Cuisine[i] = strings.ToLower(strings.TrimSpace(c))
	}
	f.PriceRange = strings.TrimSpace(f.PriceRange)
}

// Request is one recommendation request after the API layer has attached
// the authenticated user.
type Request struct {
	// UserID selects the health profile and feedback history. Required.
	UserID string `json:"-"`

	// Filters narrows and weights the candidate pool. Optional.
	Filters Filters `json:"filters"`

	// Limit is the maximum number of results. Zero means the configured
	// default; values above the configured maximum are rejected.
	Limit int `json:"limit,omitempty"`

	// Mode overrides the configured generator mode for this request.
	// Empty means the configured default.
	Mode string `json:"mode,omitempty"`
}

// Response is the ranked recommendation list returned to the caller.
type Response struct {
	// Items is the final selection, sorted by adjusted score descending
	// subject to the per-restaurant cap. Never nil; may be empty.
	Items []Candidate `json:"items"`

	// Generator names the generator that actually produced the candidates:
	// "llm" or "baseline". After a silent fallback this reads "baseline"
	// even though "llm" was requested.
	Generator string `json:"generator"`

	// TotalCandidates is the number of candidates the generator produced
	// before safety re-checks, feedback adjustment, and selection.
	TotalCandidates int `json:"total_candidates"`
}

// GenerateInput is the per-request snapshot a generator works from. Pool
// has already passed the Safety Filter; generators must not re-introduce
// anything outside it.
type GenerateInput struct {
	// Kind is KindMeal or KindRestaurant.
	Kind string

	// Profile is the requesting user's health profile.
	Profile *catalog.HealthProfile

	// Filters are the normalized request filters.
	Filters Filters

	// Pool is the safety-filtered candidate pool, scores unset.
	Pool []Candidate

	// Limit is the requested result count, used to size generative output.
	Limit int
}

// Generator produces scored candidates from a snapshot. Implementations
// must be pure with respect to the input: same snapshot, same output.
type Generator interface {
	// Name is the marker recorded in the response and in metrics.
	Name() string

	// Generate scores and ranks candidates from the pool. A returned error
	// triggers silent fallback to the baseline generator; it is never
	// surfaced to the caller.
	Generate(ctx context.Context, in GenerateInput) ([]Candidate, error)
}

// CatalogProvider is the slice of the catalog store the engine reads. It
// is satisfied by *catalog.Store; tests substitute fixtures.
type CatalogProvider interface {
	MenuItems(ctx context.Context) ([]catalog.MenuItem, error)
	Restaurants(ctx context.Context) ([]catalog.Restaurant, error)
	HealthProfile(ctx context.Context, userID string) (*catalog.HealthProfile, error)
	Allergens(ctx context.Context) ([]catalog.Allergen, error)
}

// FeedbackProvider supplies the per-user feedback signals read fresh at
// the start of every request. Satisfied by *feedback.Store.
type FeedbackProvider interface {
	UserFeedback(ctx context.Context, userID string) (*feedback.UserSignals, error)
}
