// Eatsential - Health-Aware Meal Recommendation Engine
// Copyright 2026 Taylor Brown (TaylorBrown96)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TaylorBrown96/CSC510-proj3

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/TaylorBrown96/CSC510-proj3/internal/catalog"
	"github.com/TaylorBrown96/CSC510-proj3/internal/feedback"
	"github.com/TaylorBrown96/CSC510-proj3/internal/llm"
	"github.com/TaylorBrown96/CSC510-proj3/internal/metrics"
)

// Engine orchestrates the recommendation pipeline. It holds no per-request
// state and is safe for concurrent use.
type Engine struct {
	cfg        *Config
	catalog    CatalogProvider
	feedback   FeedbackProvider
	baseline   *baselineGenerator
	generative Generator // nil when no LLM client was provided
	logger     zerolog.Logger
}

// NewEngine wires the pipeline. A nil cfg selects DefaultConfig. A nil llm
// client is allowed: requests in LLM mode then serve baseline results with
// a fallback marker instead of failing.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func NewEngine(cfg *Config, cat CatalogProvider, fb FeedbackProvider, client llm.Client, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}
	if cat == nil {
		return nil, errors.New("catalog provider is required")
	}
	if fb == nil {
		return nil, errors.New("feedback provider is required")
	}

	e := &Engine{
		cfg:      cfg,
		catalog:  cat,
		feedback: fb,
		baseline: &baselineGenerator{cfg: cfg},
		logger:   logger.With().Str("component", "recommend").Logger(),
	}
	if client != nil {
		e.generative = newGenerativeGenerator(client, logger)
	} else if cfg.Mode == ModeLLM {
		e.logger.Warn().Msg("no LLM client configured; serving baseline recommendations only")
	}

	e.logger.Info().
		Str("mode", cfg.Mode).
		Int("default_limit", cfg.DefaultLimit).
		Int("max_per_restaurant", cfg.MaxPerRestaurant).
		Float64("like_boost", cfg.LikeBoost).
		Msg("recommendation engine initialized")
	return e, nil
}

// RecommendMeals returns ranked menu items for the user.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) RecommendMeals(ctx context.Context, req Request) (*Response, error) {
	return e.recommend(ctx, req, KindMeal)
}

// RecommendRestaurants returns ranked restaurants for the user. Only
// restaurants with at least one safe menu item are considered.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) RecommendRestaurants(ctx context.Context, req Request) (*Response, error) {
	return e.recommend(ctx, req, KindRestaurant)
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) recommend(ctx context.Context, req Request, kind string) (*Response, error) {
	start := time.Now()

	req, err := e.prepareRequest(req)
	if err != nil {
		return nil, err
	}
	logger := e.requestLogger(req, kind)

	profile, err := e.catalog.HealthProfile(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("load health profile: %w", err)
	}
	if profile == nil {
		profile = &catalog.HealthProfile{UserID: req.UserID}
	}
	allergens := profile.AllergenSet()
	terms, err := e.allergenTerms(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("load allergen vocabulary: %w", err)
	}
	strict := strictPreferences(profile.Preferences)

	items, err := e.catalog.MenuItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("load menu items: %w", err)
	}
	restaurantOf := make(map[string]string, len(items))
	for i := range items {
		restaurantOf[items[i].ID] = items[i].RestaurantID
	}

	safeMeals := e.applySafety(mealCandidates(items), allergens, terms, strict, KindMeal)

	pool := safeMeals
	if kind == KindRestaurant {
		restaurants, err := e.catalog.Restaurants(ctx)
		if err != nil {
			return nil, fmt.Errorf("load restaurants: %w", err)
		}
		pool = restaurantPool(restaurants, safeMeals)
	}
	if len(pool) > e.cfg.MaxCandidates {
		pool = pool[:e.cfg.MaxCandidates]
	}

	signals := e.loadSignals(ctx, req.UserID, logger)

	in := GenerateInput{
		Kind:    kind,
		Profile: profile,
		Filters: req.Filters,
		Pool:    pool,
		Limit:   req.Limit,
	}
	cands, generator := e.generate(ctx, in, req.Mode, logger)
	total := len(cands)

	// Generative output is untrusted even though its ids were resolved
	// against the safe pool; run the Safety Filter once more. For the
	// baseline this is a no-op.
	cands = e.applySafety(cands, allergens, terms, strict, kind)

	snap := buildMealSnapshot(signals, restaurantOf)
	if kind == KindRestaurant {
		snap = buildRestaurantSnapshot(signals, restaurantOf)
	}
	adjusted, droppedDislikes := adjustForFeedback(cands, snap, e.cfg.LikeBoost)
	if droppedDislikes > 0 {
		metrics.RecordCandidatesDropped("dislike", droppedDislikes)
	}

	selected := selectDiverse(adjusted, req.Limit, e.cfg.MaxPerRestaurant)

	metrics.RecordRecommendation(kind, generator, time.Since(start), len(selected))
	logger.Info().
		Str("generator", generator).
		Int("candidates", total).
		Int("dropped_dislikes", droppedDislikes).
		Int("returned", len(selected)).
		Dur("duration", time.Since(start)).
		Msg("recommendation served")

	return &Response{
		Items:           selected,
		Generator:       generator,
		TotalCandidates: total,
	}, nil
}

// prepareRequest applies defaults and validates, returning the effective
// request.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(req Request) (Request, error) {
	if strings.TrimSpace(req.UserID) == "" {
		return req, fmt.Errorf("%w: user id is required", ErrInvalidRequest)
	}
	if req.Limit == 0 {
		req.Limit = e.cfg.DefaultLimit
	}
	if req.Limit < 0 || req.Limit > e.cfg.MaxLimit {
		return req, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidRequest, e.cfg.MaxLimit)
	}
	switch req.Mode {
	case "":
		req.Mode = e.cfg.Mode
	case ModeLLM, ModeBaseline:
	default:
		return req, fmt.Errorf("%w: mode %q is not %q or %q", ErrInvalidRequest, req.Mode, ModeLLM, ModeBaseline)
	}
	if err := req.Filters.Validate(); err != nil {
		return req, err
	}
	req.Filters.Normalize()
	return req, nil
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) requestLogger(req Request, kind string) zerolog.Logger {
	return e.logger.With().
		Str("user_id", req.UserID).
		Str("kind", kind).
		Str("mode", req.Mode).
		Int("limit", req.Limit).
		Logger()
}

// generate runs the requested generator, falling back to the baseline on
// any generative failure. The returned marker names the generator whose
// output is actually being served.
//
//nolint:gocritic // hugeParam: in passed by value for immutability
func (e *Engine) generate(ctx context.Context, in GenerateInput, mode string, logger zerolog.Logger) ([]Candidate, string) {
	if mode == ModeLLM {
		if e.generative != nil {
			cands, err := e.generative.Generate(ctx, in)
			if err == nil {
				return cands, e.generative.Name()
			}
			reason := fallbackReason(err)
			metrics.RecordGeneratorFallback(reason)
			logger.Warn().Err(err).Str("reason", reason).Msg("generative ranking failed; falling back to baseline")
		} else {
			metrics.RecordGeneratorFallback("not_configured")
		}
	}

	cands, _ := e.baseline.Generate(ctx, in) // baseline cannot fail
	return cands, e.baseline.Name()
}

// applySafety runs the Safety Filter: the allergen tag intersection for all
// candidates, plus the allergen-term and strict-diet text screens for
// meals. Neither text screen applies to restaurant candidates (a
// steakhouse's name is not its menu); those are already derived exclusively
// from safe menu items.
func (e *Engine) applySafety(cands []Candidate, allergens map[string]struct{}, terms, strict []string, kind string) []Candidate {
	if kind != KindMeal {
		terms = nil
	}
	kept, droppedAllergen := filterAllergens(cands, allergens, terms)
	if droppedAllergen > 0 {
		metrics.RecordCandidatesDropped("allergen", droppedAllergen)
	}
	if kind == KindMeal {
		var droppedDiet int
		kept, droppedDiet = filterStrictDiets(kept, strict)
		if droppedDiet > 0 {
			metrics.RecordCandidatesDropped("strict_diet", droppedDiet)
		}
	}
	return kept
}

// allergenTerms resolves the profile's allergen ids into lowercase
// vocabulary names for the text tier of the allergen check. Ids missing
// from the vocabulary fall back to the name stored on the profile row. A
// vocabulary read failure fails the request: without the terms the text
// tier cannot run, and serving without it would weaken a safety property.
func (e *Engine) allergenTerms(ctx context.Context, profile *catalog.HealthProfile) ([]string, error) {
	if len(profile.Allergies) == 0 {
		return nil, nil
	}
	vocab, err := e.catalog.Allergens(ctx)
	if err != nil {
		return nil, err
	}
	nameOf := make(map[string]string, len(vocab))
	for _, a := range vocab {
		nameOf[a.ID] = a.Name
	}
	terms := make([]string, 0, len(profile.Allergies))
	for _, a := range profile.Allergies {
		name := nameOf[a.AllergenID]
		if name == "" {
			name = a.AllergenName
		}
		if name = strings.ToLower(strings.TrimSpace(name)); name != "" {
			terms = append(terms, name)
		}
	}
	return terms, nil
}

// loadSignals reads the user's feedback. A read failure downgrades the
// request to unpersonalized rather than failing it; writes surface their
// errors at the feedback endpoint instead.
func (e *Engine) loadSignals(ctx context.Context, userID string, logger zerolog.Logger) *feedback.UserSignals {
	signals, err := e.feedback.UserFeedback(ctx, userID)
	if err != nil {
		logger.Warn().Err(err).Msg("feedback unavailable; serving unpersonalized results")
		return nil
	}
	return signals
}

// fallbackReason classifies a generative failure for the fallback metric.
func fallbackReason(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, errMalformedReply):
		return "malformed"
	case errors.Is(err, errEmptyReply):
		return "empty"
	case errors.Is(err, errZeroScores):
		return "zero_scores"
	case errors.Is(err, llm.ErrUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}

// mealCandidates projects the catalog snapshot into pipeline candidates.
// Prices are copied so candidates never alias the shared snapshot.
func mealCandidates(items []catalog.MenuItem) []Candidate {
	out := make([]Candidate, 0, len(items))
	for i := range items {
		m := &items[i]
		price := m.Price
		out = append(out, Candidate{
			ItemID:            m.ID,
			Name:              m.Name,
			RestaurantID:      m.RestaurantID,
			RestaurantName:    m.RestaurantName,
			RestaurantPlaceID: m.RestaurantPlaceID,
			Price:             &price,
			Calories:          m.Calories,
			Cuisine:           m.Cuisine,
			Description:       m.Description,
			DietTags:          m.DietTags,
			AllergenIDs:       m.AllergenIDs,
		})
	}
	return out
}

// restaurantPool projects restaurants into candidates, keeping only those
// with at least one safe menu item. Each candidate's diet tags are the
// union of its safe items' tags, so diet scoring reflects what the user
// could actually order there.
func restaurantPool(restaurants []catalog.Restaurant, safeMeals []Candidate) []Candidate {
	tagsByRestaurant := make(map[string]map[string]struct{})
	for i := range safeMeals {
		m := &safeMeals[i]
		if m.RestaurantID == "" {
			continue
		}
		set, ok := tagsByRestaurant[m.RestaurantID]
		if !ok {
			set = make(map[string]struct{})
			tagsByRestaurant[m.RestaurantID] = set
		}
		for _, t := range m.DietTags {
			set[t] = struct{}{}
		}
	}

	out := make([]Candidate, 0, len(restaurants))
	for i := range restaurants {
		r := &restaurants[i]
		set, ok := tagsByRestaurant[r.ID]
		if !ok {
			continue
		}
		tags := make([]string, 0, len(set))
		for t := range set {
			tags = append(tags, t)
		}
		sort.Strings(tags)

		c := Candidate{
			ItemID:            r.ID,
			Name:              r.Name,
			RestaurantID:      r.ID,
			RestaurantName:    r.Name,
			RestaurantPlaceID: r.PlaceID,
			Cuisine:           r.Cuisine,
			DietTags:          tags,
		}
		if r.ItemCount > 0 {
			avg := r.AvgPrice
			c.Price = &avg
		}
		out = append(out, c)
	}
	return out
}
