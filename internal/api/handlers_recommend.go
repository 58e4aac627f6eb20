// Eatsential - Health-Aware Meal Recommendation Engine
// Copyright 2026 Taylor Brown (TaylorBrown96)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TaylorBrown96/CSC510-proj3

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/TaylorBrown96/CSC510-proj3/internal/catalog"
	"github.com/TaylorBrown96/CSC510-proj3/internal/logging"
	"github.com/TaylorBrown96/CSC510-proj3/internal/recommend"
)

// recommendTimeout bounds a whole recommendation request, including the
// generative call. The LLM client carries its own tighter per-call timeout,
// so this envelope mostly guards the catalog reads around it.
const recommendTimeout = 10 * time.Second

// RecommendMeals handles POST /api/v1/recommendations/meals.
//
// The generative path never surfaces its failures: a timeout, malformed
// reply, or open breaker silently degrades to the baseline generator and
// the response's generator field says which one answered.
func (h *Handler) RecommendMeals(w http.ResponseWriter, r *http.Request) {
	h.recommend(w, r, h.engine.RecommendMeals)
}

// RecommendRestaurants handles POST /api/v1/recommendations/restaurants.
func (h *Handler) RecommendRestaurants(w http.ResponseWriter, r *http.Request) {
	h.recommend(w, r, h.engine.RecommendRestaurants)
}

func (h *Handler) recommend(w http.ResponseWriter, r *http.Request, generate func(context.Context, recommend.Request) (*recommend.Response, error)) {
	rw := NewResponseWriter(w, r)

	userID, ok := requestUserID(r)
	if !ok {
		rw.ValidationError("X-User-ID header is required", nil)
		return
	}

	var body recommendationRequest
	if err := decodeJSON(w, r, &body); err != nil {
		rw.BadRequest("Request body is not valid JSON")
		return
	}

	req := recommend.Request{
		UserID:  userID,
		Filters: body.Filters,
		Limit:   body.Limit,
		Mode:    body.Mode,
	}

	ctx, cancel := context.WithTimeout(r.Context(), recommendTimeout)
	defer cancel()

	resp, err := generate(ctx, req)
	if err != nil {
		h.writeRecommendError(rw, r, err)
		return
	}
	rw.Success(resp)
}

// writeRecommendError maps engine failures onto the envelope. Invalid
// requests carry the engine's message; store failures do not leak
// internals to the client.
func (h *Handler) writeRecommendError(rw *ResponseWriter, r *http.Request, err error) {
	var upstream *catalog.UpstreamError
	switch {
	case errors.Is(err, recommend.ErrInvalidRequest):
		rw.ValidationError(err.Error(), nil)
	case errors.As(err, &upstream):
		rw.DatabaseError(err)
	default:
		logging.CtxErr(r.Context(), err).Msg("recommendation failed")
		rw.InternalError("Failed to generate recommendations")
	}
}
