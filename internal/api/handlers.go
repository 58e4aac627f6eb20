// Eatsential - Health-Aware Meal Recommendation Engine
// Copyright 2026 Taylor Brown (TaylorBrown96)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TaylorBrown96/CSC510-proj3

package api

import (
	"context"
	"time"

	"github.com/TaylorBrown96/CSC510-proj3/internal/feedback"
	"github.com/TaylorBrown96/CSC510-proj3/internal/recommend"
)

// Recommender is the engine surface the handlers call. Satisfied by
// *recommend.Engine; tests substitute stubs.
type Recommender interface {
	RecommendMeals(ctx context.Context, req recommend.Request) (*recommend.Response, error)
	RecommendRestaurants(ctx context.Context, req recommend.Request) (*recommend.Response, error)
}

// FeedbackStore is the feedback surface the handlers call. Satisfied by
// *feedback.Store.
type FeedbackStore interface {
	Submit(ctx context.Context, rec *feedback.Record) error
	States(ctx context.Context, userID string, itemIDs []string, itemType string) (map[string]string, error)
	Ping(ctx context.Context) error
}

// Pinger reports store connectivity for health checks. Satisfied by
// *catalog.Store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler holds the dependencies shared by all endpoint handlers.
type Handler struct {
	engine    Recommender
	feedback  FeedbackStore
	catalog   Pinger
	startTime time.Time
}

// NewHandler creates the endpoint handler set.
func NewHandler(engine Recommender, fb FeedbackStore, cat Pinger) *Handler {
	return &Handler{
		engine:    engine,
		feedback:  fb,
		catalog:   cat,
		startTime: time.Now(),
	}
}
