// Eatsential - Health-Aware Meal Recommendation Engine
// Copyright 2026 Taylor Brown (TaylorBrown96)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TaylorBrown96/CSC510-proj3

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/TaylorBrown96/CSC510-proj3/internal/middleware"
)

// Router assembles the HTTP surface from the handler set and the
// middleware factories.
type Router struct {
	handler *Handler
	mw      *Middleware
}

// NewRouter creates a router. A nil middleware factory selects the secure
// defaults.
func NewRouter(handler *Handler, mw *Middleware) *Router {
	if mw == nil {
		mw = NewMiddleware(nil)
	}
	return &Router{handler: handler, mw: mw}
}

// Setup configures all routes and returns the root handler.
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global stack, applied to every route in order. CORS is global so
	// OPTIONS preflight works for all routes.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(rt.mw.CORS())

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(rt.mw.RateLimitHealth())
		r.Use(SecurityHeaders())
		r.Get("/", rt.handler.Health)
		r.Get("/live", rt.handler.HealthLive)
		r.Get("/ready", rt.handler.HealthReady)
	})

	r.Route("/api/v1/recommendations", func(r chi.Router) {
		r.Use(rt.mw.RateLimit())
		r.Use(SecurityHeaders())
		r.Use(middleware.PrometheusMetrics)
		r.Use(middleware.Compression)
		r.Post("/meals", rt.handler.RecommendMeals)
		r.Post("/restaurants", rt.handler.RecommendRestaurants)
	})

	r.Route("/api/v1/feedback", func(r chi.Router) {
		r.Use(rt.mw.RateLimit())
		r.Use(SecurityHeaders())
		r.Use(middleware.PrometheusMetrics)
		r.Use(middleware.Compression)
		r.Post("/", rt.handler.SubmitFeedback)
		r.Get("/", rt.handler.FeedbackStates)
	})

	r.Handle("/metrics", promhttp.Handler())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).NotFound("Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).MethodNotAllowed()
	})

	return r
}
