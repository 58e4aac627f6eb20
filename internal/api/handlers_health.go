// Eatsential - Health-Aware Meal Recommendation Engine
// Copyright 2026 Taylor Brown (TaylorBrown96)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TaylorBrown96/CSC510-proj3

package api

import (
	"net/http"
	"time"
)

// healthStatus is the payload for GET /api/v1/health.
type healthStatus struct {
	Status            string  `json:"status"`
	Version           string  `json:"version"`
	CatalogConnected  bool    `json:"catalog_connected"`
	FeedbackConnected bool    `json:"feedback_connected"`
	UptimeSeconds     float64 `json:"uptime_seconds"`
}

const version = "1.0.0"

// Health handles GET /api/v1/health: an aggregate status over both stores.
// A failing store degrades the status but the endpoint itself stays 200 so
// dashboards can read the detail.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	catalogUp := h.catalog != nil && h.catalog.Ping(r.Context()) == nil
	feedbackUp := h.feedback != nil && h.feedback.Ping(r.Context()) == nil

	status := "healthy"
	if !catalogUp || !feedbackUp {
		status = "degraded"
	}

	NewResponseWriter(w, r).Success(healthStatus{
		Status:            status,
		Version:           version,
		CatalogConnected:  catalogUp,
		FeedbackConnected: feedbackUp,
		UptimeSeconds:     time.Since(h.startTime).Seconds(),
	})
}

// HealthLive handles GET /api/v1/health/live: 200 whenever the process is
// up, regardless of dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"alive":          true,
		"uptime_seconds": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles GET /api/v1/health/ready: 200 only when both stores
// answer a ping, 503 otherwise so load balancers stop routing here.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	catalogUp := h.catalog != nil && h.catalog.Ping(r.Context()) == nil
	feedbackUp := h.feedback != nil && h.feedback.Ping(r.Context()) == nil

	ready := catalogUp && feedbackUp
	data := map[string]interface{}{
		"catalog_connected":  catalogUp,
		"feedback_connected": feedbackUp,
		"ready_to_serve":     ready,
	}
	if !ready {
		rw.ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Service is not ready", data)
		return
	}
	rw.Success(data)
}
