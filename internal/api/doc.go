// Eatsential - Health-Aware Meal Recommendation Engine
// Copyright 2026 Taylor Brown (TaylorBrown96)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TaylorBrown96/CSC510-proj3

// Package api provides the HTTP surface: a chi router with the global
// middleware stack, the standardized APIResponse envelope, and handlers
// for recommendations, feedback, and health probes.
//
// # Routes
//
// All application routes are versioned under /api/v1:
//
//	POST /api/v1/recommendations/meals
//	POST /api/v1/recommendations/restaurants
//	POST /api/v1/feedback
//	GET  /api/v1/feedback?item_ids=a,b,c&item_type=meal
//	GET  /api/v1/health (+ /live, /ready)
//	GET  /metrics
//
// # Identity
//
// Authentication lives in the gateway in front of this service. The
// gateway injects the authenticated user as the X-User-ID header;
// recommendation and feedback routes reject requests without it. No
// token validation happens here.
//
// # Response envelope
//
// Every response is an APIResponse: {success, data, error, meta}. Error
// payloads carry a machine-readable code (VALIDATION_ERROR,
// DATABASE_ERROR, ...) plus the request id for tracing. Handlers write
// through ResponseWriter so the envelope, timing, and request id wiring
// stay in one place.
package api
