// Eatsential - Health-Aware Meal Recommendation Engine
// Copyright 2026 Taylor Brown (TaylorBrown96)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TaylorBrown96/CSC510-proj3

/*
Package middleware provides HTTP middleware components for the application.

This package implements infrastructure middleware for request ID tracking,
Prometheus metrics, and gzip compression. All middlewares use the standard
func(http.Handler) http.Handler signature so they compose with chi's Use().

Key Components:

  - RequestID: UUID-based request tracking for distributed tracing
  - PrometheusMetrics: HTTP request/response instrumentation
  - Compression: Pooled gzip compression for responses

Middleware Stack:

The router applies middleware in this order:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)         // Layer 1: Request tracking
	r.Use(cors.Handler(corsOptions))    // Layer 2: CORS headers
	r.Use(httprate.LimitByIP(100, time.Minute)) // Layer 3: Rate limiting
	r.Use(middleware.PrometheusMetrics) // Layer 4: Metrics
	r.Use(middleware.Compression)       // Layer 5: Gzip
	// Layer 6: Business logic handlers

Usage Example - Request ID:

	// Access request ID in a handler
	func handler(w http.ResponseWriter, r *http.Request) {
	    requestID := middleware.GetRequestID(r.Context())
	    logging.Ctx(r.Context()).Info().Msg("Processing request")
	}

The middleware also seeds the logging context, so any logger derived from the
request context automatically carries request_id and correlation_id fields.

Prometheus Label Cardinality:

PrometheusMetrics records the matched chi route pattern (for example
/api/v1/recommendations/meals) rather than the raw URL path, keeping the
endpoint label bounded regardless of query values.

Compression Details:

The compression middleware:
  - Activates only when the client sends Accept-Encoding: gzip
  - Reuses gzip writers through a sync.Pool to reduce allocations
  - Automatically sets Content-Encoding and drops Content-Length

Thread Safety:

All middleware components are thread-safe:
  - Compression uses pooled per-request gzip writers
  - Request ID uses context.Context (immutable)
  - Prometheus metrics use atomic operations

See Also:

  - internal/api: HTTP handlers wrapped by middleware
  - internal/metrics: Prometheus metrics definitions
  - internal/logging: Context-scoped structured logging
*/
package middleware
