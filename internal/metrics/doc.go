// Eatsential - Health-Aware Meal Recommendation Engine
// Copyright 2026 Taylor Brown (TaylorBrown96)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TaylorBrown96/CSC510-proj3

/*
Package metrics provides Prometheus metrics collection and export for observability.

This package implements application instrumentation using the Prometheus client
library, exposing metrics for monitoring performance, errors, and system health.

# Overview

The package provides metrics for:
  - HTTP request latency and throughput
  - DuckDB catalog query performance
  - Recommendation pipeline stages (safety filter, feedback, diversity)
  - LLM generator calls, fallbacks, and circuit breaker state
  - Feedback store operations and Badger GC cycles
  - Cache hit/miss rates

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8000/metrics

# Available Metrics

API Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
    Buckets: .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
  - api_active_requests: Active requests (gauge)
  - api_rate_limit_hits_total: Rate limit rejections (counter)
    Labels: endpoint

Database Metrics:
  - duckdb_query_duration_seconds: Query execution time (histogram)
    Labels: operation, table
  - duckdb_query_errors_total: Failed queries (counter)
    Labels: operation, table, error_type
  - duckdb_connection_pool_size: Connections in use (gauge)

Recommendation Metrics:
  - recommendation_duration_seconds: End-to-end request duration (histogram)
    Labels: item_type (meal, restaurant), generator (llm, baseline)
  - recommendations_total: Requests served (counter)
    Labels: item_type, generator
  - generator_fallbacks_total: Silent LLM-to-baseline fallbacks (counter)
    Labels: reason (timeout, llm_error, breaker_open, malformed_reply,
    empty_candidates, zero_scores)
  - recommendation_candidates_dropped_total: Candidates removed per stage (counter)
    Labels: stage (safety, dislike, diversity_cap, limit)
  - recommendation_candidates_returned: Result set sizes (histogram)

LLM Metrics:
  - llm_request_duration_seconds: Completion call duration (histogram)
    Labels: provider
  - llm_requests_total: Completion calls (counter)
    Labels: provider, result (success, timeout, rejected, error)
  - llm_throttle_delay_seconds: Client-side rate limiter wait time (histogram)

Circuit Breaker Metrics:
  - circuit_breaker_state: Current state (gauge)
    Labels: name
    Values: 0=closed, 1=half-open, 2=open
  - circuit_breaker_requests_total: Requests through breaker (counter)
    Labels: name, result (success, failure, rejected)
  - circuit_breaker_state_transitions_total: State transitions (counter)
    Labels: name, from_state, to_state

Feedback Metrics:
  - feedback_submissions_total: Stored feedback events (counter)
    Labels: item_type, feedback_type (like, dislike)
  - feedback_store_errors_total: Failed store operations (counter)
    Labels: operation (submit, list, gc)
  - feedback_gc_runs_total: Badger value-log GC cycles (counter)
    Labels: result (reclaimed, nothing, error)
  - feedback_gc_duration_seconds: GC cycle duration (histogram)

Cache Metrics:
  - cache_hits_total / cache_misses_total: Hit and miss counts (counter)
    Labels: cache_type (snapshot, profile)
  - cache_entries: Current entry count (gauge)
    Labels: cache_type
  - cache_evictions_total: Evictions from TTL expiry or LRU pressure (counter)
    Labels: cache_type

# Usage Example

Basic setup in main.go:

	import (
	    "github.com/TaylorBrown96/CSC510-proj3/internal/metrics"
	    "github.com/prometheus/client_golang/prometheus/promhttp"
	)

	func main() {
	    // Register metrics endpoint
	    http.Handle("/metrics", promhttp.Handler())

	    // Record metrics
	    metrics.RecordAPIRequest("POST", "/api/v1/recommendations/meals", "200", 23*time.Millisecond)
	    metrics.RecordDBQuery("SELECT", "menu_items", 5*time.Millisecond, nil)
	    metrics.RecordGeneratorFallback("timeout")
	}

Recording database query metrics:

	func (db *DB) MenuItems(ctx context.Context) ([]MenuItem, error) {
	    start := time.Now()
	    rows, err := db.conn.QueryContext(ctx, menuItemsQuery)
	    metrics.RecordDBQuery("SELECT", "menu_items", time.Since(start), err)
	    // ...
	}

# Prometheus Configuration

Example prometheus.yml configuration:

	scrape_configs:
	  - job_name: 'eatsential'
	    static_configs:
	      - targets: ['localhost:8000']
	    metrics_path: '/metrics'
	    scrape_interval: 15s

Example PromQL queries:

	# API request rate
	rate(api_requests_total[5m])

	# API p95 latency
	histogram_quantile(0.95, rate(api_request_duration_seconds_bucket[5m]))

	# LLM fallback ratio
	sum(rate(generator_fallbacks_total[5m])) / sum(rate(recommendations_total[5m]))

	# Safety filter drop rate
	rate(recommendation_candidates_dropped_total{stage="safety"}[5m])

	# Cache hit rate
	sum(rate(cache_hits_total[5m])) / (sum(rate(cache_hits_total[5m])) + sum(rate(cache_misses_total[5m])))

# Thread Safety

All metric recording functions are thread-safe and designed for concurrent use
from multiple goroutines. The Prometheus client library handles synchronization
internally.

# Cardinality Management

To prevent high cardinality issues:

  - Endpoint labels use route patterns, never raw URLs with IDs
  - Error types are truncated and limited to predefined constants
  - User and item identifiers never appear as label values
  - Fallback reasons and pipeline stages are fixed enumerations

# Alerting Rules

Example Prometheus alerting rules:

	groups:
	  - name: eatsential
	    rules:
	      - alert: HighFallbackRate
	        expr: |
	          sum(rate(generator_fallbacks_total[5m]))
	          /
	          sum(rate(recommendations_total[5m]))
	          > 0.25
	        for: 5m
	        annotations:
	          summary: "LLM fallback rate above 25%"

	      - alert: CircuitBreakerOpen
	        expr: circuit_breaker_state == 2
	        for: 2m
	        annotations:
	          summary: "Circuit breaker open for {{ $labels.name }}"

	      - alert: SlowCatalogQueries
	        expr: |
	          histogram_quantile(0.95,
	            rate(duckdb_query_duration_seconds_bucket[5m]))
	          > 1
	        for: 5m
	        annotations:
	          summary: "p95 catalog query latency: {{ $value }}s"

# See Also

  - internal/middleware: HTTP middleware with metrics integration
  - internal/catalog: Database metrics recording
  - internal/recommend: Pipeline stage metrics
  - https://prometheus.io/docs/practices/naming/: Metric naming conventions
*/
package metrics
