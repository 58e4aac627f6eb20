// Eatsential - Health-Aware Meal Recommendation Engine
// Copyright 2026 Taylor Brown (TaylorBrown96)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TaylorBrown96/CSC510-proj3

package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus Metrics Integration for Production Observability
// This package provides comprehensive instrumentation for:
// - Database query performance (DuckDB catalog)
// - API endpoint latency and throughput
// - Recommendation pipeline stages and fallbacks
// - LLM provider calls and circuit breaker state
// - Feedback store operations
// - Cache efficiency

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets, // 0.005s, 0.01s, 0.025s, 0.05s, 0.1s, 0.25s, 0.5s, 1s, 2.5s, 5s, 10s
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	DBConnectionPoolSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "duckdb_connection_pool_size",
			Help: "Current number of database connections in use",
		},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}, // Optimized for API latency
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Recommendation Pipeline Metrics
	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "End-to-end duration of recommendation requests in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}, // LLM calls dominate the tail
		},
		[]string{"item_type", "generator"}, // generator: "llm", "baseline"
	)

	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Total number of recommendation requests served",
		},
		[]string{"item_type", "generator"},
	)

	GeneratorFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generator_fallbacks_total",
			Help: "Total number of silent fallbacks from the LLM generator to the baseline",
		},
		[]string{"reason"}, // "timeout", "llm_error", "breaker_open", "malformed_reply", "empty_candidates", "zero_scores"
	)

	CandidatesDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_candidates_dropped_total",
			Help: "Total number of candidates removed by each pipeline stage",
		},
		[]string{"stage"}, // "safety", "dislike", "diversity_cap", "limit"
	)

	CandidatesReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_candidates_returned",
			Help:    "Number of recommendations returned per request",
			Buckets: []float64{1, 2, 3, 5, 10, 20, 50},
		},
	)

	// LLM Provider Metrics
	LLMRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llm_request_duration_seconds",
			Help:    "Duration of LLM completion calls in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"provider"},
	)

	LLMRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_requests_total",
			Help: "Total number of LLM completion calls",
		},
		[]string{"provider", "result"}, // result: "success", "timeout", "rejected", "error"
	)

	LLMThrottleDelay = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "llm_throttle_delay_seconds",
			Help:    "Time spent waiting on the client-side rate limiter before LLM calls",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"}, // "snapshot", "profile"
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Current number of cached entries",
		},
		[]string{"cache_type"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Total number of cache evictions (TTL expiry or LRU)",
		},
		[]string{"cache_type"},
	)

	// Feedback Store Metrics
	FeedbackSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedback_submissions_total",
			Help: "Total number of feedback submissions recorded",
		},
		[]string{"item_type", "feedback_type"},
	)

	FeedbackStoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedback_store_errors_total",
			Help: "Total number of feedback store operation errors",
		},
		[]string{"operation"}, // "submit", "list", "gc"
	)

	FeedbackGCRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedback_gc_runs_total",
			Help: "Total number of Badger value-log GC cycles",
		},
		[]string{"result"}, // "reclaimed", "nothing", "error"
	)

	FeedbackGCDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "feedback_gc_duration_seconds",
			Help:    "Duration of Badger value-log GC cycles in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		errorType := err.Error()
		// Truncate long error messages
		if len(errorType) > 50 {
			errorType = errorType[:50]
		}
		DBQueryErrors.WithLabelValues(operation, table, errorType).Inc()
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendation records a served recommendation request
func RecordRecommendation(itemType, generator string, duration time.Duration, returned int) {
	RecommendationDuration.WithLabelValues(itemType, generator).Observe(duration.Seconds())
	RecommendationsTotal.WithLabelValues(itemType, generator).Inc()
	CandidatesReturned.Observe(float64(returned))
}

// RecordGeneratorFallback records a silent fallback from the LLM generator
// to the baseline generator
func RecordGeneratorFallback(reason string) {
	GeneratorFallbacks.WithLabelValues(reason).Inc()
}

// RecordCandidatesDropped records candidates removed by a pipeline stage
func RecordCandidatesDropped(stage string, count int) {
	if count <= 0 {
		return
	}
	CandidatesDropped.WithLabelValues(stage).Add(float64(count))
}

// RecordLLMRequest records an LLM completion call and classifies its outcome
func RecordLLMRequest(provider string, duration time.Duration, err error) {
	LLMRequestDuration.WithLabelValues(provider).Observe(duration.Seconds())

	result := "success"
	if err != nil {
		errMsg := err.Error()
		switch {
		case strings.Contains(errMsg, "deadline exceeded"), strings.Contains(errMsg, "timeout"):
			result = "timeout"
		case strings.Contains(errMsg, "circuit breaker"), strings.Contains(errMsg, "too many requests"):
			result = "rejected"
		default:
			result = "error"
		}
	}
	LLMRequestsTotal.WithLabelValues(provider, result).Inc()
}

// RecordLLMThrottleDelay records time spent waiting on the rate limiter
func RecordLLMThrottleDelay(wait time.Duration) {
	LLMThrottleDelay.Observe(wait.Seconds())
}

// RecordCacheHit records a cache hit for the given cache type
func RecordCacheHit(cacheType string) {
	CacheHits.WithLabelValues(cacheType).Inc()
}

// RecordCacheMiss records a cache miss for the given cache type
func RecordCacheMiss(cacheType string) {
	CacheMisses.WithLabelValues(cacheType).Inc()
}

// RecordCacheEviction records a cache eviction for the given cache type
func RecordCacheEviction(cacheType string) {
	CacheEvictions.WithLabelValues(cacheType).Inc()
}

// UpdateCacheSize updates the entry-count gauge for the given cache type
func UpdateCacheSize(cacheType string, entries int) {
	CacheSize.WithLabelValues(cacheType).Set(float64(entries))
}

// RecordFeedbackSubmission records a stored feedback event
func RecordFeedbackSubmission(itemType, feedbackType string) {
	FeedbackSubmissions.WithLabelValues(itemType, feedbackType).Inc()
}

// RecordFeedbackStoreError records a failed feedback store operation
func RecordFeedbackStoreError(operation string) {
	FeedbackStoreErrors.WithLabelValues(operation).Inc()
}

// RecordFeedbackGC records the outcome of a Badger value-log GC cycle.
// Badger returns ErrNoRewrite when a cycle found nothing to reclaim; that
// outcome is tracked separately from real errors.
func RecordFeedbackGC(duration time.Duration, result string) {
	FeedbackGCDuration.Observe(duration.Seconds())
	FeedbackGCRuns.WithLabelValues(result).Inc()
}
