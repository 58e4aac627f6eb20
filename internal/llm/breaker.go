// Eatsential - Health-Aware Meal Recommendation Engine
// Copyright 2026 Taylor Brown (TaylorBrown96)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TaylorBrown96/CSC510-proj3

package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/TaylorBrown96/CSC510-proj3/internal/config"
	"github.com/TaylorBrown96/CSC510-proj3/internal/logging"
	"github.com/TaylorBrown96/CSC510-proj3/internal/metrics"
)

const defaultBreakerFailures = 5

// resilientClient wraps a Client with client-side rate limiting and a
// circuit breaker. The limiter runs first so throttled requests never count
// against the breaker; the per-call timeout applies only to the backend
// call itself.
type resilientClient struct {
	next        Client
	cb          *gobreaker.CircuitBreaker[string]
	limiter     *rate.Limiter
	timeout     time.Duration
	breakerName string
}

func newResilientClient(next Client, cfg *config.LLMConfig) *resilientClient {
	breakerName := "llm-" + next.Provider()

	failures := cfg.BreakerFailures
	if failures == 0 {
		failures = defaultBreakerFailures
	}

	// Initialize circuit breaker state metrics
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0) // 0 = closed

	cb := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: cfg.BreakerMaxRequests,
		Interval:    cfg.BreakerInterval,
		Timeout:     cfg.BreakerTimeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			shouldTrip := counts.ConsecutiveFailures >= failures
			if shouldTrip {
				logging.Warn().
					Uint32("consecutive_failures", counts.ConsecutiveFailures).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})

	return &resilientClient{
		next:        next,
		cb:          cb,
		limiter:     newLimiter(cfg),
		timeout:     cfg.Timeout,
		breakerName: breakerName,
	}
}

// newLimiter builds the client-side limiter. A non-positive rate disables
// throttling entirely.
func newLimiter(cfg *config.LLMConfig) *rate.Limiter {
	limit := rate.Limit(cfg.RequestsPerSecond)
	if cfg.RequestsPerSecond <= 0 {
		limit = rate.Inf
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(limit, burst)
}

// Complete waits for the rate limiter, then runs the backend call under the
// circuit breaker. A rejected call (open breaker or half-open saturation)
// returns ErrUnavailable without reaching the backend.
func (r *resilientClient) Complete(ctx context.Context, prompt string) (string, error) {
	waitStart := time.Now()
	if err := r.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}
	metrics.RecordLLMThrottleDelay(time.Since(waitStart))

	start := time.Now()
	reply, err := r.cb.Execute(func() (string, error) {
		callCtx := ctx
		if r.timeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, r.timeout)
			defer cancel()
		}
		return r.next.Complete(callCtx, prompt)
	})
	metrics.RecordLLMRequest(r.next.Provider(), time.Since(start), err)

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(r.breakerName, "rejected").Inc()
			logging.Warn().Err(err).Msg("[CIRCUIT BREAKER] LLM call rejected")
			return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		metrics.CircuitBreakerRequests.WithLabelValues(r.breakerName, "failure").Inc()
		return "", err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(r.breakerName, "success").Inc()
	return reply, nil
}

func (r *resilientClient) Provider() string {
	return r.next.Provider()
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
