// Eatsential - Health-Aware Meal Recommendation Engine
// Copyright 2026 Taylor Brown (TaylorBrown96)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TaylorBrown96/CSC510-proj3

// Package llm provides the completion client the generative recommender
// talks to.
//
// # Overview
//
// The package exposes a single-method Client interface and hides which
// backend serves it. Production traffic goes to any OpenAI-compatible
// endpoint via langchaingo; development and CI run against a deterministic
// mock that needs no credentials. Provider selection follows
// config.LLMConfig.EffectiveProvider: an empty API key or the literal
// "test" selects the mock, so a fresh checkout works offline.
//
// # Resilience
//
// Every client, mock included, is wrapped in a resilience layer:
//
//   - a client-side rate limiter (golang.org/x/time/rate) that waits before
//     each call to protect the upstream quota, and
//   - a circuit breaker (sony/gobreaker) that rejects calls outright after
//     repeated failures, returning ErrUnavailable without touching the
//     backend.
//
// Callers treat every error from Complete as "no generative candidates this
// request" and fall back to the baseline generator; ErrUnavailable just
// means the decision was made without a network round trip.
//
// # Example
//
//	client, err := llm.New(&cfg.LLM)
//	if err != nil {
//		log.Fatal(err)
//	}
//	reply, err := client.Complete(ctx, prompt)
//	if err != nil {
//		// fall back, never surface
//	}
package llm
