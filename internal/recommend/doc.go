// Eatsential - Health-Aware Meal Recommendation Engine
// Copyright 2026 Taylor Brown (TaylorBrown96)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TaylorBrown96/CSC510-proj3

// Package recommend implements the health-aware recommendation pipeline for
// meals and restaurants.
//
// # Architecture
//
// Every request flows through the same five stages, in order:
//
//   - Safety Filter: drops candidates sharing any allergen with the user's
//     health profile (zero tolerance, severity never consulted) and
//     candidates conflicting with strict dietary preferences
//   - Candidate Generator: either the deterministic baseline scorer or the
//     LLM-backed generative ranker, selected per request
//   - Safety Re-Check: generative output is untrusted, so the Safety Filter
//     runs again on whatever the generator produced
//   - Feedback Adjuster: removes items the user disliked and boosts items
//     (and restaurants) the user liked
//   - Diversity Selector: caps how many results a single restaurant can
//     occupy while preserving score order
//
// # Design Principles
//
//   - Safe by construction: no candidate carrying a profile allergen can
//     reach the response, no matter which generator produced it
//   - Deterministic fallback: any generative failure (timeout, malformed
//     reply, empty or all-zero output) silently falls back to the baseline
//     generator; the caller sees a normal response with a generator marker
//   - Pure stages: filtering, adjustment, and selection are pure functions
//     over a per-request snapshot, so re-applying a stage to its own output
//     changes nothing
//   - Observable: stage drop counts, fallback reasons, and latencies are
//     exported as Prometheus metrics
//
// # Usage
//
//	cfg := recommend.DefaultConfig()
//	engine, err := recommend.NewEngine(cfg, catalogStore, feedbackStore, llmClient, logger)
//	if err != nil {
//	    return err
//	}
//
//	resp, err := engine.RecommendMeals(ctx, recommend.Request{
//	    UserID: userID,
//	    Filters: recommend.Filters{
//	        Diet:       []string{"vegan"},
//	        PriceRange: "$$",
//	    },
//	    Limit: 10,
//	})
//
// # Thread Safety
//
// The engine is safe for concurrent use. It holds no mutable state between
// requests: catalog snapshots are read through the catalog store's own
// cache, and feedback signals are read fresh at the start of each request.
package recommend
