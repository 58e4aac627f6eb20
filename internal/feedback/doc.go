// Eatsential - Health-Aware Meal Recommendation Engine
// Copyright 2026 Taylor Brown (TaylorBrown96)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TaylorBrown96/CSC510-proj3

// Package feedback stores per-user meal and restaurant feedback in an
// embedded BadgerDB key-value store.
//
// # Overview
//
// Feedback is the only user-generated data the service persists. Each
// (user, item type, item) triple holds at most one record: submitting
// feedback for an item the user already rated overwrites the stored record
// in place, preserving its identity. The recommendation pipeline reads
// feedback fresh on every request so a new like or dislike takes effect
// immediately; feedback is never cached.
//
// # Architecture
//
//   - feedback.go: store lifecycle (Open, Close, Ping) and value-log GC
//   - records.go: Submit, States, and UserFeedback operations
//   - errors.go: StoreError wrapper and sentinel errors
//
// # Storage Technology
//
// Feedback is a point-lookup and prefix-scan workload with no relational
// shape, so it lives in BadgerDB rather than alongside the catalog in
// DuckDB. Records are stored as JSON values under keys of the form
//
//	feedback/<user_id>/<item_type>/<item_id>
//
// so a point read answers "has this user rated this item" and a single
// prefix scan yields everything one user has ever rated.
//
// # Durability
//
// Disk-backed stores open with synchronous writes: a submission is
// acknowledged to the client only after it is durable. Unlike generator
// failures, which degrade silently, a failed feedback write is surfaced to
// the caller as a *StoreError.
//
// # Example
//
//	store, err := feedback.Open(&cfg.Feedback)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer store.Close()
//
//	rec := &feedback.Record{
//		UserID:       "user-demo-alice",
//		ItemID:       "item-pad-thai",
//		ItemType:     feedback.ItemTypeMeal,
//		FeedbackType: feedback.TypeLike,
//	}
//	if err := store.Submit(ctx, rec); err != nil {
//		return err
//	}
//
// # Thread Safety
//
// All methods are safe for concurrent use. BadgerDB transactions provide
// isolation; the store itself only guards its closed flag.
package feedback
