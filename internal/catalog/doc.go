// Eatsential - Health-Aware Meal Recommendation Engine
// Copyright 2026 Taylor Brown (TaylorBrown96)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TaylorBrown96/CSC510-proj3

// Package catalog provides read access to the restaurant and menu catalog
// that the recommendation pipeline scores against.
//
// # Overview
//
// The catalog is collaborator-owned reference data: restaurants, menu items,
// the allergen vocabulary, and per-user health profiles (allergies and
// dietary preferences). This service never mutates it on behalf of users;
// it reads snapshots for scoring and resolves restaurant metadata for
// responses. The only write path is the config-gated demo seeder used for
// local development and CI.
//
// # Architecture
//
// The package is organized into focused files:
//
//   - catalog.go: Store lifecycle (connection, initialization, close)
//   - schema.go: Table creation and index management
//   - migrations.go: Versioned schema migration tracking
//   - queries.go: Snapshot and profile read operations
//   - seed.go: Deterministic demo catalog for development and tests
//   - models.go: Row types and price-tier helpers
//   - errors.go: UpstreamError and close helpers
//
// # Database Technology
//
// The catalog is an embedded DuckDB database accessed through database/sql:
//   - Single-file storage, no external service to operate
//   - OLAP-friendly for the whole-catalog aggregate reads this package does
//   - CGO-based driver (github.com/duckdb/duckdb-go/v2)
//
// # Read Model
//
// Recommendation requests read the catalog through two caches:
//
//   - Whole-catalog snapshots (menu items, restaurants, allergen vocabulary)
//     sit in a TTL cache. Every request reads the same keys, so misses only
//     occur at TTL boundaries.
//   - Per-user health profiles sit in an LFU cache sized for the active user
//     population. Hot users stay resident; one-off lookups age out first.
//
// Feedback is never cached anywhere in the service: likes and dislikes must
// take effect on the next request.
//
// Returned slices may be shared across concurrent requests. Callers must
// treat them as read-only and copy what they intend to mutate.
//
// # Error Handling
//
// Catalog data is required for every recommendation; there is no degraded
// mode without it. All read failures are wrapped in *UpstreamError so the
// API layer can translate them into a 500 response:
//
//	items, err := store.MenuItems(ctx)
//	if err != nil {
//	    var ue *catalog.UpstreamError
//	    if errors.As(err, &ue) {
//	        // surface as an upstream dependency failure
//	    }
//	}
//
// # Example
//
//	cfg, _ := config.Load()
//	store, err := catalog.New(&cfg.Database, cfg.Recommend.SnapshotCacheTTL)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
//	profile, err := store.HealthProfile(ctx, userID)
//	items, err := store.MenuItems(ctx)
//
// # Thread Safety
//
// Store is safe for concurrent use. The underlying *sql.DB pools
// connections, prepared statements are cached behind an RWMutex, and both
// caches are internally synchronized.
package catalog
