// Eatsential - Health-Aware Meal Recommendation Engine
// Copyright 2026 Taylor Brown (TaylorBrown96)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TaylorBrown96/CSC510-proj3

/*
Package cache provides thread-safe in-memory caching with TTL support.

This package implements the caching layer between the recommendation pipeline
and the DuckDB catalog, reducing database load and keeping recommendation
latency dominated by scoring rather than by repeated reference-data queries.

# Overview

The cache provides:
  - Thread-safe concurrent access (sync.RWMutex)
  - Time-to-live (TTL) expiration for automatic cleanup
  - Simple key-value storage with any value type (interface{})
  - Lazy expiration checking (on Get operations)
  - Optional LFU eviction for bounded, skewed-access workloads

# Use Cases

Primary use cases:
  - Catalog snapshots: menu items with allergen and diet-tag relations (5-minute TTL)
  - Restaurant lists for restaurant-level recommendations (5-minute TTL)
  - Per-user health profiles: allergies and dietary preferences (LFU, 5-minute TTL)
  - Parameterized catalog queries keyed via GenerateKey

Feedback is never cached. Likes and dislikes must take effect on the next
request, so the feedback store is read directly on every recommendation.

# Cache Selection

Two implementations sit behind the Cacher interface; NewCacher picks one
from a CacheConfig:

	TTL Cache (CacheTypeTTL, the default):
	  - Unbounded, expiration only
	  - Fits whole-catalog snapshots: one hot key read by every request

	LFU Cache (CacheTypeLFU):
	  - Bounded capacity with least-frequently-used eviction
	  - Optional OnEvict callback, used to feed the eviction counter in
	    the metrics package
	  - Fits per-user health profiles: a small set of active users
	    generates most recommendation traffic, so their profiles stay
	    resident while one-off lookups age out first

# Usage Example

Basic caching:

	import "github.com/TaylorBrown96/CSC510-proj3/internal/cache"

	// Create cache with the configured snapshot TTL
	c := cache.NewCacher(cache.CacheConfig{
	    Type: cache.CacheTypeTTL,
	    TTL:  cfg.Recommend.SnapshotCacheTTL,
	})

	// Store value
	c.Set("catalog:snapshot", snapshot)

	// Retrieve value
	if value, ok := c.Get("catalog:snapshot"); ok {
	    snapshot := value.(*Snapshot)
	    // Use cached snapshot
	}

	// Delete specific key
	c.Delete("catalog:snapshot")

	// Clear entire cache
	c.Clear()

Catalog store caching pattern:

	func (s *Store) Snapshot(ctx context.Context) (*Snapshot, error) {
	    cacheKey := "catalog:snapshot"

	    // Check cache
	    if cached, ok := s.snapshots.Get(cacheKey); ok {
	        metrics.RecordCacheHit("snapshot")
	        return cached.(*Snapshot), nil
	    }
	    metrics.RecordCacheMiss("snapshot")

	    // Cache miss - query DuckDB
	    snapshot, err := s.loadSnapshot(ctx)
	    if err != nil {
	        return nil, err
	    }

	    // Store in cache
	    s.snapshots.Set(cacheKey, snapshot)

	    return snapshot, nil
	}

Parameterized cache keys:

	// Build cache key from query parameters
	type menuItemsQuery struct {
	    CuisineTypes []string
	    MaxItems     int
	}

	cacheKey := cache.GenerateKey("MenuItems", menuItemsQuery{
	    CuisineTypes: []string{"italian", "thai"},
	    MaxItems:     200,
	})
	if cached, ok := c.Get(cacheKey); ok {
	    return cached.([]MenuItem), nil
	}

# Cache Invalidation

The cache supports two invalidation strategies:

1. TTL-based expiration (automatic):
  - Items expire after the configured TTL
  - Checked lazily during Get operations
  - Background cleanup sweeps expired entries every 5 minutes

2. Manual invalidation (on data changes):
  - Clear() removes all cache entries
  - Delete(key) removes specific entry
  - Seeding or reloading the catalog triggers a full clear
  - Updating a user's allergies or preferences deletes "profile:<user_id>"

Example: Clear cache after reseeding the catalog

	// In catalog store
	func (s *Store) Seed(ctx context.Context) error {
	    if err := s.insertFixtures(ctx); err != nil {
	        return err
	    }

	    // Drop stale snapshots so recommendations see the new menu
	    s.snapshots.Clear()
	    return nil
	}

# Cache Key Conventions

Use consistent key prefixes for organization:

	catalog:snapshot                      // Full candidate snapshot
	catalog:restaurants                   // Restaurant list
	profile:<user_id>                     // Per-user health profile
	MenuItems:<hash>                      // Parameterized queries (GenerateKey)

# Performance Characteristics

  - Get operation: O(1) hash map lookup + TTL check (~100ns)
  - Set operation: O(1) hash map insert with lock (~200ns)
  - Delete operation: O(1) hash map delete with lock (~150ns)
  - Clear operation: O(1) map reassignment (~50ns)
  - LFU Get/Set/evict: O(1) via frequency lists
  - Memory overhead: ~100 bytes per cached item (key + metadata)

# Memory Management

Cache memory grows with stored items:

	Estimated memory per item:
	  - Key string: len(key) bytes
	  - Item metadata: ~48 bytes (struct overhead)
	  - Value data: depends on cached type
	  - Total: ~100 bytes + value size

	Example with a 200-item catalog snapshot:
	  - 1 snapshot key × (100 bytes + ~500 bytes per candidate × 200)
	  - = ~100KB cache memory usage

The LFU profile cache is additionally bounded by capacity, so memory stays
predictable even with a large registered-user base.

# Thread Safety

All cache methods are thread-safe using sync.RWMutex:

  - Get: Acquires read lock (concurrent reads allowed)
  - Set: Acquires write lock (exclusive access)
  - Delete: Acquires write lock (exclusive access)
  - Clear: Acquires write lock (exclusive access)

Multiple goroutines can safely access the cache concurrently. The LFU cache
takes a write lock on Get as well, since reads mutate frequency lists.

# TTL Configuration

Recommended TTL values by use case:

	Catalog snapshots: 5 minutes (cfg.Recommend.SnapshotCacheTTL)
	  - Menus change rarely; staleness of a few minutes is acceptable
	  - Reduces the hot-path DuckDB load to one query burst per TTL window

	Health profiles: 5 minutes
	  - Allergy edits must propagate quickly; writes also delete the key
	  - Short TTL bounds the damage of any missed invalidation

	Restaurant lists: 5 minutes
	  - Same churn profile as the snapshot

	Feedback: never cached
	  - A dislike must suppress the item on the very next request

# Cache Hit Rate

Monitor cache effectiveness:

	stats := c.GetStats()
	total := stats.Hits + stats.Misses
	hitRate := float64(stats.Hits) / float64(total)

	if hitRate < 0.5 {
	    // Cache hit rate too low
	    // Consider increasing TTL or reviewing cache keys
	}

Hits and misses are also exported per cache type via the metrics package
(eatsential_cache_hits_total / eatsential_cache_misses_total with
cache_type="snapshot" or "profile").

Target hit rates:
  - Catalog snapshots: 95%+ (single hot key, misses only at TTL boundaries)
  - Health profiles: 70-80% (skewed per-user access, LFU keeps hot users)

# Limitations

The current implementation has intentional limitations for simplicity:

  - TTL cache has no maximum size limit (grows unbounded)
  - No background cleanup for the LFU cache (lazy + CleanupExpired)
  - No cache persistence (in-memory only)
  - No distributed caching (single instance)

These limitations are acceptable for the application's scale:
  - Small reference dataset (hundreds of menu items)
  - Single instance deployment
  - Predictable cache size (~1-10MB)
  - Automatic clearing on reseed

# Testing

The package includes comprehensive tests:
  - Basic operations (Get, Set, Delete, Clear)
  - TTL expiration behavior
  - LFU frequency tracking and eviction order
  - Concurrent access with race detector
  - Thread safety validation
  - Key generation stability for parameterized queries

Run tests with race detector:

	go test -race ./internal/cache

# Example: Profile Cache

Full example with an LFU cache and an eviction counter:

	profiles := cache.NewCacher(cache.CacheConfig{
	    Type:     cache.CacheTypeLFU,
	    TTL:      5 * time.Minute,
	    Capacity: 10000,
	    OnEvict:  func(string) { metrics.RecordCacheEviction("profile") },
	})

	func getProfile(userID string, load func() (*HealthProfile, error)) (*HealthProfile, error) {
	    key := "profile:" + userID

	    // Check cache
	    if cached, ok := profiles.Get(key); ok {
	        metrics.RecordCacheHit("profile")
	        return cached.(*HealthProfile), nil
	    }
	    metrics.RecordCacheMiss("profile")

	    // Cache miss - query database
	    profile, err := load()
	    if err != nil {
	        return nil, err
	    }

	    // Store in cache
	    profiles.Set(key, profile)

	    return profile, nil
	}

# See Also

  - internal/catalog: DuckDB store cached by this package
  - internal/recommend: Recommendation pipeline reading cached snapshots
  - internal/metrics: Prometheus counters fed by cache consumers
*/
package cache
