// Eatsential - Health-Aware Meal Recommendation Engine
// Copyright 2026 Taylor Brown (TaylorBrown96)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TaylorBrown96/CSC510-proj3

package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/TaylorBrown96/CSC510-proj3/internal/metrics"
)

// Snapshot cache keys. Whole-catalog reads always use the same key, so the
// hit rate is bounded only by the TTL.
const (
	menuItemsCacheKey   = "catalog:menu_items"
	restaurantsCacheKey = "catalog:restaurants"
	allergensCacheKey   = "catalog:allergens"
)

// MenuItems returns every menu item with its restaurant fields and
// allergen/diet-tag relations attached. This is the candidate pool the
// recommendation pipeline scores against.
//
// Results are served from the snapshot cache for the configured TTL; a miss
// costs three sequential scans (items+restaurants join, allergen relations,
// diet-tag relations) merged in memory. The returned slice may be shared
// across concurrent requests and must be treated as read-only.
//
// Ordering is deterministic (by item ID) so baseline scoring is reproducible
// run to run.
//
// Performance: ~5-15ms uncached for a catalog of a few thousand items;
// sub-microsecond cached.
func (s *Store) MenuItems(ctx context.Context) ([]MenuItem, error) {
	if cached, ok := s.snapshots.Get(menuItemsCacheKey); ok {
		metrics.RecordCacheHit("snapshot")
		return cached.([]MenuItem), nil
	}
	metrics.RecordCacheMiss("snapshot")

	ctx, cancel := s.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	items, err := s.loadMenuItems(ctx)
	metrics.RecordDBQuery("select", "menu_items", time.Since(start), err)
	if err != nil {
		return nil, upstreamErr("menu items", err)
	}

	s.snapshots.Set(menuItemsCacheKey, items)
	return items, nil
}

// loadMenuItems reads the menu item rows and merges in the relation tables.
func (s *Store) loadMenuItems(ctx context.Context) ([]MenuItem, error) {
	query := `
	SELECT
		m.id,
		m.restaurant_id,
		r.name,
		COALESCE(r.place_id, ''),
		m.name,
		COALESCE(m.description, ''),
		r.cuisine,
		m.price,
		m.calories
	FROM menu_items m
	JOIN restaurants r ON m.restaurant_id = r.id
	ORDER BY m.id`

	rows, err := s.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query menu items: %w", err)
	}
	defer rows.Close()

	// Initialize with empty slice instead of nil to ensure consistent JSON serialization
	items := []MenuItem{}
	index := make(map[string]int)
	for rows.Next() {
		var m MenuItem
		var calories sql.NullInt32
		err := rows.Scan(
			&m.ID, &m.RestaurantID, &m.RestaurantName, &m.RestaurantPlaceID,
			&m.Name, &m.Description, &m.Cuisine, &m.Price, &calories,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		if calories.Valid {
			c := int(calories.Int32)
			m.Calories = &c
		}
		m.DietTags = []string{}
		m.AllergenIDs = []string{}
		index[m.ID] = len(items)
		items = append(items, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating menu items: %w", err)
	}

	if err := s.attachRelations(ctx, items, index,
		`SELECT menu_item_id, allergen_id FROM menu_item_allergens ORDER BY menu_item_id, allergen_id`,
		func(m *MenuItem, v string) { m.AllergenIDs = append(m.AllergenIDs, v) },
	); err != nil {
		return nil, fmt.Errorf("failed to load allergen relations: %w", err)
	}

	if err := s.attachRelations(ctx, items, index,
		`SELECT menu_item_id, diet_tag FROM menu_item_diet_tags ORDER BY menu_item_id, diet_tag`,
		func(m *MenuItem, v string) { m.DietTags = append(m.DietTags, v) },
	); err != nil {
		return nil, fmt.Errorf("failed to load diet tag relations: %w", err)
	}

	return items, nil
}

// attachRelations scans (menu_item_id, value) pairs and appends each value
// onto its item. Rows for unknown item IDs are skipped; relation tables may
// briefly reference items removed by the catalog owner.
func (s *Store) attachRelations(ctx context.Context, items []MenuItem, index map[string]int, query string, attach func(*MenuItem, string)) error {
	rows, err := s.conn.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var itemID, value string
		if err := rows.Scan(&itemID, &value); err != nil {
			return err
		}
		if i, ok := index[itemID]; ok {
			attach(&items[i], value)
		}
	}
	return rows.Err()
}

// Restaurants returns every restaurant with its menu aggregates: average
// menu price (and the tier derived from it) and item count. Used by
// restaurant-level recommendations. Cached alongside the menu item snapshot.
func (s *Store) Restaurants(ctx context.Context) ([]Restaurant, error) {
	if cached, ok := s.snapshots.Get(restaurantsCacheKey); ok {
		metrics.RecordCacheHit("snapshot")
		return cached.([]Restaurant), nil
	}
	metrics.RecordCacheMiss("snapshot")

	ctx, cancel := s.ensureContext(ctx)
	defer cancel()

	query := `
	SELECT
		r.id,
		r.name,
		r.cuisine,
		COALESCE(r.place_id, ''),
		COALESCE(r.address, ''),
		COALESCE(AVG(m.price), 0) AS avg_price,
		COUNT(m.id) AS item_count
	FROM restaurants r
	LEFT JOIN menu_items m ON m.restaurant_id = r.id
	GROUP BY r.id, r.name, r.cuisine, r.place_id, r.address
	ORDER BY r.id`

	start := time.Now()
	restaurants, err := queryAndScan(ctx, s.conn, query, nil, func(rows *sql.Rows) (Restaurant, error) {
		var r Restaurant
		err := rows.Scan(&r.ID, &r.Name, &r.Cuisine, &r.PlaceID, &r.Address, &r.AvgPrice, &r.ItemCount)
		if err != nil {
			return r, err
		}
		r.PriceTier = PriceTier(r.AvgPrice)
		return r, nil
	})
	metrics.RecordDBQuery("select", "restaurants", time.Since(start), err)
	if err != nil {
		return nil, upstreamErr("restaurants", fmt.Errorf("failed to query restaurants: %w", err))
	}

	s.snapshots.Set(restaurantsCacheKey, restaurants)
	return restaurants, nil
}

// Allergens returns the allergen vocabulary ordered by name. The safety
// filter uses it to resolve a profile's allergen ids into the text terms it
// screens item names and descriptions with, covering items whose allergen
// tags are missing or incomplete.
func (s *Store) Allergens(ctx context.Context) ([]Allergen, error) {
	if cached, ok := s.snapshots.Get(allergensCacheKey); ok {
		metrics.RecordCacheHit("snapshot")
		return cached.([]Allergen), nil
	}
	metrics.RecordCacheMiss("snapshot")

	ctx, cancel := s.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	allergens, err := queryAndScan(ctx, s.conn, `SELECT id, name FROM allergens ORDER BY name`, nil,
		func(rows *sql.Rows) (Allergen, error) {
			var a Allergen
			err := rows.Scan(&a.ID, &a.Name)
			return a, err
		})
	metrics.RecordDBQuery("select", "allergens", time.Since(start), err)
	if err != nil {
		return nil, upstreamErr("allergens", fmt.Errorf("failed to query allergens: %w", err))
	}

	s.snapshots.Set(allergensCacheKey, allergens)
	return allergens, nil
}

// HealthProfile returns the user's allergies and dietary preferences.
//
// A user the catalog does not know yields an empty profile, not an error:
// the pipeline then filters nothing and scores without dietary signals.
// Profiles are served from the LFU cache; staleness is bounded by the
// snapshot TTL, so allergy changes made through the profile service take
// effect within one TTL window.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//   - userID: The gateway-provided user ID (X-User-ID)
func (s *Store) HealthProfile(ctx context.Context, userID string) (*HealthProfile, error) {
	cacheKey := "profile:" + userID
	if cached, ok := s.profiles.Get(cacheKey); ok {
		metrics.RecordCacheHit("profile")
		return cached.(*HealthProfile), nil
	}
	metrics.RecordCacheMiss("profile")

	ctx, cancel := s.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	profile, err := s.loadHealthProfile(ctx, userID)
	metrics.RecordDBQuery("select", "health_profile", time.Since(start), err)
	if err != nil {
		return nil, upstreamErr("health profile", err)
	}

	s.profiles.SetWithTTL(cacheKey, profile, s.snapshotTTL)
	metrics.UpdateCacheSize("profile", int(s.profiles.GetStats().TotalKeys))
	return profile, nil
}

func (s *Store) loadHealthProfile(ctx context.Context, userID string) (*HealthProfile, error) {
	profile := &HealthProfile{
		UserID:      userID,
		Allergies:   []Allergy{},
		Preferences: []DietaryPreference{},
	}

	userStmt, err := s.getStmt(ctx, `SELECT username FROM users WHERE id = ?`)
	if err != nil {
		return nil, err
	}
	err = userStmt.QueryRowContext(ctx, userID).Scan(&profile.Username)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	allergyStmt, err := s.getStmt(ctx, `
	SELECT ua.allergen_id, a.name, ua.severity
	FROM user_allergies ua
	JOIN allergens a ON ua.allergen_id = a.id
	WHERE ua.user_id = ?
	ORDER BY ua.allergen_id`)
	if err != nil {
		return nil, err
	}
	rows, err := allergyStmt.QueryContext(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query user allergies: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var a Allergy
		if err := rows.Scan(&a.AllergenID, &a.AllergenName, &a.Severity); err != nil {
			return nil, fmt.Errorf("failed to scan allergy: %w", err)
		}
		profile.Allergies = append(profile.Allergies, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating allergies: %w", err)
	}

	prefStmt, err := s.getStmt(ctx, `
	SELECT preference, is_strict
	FROM user_dietary_preferences
	WHERE user_id = ?
	ORDER BY preference`)
	if err != nil {
		return nil, err
	}
	prefRows, err := prefStmt.QueryContext(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query dietary preferences: %w", err)
	}
	defer prefRows.Close()
	for prefRows.Next() {
		var p DietaryPreference
		if err := prefRows.Scan(&p.Preference, &p.IsStrict); err != nil {
			return nil, fmt.Errorf("failed to scan dietary preference: %w", err)
		}
		profile.Preferences = append(profile.Preferences, p)
	}
	if err = prefRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating dietary preferences: %w", err)
	}

	return profile, nil
}

// scanFunc is a function that scans a single row into a result type
type scanFunc[T any] func(*sql.Rows) (T, error)

// queryAndScan executes a query and scans all rows using the provided scan function
func queryAndScan[T any](ctx context.Context, db *sql.DB, query string, args []interface{}, scan scanFunc[T]) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// Initialize with empty slice instead of nil to ensure consistent JSON serialization
	results := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
