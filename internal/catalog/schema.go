// Eatsential - Health-Aware Meal Recommendation Engine
// Copyright 2026 Taylor Brown (TaylorBrown96)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TaylorBrown96/CSC510-proj3

/*
schema.go - Catalog Schema Management

This file manages the DuckDB catalog schema including table creation and
index management.

Tables:
  - restaurants: Restaurant identity, cuisine, and optional place metadata
  - menu_items: Dishes with price and optional nutrition data
  - allergens: The allergen vocabulary (stable slug IDs, display names)
  - menu_item_allergens: Item -> allergen relations (authoritative safety tags)
  - menu_item_diet_tags: Item -> diet tag relations (vegan, gluten_free, ...)
  - users: User identity reference rows
  - user_allergies: User -> allergen relations with informational severity
  - user_dietary_preferences: User diet preferences with strictness flag

Schema Strategy (Pre-Release):
All columns are defined in the initial CREATE TABLE statements. This provides
a single source of truth and fast startup with no migrations to run. After
the first public release, schema changes go through versioned migrations in
migrations.go instead.

Index Strategy:
Indexes cover the relation tables' lookup sides (item ID, user ID) and the
menu_items restaurant join. Whole-catalog reads are sequential scans by
design; the tables are small enough that scans beat index plans there.
*/

//nolint:staticcheck // File documentation, not package doc
package catalog

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the catalog tables
func (s *Store) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	queries := s.getTableCreationQueries()

	for _, query := range queries {
		if _, err := s.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}

	return nil
}

// getTableCreationQueries returns the table creation SQL statements
func (s *Store) getTableCreationQueries() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS restaurants (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			cuisine TEXT NOT NULL,
			place_id TEXT,
			address TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS menu_items (
			id TEXT PRIMARY KEY,
			restaurant_id TEXT NOT NULL,
			name TEXT NOT NULL,
			description TEXT,
			price DOUBLE NOT NULL,
			calories INTEGER,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS allergens (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS menu_item_allergens (
			menu_item_id TEXT NOT NULL,
			allergen_id TEXT NOT NULL,
			PRIMARY KEY (menu_item_id, allergen_id)
		)`,

		`CREATE TABLE IF NOT EXISTS menu_item_diet_tags (
			menu_item_id TEXT NOT NULL,
			diet_tag TEXT NOT NULL,
			PRIMARY KEY (menu_item_id, diet_tag)
		)`,

		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS user_allergies (
			user_id TEXT NOT NULL,
			allergen_id TEXT NOT NULL,
			severity TEXT NOT NULL DEFAULT 'moderate',
			PRIMARY KEY (user_id, allergen_id)
		)`,

		`CREATE TABLE IF NOT EXISTS user_dietary_preferences (
			user_id TEXT NOT NULL,
			preference TEXT NOT NULL,
			is_strict BOOLEAN NOT NULL DEFAULT FALSE,
			PRIMARY KEY (user_id, preference)
		)`,
	}
}

// createIndexes creates indexes for the relation lookups
func (s *Store) createIndexes() error {
	ctx, cancel := schemaContext()
	defer cancel()

	queries := s.getIndexQueries()

	for _, query := range queries {
		if _, err := s.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create index: %s: %w", query, err)
		}
	}

	return nil
}

// getIndexQueries returns the index creation SQL statements
func (s *Store) getIndexQueries() []string {
	return []string{
		`CREATE INDEX IF NOT EXISTS idx_menu_items_restaurant ON menu_items(restaurant_id)`,
		`CREATE INDEX IF NOT EXISTS idx_item_allergens_item ON menu_item_allergens(menu_item_id)`,
		`CREATE INDEX IF NOT EXISTS idx_item_diet_tags_item ON menu_item_diet_tags(menu_item_id)`,
		`CREATE INDEX IF NOT EXISTS idx_user_allergies_user ON user_allergies(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_user_preferences_user ON user_dietary_preferences(user_id)`,
	}
}
