// Eatsential - Health-Aware Meal Recommendation Engine
// Copyright 2026 Taylor Brown (TaylorBrown96)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TaylorBrown96/CSC510-proj3

/*
migrations.go - Versioned Schema Migration Support

Tracks applied migrations in a schema_migrations table so each migration
runs exactly once per database file.

SCHEMA STRATEGY (Pre-Release):
The full catalog schema lives in the CREATE TABLE statements in schema.go;
getMigrations() is empty. The service has never been publicly released, so
no existing databases need migrating and a single source of truth is
cleaner and faster.

POST-RELEASE MIGRATION STRATEGY:
After the first public release with real users, add new migrations here
starting from version 1. Migrations MUST be append-only - never modify or
remove an existing migration once users have databases with data.
*/

//nolint:staticcheck // File documentation, not package doc
package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/TaylorBrown96/CSC510-proj3/internal/logging"
)

// Migration represents a versioned database migration.
type Migration struct {
	Version     int       // Unique version number (monotonically increasing)
	Name        string    // Human-readable migration name
	Description string    // Description of what this migration does
	SQL         string    // SQL statement to execute
	AppliedAt   time.Time // When the migration was applied (populated on query)
}

// schemaMigrationsTable creates the migration tracking table
const schemaMigrationsTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT,
	applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// getMigrations returns all versioned migrations in order.
//
// PRE-RELEASE: Empty; the complete schema lives in schema.go.
//
// POST-RELEASE: Add new migrations here starting from version 1. Example:
//
//	{Version: 1, Name: "add_spice_level", Description: "Add spice_level to menu_items",
//	 SQL: `ALTER TABLE menu_items ADD COLUMN IF NOT EXISTS spice_level INTEGER;`},
func (s *Store) getMigrations() []Migration {
	return []Migration{
		// Post-release migrations will be added here.
	}
}

// createMigrationsTable creates the schema_migrations table if it doesn't exist
func (s *Store) createMigrationsTable(ctx context.Context) error {
	_, err := s.conn.ExecContext(ctx, schemaMigrationsTable)
	return err
}

// getAppliedMigrations returns a map of version -> Migration for all applied migrations
func (s *Store) getAppliedMigrations(ctx context.Context) (map[int]Migration, error) {
	rows, err := s.conn.QueryContext(ctx, `SELECT version, name, description, applied_at FROM schema_migrations ORDER BY version`)
	if err != nil {
		return nil, fmt.Errorf("failed to query applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]Migration)
	for rows.Next() {
		var m Migration
		if err := rows.Scan(&m.Version, &m.Name, &m.Description, &m.AppliedAt); err != nil {
			return nil, fmt.Errorf("failed to scan migration row: %w", err)
		}
		applied[m.Version] = m
	}
	return applied, rows.Err()
}

// runVersionedMigrations executes only new migrations that haven't been applied yet.
func (s *Store) runVersionedMigrations() error {
	ctx, cancel := schemaContext()
	defer cancel()

	// Ensure migrations table exists
	if err := s.createMigrationsTable(ctx); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	// Get already applied migrations
	applied, err := s.getAppliedMigrations(ctx)
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	// Apply new migrations in order
	newMigrations := 0
	for _, m := range s.getMigrations() {
		if _, exists := applied[m.Version]; exists {
			continue // Already applied
		}

		if _, err := s.conn.ExecContext(ctx, m.SQL); err != nil {
			return fmt.Errorf("failed to execute migration v%d (%s): %w", m.Version, m.Name, err)
		}

		// Record migration as applied
		_, err := s.conn.ExecContext(ctx,
			`INSERT INTO schema_migrations (version, name, description) VALUES (?, ?, ?)`,
			m.Version, m.Name, m.Description)
		if err != nil {
			return fmt.Errorf("failed to record migration v%d: %w", m.Version, err)
		}

		newMigrations++
	}

	if newMigrations > 0 {
		logging.Info().Int("count", newMigrations).Msg("Applied new catalog migrations")
	}

	return nil
}

// SchemaVersion returns the highest applied migration version
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	ctx, cancel := s.ensureContext(ctx)
	defer cancel()

	var version int
	err := s.conn.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}
