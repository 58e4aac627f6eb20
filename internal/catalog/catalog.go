// Eatsential - Health-Aware Meal Recommendation Engine
// Copyright 2026 Taylor Brown (TaylorBrown96)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TaylorBrown96/CSC510-proj3

package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/TaylorBrown96/CSC510-proj3/internal/cache"
	"github.com/TaylorBrown96/CSC510-proj3/internal/config"
	"github.com/TaylorBrown96/CSC510-proj3/internal/logging"
	"github.com/TaylorBrown96/CSC510-proj3/internal/metrics"
)

const (
	// defaultSnapshotTTL bounds staleness of whole-catalog reads when the
	// caller passes no TTL.
	defaultSnapshotTTL = 5 * time.Minute

	// profileCacheCapacity bounds the LFU profile cache. Sized for the
	// active user population, not the registered one.
	profileCacheCapacity = 10000
)

// Store wraps the DuckDB catalog and provides the read operations the
// recommendation pipeline needs.
type Store struct {
	conn *sql.DB
	cfg  *config.DatabaseConfig

	// Prepared statement caching for hot per-user queries
	stmtCache   map[string]*sql.Stmt
	stmtCacheMu sync.RWMutex

	// snapshots holds whole-catalog reads (menu items, restaurants,
	// allergen vocabulary) behind a TTL cache. profiles holds per-user
	// health profiles behind a capacity-bounded LFU cache. Feedback is
	// never cached.
	snapshots   cache.Cacher
	profiles    cache.Cacher
	snapshotTTL time.Duration
}

// New opens (creating if necessary) the catalog database and initializes
// its schema. snapshotTTL bounds how long whole-catalog reads and health
// profiles are served from cache; zero or negative means the 5-minute
// default.
func New(cfg *config.DatabaseConfig, snapshotTTL time.Duration) (*Store, error) {
	if snapshotTTL <= 0 {
		snapshotTTL = defaultSnapshotTTL
	}

	numThreads := cfg.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}

	// Ensure parent directory exists for database file
	// Use 0750 permissions (owner: rwx, group: rx, other: none) per gosec G301
	dbDir := filepath.Dir(cfg.Path)
	if dbDir != "" && dbDir != "." {
		if err := os.MkdirAll(dbDir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
		}
	}

	// Build connection string with tuning options
	// preserve_insertion_order=false reduces memory usage but may change result order
	preserveOrder := "true"
	if !cfg.PreserveInsertionOrder {
		preserveOrder = "false"
	}

	// Disable auto-install/auto-load of extensions to prevent hangs in
	// restricted network environments. The catalog schema only needs core
	// DuckDB types, so no extensions are ever loaded.
	connStr := fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s&preserve_insertion_order=%s&autoinstall_known_extensions=false&autoload_known_extensions=false",
		cfg.Path, numThreads, cfg.MaxMemory, preserveOrder)

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{
		conn:      conn,
		cfg:       cfg,
		stmtCache: make(map[string]*sql.Stmt),
		snapshots: cache.NewCacher(cache.CacheConfig{
			Type: cache.CacheTypeTTL,
			TTL:  snapshotTTL,
		}),
		profiles: cache.NewCacher(cache.CacheConfig{
			Type:     cache.CacheTypeLFU,
			TTL:      snapshotTTL,
			Capacity: profileCacheCapacity,
			OnEvict:  func(string) { metrics.RecordCacheEviction("profile") },
		}),
		snapshotTTL: snapshotTTL,
	}

	if err := s.configureConnectionPool(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to configure connection pool: %w", err)
	}

	if err := s.initialize(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to initialize catalog: %w", err)
	}

	return s, nil
}

// configureConnectionPool sets connection pool parameters
func (s *Store) configureConnectionPool() error {
	s.conn.SetMaxOpenConns(runtime.NumCPU())
	s.conn.SetMaxIdleConns(2)
	s.conn.SetConnMaxLifetime(time.Hour)
	s.conn.SetConnMaxIdleTime(5 * time.Minute)

	// Note: Connection pool settings:
	// - max_open: NumCPU() for parallelism
	// - max_idle: 2 for connection reuse
	// - max_lifetime: 1h to prevent stale connections
	// - max_idle_time: 5m for idle connection cleanup

	return nil
}

// initialize creates tables, runs migrations, and creates indexes
func (s *Store) initialize() error {
	if err := s.createTables(); err != nil {
		return err
	}

	if err := s.runVersionedMigrations(); err != nil {
		return err
	}

	if err := s.createIndexes(); err != nil {
		return err
	}

	// Force a checkpoint after schema initialization to flush the WAL.
	// This keeps startup after an unclean shutdown from replaying schema
	// statements.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.Checkpoint(ctx); err != nil {
		// Log warning but don't fail initialization - the issue only affects restart
		logging.Warn().Err(err).Msg("Failed to checkpoint after schema initialization")
	}

	return nil
}

// Close closes the database connection and all prepared statements.
// It performs a CHECKPOINT before closing to flush the WAL to the main
// database file so the next startup does not replay it.
func (s *Store) Close() error {
	s.stmtCacheMu.Lock()
	for _, stmt := range s.stmtCache {
		if stmt != nil {
			closeWithLog(stmt, "prepared statement")
		}
	}
	s.stmtCache = make(map[string]*sql.Stmt)
	s.stmtCacheMu.Unlock()

	if s.conn != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := s.Checkpoint(ctx); err != nil {
			// Log warning but don't fail - best effort checkpoint
			logging.Warn().Err(err).Msg("Failed to checkpoint catalog before close")
		}
		cancel()

		return s.conn.Close()
	}
	return nil
}

// Ping checks if the database connection is alive
func (s *Store) Ping(ctx context.Context) error {
	if s.conn == nil {
		return fmt.Errorf("catalog connection is nil")
	}
	return s.conn.PingContext(ctx)
}

// Checkpoint forces a WAL checkpoint
func (s *Store) Checkpoint(ctx context.Context) error {
	ctx, cancel := s.ensureContext(ctx)
	defer cancel()

	_, err := s.conn.ExecContext(ctx, "CHECKPOINT")
	if err != nil {
		return fmt.Errorf("checkpoint failed: %w", err)
	}
	return nil
}

// ensureContext creates a context with 30-second timeout if none provided
func (s *Store) ensureContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		return context.WithTimeout(context.Background(), 30*time.Second)
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		return context.WithTimeout(ctx, 30*time.Second)
	}

	return ctx, func() {}
}

// getStmt returns a cached prepared statement for query, preparing and
// caching it on first use. Statements live until Close.
func (s *Store) getStmt(ctx context.Context, query string) (*sql.Stmt, error) {
	s.stmtCacheMu.RLock()
	stmt, ok := s.stmtCache[query]
	s.stmtCacheMu.RUnlock()
	if ok {
		return stmt, nil
	}

	s.stmtCacheMu.Lock()
	defer s.stmtCacheMu.Unlock()

	// Another goroutine may have prepared it while we waited for the lock
	if stmt, ok := s.stmtCache[query]; ok {
		return stmt, nil
	}

	stmt, err := s.conn.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare statement: %w", err)
	}
	s.stmtCache[query] = stmt
	return stmt, nil
}

// invalidateCaches drops all cached snapshots and profiles. Called after
// seeding; reference data changed out from under the caches.
func (s *Store) invalidateCaches() {
	s.snapshots.Clear()
	s.profiles.Clear()
}
