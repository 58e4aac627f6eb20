// Eatsential - Health-Aware Meal Recommendation Engine
// Copyright 2026 Taylor Brown (TaylorBrown96)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TaylorBrown96/CSC510-proj3

package feedback

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/TaylorBrown96/CSC510-proj3/internal/config"
	"github.com/TaylorBrown96/CSC510-proj3/internal/logging"
	"github.com/TaylorBrown96/CSC510-proj3/internal/metrics"
)

// Item types accepted by the store. Meals reference catalog menu items,
// restaurants reference catalog restaurants.
const (
	ItemTypeMeal       = "meal"
	ItemTypeRestaurant = "restaurant"
)

// Feedback types accepted by the store.
const (
	TypeLike    = "like"
	TypeDislike = "dislike"
)

const (
	keyPrefix = "feedback/"

	closeTimeout          = 30 * time.Second
	defaultGCDiscardRatio = 0.5
)

// Record is one user's stored feedback for one item. A (UserID, ItemType,
// ItemID) triple maps to at most one record; resubmitting replaces the
// stored feedback type and notes while preserving ID and CreatedAt.
type Record struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	ItemID       string    `json:"item_id"`
	ItemType     string    `json:"item_type"`
	FeedbackType string    `json:"feedback_type"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Store persists feedback records in BadgerDB.
type Store struct {
	db  *badger.DB
	cfg *config.FeedbackConfig

	mu     sync.RWMutex
	closed bool
}

// Open opens (or creates) the feedback store at the configured path. When
// cfg.InMemory is set the store lives entirely in memory, which is intended
// for tests and ephemeral deployments.
func Open(cfg *config.FeedbackConfig) (*Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("feedback config cannot be nil")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Path == "" {
			return nil, fmt.Errorf("feedback path cannot be empty")
		}
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create feedback directory: %w", err)
		}
		opts = badger.DefaultOptions(cfg.Path)
		// Acknowledged submissions must survive a crash.
		opts.SyncWrites = true
	}

	// Reduce logging verbosity
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open feedback store: %w", err)
	}

	logging.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Msg("Feedback store opened")

	return &Store{db: db, cfg: cfg}, nil
}

// Close gracefully shuts down the store. If BadgerDB does not close within
// closeTimeout, Close returns an error rather than hanging shutdown.
// Closing an already-closed store is a no-op.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		done <- s.db.Close()
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("close feedback store: %w", err)
		}
		logging.Info().Msg("Feedback store closed")
		return nil
	case <-time.After(closeTimeout):
		logging.Warn().Dur("timeout", closeTimeout).Msg("Feedback store close timed out")
		return fmt.Errorf("feedback store close timeout after %v", closeTimeout)
	}
}

// Ping verifies the store is open and responsive. Readiness checks call it.
func (s *Store) Ping(ctx context.Context) error {
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return ErrStoreClosed
	}
	s.mu.RUnlock()

	return s.db.View(func(_ *badger.Txn) error { return nil })
}

// RunGC runs BadgerDB value-log garbage collection until a cycle reclaims
// nothing. The supervisor invokes it on the configured interval. GC does
// not apply to in-memory stores, so those return immediately.
func (s *Store) RunGC() error {
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return ErrStoreClosed
	}
	s.mu.RUnlock()

	if s.cfg.InMemory {
		return nil
	}

	ratio := s.cfg.GCDiscardRatio
	if ratio <= 0 || ratio >= 1 {
		ratio = defaultGCDiscardRatio
	}

	start := time.Now()
	reclaimed := false

	// Run GC until no more cleanup is possible
	for {
		err := s.db.RunValueLogGC(ratio)
		if errors.Is(err, badger.ErrNoRewrite) {
			break
		}
		if err != nil {
			metrics.RecordFeedbackGC(time.Since(start), "error")
			return storeErr("gc", err)
		}
		reclaimed = true
	}

	result := "nothing"
	if reclaimed {
		result = "reclaimed"
	}
	metrics.RecordFeedbackGC(time.Since(start), result)

	return nil
}
