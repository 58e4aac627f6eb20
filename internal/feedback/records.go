// Eatsential - Health-Aware Meal Recommendation Engine
// Copyright 2026 Taylor Brown (TaylorBrown96)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TaylorBrown96/CSC510-proj3

package feedback

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/TaylorBrown96/CSC510-proj3/internal/metrics"
)

// recordKey builds the storage key for one (user, item type, item) triple.
func recordKey(userID, itemType, itemID string) []byte {
	return []byte(keyPrefix + userID + "/" + itemType + "/" + itemID)
}

// userScanPrefix covers every record one user has submitted.
func userScanPrefix(userID string) []byte {
	return []byte(keyPrefix + userID + "/")
}

func validItemType(itemType string) bool {
	return itemType == ItemTypeMeal || itemType == ItemTypeRestaurant
}

func validFeedbackType(feedbackType string) bool {
	return feedbackType == TypeLike || feedbackType == TypeDislike
}

// validateRecord checks the fields a caller must supply before Submit.
func validateRecord(rec *Record) error {
	switch {
	case rec == nil:
		return ErrNilRecord
	case rec.UserID == "":
		return ErrEmptyUserID
	case rec.ItemID == "":
		return ErrEmptyItemID
	case !validItemType(rec.ItemType):
		return ErrInvalidItemType
	case !validFeedbackType(rec.FeedbackType):
		return ErrInvalidFeedbackType
	}
	return nil
}

// Submit stores rec, replacing any feedback the user previously gave for
// the same item. On first submission rec.ID and rec.CreatedAt are assigned;
// on resubmission they are restored from the stored record so the triple
// keeps a stable identity. rec.UpdatedAt is always set to the write time.
//
// Callers populate UserID, ItemID, ItemType, FeedbackType, and optionally
// Notes; everything else is managed by the store.
func (s *Store) Submit(ctx context.Context, rec *Record) error {
	if err := validateRecord(rec); err != nil {
		return err
	}

	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return ErrStoreClosed
	}
	s.mu.RUnlock()

	now := time.Now().UTC()
	key := recordKey(rec.UserID, rec.ItemType, rec.ItemID)

	err := s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		switch {
		case errors.Is(err, badger.ErrKeyNotFound):
			rec.ID = uuid.New().String()
			rec.CreatedAt = now
		case err != nil:
			return fmt.Errorf("read prior feedback: %w", err)
		default:
			var prior Record
			verr := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &prior)
			})
			if verr == nil && prior.ID != "" {
				rec.ID = prior.ID
				rec.CreatedAt = prior.CreatedAt
			} else {
				// Stored value is unreadable; start a fresh identity.
				rec.ID = uuid.New().String()
				rec.CreatedAt = now
			}
		}
		rec.UpdatedAt = now

		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshal feedback: %w", err)
		}
		return txn.Set(key, data)
	})
	if err != nil {
		metrics.RecordFeedbackStoreError("submit")
		return storeErr("submit", err)
	}

	metrics.RecordFeedbackSubmission(rec.ItemType, rec.FeedbackType)
	return nil
}

// States returns the stored feedback type for each requested item the user
// has rated. Items the user never rated are absent from the result, so
// callers can distinguish "no feedback" from "rated".
func (s *Store) States(ctx context.Context, userID string, itemIDs []string, itemType string) (map[string]string, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}
	if !validItemType(itemType) {
		return nil, ErrInvalidItemType
	}

	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return nil, ErrStoreClosed
	}
	s.mu.RUnlock()

	states := make(map[string]string, len(itemIDs))
	if len(itemIDs) == 0 {
		return states, nil
	}

	err := s.db.View(func(txn *badger.Txn) error {
		for _, itemID := range itemIDs {
			item, err := txn.Get(recordKey(userID, itemType, itemID))
			if errors.Is(err, badger.ErrKeyNotFound) {
				continue
			}
			if err != nil {
				return fmt.Errorf("read feedback for %s: %w", itemID, err)
			}

			var rec Record
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				continue
			}
			states[itemID] = rec.FeedbackType
		}
		return nil
	})
	if err != nil {
		metrics.RecordFeedbackStoreError("states")
		return nil, storeErr("states", err)
	}

	return states, nil
}

// UserSignals aggregates everything one user has rated into the sets the
// recommendation pipeline consumes. All maps are non-nil.
type UserSignals struct {
	LikedMeals          map[string]struct{}
	DislikedMeals       map[string]struct{}
	LikedRestaurants    map[string]struct{}
	DislikedRestaurants map[string]struct{}
}

func newUserSignals() *UserSignals {
	return &UserSignals{
		LikedMeals:          make(map[string]struct{}),
		DislikedMeals:       make(map[string]struct{}),
		LikedRestaurants:    make(map[string]struct{}),
		DislikedRestaurants: make(map[string]struct{}),
	}
}

// add buckets one record by item type and feedback type.
func (u *UserSignals) add(rec *Record) {
	switch {
	case rec.ItemType == ItemTypeMeal && rec.FeedbackType == TypeLike:
		u.LikedMeals[rec.ItemID] = struct{}{}
	case rec.ItemType == ItemTypeMeal && rec.FeedbackType == TypeDislike:
		u.DislikedMeals[rec.ItemID] = struct{}{}
	case rec.ItemType == ItemTypeRestaurant && rec.FeedbackType == TypeLike:
		u.LikedRestaurants[rec.ItemID] = struct{}{}
	case rec.ItemType == ItemTypeRestaurant && rec.FeedbackType == TypeDislike:
		u.DislikedRestaurants[rec.ItemID] = struct{}{}
	}
}

// UserFeedback loads the user's full feedback history in one prefix scan.
// Users with no stored feedback yield empty signal sets, not an error.
func (s *Store) UserFeedback(ctx context.Context, userID string) (*UserSignals, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}

	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return nil, ErrStoreClosed
	}
	s.mu.RUnlock()

	signals := newUserSignals()

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := userScanPrefix(userID)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var rec Record
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				continue
			}
			signals.add(&rec)
		}
		return nil
	})
	if err != nil {
		metrics.RecordFeedbackStoreError("user_feedback")
		return nil, storeErr("user_feedback", err)
	}

	return signals, nil
}
