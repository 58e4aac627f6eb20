// Eatsential - Health-Aware Meal Recommendation Engine
// Copyright 2026 Taylor Brown (TaylorBrown96)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TaylorBrown96/CSC510-proj3

package feedback

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
)

func submitOne(t *testing.T, store *Store, userID, itemID, itemType, feedbackType string) *Record {
	t.Helper()

	rec := &Record{
		UserID:       userID,
		ItemID:       itemID,
		ItemType:     itemType,
		FeedbackType: feedbackType,
	}
	if err := store.Submit(context.Background(), rec); err != nil {
		t.Fatalf("Submit(%s, %s, %s) error = %v", userID, itemID, feedbackType, err)
	}
	return rec
}

func TestSubmitValidation(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	tests := []struct {
		name    string
		rec     *Record
		wantErr error
	}{
		{"nil record", nil, ErrNilRecord},
		{"empty user", &Record{ItemID: "i", ItemType: ItemTypeMeal, FeedbackType: TypeLike}, ErrEmptyUserID},
		{"empty item", &Record{UserID: "u", ItemType: ItemTypeMeal, FeedbackType: TypeLike}, ErrEmptyItemID},
		{"bad item type", &Record{UserID: "u", ItemID: "i", ItemType: "movie", FeedbackType: TypeLike}, ErrInvalidItemType},
		{"bad feedback type", &Record{UserID: "u", ItemID: "i", ItemType: ItemTypeMeal, FeedbackType: "meh"}, ErrInvalidFeedbackType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := store.Submit(context.Background(), tt.rec); !errors.Is(err, tt.wantErr) {
				t.Errorf("Submit() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSubmitAssignsIdentity(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	rec := submitOne(t, store, "u-1", "item-1", ItemTypeMeal, TypeLike)

	if rec.ID == "" {
		t.Error("expected Submit to assign an ID")
	}
	if rec.CreatedAt.IsZero() {
		t.Error("expected Submit to set CreatedAt")
	}
	if !rec.UpdatedAt.Equal(rec.CreatedAt) {
		t.Errorf("first submission UpdatedAt = %v, want CreatedAt %v", rec.UpdatedAt, rec.CreatedAt)
	}
}

func TestSubmitOverwritePreservesIdentity(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	first := submitOne(t, store, "u-1", "item-1", ItemTypeMeal, TypeLike)
	second := submitOne(t, store, "u-1", "item-1", ItemTypeMeal, TypeDislike)

	if second.ID != first.ID {
		t.Errorf("resubmission ID = %q, want original %q", second.ID, first.ID)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("resubmission CreatedAt = %v, want original %v", second.CreatedAt, first.CreatedAt)
	}
	if second.UpdatedAt.Before(first.UpdatedAt) {
		t.Errorf("resubmission UpdatedAt %v precedes original %v", second.UpdatedAt, first.UpdatedAt)
	}

	states, err := store.States(context.Background(), "u-1", []string{"item-1"}, ItemTypeMeal)
	if err != nil {
		t.Fatalf("States() error = %v", err)
	}
	if states["item-1"] != TypeDislike {
		t.Errorf("stored feedback = %q, want %q after overwrite", states["item-1"], TypeDislike)
	}
}

func TestSubmitSameItemDifferentTypes(t *testing.T) {
	t.Parallel()

	// A meal and a restaurant sharing an ID string must not collide.
	store := newTestStore(t)
	submitOne(t, store, "u-1", "shared-id", ItemTypeMeal, TypeLike)
	submitOne(t, store, "u-1", "shared-id", ItemTypeRestaurant, TypeDislike)

	mealStates, err := store.States(context.Background(), "u-1", []string{"shared-id"}, ItemTypeMeal)
	if err != nil {
		t.Fatalf("States(meal) error = %v", err)
	}
	if mealStates["shared-id"] != TypeLike {
		t.Errorf("meal feedback = %q, want %q", mealStates["shared-id"], TypeLike)
	}

	restStates, err := store.States(context.Background(), "u-1", []string{"shared-id"}, ItemTypeRestaurant)
	if err != nil {
		t.Fatalf("States(restaurant) error = %v", err)
	}
	if restStates["shared-id"] != TypeDislike {
		t.Errorf("restaurant feedback = %q, want %q", restStates["shared-id"], TypeDislike)
	}
}

func TestStatesSubset(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	submitOne(t, store, "u-1", "item-a", ItemTypeMeal, TypeLike)
	submitOne(t, store, "u-1", "item-b", ItemTypeMeal, TypeDislike)
	submitOne(t, store, "u-1", "rest-x", ItemTypeRestaurant, TypeLike)

	states, err := store.States(context.Background(), "u-1", []string{"item-a", "item-b", "item-unrated", "rest-x"}, ItemTypeMeal)
	if err != nil {
		t.Fatalf("States() error = %v", err)
	}

	if len(states) != 2 {
		t.Fatalf("expected 2 states, got %d: %v", len(states), states)
	}
	if states["item-a"] != TypeLike {
		t.Errorf("item-a = %q, want %q", states["item-a"], TypeLike)
	}
	if states["item-b"] != TypeDislike {
		t.Errorf("item-b = %q, want %q", states["item-b"], TypeDislike)
	}
	if _, ok := states["item-unrated"]; ok {
		t.Error("unrated item should be absent from states")
	}
	if _, ok := states["rest-x"]; ok {
		t.Error("restaurant feedback should not appear in a meal query")
	}
}

func TestStatesEmptyItemIDs(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	states, err := store.States(context.Background(), "u-1", nil, ItemTypeMeal)
	if err != nil {
		t.Fatalf("States() error = %v", err)
	}
	if states == nil {
		t.Fatal("expected empty map, got nil")
	}
	if len(states) != 0 {
		t.Fatalf("expected empty map, got %v", states)
	}
}

func TestStatesValidation(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	if _, err := store.States(context.Background(), "", []string{"i"}, ItemTypeMeal); !errors.Is(err, ErrEmptyUserID) {
		t.Errorf("empty user error = %v, want ErrEmptyUserID", err)
	}
	if _, err := store.States(context.Background(), "u-1", []string{"i"}, "movie"); !errors.Is(err, ErrInvalidItemType) {
		t.Errorf("bad item type error = %v, want ErrInvalidItemType", err)
	}
}

func TestStatesUnknownUser(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	states, err := store.States(context.Background(), "u-nobody", []string{"item-1"}, ItemTypeMeal)
	if err != nil {
		t.Fatalf("States() error = %v", err)
	}
	if len(states) != 0 {
		t.Fatalf("expected no states for unknown user, got %v", states)
	}
}

func TestUserFeedbackBuckets(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	submitOne(t, store, "u-alice", "item-1", ItemTypeMeal, TypeLike)
	submitOne(t, store, "u-alice", "item-2", ItemTypeMeal, TypeLike)
	submitOne(t, store, "u-alice", "item-3", ItemTypeMeal, TypeDislike)
	submitOne(t, store, "u-alice", "rest-1", ItemTypeRestaurant, TypeLike)
	submitOne(t, store, "u-alice", "rest-2", ItemTypeRestaurant, TypeDislike)

	// Another user's feedback must stay invisible.
	submitOne(t, store, "u-bob", "item-9", ItemTypeMeal, TypeLike)

	signals, err := store.UserFeedback(context.Background(), "u-alice")
	if err != nil {
		t.Fatalf("UserFeedback() error = %v", err)
	}

	wantLikedMeals := map[string]struct{}{"item-1": {}, "item-2": {}}
	if len(signals.LikedMeals) != len(wantLikedMeals) {
		t.Errorf("LikedMeals = %v, want %v", signals.LikedMeals, wantLikedMeals)
	}
	for id := range wantLikedMeals {
		if _, ok := signals.LikedMeals[id]; !ok {
			t.Errorf("LikedMeals missing %q", id)
		}
	}
	if _, ok := signals.DislikedMeals["item-3"]; !ok || len(signals.DislikedMeals) != 1 {
		t.Errorf("DislikedMeals = %v, want {item-3}", signals.DislikedMeals)
	}
	if _, ok := signals.LikedRestaurants["rest-1"]; !ok || len(signals.LikedRestaurants) != 1 {
		t.Errorf("LikedRestaurants = %v, want {rest-1}", signals.LikedRestaurants)
	}
	if _, ok := signals.DislikedRestaurants["rest-2"]; !ok || len(signals.DislikedRestaurants) != 1 {
		t.Errorf("DislikedRestaurants = %v, want {rest-2}", signals.DislikedRestaurants)
	}
	if _, ok := signals.LikedMeals["item-9"]; ok {
		t.Error("another user's feedback leaked into signals")
	}
}

func TestUserFeedbackOverwriteMovesBucket(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	submitOne(t, store, "u-1", "item-1", ItemTypeMeal, TypeLike)
	submitOne(t, store, "u-1", "item-1", ItemTypeMeal, TypeDislike)

	signals, err := store.UserFeedback(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("UserFeedback() error = %v", err)
	}

	if _, ok := signals.LikedMeals["item-1"]; ok {
		t.Error("overwritten like should no longer appear in LikedMeals")
	}
	if _, ok := signals.DislikedMeals["item-1"]; !ok {
		t.Error("expected item-1 in DislikedMeals after overwrite")
	}
}

func TestUserFeedbackUnknownUser(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	signals, err := store.UserFeedback(context.Background(), "u-nobody")
	if err != nil {
		t.Fatalf("UserFeedback() error = %v", err)
	}

	if signals.LikedMeals == nil || signals.DislikedMeals == nil ||
		signals.LikedRestaurants == nil || signals.DislikedRestaurants == nil {
		t.Fatal("expected non-nil signal sets for unknown user")
	}
	total := len(signals.LikedMeals) + len(signals.DislikedMeals) +
		len(signals.LikedRestaurants) + len(signals.DislikedRestaurants)
	if total != 0 {
		t.Fatalf("expected empty signals, got %d entries", total)
	}
}

func TestUserFeedbackEmptyUserID(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	if _, err := store.UserFeedback(context.Background(), ""); !errors.Is(err, ErrEmptyUserID) {
		t.Fatalf("UserFeedback(\"\") error = %v, want ErrEmptyUserID", err)
	}
}

func TestConcurrentSubmits(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	const workers = 8
	const perWorker = 5

	var wg sync.WaitGroup
	errCh := make(chan error, workers*perWorker)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				rec := &Record{
					UserID:       "u-1",
					ItemID:       fmt.Sprintf("item-%d-%d", w, i),
					ItemType:     ItemTypeMeal,
					FeedbackType: TypeLike,
				}
				if err := store.Submit(context.Background(), rec); err != nil {
					errCh <- err
				}
			}
		}(w)
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		t.Errorf("concurrent Submit() error = %v", err)
	}

	signals, err := store.UserFeedback(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("UserFeedback() error = %v", err)
	}
	if len(signals.LikedMeals) != workers*perWorker {
		t.Fatalf("LikedMeals = %d entries, want %d", len(signals.LikedMeals), workers*perWorker)
	}
}
