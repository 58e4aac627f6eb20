// Eatsential - Health-Aware Meal Recommendation Engine
// Copyright 2026 Taylor Brown (TaylorBrown96)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TaylorBrown96/CSC510-proj3

package recommend

import (
	"reflect"
	"testing"
)

func sel(id, restaurant string, score float64) Candidate {
	return Candidate{ItemID: id, RestaurantID: restaurant, Score: score}
}

func TestSelectDiverseCapsDominantRestaurant(t *testing.T) {
	t.Parallel()

	// Five strong candidates from one restaurant and a weaker one from
	// another: the dominant restaurant stops at the cap and the output is
	// shorter than the limit rather than padded.
	cands := []Candidate{
		sel("a1", "r1", 0.9),
		sel("a2", "r1", 0.8),
		sel("a3", "r1", 0.7),
		sel("a4", "r1", 0.6),
		sel("a5", "r1", 0.5),
		sel("b1", "r2", 0.4),
	}

	got := selectDiverse(cands, 4, 2)
	want := []string{"a1", "a2", "b1"}
	if !reflect.DeepEqual(candidateIDs(got), want) {
		t.Fatalf("selection = %v, want %v", candidateIDs(got), want)
	}
}

func TestSelectDiverseKeepsScoreOrderAcrossRestaurants(t *testing.T) {
	t.Parallel()

	// Interleaved scores under the cap come out in pure score order; the
	// selector is not a per-restaurant round-robin.
	cands := []Candidate{
		sel("a1", "r1", 0.9),
		sel("b1", "r2", 0.85),
		sel("a2", "r1", 0.8),
		sel("b2", "r2", 0.75),
		sel("c1", "r3", 0.5),
	}

	got := selectDiverse(cands, 5, 2)
	want := []string{"a1", "b1", "a2", "b2", "c1"}
	if !reflect.DeepEqual(candidateIDs(got), want) {
		t.Fatalf("selection = %v, want %v", candidateIDs(got), want)
	}
}

func TestSelectDiverseSingleRestaurant(t *testing.T) {
	t.Parallel()

	cands := []Candidate{
		sel("a1", "r1", 0.9),
		sel("a2", "r1", 0.8),
		sel("a3", "r1", 0.7),
	}
	got := selectDiverse(cands, 10, 2)
	if len(got) != 2 {
		t.Fatalf("got %d results from a single restaurant, want the cap (2)", len(got))
	}
}

func TestSelectDiverseEmptyRestaurantNeverGrouped(t *testing.T) {
	t.Parallel()

	cands := []Candidate{
		sel("x1", "", 0.9),
		sel("x2", "", 0.8),
		sel("x3", "", 0.7),
	}
	got := selectDiverse(cands, 10, 1)
	if len(got) != 3 {
		t.Fatalf("candidates without a restaurant were merged into one group: got %d, want 3", len(got))
	}
}

func TestSelectDiverseScoresNeverIncrease(t *testing.T) {
	t.Parallel()

	cands := []Candidate{
		sel("a1", "r1", 0.9),
		sel("a2", "r1", 0.88),
		sel("b1", "r2", 0.86),
		sel("a3", "r1", 0.84),
		sel("c1", "r3", 0.82),
		sel("b2", "r2", 0.80),
		sel("c2", "r3", 0.30),
	}
	got := selectDiverse(cands, 7, 2)
	for i := 1; i < len(got); i++ {
		if got[i].Score > got[i-1].Score {
			t.Fatalf("output scores increase at %d: %v after %v", i, got[i].Score, got[i-1].Score)
		}
	}
	counts := make(map[string]int)
	for _, c := range got {
		counts[c.RestaurantID]++
		if counts[c.RestaurantID] > 2 {
			t.Fatalf("restaurant %s exceeded the cap", c.RestaurantID)
		}
	}
}

func TestSelectDiverseTieBreakByArrivalOrder(t *testing.T) {
	t.Parallel()

	cands := []Candidate{
		sel("b1", "r2", 0.7),
		sel("a1", "r1", 0.7),
	}
	got := selectDiverse(cands, 2, 2)
	if want := []string{"b1", "a1"}; !reflect.DeepEqual(candidateIDs(got), want) {
		t.Fatalf("tie order = %v, want arrival order %v", candidateIDs(got), want)
	}
}

func TestSelectDiverseUnsortedInput(t *testing.T) {
	t.Parallel()

	// The selector orders each group itself, so unsorted input still
	// yields each restaurant's best candidates.
	cands := []Candidate{
		sel("a-low", "r1", 0.2),
		sel("a-high", "r1", 0.9),
		sel("b-mid", "r2", 0.5),
	}
	got := selectDiverse(cands, 2, 1)
	want := []string{"a-high", "b-mid"}
	if !reflect.DeepEqual(candidateIDs(got), want) {
		t.Fatalf("selection = %v, want %v", candidateIDs(got), want)
	}
}

func TestSelectDiverseLimits(t *testing.T) {
	t.Parallel()

	cands := []Candidate{sel("a1", "r1", 0.9), sel("b1", "r2", 0.8)}

	if got := selectDiverse(cands, 0, 2); len(got) != 0 {
		t.Errorf("limit 0 returned %d candidates", len(got))
	}
	if got := selectDiverse(nil, 5, 2); len(got) != 0 {
		t.Errorf("nil input returned %d candidates", len(got))
	}
	if got := selectDiverse(cands, 1, 2); len(got) != 1 || got[0].ItemID != "a1" {
		t.Errorf("limit 1 = %v, want just the best candidate", candidateIDs(got))
	}
	// Output is never nil so the response serializes as [].
	if got := selectDiverse(nil, 5, 2); got == nil {
		t.Errorf("selection must be non-nil")
	}
}
