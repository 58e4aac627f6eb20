// Eatsential - Health-Aware Meal Recommendation Engine
// Copyright 2026 Taylor Brown (TaylorBrown96)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TaylorBrown96/CSC510-proj3

package recommend

import (
	"sort"
	"strings"

	"github.com/TaylorBrown96/CSC510-proj3/internal/feedback"
)

// Explanation notes appended by the adjuster. Appending is guarded by a
// suffix check so re-adjusting never stacks notes.
const (
	likedItemNote       = " (You liked this before)"
	likedRestaurantNote = " (From a restaurant you like)"
)

// feedbackSnapshot is the request-start view of the user's feedback. It is
// built once per request and never refreshed mid-pipeline, so concurrent
// feedback writes cannot make one stage contradict another.
type feedbackSnapshot struct {
	likedItems       map[string]struct{}
	dislikedItems    map[string]struct{}
	likedRestaurants map[string]struct{}
}

func (s feedbackSnapshot) empty() bool {
	return len(s.likedItems) == 0 && len(s.dislikedItems) == 0 && len(s.likedRestaurants) == 0
}

// likedRestaurantSet folds explicit restaurant likes together with the
// restaurants of liked meals: liking one dish is a signal for the kitchen
// that made it. restaurantOf maps meal item ids to restaurant ids.
func likedRestaurantSet(signals *feedback.UserSignals, restaurantOf map[string]string) map[string]struct{} {
	set := make(map[string]struct{}, len(signals.LikedRestaurants)+len(signals.LikedMeals))
	for id := range signals.LikedRestaurants {
		set[id] = struct{}{}
	}
	for mealID := range signals.LikedMeals {
		if rid, ok := restaurantOf[mealID]; ok && rid != "" {
			set[rid] = struct{}{}
		}
	}
	return set
}

// buildMealSnapshot derives the adjustment snapshot for meal candidates.
// A nil signals value (feedback store unreachable) yields an empty
// snapshot: the request proceeds unpersonalized rather than failing.
func buildMealSnapshot(signals *feedback.UserSignals, restaurantOf map[string]string) feedbackSnapshot {
	if signals == nil {
		return feedbackSnapshot{}
	}
	return feedbackSnapshot{
		likedItems:       signals.LikedMeals,
		dislikedItems:    signals.DislikedMeals,
		likedRestaurants: likedRestaurantSet(signals, restaurantOf),
	}
}

// buildRestaurantSnapshot derives the snapshot for restaurant candidates,
// where the candidate id and the restaurant id coincide. Restaurants the
// user liked directly and restaurants whose meals the user liked both land
// in the boost set.
func buildRestaurantSnapshot(signals *feedback.UserSignals, restaurantOf map[string]string) feedbackSnapshot {
	if signals == nil {
		return feedbackSnapshot{}
	}
	return feedbackSnapshot{
		likedItems:       signals.LikedRestaurants,
		dislikedItems:    signals.DislikedRestaurants,
		likedRestaurants: likedRestaurantSet(signals, restaurantOf),
	}
}

// adjustForFeedback drops candidates the user disliked and boosts the base
// score of candidates the user liked, directly or via their restaurant.
// Scores are always recomputed from BaseScore and reclamped, so applying
// the adjuster to its own output changes nothing. The result is re-sorted
// by adjusted score descending with the incoming order preserved on ties.
func adjustForFeedback(cands []Candidate, snap feedbackSnapshot, boost float64) (out []Candidate, droppedDislikes int) {
	if snap.empty() {
		return cands, 0
	}

	out = make([]Candidate, 0, len(cands))
	for _, c := range cands {
		if _, disliked := snap.dislikedItems[c.ItemID]; disliked {
			droppedDislikes++
			continue
		}

		_, liked := snap.likedItems[c.ItemID]
		likedRestaurant := false
		if !liked && c.RestaurantID != "" {
			_, likedRestaurant = snap.likedRestaurants[c.RestaurantID]
		}

		score := c.BaseScore
		note := ""
		switch {
		case liked:
			score *= boost
			note = likedItemNote
		case likedRestaurant:
			score *= boost
			note = likedRestaurantNote
		}
		c.Score = clamp01(score)
		if note != "" && !strings.HasSuffix(c.Explanation, note) {
			c.Explanation += note
		}
		out = append(out, c)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out, droppedDislikes
}
