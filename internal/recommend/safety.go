// Eatsential - Health-Aware Meal Recommendation Engine
// Copyright 2026 Taylor Brown (TaylorBrown96)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TaylorBrown96/CSC510-proj3

package recommend

import (
	"strings"

	"github.com/TaylorBrown96/CSC510-proj3/internal/catalog"
)

// strictDietExclusions maps a strict dietary preference to ingredient terms
// that disqualify an item when they appear in its name or description. Tag
// data alone is not trusted for strict preferences: a mis-tagged "chicken
// caesar wrap" must still be excluded for a strict vegetarian.
var strictDietExclusions = map[string][]string{
	"vegan": {
		"beef", "pork", "chicken", "fish", "shrimp", "egg",
		"cheese", "milk", "honey", "butter", "yogurt",
	},
	"vegetarian": {
		"beef", "pork", "chicken", "turkey", "fish", "shrimp", "bacon",
	},
	"gluten_free": {
		"wheat", "barley", "rye", "gluten", "bread", "pasta",
	},
	"keto": {
		"sugar", "bread", "pasta", "rice", "noodle", "potato",
	},
}

// filterAllergens drops every candidate that fails either tier of the
// allergen check: tag intersection with the profile allergen set, or a
// text screen of name and description against the allergen terms. The text
// tier covers items whose allergen tags are missing or incomplete; tag data
// alone is not trusted for a safety property. Severity is never consulted:
// one match disqualifies the candidate. Pure and idempotent; candidate
// order is preserved.
func filterAllergens(cands []Candidate, allergens map[string]struct{}, terms []string) (kept []Candidate, dropped int) {
	if len(allergens) == 0 && len(terms) == 0 {
		return cands, 0
	}
	kept = make([]Candidate, 0, len(cands))
	for _, c := range cands {
		if intersectsAllergens(c.AllergenIDs, allergens) {
			dropped++
			continue
		}
		text := strings.ToLower(c.Name + " " + c.Description)
		if containsAllergenTerm(text, terms) {
			dropped++
			continue
		}
		kept = append(kept, c)
	}
	return kept, dropped
}

func containsAllergenTerm(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

func intersectsAllergens(tags []string, allergens map[string]struct{}) bool {
	for _, t := range tags {
		if _, ok := allergens[t]; ok {
			return true
		}
	}
	return false
}

// filterStrictDiets drops candidates whose text mentions an ingredient
// excluded by one of the user's strict dietary preferences. Preferences
// without an exclusion list only influence scoring, never filtering.
func filterStrictDiets(cands []Candidate, strict []string) (kept []Candidate, dropped int) {
	if len(strict) == 0 {
		return cands, 0
	}
	kept = make([]Candidate, 0, len(cands))
	for _, c := range cands {
		text := strings.ToLower(c.Name + " " + c.Description)
		if violatesStrictDiet(text, strict) {
			dropped++
			continue
		}
		kept = append(kept, c)
	}
	return kept, dropped
}

func violatesStrictDiet(text string, strict []string) bool {
	for _, diet := range strict {
		for _, term := range strictDietExclusions[diet] {
			if strings.Contains(text, term) {
				return true
			}
		}
	}
	return false
}

// strictPreferences extracts the strict preference names from a profile,
// lowercased for matching against the exclusion table.
func strictPreferences(prefs []catalog.DietaryPreference) []string {
	var strict []string
	for _, p := range prefs {
		if p.IsStrict {
			strict = append(strict, strings.ToLower(p.Preference))
		}
	}
	return strict
}
