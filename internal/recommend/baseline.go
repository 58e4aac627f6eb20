// Eatsential - Health-Aware Meal Recommendation Engine
// Copyright 2026 Taylor Brown (TaylorBrown96)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TaylorBrown96/CSC510-proj3

package recommend

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/TaylorBrown96/CSC510-proj3/internal/catalog"
)

// baselineGenerator is the deterministic scorer: a weighted sum of diet
// overlap, cuisine match, and price-tier proximity. Same snapshot, same
// output, always.
type baselineGenerator struct {
	cfg *Config
}

var _ Generator = (*baselineGenerator)(nil)

func (g *baselineGenerator) Name() string { return ModeBaseline }

// Generate scores every pool candidate that survives the hard cuisine and
// price constraints, then orders by score descending with item id as the
// tie-break so the ranking is reproducible run to run.
func (g *baselineGenerator) Generate(_ context.Context, in GenerateInput) ([]Candidate, error) {
	cuisines := stringSet(in.Filters.Cuisine)
	out := make([]Candidate, 0, len(in.Pool))

	for _, c := range in.Pool {
		// Hard constraints first. A candidate with a known, different
		// cuisine is out; a candidate more than one price tier away is
		// out. Candidates with no cuisine recorded stay in and simply
		// score zero on that component.
		if len(cuisines) > 0 && c.Cuisine != "" {
			if _, ok := cuisines[strings.ToLower(c.Cuisine)]; !ok {
				continue
			}
		}
		price, excluded := priceComponent(c.Price, in.Filters.PriceRange)
		if excluded {
			continue
		}

		diet, dietMatches := dietComponent(c.DietTags, in.Filters.Diet)
		cuisine := cuisineComponent(c.Cuisine, cuisines)

		score := clamp01(g.cfg.DietWeight*diet + g.cfg.CuisineWeight*cuisine + g.cfg.PriceWeight*price)
		c.BaseScore = score
		c.Score = score
		c.Explanation = baselineExplanation(&c, dietMatches)
		out = append(out, c)
	}

	sortByScoreThenID(out)
	return out, nil
}

// dietComponent returns the fraction of the candidate's diet tags present
// in the requested diets, plus the matching tags for the explanation. An
// unconstrained request matches perfectly; an untagged item cannot match a
// constrained one.
func dietComponent(tags, requested []string) (float64, []string) {
	if len(requested) == 0 {
		return 1.0, nil
	}
	if len(tags) == 0 {
		return 0.0, nil
	}
	want := stringSet(requested)
	var matches []string
	for _, t := range tags {
		if _, ok := want[strings.ToLower(t)]; ok {
			matches = append(matches, t)
		}
	}
	return float64(len(matches)) / float64(len(tags)), matches
}

// cuisineComponent is 1.0 for an exact match against the requested set and
// 0.0 otherwise. Unconstrained requests score 1.0.
func cuisineComponent(cuisine string, requested map[string]struct{}) float64 {
	if len(requested) == 0 {
		return 1.0
	}
	if cuisine == "" {
		return 0.0
	}
	if _, ok := requested[strings.ToLower(cuisine)]; ok {
		return 1.0
	}
	return 0.0
}

// priceComponent maps tier distance to a score: same tier 1.0, adjacent
// 0.5. Anything further is excluded outright, as is an unknown price when
// a tier was requested.
func priceComponent(price *float64, tier string) (score float64, excluded bool) {
	if tier == "" {
		return 1.0, false
	}
	if price == nil {
		return 0.0, true
	}
	distance := catalog.TierRank(catalog.PriceTier(*price)) - catalog.TierRank(tier)
	if distance < 0 {
		distance = -distance
	}
	switch distance {
	case 0:
		return 1.0, false
	case 1:
		return 0.5, false
	default:
		return 0.0, true
	}
}

// baselineExplanation names the factors that contributed to the score, in
// a fixed order so output is stable.
func baselineExplanation(c *Candidate, dietMatches []string) string {
	var bits []string
	if c.Cuisine != "" {
		bits = append(bits, "Cuisine: "+c.Cuisine)
	}
	if c.Price != nil {
		bits = append(bits, fmt.Sprintf("Price: $%.2f", *c.Price))
	}
	if len(dietMatches) > 0 {
		bits = append(bits, "Matches diet: "+strings.Join(dietMatches, ", "))
	}
	if c.Calories != nil {
		bits = append(bits, fmt.Sprintf("%d kcal", *c.Calories))
	}
	if len(bits) == 0 {
		return "Matches your preferences"
	}
	return strings.Join(bits, "; ")
}

// sortByScoreThenID orders candidates by score descending, breaking ties
// by item id so generator output is a total order.
func sortByScoreThenID(cands []Candidate) {
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].Score != cands[j].Score {
			return cands[i].Score > cands[j].Score
		}
		return cands[i].ItemID < cands[j].ItemID
	})
}

func stringSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[strings.ToLower(v)] = struct{}{}
	}
	return set
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
