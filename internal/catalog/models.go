// Eatsential - Health-Aware Meal Recommendation Engine
// Copyright 2026 Taylor Brown (TaylorBrown96)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TaylorBrown96/CSC510-proj3

package catalog

// Price tiers as displayed to users. Tier boundaries come from the product
// definition: $ under 10, $$ 10-25, $$$ 25-45, $$$$ above 45 (USD).
const (
	TierBudget   = "$"
	TierModerate = "$$"
	TierPricey   = "$$$"
	TierUpscale  = "$$$$"
)

// Tier boundaries in dollars. A price exactly on a boundary belongs to the
// higher tier, matching the product's "10-25" reading of $$.
const (
	tierBudgetMax   = 10.0
	tierModerateMax = 25.0
	tierPriceyMax   = 45.0
)

// PriceTier buckets a menu price into one of the four display tiers.
func PriceTier(price float64) string {
	switch {
	case price < tierBudgetMax:
		return TierBudget
	case price < tierModerateMax:
		return TierModerate
	case price <= tierPriceyMax:
		return TierPricey
	default:
		return TierUpscale
	}
}

// TierRank returns the ordinal of a price tier (0 for $, 3 for $$$$), or -1
// for anything that is not a tier. Ranks let the scorer treat neighboring
// tiers as partial matches.
func TierRank(tier string) int {
	switch tier {
	case TierBudget:
		return 0
	case TierModerate:
		return 1
	case TierPricey:
		return 2
	case TierUpscale:
		return 3
	default:
		return -1
	}
}

// ValidTier reports whether s is one of the four price tiers.
func ValidTier(s string) bool {
	return TierRank(s) >= 0
}

// Allergen is one entry of the allergen vocabulary. IDs are stable slugs
// ("peanut", "shellfish"); names are the display form.
type Allergen struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MenuItem is one dish as the recommendation pipeline consumes it: the row
// itself plus denormalized restaurant fields and the allergen/diet-tag
// relations, so scoring never goes back to the database.
type MenuItem struct {
	ID                string   `json:"id"`
	RestaurantID      string   `json:"restaurant_id"`
	RestaurantName    string   `json:"restaurant_name"`
	RestaurantPlaceID string   `json:"restaurant_place_id,omitempty"`
	Name              string   `json:"name"`
	Description       string   `json:"description,omitempty"`
	Cuisine           string   `json:"cuisine"`
	Price             float64  `json:"price"`
	Calories          *int     `json:"calories,omitempty"`
	DietTags          []string `json:"diet_tags"`
	AllergenIDs       []string `json:"allergen_ids"`
}

// Tier returns the item's price tier.
func (m *MenuItem) Tier() string {
	return PriceTier(m.Price)
}

// Restaurant is one restaurant with menu aggregates. AvgPrice and ItemCount
// are computed over the menu by Restaurants.
type Restaurant struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Cuisine   string  `json:"cuisine"`
	PlaceID   string  `json:"place_id,omitempty"`
	Address   string  `json:"address,omitempty"`
	AvgPrice  float64 `json:"avg_price"`
	PriceTier string  `json:"price_tier"`
	ItemCount int     `json:"item_count"`
}

// Allergy is one user allergy with its vocabulary entry resolved. Severity
// is informational only; filtering is zero-tolerance regardless of severity.
type Allergy struct {
	AllergenID   string `json:"allergen_id"`
	AllergenName string `json:"allergen_name"`
	Severity     string `json:"severity"`
}

// DietaryPreference is one user dietary preference. Strict preferences
// (vegan, vegetarian, gluten_free, keto) exclude conflicting items before
// scoring; non-strict ones only contribute to the dietary match score.
type DietaryPreference struct {
	Preference string `json:"preference"`
	IsStrict   bool   `json:"is_strict"`
}

// HealthProfile is the per-user safety and preference data the pipeline
// filters and scores against. A user without catalog rows gets an empty
// profile: no allergies, no preferences, nothing filtered.
type HealthProfile struct {
	UserID      string              `json:"user_id"`
	Username    string              `json:"username,omitempty"`
	Allergies   []Allergy           `json:"allergies"`
	Preferences []DietaryPreference `json:"preferences"`
}

// AllergenSet returns the profile's allergen IDs as a set for intersection
// checks.
func (p *HealthProfile) AllergenSet() map[string]struct{} {
	set := make(map[string]struct{}, len(p.Allergies))
	for _, a := range p.Allergies {
		set[a.AllergenID] = struct{}{}
	}
	return set
}

// AllergenNames returns the display names of the profile's allergens, in
// the stored order.
func (p *HealthProfile) AllergenNames() []string {
	names := make([]string, 0, len(p.Allergies))
	for _, a := range p.Allergies {
		names = append(names, a.AllergenName)
	}
	return names
}
