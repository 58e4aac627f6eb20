// Eatsential - Health-Aware Meal Recommendation Engine
// Copyright 2026 Taylor Brown (TaylorBrown96)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TaylorBrown96/CSC510-proj3

package catalog

import (
	"testing"
)

func TestPriceTier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		price float64
		want  string
	}{
		{"free", 0, TierBudget},
		{"cheap", 7.50, TierBudget},
		{"just under budget boundary", 9.99, TierBudget},
		{"exactly ten", 10.00, TierModerate},
		{"midrange", 16.00, TierModerate},
		{"just under moderate boundary", 24.99, TierModerate},
		{"exactly twenty five", 25.00, TierPricey},
		{"pricey", 38.00, TierPricey},
		{"exactly forty five", 45.00, TierPricey},
		{"just above forty five", 45.01, TierUpscale},
		{"upscale", 58.00, TierUpscale},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := PriceTier(tt.price); got != tt.want {
				t.Errorf("PriceTier(%v) = %q, want %q", tt.price, got, tt.want)
			}
		})
	}
}

func TestTierRank(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tier string
		want int
	}{
		{TierBudget, 0},
		{TierModerate, 1},
		{TierPricey, 2},
		{TierUpscale, 3},
		{"", -1},
		{"$$$$$", -1},
		{"cheap", -1},
	}

	for _, tt := range tests {
		if got := TierRank(tt.tier); got != tt.want {
			t.Errorf("TierRank(%q) = %d, want %d", tt.tier, got, tt.want)
		}
	}
}

func TestValidTier(t *testing.T) {
	t.Parallel()

	valid := []string{"$", "$$", "$$$", "$$$$"}
	for _, tier := range valid {
		if !ValidTier(tier) {
			t.Errorf("ValidTier(%q) = false, want true", tier)
		}
	}

	invalid := []string{"", "$$$$$", "money", "4"}
	for _, tier := range invalid {
		if ValidTier(tier) {
			t.Errorf("ValidTier(%q) = true, want false", tier)
		}
	}
}

func TestMenuItemTier(t *testing.T) {
	t.Parallel()

	m := &MenuItem{Price: 12.50}
	if got := m.Tier(); got != TierModerate {
		t.Errorf("Tier() = %q, want %q", got, TierModerate)
	}
}

func TestHealthProfileAllergenSet(t *testing.T) {
	t.Parallel()

	profile := &HealthProfile{
		UserID: "u-1",
		Allergies: []Allergy{
			{AllergenID: "peanut", AllergenName: "Peanut", Severity: "severe"},
			{AllergenID: "shellfish", AllergenName: "Shellfish", Severity: "mild"},
		},
	}

	set := profile.AllergenSet()
	if len(set) != 2 {
		t.Fatalf("AllergenSet has %d entries, want 2", len(set))
	}
	if _, ok := set["peanut"]; !ok {
		t.Error("AllergenSet missing peanut")
	}
	if _, ok := set["shellfish"]; !ok {
		t.Error("AllergenSet missing shellfish")
	}

	names := profile.AllergenNames()
	if len(names) != 2 || names[0] != "Peanut" || names[1] != "Shellfish" {
		t.Errorf("AllergenNames = %v, want [Peanut Shellfish]", names)
	}
}

func TestHealthProfileEmpty(t *testing.T) {
	t.Parallel()

	profile := &HealthProfile{UserID: "u-unknown"}

	if len(profile.AllergenSet()) != 0 {
		t.Error("empty profile should have an empty allergen set")
	}
	if len(profile.AllergenNames()) != 0 {
		t.Error("empty profile should have no allergen names")
	}
}
