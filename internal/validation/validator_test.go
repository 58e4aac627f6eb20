// Eatsential - Health-Aware Meal Recommendation Engine
// Copyright 2026 Taylor Brown (TaylorBrown96)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TaylorBrown96/CSC510-proj3

package validation

import (
	"strings"
	"testing"
)

// ===================================================================================================
// Singleton Validator Tests
// ===================================================================================================

func TestGetValidator_Singleton(t *testing.T) {
	// Test that GetValidator returns the same instance
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}

	if v1 == nil {
		t.Error("GetValidator() should not return nil")
	}
}

// ===================================================================================================
// ValidateStruct Tests
// ===================================================================================================

// TestStruct mirrors the shape of a recommendation request for basic validation tests
type TestStruct struct {
	Query   string `validate:"required,min=1,max=500"`
	Limit   int    `validate:"omitempty,min=1,max=50"`
	Mode    string `validate:"omitempty,oneof=llm baseline"`
	Verbose bool
}

func TestValidateStruct_Valid(t *testing.T) {
	tests := []struct {
		name  string
		input TestStruct
	}{
		{
			name: "all valid fields",
			input: TestStruct{
				Query: "something spicy without peanuts",
				Limit: 10,
				Mode:  "llm",
			},
		},
		{
			name: "minimum values",
			input: TestStruct{
				Query: "a",
				Limit: 1,
			},
		},
		{
			name: "maximum values",
			input: TestStruct{
				Query: strings.Repeat("x", 500),
				Limit: 50,
				Mode:  "baseline",
			},
		},
		{
			name: "optional fields omitted",
			input: TestStruct{
				Query: "vegan lunch",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.input)
			if err != nil {
				t.Errorf("ValidateStruct() returned unexpected error: %v", err)
			}
		})
	}
}

func TestValidateStruct_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		input     TestStruct
		wantField string
		wantTag   string
	}{
		{
			name: "missing required query",
			input: TestStruct{
				Query: "",
				Limit: 10,
			},
			wantField: "Query",
			wantTag:   "required",
		},
		{
			name: "query too long",
			input: TestStruct{
				Query: strings.Repeat("x", 501),
			},
			wantField: "Query",
			wantTag:   "max",
		},
		{
			name: "limit too high",
			input: TestStruct{
				Query: "lunch",
				Limit: 100,
			},
			wantField: "Limit",
			wantTag:   "max",
		},
		{
			name: "negative limit",
			input: TestStruct{
				Query: "lunch",
				Limit: -1,
			},
			wantField: "Limit",
			wantTag:   "min",
		},
		{
			name: "unknown mode",
			input: TestStruct{
				Query: "lunch",
				Mode:  "hybrid",
			},
			wantField: "Mode",
			wantTag:   "oneof",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.input)
			if err == nil {
				t.Fatal("ValidateStruct() should have returned an error")
			}

			errs := err.Errors()
			if len(errs) == 0 {
				t.Fatal("ValidationErrors should contain at least one error")
			}

			found := false
			for _, e := range errs {
				if e.Field() == tt.wantField && e.Tag() == tt.wantTag {
					found = true
					break
				}
			}

			if !found {
				t.Errorf("Expected error on field %s with tag %s, got: %v", tt.wantField, tt.wantTag, errs)
			}
		})
	}
}

// ===================================================================================================
// ToAPIError Tests
// ===================================================================================================

func TestToAPIError_SingleError(t *testing.T) {
	input := TestStruct{
		Query: "", // required field missing
		Limit: 10,
	}

	err := ValidateStruct(&input)
	if err == nil {
		t.Fatal("Expected validation error")
	}

	apiErr := err.ToAPIError()

	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Expected code VALIDATION_ERROR, got %s", apiErr.Code)
	}

	if apiErr.Message == "" {
		t.Error("Expected non-empty message")
	}

	// Should contain field name in details
	if apiErr.Details == nil {
		t.Error("Expected details to be set")
	}
}

func TestToAPIError_MultipleErrors(t *testing.T) {
	input := TestStruct{
		Query: "", // required field missing
		Limit: 100,
		Mode:  "hybrid",
	}

	err := ValidateStruct(&input)
	if err == nil {
		t.Fatal("Expected validation error")
	}

	apiErr := err.ToAPIError()

	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Expected code VALIDATION_ERROR, got %s", apiErr.Code)
	}

	// Details should contain field information
	if apiErr.Details == nil {
		t.Error("Expected details to contain field information")
	}

	if _, ok := apiErr.Details["fields"]; !ok {
		t.Error("Expected details to contain 'fields' key")
	}
}

// ===================================================================================================
// UUID Validation Tests
// ===================================================================================================

type FeedbackInput struct {
	ItemID       string `validate:"required,uuid4"`
	ItemType     string `validate:"required,oneof=meal restaurant"`
	FeedbackType string `validate:"required,oneof=like dislike"`
}

func TestUUIDValidation_Valid(t *testing.T) {
	tests := []struct {
		name   string
		itemID string
	}{
		{"lowercase uuid4", "5c9f8e1a-12ab-4c3d-9e8f-0a1b2c3d4e5f"},
		{"uppercase uuid4", "5C9F8E1A-12AB-4C3D-9E8F-0A1B2C3D4E5F"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := FeedbackInput{
				ItemID:       tt.itemID,
				ItemType:     "meal",
				FeedbackType: "like",
			}
			err := ValidateStruct(&input)
			if err != nil {
				t.Errorf("ValidateStruct() returned unexpected error for id %q: %v", tt.itemID, err)
			}
		})
	}
}

func TestUUIDValidation_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		itemID string
	}{
		{"empty", ""},
		{"not a uuid", "meal-123"},
		{"truncated", "5c9f8e1a-12ab-4c3d-9e8f"},
		{"wrong version", "5c9f8e1a-12ab-1c3d-9e8f-0a1b2c3d4e5f"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := FeedbackInput{
				ItemID:       tt.itemID,
				ItemType:     "meal",
				FeedbackType: "like",
			}
			err := ValidateStruct(&input)
			if err == nil {
				t.Errorf("ValidateStruct() should have returned error for id %q", tt.itemID)
			}
		})
	}
}

// ===================================================================================================
// Oneof Validation Tests
// ===================================================================================================

func TestOneofValidation_Valid(t *testing.T) {
	tests := []struct {
		name         string
		itemType     string
		feedbackType string
	}{
		{"meal like", "meal", "like"},
		{"meal dislike", "meal", "dislike"},
		{"restaurant like", "restaurant", "like"},
		{"restaurant dislike", "restaurant", "dislike"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := FeedbackInput{
				ItemID:       "5c9f8e1a-12ab-4c3d-9e8f-0a1b2c3d4e5f",
				ItemType:     tt.itemType,
				FeedbackType: tt.feedbackType,
			}
			err := ValidateStruct(&input)
			if err != nil {
				t.Errorf("ValidateStruct() returned unexpected error: %v", err)
			}
		})
	}
}

func TestOneofValidation_Invalid(t *testing.T) {
	tests := []struct {
		name         string
		itemType     string
		feedbackType string
		wantField    string
	}{
		{"invalid item type", "drink", "like", "ItemType"},
		{"partial match", "meals", "like", "ItemType"},
		{"case sensitive", "Meal", "like", "ItemType"},
		{"invalid feedback type", "meal", "love", "FeedbackType"},
		{"neutral not allowed", "meal", "neutral", "FeedbackType"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := FeedbackInput{
				ItemID:       "5c9f8e1a-12ab-4c3d-9e8f-0a1b2c3d4e5f",
				ItemType:     tt.itemType,
				FeedbackType: tt.feedbackType,
			}
			err := ValidateStruct(&input)
			if err == nil {
				t.Fatalf("ValidateStruct() should have returned error for %s=%q", tt.wantField, tt.itemType)
			}

			found := false
			for _, e := range err.Errors() {
				if e.Field() == tt.wantField && e.Tag() == "oneof" {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("Expected oneof error on field %s, got: %v", tt.wantField, err.Errors())
			}
		})
	}
}

// ===================================================================================================
// List Element Validation Tests
// ===================================================================================================

type PreferencesStruct struct {
	CuisineTypes []string `validate:"omitempty,dive,min=1,max=100"`
	Allergens    []string `validate:"omitempty,dive,uuid4"`
}

func TestDiveValidation_Valid(t *testing.T) {
	tests := []struct {
		name  string
		input PreferencesStruct
	}{
		{"empty lists", PreferencesStruct{}},
		{"cuisines", PreferencesStruct{CuisineTypes: []string{"italian", "thai"}}},
		{
			"allergen ids",
			PreferencesStruct{Allergens: []string{
				"5c9f8e1a-12ab-4c3d-9e8f-0a1b2c3d4e5f",
				"0b1c2d3e-4f5a-4b6c-8d7e-9f0a1b2c3d4e",
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.input)
			if err != nil {
				t.Errorf("ValidateStruct() returned unexpected error: %v", err)
			}
		})
	}
}

func TestDiveValidation_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input PreferencesStruct
	}{
		{"empty cuisine entry", PreferencesStruct{CuisineTypes: []string{"italian", ""}}},
		{"bad allergen id", PreferencesStruct{Allergens: []string{"peanut"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.input)
			if err == nil {
				t.Error("ValidateStruct() should have returned error")
			}
		})
	}
}

// ===================================================================================================
// WithRequiredStructEnabled Tests
// ===================================================================================================

type NestedStruct struct {
	Inner InnerStruct `validate:"required"`
}

type InnerStruct struct {
	Value string `validate:"required"`
}

func TestNestedStructValidation(t *testing.T) {
	// Valid nested struct
	valid := NestedStruct{
		Inner: InnerStruct{Value: "test"},
	}

	err := ValidateStruct(&valid)
	if err != nil {
		t.Errorf("ValidateStruct() returned unexpected error for valid nested struct: %v", err)
	}

	// Invalid - missing inner value
	invalid := NestedStruct{
		Inner: InnerStruct{Value: ""},
	}

	err = ValidateStruct(&invalid)
	if err == nil {
		t.Error("ValidateStruct() should have returned error for invalid nested struct")
	}
}

// ===================================================================================================
// Score Range Validation Tests
// ===================================================================================================

type ScoreStruct struct {
	Score     float64 `validate:"gte=0,lte=1"`
	LikeBoost float64 `validate:"omitempty,gt=1"`
}

func TestScoreRangeValidation_Valid(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		boost float64
	}{
		{"zero score", 0, 0},
		{"mid score", 0.65, 1.2},
		{"max score", 1, 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := ScoreStruct{Score: tt.score, LikeBoost: tt.boost}
			err := ValidateStruct(&input)
			if err != nil {
				t.Errorf("ValidateStruct() returned unexpected error: %v", err)
			}
		})
	}
}

func TestScoreRangeValidation_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		score     float64
		boost     float64
		wantField string
	}{
		{"score above one", 1.2, 0, "Score"},
		{"negative score", -0.1, 0, "Score"},
		{"boost below one", 0.5, 0.9, "LikeBoost"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := ScoreStruct{Score: tt.score, LikeBoost: tt.boost}
			err := ValidateStruct(&input)
			if err == nil {
				t.Errorf("ValidateStruct() should have returned error for score=%v, boost=%v", tt.score, tt.boost)
			}
		})
	}
}

// ===================================================================================================
// Error Message Translation Tests
// ===================================================================================================

func TestErrorMessages(t *testing.T) {
	input := TestStruct{
		Query: "",
		Limit: 100,
	}

	err := ValidateStruct(&input)
	if err == nil {
		t.Fatal("Expected validation error")
	}

	// Error message should be human-readable
	msg := err.Error()
	if msg == "" {
		t.Error("Error message should not be empty")
	}

	// Should contain field name
	if !strings.Contains(msg, "Query") && !strings.Contains(msg, "Limit") {
		t.Errorf("Error message should reference failed field: %s", msg)
	}
}

func TestErrorMessages_OneofIncludesChoices(t *testing.T) {
	input := FeedbackInput{
		ItemID:       "5c9f8e1a-12ab-4c3d-9e8f-0a1b2c3d4e5f",
		ItemType:     "meal",
		FeedbackType: "love",
	}

	err := ValidateStruct(&input)
	if err == nil {
		t.Fatal("Expected validation error")
	}

	msg := err.Error()
	if !strings.Contains(msg, "must be one of") {
		t.Errorf("oneof error should list allowed values, got: %s", msg)
	}
}
