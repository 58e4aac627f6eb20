// Eatsential - Health-Aware Meal Recommendation Engine
// Copyright 2026 Taylor Brown (TaylorBrown96)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TaylorBrown96/CSC510-proj3

// Package validation provides struct validation using go-playground/validator v10.
//
// This package wraps the go-playground/validator library to provide a thread-safe
// singleton validator instance with user-friendly error messages. It integrates
// with the application's API error format for consistent error responses.
//
// # Overview
//
// The package provides:
//   - Thread-safe singleton validator (initialized once, cached struct info)
//   - Comprehensive error translation to human-readable messages
//   - APIError conversion matching the application's error format
//   - Built-in validator support (uuid4, oneof, min/max, dive, etc.)
//   - Future v11 compatibility with WithRequiredStructEnabled
//
// # Quick Start
//
//	type FeedbackRequest struct {
//	    ItemID       string `json:"item_id" validate:"required,uuid4"`
//	    ItemType     string `json:"item_type" validate:"required,oneof=meal restaurant"`
//	    FeedbackType string `json:"feedback_type" validate:"required,oneof=like dislike"`
//	}
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    var req FeedbackRequest
//	    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
//	        // handle decode error
//	    }
//
//	    if verr := validation.ValidateStruct(&req); verr != nil {
//	        apiErr := verr.ToAPIError()
//	        respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	        return
//	    }
//
//	    // proceed with valid request
//	}
//
// # Common Validation Tags
//
// String validations:
//   - required: Field must not be empty
//   - min=n: Minimum length n characters
//   - max=n: Maximum length n characters
//   - uuid4: Valid version-4 UUID (item and restaurant identifiers)
//   - url: Valid URL format
//
// Numeric validations:
//   - gte=n: Greater than or equal to n
//   - lte=n: Less than or equal to n
//   - gt=n: Greater than n
//   - lt=n: Less than n
//   - min=n: Minimum value n
//   - max=n: Maximum value n
//
// Enum validations:
//   - oneof=a b c: Must be one of the specified values
//
// Collection validations:
//   - dive: Apply subsequent tags to each element (allergen and diet lists)
//
// # Error Types
//
// ValidationError represents a single field validation failure:
//
//	type ValidationError struct {
//	    Field()   string      // Struct field name
//	    Tag()     string      // Validation tag that failed
//	    Param()   string      // Tag parameter (e.g., "50" for max=50)
//	    Value()   interface{} // Actual value that failed
//	    Error()   string      // Human-readable message
//	}
//
// RequestValidationError aggregates multiple field errors:
//
//	type RequestValidationError struct {
//	    Errors() []ValidationError
//	    Error()  string           // Combined message
//	    ToAPIError() *APIError    // Convert to API error format
//	}
//
// # API Error Integration
//
// The ToAPIError method produces errors matching the application format:
//
//	// Single field error
//	{
//	    "code": "VALIDATION_ERROR",
//	    "message": "ItemID must be a valid UUID",
//	    "details": {"field": "ItemID", "tag": "uuid4", "value": "not-a-uuid"}
//	}
//
//	// Multiple field errors
//	{
//	    "code": "VALIDATION_ERROR",
//	    "message": "ItemID: must be a valid UUID; FeedbackType: required",
//	    "details": {
//	        "fields": [
//	            {"field": "ItemID", "tag": "uuid4", "message": "..."},
//	            {"field": "FeedbackType", "tag": "required", "message": "..."}
//	        ]
//	    }
//	}
//
// # Error Message Translation
//
// Human-readable messages are generated for common validation tags:
//
//	required       -> "ItemID is required"
//	uuid4          -> "ItemID must be a valid UUID"
//	min=1          -> "Limit must be at least 1"
//	max=50         -> "Limit must be at most 50"
//	gte=0          -> "Score must be greater than or equal to 0"
//	lte=1          -> "Score must be less than or equal to 1"
//	oneof=like dislike -> "FeedbackType must be one of: like dislike"
//
// # Struct Tag Examples
//
// Recommendation request validation:
//
//	type MealRecommendationRequest struct {
//	    Limit     int      `json:"limit" validate:"omitempty,min=1,max=50"`
//	    Mode      string   `json:"mode" validate:"omitempty,oneof=llm baseline"`
//	    CuisineTypes []string `json:"cuisine_types" validate:"omitempty,dive,min=1"`
//	    PriceRange   string   `json:"price_range" validate:"omitempty,oneof=$ $$ $$$"`
//	}
//
// # Thread Safety
//
// The singleton validator is initialized once and safe for concurrent use:
//
//	validate := validation.GetValidator()  // Thread-safe
//	err := validation.ValidateStruct(&req) // Thread-safe
//
// # Performance
//
// The validator caches struct reflection information:
//   - First validation of a struct type: ~1ms (reflection + caching)
//   - Subsequent validations: ~10us (cached)
//   - Memory: ~500 bytes per cached struct type
//
// # See Also
//
//   - internal/api: Request handlers using validation
//   - github.com/go-playground/validator/v10: Underlying library
package validation
