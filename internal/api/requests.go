// Eatsential - Health-Aware Meal Recommendation Engine
// Copyright 2026 Taylor Brown (TaylorBrown96)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TaylorBrown96/CSC510-proj3

package api

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/TaylorBrown96/CSC510-proj3/internal/recommend"
)

// userIDHeader carries the authenticated user, injected by the gateway.
const userIDHeader = "X-User-ID"

// maxBodyBytes caps request bodies. Recommendation and feedback payloads
// are small; anything near this size is abuse.
const maxBodyBytes = 1 << 20 // 1 MiB

// recommendationRequest is the request body for both recommendation
// endpoints. Every field is optional; mode, limit, and filter values are
// validated by the engine so the accepted ranges live in one place.
type recommendationRequest struct {
	Mode    string            `json:"mode"`
	Limit   int               `json:"limit"`
	Filters recommend.Filters `json:"filters"`
}

// feedbackRequest is the request body for POST /api/v1/feedback.
type feedbackRequest struct {
	ItemID       string `json:"item_id" validate:"required,min=1,max=128"`
	ItemType     string `json:"item_type" validate:"required,oneof=meal restaurant"`
	FeedbackType string `json:"feedback_type" validate:"required,oneof=like dislike"`
	Notes        string `json:"notes" validate:"omitempty,max=1000"`
}

// feedbackStatesRequest is the validated query for GET /api/v1/feedback.
type feedbackStatesRequest struct {
	ItemIDs  []string `validate:"required,min=1,max=200,dive,required"`
	ItemType string   `validate:"required,oneof=meal restaurant"`
}

// requestUserID extracts the gateway-injected user id. The second return
// is false when the header is missing or blank.
func requestUserID(r *http.Request) (string, bool) {
	id := strings.TrimSpace(r.Header.Get(userIDHeader))
	return id, id != ""
}

// decodeJSON decodes the request body into dst. An empty body is not an
// error; dst keeps its zero values and any required-field validation
// happens downstream.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	err := json.NewDecoder(r.Body).Decode(dst)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// splitCSV splits a comma-separated query value, trimming whitespace and
// dropping empty entries.
func splitCSV(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
