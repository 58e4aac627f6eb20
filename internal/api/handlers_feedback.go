// Eatsential - Health-Aware Meal Recommendation Engine
// Copyright 2026 Taylor Brown (TaylorBrown96)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TaylorBrown96/CSC510-proj3

package api

import (
	"errors"
	"net/http"

	"github.com/TaylorBrown96/CSC510-proj3/internal/feedback"
	"github.com/TaylorBrown96/CSC510-proj3/internal/logging"
	"github.com/TaylorBrown96/CSC510-proj3/internal/validation"
)

// SubmitFeedback handles POST /api/v1/feedback. Resubmitting feedback for
// the same item replaces the stored type and notes; the acknowledgement
// carries the record's stable id and both timestamps.
func (h *Handler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	userID, ok := requestUserID(r)
	if !ok {
		rw.ValidationError("X-User-ID header is required", nil)
		return
	}

	var body feedbackRequest
	if err := decodeJSON(w, r, &body); err != nil {
		rw.BadRequest("Request body is not valid JSON")
		return
	}
	if verr := validation.ValidateStruct(&body); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	rec := &feedback.Record{
		UserID:       userID,
		ItemID:       body.ItemID,
		ItemType:     body.ItemType,
		FeedbackType: body.FeedbackType,
		Notes:        body.Notes,
	}
	if err := h.feedback.Submit(r.Context(), rec); err != nil {
		h.writeFeedbackError(rw, r, err)
		return
	}

	logging.CtxInfo(r.Context()).
		Str("item_id", rec.ItemID).
		Str("item_type", rec.ItemType).
		Str("feedback_type", rec.FeedbackType).
		Msg("feedback recorded")
	rw.Created(rec)
}

// FeedbackStates handles GET /api/v1/feedback?item_ids=a,b,c&item_type=meal.
// The response maps each rated item id to "like" or "dislike"; ids the
// user never rated are omitted.
func (h *Handler) FeedbackStates(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	userID, ok := requestUserID(r)
	if !ok {
		rw.ValidationError("X-User-ID header is required", nil)
		return
	}

	query := feedbackStatesRequest{
		ItemIDs:  splitCSV(r.URL.Query().Get("item_ids")),
		ItemType: r.URL.Query().Get("item_type"),
	}
	if query.ItemType == "" {
		query.ItemType = feedback.ItemTypeMeal
	}
	if verr := validation.ValidateStruct(&query); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	states, err := h.feedback.States(r.Context(), userID, query.ItemIDs, query.ItemType)
	if err != nil {
		h.writeFeedbackError(rw, r, err)
		return
	}
	if states == nil {
		states = map[string]string{}
	}

	rw.Success(map[string]interface{}{"states": states})
}

// writeFeedbackError maps store failures onto the envelope. Validation
// sentinels land on 400; everything inside the store is a storage error.
func (h *Handler) writeFeedbackError(rw *ResponseWriter, r *http.Request, err error) {
	var serr *feedback.StoreError
	switch {
	case errors.As(err, &serr):
		rw.DatabaseError(err)
	case errors.Is(err, feedback.ErrStoreClosed):
		rw.ServiceUnavailable("Feedback store is shutting down")
	default:
		logging.CtxErr(r.Context(), err).Msg("feedback request rejected")
		rw.BadRequest(err.Error())
	}
}
