// Eatsential - Health-Aware Meal Recommendation Engine
// Copyright 2026 Taylor Brown (TaylorBrown96)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TaylorBrown96/CSC510-proj3

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestRouter() http.Handler {
	handler := NewHandler(&stubEngine{}, &stubFeedbackStore{}, &stubPinger{})
	return NewRouter(handler, NewMiddleware(&MiddlewareConfig{
		RateLimitDisabled: true,
	})).Setup()
}

func TestRouter_Routes(t *testing.T) {
	t.Parallel()

	router := newTestRouter()

	tests := []struct {
		name       string
		method     string
		path       string
		userID     string
		wantStatus int
	}{
		{name: "health", method: http.MethodGet, path: "/api/v1/health", wantStatus: http.StatusOK},
		{name: "health live", method: http.MethodGet, path: "/api/v1/health/live", wantStatus: http.StatusOK},
		{name: "health ready", method: http.MethodGet, path: "/api/v1/health/ready", wantStatus: http.StatusOK},
		{name: "recommend meals", method: http.MethodPost, path: "/api/v1/recommendations/meals", userID: "u-1", wantStatus: http.StatusOK},
		{name: "recommend restaurants", method: http.MethodPost, path: "/api/v1/recommendations/restaurants", userID: "u-1", wantStatus: http.StatusOK},
		{name: "submit feedback", method: http.MethodPost, path: "/api/v1/feedback", userID: "u-1", wantStatus: http.StatusCreated},
		{name: "feedback states", method: http.MethodGet, path: "/api/v1/feedback?item_ids=m-1", userID: "u-1", wantStatus: http.StatusOK},
		{name: "metrics", method: http.MethodGet, path: "/metrics", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var body *strings.Reader
			switch tt.path {
			case "/api/v1/feedback":
				body = strings.NewReader(`{"item_id":"m-1","item_type":"meal","feedback_type":"like"}`)
			default:
				body = strings.NewReader(`{}`)
			}
			if tt.method == http.MethodGet {
				body = strings.NewReader("")
			}

			r := httptest.NewRequest(tt.method, tt.path, body)
			if tt.userID != "" {
				r.Header.Set("X-User-ID", tt.userID)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Errorf("Status = %d, want %d: %s", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestRouter_NotFound(t *testing.T) {
	t.Parallel()

	router := newTestRouter()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil)
	router.ServeHTTP(w, r)

	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d", w.Code)
	}
	resp := decodeEnvelope(t, w)
	if resp.Error == nil || resp.Error.Code != ErrCodeNotFound {
		t.Errorf("Expected error code %s, got %+v", ErrCodeNotFound, resp.Error)
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	router := newTestRouter()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodDelete, "/api/v1/recommendations/meals", nil)
	router.ServeHTTP(w, r)

	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("Expected status 405, got %d", w.Code)
	}
	resp := decodeEnvelope(t, w)
	if resp.Error == nil || resp.Error.Code != ErrCodeMethodNotAllowed {
		t.Errorf("Expected error code %s, got %+v", ErrCodeMethodNotAllowed, resp.Error)
	}
}

func TestRouter_SecurityHeaders(t *testing.T) {
	t.Parallel()

	router := newTestRouter()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	router.ServeHTTP(w, r)

	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
	}
	if got := w.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q, want DENY", got)
	}
	if got := w.Header().Get("Strict-Transport-Security"); got != "" {
		t.Errorf("Unexpected HSTS header on a plain HTTP request: %q", got)
	}
}

func TestRouter_RequestIDPropagatedToEnvelope(t *testing.T) {
	t.Parallel()

	router := newTestRouter()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations/meals", strings.NewReader(`{}`))
	router.ServeHTTP(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400 without X-User-ID, got %d", w.Code)
	}
	resp := decodeEnvelope(t, w)
	if resp.Error == nil || resp.Error.RequestID == "" {
		t.Error("Expected the error envelope to carry the request id")
	}
	if resp.Meta == nil || resp.Meta.RequestID == "" {
		t.Error("Expected the meta block to carry the request id")
	}
}

func TestSecurityHeaders_HSTSBehindTLSProxy(t *testing.T) {
	t.Parallel()

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := SecurityHeaders()(inner)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	r.Header.Set("X-Forwarded-Proto", "https")
	h.ServeHTTP(w, r)

	if got := w.Header().Get("Strict-Transport-Security"); got == "" {
		t.Error("Expected HSTS header when X-Forwarded-Proto is https")
	}
}
