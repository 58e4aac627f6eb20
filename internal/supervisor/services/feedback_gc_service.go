// Eatsential - Health-Aware Meal Recommendation Engine
// Copyright 2026 Taylor Brown (TaylorBrown96)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TaylorBrown96/CSC510-proj3

package services

import (
	"context"
	"errors"
	"time"

	"github.com/TaylorBrown96/CSC510-proj3/internal/feedback"
	"github.com/TaylorBrown96/CSC510-proj3/internal/logging"
)

// ValueLogGC is the slice of the feedback store this service drives.
//
// Satisfied by *feedback.Store. RunGC performs one BadgerDB value-log
// garbage collection pass and returns feedback.ErrStoreClosed once the
// store has been closed.
type ValueLogGC interface {
	RunGC() error
}

// FeedbackGCService runs periodic value-log garbage collection on the
// feedback store as a supervised service.
//
// BadgerDB never reclaims value-log space on its own; something has to call
// RunValueLogGC on a cadence. Wrapping that loop as a suture service gives
// it the same restart and shutdown semantics as every other background
// component.
//
// Example usage:
//
//	svc := services.NewFeedbackGCService(store, cfg.Feedback.GCInterval)
//	tree.AddDataService(svc)
type FeedbackGCService struct {
	store    ValueLogGC
	interval time.Duration
	name     string
}

// NewFeedbackGCService creates a new feedback GC service wrapper.
//
// A non-positive interval falls back to 10 minutes, matching the feedback
// config default.
func NewFeedbackGCService(store ValueLogGC, interval time.Duration) *FeedbackGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &FeedbackGCService{
		store:    store,
		interval: interval,
		name:     "feedback-gc",
	}
}

// Serve implements suture.Service.
//
// This method ticks at the configured interval and runs one GC pass per
// tick. GC errors are logged, not returned: a failed pass is retried on the
// next tick, and returning the error would make suture restart a loop that
// is already self-healing. A closed store ends the service cleanly with a
// nil return so suture does not restart it.
func (s *FeedbackGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			err := s.store.RunGC()
			switch {
			case err == nil:
			case errors.Is(err, feedback.ErrStoreClosed):
				logging.Info().Msg("Feedback store closed, stopping GC service")
				return nil
			default:
				logging.Warn().Err(err).Msg("Feedback value-log GC pass failed")
			}
		}
	}
}

// String implements fmt.Stringer for logging.
// Suture uses this to identify the service in log messages.
func (s *FeedbackGCService) String() string {
	return s.name
}
