// Eatsential - Health-Aware Meal Recommendation Engine
// Copyright 2026 Taylor Brown (TaylorBrown96)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TaylorBrown96/CSC510-proj3

/*
Package services provides suture.Service wrappers for Eatsential components.

This package adapts application components to the suture v4 supervision
model, translating their native lifecycle patterns (ListenAndServe, ticker
loops) into suture's context-aware Serve pattern.

# Overview

Each wrapper implements the suture.Service interface:

	type Service interface {
	    Serve(ctx context.Context) error
	}

The wrappers handle:
  - Lifecycle translation to the Serve pattern
  - Graceful shutdown via context cancellation
  - Error propagation for supervisor restart decisions
  - Service identification via fmt.Stringer

# Available Services

HTTP Server (HTTPServerService):
  - Wraps *http.Server with graceful shutdown
  - Converts ListenAndServe pattern to Serve
  - Configurable shutdown timeout for draining connections

Feedback GC (FeedbackGCService):
  - Drives periodic BadgerDB value-log garbage collection on the
    feedback store
  - Logs and retries failed passes instead of crashing the loop
  - Stops cleanly when the store is closed

# Usage Example

Creating and registering services:

	import (
	    "net/http"
	    "time"

	    "github.com/TaylorBrown96/CSC510-proj3/internal/supervisor"
	    "github.com/TaylorBrown96/CSC510-proj3/internal/supervisor/services"
	)

	func setupSupervisor(server *http.Server, store *feedback.Store) {
	    tree, _ := supervisor.NewSupervisorTree(logger, config)

	    // HTTP server with 10s shutdown timeout
	    httpSvc := services.NewHTTPServerService(server, 10*time.Second)
	    tree.AddAPIService(httpSvc)

	    // Feedback store maintenance
	    gcSvc := services.NewFeedbackGCService(store, 10*time.Minute)
	    tree.AddDataService(gcSvc)

	    // Start supervision
	    tree.Serve(ctx)
	}

# Dependency Direction

Wrappers depend on small locally-declared interfaces (HTTPServer,
ValueLogGC) rather than concrete component types, so the package imports
stay one-directional and tests can substitute mocks.

# Error Semantics

A wrapper's Serve returns:
  - ctx.Err() after a graceful, context-driven shutdown
  - nil when the wrapped component finished for good (suture will not
    restart the service)
  - a non-nil error when the component crashed (suture restarts it per the
    tree's backoff policy)
*/
package services
