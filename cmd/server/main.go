// Eatsential - Health-Aware Meal Recommendation Engine
// Copyright 2026 Taylor Brown (TaylorBrown96)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TaylorBrown96/CSC510-proj3

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/TaylorBrown96/CSC510-proj3/internal/api"
	"github.com/TaylorBrown96/CSC510-proj3/internal/catalog"
	"github.com/TaylorBrown96/CSC510-proj3/internal/config"
	"github.com/TaylorBrown96/CSC510-proj3/internal/feedback"
	"github.com/TaylorBrown96/CSC510-proj3/internal/logging"
	"github.com/TaylorBrown96/CSC510-proj3/internal/supervisor"
	"github.com/TaylorBrown96/CSC510-proj3/internal/supervisor/services"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize zerolog with configuration
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().Msg("Starting Eatsential with supervisor tree")
	logging.Info().
		Str("catalog_path", cfg.Database.Path).
		Str("feedback_path", cfg.Feedback.Path).
		Str("llm_provider", cfg.LLM.EffectiveProvider()).
		Str("mode", cfg.Recommend.Mode).
		Msg("Configuration loaded")

	// Initialize the catalog store (embedded DuckDB)
	catalogStore, err := catalog.New(&cfg.Database, cfg.Recommend.SnapshotCacheTTL)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize catalog store")
	}
	defer func() {
		if err := catalogStore.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing catalog store")
		}
	}()
	logging.Info().Msg("Catalog store initialized successfully")

	// Seed demo data if enabled (for local development and CI)
	if cfg.Database.SeedDemoData {
		logging.Info().Msg("Demo catalog seeding enabled (SEED_DEMO_DATA=true)")
		if err := catalogStore.Seed(context.Background()); err != nil {
			// Close the store before fatal exit so the defer runs
			if closeErr := catalogStore.Close(); closeErr != nil {
				logging.Error().Err(closeErr).Msg("Error closing catalog store")
			}
			logging.Fatal().Err(err).Msg("Failed to seed demo catalog")
		}
	}

	// Initialize the feedback store (embedded BadgerDB)
	feedbackStore, err := feedback.Open(&cfg.Feedback)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open feedback store")
	}
	defer func() {
		if err := feedbackStore.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing feedback store")
		}
	}()

	// Build the recommendation engine (generators, safety filter, feedback
	// adjuster, diversity selector) on top of both stores.
	engine, err := initRecommend(cfg, catalogStore, feedbackStore)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize recommendation engine")
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create structured logger for supervisor using our slog adapter.
	// This bridges zerolog to slog for sutureslog compatibility.
	slogLogger := logging.NewSlogLogger()

	// Create supervisor tree
	tree, err := supervisor.NewSupervisorTree(slogLogger, supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	handler := api.NewHandler(engine, feedbackStore, catalogStore)
	router := api.NewRouter(handler, api.NewMiddlewareFromConfig(&cfg.API))

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	// === ADD SERVICES TO SUPERVISOR TREE ===

	// Data layer: feedback store value-log maintenance
	tree.AddDataService(services.NewFeedbackGCService(feedbackStore, cfg.Feedback.GCInterval))
	logging.Info().Dur("interval", cfg.Feedback.GCInterval).Msg("Feedback GC service added")

	// API layer
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	// === START SUPERVISOR TREE ===

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	// Wait for supervisor to finish (either from signal or error)
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Wait for the error channel to close (supervisor finished)
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	// Report any services that failed to stop within timeout
	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
