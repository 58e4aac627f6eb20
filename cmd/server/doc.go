// Eatsential - Health-Aware Meal Recommendation Engine
// Copyright 2026 Taylor Brown (TaylorBrown96)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TaylorBrown96/CSC510-proj3

/*
Package main is the entry point for the Eatsential recommendation server.

Eatsential turns a user's health profile, stated filters, and accumulated
like/dislike feedback into a ranked, restaurant-diverse list of menu-item
suggestions, with hard safety constraints around allergens. Candidates come
from either an LLM-backed generator or a deterministic rule-based baseline;
generative failures fall back to the baseline silently.

# Application Architecture

The server implements a layered architecture with Suture v4 process
supervision:

	RootSupervisor ("eatsential")
	├── DataSupervisor ("data-layer")
	│   └── Feedback GC (BadgerDB value-log maintenance)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (chi router)

Component initialization order:

 1. Configuration: Koanf v2 with environment variables and config files
 2. Logging: zerolog with JSON/console output modes
 3. Catalog store: embedded DuckDB (restaurants, menu items, allergens,
    health profiles), optionally seeded with a demo corpus
 4. Feedback store: embedded BadgerDB (like/dislike records)
 5. LLM client: OpenAI-compatible backend or deterministic mock, wrapped
    in a rate limiter and circuit breaker
 6. Recommendation engine: safety filter -> generator -> feedback
    adjuster -> diversity selector pipeline
 7. HTTP server: chi router with CORS, rate limiting, and Prometheus
    middleware
 8. Supervisor tree: services started under suture v4

# Configuration

Configuration is loaded via Koanf v2 with layered sources (highest priority
wins):
  - Environment variables
  - Config file (config.yaml, or CONFIG_PATH)
  - Built-in defaults

Key environment variables:

	HTTP_PORT               Listen port (default 8000)
	DUCKDB_PATH             Catalog database file
	SEED_DEMO_DATA          Seed a demo catalog on startup (default false)
	FEEDBACK_PATH           Feedback store directory
	LLM_API_KEY             API key; empty or "test" selects the mock provider
	LLM_BASE_URL            OpenAI-compatible endpoint override
	RECOMMEND_MODE          Default generator: "llm" or "baseline"
	LOG_LEVEL, LOG_FORMAT   zerolog settings

# Request Identity

Authentication is an external collaborator: the gateway injects X-User-ID
on every recommendation/feedback request. The server validates its presence
and shape, nothing more.

# Signal Handling

The server handles graceful shutdown on SIGINT and SIGTERM:
  - Stops accepting new connections
  - Waits for in-flight requests to complete (10s timeout)
  - Closes the feedback store and checkpoints the catalog database

# Example Usage

Development, fully offline (mock LLM, in-memory feedback, demo catalog):

	export SEED_DEMO_DATA=true
	export FEEDBACK_IN_MEMORY=true
	export LOG_FORMAT=console
	./eatsential

Production with an OpenAI-compatible gateway:

	export LLM_API_KEY=sk-...
	export LLM_BASE_URL=https://gateway.internal/v1
	export DUCKDB_PATH=/data/eatsential.duckdb
	export FEEDBACK_PATH=/data/feedback
	./eatsential
*/
package main
