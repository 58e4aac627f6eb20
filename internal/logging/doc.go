// Eatsential - Health-Aware Meal Recommendation Engine
// Copyright 2026 Taylor Brown (TaylorBrown96)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TaylorBrown96/CSC510-proj3

// Package logging provides centralized zerolog-based structured logging for Eatsential.
//
// This package implements a unified logging layer using zerolog, providing
// zero-allocation structured JSON logging for production and human-readable
// console output for development.
//
// # Overview
//
// The package provides:
//   - Zero-allocation structured logging via zerolog
//   - JSON output format for production (machine-parseable)
//   - Console output format for development (human-readable)
//   - Context-aware logging with correlation ID propagation
//   - slog adapter for Suture v4 integration
//   - Secret redaction helpers for safe config logging
//
// # Quick Start
//
//	import "github.com/TaylorBrown96/CSC510-proj3/internal/logging"
//
//	// Initialize at application startup
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	    Caller: false,
//	})
//
//	// Log messages with structured fields
//	logging.Info().Str("user_id", uid).Msg("Recommendation generated")
//	logging.Error().Err(err).Int("code", 500).Msg("Request failed")
//
//	// Context-aware logging
//	logging.Ctx(ctx).Info().Msg("Processing request")
//
// # Configuration
//
// Programmatic configuration:
//
//	logging.Init(logging.Config{
//	    Level:     "debug",    // trace, debug, info, warn, error, fatal
//	    Format:    "console",  // json or console
//	    Caller:    true,       // Include caller info
//	    Timestamp: true,       // Include timestamps
//	    Output:    os.Stderr,  // Output writer
//	})
//
// The application wires Level, Format, and Caller from the logging section
// of the server configuration (see internal/config).
//
// # Log Levels
//
// Supported log levels (from most to least verbose):
//
//	trace  - Very detailed diagnostic information
//	debug  - Detailed diagnostic information
//	info   - General operational information (default)
//	warn   - Warning conditions that should be addressed
//	error  - Error conditions requiring attention
//	fatal  - Fatal errors that terminate the program
//	panic  - Panic conditions that crash the program
//
// # Structured Logging Best Practices
//
// Always terminate log chains with .Msg() or .Send():
//
//	logging.Info().Str("key", "value").Msg("message")  // Correct
//	logging.Info().Str("key", "value")                 // WRONG - log not emitted
//
// Use structured fields instead of string formatting:
//
//	// Good - structured, searchable, efficient
//	logging.Info().
//	    Str("user_id", uid).
//	    Int("candidates", n).
//	    Dur("elapsed", duration).
//	    Msg("Recommendations generated")
//
//	// Avoid - unstructured, harder to parse
//	logging.Info().Msgf("Generated %d candidates for %s in %v", n, uid, duration)
//
// # Component Loggers
//
// Create component-specific loggers with default fields:
//
//	engineLogger := logging.WithComponent("engine")
//	engineLogger.Info().Msg("Starting recommendation run")
//	engineLogger.Warn().Err(err).Msg("Falling back to baseline generator")
//
// # Context-Aware Logging
//
// Propagate request context through logging:
//
//	logger := logging.Ctx(ctx)
//	logger.Info().Msg("Processing request")
//
// The middleware in internal/middleware seeds each request context with a
// request ID and correlation ID; Ctx picks both up automatically.
//
// # slog Adapter
//
// The package provides an slog adapter for libraries that require slog.Logger:
//
//	slogLogger := logging.NewSlogLogger()
//	// Use slogLogger with Suture or other slog-compatible libraries
//
// # Secret Redaction
//
// Never log credentials verbatim. Use SanitizeSecret when logging
// configuration that may contain API keys:
//
//	logging.Info().
//	    Str("llm_api_key", logging.SanitizeSecret(cfg.LLM.APIKey)).
//	    Msg("LLM client configured")
//
// # Thread Safety
//
// All exported functions are safe for concurrent use. The global logger
// is protected by sync.RWMutex for configuration changes.
//
// # Testing
//
// Create test loggers that capture output:
//
//	var buf bytes.Buffer
//	logger := logging.NewTestLogger(&buf)
//	logger.Info().Msg("test message")
//	output := buf.String()
//
// # See Also
//
//   - github.com/rs/zerolog: Underlying logging library
//   - internal/middleware: Request ID middleware for correlation
package logging
