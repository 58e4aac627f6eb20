// Eatsential - Health-Aware Meal Recommendation Engine
// Copyright 2026 Taylor Brown (TaylorBrown96)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TaylorBrown96/CSC510-proj3

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestNewSlogHandler(t *testing.T) {
	t.Parallel()

	handler := NewSlogHandler()

	if handler == nil {
		t.Fatal("NewSlogHandler() = nil, want non-nil")
	}

	if handler.attrs != nil {
		t.Errorf("NewSlogHandler().attrs = %v, want nil", handler.attrs)
	}

	if handler.groups != nil {
		t.Errorf("NewSlogHandler().groups = %v, want nil", handler.groups)
	}
}

func TestNewSlogHandlerWithLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	handler := NewSlogHandlerWithLogger(logger)

	if handler == nil {
		t.Fatal("NewSlogHandlerWithLogger() = nil, want non-nil")
	}

	slogger := slog.New(handler)
	slogger.Info("test message")

	if !strings.Contains(buf.String(), "test message") {
		t.Errorf("expected 'test message' in output: %s", buf.String())
	}
}

func TestSlogHandler_Enabled(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		zerologLevel zerolog.Level
		slogLevel    slog.Level
		want         bool
	}{
		{
			name:         "debug logger enables debug level",
			zerologLevel: zerolog.DebugLevel,
			slogLevel:    slog.LevelDebug,
			want:         true,
		},
		{
			name:         "info logger disables debug level",
			zerologLevel: zerolog.InfoLevel,
			slogLevel:    slog.LevelDebug,
			want:         false,
		},
		{
			name:         "info logger enables info level",
			zerologLevel: zerolog.InfoLevel,
			slogLevel:    slog.LevelInfo,
			want:         true,
		},
		{
			name:         "info logger enables warn level",
			zerologLevel: zerolog.InfoLevel,
			slogLevel:    slog.LevelWarn,
			want:         true,
		},
		{
			name:         "warn logger disables info level",
			zerologLevel: zerolog.WarnLevel,
			slogLevel:    slog.LevelInfo,
			want:         false,
		},
		{
			name:         "error logger disables warn level",
			zerologLevel: zerolog.ErrorLevel,
			slogLevel:    slog.LevelWarn,
			want:         false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			logger := zerolog.New(nil).Level(tt.zerologLevel)
			handler := NewSlogHandlerWithLogger(logger)

			got := handler.Enabled(context.Background(), tt.slogLevel)
			if got != tt.want {
				t.Errorf("Enabled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSlogHandler_Handle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		level     slog.Level
		message   string
		wantLevel string
	}{
		{
			name:      "debug level",
			level:     slog.LevelDebug,
			message:   "debug message",
			wantLevel: "debug",
		},
		{
			name:      "info level",
			level:     slog.LevelInfo,
			message:   "info message",
			wantLevel: "info",
		},
		{
			name:      "warn level",
			level:     slog.LevelWarn,
			message:   "warn message",
			wantLevel: "warn",
		},
		{
			name:      "error level",
			level:     slog.LevelError,
			message:   "error message",
			wantLevel: "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			logger := zerolog.New(&buf).Level(zerolog.TraceLevel)
			handler := NewSlogHandlerWithLogger(logger)

			record := slog.NewRecord(time.Now(), tt.level, tt.message, 0)
			if err := handler.Handle(context.Background(), record); err != nil {
				t.Fatalf("Handle() error = %v", err)
			}

			output := buf.String()
			if !strings.Contains(output, tt.wantLevel) {
				t.Errorf("Handle() output missing level %q: %s", tt.wantLevel, output)
			}
			if !strings.Contains(output, tt.message) {
				t.Errorf("Handle() output missing message %q: %s", tt.message, output)
			}
		})
	}
}

func TestSlogHandler_Handle_WithAttributes(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.TraceLevel)
	handler := NewSlogHandlerWithLogger(logger)

	record := slog.NewRecord(time.Now(), slog.LevelInfo, "test message", 0)
	record.AddAttrs(
		slog.String("key1", "value1"),
		slog.Int("key2", 42),
	)

	if err := handler.Handle(context.Background(), record); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "key1") || !strings.Contains(output, "value1") {
		t.Errorf("Handle() output missing key1:value1: %s", output)
	}
	if !strings.Contains(output, "key2") || !strings.Contains(output, "42") {
		t.Errorf("Handle() output missing key2:42: %s", output)
	}
}

func TestSlogHandler_Handle_UnknownLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.TraceLevel)
	handler := NewSlogHandlerWithLogger(logger)

	record := slog.NewRecord(time.Now(), slog.Level(100), "unknown level message", 0)
	if err := handler.Handle(context.Background(), record); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	// Should default to info level
	if !strings.Contains(buf.String(), "unknown level message") {
		t.Errorf("Handle() output missing message: %s", buf.String())
	}
}

func TestSlogHandler_WithAttrs(t *testing.T) {
	t.Parallel()

	handler := NewSlogHandler()

	handler1 := handler.WithAttrs([]slog.Attr{
		slog.String("key1", "value1"),
	}).(*SlogHandler)

	if len(handler1.attrs) != 1 {
		t.Errorf("WithAttrs() attrs length = %d, want 1", len(handler1.attrs))
	}

	handler2 := handler1.WithAttrs([]slog.Attr{
		slog.String("key2", "value2"),
		slog.Int("key3", 3),
	}).(*SlogHandler)

	if len(handler2.attrs) != 3 {
		t.Errorf("WithAttrs() chained attrs length = %d, want 3", len(handler2.attrs))
	}

	// Original handler must not be modified
	if len(handler.attrs) != 0 {
		t.Error("WithAttrs() should not modify original handler")
	}
}

func TestSlogHandler_WithGroup(t *testing.T) {
	t.Parallel()

	handler := NewSlogHandler()

	handler1 := handler.WithGroup("group1").(*SlogHandler)
	if len(handler1.groups) != 1 || handler1.groups[0] != "group1" {
		t.Errorf("WithGroup() groups = %v, want ['group1']", handler1.groups)
	}

	handler2 := handler1.WithGroup("group2").(*SlogHandler)
	if len(handler2.groups) != 2 || handler2.groups[1] != "group2" {
		t.Errorf("WithGroup() chained groups = %v, want ['group1', 'group2']", handler2.groups)
	}

	if len(handler.groups) != 0 {
		t.Error("WithGroup() should not modify original handler")
	}
}

func TestSlogHandler_WithGroup_Empty(t *testing.T) {
	t.Parallel()

	handler := NewSlogHandler()
	handler1 := handler.WithGroup("")

	// Empty group name should return the same handler
	if handler1 != handler {
		t.Error("WithGroup('') should return same handler")
	}
}

func TestSlogHandler_WithGroup_KeyPrefix(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.TraceLevel)
	handler := NewSlogHandlerWithLogger(logger)

	groupHandler := handler.WithGroup("prefix")
	slogger := slog.New(groupHandler)
	slogger.Info("test", "key", "value")

	output := buf.String()
	if !strings.Contains(output, "prefix.key") {
		t.Errorf("WithGroup() should prefix keys: %s", output)
	}
}

func TestAddAttr_AllTypes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		attr     slog.Attr
		wantKeys []string
	}{
		{
			name:     "string",
			attr:     slog.String("str", "value"),
			wantKeys: []string{"str", "value"},
		},
		{
			name:     "int64",
			attr:     slog.Int64("int", 42),
			wantKeys: []string{"int", "42"},
		},
		{
			name:     "uint64",
			attr:     slog.Uint64("uint", 100),
			wantKeys: []string{"uint", "100"},
		},
		{
			name:     "float64",
			attr:     slog.Float64("float", 3.14),
			wantKeys: []string{"float", "3.14"},
		},
		{
			name:     "bool true",
			attr:     slog.Bool("flag", true),
			wantKeys: []string{"flag", "true"},
		},
		{
			name:     "duration",
			attr:     slog.Duration("elapsed", time.Second),
			wantKeys: []string{"elapsed"},
		},
		{
			name:     "time",
			attr:     slog.Time("created", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
			wantKeys: []string{"created"},
		},
		{
			name:     "any",
			attr:     slog.Any("data", map[string]int{"a": 1}),
			wantKeys: []string{"data"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			logger := zerolog.New(&buf).Level(zerolog.TraceLevel)
			handler := NewSlogHandlerWithLogger(logger)

			record := slog.NewRecord(time.Now(), slog.LevelInfo, "test", 0)
			record.AddAttrs(tt.attr)
			_ = handler.Handle(context.Background(), record)

			output := buf.String()
			for _, key := range tt.wantKeys {
				if !strings.Contains(output, key) {
					t.Errorf("output missing %q: %s", key, output)
				}
			}
		})
	}
}

func TestAddAttr_Group(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.TraceLevel)
	handler := NewSlogHandlerWithLogger(logger)

	groupAttr := slog.Group("request",
		slog.String("method", "GET"),
		slog.Int("status", 200),
	)

	record := slog.NewRecord(time.Now(), slog.LevelInfo, "test", 0)
	record.AddAttrs(groupAttr)
	_ = handler.Handle(context.Background(), record)

	output := buf.String()
	if !strings.Contains(output, "request.method") {
		t.Errorf("output missing request.method: %s", output)
	}
	if !strings.Contains(output, "request.status") {
		t.Errorf("output missing request.status: %s", output)
	}
}

func TestSlogToZerologLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		slogLvl  slog.Level
		wantZlog zerolog.Level
	}{
		{
			name:     "debug",
			slogLvl:  slog.LevelDebug,
			wantZlog: zerolog.DebugLevel,
		},
		{
			name:     "info",
			slogLvl:  slog.LevelInfo,
			wantZlog: zerolog.InfoLevel,
		},
		{
			name:     "warn",
			slogLvl:  slog.LevelWarn,
			wantZlog: zerolog.WarnLevel,
		},
		{
			name:     "error",
			slogLvl:  slog.LevelError,
			wantZlog: zerolog.ErrorLevel,
		},
		{
			name:     "below debug (trace equivalent)",
			slogLvl:  slog.Level(-8),
			wantZlog: zerolog.TraceLevel,
		},
		{
			name:     "above error",
			slogLvl:  slog.Level(12),
			wantZlog: zerolog.ErrorLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := slogToZerologLevel(tt.slogLvl)
			if got != tt.wantZlog {
				t.Errorf("slogToZerologLevel(%v) = %v, want %v", tt.slogLvl, got, tt.wantZlog)
			}
		})
	}
}

func TestNewSlogLogger(t *testing.T) {
	// Not parallel because it uses global logger state

	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf).Level(zerolog.TraceLevel))

	slogger := NewSlogLogger()
	if slogger == nil {
		t.Fatal("NewSlogLogger() = nil, want non-nil")
	}

	slogger.Info("test from slog")

	if !strings.Contains(buf.String(), "test from slog") {
		t.Errorf("NewSlogLogger() should write to global logger: %s", buf.String())
	}
}

func TestNewSlogLoggerWithLevel(t *testing.T) {
	// Not parallel because it uses global logger state

	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf))

	tests := []struct {
		name         string
		level        string
		debugEnabled bool
		infoEnabled  bool
	}{
		{
			name:         "debug level enables all",
			level:        "debug",
			debugEnabled: true,
			infoEnabled:  true,
		},
		{
			name:         "info level disables debug",
			level:        "info",
			debugEnabled: false,
			infoEnabled:  true,
		},
		{
			name:         "warn level disables info",
			level:        "warn",
			debugEnabled: false,
			infoEnabled:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()

			slogger := NewSlogLoggerWithLevel(tt.level)
			if slogger == nil {
				t.Fatal("NewSlogLoggerWithLevel() = nil")
			}

			handler := slogger.Handler()

			debugEnabled := handler.Enabled(context.Background(), slog.LevelDebug)
			if debugEnabled != tt.debugEnabled {
				t.Errorf("debug enabled = %v, want %v", debugEnabled, tt.debugEnabled)
			}

			infoEnabled := handler.Enabled(context.Background(), slog.LevelInfo)
			if infoEnabled != tt.infoEnabled {
				t.Errorf("info enabled = %v, want %v", infoEnabled, tt.infoEnabled)
			}
		})
	}
}

func TestSlogHandler_FullIntegration(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.TraceLevel)
	handler := NewSlogHandlerWithLogger(logger)
	slogger := slog.New(handler)

	childLogger := slogger.With("component", "test")

	childLogger.Debug("debug message", "debug_key", "debug_value")
	childLogger.Info("info message", "info_key", 123)
	childLogger.Warn("warn message", "warn_key", true)
	childLogger.Error("error message", "error_key", 3.14)

	output := buf.String()

	expected := []string{
		"debug message", "debug_key", "debug_value",
		"info message", "info_key", "123",
		"warn message", "warn_key", "true",
		"error message", "error_key", "3.14",
		"component", "test",
	}

	for _, e := range expected {
		if !strings.Contains(output, e) {
			t.Errorf("output missing %q: %s", e, output)
		}
	}
}
