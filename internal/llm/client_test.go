// Eatsential - Health-Aware Meal Recommendation Engine
// Copyright 2026 Taylor Brown (TaylorBrown96)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TaylorBrown96/CSC510-proj3

package llm

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/TaylorBrown96/CSC510-proj3/internal/config"
)

// stubClient is a scriptable backend for exercising the resilience layer.
type stubClient struct {
	reply string
	err   error
	delay time.Duration
	calls atomic.Int32
}

func (s *stubClient) Complete(ctx context.Context, prompt string) (string, error) {
	s.calls.Add(1)
	if s.delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(s.delay):
		}
	}
	return s.reply, s.err
}

func (s *stubClient) Provider() string { return "stub" }

func TestNewNilConfig(t *testing.T) {
	t.Parallel()

	if _, err := New(nil); err == nil {
		t.Fatal("New(nil) expected error, got nil")
	}
}

func TestNewSelectsMockWithoutKey(t *testing.T) {
	t.Parallel()

	client, err := New(&config.LLMConfig{Provider: config.ProviderOpenAI})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if client.Provider() != config.ProviderMock {
		t.Errorf("Provider() = %q, want mock for keyless config", client.Provider())
	}
}

func TestNewSelectsMockWithTestKey(t *testing.T) {
	t.Parallel()

	client, err := New(&config.LLMConfig{Provider: config.ProviderOpenAI, APIKey: "test"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if client.Provider() != config.ProviderMock {
		t.Errorf("Provider() = %q, want mock for test key", client.Provider())
	}
}

func TestNewSelectsOpenAIWithKey(t *testing.T) {
	t.Parallel()

	client, err := New(&config.LLMConfig{
		Provider: config.ProviderOpenAI,
		APIKey:   "sk-not-a-real-key",
		Model:    "gpt-4o-mini",
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if client.Provider() != config.ProviderOpenAI {
		t.Errorf("Provider() = %q, want openai", client.Provider())
	}
}

func TestResilientPassesThroughSuccess(t *testing.T) {
	t.Parallel()

	stub := &stubClient{reply: "scored items"}
	client := newResilientClient(stub, &config.LLMConfig{})

	reply, err := client.Complete(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if reply != "scored items" {
		t.Errorf("reply = %q, want %q", reply, "scored items")
	}
	if got := stub.calls.Load(); got != 1 {
		t.Errorf("backend calls = %d, want 1", got)
	}
}

func TestResilientBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	t.Parallel()

	stub := &stubClient{err: fmt.Errorf("upstream boom")}
	client := newResilientClient(stub, &config.LLMConfig{
		BreakerFailures: 2,
		BreakerTimeout:  time.Minute,
	})

	for i := 0; i < 2; i++ {
		if _, err := client.Complete(context.Background(), "prompt"); err == nil {
			t.Fatalf("call %d expected backend error, got nil", i+1)
		} else if errors.Is(err, ErrUnavailable) {
			t.Fatalf("call %d rejected before breaker should open: %v", i+1, err)
		}
	}

	_, err := client.Complete(context.Background(), "prompt")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable once breaker opened, got %v", err)
	}
	if got := stub.calls.Load(); got != 2 {
		t.Errorf("backend calls = %d, want 2 (open breaker must not call backend)", got)
	}
}

func TestResilientAppliesTimeout(t *testing.T) {
	t.Parallel()

	stub := &stubClient{reply: "late", delay: 200 * time.Millisecond}
	client := newResilientClient(stub, &config.LLMConfig{Timeout: 10 * time.Millisecond})

	_, err := client.Complete(context.Background(), "prompt")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestResilientRateLimitHonorsContext(t *testing.T) {
	t.Parallel()

	stub := &stubClient{reply: "ok"}
	client := newResilientClient(stub, &config.LLMConfig{
		RequestsPerSecond: 0.01, // one token, then a ~100s refill
		Burst:             1,
	})

	if _, err := client.Complete(context.Background(), "prompt"); err != nil {
		t.Fatalf("first Complete() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.Complete(ctx, "prompt")
	if err == nil {
		t.Fatal("expected error waiting on exhausted limiter with cancelled context")
	}
	if got := stub.calls.Load(); got != 1 {
		t.Errorf("backend calls = %d, want 1 (throttled call must not reach backend)", got)
	}
}
