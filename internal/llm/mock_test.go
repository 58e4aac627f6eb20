// Eatsential - Health-Aware Meal Recommendation Engine
// Copyright 2026 Taylor Brown (TaylorBrown96)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TaylorBrown96/CSC510-proj3

package llm

import (
	"context"
	"testing"

	"github.com/goccy/go-json"
)

const mockPrompt = `Rank these meals for the user.
Candidates:
{"item_id": "item-pad-thai", "name": "Pad Thai", "cuisine": "thai"}
{"item_id": "item-green-curry", "name": "Green Curry", "cuisine": "thai"}
{"item_id": "item-margherita", "name": "Margherita", "cuisine": "italian"}
Reply with a JSON array.`

func TestMockCompleteScoresAllCandidates(t *testing.T) {
	t.Parallel()

	reply, err := NewMock().Complete(context.Background(), mockPrompt)
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	var items []mockScoredItem
	if err := json.Unmarshal([]byte(reply), &items); err != nil {
		t.Fatalf("mock reply is not valid JSON: %v\nreply: %s", err, reply)
	}

	wantIDs := []string{"item-pad-thai", "item-green-curry", "item-margherita"}
	if len(items) != len(wantIDs) {
		t.Fatalf("got %d items, want %d", len(items), len(wantIDs))
	}
	for i, want := range wantIDs {
		if items[i].ItemID != want {
			t.Errorf("items[%d].ItemID = %q, want %q", i, items[i].ItemID, want)
		}
		if items[i].Score < 0.50 || items[i].Score >= 0.95 {
			t.Errorf("items[%d].Score = %v, want within [0.50, 0.95)", i, items[i].Score)
		}
		if items[i].Reason == "" {
			t.Errorf("items[%d].Reason is empty", i)
		}
	}
}

func TestMockCompleteDeterministic(t *testing.T) {
	t.Parallel()

	mock := NewMock()
	first, err := mock.Complete(context.Background(), mockPrompt)
	if err != nil {
		t.Fatalf("first Complete() error = %v", err)
	}
	second, err := mock.Complete(context.Background(), mockPrompt)
	if err != nil {
		t.Fatalf("second Complete() error = %v", err)
	}

	if first != second {
		t.Errorf("identical prompts produced different replies:\n%s\n%s", first, second)
	}
}

func TestMockCompleteNoCandidates(t *testing.T) {
	t.Parallel()

	reply, err := NewMock().Complete(context.Background(), "no catalog digest here")
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if reply != "[]" {
		t.Errorf("reply = %q, want empty JSON array", reply)
	}
}

func TestMockCompleteDedupesRepeatedIDs(t *testing.T) {
	t.Parallel()

	prompt := `{"item_id": "item-a"} {"item_id": "item-b"} {"item_id": "item-a"}`
	reply, err := NewMock().Complete(context.Background(), prompt)
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	var items []mockScoredItem
	if err := json.Unmarshal([]byte(reply), &items); err != nil {
		t.Fatalf("unmarshal reply: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2 after dedupe", len(items))
	}
	if items[0].ItemID != "item-a" || items[1].ItemID != "item-b" {
		t.Errorf("unexpected order: %v", items)
	}
}

func TestMockProviderName(t *testing.T) {
	t.Parallel()

	if got := NewMock().Provider(); got != "mock" {
		t.Errorf("Provider() = %q, want %q", got, "mock")
	}
}
