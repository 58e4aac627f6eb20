// Eatsential - Health-Aware Meal Recommendation Engine
// Copyright 2026 Taylor Brown (TaylorBrown96)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TaylorBrown96/CSC510-proj3

package llm

import (
	"context"
	"fmt"
	"hash/fnv"
	"regexp"

	"github.com/goccy/go-json"

	"github.com/TaylorBrown96/CSC510-proj3/internal/config"
)

// itemIDPattern matches the candidate ids embedded in the prompt's catalog
// digest. The digest is JSON, so ids always appear as "item_id" fields.
var itemIDPattern = regexp.MustCompile(`"item_id"\s*:\s*"([^"]+)"`)

// mockReasons are cycled by id hash so a given item always gets the same
// explanation text.
var mockReasons = []string{
	"A solid match for your filters with balanced ingredients.",
	"Fits your dietary preferences and is popular with similar profiles.",
	"A flavorful pick that stays within your price range.",
	"Pairs well with your cuisine preference.",
}

// mockClient is the keyless development backend. It reads the candidate ids
// out of the prompt and scores each one by a stable hash, so identical
// prompts always produce identical replies and the full reply-normalization
// and re-filtering path downstream still gets exercised.
type mockClient struct{}

// NewMock returns the deterministic offline completion client.
func NewMock() Client {
	return &mockClient{}
}

type mockScoredItem struct {
	ItemID string  `json:"item_id"`
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
}

// Complete scores every candidate id found in prompt. Prompts with no
// recognizable candidates yield an empty JSON array.
func (m *mockClient) Complete(ctx context.Context, prompt string) (string, error) {
	matches := itemIDPattern.FindAllStringSubmatch(prompt, -1)

	seen := make(map[string]struct{}, len(matches))
	items := make([]mockScoredItem, 0, len(matches))
	for _, match := range matches {
		id := match[1]
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		h := hashID(id)
		items = append(items, mockScoredItem{
			ItemID: id,
			Score:  mockScore(h),
			Reason: mockReasons[h%uint32(len(mockReasons))],
		})
	}

	data, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("failed to marshal mock reply: %w", err)
	}
	return string(data), nil
}

func (m *mockClient) Provider() string {
	return config.ProviderMock
}

func hashID(id string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return h.Sum32()
}

// mockScore maps an id hash into [0.50, 0.95) so mock scores are plausible
// but never all-zero.
func mockScore(h uint32) float64 {
	return 0.50 + float64(h%4500)/10000.0
}
