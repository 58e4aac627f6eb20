// Eatsential - Health-Aware Meal Recommendation Engine
// Copyright 2026 Taylor Brown (TaylorBrown96)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TaylorBrown96/CSC510-proj3

package recommend

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/TaylorBrown96/CSC510-proj3/internal/llm"
	"github.com/TaylorBrown96/CSC510-proj3/internal/metrics"
)

const (
	// promptPoolLimit caps how many pool candidates are serialized into
	// the prompt. Rankings past this point add tokens, not quality.
	promptPoolLimit = 80

	// maxAskCount caps how many candidates the model is asked to return.
	maxAskCount = 20

	// maxParseDepth bounds recursion through nested reply envelopes
	// (JSON-in-string inside an object inside a fence, and so on).
	maxParseDepth = 4
)

// Generative failure classes. Every one of them wraps
// ErrGeneratorUnavailable so the engine's fallback check is a single
// errors.Is, while the specific class drives the fallback-reason metric.
var (
	errMalformedReply = fmt.Errorf("%w: malformed reply", ErrGeneratorUnavailable)
	errEmptyReply     = fmt.Errorf("%w: no usable candidates in reply", ErrGeneratorUnavailable)
	errZeroScores     = fmt.Errorf("%w: all scores zero after clamping", ErrGeneratorUnavailable)
)

// generativeGenerator ranks candidates by prompting an LLM backend with the
// safety-filtered pool and parsing its structured reply. The reply is
// untrusted input: item ids are resolved against the pool, everything else
// about a matched candidate (name, tags, restaurant) comes from the
// catalog, and scores are clamped. Entries that reference ids outside the
// pool are dropped.
type generativeGenerator struct {
	client llm.Client
	logger zerolog.Logger
}

var _ Generator = (*generativeGenerator)(nil)

func newGenerativeGenerator(client llm.Client, logger zerolog.Logger) *generativeGenerator {
	return &generativeGenerator{
		client: client,
		logger: logger.With().Str("component", "recommend.generative").Logger(),
	}
}

func (g *generativeGenerator) Name() string { return ModeLLM }

// Generate prompts the backend and normalizes its reply into ranked
// candidates. All failure classes return an error wrapping
// ErrGeneratorUnavailable; the engine falls back to the baseline generator
// and never surfaces them.
func (g *generativeGenerator) Generate(ctx context.Context, in GenerateInput) ([]Candidate, error) {
	if len(in.Pool) == 0 {
		return []Candidate{}, nil
	}

	prompt := buildPrompt(in)

	raw, err := g.client.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeneratorUnavailable, err)
	}

	entries, err := parseReply(raw)
	if err != nil {
		g.logger.Debug().Err(err).Int("reply_bytes", len(raw)).Msg("discarding unparsable reply")
		return nil, err
	}

	byID := make(map[string]*Candidate, len(in.Pool))
	for i := range in.Pool {
		byID[in.Pool[i].ItemID] = &in.Pool[i]
	}

	out := make([]Candidate, 0, len(entries))
	unknown := 0
	allZero := true
	for _, e := range entries {
		pooled, ok := byID[e.ItemID]
		if !ok {
			// The model referenced something outside the pool. Anything
			// we cannot resolve against the catalog cannot be safety
			// checked, so it does not get served.
			unknown++
			continue
		}

		c := *pooled
		c.BaseScore = clamp01(float64(e.Score))
		c.Score = c.BaseScore
		if c.Score > 0 {
			allZero = false
		}
		c.Explanation = strings.TrimSpace(e.Explanation)
		if c.Explanation == "" {
			c.Explanation = "Selected by LLM ranking"
		}
		out = append(out, c)
	}
	if unknown > 0 {
		metrics.RecordCandidatesDropped("unknown_id", unknown)
		g.logger.Debug().Int("dropped", unknown).Msg("reply referenced ids outside the candidate pool")
	}

	if len(out) == 0 {
		return nil, errEmptyReply
	}
	if allZero {
		return nil, errZeroScores
	}

	sortByScoreThenID(out)
	return dedupeKeepFirst(out), nil
}

// dedupeKeepFirst removes repeated item ids, keeping the first (and, on
// score-sorted input, highest-scoring) occurrence.
func dedupeKeepFirst(cands []Candidate) []Candidate {
	seen := make(map[string]struct{}, len(cands))
	out := cands[:0]
	for _, c := range cands {
		if _, ok := seen[c.ItemID]; ok {
			continue
		}
		seen[c.ItemID] = struct{}{}
		out = append(out, c)
	}
	return out
}

// promptCandidate is the candidate projection serialized into the prompt.
type promptCandidate struct {
	ItemID      string   `json:"item_id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Cuisine     string   `json:"cuisine,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Calories    *int     `json:"calories,omitempty"`
	DietTags    []string `json:"diet_tags,omitempty"`
}

// promptProfile is the health context serialized into the prompt. The user
// id deliberately stays out of it.
type promptProfile struct {
	Allergies          []string `json:"allergies"`
	DietaryPreferences []string `json:"dietary_preferences"`
}

// buildPrompt assembles the ranking prompt: health context, filters, the
// candidate pool, and strict output instructions. The pool is truncated to
// promptPoolLimit entries.
func buildPrompt(in GenerateInput) string {
	pool := in.Pool
	if len(pool) > promptPoolLimit {
		pool = pool[:promptPoolLimit]
	}

	candidates := make([]promptCandidate, 0, len(pool))
	for _, c := range pool {
		candidates = append(candidates, promptCandidate{
			ItemID:      c.ItemID,
			Name:        c.Name,
			Description: c.Description,
			Cuisine:     c.Cuisine,
			Price:       c.Price,
			Calories:    c.Calories,
			DietTags:    c.DietTags,
		})
	}

	profile := promptProfile{Allergies: []string{}, DietaryPreferences: []string{}}
	if in.Profile != nil {
		profile.Allergies = in.Profile.AllergenNames()
		for _, p := range in.Profile.Preferences {
			profile.DietaryPreferences = append(profile.DietaryPreferences, p.Preference)
		}
	}

	profileJSON, _ := json.MarshalIndent(profile, "", "  ")
	filtersJSON, _ := json.MarshalIndent(in.Filters, "", "  ")
	candidatesJSON, _ := json.MarshalIndent(candidates, "", "  ")

	ask := in.Limit * 3
	if ask > maxAskCount {
		ask = maxAskCount
	}
	if ask > len(pool) {
		ask = len(pool)
	}
	if ask < 1 {
		ask = 1
	}

	noun, heading := "meals", "Candidate Meals"
	if in.Kind == KindRestaurant {
		noun, heading = "restaurants", "Candidate Restaurants"
	}

	var b strings.Builder
	b.WriteString("You are a helpful dining assistant.\n\n")
	b.WriteString("User Health Profile:\n")
	b.Write(profileJSON)
	b.WriteString("\n\nFilters:\n")
	b.Write(filtersJSON)
	b.WriteString("\n\n" + heading + ":\n")
	b.Write(candidatesJSON)
	b.WriteString("\n\nTASK:\n")
	fmt.Fprintf(&b, "Select the top %d %s ONLY from the candidate list above.\n", ask, noun)
	b.WriteString("You MUST NOT invent items or modify item_id values.\n")
	b.WriteString("Rank by how well each candidate fits the health profile and filters.\n\n")
	b.WriteString("For each selection include:\n")
	b.WriteString("- item_id (copied exactly from the candidate list)\n")
	b.WriteString("- score (0.0-1.0, higher is better)\n")
	b.WriteString("- explanation (one sentence, user-facing)\n\n")
	b.WriteString("Output ONLY a valid JSON array in this format:\n")
	b.WriteString(`[{"item_id": "...", "score": 0.9, "explanation": "..."}]` + "\n")
	return b.String()
}

// llmEntry is one suggestion as parsed from the reply. Only the id, score,
// and explanation are consumed; everything else about the candidate comes
// from the catalog.
type llmEntry struct {
	ItemID      string    `json:"item_id"`
	Score       flexScore `json:"score"`
	Explanation string    `json:"explanation"`
}

// flexScore tolerates the score arriving as a JSON number or as a quoted
// string. Anything unparsable becomes zero rather than failing the whole
// reply; an all-zero reply is rejected downstream.
type flexScore float64

func (s *flexScore) UnmarshalJSON(b []byte) error {
	text := strings.Trim(strings.TrimSpace(string(b)), `"`)
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		*s = 0
		return nil
	}
	*s = flexScore(f)
	return nil
}

// parseReply normalizes the reply text into suggestion entries. Accepted
// shapes: a bare JSON array; an object wrapping the array under "items",
// "data", "output", "result", or "candidates"; any of those fenced in
// markdown or double-encoded as a JSON string. A single suggestion object
// is accepted as a one-entry list.
func parseReply(raw string) ([]llmEntry, error) {
	return parsePayload([]byte(stripFences(raw)), 0)
}

// envelopeKeys are checked in order; the first present key wins.
var envelopeKeys = [...]string{"items", "data", "output", "result", "candidates"}

func parsePayload(payload []byte, depth int) ([]llmEntry, error) {
	if depth > maxParseDepth {
		return nil, errMalformedReply
	}

	trimmed := strings.TrimSpace(string(payload))
	if trimmed == "" {
		return nil, errEmptyReply
	}

	switch trimmed[0] {
	case '[':
		var entries []llmEntry
		if err := json.Unmarshal([]byte(trimmed), &entries); err != nil {
			return nil, fmt.Errorf("%w: %v", errMalformedReply, err)
		}
		return entries, nil

	case '{':
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal([]byte(trimmed), &envelope); err != nil {
			return nil, fmt.Errorf("%w: %v", errMalformedReply, err)
		}
		for _, key := range envelopeKeys {
			if inner, ok := envelope[key]; ok {
				return parsePayload(inner, depth+1)
			}
		}
		if _, ok := envelope["item_id"]; ok {
			var entry llmEntry
			if err := json.Unmarshal([]byte(trimmed), &entry); err != nil {
				return nil, fmt.Errorf("%w: %v", errMalformedReply, err)
			}
			return []llmEntry{entry}, nil
		}
		return nil, errMalformedReply

	case '"':
		var inner string
		if err := json.Unmarshal([]byte(trimmed), &inner); err != nil {
			return nil, fmt.Errorf("%w: %v", errMalformedReply, err)
		}
		return parsePayload([]byte(inner), depth+1)

	default:
		return nil, errMalformedReply
	}
}

// stripFences removes a surrounding markdown code fence, with or without a
// language tag, leaving other text untouched.
func stripFences(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		// Drop the language tag line ("json", "JSON", or empty).
		text = text[idx+1:]
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
