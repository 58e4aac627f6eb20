// Eatsential - Health-Aware Meal Recommendation Engine
// Copyright 2026 Taylor Brown (TaylorBrown96)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TaylorBrown96/CSC510-proj3

package llm

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/TaylorBrown96/CSC510-proj3/internal/config"
)

// openAIClient drives any OpenAI-compatible completion endpoint through
// langchaingo. Self-hosted gateways work by setting LLM_BASE_URL.
type openAIClient struct {
	llm *openai.LLM
	cfg *config.LLMConfig
}

func newOpenAIClient(cfg *config.LLMConfig) (*openAIClient, error) {
	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}

	return &openAIClient{llm: llm, cfg: cfg}, nil
}

// Complete sends prompt as a single human message and returns the first
// choice's content.
func (c *openAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.llm.GenerateContent(ctx,
		[]llms.MessageContent{
			llms.TextParts(llms.ChatMessageTypeHuman, prompt),
		},
		llms.WithMaxTokens(c.cfg.MaxTokens),
		llms.WithTemperature(c.cfg.Temperature),
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate completion: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from %s", c.cfg.Model)
	}

	return resp.Choices[0].Content, nil
}

func (c *openAIClient) Provider() string {
	return config.ProviderOpenAI
}
