// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ai

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"
)

// GroqBaseURL is Groq's OpenAI-compatible API root.
const GroqBaseURL = "https://api.groq.com/openai/v1"

type groqGenerator struct {
	client *openai.Client
}

func newGroqGenerator(secret string, o options) (*groqGenerator, error) {
	cfg := openai.DefaultConfig(secret)
	cfg.BaseURL = GroqBaseURL
	if o.baseURL != "" {
		cfg.BaseURL = o.baseURL
	}
	if o.httpClient != nil {
		cfg.HTTPClient = o.httpClient
	}
	return &groqGenerator{client: openai.NewClientWithConfig(cfg)}, nil
}

func (g *groqGenerator) generate(ctx context.Context, model, prompt string) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		pe := &ProviderError{Provider: ProviderGroq, Model: model, Err: err}
		var apiErr *openai.APIError
		var reqErr *openai.RequestError
		switch {
		case errors.As(err, &apiErr):
			pe.Status = apiErr.HTTPStatusCode
		case errors.As(err, &reqErr):
			pe.Status = reqErr.HTTPStatusCode
		}
		return "", pe
	}
	if len(resp.Choices) == 0 {
		return "", &ProviderError{Provider: ProviderGroq, Model: model, Err: ErrEmptyResponse}
	}
	return resp.Choices[0].Message.Content, nil
}
