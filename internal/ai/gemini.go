// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ai

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

type geminiGenerator struct {
	client *genai.Client
}

func newGeminiGenerator(ctx context.Context, secret string, o options) (*geminiGenerator, error) {
	cfg := &genai.ClientConfig{
		APIKey:  secret,
		Backend: genai.BackendGeminiAPI,
	}
	if o.baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: o.baseURL}
	}
	if o.httpClient != nil {
		cfg.HTTPClient = o.httpClient
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &geminiGenerator{client: client}, nil
}

func (g *geminiGenerator) generate(ctx context.Context, model, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		pe := &ProviderError{Provider: ProviderGemini, Model: model, Err: err}
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			pe.Status = apiErr.Code
		}
		return "", pe
	}
	return resp.Text(), nil
}
