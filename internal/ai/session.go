// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ai is a thin adapter over hosted generative-model SDKs.
//
// A Session is an explicit handle bound to one provider and one secret.
// Callers pick a TaskClass (speed, reasoning, visual); the adapter resolves
// the concrete model and performs a single request/response round trip.
// There is no retry, streaming or token accounting.
package ai

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/A4xPraddy/multiscrapper-ai/internal/logger"
	"github.com/A4xPraddy/multiscrapper-ai/internal/util"
)

// generator performs one completion against a concrete model.
type generator interface {
	generate(ctx context.Context, model, prompt string) (string, error)
}

// Session is a provider binding. The zero value and a nil *Session are valid
// receivers and report ErrNotInitialized.
type Session struct {
	provider    Provider
	gen         generator
	fingerprint string
}

// Option customizes NewSession.
type Option func(*options)

type options struct {
	baseURL    string
	httpClient *http.Client
}

// WithBaseURL points the provider SDK at a different endpoint (proxies, tests).
func WithBaseURL(url string) Option {
	return func(o *options) { o.baseURL = strings.TrimSuffix(url, "/") }
}

// WithHTTPClient sets the HTTP client used by the provider SDK.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// NewSession binds a session to provider using secret.
func NewSession(ctx context.Context, provider Provider, secret string, opts ...Option) (*Session, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, ErrNoAPIKey
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var (
		gen generator
		err error
	)
	switch provider {
	case ProviderGemini:
		gen, err = newGeminiGenerator(ctx, secret, o)
	case ProviderGroq:
		gen, err = newGroqGenerator(secret, o)
	default:
		return nil, ErrUnknownProvider
	}
	if err != nil {
		return nil, err
	}

	fp := util.Fingerprint(secret)
	logger.Debug("ai session created", "provider", provider.String(), "key_fingerprint", fp)
	return &Session{provider: provider, gen: gen, fingerprint: fp}, nil
}

// newSessionWith builds a session around an existing generator.
func newSessionWith(provider Provider, gen generator) *Session {
	return &Session{provider: provider, gen: gen}
}

// Provider returns the bound provider.
func (s *Session) Provider() Provider {
	return s.provider
}

// Ready reports whether the session can issue requests.
func (s *Session) Ready() bool {
	return s != nil && s.gen != nil
}

// Generate sends input to the model for class and returns the response text.
func (s *Session) Generate(ctx context.Context, class TaskClass, input string) (string, error) {
	if !s.Ready() {
		return "", ErrNotInitialized
	}
	model, err := Model(s.provider, class)
	if err != nil {
		return "", err
	}

	start := time.Now()
	text, err := s.gen.generate(ctx, model, input)
	if err != nil {
		logger.Warn("ai generate failed", "provider", s.provider.String(), "model", model, "error", err)
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", &ProviderError{Provider: s.provider, Model: model, Err: ErrEmptyResponse}
	}
	logger.Debug("ai generate ok",
		"provider", s.provider.String(),
		"model", model,
		"class", class.String(),
		"chars", len(text),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return text, nil
}
