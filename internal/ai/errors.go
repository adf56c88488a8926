// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ai

import (
	"errors"
	"fmt"
)

var (
	// ErrNotInitialized is returned by Generate on a session that was never
	// created with NewSession. No request is made.
	ErrNotInitialized = errors.New("AI not initialized")

	// ErrNoAPIKey indicates NewSession was called with an empty secret.
	ErrNoAPIKey = errors.New("API key not configured")

	// ErrUnknownTaskClass indicates a task class outside speed/reasoning/visual.
	ErrUnknownTaskClass = errors.New("unknown task class")

	// ErrUnknownProvider indicates a provider the adapter cannot bind to.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrQuotaExceeded indicates the provider rejected the call for quota or
	// rate reasons (HTTP 429).
	ErrQuotaExceeded = errors.New("provider quota exceeded")

	// ErrEmptyResponse indicates the provider returned no text.
	ErrEmptyResponse = errors.New("empty response from provider")
)

// ProviderError wraps a failure reported by a provider SDK.
type ProviderError struct {
	Provider Provider
	Model    string
	Status   int // HTTP status when known, else 0
	Err      error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s %s (HTTP %d): %v", e.Provider, e.Model, e.Status, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Provider, e.Model, e.Err)
}

// Unwrap returns the SDK error.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Is reports quota failures as ErrQuotaExceeded.
func (e *ProviderError) Is(target error) bool {
	return target == ErrQuotaExceeded && e.Status == 429
}
