// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package credentials persists the two provider API keys the portal needs.
//
// Keys live under fixed names in a local KV (SQLite by default). There is no
// validation beyond presence: the portal is "ready" as soon as either key is
// stored, and a missing key is never an error.
package credentials

import (
	"fmt"
	"strings"

	"github.com/A4xPraddy/multiscrapper-ai/internal/util"
)

// Storage keys. Stable across releases; changing them orphans saved keys.
const (
	KeyGemini = "gemini_api_key"
	KeyGroq   = "groq_api_key"
)

// Credentials holds the two provider secrets. Either may be empty.
type Credentials struct {
	Gemini string
	Groq   string
}

// Ready reports whether at least one secret is present.
func (c Credentials) Ready() bool {
	return c.Gemini != "" || c.Groq != ""
}

// String never prints secrets.
func (c Credentials) String() string {
	return fmt.Sprintf("gemini=%s groq=%s", describe(c.Gemini), describe(c.Groq))
}

func describe(secret string) string {
	if secret == "" {
		return "unset"
	}
	return "sha256:" + util.Fingerprint(secret)
}

// Store reads and writes Credentials through a KV.
type Store struct {
	kv KV
}

// NewStore wraps kv.
func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

// Load returns the stored credentials. Missing keys come back empty.
func (s *Store) Load() (Credentials, error) {
	var c Credentials
	var err error
	if c.Gemini, err = s.get(KeyGemini); err != nil {
		return Credentials{}, err
	}
	if c.Groq, err = s.get(KeyGroq); err != nil {
		return Credentials{}, err
	}
	return c, nil
}

func (s *Store) get(key string) (string, error) {
	v, _, err := s.kv.Get(key)
	if err != nil {
		return "", fmt.Errorf("load credentials: %w", err)
	}
	return v, nil
}

// Save writes each non-empty secret (surrounding whitespace trimmed) and
// reports whether the store is ready afterwards. An empty argument leaves the
// stored value for that provider untouched.
func (s *Store) Save(gemini, groq string) (bool, error) {
	if g := strings.TrimSpace(gemini); g != "" {
		if err := s.kv.Set(KeyGemini, g); err != nil {
			return false, fmt.Errorf("save credentials: %w", err)
		}
	}
	if g := strings.TrimSpace(groq); g != "" {
		if err := s.kv.Set(KeyGroq, g); err != nil {
			return false, fmt.Errorf("save credentials: %w", err)
		}
	}
	return s.Ready()
}

// Ready reports whether at least one secret is stored.
func (s *Store) Ready() (bool, error) {
	c, err := s.Load()
	if err != nil {
		return false, err
	}
	return c.Ready(), nil
}

// Clear removes both secrets.
func (s *Store) Clear() error {
	for _, k := range []string{KeyGemini, KeyGroq} {
		if err := s.kv.Delete(k); err != nil {
			return fmt.Errorf("clear credentials: %w", err)
		}
	}
	return nil
}

// Close releases the underlying KV.
func (s *Store) Close() error {
	return s.kv.Close()
}
