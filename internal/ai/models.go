// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ai

import (
	"fmt"
	"strings"
)

// =============================================================================
// TASK CLASS
// =============================================================================

// TaskClass is the abstract workload category a caller asks for. The adapter
// maps it to a concrete model so call sites never name models directly.
type TaskClass int

const (
	// ClassSpeed is for fast, cheap summarization.
	ClassSpeed TaskClass = iota
	// ClassReasoning is for multi-step analysis and grounded Q&A.
	ClassReasoning
	// ClassVisual is for image-capable generation.
	ClassVisual
)

// String returns the config/CLI name of the class.
func (c TaskClass) String() string {
	switch c {
	case ClassSpeed:
		return "speed"
	case ClassReasoning:
		return "reasoning"
	case ClassVisual:
		return "visual"
	default:
		return fmt.Sprintf("TaskClass(%d)", int(c))
	}
}

// ParseTaskClass converts a class name. Unknown names are an error, never a
// silent fallback.
func ParseTaskClass(s string) (TaskClass, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "speed":
		return ClassSpeed, nil
	case "reasoning":
		return ClassReasoning, nil
	case "visual":
		return ClassVisual, nil
	default:
		return 0, fmt.Errorf("%w: %q (want speed, reasoning or visual)", ErrUnknownTaskClass, s)
	}
}

// TaskClasses lists every class in declaration order.
func TaskClasses() []TaskClass {
	return []TaskClass{ClassSpeed, ClassReasoning, ClassVisual}
}

// =============================================================================
// PROVIDER
// =============================================================================

// Provider is a hosted model vendor the adapter can bind to.
type Provider int

const (
	// ProviderGemini is Google Gemini via the genai SDK.
	ProviderGemini Provider = iota
	// ProviderGroq is Groq's OpenAI-compatible endpoint.
	ProviderGroq
)

// String returns the config/CLI name of the provider.
func (p Provider) String() string {
	switch p {
	case ProviderGemini:
		return "gemini"
	case ProviderGroq:
		return "groq"
	default:
		return fmt.Sprintf("Provider(%d)", int(p))
	}
}

// ParseProvider converts a provider name.
func ParseProvider(s string) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gemini", "google":
		return ProviderGemini, nil
	case "groq":
		return ProviderGroq, nil
	default:
		return 0, fmt.Errorf("%w: %q (want gemini or groq)", ErrUnknownProvider, s)
	}
}

// =============================================================================
// MODEL TABLE
// =============================================================================

// Model returns the concrete model identifier for class on provider.
// This switch is the only place model names are spelled out.
func Model(p Provider, c TaskClass) (string, error) {
	switch p {
	case ProviderGemini:
		switch c {
		case ClassSpeed:
			return "gemini-3-flash-preview", nil
		case ClassReasoning:
			return "gemini-3-pro-preview", nil
		case ClassVisual:
			return "gemini-2.5-flash-image", nil
		}
	case ProviderGroq:
		switch c {
		case ClassSpeed:
			return "llama-3.1-8b-instant", nil
		case ClassReasoning:
			return "llama-3.3-70b-versatile", nil
		case ClassVisual:
			return "meta-llama/llama-4-scout-17b-16e-instruct", nil
		}
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownProvider, p)
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownTaskClass, c)
}
