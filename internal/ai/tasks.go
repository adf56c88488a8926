// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/A4xPraddy/multiscrapper-ai/internal/model"
)

// =============================================================================
// TASK HELPERS
// =============================================================================

// Task names a canned prompt shape. Each task has a fixed TaskClass.
type Task string

const (
	TaskVideo    Task = "video"
	TaskResearch Task = "research"
	TaskVisual   Task = "visual"
	TaskVault    Task = "vault"
)

// Class returns the task class a task runs on.
func (t Task) Class() (TaskClass, error) {
	switch t {
	case TaskVideo:
		return ClassSpeed, nil
	case TaskResearch, TaskVault:
		return ClassReasoning, nil
	case TaskVisual:
		return ClassVisual, nil
	default:
		return 0, fmt.Errorf("unknown task %q (want video, research, visual or vault)", string(t))
	}
}

// AnalyzeVideo breaks a transcript into summaries, chapters and entities.
func (s *Session) AnalyzeVideo(ctx context.Context, transcript string) (string, error) {
	prompt := "Analyze this YouTube transcript. Deconstruct it into strategic intelligence blocks: " +
		"summaries, chapters, and entity extraction. Content: " + transcript
	return s.Generate(ctx, ClassSpeed, prompt)
}

// ResearchWeb runs an open research query.
func (s *Session) ResearchWeb(ctx context.Context, query string) (string, error) {
	return s.Generate(ctx, ClassReasoning, query)
}

// SynthesizeVisual asks the image-capable model to work from prompt.
func (s *Session) SynthesizeVisual(ctx context.Context, prompt string) (string, error) {
	return s.Generate(ctx, ClassVisual, prompt)
}

// QueryVault answers query using items as grounding context.
func (s *Session) QueryVault(ctx context.Context, query string, items []model.ResearchItem) (string, error) {
	prompt, err := vaultPrompt(query, items)
	if err != nil {
		return "", err
	}
	return s.Generate(ctx, ClassReasoning, prompt)
}

func vaultPrompt(query string, items []model.ResearchItem) (string, error) {
	if items == nil {
		items = []model.ResearchItem{}
	}
	ctxJSON, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode vault context: %w", err)
	}
	var sb strings.Builder
	sb.WriteString("You are a Strategic Assistant. Use the following context from the Knowledge Vault to answer the query.\n")
	sb.WriteString("Context: ")
	sb.Write(ctxJSON)
	sb.WriteString("\nQuery: ")
	sb.WriteString(query)
	return sb.String(), nil
}

// Run dispatches a named task. Vault tasks use items as context; the others
// ignore it.
func (s *Session) Run(ctx context.Context, task Task, input string, items []model.ResearchItem) (string, error) {
	switch task {
	case TaskVideo:
		return s.AnalyzeVideo(ctx, input)
	case TaskResearch:
		return s.ResearchWeb(ctx, input)
	case TaskVisual:
		return s.SynthesizeVisual(ctx, input)
	case TaskVault:
		return s.QueryVault(ctx, input, items)
	default:
		_, err := task.Class()
		return "", err
	}
}
