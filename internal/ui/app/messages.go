// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/A4xPraddy/multiscrapper-ai/internal/backend"
	"github.com/A4xPraddy/multiscrapper-ai/internal/export"
	"github.com/A4xPraddy/multiscrapper-ai/internal/model"
	"github.com/A4xPraddy/multiscrapper-ai/internal/portal"
	"github.com/A4xPraddy/multiscrapper-ai/internal/util"
)

// =============================================================================
// MESSAGES
// =============================================================================

// ProcessDoneMsg carries the outcome of an analysis.
type ProcessDoneMsg struct {
	Result backend.Result
	Err    error
}

// AskDoneMsg carries the outcome of a follow-up question.
type AskDoneMsg struct {
	Turns []model.ChatTurn
	Err   error
}

// KeysSavedMsg reports a credential save.
type KeysSavedMsg struct {
	Ready bool
	Err   error
}

// ExportDoneMsg reports a written report.
type ExportDoneMsg struct {
	Path string
	Err  error
}

// ScreenshotSavedMsg reports a saved screenshot.
type ScreenshotSavedMsg struct {
	Path string
	Err  error
}

// =============================================================================
// COMMAND CREATORS
// =============================================================================

func processCmd(ctx context.Context, p *portal.Portal) tea.Cmd {
	return func() tea.Msg {
		res, err := p.Process(ctx)
		return ProcessDoneMsg{Result: res, Err: err}
	}
}

func askCmd(ctx context.Context, p *portal.Portal, question string) tea.Cmd {
	return func() tea.Msg {
		turns, err := p.Ask(ctx, question)
		return AskDoneMsg{Turns: turns, Err: err}
	}
}

func saveKeysCmd(store KeyStore, gemini, groq string) tea.Cmd {
	return func() tea.Msg {
		ready, err := store.Save(gemini, groq)
		return KeysSavedMsg{Ready: ready, Err: err}
	}
}

func exportCmd(r *export.Report, dir string) tea.Cmd {
	return func() tea.Msg {
		opts := export.DefaultOptions()
		opts.OutputDir = dir
		path, err := export.ExportToFile(r, export.NewMarkdownExporter(opts), opts)
		return ExportDoneMsg{Path: path, Err: err}
	}
}

func screenshotCmd(ctx context.Context, src ScreenshotSource, dir string) tea.Cmd {
	return func() tea.Msg {
		data, contentType, err := src.Screenshot(ctx)
		if err != nil {
			return ScreenshotSavedMsg{Err: err}
		}
		path := filepath.Join(dir, util.ScreenshotFileName(time.Now(), contentType))
		if err := util.AtomicWriteFile(path, data, 0644); err != nil {
			return ScreenshotSavedMsg{Err: err}
		}
		return ScreenshotSavedMsg{Path: path}
	}
}
