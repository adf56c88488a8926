// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Interactive follow-up session for analyze --chat.
//
// USABILITY: Line editing and history for better CLI experience
//
// Interactive Commands (during chat):
//   /help, /h           Show available commands
//   /history            Show the follow-up transcript
//   /export [fmt]       Write a report (default md)
//   /vault <query>      Ask the AI adapter across everything analyzed
//   /quit, /q           Exit chat
//   Ctrl+C, Ctrl+D      Exit chat

package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/A4xPraddy/multiscrapper-ai/internal/ai"
	"github.com/A4xPraddy/multiscrapper-ai/internal/config"
	"github.com/A4xPraddy/multiscrapper-ai/internal/export"
	"github.com/A4xPraddy/multiscrapper-ai/internal/logger"
	"github.com/A4xPraddy/multiscrapper-ai/internal/portal"
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// ChatCLI provides input history and line editing for interactive chat.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a ChatCLI with history loaded from the config dir.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}
	c := &ChatCLI{
		line:        line,
		historyFile: filepath.Join(configDir, "chat_history"),
	}
	if f, err := os.Open(c.historyFile); err == nil {
		_, _ = c.line.ReadHistory(f)
		f.Close()
	}
	return c
}

// ReadInput reads a line of input with the given prompt.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// SaveHistory persists history with owner-only permissions.
func (c *ChatCLI) SaveHistory() {
	if err := os.MkdirAll(filepath.Dir(c.historyFile), 0700); err != nil {
		return
	}
	f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = c.line.WriteHistory(f)
}

// Close saves history and restores the terminal.
func (c *ChatCLI) Close() {
	c.SaveHistory()
	c.line.Close()
}

// =============================================================================
// REPL
// =============================================================================

func runChat(ctx context.Context, e *env, p *portal.Portal) error {
	if err := RequiresTTY("chat"); err != nil {
		return err
	}
	c := NewChatCLI()
	defer c.Close()

	e.printf("\n%s\n", TitleStyle.Render("Follow-up chat"))
	e.printf("%s\n", DimStyle.Render("Ask about the analyzed content. /help for commands, /quit to exit."))

	for {
		input, err := c.ReadInput("ask> ")
		if err != nil {
			// Ctrl+C (liner.ErrPromptAborted) or Ctrl+D both end the session.
			e.printf("\n")
			return nil
		}
		more, err := chatLine(ctx, e, p, input)
		if err != nil {
			if ctx.Err() != nil {
				e.printf("%s\n", WarningStyle.Render("[Cancelled]"))
				return nil
			}
			e.printf("%s %s\n", ErrorStyle.Render("[Error]"), userMessage(err))
		}
		if !more {
			return nil
		}
	}
}

// chatLine handles one line of REPL input. It returns false when the
// session should end.
func chatLine(ctx context.Context, e *env, p *portal.Portal, input string) (bool, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return true, nil
	}
	if strings.EqualFold(input, "exit") || strings.EqualFold(input, "quit") {
		return false, nil
	}
	if strings.HasPrefix(input, "/") {
		return handleSlashCommand(ctx, e, p, input)
	}

	turns, err := p.Ask(ctx, input)
	if err != nil {
		return true, err
	}
	if len(turns) > 1 {
		e.printTurns(turns[1:])
	}
	return true, nil
}

func handleSlashCommand(ctx context.Context, e *env, p *portal.Portal, input string) (bool, error) {
	name, arg, _ := strings.Cut(input, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(name) {
	case "/quit", "/q", "/exit":
		return false, nil

	case "/help", "/h":
		for _, line := range []string{
			"/history          Show the follow-up transcript",
			"/export [fmt]     Write a report (md, json, html, pdf)",
			"/vault <query>    Ask across everything analyzed this session",
			"/quit             Exit chat",
		} {
			e.printf("  %s\n", line)
		}
		return true, nil

	case "/history":
		turns := p.Transcript()
		if len(turns) == 0 {
			e.printf("%s\n", DimStyle.Render("No questions yet."))
			return true, nil
		}
		e.printTurns(turns)
		return true, nil

	case "/export":
		format := export.FormatMarkdown
		if arg != "" {
			f, err := export.ParseFormat(arg)
			if err != nil {
				return true, err
			}
			format = f
		}
		path, err := e.exportReport(p, format, "")
		if err != nil {
			return true, err
		}
		e.printf("%s Report saved to %s\n", RenderStatus("ok"), path)
		return true, nil

	case "/vault":
		if arg == "" {
			return true, errors.New("usage: /vault <query>")
		}
		session, err := e.aiSession(ctx, "")
		if err != nil {
			return true, err
		}
		answer, err := session.Run(ctx, ai.TaskVault, arg, p.Vault())
		if err != nil {
			return true, err
		}
		logger.Debug("vault query answered", "items", len(p.Vault()))
		e.printf("%s\n", e.renderMarkdown(answer))
		return true, nil

	default:
		return true, errors.New("unknown command " + name + " (try /help)")
	}
}
