// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// media.go - Screenshot download, vision analysis and table extraction.
//
// Examples:
//   multiscrapper screenshot -o page.png
//   multiscrapper vision static/screenshot.png "What does the chart show?"
//   multiscrapper extract notes.txt --provider groq
//   cat notes.txt | multiscrapper extract -

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/A4xPraddy/multiscrapper-ai/internal/backend"
	"github.com/A4xPraddy/multiscrapper-ai/internal/util"
)

// =============================================================================
// SCREENSHOT
// =============================================================================

func newScreenshotCmd(e *env) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "screenshot",
		Short: "Save the screenshot captured by the last web scrape",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScreenshot(cmd.Context(), e, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: screenshot_<time> in ui.export_dir)")
	return cmd
}

func runScreenshot(ctx context.Context, e *env, output string) error {
	if err := e.setup(false); err != nil {
		return err
	}
	return OutputJSON(e.out, e.jsonOut, "screenshot", func() (interface{}, error) {
		data, contentType, err := e.client.Screenshot(ctx)
		if err != nil {
			return nil, NewCommandError("screenshot", "fetch", err)
		}
		path := output
		if path == "" {
			path = filepath.Join(e.cfg.UI.ExportDir, util.ScreenshotFileName(time.Now(), contentType))
		}
		if err := util.AtomicWriteFile(path, data, 0644); err != nil {
			return nil, NewCommandError("screenshot", "write", err)
		}
		e.printf("%s Screenshot saved to %s\n", RenderStatus("ok"), path)
		return map[string]any{"path": path, "bytes": len(data), "content_type": contentType}, nil
	})
}

// =============================================================================
// VISION
// =============================================================================

func newVisionCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "vision <image-path> <prompt>",
		Short: "Ask Gemini about an image the backend holds",
		Long: `Vision sends a backend-side image path (for example the screenshot path
returned by 'analyze web') and a prompt to the backend's vision endpoint.
Requires a Gemini key.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVision(cmd.Context(), e, args[0], strings.Join(args[1:], " "))
		},
	}
}

func runVision(ctx context.Context, e *env, imagePath, prompt string) error {
	if err := e.setup(false); err != nil {
		return err
	}
	creds, err := e.credentials()
	if err != nil {
		return err
	}
	if creds.Gemini == "" {
		return errors.New("vision analysis requires a Gemini key")
	}
	return OutputJSON(e.out, e.jsonOut, "vision", func() (interface{}, error) {
		analysis, err := e.client.Vision(ctx, normalizeArg(imagePath), prompt, creds)
		if err != nil {
			return nil, NewCommandError("vision", "analyze", err)
		}
		e.printf("%s\n", e.renderMarkdown(analysis))
		return map[string]string{"analysis": analysis}, nil
	})
}

// =============================================================================
// EXTRACT
// =============================================================================

func newExtractCmd(e *env) *cobra.Command {
	var provider string
	cmd := &cobra.Command{
		Use:   "extract <text-file|->",
		Short: "Turn free text into a markdown table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd.Context(), e, args[0], provider)
		},
	}
	cmd.Flags().StringVar(&provider, "provider", "gemini", "Backend provider: gemini or groq")
	return cmd
}

func runExtract(ctx context.Context, e *env, file, provider string) error {
	label, err := providerLabel(provider)
	if err != nil {
		return err
	}
	text, err := readInput(e.in, file)
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return errors.New("no text to extract from")
	}
	if err := e.setup(false); err != nil {
		return err
	}
	creds, err := e.credentials()
	if err != nil {
		return err
	}
	return OutputJSON(e.out, e.jsonOut, "extract", func() (interface{}, error) {
		table, err := e.client.ExtractTable(ctx, text, label, creds)
		if err != nil {
			return nil, NewCommandError("extract", "table", err)
		}
		e.printf("%s\n", e.renderMarkdown(table))
		return map[string]string{"table": table}, nil
	})
}

// providerLabel maps a short provider name to the label the backend expects.
func providerLabel(name string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "gemini":
		return backend.ProviderGeminiFlash, nil
	case "groq":
		return backend.ProviderGroqLlama, nil
	default:
		return "", fmt.Errorf("unknown provider %q (want gemini or groq)", name)
	}
}

// readInput reads a file, or stdin when path is "-".
func readInput(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(normalizeArg(path))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return string(b), nil
}
