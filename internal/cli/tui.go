// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/A4xPraddy/multiscrapper-ai/internal/logger"
	"github.com/A4xPraddy/multiscrapper-ai/internal/portal"
	"github.com/A4xPraddy/multiscrapper-ai/internal/ui/app"
	"github.com/A4xPraddy/multiscrapper-ai/internal/ui/styles"
)

func newTUICmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the terminal portal (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), e)
		},
	}
}

func runTUI(ctx context.Context, e *env) error {
	if e.jsonOut {
		return fmt.Errorf("--json is not supported by the terminal portal")
	}
	if err := e.setup(true); err != nil {
		return err
	}

	tool, err := portal.ParseTool(e.cfg.UI.DefaultTool)
	if err != nil {
		tool = portal.ToolWeb
	}

	m := app.New(app.Deps{
		Portal:      e.newPortal(tool),
		Keys:        e.keys,
		Screenshots: e.client,
		Theme:       styles.NewTheme(e.cfg.UI.Theme),
		ExportDir:   e.cfg.UI.ExportDir,
		Ctx:         ctx,
	})

	logger.Info("portal started", "tool", tool.String())
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("portal: %w", err)
	}
	logger.Info("portal closed")
	return nil
}
