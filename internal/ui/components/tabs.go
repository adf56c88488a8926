// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/A4xPraddy/multiscrapper-ai/internal/ui/styles"
)

// =============================================================================
// TABS COMPONENT
// =============================================================================

// Tabs renders a row of labels with one highlighted.
type Tabs struct {
	Labels []string
	Active int
	theme  *styles.Theme
}

// NewTabs creates a tab row.
func NewTabs(theme *styles.Theme, labels ...string) Tabs {
	return Tabs{Labels: labels, theme: theme}
}

// View renders the tabs.
func (t Tabs) View() string {
	parts := make([]string, 0, len(t.Labels))
	for i, label := range t.Labels {
		if i == t.Active {
			parts = append(parts, t.theme.TabActive.Render(label))
		} else {
			parts = append(parts, t.theme.TabInactive.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
