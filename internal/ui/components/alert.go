// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/A4xPraddy/multiscrapper-ai/internal/ui/styles"
)

// =============================================================================
// ALERT MODEL
// =============================================================================

// Alert is a blocking message box. While visible it swallows every key
// except the ones that dismiss it.
type Alert struct {
	title   string
	message string
	visible bool
	width   int
	theme   *styles.Theme
}

// NewAlert creates a hidden alert.
func NewAlert(theme *styles.Theme) Alert {
	return Alert{theme: theme}
}

// Show displays a message.
func (a *Alert) Show(title, message string) {
	a.title = title
	a.message = message
	a.visible = true
}

// Hide dismisses the alert.
func (a *Alert) Hide() {
	a.visible = false
}

// IsVisible reports whether the alert is showing.
func (a Alert) IsVisible() bool {
	return a.visible
}

// Message returns the current message.
func (a Alert) Message() string {
	return a.message
}

// SetWidth sets the available width.
func (a *Alert) SetWidth(width int) {
	a.width = width
}

// Update dismisses on enter, esc or q.
func (a Alert) Update(msg tea.Msg) (Alert, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && a.visible {
		switch k.String() {
		case "esc", "enter", "q":
			a.Hide()
		}
	}
	return a, nil
}

// View renders the alert box.
func (a Alert) View() string {
	if !a.visible {
		return ""
	}

	maxWidth := a.width - 8
	if maxWidth < 30 {
		maxWidth = 30
	}
	if maxWidth > 70 {
		maxWidth = 70
	}

	title := a.title
	if title == "" {
		title = "Error"
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		a.theme.AlertTitle.Render(styles.StatusIndicators.Error+" "+title),
		"",
		a.theme.AlertMessage.Width(maxWidth-4).Render(a.message),
		"",
		a.theme.AlertHint.Render("Press Enter or Esc to dismiss"),
	)
	return a.theme.AlertBox.Width(maxWidth).Render(body)
}
