// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/A4xPraddy/multiscrapper-ai/internal/export"
	"github.com/A4xPraddy/multiscrapper-ai/internal/portal"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the whole screen.
func (m Model) View() string {
	header := m.header.View()

	if m.alert.IsVisible() {
		return lipgloss.JoinVertical(lipgloss.Left, header,
			lipgloss.Place(m.width, m.height-headerHeight, lipgloss.Center, lipgloss.Center, m.alert.View()))
	}

	if m.settingsOpen {
		return lipgloss.JoinVertical(lipgloss.Left, header,
			lipgloss.Place(m.width, m.height-headerHeight, lipgloss.Center, lipgloss.Center, m.viewSettings()))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.tabs.View(),
		"",
		m.viewInput(),
		m.viewStatus(),
		m.theme.ResultBox.Render(m.resultView.View()),
		m.theme.ResultBox.Render(m.chatView.View()),
		m.viewChatInput(),
		m.viewHelp(),
	)
}

func (m Model) viewSettings() string {
	groqLabel := m.theme.InputLabel.Render("Groq API Key")
	geminiLabel := m.theme.InputLabel.Render("Gemini API Key")

	body := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.HeaderBrand.Render("Connect your AI providers"),
		m.theme.SettingsHint.Render("At least one key is required. Keys are stored locally."),
		"",
		groqLabel,
		m.groqInput.View(),
		"",
		geminiLabel,
		m.geminiInput.View(),
		"",
		m.theme.SettingsHint.Render("Tab switch field  Enter save  Esc close"),
	)
	return m.theme.SettingsBox.Render(body)
}

func (m Model) viewInput() string {
	box := m.theme.InputContainer
	if m.focus == focusURL {
		box = m.theme.InputFocused
	}
	return box.Width(m.width - 2).Render(m.urlInput.View())
}

func (m Model) viewChatInput() string {
	box := m.theme.InputContainer
	if m.focus == focusChat {
		box = m.theme.InputFocused
	}
	input := m.chatInput.View()
	if m.asking {
		input = m.theme.Placeholder.Render("Waiting for answer...")
	}
	return box.Width(m.width - 2).Render(input)
}

func (m Model) viewStatus() string {
	switch {
	case m.busy:
		return m.spinner.View()
	case m.notice != "":
		return m.theme.Notice.Render(m.notice)
	default:
		return ""
	}
}

func (m Model) viewHelp() string {
	parts := make([]string, 0, len(m.keys.ShortHelp()))
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		parts = append(parts, m.theme.ShortcutKey.Render(h.Key)+" "+m.theme.ShortcutDesc.Render(h.Desc))
	}
	return m.theme.StatusBar.Render(strings.Join(parts, "  "))
}

// =============================================================================
// PANES
// =============================================================================

// refreshResult re-renders the result pane from portal state.
func (m *Model) refreshResult() {
	res, ok := m.portal.Result()
	if !ok {
		m.resultView.SetContent(m.theme.Placeholder.Render(emptyHint(m.portal.Tool())))
		m.resultView.GotoTop()
		return
	}

	var sb strings.Builder
	sb.WriteString(m.theme.ResultTitle.Render(res.Title()))
	sb.WriteString("\n")

	content := strings.TrimSpace(res.Content())
	if content == "" {
		sb.WriteString(m.theme.Placeholder.Render(export.NoContent))
	} else {
		sb.WriteString(m.renderMarkdown(content))
	}

	if res.HasScreenshot() {
		sb.WriteString("\n")
		sb.WriteString(m.theme.Placeholder.Render("Page screenshot captured. Press ctrl+o to save it."))
	}

	m.resultView.SetContent(sb.String())
	m.resultView.GotoTop()
}

// refreshChat re-renders the transcript.
func (m *Model) refreshChat() {
	turns := m.portal.Transcript()
	if len(turns) == 0 {
		m.chatView.SetContent(m.theme.Placeholder.Render("Ask questions about the analyzed content."))
		return
	}

	var sb strings.Builder
	for i, t := range turns {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(m.theme.RoleLabel.Render(t.Role.DisplayName()))
		sb.WriteString("\n")
		if t.IsUser() {
			sb.WriteString(m.theme.UserBubble.Render(t.Content))
		} else {
			sb.WriteString(m.renderMarkdown(t.Content))
		}
		sb.WriteString("\n")
	}
	m.chatView.SetContent(sb.String())
	m.chatView.GotoBottom()
}

func (m Model) renderMarkdown(md string) string {
	if m.renderer == nil {
		return md
	}
	out, err := m.renderer.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

func emptyHint(t portal.Tool) string {
	switch t {
	case portal.ToolDocument:
		return "Enter the path of a PDF and press Enter."
	case portal.ToolVideo:
		return "Paste a YouTube link and press Enter."
	default:
		return "Paste a URL and press Enter."
	}
}
