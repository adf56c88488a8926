// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/A4xPraddy/multiscrapper-ai/internal/ui/styles"
)

func TestHeader_Pill(t *testing.T) {
	h := NewHeader(styles.NewTheme("dark"))
	assert.Contains(t, h.View(), LabelOffline)
	assert.NotContains(t, h.View(), LabelConnected)

	h.SetConnected(true)
	assert.Contains(t, h.View(), LabelConnected)
	assert.NotContains(t, h.View(), LabelOffline)
}

func TestHeader_Width(t *testing.T) {
	h := NewHeader(styles.NewTheme("dark"))
	for _, w := range []int{30, 60, 120} {
		h.SetWidth(w)
		for _, line := range strings.Split(h.View(), "\n") {
			assert.LessOrEqual(t, lipgloss.Width(line), w, "width %d", w)
		}
	}
	h.SetWidth(40)
	assert.NotContains(t, h.View(), h.Tagline)
}

func TestTabs_View(t *testing.T) {
	tabs := NewTabs(styles.NewTheme("dark"), "Web Scraper", "YouTube Video", "PDF Document")
	tabs.Active = 1
	out := tabs.View()
	for _, label := range tabs.Labels {
		assert.Contains(t, out, label)
	}
}

func TestAlert_Dismiss(t *testing.T) {
	a := NewAlert(styles.NewTheme("dark"))
	assert.Empty(t, a.View())

	a.Show("Error", "Please connect your API keys first!")
	assert.True(t, a.IsVisible())
	assert.Contains(t, a.View(), "Please connect your API keys first!")

	a, _ = a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	assert.True(t, a.IsVisible())

	a, _ = a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, a.IsVisible())
}

func TestSpinner_Lifecycle(t *testing.T) {
	s := NewSpinner()
	assert.Empty(t, s.View())

	cmd := s.Start()
	assert.NotNil(t, cmd)
	assert.True(t, s.IsActive())
	assert.Contains(t, s.View(), "Processing...")

	s.Stop()
	assert.Empty(t, s.View())
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "5s", formatElapsed(5*time.Second))
	assert.Equal(t, "2m 3s", formatElapsed(123*time.Second))
}
