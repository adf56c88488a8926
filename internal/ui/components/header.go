// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/A4xPraddy/multiscrapper-ai/internal/ui/styles"
)

// Connection pill labels.
const (
	LabelConnected = "AI Connected"
	LabelOffline   = "AI Offline"
)

// =============================================================================
// HEADER COMPONENT
// =============================================================================

// Header is the title bar with the brand and the connection pill.
type Header struct {
	Title     string
	Tagline   string
	Connected bool
	Width     int
	theme     *styles.Theme
}

// NewHeader creates a header with the default brand.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		Title:   "MultiScrapper AI",
		Tagline: "Content Intelligence Portal",
		Width:   80,
		theme:   theme,
	}
}

// SetWidth updates the header width
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetConnected updates the connection pill.
func (h *Header) SetConnected(connected bool) {
	h.Connected = connected
}

// Pill renders just the connection pill.
func (h *Header) Pill() string {
	if h.Connected {
		return h.theme.PillOnline.Render(LabelConnected)
	}
	return h.theme.PillOffline.Render(LabelOffline)
}

// View renders the header. Narrow terminals drop the tagline.
func (h *Header) View() string {
	width := h.Width
	if width < 30 {
		width = 30
	}

	left := h.theme.HeaderBrand.Render(h.Title)
	if width >= 60 {
		left += " " + h.theme.HeaderTagline.Render(h.Tagline)
	}
	pill := h.Pill()

	inner := width - h.theme.Header.GetHorizontalFrameSize()
	gap := inner - lipgloss.Width(left) - lipgloss.Width(pill)
	if gap < 1 {
		gap = 1
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, left, lipgloss.NewStyle().Width(gap).Render(""), pill)
	return h.theme.Header.Width(width).Render(row)
}
