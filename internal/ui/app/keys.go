// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines all keyboard bindings for the portal.
type KeyMap struct {
	Quit       key.Binding
	Settings   key.Binding
	NextTool   key.Binding
	Focus      key.Binding
	Submit     key.Binding
	Close      key.Binding
	Export     key.Binding
	Screenshot key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "quit"),
		),
		Settings: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("C-s", "api keys"),
		),
		NextTool: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "next tool"),
		),
		Focus: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-Tab", "url/chat"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "submit"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "close"),
		),
		Export: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("C-e", "export"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("C-o", "save screenshot"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("PgDn", "scroll down"),
		),
	}
}

// ShortHelp returns the bindings shown in the status bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTool, k.Focus, k.Submit, k.Settings, k.Export, k.Screenshot, k.Quit}
}
