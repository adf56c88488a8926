// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the MultiScrapper AI
terminal portal.

All colors use Lip Gloss AdaptiveColor so one palette serves light and dark
terminals. The theme mode from configuration ("dark", "light", "auto") picks
which half of each pair is used; "auto" asks the terminal through termenv.

# Color System (colors.go)

  - Indigo - primary accent, active tool tab, bot replies
  - Cyan - prompts and shortcut keys
  - Emerald - "AI Connected" pill and success notices
  - Rose - "AI Offline" pill and alerts
  - Amber - warnings

# Theme (theme.go)

	theme := styles.NewTheme(cfg.UI.Theme)
	header := theme.HeaderBrand.Render("MultiScrapper AI")

# Accessibility

Status messages always pair color with an ASCII indicator ([OK], [X], [!],
[i]) through RenderSuccess, RenderError, RenderWarning and RenderInfo.
*/
package styles
