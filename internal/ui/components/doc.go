// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual building blocks of the portal.
// Components are small value types rendered by the app model:
//
//   - Header: brand and "AI Connected" / "AI Offline" pill
//   - Tabs: tool selector row
//   - Spinner: processing indicator with elapsed time
//   - Alert: blocking message dismissed with Enter or Esc
package components
