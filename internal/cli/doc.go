// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the multiscrapper command line using cobra.
//
// Running the binary with no arguments starts the terminal UI. Every other
// command is a non-interactive path over the same packages the UI uses, so
// analyses can be scripted and piped.
//
// # Commands Overview
//
//   - tui: the interactive portal (default)
//   - keys set|show|clear: provider key management
//   - analyze web|video|document: run a tool, optionally ask follow-ups or chat
//   - screenshot: save the last captured page image
//   - vision, extract: auxiliary backend analyses
//   - generate: direct model call through the AI adapter
//   - config show|path|init, version
//
// Commands that produce data accept --json and write a JSONResponse envelope
// to stdout; human-readable notes go to stderr in that mode.
package cli
