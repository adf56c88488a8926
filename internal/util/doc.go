// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across multiscrapper packages.
//
// # Key Functions
//
// String Utilities:
//   - TruncateRunes: UTF-8 safe string truncation with ellipsis
//   - TruncateWidth, StringWidth: display-width aware helpers (go-runewidth)
//   - OneLine: whitespace collapsing for status lines
//
// Secrets:
//   - Fingerprint: SHA-256 prefix for logging which key is in use
//   - MaskSecret: redacted display form (length + fingerprint)
//
// File Operations:
//   - AtomicWriteFile: Crash-safe file writing with fsync
//   - ImageExtension, ScreenshotFileName: naming for downloaded screenshots
package util
