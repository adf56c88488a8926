// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes an analysis and its follow-up transcript to disk.
//
// # Key Types
//
//   - Report: one analysis with source, tool label and transcript
//   - Exporter: format-specific renderer
//   - Options: output directory, metadata and theme
//
// # Supported Formats
//
//   - Markdown: human-readable with YAML frontmatter
//   - JSON: machine-readable, always complete
//   - HTML: self-contained page with embedded CSS
//   - PDF: A4 document rendered with gofpdf
//
// # Usage
//
//	r := export.NewReport("Web Scraper", url, result, transcript)
//	exp, _ := export.New(export.FormatPDF, nil)
//	path, err := export.ExportToFile(r, exp, &export.Options{OutputDir: "out"})
package export
