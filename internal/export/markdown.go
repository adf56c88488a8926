// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/A4xPraddy/multiscrapper-ai/internal/backend"
	"github.com/A4xPraddy/multiscrapper-ai/internal/model"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter exports reports to Markdown format.
type MarkdownExporter struct {
	options *Options
}

// NewMarkdownExporter creates a new Markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{options: opts}
}

// Export converts a report to Markdown format.
func (e *MarkdownExporter) Export(r *Report) ([]byte, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}

	var sb strings.Builder

	// YAML frontmatter with metadata
	if e.options.IncludeMetadata {
		sb.WriteString("---\n")
		fmt.Fprintf(&sb, "title: %s\n", escapeYAML(r.Source))
		fmt.Fprintf(&sb, "tool: %s\n", escapeYAML(r.Tool))
		fmt.Fprintf(&sb, "kind: %s\n", r.Result.Kind)
		fmt.Fprintf(&sb, "date: %s\n", r.CreatedAt.Format(time.RFC3339))
		if len(r.Transcript) > 0 {
			fmt.Fprintf(&sb, "turns: %d\n", len(r.Transcript))
		}
		sb.WriteString("generator: multiscrapper-ai\n")
		sb.WriteString("---\n\n")
	}

	fmt.Fprintf(&sb, "# %s\n\n", escapeMarkdown(title(r)))

	if e.options.IncludeMetadata {
		sb.WriteString("## Source\n\n")
		fmt.Fprintf(&sb, "- **Tool**: %s\n", r.Tool)
		fmt.Fprintf(&sb, "- **Source**: %s\n", r.Source)
		fmt.Fprintf(&sb, "- **Analyzed**: %s\n", formatTimestamp(r.CreatedAt))
		if r.Result.Kind == backend.KindDocument {
			fmt.Fprintf(&sb, "- **Pages**: %d\n", r.Result.PageCount)
		}
		if r.Result.HasScreenshot() {
			fmt.Fprintf(&sb, "- **Screenshot**: `%s`\n", r.Result.Screenshot)
		}
		sb.WriteString("\n---\n\n")
	}

	sb.WriteString("## Analysis\n\n")
	sb.WriteString(r.Body())
	sb.WriteString("\n\n")

	if len(r.Transcript) > 0 {
		sb.WriteString("## Follow-up\n\n")
		for i, turn := range r.Transcript {
			if e.options.IncludeTimestamps && !turn.Timestamp.IsZero() {
				fmt.Fprintf(&sb, "### %s <sub>%s</sub>\n\n", roleLabel(turn.Role), formatShortTimestamp(turn.Timestamp))
			} else {
				fmt.Fprintf(&sb, "### %s\n\n", roleLabel(turn.Role))
			}
			sb.WriteString(strings.TrimSpace(turn.Content))
			sb.WriteString("\n\n")
			if i < len(r.Transcript)-1 {
				sb.WriteString("---\n\n")
			}
		}
	}

	sb.WriteString("\n---\n\n")
	fmt.Fprintf(&sb, "*Exported from MultiScrapper AI on %s*\n",
		r.CreatedAt.Format("January 2, 2006 at 3:04 PM"))

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for Markdown.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// MimeType returns the MIME type for Markdown.
func (e *MarkdownExporter) MimeType() string {
	return "text/markdown"
}

// =============================================================================
// FORMATTING HELPERS
// =============================================================================

func title(r *Report) string {
	if r.Source == "" {
		return r.Tool + " Analysis"
	}
	return r.Source
}

func roleLabel(role model.Role) string {
	if role == "" {
		return "Unknown"
	}
	return "[" + role.DisplayName() + "]"
}

// =============================================================================
// ESCAPING HELPERS
// =============================================================================

// escapeMarkdown escapes special Markdown characters in plain text.
func escapeMarkdown(s string) string {
	// Only escape characters that would break formatting in titles/headings
	s = strings.ReplaceAll(s, "#", "\\#")
	s = strings.ReplaceAll(s, "*", "\\*")
	s = strings.ReplaceAll(s, "_", "\\_")
	s = strings.ReplaceAll(s, "[", "\\[")
	s = strings.ReplaceAll(s, "]", "\\]")
	return s
}

// escapeYAML escapes special YAML characters in values.
func escapeYAML(s string) string {
	if strings.ContainsAny(s, ":#|>@`\"'[]{}!%&*\n\r\\") || strings.HasPrefix(s, " ") || strings.HasSuffix(s, " ") {
		s = strings.ReplaceAll(s, "\\", "\\\\")
		s = strings.ReplaceAll(s, "\"", "\\\"")
		s = strings.ReplaceAll(s, "\n", "\\n")
		s = strings.ReplaceAll(s, "\r", "\\r")
		return fmt.Sprintf("\"%s\"", s)
	}
	return s
}
