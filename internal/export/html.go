// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/A4xPraddy/multiscrapper-ai/internal/backend"
	"github.com/A4xPraddy/multiscrapper-ai/internal/model"
)

var (
	codeBlockRegex  = regexp.MustCompile("```([a-zA-Z0-9_+-]*)\n([\\s\\S]*?)```")
	inlineCodeRegex = regexp.MustCompile("`([^`]+)`")
)

// =============================================================================
// HTML EXPORTER
// =============================================================================

// HTMLExporter exports reports to HTML format with embedded CSS.
type HTMLExporter struct {
	options *Options
}

// NewHTMLExporter creates a new HTML exporter.
func NewHTMLExporter(opts *Options) *HTMLExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &HTMLExporter{options: opts}
}

// Export converts a report to HTML format.
func (e *HTMLExporter) Export(r *Report) ([]byte, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}

	theme := e.options.Theme
	if theme != "light" {
		theme = "dark"
	}

	var sb strings.Builder

	sb.WriteString("<!DOCTYPE html>\n")
	sb.WriteString("<html lang=\"en\">\n")
	sb.WriteString("<head>\n")
	sb.WriteString("    <meta charset=\"UTF-8\">\n")
	sb.WriteString("    <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	fmt.Fprintf(&sb, "    <title>%s</title>\n", html.EscapeString(title(r)))
	sb.WriteString("    <meta name=\"generator\" content=\"multiscrapper-ai\">\n")
	fmt.Fprintf(&sb, "    <meta name=\"date\" content=\"%s\">\n", r.CreatedAt.Format(time.RFC3339))
	sb.WriteString(css)
	sb.WriteString("</head>\n")
	fmt.Fprintf(&sb, "<body class=\"%s-theme\">\n", theme)
	sb.WriteString("    <div class=\"container\">\n")

	if e.options.IncludeMetadata {
		sb.WriteString(e.renderHeader(r))
	}

	sb.WriteString("        <main class=\"analysis\">\n")
	sb.WriteString("            <h2>Analysis</h2>\n")
	sb.WriteString(e.formatContent(r.Body()))
	sb.WriteString("\n        </main>\n")

	if len(r.Transcript) > 0 {
		sb.WriteString("        <section class=\"conversation\">\n")
		sb.WriteString("            <h2>Follow-up</h2>\n")
		for _, turn := range r.Transcript {
			sb.WriteString(e.renderTurn(turn))
		}
		sb.WriteString("        </section>\n")
	}

	sb.WriteString("        <footer class=\"footer\">\n")
	fmt.Fprintf(&sb, "            <p>Exported from <strong>MultiScrapper AI</strong> on %s</p>\n",
		r.CreatedAt.Format("January 2, 2006 at 3:04 PM"))
	sb.WriteString("        </footer>\n")
	sb.WriteString("    </div>\n")
	sb.WriteString("</body>\n")
	sb.WriteString("</html>\n")

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for HTML.
func (e *HTMLExporter) FileExtension() string {
	return ".html"
}

// MimeType returns the MIME type for HTML.
func (e *HTMLExporter) MimeType() string {
	return "text/html"
}

// =============================================================================
// RENDERING FUNCTIONS
// =============================================================================

func (e *HTMLExporter) renderHeader(r *Report) string {
	var sb strings.Builder
	sb.WriteString("        <header class=\"header\">\n")
	fmt.Fprintf(&sb, "            <h1>%s</h1>\n", html.EscapeString(title(r)))
	sb.WriteString("            <div class=\"metadata\">\n")
	fmt.Fprintf(&sb, "                <span class=\"meta-item\"><strong>Tool:</strong> %s</span>\n", html.EscapeString(r.Tool))
	fmt.Fprintf(&sb, "                <span class=\"meta-item\"><strong>Analyzed:</strong> %s</span>\n", formatTimestamp(r.CreatedAt))
	if r.Result.Kind == backend.KindDocument {
		fmt.Fprintf(&sb, "                <span class=\"meta-item\"><strong>Pages:</strong> %d</span>\n", r.Result.PageCount)
	}
	if r.Result.HasScreenshot() {
		fmt.Fprintf(&sb, "                <span class=\"meta-item\"><strong>Screenshot:</strong> <code>%s</code></span>\n", html.EscapeString(r.Result.Screenshot))
	}
	sb.WriteString("            </div>\n")
	sb.WriteString("        </header>\n")
	return sb.String()
}

func (e *HTMLExporter) renderTurn(turn model.ChatTurn) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "            <div class=\"message %s\">\n", html.EscapeString(turn.Role.String()))
	sb.WriteString("                <div class=\"message-header\">")
	fmt.Fprintf(&sb, "<span class=\"role\">%s</span>", html.EscapeString(roleLabel(turn.Role)))
	if e.options.IncludeTimestamps && !turn.Timestamp.IsZero() {
		fmt.Fprintf(&sb, " <span class=\"timestamp\">%s</span>", formatShortTimestamp(turn.Timestamp))
	}
	sb.WriteString("</div>\n")
	sb.WriteString(e.formatContent(turn.Content))
	sb.WriteString("\n            </div>\n")
	return sb.String()
}

// formatContent escapes text and renders fenced and inline code.
func (e *HTMLExporter) formatContent(content string) string {
	content = html.EscapeString(strings.TrimSpace(content))

	content = codeBlockRegex.ReplaceAllStringFunc(content, func(match string) string {
		parts := codeBlockRegex.FindStringSubmatch(match)
		if len(parts) != 3 {
			return match
		}
		lang, code := parts[1], parts[2]
		langLabel := ""
		if lang != "" {
			// SECURITY: the language tag is user controlled.
			langLabel = fmt.Sprintf("<div class=\"code-lang\">%s</div>", html.EscapeString(lang))
		}
		return fmt.Sprintf("<div class=\"code-block\">%s<pre><code class=\"language-%s\">%s</code></pre></div>",
			langLabel, html.EscapeString(lang), strings.TrimSpace(code))
	})

	content = inlineCodeRegex.ReplaceAllString(content, "<code class=\"inline-code\">$1</code>")

	var out []string
	for _, para := range strings.Split(content, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if strings.HasPrefix(para, "<div class=\"code-block\">") {
			out = append(out, para)
			continue
		}
		out = append(out, "<p>"+strings.ReplaceAll(para, "\n", "<br>\n")+"</p>")
	}
	return strings.Join(out, "\n")
}

// =============================================================================
// EMBEDDED CSS
// =============================================================================

const css = `    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        :root {
            --font-sans: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
            --font-mono: "SF Mono", "Monaco", "Inconsolata", "Fira Code", monospace;
        }
        .dark-theme {
            --bg-primary: #0f172a; --bg-secondary: #1e293b; --text-primary: #e2e8f0;
            --text-muted: #94a3b8; --border-color: #334155; --accent: #6366f1; --user-bg: #312e81;
        }
        .light-theme {
            --bg-primary: #f8fafc; --bg-secondary: #ffffff; --text-primary: #0f172a;
            --text-muted: #64748b; --border-color: #e2e8f0; --accent: #4f46e5; --user-bg: #eef2ff;
        }
        body {
            font-family: var(--font-sans); background: var(--bg-primary); color: var(--text-primary);
            line-height: 1.6; padding: 20px;
        }
        .container { max-width: 900px; margin: 0 auto; }
        .header, .analysis, .conversation, .footer {
            background: var(--bg-secondary); border: 1px solid var(--border-color);
            border-radius: 12px; padding: 24px; margin-bottom: 16px;
        }
        h1 { font-size: 1.6em; margin-bottom: 8px; word-break: break-all; }
        h2 { font-size: 1.2em; margin-bottom: 12px; color: var(--accent); }
        p { margin-bottom: 12px; }
        .metadata { display: flex; flex-wrap: wrap; gap: 16px; color: var(--text-muted); font-size: 0.9em; }
        .message { border-radius: 8px; padding: 12px 16px; margin-bottom: 12px; border: 1px solid var(--border-color); }
        .message.user { background: var(--user-bg); }
        .message-header { font-size: 0.85em; color: var(--text-muted); margin-bottom: 6px; }
        .role { font-weight: 600; }
        .code-block { margin: 12px 0; }
        .code-lang { font-size: 0.75em; color: var(--text-muted); }
        pre { background: var(--bg-primary); padding: 12px; border-radius: 6px; overflow-x: auto; }
        code { font-family: var(--font-mono); font-size: 0.9em; }
        .inline-code { background: var(--bg-primary); padding: 1px 4px; border-radius: 4px; }
        .footer { text-align: center; color: var(--text-muted); font-size: 0.85em; }
        @media print { body { padding: 0; } .message { page-break-inside: avoid; } }
    </style>
`
