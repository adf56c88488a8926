// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/A4xPraddy/multiscrapper-ai/internal/backend"
	"github.com/A4xPraddy/multiscrapper-ai/internal/model"
)

func testReport() *Report {
	at := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	return &Report{
		Tool:   "Web Scraper",
		Source: "https://example.com/a?b=c",
		Result: backend.Result{
			Kind:       backend.KindWeb,
			Text:       "Example Domain\n\nThis domain is for use in `examples`.",
			Screenshot: "page.png",
		},
		Transcript: []model.ChatTurn{
			{Role: model.RoleUser, Content: "What is it?", Timestamp: at},
			{Role: model.RoleBot, Content: "A placeholder.", Timestamp: at.Add(time.Second)},
		},
		CreatedAt: at,
	}
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{
		"md": FormatMarkdown, "Markdown": FormatMarkdown, ".json": FormatJSON,
		"html": FormatHTML, "htm": FormatHTML, "PDF": FormatPDF,
	}
	for in, want := range cases {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("docx")
	assert.Error(t, err)
}

func TestNew_EveryFormat(t *testing.T) {
	exts := map[Format]string{FormatMarkdown: ".md", FormatJSON: ".json", FormatHTML: ".html", FormatPDF: ".pdf"}
	for _, f := range Formats() {
		exp, err := New(f, nil)
		require.NoError(t, err)
		assert.Equal(t, exts[f], exp.FileExtension())
		assert.NotEmpty(t, exp.MimeType())
	}
	_, err := New("xml", nil)
	assert.Error(t, err)
}

func TestExport_NilReport(t *testing.T) {
	for _, f := range Formats() {
		exp, _ := New(f, nil)
		_, err := exp.Export(nil)
		assert.ErrorIs(t, err, ErrNilReport, f)
	}
}

func TestMarkdown_Content(t *testing.T) {
	out, err := NewMarkdownExporter(nil).Export(testReport())
	require.NoError(t, err)
	md := string(out)

	assert.True(t, strings.HasPrefix(md, "---\n"))
	assert.Contains(t, md, "title: \"https://example.com/a?b=c\"")
	assert.Contains(t, md, "tool: Web Scraper")
	assert.Contains(t, md, "- **Screenshot**: `page.png`")
	assert.Contains(t, md, "## Analysis\n\nExample Domain")
	assert.Contains(t, md, "### [You] <sub>09:26:53</sub>")
	assert.Contains(t, md, "### [Assistant] <sub>09:26:54</sub>")
	assert.Less(t, strings.Index(md, "What is it?"), strings.Index(md, "A placeholder."))
}

func TestMarkdown_NoMetadataNoTranscript(t *testing.T) {
	r := testReport()
	r.Transcript = nil
	out, err := NewMarkdownExporter(&Options{}).Export(r)
	require.NoError(t, err)
	md := string(out)
	assert.False(t, strings.HasPrefix(md, "---\n"))
	assert.NotContains(t, md, "## Follow-up")
	assert.NotContains(t, md, "**Tool**")
}

func TestMarkdown_EmptyResult(t *testing.T) {
	r := testReport()
	r.Result = backend.Result{Kind: backend.KindVideo}
	out, err := NewMarkdownExporter(nil).Export(r)
	require.NoError(t, err)
	assert.Contains(t, string(out), NoContent)
}

func TestMarkdown_DocumentPages(t *testing.T) {
	r := testReport()
	r.Result = backend.Result{Kind: backend.KindDocument, Text: "body", PageCount: 12}
	out, err := NewMarkdownExporter(nil).Export(r)
	require.NoError(t, err)
	assert.Contains(t, string(out), "- **Pages**: 12")
	assert.NotContains(t, string(out), "Screenshot")
}

func TestJSON_Shape(t *testing.T) {
	r := testReport()
	r.Transcript = nil
	out, err := NewJSONExporter(nil).Export(r)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(out, &got))
	assert.Equal(t, "web", got["kind"])
	assert.Equal(t, "Web Scraper", got["tool"])
	assert.Equal(t, []any{}, got["transcript"])
	result := got["result"].(map[string]any)
	assert.Equal(t, "page.png", result["screenshot"])
}

func TestHTML_EscapesAndRendersCode(t *testing.T) {
	r := testReport()
	r.Source = `<script>alert("x")</script>`
	r.Result.Text = "Intro\n\n```go\nfmt.Println(\"<b>\")\n```\n\nUse `x < y`."
	out, err := NewHTMLExporter(&Options{IncludeMetadata: true, Theme: "light"}).Export(r)
	require.NoError(t, err)
	page := string(out)

	assert.NotContains(t, page, "<script>alert")
	assert.Contains(t, page, "&lt;script&gt;")
	assert.Contains(t, page, `<body class="light-theme">`)
	assert.Contains(t, page, `<code class="language-go">fmt.Println(&#34;&lt;b&gt;&#34;)</code>`)
	assert.Contains(t, page, `<code class="inline-code">x &lt; y</code>`)
	assert.Contains(t, page, `<div class="message user">`)
}

func TestHTML_UnknownThemeFallsBackToDark(t *testing.T) {
	out, err := NewHTMLExporter(&Options{Theme: "neon"}).Export(testReport())
	require.NoError(t, err)
	assert.Contains(t, string(out), `<body class="dark-theme">`)
}

func TestPDF_RendersDocument(t *testing.T) {
	r := testReport()
	r.Result.Text = "# Heading\n\n- bullet **bold**\n1. first\n\n```\ncode\n```\nCafé résumé"
	out, err := NewPDFExporter(nil).Export(r)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.True(t, bytes.Contains(out, []byte("%%EOF")))
}

func TestExportToFile(t *testing.T) {
	dir := t.TempDir()
	r := testReport()
	path, err := ExportToFile(r, NewMarkdownExporter(nil), &Options{OutputDir: filepath.Join(dir, "reports")})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "reports", "report_example.com-a-b-c_20250314_092653.md"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Example Domain")
}

func TestExportToFile_ExportErrorWritesNothing(t *testing.T) {
	dir := t.TempDir()
	_, err := ExportToFile(&Report{}, NewJSONExporter(nil), &Options{OutputDir: dir})
	require.Error(t, err)
	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries)
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"https://youtu.be/abc?t=1": "youtu.be-abc-t-1",
		"report.pdf":               "report.pdf",
		"my file\tname":            "my_file_name",
		"":                         "analysis",
		"///":                      "analysis",
	}
	for in, want := range cases {
		assert.Equal(t, want, sanitizeFilename(in), in)
	}
	assert.LessOrEqual(t, len([]rune(sanitizeFilename(strings.Repeat("x", 200)))), 50)
}
