// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/A4xPraddy/multiscrapper-ai/internal/backend"
	"github.com/A4xPraddy/multiscrapper-ai/internal/logger"
	"github.com/A4xPraddy/multiscrapper-ai/internal/model"
	"github.com/A4xPraddy/multiscrapper-ai/internal/util"
)

// NoContent is shown in place of an empty analysis.
const NoContent = "No content extracted."

// ErrNilReport is returned when there is nothing to export.
var ErrNilReport = errors.New("report is nil")

// =============================================================================
// REPORT
// =============================================================================

// Report is one analysis together with its follow-up transcript.
type Report struct {
	// Tool is the human label of the tool that produced the result.
	Tool string

	// Source is the analyzed URL or document name.
	Source string

	Result     backend.Result
	Transcript []model.ChatTurn
	CreatedAt  time.Time
}

// NewReport builds a report stamped now.
func NewReport(tool, source string, res backend.Result, transcript []model.ChatTurn) *Report {
	return &Report{
		Tool:       tool,
		Source:     source,
		Result:     res,
		Transcript: transcript,
		CreatedAt:  time.Now(),
	}
}

// Body returns the analysis text or NoContent.
func (r *Report) Body() string {
	if c := strings.TrimSpace(r.Result.Content()); c != "" {
		return c
	}
	return NoContent
}

func (r *Report) validate() error {
	if r == nil {
		return ErrNilReport
	}
	if r.CreatedAt.IsZero() {
		return fmt.Errorf("report has invalid creation timestamp")
	}
	return nil
}

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter defines the interface for report exporters.
type Exporter interface {
	// Export converts a report to the target format and returns the content.
	Export(r *Report) ([]byte, error)

	// FileExtension returns the appropriate file extension (e.g., ".md", ".html").
	FileExtension() string

	// MimeType returns the MIME type for the exported format.
	MimeType() string
}

// Format names an export format.
type Format string

const (
	FormatMarkdown Format = "md"
	FormatJSON     Format = "json"
	FormatHTML     Format = "html"
	FormatPDF      Format = "pdf"
)

// Formats lists every supported format.
func Formats() []Format {
	return []Format{FormatMarkdown, FormatJSON, FormatHTML, FormatPDF}
}

// ParseFormat accepts a format name or a file extension.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "md", "markdown":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "html", "htm":
		return FormatHTML, nil
	case "pdf":
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want md, json, html or pdf)", s)
	}
}

// New returns the exporter for a format.
func New(f Format, opts *Options) (Exporter, error) {
	switch f {
	case FormatMarkdown:
		return NewMarkdownExporter(opts), nil
	case FormatJSON:
		return NewJSONExporter(opts), nil
	case FormatHTML:
		return NewHTMLExporter(opts), nil
	case FormatPDF:
		return NewPDFExporter(opts), nil
	default:
		return nil, fmt.Errorf("unknown export format %q", f)
	}
}

// =============================================================================
// EXPORT OPTIONS
// =============================================================================

// Options configures export behavior.
type Options struct {
	// OutputDir is the directory where files will be saved.
	// Default: current working directory
	OutputDir string

	// OpenAfterExport opens the file in the default application.
	OpenAfterExport bool

	// IncludeMetadata includes the metadata header (tool, source, date).
	IncludeMetadata bool

	// IncludeTimestamps includes per-turn timestamps in the transcript.
	IncludeTimestamps bool

	// Theme for HTML export ("light" or "dark").
	// Default: "dark"
	Theme string
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{
		OutputDir:         ".",
		IncludeMetadata:   true,
		IncludeTimestamps: true,
		Theme:             "dark",
	}
}

// =============================================================================
// EXPORT FUNCTIONS
// =============================================================================

// ExportToFile exports a report to a file using the specified exporter.
// Returns the output file path or an error.
func ExportToFile(r *Report, exporter Exporter, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	content, err := exporter.Export(r)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	filename := fmt.Sprintf("report_%s_%s%s",
		sanitizeFilename(r.Source),
		r.CreatedAt.Format("20060102_150405"),
		exporter.FileExtension(),
	)

	dir := opts.OutputDir
	if dir == "" {
		dir = "."
	}
	outputPath := filepath.Join(dir, filename)
	if err := util.AtomicWriteFile(outputPath, content, 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	logger.Info("report exported", "path", outputPath, "format", exporter.MimeType(), "bytes", len(content))

	if opts.OpenAfterExport {
		if err := openFile(outputPath); err != nil {
			// Non-fatal: the file was written.
			logger.Warn("could not open exported file", "path", outputPath, "error", err)
		}
	}

	return outputPath, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// sanitizeFilename removes or replaces characters that are invalid in filenames.
func sanitizeFilename(s string) string {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "https://"), "http://")
	s = util.TruncateRunes(s, 50)

	replacer := map[rune]rune{
		'/':  '-',
		'\\': '-',
		':':  '-',
		'*':  '-',
		'?':  '-',
		'"':  '-',
		'<':  '-',
		'>':  '-',
		'|':  '-',
		'&':  '-',
		'=':  '-',
		' ':  '_',
		'\t': '_',
		'\n': '_',
		'\r': '_',
	}

	result := []rune{}
	for _, r := range s {
		if replacement, found := replacer[r]; found {
			result = append(result, replacement)
		} else if r < 32 || r == 127 {
			result = append(result, '-')
		} else {
			result = append(result, r)
		}
	}

	out := strings.Trim(string(result), "-_.")
	if out == "" {
		return "analysis"
	}
	return out
}

// openFile opens a file in the default application for the OS.
func openFile(path string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", `""`, path)
	case "darwin":
		cmd = exec.Command("open", path)
	case "linux":
		cmd = exec.Command("xdg-open", path)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}

// formatTimestamp formats a timestamp for display.
func formatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

// formatShortTimestamp formats a timestamp for inline display.
func formatShortTimestamp(t time.Time) string {
	return t.Format("15:04:05")
}
