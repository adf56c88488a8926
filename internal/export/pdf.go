// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/A4xPraddy/multiscrapper-ai/internal/backend"
)

var (
	numberedItemRegex = regexp.MustCompile(`^\d+\.\s`)
	italicRegex       = regexp.MustCompile(`(?:^|\s)\*([^*]+)\*(?:\s|$)`)
	linkRegex         = regexp.MustCompile(`\[([^\]]*)\]\([^)]+\)`)
)

// =============================================================================
// PDF EXPORTER
// =============================================================================

// PDFExporter renders reports as A4 PDF documents using the core fonts.
// Markdown in the analysis body is flattened: headings change size, lists
// keep their bullets and fenced code uses a monospace font.
type PDFExporter struct {
	options *Options
}

// NewPDFExporter creates a new PDF exporter.
func NewPDFExporter(opts *Options) *PDFExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &PDFExporter{options: opts}
}

// Export converts a report to PDF bytes.
func (e *PDFExporter) Export(r *Report) ([]byte, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title(r), true)
	pdf.SetCreator("multiscrapper-ai", true)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	// Core fonts are cp1252.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 8, tr(title(r)), "", "L", false)
	pdf.Ln(2)

	if e.options.IncludeMetadata {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(100, 100, 100)
		meta := fmt.Sprintf("%s | %s", r.Tool, formatTimestamp(r.CreatedAt))
		if r.Result.Kind == backend.KindDocument {
			meta += fmt.Sprintf(" | %d pages", r.Result.PageCount)
		}
		pdf.MultiCell(0, 5, tr(meta), "", "L", false)
		if r.Source != "" {
			pdf.MultiCell(0, 5, tr("Source: "+r.Source), "", "L", false)
		}
		pdf.SetTextColor(0, 0, 0)
	}
	pdf.Ln(6)

	renderHeading(pdf, tr, "Analysis", 2)
	renderMarkdown(pdf, tr, r.Body())

	if len(r.Transcript) > 0 {
		renderHeading(pdf, tr, "Follow-up", 2)
		for _, turn := range r.Transcript {
			label := roleLabel(turn.Role)
			if e.options.IncludeTimestamps && !turn.Timestamp.IsZero() {
				label += " " + formatShortTimestamp(turn.Timestamp)
			}
			pdf.SetFont("Helvetica", "B", 10)
			pdf.MultiCell(0, 5, tr(label), "", "L", false)
			renderMarkdown(pdf, tr, turn.Content)
			pdf.Ln(2)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// FileExtension returns the file extension for PDF.
func (e *PDFExporter) FileExtension() string {
	return ".pdf"
}

// MimeType returns the MIME type for PDF.
func (e *PDFExporter) MimeType() string {
	return "application/pdf"
}

// =============================================================================
// MARKDOWN FLATTENING
// =============================================================================

func renderMarkdown(pdf *gofpdf.Fpdf, tr func(string) string, markdown string) {
	inCodeBlock := false
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") {
			inCodeBlock = !inCodeBlock
			pdf.Ln(2)
			continue
		}

		if inCodeBlock {
			pdf.SetFont("Courier", "", 9)
			pdf.SetFillColor(245, 245, 245)
			pdf.MultiCell(0, 4.5, tr(line), "", "L", true)
			continue
		}

		switch {
		case trimmed == "":
			pdf.Ln(3)
		case strings.HasPrefix(trimmed, "#"):
			level := len(trimmed) - len(strings.TrimLeft(trimmed, "#"))
			renderHeading(pdf, tr, strings.TrimSpace(strings.TrimLeft(trimmed, "#")), level)
		case strings.HasPrefix(trimmed, "- "), strings.HasPrefix(trimmed, "* "):
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr("• "+cleanInlineMarkdown(trimmed[2:])), "", "L", false)
		case numberedItemRegex.MatchString(trimmed):
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr(cleanInlineMarkdown(trimmed)), "", "L", false)
		default:
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr(cleanInlineMarkdown(line)), "", "L", false)
		}
	}
}

func renderHeading(pdf *gofpdf.Fpdf, tr func(string) string, text string, level int) {
	sizes := map[int]float64{1: 18, 2: 15, 3: 13, 4: 12, 5: 11, 6: 10}
	size, ok := sizes[level]
	if !ok {
		size = 10
	}
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", size)
	pdf.MultiCell(0, size*0.6, tr(cleanInlineMarkdown(text)), "", "L", false)
	pdf.Ln(2)
}

// cleanInlineMarkdown strips emphasis, inline code and link syntax.
func cleanInlineMarkdown(text string) string {
	text = strings.ReplaceAll(text, "**", "")
	text = strings.ReplaceAll(text, "__", "")
	text = italicRegex.ReplaceAllString(text, " $1 ")
	text = inlineCodeRegex.ReplaceAllString(text, "$1")
	text = linkRegex.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}
