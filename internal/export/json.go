// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"time"

	"github.com/A4xPraddy/multiscrapper-ai/internal/backend"
	"github.com/A4xPraddy/multiscrapper-ai/internal/model"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter exports reports to JSON format.
// NOTE: JSON exports always include the complete report and ignore the
// metadata and timestamp options, so the output stays machine-readable.
type JSONExporter struct {
	options *Options
}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter(opts *Options) *JSONExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &JSONExporter{options: opts}
}

type jsonReport struct {
	Tool       string           `json:"tool"`
	Source     string           `json:"source"`
	Kind       string           `json:"kind"`
	Result     backend.Result   `json:"result"`
	Transcript []model.ChatTurn `json:"transcript"`
	CreatedAt  time.Time        `json:"created_at"`
	Generator  string           `json:"generator"`
}

// Export converts a report to JSON format.
func (e *JSONExporter) Export(r *Report) ([]byte, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}
	transcript := r.Transcript
	if transcript == nil {
		transcript = []model.ChatTurn{}
	}
	return json.MarshalIndent(jsonReport{
		Tool:       r.Tool,
		Source:     r.Source,
		Kind:       r.Result.Kind.String(),
		Result:     r.Result,
		Transcript: transcript,
		CreatedAt:  r.CreatedAt,
		Generator:  "multiscrapper-ai",
	}, "", "  ")
}

// FileExtension returns the file extension for JSON.
func (e *JSONExporter) FileExtension() string {
	return ".json"
}

// MimeType returns the MIME type for JSON.
func (e *JSONExporter) MimeType() string {
	return "application/json"
}
