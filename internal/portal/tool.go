// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package portal

import (
	"fmt"
	"strings"

	"github.com/A4xPraddy/multiscrapper-ai/internal/model"
)

// Tool is the analysis mode. Exactly one is selected at a time.
type Tool int

const (
	ToolWeb Tool = iota
	ToolVideo
	ToolDocument
)

// Tools lists every tool in display order.
func Tools() []Tool {
	return []Tool{ToolWeb, ToolVideo, ToolDocument}
}

// String returns the config/CLI name of the tool.
func (t Tool) String() string {
	switch t {
	case ToolWeb:
		return "web"
	case ToolVideo:
		return "video"
	case ToolDocument:
		return "document"
	default:
		return fmt.Sprintf("Tool(%d)", int(t))
	}
}

// Label returns the display name of the tool.
func (t Tool) Label() string {
	switch t {
	case ToolWeb:
		return "Web Scraper"
	case ToolVideo:
		return "YouTube Video"
	case ToolDocument:
		return "PDF Document"
	default:
		return t.String()
	}
}

// Placeholder returns the input hint for the tool.
func (t Tool) Placeholder() string {
	switch t {
	case ToolVideo:
		return "https://www.youtube.com/watch?v=..."
	case ToolDocument:
		return "/path/to/document.pdf"
	default:
		return "https://example.com"
	}
}

// ItemType maps the tool to the research item kind it produces.
func (t Tool) ItemType() model.ItemType {
	switch t {
	case ToolVideo:
		return model.ItemVideo
	case ToolDocument:
		return model.ItemDoc
	default:
		return model.ItemWeb
	}
}

// Next returns the following tool, wrapping around.
func (t Tool) Next() Tool {
	return (t + 1) % Tool(len(Tools()))
}

// ParseTool converts a tool name (web, video/youtube, document/pdf).
func ParseTool(s string) (Tool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "web":
		return ToolWeb, nil
	case "video", "youtube":
		return ToolVideo, nil
	case "document", "pdf", "doc":
		return ToolDocument, nil
	default:
		return 0, fmt.Errorf("unknown tool %q (want web, video or document)", s)
	}
}
