// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ItemType is the kind of source a ResearchItem was extracted from.
type ItemType string

const (
	ItemVideo ItemType = "video"
	ItemWeb   ItemType = "web"
	ItemDoc   ItemType = "doc"
)

// ParseItemType validates an item type name.
func ParseItemType(s string) (ItemType, error) {
	switch ItemType(s) {
	case ItemVideo, ItemWeb, ItemDoc:
		return ItemType(s), nil
	default:
		return "", fmt.Errorf("unknown item type %q", s)
	}
}

// ResearchItem is a unit of extracted content kept in the knowledge vault.
// Timestamp is unix milliseconds.
type ResearchItem struct {
	ID        string         `json:"id"`
	Type      ItemType       `json:"type"`
	Title     string         `json:"title"`
	Content   string         `json:"content"`
	Timestamp int64          `json:"timestamp"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// NewResearchItem creates an item with a fresh ID stamped now.
func NewResearchItem(typ ItemType, title, content string) ResearchItem {
	return ResearchItem{
		ID:        uuid.NewString(),
		Type:      typ,
		Title:     title,
		Content:   content,
		Timestamp: time.Now().UnixMilli(),
	}
}

// Time returns the item timestamp as a time.Time.
func (r ResearchItem) Time() time.Time {
	return time.UnixMilli(r.Timestamp)
}

// Chapter is a titled position within a video.
type Chapter struct {
	Title     string `json:"title"`
	Timestamp string `json:"timestamp"`
}

// Citation attributes a piece of text to its source.
type Citation struct {
	Source string `json:"source"`
	Text   string `json:"text"`
}

// IntelligenceBlock is a structured analysis of extracted content.
type IntelligenceBlock struct {
	Title     string     `json:"title"`
	Summary   string     `json:"summary"`
	Chapters  []Chapter  `json:"chapters,omitempty"`
	Entities  []string   `json:"entities,omitempty"`
	Citations []Citation `json:"citations,omitempty"`
}
