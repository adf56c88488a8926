// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// =============================================================================
// RESULT
// =============================================================================

// Kind identifies which endpoint produced a Result.
type Kind int

const (
	KindWeb Kind = iota
	KindVideo
	KindDocument
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindWeb:
		return "web"
	case KindVideo:
		return "video"
	case KindDocument:
		return "document"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Result is the decoded outcome of an analysis. Which fields are meaningful
// depends on Kind:
//
//	KindWeb:      Text, Screenshot (backend-side path, may be "")
//	KindVideo:    Summary
//	KindDocument: Text, PageCount
type Result struct {
	Kind       Kind   `json:"kind"`
	Text       string `json:"text,omitempty"`
	Summary    string `json:"summary,omitempty"`
	Screenshot string `json:"screenshot,omitempty"`
	PageCount  int    `json:"page_count,omitempty"`
}

// Content returns Summary if non-empty, else Text, else "".
func (r Result) Content() string {
	if r.Summary != "" {
		return r.Summary
	}
	return r.Text
}

// Title is the heading shown above the result content.
func (r Result) Title() string {
	switch r.Kind {
	case KindVideo:
		return "Video Summary"
	case KindDocument:
		return fmt.Sprintf("Document Text (%d pages)", r.PageCount)
	default:
		return "Extracted Content"
	}
}

// HasScreenshot reports whether the backend captured a page screenshot.
func (r Result) HasScreenshot() bool {
	return r.Kind == KindWeb && r.Screenshot != ""
}

// =============================================================================
// WIRE SHAPES
// =============================================================================

// Pointer fields distinguish "absent" from "empty".

type webWire struct {
	Text       *string `json:"text"`
	Screenshot *string `json:"screenshot"`
}

type videoWire struct {
	Summary *string `json:"summary"`
}

type documentWire struct {
	Text      *string `json:"text"`
	PageCount *int    `json:"page_count"`
}

type askWire struct {
	Answer *string `json:"answer"`
}

type visionWire struct {
	Analysis *string `json:"analysis"`
}

type extractWire struct {
	Table *string `json:"table"`
}

func decodeWeb(body []byte) (Result, error) {
	var w webWire
	if err := decodeStrict(body, &w); err != nil {
		return Result{}, err
	}
	if w.Text == nil {
		return Result{}, missing("text")
	}
	r := Result{Kind: KindWeb, Text: *w.Text}
	if w.Screenshot != nil {
		r.Screenshot = *w.Screenshot
	}
	return r, nil
}

func decodeVideo(body []byte) (Result, error) {
	var w videoWire
	if err := decodeStrict(body, &w); err != nil {
		return Result{}, err
	}
	if w.Summary == nil {
		return Result{}, missing("summary")
	}
	return Result{Kind: KindVideo, Summary: *w.Summary}, nil
}

func decodeDocument(body []byte) (Result, error) {
	var w documentWire
	if err := decodeStrict(body, &w); err != nil {
		return Result{}, err
	}
	if w.Text == nil {
		return Result{}, missing("text")
	}
	if w.PageCount == nil {
		return Result{}, missing("page_count")
	}
	if *w.PageCount < 0 {
		return Result{}, fmt.Errorf("%w: negative page_count %d", ErrMalformedResponse, *w.PageCount)
	}
	return Result{Kind: KindDocument, Text: *w.Text, PageCount: *w.PageCount}, nil
}

// decodeString decodes a single-field reply such as {"answer": "..."}.
func decodeString[T askWire | visionWire | extractWire](body []byte, field string, get func(*T) *string) (string, error) {
	var w T
	if err := decodeStrict(body, &w); err != nil {
		return "", err
	}
	v := get(&w)
	if v == nil {
		return "", missing(field)
	}
	return *v, nil
}

// decodeStrict decodes exactly one JSON object into dst, rejecting unknown
// fields and trailing data.
func decodeStrict(body []byte, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: trailing data after object", ErrMalformedResponse)
	}
	return nil
}

func missing(field string) error {
	return fmt.Errorf("%w: missing field %q", ErrMalformedResponse, field)
}
