// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrBackend matches every *APIError (non-2xx backend reply).
	ErrBackend = errors.New("backend error")

	// ErrTransport indicates the request never produced an HTTP response.
	ErrTransport = errors.New("backend unreachable")

	// ErrMalformedResponse indicates a 2xx body that does not match the
	// endpoint's contract: not JSON, unknown fields, or a missing field.
	ErrMalformedResponse = errors.New("malformed backend response")

	// ErrFileTooLarge indicates an upload above the configured limit.
	ErrFileTooLarge = errors.New("file too large")
)

// APIError is a non-success HTTP reply from the backend.
type APIError struct {
	Path   string
	Status int
	// Detail is the backend's "detail" message, or the endpoint's fallback
	// text when the body carried none.
	Detail string
}

// Error returns the user-facing detail.
func (e *APIError) Error() string {
	return e.Detail
}

// Is makes errors.Is(err, ErrBackend) true for any APIError.
func (e *APIError) Is(target error) bool {
	return target == ErrBackend
}

// errorBody is FastAPI's error envelope. detail is a string for
// HTTPException and a list of objects for request validation failures.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

// parseDetail extracts a human-readable message from an error body.
// Returns "" when the body has no usable detail.
func parseDetail(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil || len(eb.Detail) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(eb.Detail, &s); err == nil {
		return strings.TrimSpace(s)
	}

	var items []struct {
		Loc []any  `json:"loc"`
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(eb.Detail, &items); err == nil && len(items) > 0 {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if len(it.Loc) > 0 {
				msgs = append(msgs, fmt.Sprintf("%v: %s", it.Loc[len(it.Loc)-1], it.Msg))
			} else {
				msgs = append(msgs, it.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}

	if string(eb.Detail) == "null" {
		return ""
	}
	return string(eb.Detail)
}
