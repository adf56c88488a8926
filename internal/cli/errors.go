// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Unified error handling for CLI commands.
//
// STANDARDIZED PATTERN:
//   - ALWAYS return errors (never just print and return nil)
//   - Let Execute decide how to display them
//   - Wrap with CommandError for context

package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/A4xPraddy/multiscrapper-ai/internal/backend"
	"github.com/A4xPraddy/multiscrapper-ai/internal/portal"
)

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError is used for every failure.
	ExitGeneralError = 1
)

// CommandError represents a CLI command error with context.
type CommandError struct {
	Command string // e.g. "analyze"
	Action  string // e.g. "web"
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Command, e.Action, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError wraps err with the command that produced it.
func NewCommandError(command, action string, err error) error {
	if err == nil {
		return nil
	}
	return &CommandError{Command: command, Action: action, Err: err}
}

// ErrNoCredentials is returned by commands that need a stored key.
var ErrNoCredentials = errors.New("no API keys stored; run 'multiscrapper keys set'")

// userMessage turns err into the single line shown on stderr. Backend
// errors show the server's detail; precondition errors drop their prefix.
func userMessage(err error) string {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	msg := err.Error()
	if errors.Is(err, portal.ErrPrecondition) {
		if i := strings.LastIndex(msg, portal.ErrPrecondition.Error()+": "); i >= 0 {
			msg = msg[i+len(portal.ErrPrecondition.Error())+2:]
		}
	}
	return msg
}
