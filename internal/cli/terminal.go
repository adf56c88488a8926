// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// terminal.go - What the CLI may assume about the attached terminal.
//
// Key prompts and the follow-up REPL need stdin to be a terminal. Rendered
// markdown and colors need stdout to be one, unless NO_COLOR/FORCE_COLOR say
// otherwise.

package cli

import (
	"os"
	"strings"
	"sync"

	"github.com/muesli/termenv"
	"golang.org/x/term"
	"golang.org/x/text/unicode/norm"
)

// reportWidth bounds the glamour word-wrap width for CLI reports.
const (
	reportWidthDefault = 100
	reportWidthMin     = 48
)

func stdinIsTerminal() bool  { return term.IsTerminal(int(os.Stdin.Fd())) }
func stdoutIsTerminal() bool { return term.IsTerminal(int(os.Stdout.Fd())) }

// reportWidth returns the wrap width for rendered results.
func reportWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	switch {
	case err != nil || w <= 0:
		return reportWidthDefault
	case w < reportWidthMin:
		return reportWidthMin
	default:
		return w
	}
}

var colorMode = sync.OnceValue(func() termenv.Profile {
	switch {
	case os.Getenv("NO_COLOR") != "":
		return termenv.Ascii
	case os.Getenv("FORCE_COLOR") != "":
		return termenv.ColorProfile()
	case !stdoutIsTerminal():
		return termenv.Ascii
	}
	return termenv.ColorProfile()
})

// ColorsEnabled reports whether results should be styled and rendered.
// See https://no-color.org/.
func ColorsEnabled() bool {
	return colorMode() != termenv.Ascii
}

// RequiresTTY fails when an interactive step (key prompt, chat) runs with
// piped stdin.
func RequiresTTY(operation string) error {
	if !stdinIsTerminal() {
		return &TTYRequiredError{Operation: operation}
	}
	return nil
}

// TTYRequiredError names the interactive step that could not run.
type TTYRequiredError struct {
	Operation string
}

func (e *TTYRequiredError) Error() string {
	return "stdin is not a terminal; cannot " + e.Operation + " interactively (use flags or pipe input instead)"
}

// normalizeArg folds compatibility characters (full-width letters, ligatures)
// and trims whitespace.
// SECURITY: URLs and paths pasted from rich text can carry look-alike runes.
func normalizeArg(s string) string {
	return strings.TrimSpace(norm.NFKC.String(s))
}
