// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/A4xPraddy/multiscrapper-ai/internal/backend"
	"github.com/A4xPraddy/multiscrapper-ai/internal/config"
	"github.com/A4xPraddy/multiscrapper-ai/internal/credentials"
	"github.com/A4xPraddy/multiscrapper-ai/internal/logger"
	"github.com/A4xPraddy/multiscrapper-ai/internal/portal"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Environment variables that seed credentials without touching the store.
const (
	EnvGeminiKey = "MULTISCRAPPER_GEMINI_KEY"
	EnvGroqKey   = "MULTISCRAPPER_GROQ_KEY"
)

// =============================================================================
// EXECUTION ENVIRONMENT
// =============================================================================

// env carries the streams and lazily built dependencies shared by commands.
type env struct {
	out    io.Writer
	errOut io.Writer
	in     io.Reader

	jsonOut bool

	cfg     *config.Config
	keys    *keySource
	client  *backend.Client
	closers []io.Closer

	md *glamour.TermRenderer

	// readSecret reads a line without echo. Replaced in tests.
	readSecret func(prompt string) (string, error)
}

func newEnv() *env {
	e := &env{out: os.Stdout, errOut: os.Stderr, in: os.Stdin}
	e.readSecret = e.readSecretTTY
	return e
}

// setup loads config, logging, the credential store and the backend client.
// tui keeps log records off the terminal. Safe to call more than once.
func (e *env) setup(tui bool) error {
	if e.cfg != nil {
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		if cfg == nil {
			return err
		}
		fmt.Fprintln(e.errOut, WarningStyle.Render("Warning:"), err)
	}
	e.cfg = cfg

	logPath, err := cfg.LogPath()
	if err != nil {
		logPath = ""
	}
	opts := logger.FromConfig(cfg.Log, logPath)
	if tui {
		opts.Console = false
	}
	e.closers = append(e.closers, logger.Init(opts))

	var kv credentials.KV
	if cfg.Storage.Ephemeral {
		kv = credentials.NewMemoryKV()
	} else {
		path, err := cfg.StoragePath()
		if err != nil {
			return err
		}
		db, err := credentials.OpenSQLite(path)
		if err != nil {
			return fmt.Errorf("open credential store: %w", err)
		}
		kv = db
	}
	store := credentials.NewStore(kv)
	e.closers = append(e.closers, store)
	e.keys = &keySource{
		Store:  store,
		gemini: strings.TrimSpace(os.Getenv(EnvGeminiKey)),
		groq:   strings.TrimSpace(os.Getenv(EnvGroqKey)),
	}

	e.client = backend.NewClient(cfg.Backend.URL).
		WithTimeout(cfg.Timeout()).
		WithMaxUpload(int64(cfg.Backend.MaxUploadMB) << 20)

	logger.Debug("cli ready", "backend", e.client.BaseURL(), "ephemeral", cfg.Storage.Ephemeral)
	return nil
}

func (e *env) newPortal(tool portal.Tool) *portal.Portal {
	return portal.New(e.client, e.keys,
		portal.WithAskProvider(e.cfg.Backend.AskProvider),
		portal.WithTool(tool),
	)
}

// credentials loads keys and fails when none are available.
func (e *env) credentials() (credentials.Credentials, error) {
	creds, err := e.keys.Load()
	if err != nil {
		return credentials.Credentials{}, err
	}
	if !creds.Ready() {
		return credentials.Credentials{}, ErrNoCredentials
	}
	return creds, nil
}

func (e *env) close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		_ = e.closers[i].Close()
	}
	e.closers = nil
}

// printf writes human output. In JSON mode it goes to stderr so stdout
// stays machine-readable.
func (e *env) printf(format string, args ...any) {
	w := e.out
	if e.jsonOut {
		w = e.errOut
	}
	fmt.Fprintf(w, format, args...)
}

// renderMarkdown renders md for the terminal. Piped output stays raw.
func (e *env) renderMarkdown(md string) string {
	if !ColorsEnabled() {
		return md
	}
	if e.md == nil {
		style := glamour.WithAutoStyle()
		if e.cfg != nil && (e.cfg.UI.Theme == "dark" || e.cfg.UI.Theme == "light") {
			style = glamour.WithStandardStyle(e.cfg.UI.Theme)
		}
		r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(reportWidth()-4))
		if err != nil {
			return md
		}
		e.md = r
	}
	out, err := e.md.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

// =============================================================================
// KEY SOURCE
// =============================================================================

// keySource layers environment-provided keys over the stored ones. Saves and
// clears go to the store; environment keys are never persisted.
type keySource struct {
	*credentials.Store
	gemini string
	groq   string
}

// Load returns stored keys with environment overrides applied.
func (k *keySource) Load() (credentials.Credentials, error) {
	c, err := k.Store.Load()
	if err != nil {
		return credentials.Credentials{}, err
	}
	if k.gemini != "" {
		c.Gemini = k.gemini
	}
	if k.groq != "" {
		c.Groq = k.groq
	}
	return c, nil
}

// fromEnv reports which keys are coming from the environment.
func (k *keySource) fromEnv() (gemini, groq bool) {
	return k.gemini != "", k.groq != ""
}

// =============================================================================
// ROOT COMMAND
// =============================================================================

func newRootCmd(e *env) *cobra.Command {
	root := &cobra.Command{
		Use:   "multiscrapper",
		Short: "MultiScrapper AI - content intelligence from web pages, videos and PDFs",
		Long: `MultiScrapper AI extracts and summarizes content from a web page, a YouTube
video or a PDF through the analysis backend, then answers follow-up questions
grounded on the result.

Run without arguments to open the terminal portal.

Examples:
  multiscrapper
  multiscrapper keys set --groq gsk_...
  multiscrapper analyze web https://example.com --ask "What is this page about?"
  multiscrapper analyze video https://youtu.be/dQw4w9WgXcQ --export pdf
  multiscrapper analyze document report.pdf --chat`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), e)
		},
	}
	root.SetOut(e.out)
	root.SetErr(e.errOut)
	root.SetIn(e.in)
	root.PersistentFlags().BoolVar(&e.jsonOut, "json", false, "Write a JSON envelope to stdout")

	root.AddCommand(
		newTUICmd(e),
		newKeysCmd(e),
		newAnalyzeCmd(e),
		newScreenshotCmd(e),
		newVisionCmd(e),
		newExtractCmd(e),
		newGenerateCmd(e),
		newConfigCmd(e),
		newVersionCmd(e),
	)
	return root
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e := newEnv()
	root := newRootCmd(e)
	err := root.ExecuteContext(ctx)
	e.close()

	if err != nil {
		fmt.Fprintln(e.errOut, ErrorStyle.Render("Error:"), userMessage(err))
		return ExitGeneralError
	}
	return ExitSuccess
}
