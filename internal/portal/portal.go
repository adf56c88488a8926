// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package portal holds the session state of the content-intelligence client:
// the selected tool, its input, the current analysis and the follow-up
// transcript. It dispatches analyses and questions to the backend.
//
// Every analysis takes a generation number. Switching tools or starting a new
// analysis advances it, and any reply carrying an older number is dropped
// with ErrSuperseded, so the current result always belongs to the most
// recently issued request.
package portal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/A4xPraddy/multiscrapper-ai/internal/backend"
	"github.com/A4xPraddy/multiscrapper-ai/internal/credentials"
	"github.com/A4xPraddy/multiscrapper-ai/internal/logger"
	"github.com/A4xPraddy/multiscrapper-ai/internal/model"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrPrecondition is the parent of every local check failure. Nothing is
	// sent to the backend when one of these is returned.
	ErrPrecondition = errors.New("precondition failed")

	ErrNotReady = fmt.Errorf("%w: Please connect your API keys first!", ErrPrecondition)
	ErrNoURL    = fmt.Errorf("%w: enter a URL to analyze", ErrPrecondition)
	ErrNoFile   = fmt.Errorf("%w: select a PDF file to analyze", ErrPrecondition)

	// ErrSuperseded reports a reply that arrived after a newer request or a
	// tool switch. The reply was discarded.
	ErrSuperseded = errors.New("request superseded")
)

// =============================================================================
// DEPENDENCIES
// =============================================================================

// Backend is the subset of backend.Client the portal uses.
type Backend interface {
	ScrapeWeb(ctx context.Context, url string, creds credentials.Credentials) (backend.Result, error)
	SummarizeVideo(ctx context.Context, url string, creds credentials.Credentials) (backend.Result, error)
	VectorizePDF(ctx context.Context, filename string, r io.Reader) (backend.Result, error)
	Ask(ctx context.Context, req backend.AskRequest, creds credentials.Credentials) (string, error)
}

// CredentialSource supplies the current keys.
type CredentialSource interface {
	Load() (credentials.Credentials, error)
}

// Option customizes New.
type Option func(*Portal)

// WithAskProvider sets the provider label sent with follow-up questions.
func WithAskProvider(label string) Option {
	return func(p *Portal) { p.askProvider = label }
}

// WithFileOpener replaces os.Open for document uploads.
func WithFileOpener(open func(path string) (io.ReadCloser, error)) Option {
	return func(p *Portal) { p.openFile = open }
}

// WithTool sets the initially selected tool.
func WithTool(t Tool) Option {
	return func(p *Portal) { p.tool = t }
}

// =============================================================================
// PORTAL
// =============================================================================

// Portal is the orchestrator and follow-up handler. Safe for concurrent use.
type Portal struct {
	backend     Backend
	creds       CredentialSource
	askProvider string
	openFile    func(string) (io.ReadCloser, error)

	mu         sync.Mutex
	tool       Tool
	input      string
	file       string
	result     *backend.Result
	transcript []model.ChatTurn
	vault      []model.ResearchItem
	inflight   int
	generation uint64
}

// New creates a portal with the web tool selected.
func New(b Backend, creds CredentialSource, opts ...Option) *Portal {
	p := &Portal{
		backend:     b,
		creds:       creds,
		askProvider: backend.ProviderGeminiFlash,
		openFile:    func(path string) (io.ReadCloser, error) { return os.Open(path) },
		tool:        ToolWeb,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SelectTool switches mode. Result, input, file and transcript are cleared
// regardless of the previous mode, and any in-flight reply is invalidated.
func (p *Portal) SelectTool(t Tool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tool = t
	p.input = ""
	p.file = ""
	p.result = nil
	p.transcript = nil
	p.generation++
}

// SetInput sets the URL for the web and video tools.
func (p *Portal) SetInput(s string) {
	p.mu.Lock()
	p.input = s
	p.mu.Unlock()
}

// SelectFile sets the document path for the document tool.
func (p *Portal) SelectFile(path string) {
	p.mu.Lock()
	p.file = path
	p.mu.Unlock()
}

// Tool returns the selected tool.
func (p *Portal) Tool() Tool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tool
}

// Input returns the current URL input.
func (p *Portal) Input() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.input
}

// File returns the selected document path.
func (p *Portal) File() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.file
}

// Result returns the current analysis, if any.
func (p *Portal) Result() (backend.Result, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.result == nil {
		return backend.Result{}, false
	}
	return *p.result, true
}

// Transcript returns a copy of the follow-up transcript.
func (p *Portal) Transcript() []model.ChatTurn {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]model.ChatTurn, len(p.transcript))
	copy(out, p.transcript)
	return out
}

// Busy reports whether an analysis is in flight.
func (p *Portal) Busy() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inflight > 0
}

// Vault returns every item analyzed during this session, oldest first.
func (p *Portal) Vault() []model.ResearchItem {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]model.ResearchItem, len(p.vault))
	copy(out, p.vault)
	return out
}

// Ready reports whether credentials allow processing.
func (p *Portal) Ready() (bool, error) {
	c, err := p.creds.Load()
	if err != nil {
		return false, err
	}
	return c.Ready(), nil
}

// =============================================================================
// PROCESS
// =============================================================================

// Process runs the selected tool on the current input and, on success,
// replaces the result. On failure the previous result is left as it was.
func (p *Portal) Process(ctx context.Context) (backend.Result, error) {
	creds, err := p.creds.Load()
	if err != nil {
		return backend.Result{}, err
	}
	if !creds.Ready() {
		return backend.Result{}, ErrNotReady
	}

	p.mu.Lock()
	tool, input, file := p.tool, p.input, p.file
	switch tool {
	case ToolDocument:
		if file == "" {
			p.mu.Unlock()
			return backend.Result{}, ErrNoFile
		}
	default:
		// The URL goes out as entered; malformed input is the backend's call.
		if strings.TrimSpace(input) == "" {
			p.mu.Unlock()
			return backend.Result{}, ErrNoURL
		}
	}
	p.generation++
	gen := p.generation
	p.transcript = nil
	p.inflight++
	p.mu.Unlock()

	logger.Info("analysis started", "tool", tool.String(), "generation", gen)

	res, err := p.dispatch(ctx, tool, input, file, creds)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.inflight--

	if gen != p.generation {
		logger.Debug("analysis reply discarded", "tool", tool.String(), "generation", gen, "current", p.generation)
		return backend.Result{}, ErrSuperseded
	}
	if err != nil {
		logger.Warn("analysis failed", "tool", tool.String(), "error", err)
		return backend.Result{}, err
	}

	p.result = &res
	p.vault = append(p.vault, snapshot(res, tool, input, file))
	logger.Info("analysis complete", "tool", tool.String(), "chars", len(res.Content()))
	return res, nil
}

func (p *Portal) dispatch(ctx context.Context, tool Tool, input, file string, creds credentials.Credentials) (backend.Result, error) {
	switch tool {
	case ToolWeb:
		return p.backend.ScrapeWeb(ctx, input, creds)
	case ToolVideo:
		return p.backend.SummarizeVideo(ctx, input, creds)
	case ToolDocument:
		f, err := p.openFile(file)
		if err != nil {
			return backend.Result{}, fmt.Errorf("open %s: %w", filepath.Base(file), err)
		}
		defer f.Close()
		return p.backend.VectorizePDF(ctx, file, f)
	default:
		return backend.Result{}, fmt.Errorf("unknown tool %s", tool)
	}
}

func snapshot(res backend.Result, tool Tool, input, file string) model.ResearchItem {
	title := strings.TrimSpace(input)
	if tool == ToolDocument {
		title = filepath.Base(file)
	}
	item := model.NewResearchItem(tool.ItemType(), title, res.Content())
	meta := map[string]any{}
	if res.HasScreenshot() {
		meta["screenshot"] = res.Screenshot
	}
	if res.Kind == backend.KindDocument {
		meta["page_count"] = res.PageCount
	}
	if len(meta) > 0 {
		item.Metadata = meta
	}
	return item
}

// =============================================================================
// FOLLOW-UP
// =============================================================================

// Ask sends a follow-up question grounded on the current result. It is a
// no-op (nil, nil) when question is blank or there is no result. On success
// the user turn and then the bot turn are appended and returned; on failure
// the transcript is unchanged.
func (p *Portal) Ask(ctx context.Context, question string) ([]model.ChatTurn, error) {
	if strings.TrimSpace(question) == "" {
		return nil, nil
	}

	p.mu.Lock()
	if p.result == nil {
		p.mu.Unlock()
		return nil, nil
	}
	text := p.result.Content()
	gen := p.generation
	p.mu.Unlock()

	creds, err := p.creds.Load()
	if err != nil {
		return nil, err
	}

	answer, err := p.backend.Ask(ctx, backend.AskRequest{
		Text:     text,
		Question: question,
		Provider: p.askProvider,
	}, creds)
	if err != nil {
		logger.Warn("follow-up failed", "error", err)
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.generation {
		return nil, ErrSuperseded
	}
	turns := []model.ChatTurn{model.UserTurn(question), model.BotTurn(answer)}
	p.transcript = append(p.transcript, turns...)
	return turns, nil
}
