// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app is the Bubble Tea model of the terminal portal. It renders the
// tool selector, input form, result pane and chat pane, and drives
// portal.Portal through tea.Cmds so the update loop never blocks on the
// network.
package app

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/A4xPraddy/multiscrapper-ai/internal/credentials"
	"github.com/A4xPraddy/multiscrapper-ai/internal/export"
	"github.com/A4xPraddy/multiscrapper-ai/internal/logger"
	"github.com/A4xPraddy/multiscrapper-ai/internal/portal"
	"github.com/A4xPraddy/multiscrapper-ai/internal/ui/components"
	"github.com/A4xPraddy/multiscrapper-ai/internal/ui/styles"
)

// NoticeActivated is shown after keys are saved.
const NoticeActivated = "Intelligence Suite Activated"

// =============================================================================
// DEPENDENCIES
// =============================================================================

// KeyStore loads and saves the provider keys.
type KeyStore interface {
	Load() (credentials.Credentials, error)
	Save(gemini, groq string) (bool, error)
}

// ScreenshotSource fetches the most recent page screenshot.
type ScreenshotSource interface {
	Screenshot(ctx context.Context) ([]byte, string, error)
}

// Deps wires the model to the rest of the program.
type Deps struct {
	Portal      *portal.Portal
	Keys        KeyStore
	Screenshots ScreenshotSource
	Theme       *styles.Theme
	ExportDir   string

	// Ctx bounds every backend call. Cancelled on quit.
	Ctx context.Context
}

// =============================================================================
// MODEL
// =============================================================================

type focusArea int

const (
	focusURL focusArea = iota
	focusChat
)

type settingsField int

const (
	fieldGroq settingsField = iota
	fieldGemini
)

// Model is the root portal model.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	portal      *portal.Portal
	keyStore    KeyStore
	screenshots ScreenshotSource
	exportDir   string

	theme   *styles.Theme
	keys    KeyMap
	header  *components.Header
	tabs    components.Tabs
	spinner components.Spinner
	alert   components.Alert

	urlInput  textinput.Model
	chatInput textinput.Model
	focus     focusArea

	settingsOpen  bool
	settingsField settingsField
	groqInput     textinput.Model
	geminiInput   textinput.Model

	resultView viewport.Model
	chatView   viewport.Model
	renderer   *glamour.TermRenderer

	connected bool
	busy      bool
	asking    bool
	notice    string

	width  int
	height int
}

// New creates the model. Credentials are read synchronously so the first
// frame already shows the settings panel when none are stored.
func New(d Deps) Model {
	theme := d.Theme
	if theme == nil {
		theme = styles.NewTheme("dark")
	}
	parent := d.Ctx
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)

	exportDir := d.ExportDir
	if exportDir == "" {
		exportDir = "."
	}

	labels := make([]string, 0, len(portal.Tools()))
	for _, t := range portal.Tools() {
		labels = append(labels, t.Label())
	}

	m := Model{
		ctx:         ctx,
		cancel:      cancel,
		portal:      d.Portal,
		keyStore:    d.Keys,
		screenshots: d.Screenshots,
		exportDir:   exportDir,
		theme:       theme,
		keys:        DefaultKeyMap(),
		header:      components.NewHeader(theme),
		tabs:        components.NewTabs(theme, labels...),
		spinner:     components.NewSpinner(),
		alert:       components.NewAlert(theme),
		urlInput:    newInput("", 2048),
		chatInput:   newInput("Ask a follow-up question...", 4096),
		groqInput:   newSecretInput("Groq API key (gsk_...)"),
		geminiInput: newSecretInput("Gemini API key (AIza...)"),
		resultView:  viewport.New(80, 10),
		chatView:    viewport.New(80, 6),
		width:       80,
		height:      24,
	}

	m.syncTool()

	creds, err := d.Keys.Load()
	if err != nil {
		logger.Warn("could not load credentials", "error", err)
	}
	m.connected = creds.Ready()
	m.header.SetConnected(m.connected)
	if !m.connected {
		m.openSettings()
	} else {
		m.urlInput.Focus()
	}

	m.layout()
	m.refreshResult()
	m.refreshChat()
	return m
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "> "
	ti.CharLimit = limit
	return ti
}

func newSecretInput(placeholder string) textinput.Model {
	ti := newInput(placeholder, 512)
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '*'
	return ti
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Connected reports whether credentials are ready.
func (m Model) Connected() bool { return m.connected }

// SettingsOpen reports whether the settings panel is shown.
func (m Model) SettingsOpen() bool { return m.settingsOpen }

// Busy reports whether an analysis is running.
func (m Model) Busy() bool { return m.busy }

// Notice returns the current status notice.
func (m Model) Notice() string { return m.notice }

// AlertMessage returns the visible alert text, or "".
func (m Model) AlertMessage() string {
	if !m.alert.IsVisible() {
		return ""
	}
	return m.alert.Message()
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		m.refreshResult()
		m.refreshChat()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case KeysSavedMsg:
		if msg.Err != nil {
			m.alert.Show("Could not save keys", msg.Err.Error())
			return m, nil
		}
		m.connected = msg.Ready
		m.header.SetConnected(msg.Ready)
		if msg.Ready {
			m.closeSettings()
			m.notice = NoticeActivated
		}
		return m, nil

	case ProcessDoneMsg:
		m.busy = false
		m.spinner.Stop()
		// The transcript may have been cleared even if the call failed.
		m.refreshChat()
		if errors.Is(msg.Err, portal.ErrSuperseded) {
			return m, nil
		}
		if msg.Err != nil {
			m.showError("Analysis failed", msg.Err)
			return m, nil
		}
		m.notice = ""
		m.refreshResult()
		return m, nil

	case AskDoneMsg:
		m.asking = false
		if errors.Is(msg.Err, portal.ErrSuperseded) {
			return m, nil
		}
		if msg.Err != nil {
			m.showError("Question failed", msg.Err)
			return m, nil
		}
		m.refreshChat()
		return m, nil

	case ExportDoneMsg:
		if msg.Err != nil {
			m.showError("Export failed", msg.Err)
			return m, nil
		}
		m.notice = "Report saved to " + msg.Path
		return m, nil

	case ScreenshotSavedMsg:
		if msg.Err != nil {
			m.showError("Screenshot failed", msg.Err)
			return m, nil
		}
		m.notice = "Screenshot saved to " + msg.Path
		return m, nil
	}

	return m.updateFocused(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.cancel()
		return m, tea.Quit
	}

	// A visible alert blocks everything else.
	if m.alert.IsVisible() {
		m.alert, _ = m.alert.Update(msg)
		return m, nil
	}

	if key.Matches(msg, m.keys.Settings) {
		if m.settingsOpen {
			// USABILITY: offline users keep the key form until a key is saved.
			if m.connected {
				m.closeSettings()
			}
		} else {
			m.openSettings()
		}
		return m, nil
	}

	if m.settingsOpen {
		return m.handleSettingsKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.NextTool):
		m.selectTool(m.portal.Tool().Next())
		return m, nil

	case key.Matches(msg, m.keys.Focus):
		m.toggleFocus()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		if m.focus == focusChat {
			return m.submitAsk()
		}
		return m.submitProcess()

	case key.Matches(msg, m.keys.Export):
		return m.exportReport()

	case key.Matches(msg, m.keys.Screenshot):
		return m.saveScreenshot()

	case key.Matches(msg, m.keys.PageUp), key.Matches(msg, m.keys.PageDown):
		var cmd tea.Cmd
		if m.focus == focusChat {
			m.chatView, cmd = m.chatView.Update(msg)
		} else {
			m.resultView, cmd = m.resultView.Update(msg)
		}
		return m, cmd
	}

	return m.updateFocused(msg)
}

func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		if m.settingsField == fieldGroq {
			m.settingsField = fieldGemini
		} else {
			m.settingsField = fieldGroq
		}
		m.focusSettingsField()
		return m, nil

	case "esc":
		// Stay open until at least one key exists.
		if m.connected {
			m.closeSettings()
		}
		return m, nil

	case "enter":
		gemini := strings.TrimSpace(m.geminiInput.Value())
		groq := strings.TrimSpace(m.groqInput.Value())
		if gemini == "" && groq == "" {
			return m, nil
		}
		m.geminiInput.Reset()
		m.groqInput.Reset()
		return m, saveKeysCmd(m.keyStore, gemini, groq)
	}

	return m.updateFocused(msg)
}

// updateFocused forwards a message to whichever input has focus.
func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.settingsOpen && m.settingsField == fieldGroq:
		m.groqInput, cmd = m.groqInput.Update(msg)
	case m.settingsOpen:
		m.geminiInput, cmd = m.geminiInput.Update(msg)
	case m.focus == focusChat:
		m.chatInput, cmd = m.chatInput.Update(msg)
	default:
		m.urlInput, cmd = m.urlInput.Update(msg)
	}
	return m, cmd
}

// =============================================================================
// ACTIONS
// =============================================================================

func (m Model) submitProcess() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	value := strings.TrimSpace(m.urlInput.Value())
	if m.portal.Tool() == portal.ToolDocument {
		m.portal.SelectFile(value)
	} else {
		m.portal.SetInput(value)
	}
	m.busy = true
	m.notice = ""
	m.spinner.SetMessage("Analyzing with " + m.portal.Tool().Label())
	return m, tea.Batch(m.spinner.Start(), processCmd(m.ctx, m.portal))
}

func (m Model) submitAsk() (tea.Model, tea.Cmd) {
	question := strings.TrimSpace(m.chatInput.Value())
	if question == "" || m.asking {
		return m, nil
	}
	if _, ok := m.portal.Result(); !ok {
		return m, nil
	}
	m.chatInput.Reset()
	m.asking = true
	return m, askCmd(m.ctx, m.portal, question)
}

func (m Model) exportReport() (tea.Model, tea.Cmd) {
	res, ok := m.portal.Result()
	if !ok {
		m.alert.Show("Nothing to export", "Run an analysis first.")
		return m, nil
	}
	r := export.NewReport(m.portal.Tool().Label(), m.source(), res, m.portal.Transcript())
	return m, exportCmd(r, m.exportDir)
}

func (m Model) saveScreenshot() (tea.Model, tea.Cmd) {
	res, ok := m.portal.Result()
	if !ok || !res.HasScreenshot() || m.screenshots == nil {
		m.alert.Show("No screenshot", "Scrape a web page first.")
		return m, nil
	}
	return m, screenshotCmd(m.ctx, m.screenshots, m.exportDir)
}

func (m *Model) selectTool(t portal.Tool) {
	m.portal.SelectTool(t)
	m.urlInput.Reset()
	m.chatInput.Reset()
	m.notice = ""
	m.syncTool()
	m.refreshResult()
	m.refreshChat()
}

func (m *Model) syncTool() {
	t := m.portal.Tool()
	m.tabs.Active = int(t)
	m.urlInput.Placeholder = t.Placeholder()
}

func (m *Model) toggleFocus() {
	if m.focus == focusURL {
		m.focus = focusChat
		m.urlInput.Blur()
		m.chatInput.Focus()
	} else {
		m.focus = focusURL
		m.chatInput.Blur()
		m.urlInput.Focus()
	}
}

func (m *Model) openSettings() {
	m.settingsOpen = true
	m.settingsField = fieldGroq
	m.urlInput.Blur()
	m.chatInput.Blur()
	m.focusSettingsField()
}

func (m *Model) closeSettings() {
	m.settingsOpen = false
	m.groqInput.Blur()
	m.geminiInput.Blur()
	if m.focus == focusChat {
		m.chatInput.Focus()
	} else {
		m.urlInput.Focus()
	}
}

func (m *Model) focusSettingsField() {
	if m.settingsField == fieldGroq {
		m.geminiInput.Blur()
		m.groqInput.Focus()
	} else {
		m.groqInput.Blur()
		m.geminiInput.Focus()
	}
}

func (m *Model) showError(title string, err error) {
	msg := err.Error()
	if errors.Is(err, portal.ErrPrecondition) {
		// Strip the sentinel prefix for display.
		if i := strings.Index(msg, ": "); i >= 0 {
			msg = msg[i+2:]
		}
	}
	logger.Warn(strings.ToLower(title), "error", err)
	m.alert.Show(title, msg)
}

func (m Model) source() string {
	if m.portal.Tool() == portal.ToolDocument {
		return m.portal.File()
	}
	return m.portal.Input()
}

// =============================================================================
// LAYOUT
// =============================================================================

const (
	headerHeight = 2
	tabsHeight   = 2
	inputHeight  = 3
	statusHeight = 2
	chromeHeight = 2 // pane borders
)

func (m *Model) layout() {
	m.theme.SetSize(m.width, m.height)
	m.header.SetWidth(m.width)
	m.alert.SetWidth(m.width)

	inner := m.width - 4
	if inner < 20 {
		inner = 20
	}
	m.urlInput.Width = inner - 4
	m.chatInput.Width = inner - 4
	m.groqInput.Width = 50
	m.geminiInput.Width = 50

	avail := m.height - headerHeight - tabsHeight - 2*inputHeight - statusHeight - 2*chromeHeight
	if avail < 6 {
		avail = 6
	}
	resultHeight := avail * 3 / 5
	m.resultView.Width = inner
	m.resultView.Height = resultHeight
	m.chatView.Width = inner
	m.chatView.Height = avail - resultHeight

	style := "dark"
	if !m.theme.IsDark {
		style = "light"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(inner-2),
	)
	if err != nil {
		logger.Warn("markdown renderer unavailable", "error", err)
		r = nil
	}
	m.renderer = r
}
