// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/A4xPraddy/multiscrapper-ai/internal/backend"
	"github.com/A4xPraddy/multiscrapper-ai/internal/portal"
	"github.com/A4xPraddy/multiscrapper-ai/internal/ui/app"
)

// =============================================================================
// HELPERS
// =============================================================================

// isolate points every path the CLI touches at a temp home.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("MULTISCRAPPER_CONFIG", filepath.Join(home, ".multiscrapper", "config.toml"))
	t.Setenv("MULTISCRAPPER_API_URL", "")
	t.Setenv("MULTISCRAPPER_EPHEMERAL", "")
	t.Setenv(EnvGeminiKey, "")
	t.Setenv(EnvGroqKey, "")
	return home
}

type result struct {
	stdout string
	stderr string
	err    error
}

// run executes one CLI invocation in a fresh env.
func run(t *testing.T, tweak func(*env), args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	e := &env{out: &stdout, errOut: &stderr, in: strings.NewReader("")}
	e.readSecret = func(string) (string, error) { return "", nil }
	if tweak != nil {
		tweak(e)
	}
	root := newRootCmd(e)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	e.close()
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *string         `json:"error"`
	Command string          `json:"command"`
}

func decodeEnvelope(t *testing.T, s string) envelope {
	t.Helper()
	var resp envelope
	require.NoError(t, json.Unmarshal([]byte(s), &resp), "stdout: %s", s)
	return resp
}

// fakeBackend serves the endpoints the CLI calls and counts requests.
type fakeBackend struct {
	*httptest.Server
	calls atomic.Int32
}

func newFakeBackend(t *testing.T, handler http.HandlerFunc) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{}
	fb.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fb.calls.Add(1)
		handler(w, r)
	}))
	t.Cleanup(fb.Close)
	t.Setenv("MULTISCRAPPER_API_URL", fb.URL)
	return fb
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

// =============================================================================
// KEYS
// =============================================================================

func TestKeys_SetShowClearPersist(t *testing.T) {
	isolate(t)

	res := run(t, nil, "keys", "set", "--groq", "gsk_secret_value")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, app.NoticeActivated)

	res = run(t, nil, "keys", "show", "--json")
	require.NoError(t, res.err)
	assert.NotContains(t, res.stdout, "gsk_secret_value")
	resp := decodeEnvelope(t, res.stdout)
	require.True(t, resp.Success)
	var st keyStatus
	require.NoError(t, json.Unmarshal(resp.Data, &st))
	assert.True(t, st.Ready)
	assert.Equal(t, "store", st.Source)
	assert.Equal(t, "[not set]", st.Gemini)

	require.NoError(t, run(t, nil, "keys", "clear").err)

	res = run(t, nil, "keys", "show", "--json")
	require.NoError(t, res.err)
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, res.stdout).Data, &st))
	assert.False(t, st.Ready)
}

func TestKeysSet_PromptsWhenNoFlags(t *testing.T) {
	isolate(t)
	answers := []string{"AIza-prompted", ""}
	res := run(t, func(e *env) {
		e.readSecret = func(string) (string, error) {
			a := answers[0]
			answers = answers[1:]
			return a, nil
		}
	}, "keys", "set")
	require.NoError(t, res.err)

	res = run(t, nil, "keys", "show", "--json")
	var st keyStatus
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, res.stdout).Data, &st))
	assert.True(t, st.Ready)
	assert.NotEqual(t, "[not set]", st.Gemini)
	assert.Equal(t, "[not set]", st.Groq)
}

func TestKeysSet_NothingGiven(t *testing.T) {
	isolate(t)
	res := run(t, nil, "keys", "set")
	assert.ErrorIs(t, res.err, ErrNoKeyGiven)
}

func TestKeysShow_EnvironmentOverride(t *testing.T) {
	isolate(t)
	t.Setenv(EnvGeminiKey, "AIza-from-env")

	res := run(t, nil, "keys", "show", "--json")
	require.NoError(t, res.err)
	var st keyStatus
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, res.stdout).Data, &st))
	assert.True(t, st.Ready)
	assert.Equal(t, "environment", st.Source)

	// Environment keys are never written to the store.
	t.Setenv(EnvGeminiKey, "")
	res = run(t, nil, "keys", "show", "--json")
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, res.stdout).Data, &st))
	assert.False(t, st.Ready)
}

// =============================================================================
// ANALYZE
// =============================================================================

func TestAnalyzeWeb_JSONWithFollowUp(t *testing.T) {
	isolate(t)
	t.Setenv(EnvGeminiKey, "AIza-test")

	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case backend.PathScrape:
			if got := r.Header.Get(backend.HeaderGoogleKey); got != "AIza-test" {
				t.Errorf("gemini header = %q", got)
			}
			var body map[string]string
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body["url"] != "https://example.com" {
				t.Errorf("scrape body = %v (%v)", body, err)
			}
			writeJSON(w, http.StatusOK, `{"text":"Example Domain","screenshot":"static/shot.png"}`)
		case backend.PathAsk:
			writeJSON(w, http.StatusOK, `{"answer":"It is a placeholder page."}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})

	res := run(t, nil, "analyze", "web", "  https://example.com ", "--ask", "What is it?", "--json")
	require.NoError(t, res.err, res.stderr)
	assert.Equal(t, int32(2), fb.calls.Load())

	resp := decodeEnvelope(t, res.stdout)
	require.True(t, resp.Success)
	assert.Equal(t, "analyze web", resp.Command)

	var out analyzeOutput
	require.NoError(t, json.Unmarshal(resp.Data, &out))
	assert.Equal(t, "web", out.Kind)
	assert.Equal(t, "https://example.com", out.Source)
	assert.Equal(t, "Example Domain", out.Content)
	assert.Equal(t, "static/shot.png", out.Screenshot)
	require.Len(t, out.Transcript, 2)
	assert.Equal(t, "What is it?", out.Transcript[0].Content)
	assert.Equal(t, "It is a placeholder page.", out.Transcript[1].Content)
}

func TestAnalyze_BackendErrorDetail(t *testing.T) {
	isolate(t)
	t.Setenv(EnvGroqKey, "gsk_test")
	newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, `{"detail":"Invalid YouTube URL"}`)
	})

	res := run(t, nil, "analyze", "video", "https://vimeo.com/1", "--json")
	require.Error(t, res.err)
	assert.ErrorIs(t, res.err, backend.ErrBackend)
	assert.Equal(t, "Invalid YouTube URL", userMessage(res.err))

	resp := decodeEnvelope(t, res.stdout)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "Invalid YouTube URL", *resp.Error)
}

func TestAnalyze_NoKeysMakesNoRequest(t *testing.T) {
	isolate(t)
	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"text":"x"}`)
	})

	res := run(t, nil, "analyze", "web", "https://example.com")
	assert.ErrorIs(t, res.err, portal.ErrNotReady)
	assert.Equal(t, "Please connect your API keys first!", userMessage(res.err))
	assert.Zero(t, fb.calls.Load())
}

func TestAnalyze_BadExportFormatFailsEarly(t *testing.T) {
	isolate(t)
	t.Setenv(EnvGeminiKey, "AIza")
	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"text":"x"}`)
	})

	res := run(t, nil, "analyze", "web", "https://example.com", "--export", "docx")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "docx")
	assert.Zero(t, fb.calls.Load())
}

func TestAnalyze_ChatRejectsJSON(t *testing.T) {
	isolate(t)
	res := run(t, nil, "analyze", "web", "https://example.com", "--chat", "--json")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "--chat")
}

func TestAnalyzeDocument_ExportsMarkdown(t *testing.T) {
	isolate(t)
	t.Setenv(EnvGroqKey, "gsk")
	dir := t.TempDir()
	pdf := filepath.Join(dir, "paper.pdf")
	require.NoError(t, os.WriteFile(pdf, []byte("%PDF-1.4 fake"), 0600))

	newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != backend.PathVectorize {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get(backend.HeaderGroqKey) != "" {
			t.Errorf("document upload must not carry keys")
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			t.Errorf("form file: %v", err)
		} else {
			defer f.Close()
			if hdr.Filename != "paper.pdf" {
				t.Errorf("filename = %q", hdr.Filename)
			}
		}
		writeJSON(w, http.StatusOK, `{"text":"Abstract body","page_count":3}`)
	})

	out := t.TempDir()
	res := run(t, nil, "analyze", "document", pdf, "--export", "md", "--out", out, "--json")
	require.NoError(t, res.err, res.stderr)

	var data analyzeOutput
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, res.stdout).Data, &data))
	assert.Equal(t, 3, data.PageCount)
	assert.Empty(t, data.Transcript)
	require.NotEmpty(t, data.ReportPath)
	assert.Equal(t, out, filepath.Dir(data.ReportPath))

	report, err := os.ReadFile(data.ReportPath)
	require.NoError(t, err)
	assert.Contains(t, string(report), "Abstract body")
}

func TestAnalyze_HumanOutput(t *testing.T) {
	isolate(t)
	t.Setenv(EnvGeminiKey, "AIza")
	newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"summary":""}`)
	})

	res := run(t, nil, "analyze", "video", "https://youtu.be/x")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Video Summary")
	assert.Contains(t, res.stdout, "No content extracted.")
}

// =============================================================================
// CHAT
// =============================================================================

func TestChatLine(t *testing.T) {
	isolate(t)
	t.Setenv(EnvGeminiKey, "AIza")
	newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case backend.PathScrape:
			writeJSON(w, http.StatusOK, `{"text":"Body","screenshot":null}`)
		case backend.PathAsk:
			writeJSON(w, http.StatusOK, `{"answer":"Forty-two"}`)
		}
	})

	var stdout bytes.Buffer
	e := &env{out: &stdout, errOut: io.Discard, in: strings.NewReader("")}
	require.NoError(t, e.setup(false))
	t.Cleanup(e.close)
	e.cfg.UI.ExportDir = t.TempDir()

	ctx := context.Background()
	p := e.newPortal(portal.ToolWeb)
	p.SetInput("https://example.com")
	_, err := p.Process(ctx)
	require.NoError(t, err)

	more, err := chatLine(ctx, e, p, "   ")
	assert.True(t, more)
	assert.NoError(t, err)

	more, err = chatLine(ctx, e, p, "What is the answer?")
	require.NoError(t, err)
	assert.True(t, more)
	assert.Contains(t, stdout.String(), "Forty-two")
	assert.Len(t, p.Transcript(), 2)

	stdout.Reset()
	_, err = chatLine(ctx, e, p, "/history")
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "What is the answer?")

	stdout.Reset()
	_, err = chatLine(ctx, e, p, "/export json")
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Report saved to ")
	matches, _ := filepath.Glob(filepath.Join(e.cfg.UI.ExportDir, "report_*.json"))
	assert.Len(t, matches, 1)

	_, err = chatLine(ctx, e, p, "/vault")
	assert.Error(t, err)
	_, err = chatLine(ctx, e, p, "/bogus")
	assert.Error(t, err)

	more, err = chatLine(ctx, e, p, "/quit")
	assert.NoError(t, err)
	assert.False(t, more)
	more, _ = chatLine(ctx, e, p, "exit")
	assert.False(t, more)
}

// =============================================================================
// MEDIA
// =============================================================================

func TestScreenshot_WritesFile(t *testing.T) {
	isolate(t)
	newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != backend.PathScreenshot || r.URL.Query().Get("t") == "" {
			t.Errorf("unexpected request %s", r.URL.String())
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("\x89PNG fake"))
	})

	path := filepath.Join(t.TempDir(), "shot.png")
	res := run(t, nil, "screenshot", "-o", path)
	require.NoError(t, res.err, res.stderr)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "\x89PNG fake", string(data))
}

func TestExtract_SendsProviderLabel(t *testing.T) {
	isolate(t)
	t.Setenv(EnvGroqKey, "gsk")
	newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != backend.PathExtract {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.FormValue("provider"); got != backend.ProviderGroqLlama {
			t.Errorf("provider = %q", got)
		}
		if got := r.FormValue("text"); got != "alice 30, bob 25" {
			t.Errorf("text = %q", got)
		}
		writeJSON(w, http.StatusOK, `{"table":"| name | age |"}`)
	})

	file := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(file, []byte("alice 30, bob 25"), 0600))

	res := run(t, nil, "extract", file, "--provider", "groq", "--json")
	require.NoError(t, res.err, res.stderr)
	var data map[string]string
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, res.stdout).Data, &data))
	assert.Equal(t, "| name | age |", data["table"])
}

func TestExtract_ReadsStdin(t *testing.T) {
	isolate(t)
	t.Setenv(EnvGeminiKey, "AIza")
	newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.FormValue("text"); got != "from stdin" {
			t.Errorf("text = %q", got)
		}
		writeJSON(w, http.StatusOK, `{"table":"|x|"}`)
	})

	res := run(t, func(e *env) { e.in = strings.NewReader("from stdin") }, "extract", "-")
	require.NoError(t, res.err, res.stderr)
	assert.Contains(t, res.stdout, "|x|")
}

func TestExtract_UnknownProvider(t *testing.T) {
	isolate(t)
	res := run(t, nil, "extract", "-", "--provider", "openai")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "openai")
}

func TestVision_RequiresGeminiKey(t *testing.T) {
	isolate(t)
	t.Setenv(EnvGroqKey, "gsk")
	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {})

	res := run(t, nil, "vision", "static/shot.png", "what", "is", "this")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "Gemini")
	assert.Zero(t, fb.calls.Load())
}

func TestVision_JoinsPrompt(t *testing.T) {
	isolate(t)
	t.Setenv(EnvGeminiKey, "AIza")
	newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.FormValue("prompt"); got != "what is this" {
			t.Errorf("prompt = %q", got)
		}
		if got := r.FormValue("image_path"); got != "static/shot.png" {
			t.Errorf("image_path = %q", got)
		}
		writeJSON(w, http.StatusOK, `{"analysis":"A bar chart."}`)
	})

	res := run(t, nil, "vision", "static/shot.png", "what", "is", "this")
	require.NoError(t, res.err, res.stderr)
	assert.Contains(t, res.stdout, "A bar chart.")
}

// =============================================================================
// GENERATE
// =============================================================================

func TestGenerate_NoCredentials(t *testing.T) {
	isolate(t)
	res := run(t, nil, "generate", "hello")
	assert.ErrorIs(t, res.err, ErrNoCredentials)
}

func TestGenerate_UnknownClassFailsBeforeSession(t *testing.T) {
	isolate(t)
	res := run(t, nil, "generate", "--class", "creative", "hello")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "creative")
}

func TestGenerate_UnknownTask(t *testing.T) {
	isolate(t)
	res := run(t, nil, "generate", "--task", "poem", "hello")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "poem")
}

func TestGenerate_EmptyPrompt(t *testing.T) {
	isolate(t)
	res := run(t, nil, "generate")
	require.Error(t, res.err)
}

// =============================================================================
// CONFIG AND VERSION
// =============================================================================

func TestConfig_PathInitShow(t *testing.T) {
	home := isolate(t)
	want := filepath.Join(home, ".multiscrapper", "config.toml")

	res := run(t, nil, "config", "path")
	require.NoError(t, res.err)
	assert.Equal(t, want, strings.TrimSpace(res.stdout))

	require.NoError(t, run(t, nil, "config", "init").err)
	_, err := os.Stat(want)
	require.NoError(t, err)

	res = run(t, nil, "config", "init")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "--force")
	require.NoError(t, run(t, nil, "config", "init", "--force").err)

	res = run(t, nil, "config", "show", "--json")
	require.NoError(t, res.err)
	assert.True(t, decodeEnvelope(t, res.stdout).Success)
}

func TestVersion_JSON(t *testing.T) {
	res := run(t, nil, "version", "--json")
	require.NoError(t, res.err)
	var v versionInfo
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, res.stdout).Data, &v))
	assert.Equal(t, Version, v.Version)
	assert.NotEmpty(t, v.GoVersion)
}

func TestTUI_RejectsJSON(t *testing.T) {
	res := run(t, nil, "tui", "--json")
	require.Error(t, res.err)
}

// =============================================================================
// HELPERS
// =============================================================================

func TestUserMessage(t *testing.T) {
	apiErr := &backend.APIError{Path: backend.PathScrape, Status: 500, Detail: "Scrape failed"}
	assert.Equal(t, "Scrape failed", userMessage(NewCommandError("analyze", "web", apiErr)))
	assert.Equal(t, "enter a URL to analyze", userMessage(NewCommandError("analyze", "web", portal.ErrNoURL)))
	assert.Equal(t, "plain", userMessage(errors.New("plain")))
	assert.Nil(t, NewCommandError("a", "b", nil))
}

func TestNormalizeArg(t *testing.T) {
	assert.Equal(t, "https://example.com", normalizeArg("  https://ｅｘａｍｐｌｅ.com\n"))
}

func TestProviderLabel(t *testing.T) {
	for in, want := range map[string]string{
		"":       backend.ProviderGeminiFlash,
		"Gemini": backend.ProviderGeminiFlash,
		"groq":   backend.ProviderGroqLlama,
	} {
		got, err := providerLabel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := providerLabel("claude")
	assert.Error(t, err)
}

func TestRenderStatus(t *testing.T) {
	for status, want := range map[string]string{
		"ok":      "[OK]",
		"missing": "[WARN]",
		"error":   "[FAIL]",
		"n/a":     "[N/A]",
	} {
		assert.Contains(t, RenderStatus(status), want, fmt.Sprintf("status %q", status))
	}
}
