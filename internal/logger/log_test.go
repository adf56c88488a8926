// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logger

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/A4xPraddy/multiscrapper-ai/internal/config"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"bogus":   slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	l, closer := New(Options{Level: "info", File: path, MaxSizeMB: 1})

	l.Info("analysis complete", "tool", "web", "chars", 42)
	l.Debug("filtered out")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	require.Equal(t, "analysis complete", rec["msg"])
	require.Equal(t, "web", rec["tool"])
	require.EqualValues(t, 42, rec["chars"])
}

func TestNew_NoWritersDiscards(t *testing.T) {
	l, closer := New(Options{Level: "debug"})
	l.Info("nowhere")
	require.NoError(t, closer.Close())
}

func TestFromConfig(t *testing.T) {
	cfg := config.Default().Log
	opts := FromConfig(cfg, "/tmp/x.log")
	require.Equal(t, "/tmp/x.log", opts.File)
	require.Equal(t, cfg.MaxBackups, opts.MaxBackups)
	require.Equal(t, cfg.Level, opts.Level)
}
