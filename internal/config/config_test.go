// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault_Validates(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Backend.URL != "http://localhost:8000" {
		t.Errorf("Backend.URL = %q, want http://localhost:8000", cfg.Backend.URL)
	}
	if cfg.Backend.TimeoutSecs != 0 {
		t.Errorf("Backend.TimeoutSecs = %d, want 0 (no timeout)", cfg.Backend.TimeoutSecs)
	}
	if cfg.Backend.AskProvider != "Gemini (Flash 2.0)" {
		t.Errorf("Backend.AskProvider = %q", cfg.Backend.AskProvider)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("MULTISCRAPPER_API_URL", "https://api.example.com/")
	t.Setenv("MULTISCRAPPER_TIMEOUT", "30")
	t.Setenv("MULTISCRAPPER_LOG_LEVEL", "debug")
	t.Setenv("MULTISCRAPPER_EPHEMERAL", "true")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Backend.URL != "https://api.example.com" {
		t.Errorf("Backend.URL = %q, want trailing slash trimmed", cfg.Backend.URL)
	}
	if cfg.Backend.TimeoutSecs != 30 {
		t.Errorf("Backend.TimeoutSecs = %d, want 30", cfg.Backend.TimeoutSecs)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	if !cfg.Storage.Ephemeral {
		t.Error("Storage.Ephemeral should be true")
	}
}

func TestValidate_CollectsErrors(t *testing.T) {
	cfg := Default()
	cfg.Backend.URL = "not a url"
	cfg.AI.DefaultProvider = "openrouter"
	cfg.UI.DefaultTool = "audio"

	err := cfg.Validate()
	require.Error(t, err)

	var verrs ValidateErrors
	require.True(t, errors.As(err, &verrs))
	require.Len(t, verrs, 3)

	fields := make([]string, 0, len(verrs))
	for _, v := range verrs {
		fields = append(fields, v.Field)
	}
	require.ElementsMatch(t, []string{"backend.url", "ai.default_provider", "ui.default_tool"}, fields)
}

func TestValidate_RejectsNonHTTPScheme(t *testing.T) {
	cfg := Default()
	cfg.Backend.URL = "ftp://files.example.com"
	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported scheme")
}

func TestSaveAndLoadTOML_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := Default()
	cfg.Backend.URL = "http://backend.internal:9000"
	cfg.UI.DefaultTool = "video"
	require.NoError(t, SaveTOML(cfg, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("config file perm = %o, want 600", perm)
	}

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	require.Equal(t, "http://backend.internal:9000", loaded.Backend.URL)
	require.Equal(t, "video", loaded.UI.DefaultTool)
}

func TestLoadTOML_FillsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[backend]\nurl = \"http://x:1\"\n"), 0600))

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	require.Equal(t, "http://x:1", loaded.Backend.URL)
	require.Equal(t, "Gemini (Flash 2.0)", loaded.Backend.AskProvider)
	require.Equal(t, "info", loaded.Log.Level)
	require.Equal(t, "web", loaded.UI.DefaultTool)
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"ui":{"theme":"light"}}`), 0644))

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	require.Equal(t, "light", loaded.UI.Theme)

	// Permissions tightened on load.
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestGetSet_DotNotation(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Set("backend.timeout_secs", "15"))
	require.NoError(t, cfg.Set("storage.ephemeral", "yes"))
	require.NoError(t, cfg.Set("ui.default_tool", "document"))

	v, err := cfg.Get("backend.timeout_secs")
	require.NoError(t, err)
	require.Equal(t, 15, v)
	require.True(t, cfg.Storage.Ephemeral)
	require.Equal(t, "document", cfg.UI.DefaultTool)

	_, err = cfg.Get("backend.nope")
	require.Error(t, err)
	_, err = cfg.Get("backend.url.host")
	require.Error(t, err)
	require.Error(t, cfg.Set("", "x"))
}

func TestStoragePath_Default(t *testing.T) {
	cfg := Default()
	p, err := cfg.StoragePath()
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(p, filepath.Join(".multiscrapper", "storage.db")))

	cfg.Storage.Path = "/tmp/custom.db"
	p, err = cfg.StoragePath()
	require.NoError(t, err)
	require.Equal(t, "/tmp/custom.db", p)
}

func TestTimeout(t *testing.T) {
	cfg := Default()
	require.Zero(t, cfg.Timeout())
	cfg.Backend.TimeoutSecs = 5
	require.Equal(t, "5s", cfg.Timeout().String())
}
