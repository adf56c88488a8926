// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for multiscrapper.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - $MULTISCRAPPER_CONFIG
//   - ~/.multiscrapper/config.toml
//   - ~/.multiscrapper/config.json
//   - Built-in defaults
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/A4xPraddy/multiscrapper-ai/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete multiscrapper configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	// Backend is the extraction/summarization service the client talks to.
	Backend BackendConfig `toml:"backend" json:"backend"`

	// AI configures the direct generative-model adapter.
	AI AIConfig `toml:"ai" json:"ai"`

	// Storage configures the local credential store.
	Storage StorageConfig `toml:"storage" json:"storage"`

	Log LogConfig `toml:"log" json:"log"`

	UI UIConfig `toml:"ui" json:"ui"`
}

// BackendConfig contains backend service configuration.
type BackendConfig struct {
	// URL is the base URL of the backend (no trailing path).
	URL string `toml:"url" json:"url"`
	// TimeoutSecs bounds each backend request. 0 disables the timeout;
	// requests still honor context cancellation.
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
	// AskProvider is the provider label sent with follow-up questions.
	AskProvider string `toml:"ask_provider" json:"ask_provider"`
	// MaxUploadMB caps the size of documents sent for vectorization.
	MaxUploadMB int `toml:"max_upload_mb" json:"max_upload_mb"`
}

// AIConfig contains defaults for the direct model adapter.
type AIConfig struct {
	// DefaultProvider is "gemini" or "groq".
	DefaultProvider string `toml:"default_provider" json:"default_provider"`
	// DefaultClass is "speed", "reasoning" or "visual".
	DefaultClass string `toml:"default_class" json:"default_class"`
}

// StorageConfig contains local key storage configuration.
type StorageConfig struct {
	// Path is the SQLite file holding stored credentials (empty = default).
	Path string `toml:"path" json:"path"`
	// Ephemeral keeps credentials in memory only for this process.
	Ephemeral bool `toml:"ephemeral" json:"ephemeral"`
}

// LogConfig contains structured logging configuration.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level" json:"level"`
	// File is the rotating log file (empty = default under the config dir).
	File string `toml:"file" json:"file"`
	// Console mirrors log output to stderr. Ignored while the TUI is running.
	Console    bool `toml:"console" json:"console"`
	MaxSizeMB  int  `toml:"max_size_mb" json:"max_size_mb"`
	MaxBackups int  `toml:"max_backups" json:"max_backups"`
	MaxAgeDays int  `toml:"max_age_days" json:"max_age_days"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the UI theme: "dark", "light", "auto"
	Theme string `toml:"theme" json:"theme"`
	// DefaultTool is the tool selected on startup: "web", "video", "document"
	DefaultTool string `toml:"default_tool" json:"default_tool"`
	// ExportDir is where reports and screenshots are written.
	ExportDir string `toml:"export_dir" json:"export_dir"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// DefaultBackendURL is used when neither config nor environment names a backend.
const DefaultBackendURL = "http://localhost:8000"

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",

		Backend: BackendConfig{
			URL:         DefaultBackendURL,
			TimeoutSecs: 0,
			AskProvider: "Gemini (Flash 2.0)",
			MaxUploadMB: 50,
		},

		AI: AIConfig{
			DefaultProvider: "gemini",
			DefaultClass:    "speed",
		},

		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},

		UI: UIConfig{
			Theme:       "dark",
			DefaultTool: "web",
			ExportDir:   ".",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the multiscrapper configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".multiscrapper"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	if p := os.Getenv("MULTISCRAPPER_CONFIG"); p != "" {
		return p, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// StoragePath returns the credential database path, resolving the default.
func (c *Config) StoragePath() (string, error) {
	if c.Storage.Path != "" {
		return c.Storage.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "storage.db"), nil
}

// LogPath returns the log file path, resolving the default.
func (c *Config) LogPath() (string, error) {
	if c.Log.File != "" {
		return c.Log.File, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "logs", "multiscrapper.log"), nil
}

// Timeout returns the backend timeout as a duration (0 = none).
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Backend.TimeoutSecs) * time.Second
}

// ensureSecurePermissions checks and fixes permissions on config files.
// SECURITY: Config files should be 0600 (owner read/write only).
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if mode := info.Mode().Perm(); mode != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}
	return nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	cfg := Default()
	var loadErr error

	tomlPath, err := ConfigPathTOML()
	if err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			if err := LoadTOML(cfg, tomlPath); err != nil {
				loadErr = fmt.Errorf("failed to load TOML config: %w", err)
			} else {
				return finish(cfg)
			}
		}
	}

	if loadErr == nil {
		jsonPath, err := ConfigPathJSON()
		if err == nil {
			if _, statErr := os.Stat(jsonPath); statErr == nil {
				if err := LoadJSON(cfg, jsonPath); err != nil {
					loadErr = fmt.Errorf("failed to load JSON config: %w", err)
				} else {
					return finish(cfg)
				}
			}
		}
	}

	// Defaults, with any load error returned for informational purposes.
	cfg = Default()
	out, err := finish(cfg)
	if err != nil {
		return nil, err
	}
	return out, loadErr
}

func finish(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML loads configuration from a TOML file.
func LoadTOML(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	fillDefaults(cfg)
	return nil
}

// LoadJSON loads configuration from a JSON file.
func LoadJSON(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	fillDefaults(cfg)
	return nil
}

// LoadFromPath loads configuration from a specific file path with full validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := &Config{}
	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}
	return finish(cfg)
}

// fillDefaults fills in any missing values with defaults.
func fillDefaults(cfg *Config) {
	defaults := Default()

	if cfg.Version == "" {
		cfg.Version = defaults.Version
	}

	if cfg.Backend.URL == "" {
		cfg.Backend.URL = defaults.Backend.URL
	}
	if cfg.Backend.AskProvider == "" {
		cfg.Backend.AskProvider = defaults.Backend.AskProvider
	}
	if cfg.Backend.MaxUploadMB == 0 {
		cfg.Backend.MaxUploadMB = defaults.Backend.MaxUploadMB
	}

	if cfg.AI.DefaultProvider == "" {
		cfg.AI.DefaultProvider = defaults.AI.DefaultProvider
	}
	if cfg.AI.DefaultClass == "" {
		cfg.AI.DefaultClass = defaults.AI.DefaultClass
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}
	if cfg.Log.MaxSizeMB == 0 {
		cfg.Log.MaxSizeMB = defaults.Log.MaxSizeMB
	}
	if cfg.Log.MaxBackups == 0 {
		cfg.Log.MaxBackups = defaults.Log.MaxBackups
	}
	if cfg.Log.MaxAgeDays == 0 {
		cfg.Log.MaxAgeDays = defaults.Log.MaxAgeDays
	}

	if cfg.UI.Theme == "" {
		cfg.UI.Theme = defaults.UI.Theme
	}
	if cfg.UI.DefaultTool == "" {
		cfg.UI.DefaultTool = defaults.UI.DefaultTool
	}
	if cfg.UI.ExportDir == "" {
		cfg.UI.ExportDir = defaults.UI.ExportDir
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file.
// SECURITY: Creates config files with 0600 permissions (owner read/write only).
// RELIABILITY: Atomic write with fsync prevents data loss on crash
func SaveTOML(cfg *Config, path string) error {
	var sb strings.Builder
	sb.WriteString("# multiscrapper configuration file\n")
	sb.WriteString("# Generated by multiscrapper - edit with care\n\n")

	if err := toml.NewEncoder(&sb).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, []byte(sb.String()), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON saves the configuration to a JSON file.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if u, err := url.Parse(c.Backend.URL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, ValidationError{
			Field:   "backend.url",
			Message: fmt.Sprintf("invalid URL '%s', expected scheme://host[:port]", c.Backend.URL),
		})
	} else if u.Scheme != "http" && u.Scheme != "https" {
		errs = append(errs, ValidationError{
			Field:   "backend.url",
			Message: fmt.Sprintf("unsupported scheme '%s', must be http or https", u.Scheme),
		})
	}
	if c.Backend.TimeoutSecs < 0 {
		errs = append(errs, ValidationError{Field: "backend.timeout_secs", Message: "must be >= 0"})
	}
	if c.Backend.MaxUploadMB < 0 {
		errs = append(errs, ValidationError{Field: "backend.max_upload_mb", Message: "must be >= 0"})
	}

	if !oneOf(c.AI.DefaultProvider, "gemini", "groq") {
		errs = append(errs, ValidationError{
			Field:   "ai.default_provider",
			Message: fmt.Sprintf("invalid provider '%s', must be one of: gemini, groq", c.AI.DefaultProvider),
		})
	}
	if !oneOf(c.AI.DefaultClass, "speed", "reasoning", "visual") {
		errs = append(errs, ValidationError{
			Field:   "ai.default_class",
			Message: fmt.Sprintf("invalid class '%s', must be one of: speed, reasoning, visual", c.AI.DefaultClass),
		})
	}

	if !oneOf(c.Log.Level, "debug", "info", "warn", "warning", "error") {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Log.Level),
		})
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAgeDays < 0 {
		errs = append(errs, ValidationError{Field: "log", Message: "rotation limits must be >= 0"})
	}

	if !oneOf(c.UI.Theme, "dark", "light", "auto") {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		})
	}
	if !oneOf(c.UI.DefaultTool, "web", "video", "document") {
		errs = append(errs, ValidationError{
			Field:   "ui.default_tool",
			Message: fmt.Sprintf("invalid tool '%s', must be one of: web, video, document", c.UI.DefaultTool),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func oneOf(v string, options ...string) bool {
	v = strings.ToLower(v)
	for _, o := range options {
		if v == o {
			return true
		}
	}
	return false
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies MULTISCRAPPER_* environment variables.
func (c *Config) ApplyEnvOverrides() {
	if u := os.Getenv("MULTISCRAPPER_API_URL"); u != "" {
		c.Backend.URL = strings.TrimRight(u, "/")
	}
	if t := os.Getenv("MULTISCRAPPER_TIMEOUT"); t != "" {
		if secs, err := strconv.Atoi(t); err == nil {
			c.Backend.TimeoutSecs = secs
		}
	}
	if lvl := os.Getenv("MULTISCRAPPER_LOG_LEVEL"); lvl != "" {
		c.Log.Level = lvl
	}
	if p := os.Getenv("MULTISCRAPPER_PROVIDER"); p != "" {
		c.AI.DefaultProvider = p
	}
	if e := os.Getenv("MULTISCRAPPER_EPHEMERAL"); e != "" {
		c.Storage.Ephemeral = e == "1" || strings.EqualFold(e, "true")
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "backend.url").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation (e.g., "backend.url").
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

func (c *Config) lookup(key string) (reflect.Value, error) {
	if strings.TrimSpace(key) == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")
	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)
		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			return field, nil
		}
		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})
	var result strings.Builder
	for _, part := range parts {
		result.WriteString(strings.ToUpper(part[:1]))
		result.WriteString(strings.ToLower(part[1:]))
	}
	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Bool:
			lower := strings.ToLower(strVal)
			field.SetBool(lower == "1" || lower == "true" || lower == "yes")
			return nil
		}
	}

	val := reflect.ValueOf(value)
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) {
		field.Set(val.Convert(field.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// String returns a JSON rendering of the config for display.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}
