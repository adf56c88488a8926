// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logger configures structured logging for multiscrapper.
//
// Records are JSON (log/slog) and go to a size-rotated file, optionally
// mirrored to stderr. The TUI never enables the console writer since the
// terminal belongs to Bubble Tea.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/lumberjack.v2"

	"github.com/A4xPraddy/multiscrapper-ai/internal/config"
)

// Options selects where records go. File is the resolved log path
// (config.LogPath); Console mirrors to stderr.
type Options struct {
	Level      string
	File       string
	Console    bool
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// FromConfig builds Options from the log section and resolved path.
func FromConfig(cfg config.LogConfig, path string) Options {
	return Options{
		Level:      cfg.Level,
		File:       path,
		Console:    cfg.Console,
		MaxSizeMB:  cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAgeDays: cfg.MaxAgeDays,
	}
}

// New builds a JSON logger for opts. The returned closer releases the
// rotating file (nil-safe to call when no file was configured).
func New(opts Options) (*slog.Logger, io.Closer) {
	var writers []io.Writer
	var closer io.Closer = nopCloser{}

	if opts.Console {
		writers = append(writers, os.Stderr)
	}
	if opts.File != "" {
		lj := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			LocalTime:  true,
		}
		writers = append(writers, lj)
		closer = lj
	}
	if len(writers) == 0 {
		writers = append(writers, io.Discard)
	}

	h := slog.NewJSONHandler(io.MultiWriter(writers...), &slog.HandlerOptions{Level: ParseLevel(opts.Level)})
	return slog.New(h), closer
}

// Init installs a logger for opts as the slog default.
func Init(opts Options) io.Closer {
	l, closer := New(opts)
	slog.SetDefault(l)
	Debug("logger initialized", "level", opts.Level, "file", opts.File)
	return closer
}

func Info(msg string, args ...any)  { slog.Info(msg, args...) }
func Warn(msg string, args ...any)  { slog.Warn(msg, args...) }
func Error(msg string, args ...any) { slog.Error(msg, args...) }
func Debug(msg string, args ...any) { slog.Debug(msg, args...) }

// ParseLevel maps a config level name to a slog level. Unknown names are info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
