// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for multiscrapper.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - BackendConfig: Backend service location, timeout and ask provider label
//   - AIConfig: Defaults for the direct model adapter
//   - StorageConfig / LogConfig / UIConfig: local state, logging, presentation
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (MULTISCRAPPER_*)
//   - ~/.multiscrapper/config.toml
//   - ~/.multiscrapper/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client := backend.NewClient(cfg.Backend.URL)
package config
