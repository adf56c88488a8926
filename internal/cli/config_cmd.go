// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/A4xPraddy/multiscrapper-ai/internal/config"
)

// =============================================================================
// CONFIG
// =============================================================================

func newConfigCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the configuration file",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			if err := e.setup(false); err != nil {
				return err
			}
			return OutputJSON(e.out, e.jsonOut, "config show", func() (interface{}, error) {
				e.printf("%s\n", e.cfg.String())
				return e.cfg, nil
			})
		},
	}

	path := &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return OutputJSON(e.out, e.jsonOut, "config path", func() (interface{}, error) {
				p, err := config.ConfigPathTOML()
				if err != nil {
					return nil, err
				}
				e.printf("%s\n", p)
				return map[string]string{"path": p}, nil
			})
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return OutputJSON(e.out, e.jsonOut, "config init", func() (interface{}, error) {
				p, err := config.ConfigPathTOML()
				if err != nil {
					return nil, err
				}
				if _, err := os.Stat(p); err == nil && !force {
					return nil, fmt.Errorf("%s already exists (use --force to overwrite)", p)
				}
				if err := config.SaveTOML(config.Default(), p); err != nil {
					return nil, err
				}
				e.printf("%s Wrote %s\n", RenderStatus("ok"), p)
				return map[string]string{"path": p}, nil
			})
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	cmd.AddCommand(show, path, initCmd)
	return cmd
}

// =============================================================================
// VERSION
// =============================================================================

type versionInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

func newVersionCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return OutputJSON(e.out, e.jsonOut, "version", func() (interface{}, error) {
				v := versionInfo{
					Version:   Version,
					GitCommit: GitCommit,
					BuildDate: BuildDate,
					GoVersion: runtime.Version(),
					Platform:  runtime.GOOS + "/" + runtime.GOARCH,
				}
				e.printf("multiscrapper %s (%s, built %s)\n", v.Version, v.GitCommit, v.BuildDate)
				e.printf("%s %s\n", v.GoVersion, v.Platform)
				return v, nil
			})
		},
	}
}
