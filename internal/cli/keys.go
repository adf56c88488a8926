// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// keys.go - Provider key management.
//
// Examples:
//   multiscrapper keys set                      Prompt for both keys (no echo)
//   multiscrapper keys set --groq gsk_...       Store only the Groq key
//   multiscrapper keys show                     Show which keys are present
//   multiscrapper keys clear                    Forget both keys

package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/A4xPraddy/multiscrapper-ai/internal/logger"
	"github.com/A4xPraddy/multiscrapper-ai/internal/ui/app"
	"github.com/A4xPraddy/multiscrapper-ai/internal/util"
)

// ErrNoKeyGiven is returned when keys set receives nothing to store.
var ErrNoKeyGiven = errors.New("at least one API key is required")

func newKeysCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage the Gemini and Groq API keys",
	}

	var gemini, groq string
	set := &cobra.Command{
		Use:   "set",
		Short: "Store API keys (prompts without echo when no flag is given)",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return runKeysSet(e, gemini, groq)
		},
	}
	set.Flags().StringVar(&gemini, "gemini", "", "Gemini API key")
	set.Flags().StringVar(&groq, "groq", "", "Groq API key")

	show := &cobra.Command{
		Use:   "show",
		Short: "Show which keys are configured (never the keys themselves)",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return runKeysShow(e)
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove both stored keys",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return runKeysClear(e)
		},
	}

	cmd.AddCommand(set, show, clearCmd)
	return cmd
}

func runKeysSet(e *env, gemini, groq string) error {
	if err := e.setup(false); err != nil {
		return err
	}

	gemini, groq = strings.TrimSpace(gemini), strings.TrimSpace(groq)
	if gemini == "" && groq == "" {
		var err error
		if gemini, err = e.readSecret("Gemini API key (Enter to skip): "); err != nil {
			return err
		}
		if groq, err = e.readSecret("Groq API key (Enter to skip): "); err != nil {
			return err
		}
	}
	if gemini == "" && groq == "" {
		return ErrNoKeyGiven
	}

	return OutputJSON(e.out, e.jsonOut, "keys set", func() (interface{}, error) {
		ready, err := e.keys.Save(gemini, groq)
		if err != nil {
			return nil, NewCommandError("keys", "set", err)
		}
		e.printf("%s %s\n", RenderStatus("ok"), SuccessStyle.Render(app.NoticeActivated))
		return map[string]bool{"ready": ready}, nil
	})
}

type keyStatus struct {
	Gemini string `json:"gemini"`
	Groq   string `json:"groq"`
	Source string `json:"source"`
	Ready  bool   `json:"ready"`
}

func runKeysShow(e *env) error {
	if err := e.setup(false); err != nil {
		return err
	}
	return OutputJSON(e.out, e.jsonOut, "keys show", func() (interface{}, error) {
		creds, err := e.keys.Load()
		if err != nil {
			return nil, NewCommandError("keys", "show", err)
		}
		envGemini, envGroq := e.keys.fromEnv()
		source := "store"
		if envGemini || envGroq {
			source = "environment"
		}
		st := keyStatus{
			Gemini: util.MaskSecret(creds.Gemini),
			Groq:   util.MaskSecret(creds.Groq),
			Source: source,
			Ready:  creds.Ready(),
		}

		e.printf("%s\n", TitleStyle.Render("API Keys"))
		e.printf("%s%s %s\n", RenderLabel("Gemini"), keyState(creds.Gemini), ValueStyle.Render(st.Gemini))
		e.printf("%s%s %s\n", RenderLabel("Groq"), keyState(creds.Groq), ValueStyle.Render(st.Groq))
		if st.Ready {
			e.printf("%s%s\n", RenderLabel("Status"), SuccessStyle.Render("AI Connected"))
		} else {
			e.printf("%s%s\n", RenderLabel("Status"), ErrorStyle.Render("AI Offline"))
		}
		if source == "environment" {
			e.printf("%s\n", DimStyle.Render("Keys from "+EnvGeminiKey+"/"+EnvGroqKey+" override stored ones."))
		}
		return st, nil
	})
}

func keyState(secret string) string {
	if secret == "" {
		return RenderStatus("missing")
	}
	return RenderStatus("set")
}

func runKeysClear(e *env) error {
	if err := e.setup(false); err != nil {
		return err
	}
	return OutputJSON(e.out, e.jsonOut, "keys clear", func() (interface{}, error) {
		if err := e.keys.Clear(); err != nil {
			return nil, NewCommandError("keys", "clear", err)
		}
		logger.Info("stored keys cleared")
		e.printf("%s Stored keys removed.\n", RenderStatus("ok"))
		return map[string]bool{"cleared": true}, nil
	})
}

// readSecretTTY prompts on stderr and reads a line without echo.
// SECURITY: keys never appear on screen or in shell history.
func (e *env) readSecretTTY(prompt string) (string, error) {
	if err := RequiresTTY("read API keys"); err != nil {
		return "", fmt.Errorf("%w (pass --gemini or --groq instead)", err)
	}
	fmt.Fprint(e.errOut, prompt)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(e.errOut)
	if err != nil {
		return "", fmt.Errorf("read key: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}
