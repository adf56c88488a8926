// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// generate.go - Direct model calls through the AI adapter.
//
// Examples:
//   multiscrapper generate "Summarize the history of Go"
//   multiscrapper generate --provider groq --class reasoning "Compare REST and gRPC"
//   multiscrapper generate --task video < transcript.txt

package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/A4xPraddy/multiscrapper-ai/internal/ai"
)

type generateOutput struct {
	Provider string `json:"provider"`
	Class    string `json:"class"`
	Model    string `json:"model"`
	Task     string `json:"task,omitempty"`
	Text     string `json:"text"`
}

func newGenerateCmd(e *env) *cobra.Command {
	var class, provider, task string

	cmd := &cobra.Command{
		Use:   "generate [prompt]",
		Short: "Send a prompt straight to Gemini or Groq",
		Long: `Generate sends a prompt to the configured model provider. The task class
selects the model; --task wraps the prompt in one of the canned shapes
(video, research, visual, vault). Without a prompt argument the prompt is
read from stdin.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt := strings.Join(args, " ")
			if prompt == "" {
				b, err := io.ReadAll(e.in)
				if err != nil {
					return fmt.Errorf("read prompt: %w", err)
				}
				prompt = string(b)
			}
			return runGenerate(cmd.Context(), e, strings.TrimSpace(prompt), class, provider, task)
		},
	}
	cmd.Flags().StringVar(&class, "class", "", "Task class: speed, reasoning or visual (default: ai.default_class)")
	cmd.Flags().StringVar(&provider, "provider", "", "Provider: gemini or groq (default: ai.default_provider)")
	cmd.Flags().StringVar(&task, "task", "", "Canned task: video, research, visual or vault")
	return cmd
}

func runGenerate(ctx context.Context, e *env, prompt, className, providerName, taskName string) error {
	if prompt == "" {
		return fmt.Errorf("a prompt is required")
	}
	if err := e.setup(false); err != nil {
		return err
	}

	// Resolve the class before any session is built so bad input never
	// reaches the network.
	var (
		class ai.TaskClass
		task  ai.Task
		err   error
	)
	if taskName != "" {
		task = ai.Task(strings.ToLower(strings.TrimSpace(taskName)))
		if class, err = task.Class(); err != nil {
			return err
		}
	} else {
		if className == "" {
			className = e.cfg.AI.DefaultClass
		}
		if class, err = ai.ParseTaskClass(className); err != nil {
			return err
		}
	}

	return OutputJSON(e.out, e.jsonOut, "generate", func() (interface{}, error) {
		session, err := e.aiSession(ctx, providerName)
		if err != nil {
			return nil, NewCommandError("generate", "session", err)
		}
		modelName, err := ai.Model(session.Provider(), class)
		if err != nil {
			return nil, err
		}

		var text string
		if task != "" {
			text, err = session.Run(ctx, task, prompt, nil)
		} else {
			text, err = session.Generate(ctx, class, prompt)
		}
		if err != nil {
			return nil, NewCommandError("generate", session.Provider().String(), err)
		}

		e.printf("%s\n", DimStyle.Render(session.Provider().String()+" / "+modelName))
		e.printf("%s\n", e.renderMarkdown(text))
		return generateOutput{
			Provider: session.Provider().String(),
			Class:    class.String(),
			Model:    modelName,
			Task:     string(task),
			Text:     text,
		}, nil
	})
}

// aiSession binds the AI adapter to a provider. With no explicit provider
// the configured default is used, falling back to whichever key is present.
func (e *env) aiSession(ctx context.Context, providerName string) (*ai.Session, error) {
	creds, err := e.credentials()
	if err != nil {
		return nil, err
	}

	explicit := providerName != ""
	if !explicit {
		providerName = e.cfg.AI.DefaultProvider
	}
	provider, err := ai.ParseProvider(providerName)
	if err != nil {
		return nil, err
	}

	secret := secretFor(provider, creds.Gemini, creds.Groq)
	if secret == "" && !explicit {
		for _, alt := range []ai.Provider{ai.ProviderGemini, ai.ProviderGroq} {
			if s := secretFor(alt, creds.Gemini, creds.Groq); s != "" {
				provider, secret = alt, s
				break
			}
		}
	}
	return ai.NewSession(ctx, provider, secret)
}

func secretFor(p ai.Provider, gemini, groq string) string {
	if p == ai.ProviderGroq {
		return groq
	}
	return gemini
}
