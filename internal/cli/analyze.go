// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// analyze.go - Run one tool from the command line.
//
// Examples:
//   multiscrapper analyze web https://example.com
//   multiscrapper analyze video https://youtu.be/xyz --ask "Key points?" --ask "Who speaks?"
//   multiscrapper analyze document paper.pdf --export pdf --out ./reports
//   multiscrapper analyze web https://example.com --chat
//   multiscrapper analyze web https://example.com --json | jq .data.content
//
// Flags:
//   --ask Q          Follow-up question, repeatable, asked in order
//   --chat           Interactive follow-up REPL after the analysis
//   --export FMT     Write a report: md, json, html or pdf
//   --out DIR        Report directory (default: ui.export_dir)

package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/A4xPraddy/multiscrapper-ai/internal/backend"
	"github.com/A4xPraddy/multiscrapper-ai/internal/export"
	"github.com/A4xPraddy/multiscrapper-ai/internal/model"
	"github.com/A4xPraddy/multiscrapper-ai/internal/portal"
)

type analyzeFlags struct {
	asks   []string
	chat   bool
	export string
	out    string
}

// analyzeOutput is the JSON shape of an analysis.
type analyzeOutput struct {
	Tool       string           `json:"tool"`
	Source     string           `json:"source"`
	Kind       string           `json:"kind"`
	Content    string           `json:"content"`
	Screenshot string           `json:"screenshot,omitempty"`
	PageCount  int              `json:"page_count,omitempty"`
	Transcript []model.ChatTurn `json:"transcript"`
	ReportPath string           `json:"report_path,omitempty"`
}

func newAnalyzeCmd(e *env) *cobra.Command {
	var flags analyzeFlags

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a web page, YouTube video or PDF document",
	}
	cmd.PersistentFlags().StringArrayVar(&flags.asks, "ask", nil, "Follow-up question (repeatable)")
	cmd.PersistentFlags().BoolVar(&flags.chat, "chat", false, "Start an interactive follow-up session")
	cmd.PersistentFlags().StringVar(&flags.export, "export", "", "Export a report: md, json, html or pdf")
	cmd.PersistentFlags().StringVar(&flags.out, "out", "", "Report directory (default: ui.export_dir)")

	sub := func(tool portal.Tool, use, short string) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runAnalyze(cmd.Context(), e, tool, args[0], flags)
			},
		}
	}
	cmd.AddCommand(
		sub(portal.ToolWeb, "web <url>", "Scrape a web page and capture a screenshot"),
		sub(portal.ToolVideo, "video <url>", "Summarize a YouTube video"),
		sub(portal.ToolDocument, "document <file.pdf>", "Extract the text of a PDF"),
	)
	return cmd
}

func runAnalyze(ctx context.Context, e *env, tool portal.Tool, arg string, flags analyzeFlags) error {
	// Validate flags before any network traffic.
	var format export.Format
	if flags.export != "" {
		f, err := export.ParseFormat(flags.export)
		if err != nil {
			return err
		}
		format = f
	}
	if flags.chat && e.jsonOut {
		return errors.New("--chat cannot be combined with --json")
	}

	if err := e.setup(false); err != nil {
		return err
	}

	p := e.newPortal(tool)
	source := normalizeArg(arg)
	if tool == portal.ToolDocument {
		p.SelectFile(source)
	} else {
		p.SetInput(source)
	}

	return OutputJSON(e.out, e.jsonOut, "analyze "+tool.String(), func() (interface{}, error) {
		e.printf("%s\n", DimStyle.Render("Analyzing with "+tool.Label()+"..."))
		res, err := p.Process(ctx)
		if err != nil {
			return nil, NewCommandError("analyze", tool.String(), err)
		}
		e.printResult(res)

		for _, q := range flags.asks {
			turns, err := p.Ask(ctx, q)
			if err != nil {
				return nil, NewCommandError("ask", tool.String(), err)
			}
			e.printTurns(turns)
		}

		out := analyzeOutput{
			Tool:       tool.String(),
			Source:     source,
			Kind:       res.Kind.String(),
			Content:    res.Content(),
			Screenshot: res.Screenshot,
			PageCount:  res.PageCount,
		}

		if flags.chat {
			if err := runChat(ctx, e, p); err != nil {
				return nil, err
			}
		}

		out.Transcript = p.Transcript()
		if format != "" {
			path, err := e.exportReport(p, format, flags.out)
			if err != nil {
				return nil, NewCommandError("export", string(format), err)
			}
			out.ReportPath = path
			e.printf("%s Report saved to %s\n", RenderStatus("ok"), path)
		}
		return out, nil
	})
}

func (e *env) printResult(res backend.Result) {
	e.printf("%s\n", TitleStyle.Render(res.Title()))
	content := res.Content()
	if content == "" {
		e.printf("%s\n", DimStyle.Render(export.NoContent))
	} else {
		e.printf("%s\n", e.renderMarkdown(content))
	}
	if res.HasScreenshot() {
		e.printf("\n%s %s\n", RenderLabel("Screenshot"), DimStyle.Render(e.client.ScreenshotURL()))
	}
}

func (e *env) printTurns(turns []model.ChatTurn) {
	for _, t := range turns {
		if t.IsUser() {
			e.printf("\n%s %s\n", PromptStyle.Render(t.Role.DisplayName()+":"), t.Content)
			continue
		}
		e.printf("%s\n%s\n", SectionStyle.Render(t.Role.DisplayName()+":"), e.renderMarkdown(t.Content))
	}
}

// exportReport writes the current analysis and transcript.
func (e *env) exportReport(p *portal.Portal, format export.Format, dir string) (string, error) {
	res, ok := p.Result()
	if !ok {
		return "", errors.New("nothing to export")
	}
	source := p.Input()
	if p.Tool() == portal.ToolDocument {
		source = p.File()
	}

	opts := export.DefaultOptions()
	opts.OutputDir = e.cfg.UI.ExportDir
	if dir != "" {
		opts.OutputDir = dir
	}
	if e.cfg.UI.Theme == "light" {
		opts.Theme = "light"
	}
	exporter, err := export.New(format, opts)
	if err != nil {
		return "", err
	}
	return export.ExportToFile(export.NewReport(p.Tool().Label(), source, res, p.Transcript()), exporter, opts)
}
