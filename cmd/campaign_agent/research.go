package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jonathan/campaign-pipeline/internal/config"
	"github.com/jonathan/campaign-pipeline/internal/observability"
	"github.com/jonathan/campaign-pipeline/internal/pipeline/steps"
	"github.com/jonathan/campaign-pipeline/internal/prompts"
	"github.com/jonathan/campaign-pipeline/internal/research"
	"github.com/spf13/cobra"
)

var researchCmd = &cobra.Command{
	Use:   "research",
	Short: "Run web-grounded market research",
	Long:  "Sends the research prompt to the model with Google Search grounding and prints the answer and the sources it cited.",
	RunE:  runResearch,
}

var (
	researchFlags  modelFlags
	researchPrompt string
	researchTable  bool
)

func init() {
	researchFlags.register(researchCmd)

	researchCmd.Flags().StringVar(&researchPrompt, "prompt", "", "Research prompt (built-in market research questions when not set)")
	researchCmd.Flags().BoolVar(&researchTable, "table", false, "Also print the sources as a table")

	rootCmd.AddCommand(researchCmd)
}

func runResearch(cmd *cobra.Command, _ []string) error {
	cfg, err := researchFlags.resolve(cmd, os.Getenv, func(c *config.Config) {
		if cmd.Flags().Changed("prompt") {
			c.ResearchPrompt = researchPrompt
		}
	})
	if err != nil {
		return err
	}

	return researchTo(commandContext(cmd), cfg, researchTable, cmd.OutOrStdout())
}

func researchTo(ctx context.Context, cfg *config.Config, table bool, stdout io.Writer) error {
	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	if t := cfg.Timeout(); t > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t)
		defer cancel()
	}

	findings, err := research.Run(ctx, client, steps.MarketResearch, prompts.MarketResearch(cfg.ResearchPrompt))
	if err != nil {
		return fmt.Errorf("market research failed: %w", err)
	}

	printer := observability.NewPrinter(stdout)
	printer.PrintResearch(findings)
	if table {
		printer.PrintCitations(findings.Citations)
	}
	return nil
}
