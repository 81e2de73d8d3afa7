package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jonathan/campaign-pipeline/internal/config"
	"github.com/jonathan/campaign-pipeline/internal/extraction"
	"github.com/jonathan/campaign-pipeline/internal/ingestion"
	"github.com/jonathan/campaign-pipeline/internal/pipeline/steps"
	"github.com/jonathan/campaign-pipeline/internal/prompts"
	"github.com/spf13/cobra"
)

var extractBriefCmd = &cobra.Command{
	Use:   "extract-brief",
	Short: "Extract a structured campaign brief from a brief document",
	Long:  "Sends the brief document to the model with the campaign brief schema and prints the validated brief as JSON.",
	RunE:  runExtractBrief,
}

var (
	extractFlags         modelFlags
	extractBrief         string
	extractBriefMIMEType string
	extractOutput        string
)

func init() {
	extractFlags.register(extractBriefCmd)

	extractBriefCmd.Flags().StringVarP(&extractBrief, "brief", "b", "", "Brief document: gs:// or https:// URI, or local file path")
	extractBriefCmd.Flags().StringVar(&extractBriefMIMEType, "brief-mime-type", "", "Media type of the brief (detected when not set)")
	extractBriefCmd.Flags().StringVarP(&extractOutput, "out", "o", "", "Path to output CampaignBrief JSON file (stdout when not set)")

	rootCmd.AddCommand(extractBriefCmd)
}

func runExtractBrief(cmd *cobra.Command, _ []string) error {
	cfg, err := extractFlags.resolve(cmd, os.Getenv, func(c *config.Config) {
		if cmd.Flags().Changed("brief") {
			c.Brief = extractBrief
		}
		if cmd.Flags().Changed("brief-mime-type") {
			c.BriefMIMEType = extractBriefMIMEType
		}
	})
	if err != nil {
		return err
	}
	if err := cfg.RequireBrief(); err != nil {
		return err
	}

	return extractBriefTo(commandContext(cmd), cfg, extractOutput, cmd.OutOrStdout())
}

func extractBriefTo(ctx context.Context, cfg *config.Config, outPath string, stdout io.Writer) error {
	doc, err := ingestion.ResolveAttachment(cfg.Brief, cfg.BriefMIMEType)
	if err != nil {
		return fmt.Errorf("failed to resolve brief: %w", err)
	}

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

	brief, err := extraction.ExtractCampaignBrief(ctx, client, steps.ExtractBrief, prompts.BriefExtraction(), doc)
	if err != nil {
		return fmt.Errorf("brief extraction failed: %w", err)
	}

	if outPath == "" {
		_, _ = fmt.Fprintln(stdout, brief.JSON())
		return nil
	}
	if err := os.WriteFile(outPath, []byte(brief.JSON()+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	_, _ = fmt.Fprintf(stdout, "Successfully extracted campaign brief to %s\n", outPath)
	return nil
}
