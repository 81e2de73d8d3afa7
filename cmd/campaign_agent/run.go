package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jonathan/campaign-pipeline/internal/config"
	"github.com/jonathan/campaign-pipeline/internal/db"
	"github.com/jonathan/campaign-pipeline/internal/ingestion"
	"github.com/jonathan/campaign-pipeline/internal/observability"
	"github.com/jonathan/campaign-pipeline/internal/pipeline"
	"github.com/spf13/cobra"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the full campaign pipeline end-to-end",
	Long: `Runs every stage in order: extract the sample brief -> research the markets -> synthesize a new
brief -> generate ad copy -> generate a storyboard. The run stops at the first failing stage.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runPipelineCmd,
}

var (
	runFlags          modelFlags
	runBrief          string
	runBriefMIMEType  string
	runProduct        string
	runResearchPrompt string
	runDatabaseURL    string
	runOut            string
)

func init() {
	runFlags.register(runCommand)

	runCommand.Flags().StringVarP(&runBrief, "brief", "b", "", "Sample brief document: gs:// or https:// URI, or local file path")
	runCommand.Flags().StringVar(&runBriefMIMEType, "brief-mime-type", "", "Media type of the brief (detected when not set)")
	runCommand.Flags().StringVarP(&runProduct, "product", "p", "", "Path to product details YAML (built-in sample when not set)")
	runCommand.Flags().StringVar(&runResearchPrompt, "research-prompt", "", "Overrides the built-in market research questions")
	runCommand.Flags().StringVarP(&runOut, "out", "o", "", "Directory to write stage outputs to (optional)")

	// Database URL for artifact persistence
	runCommand.Flags().StringVar(&runDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(runCommand)
}

func runPipelineCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := runFlags.resolve(cmd, os.Getenv, func(c *config.Config) {
		if cmd.Flags().Changed("brief") {
			c.Brief = runBrief
		}
		if cmd.Flags().Changed("brief-mime-type") {
			c.BriefMIMEType = runBriefMIMEType
		}
		if cmd.Flags().Changed("product") {
			c.ProductFile = runProduct
		}
		if cmd.Flags().Changed("research-prompt") {
			c.ResearchPrompt = runResearchPrompt
		}
		if cmd.Flags().Changed("db-url") {
			c.DatabaseURL = runDatabaseURL
		}
	})
	if err != nil {
		return err
	}
	if err := cfg.RequireBrief(); err != nil {
		return err
	}

	return runCampaign(commandContext(cmd), cfg, runOut, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// runCampaign executes the pipeline for cfg, printing each stage to stdout and
// logging to stderr. When outDir is set, every completed stage output is written
// there, including after a failure.
func runCampaign(ctx context.Context, cfg *config.Config, outDir string, stdout, stderr io.Writer) error {
	logger, err := newLogger(cfg, stderr)
	if err != nil {
		return err
	}

	doc, err := ingestion.ResolveAttachment(cfg.Brief, cfg.BriefMIMEType)
	if err != nil {
		return fmt.Errorf("failed to resolve brief: %w", err)
	}

	product, err := loadProduct(cfg)
	if err != nil {
		return err
	}

	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	opts := []pipeline.Option{
		pipeline.WithLogger(logger),
		pipeline.WithPrinter(observability.NewPrinter(stdout)),
		pipeline.WithCallTimeout(cfg.Timeout()),
	}

	// Database persistence is optional; failures only disable it
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Warn("failed to connect to database, continuing without persistence", "error", err)
		} else {
			defer database.Close()
			if err := database.Migrate(ctx); err != nil {
				logger.Warn("failed to migrate database, continuing without persistence", "error", err)
			} else {
				logger.Debug("connected to database")
				opts = append(opts, pipeline.WithStore(database))
			}
		}
	}

	logger.Debug("starting pipeline", "model", client.Model(), "brief", cfg.Brief, "product", product.Name)
	st, runErr := pipeline.New(client, opts...).Run(ctx, pipeline.Input{
		Document:       doc,
		Source:         cfg.Brief,
		ResearchPrompt: cfg.ResearchPrompt,
		Product:        product.Describe(),
	})

	if outDir != "" {
		if err := writeOutputs(outDir, st); err != nil {
			if runErr != nil {
				logger.Error("failed to write outputs", "error", err)
				return runErr
			}
			return err
		}
		logger.Info("wrote stage outputs", "dir", outDir)
	}

	return runErr
}
