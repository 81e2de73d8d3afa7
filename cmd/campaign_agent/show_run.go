package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/jonathan/campaign-pipeline/internal/config"
	"github.com/jonathan/campaign-pipeline/internal/db"
	"github.com/jonathan/campaign-pipeline/internal/observability"
	"github.com/jonathan/campaign-pipeline/internal/types"
	"github.com/spf13/cobra"
)

var showRunCmd = &cobra.Command{
	Use:   "show-run",
	Short: "Show a persisted campaign run",
	Long: `Prints the stage records and stored outputs of a run. Without --run-id, lists recent runs.
With --delete, removes the run together with its stage records and outputs.`,
	RunE:  runShowRun,
}

var (
	showRunID    string
	showRunDBURL string
	showRunLimit int
	showRunDel   bool
)

// runStore is the part of the database show-run uses
type runStore interface {
	ListRuns(ctx context.Context, limit int) ([]db.Run, error)
	GetRun(ctx context.Context, runID uuid.UUID) (*db.Run, error)
	DeleteRun(ctx context.Context, runID uuid.UUID) error
	ListRunSteps(ctx context.Context, runID uuid.UUID) ([]db.RunStep, error)
	ListArtifacts(ctx context.Context, runID uuid.UUID) ([]db.ArtifactSummary, error)
	GetSampleBriefByRunID(ctx context.Context, runID uuid.UUID) (*types.CampaignBrief, error)
	GetMarketResearchByRunID(ctx context.Context, runID uuid.UUID) (*types.MarketResearch, error)
	GetCampaignBriefByRunID(ctx context.Context, runID uuid.UUID) (*types.CampaignBrief, error)
	GetAdCopyByRunID(ctx context.Context, runID uuid.UUID) (*types.AdCopyBundle, error)
	GetStoryboardByRunID(ctx context.Context, runID uuid.UUID) (string, error)
}

var _ runStore = (*db.DB)(nil)

func init() {
	showRunCmd.Flags().StringVar(&showRunID, "run-id", "", "Run ID to show (lists recent runs when not set)")
	showRunCmd.Flags().StringVar(&showRunDBURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL env var)")
	showRunCmd.Flags().IntVar(&showRunLimit, "limit", 20, "Number of runs to list")
	showRunCmd.Flags().BoolVar(&showRunDel, "delete", false, "Delete the run given by --run-id")

	rootCmd.AddCommand(showRunCmd)
}

func runShowRun(cmd *cobra.Command, _ []string) error {
	dbURL := showRunDBURL
	if dbURL == "" {
		dbURL = os.Getenv(config.EnvDatabaseURL)
	}
	if dbURL == "" {
		return fmt.Errorf("%s environment variable or --db-url flag is required", config.EnvDatabaseURL)
	}

	var runID uuid.UUID
	if showRunID != "" {
		id, err := uuid.Parse(showRunID)
		if err != nil {
			return fmt.Errorf("invalid run id format: %w", err)
		}
		runID = id
	}
	if showRunDel && runID == uuid.Nil {
		return fmt.Errorf("--delete requires --run-id")
	}

	ctx := commandContext(cmd)
	database, err := db.Connect(ctx, dbURL)
	if err != nil {
		return err
	}
	defer database.Close()

	out := cmd.OutOrStdout()
	printer := observability.NewPrinter(out)
	switch {
	case runID == uuid.Nil:
		return listRuns(ctx, database, printer, showRunLimit)
	case showRunDel:
		return deleteRun(ctx, database, runID, out)
	default:
		return showRun(ctx, database, printer, runID, out)
	}
}

func listRuns(ctx context.Context, database runStore, printer *observability.Printer, limit int) error {
	runs, err := database.ListRuns(ctx, limit)
	if err != nil {
		return err
	}
	printer.PrintRuns(runs)
	return nil
}

func deleteRun(ctx context.Context, database runStore, runID uuid.UUID, out io.Writer) error {
	if err := database.DeleteRun(ctx, runID); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Deleted run %s\n", runID)
	return nil
}

func showRun(ctx context.Context, database runStore, printer *observability.Printer, runID uuid.UUID, out io.Writer) error {
	run, err := database.GetRun(ctx, runID)
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("run not found: %s", runID)
	}
	printer.PrintRun(run)

	runSteps, err := database.ListRunSteps(ctx, runID)
	if err != nil {
		return err
	}
	printer.PrintRunSteps(runSteps)
	_, _ = fmt.Fprintln(out)

	artifacts, err := database.ListArtifacts(ctx, runID)
	if err != nil {
		return err
	}
	printer.PrintArtifacts(artifacts)
	_, _ = fmt.Fprintln(out)

	sample, err := database.GetSampleBriefByRunID(ctx, runID)
	if err != nil {
		return err
	}
	printer.PrintCampaignBrief("Sample campaign brief", sample)

	findings, err := database.GetMarketResearchByRunID(ctx, runID)
	if err != nil {
		return err
	}
	if findings != nil {
		printer.PrintResearch(findings)
		printer.PrintCitations(findings.Citations)
	}

	brief, err := database.GetCampaignBriefByRunID(ctx, runID)
	if err != nil {
		return err
	}
	printer.PrintCampaignBrief("New campaign brief", brief)

	bundle, err := database.GetAdCopyByRunID(ctx, runID)
	if err != nil {
		return err
	}
	if bundle != nil {
		var countries []string
		if brief != nil {
			countries = brief.TargetCountries
		}
		printer.PrintAdCopy(bundle, countries)
	}

	storyboard, err := database.GetStoryboardByRunID(ctx, runID)
	if err != nil {
		return err
	}
	printer.PrintStoryboard(storyboard)
	return nil
}
