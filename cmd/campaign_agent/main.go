// Package main provides the campaign_agent CLI, which turns a sample marketing
// brief into a new campaign brief, localized ad copy and a video storyboard.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "campaign_agent",
	Short: "Marketing campaign generation pipeline",
	Long: `campaign_agent reads a sample marketing brief, researches the target markets with
web-grounded model calls, and generates a new campaign brief, localized ad copy and a
video storyboard for a new product.`,
	SilenceUsage: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
