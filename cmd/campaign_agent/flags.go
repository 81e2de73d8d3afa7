package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jonathan/campaign-pipeline/internal/config"
	"github.com/jonathan/campaign-pipeline/internal/ingestion"
	"github.com/jonathan/campaign-pipeline/internal/llm"
	"github.com/jonathan/campaign-pipeline/internal/logging"
	"github.com/jonathan/campaign-pipeline/internal/types"
	"github.com/spf13/cobra"
)

// modelFlags are the flags shared by every command that calls the model
type modelFlags struct {
	configPath  string
	backend     string
	project     string
	location    string
	model       string
	apiKey      string
	temperature float32
	timeout     string
	logLevel    string
	logFormat   string
	verbose     bool
}

func (f *modelFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()

	// Config file flag (processed first)
	fs.StringVar(&f.configPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	fs.StringVar(&f.backend, "backend", "", "Model backend: vertexai or gemini (gemini when only an API key is available)")
	fs.StringVar(&f.project, "project", "", "Google Cloud project (defaults to "+config.EnvProject+" env var)")
	fs.StringVar(&f.location, "location", "", "Vertex AI region (defaults to "+config.EnvRegion+" env var, then "+llm.DefaultLocation+")")
	fs.StringVar(&f.model, "model", "", "Model name (defaults to "+config.EnvModel+" env var, then "+llm.DefaultModel+")")
	fs.StringVar(&f.apiKey, "api-key", "", "Gemini API key (defaults to "+config.EnvAPIKey+" env var)")
	fs.Float32Var(&f.temperature, "temperature", 0, "Sampling temperature (model default when not set)")
	fs.StringVar(&f.timeout, "timeout", "", "Per-call timeout, e.g. 2m (no limit when not set)")
	fs.StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.StringVar(&f.logFormat, "log-format", "", "Log format: console or json")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "Print detailed debug information")
}

// resolve builds the effective configuration from the config file, explicitly
// set flags, the environment and the defaults, in that order of precedence.
// extra applies command-specific flag overrides.
func (f *modelFlags) resolve(cmd *cobra.Command, getenv func(string) string, extra func(*config.Config)) (*config.Config, error) {
	var cfg config.Config
	if f.configPath != "" {
		loaded, err := config.LoadConfig(f.configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	// Only override if the flag was explicitly set
	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.Backend = f.backend
	}
	if flags.Changed("project") {
		cfg.Project = f.project
	}
	if flags.Changed("location") {
		cfg.Location = f.location
	}
	if flags.Changed("model") {
		cfg.Model = f.model
	}
	if flags.Changed("api-key") {
		cfg.APIKey = f.apiKey
	}
	if flags.Changed("temperature") {
		t := f.temperature
		cfg.Temperature = &t
	}
	if flags.Changed("timeout") {
		cfg.CallTimeout = f.timeout
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = f.logFormat
	}
	if flags.Changed("verbose") {
		cfg.Verbose = f.verbose
	}
	if extra != nil {
		extra(&cfg)
	}

	cfg.ApplyEnv(getenv)
	cfg = cfg.MergeWithDefaults(config.Defaults())

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// newLogger builds the stderr logger; verbose mode forces debug level
func newLogger(cfg *config.Config, out io.Writer) (*slog.Logger, error) {
	level := cfg.LogLevel
	if cfg.Verbose {
		level = "debug"
	}
	return logging.New(logging.Options{Level: level, Format: cfg.LogFormat, Output: out})
}

// newLLMClient creates the model client; tests replace it with a fake
var newLLMClient = func(ctx context.Context, cfg *config.Config) (llm.Client, error) {
	if err := cfg.CheckCredentials(); err != nil {
		return nil, err
	}
	client, err := llm.NewClient(ctx, cfg.LLMConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create model client: %w", err)
	}
	return client, nil
}

// loadProduct reads the configured product file or falls back to the built-in sample
func loadProduct(cfg *config.Config) (*types.ProductDetails, error) {
	if cfg.ProductFile == "" {
		return ingestion.DefaultProduct(), nil
	}
	return ingestion.LoadProduct(cfg.ProductFile)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
