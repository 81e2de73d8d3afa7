// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/campaign-pipeline/internal/llm"
)

// Environment variables consulted for unset values
const (
	EnvProject     = "GOOGLE_CLOUD_PROJECT"
	EnvRegion      = "GOOGLE_CLOUD_REGION"
	EnvModel       = "GEMINI_MODEL"
	EnvAPIKey      = "GEMINI_API_KEY"
	EnvDatabaseURL = "DATABASE_URL"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use flags, environment or defaults.
type Config struct {
	// Model endpoint
	Backend     string   `json:"backend,omitempty" validate:"omitempty,oneof=vertexai gemini"` // vertexai or gemini
	Project     string   `json:"project,omitempty"`                                            // Google Cloud project
	Location    string   `json:"location,omitempty"`                                           // Vertex AI region
	Model       string   `json:"model,omitempty"`                                              // Model identifier
	APIKey      string   `json:"api_key,omitempty"`                                            // Gemini API key
	Temperature *float32 `json:"temperature,omitempty" validate:"omitempty,gte=0,lte=2"`       // Sampling temperature
	CallTimeout string   `json:"call_timeout,omitempty"`                                       // Per-call timeout, e.g. "2m"

	// Inputs
	Brief          string `json:"brief,omitempty"`           // gs://, https:// or local path to the sample brief
	BriefMIMEType  string `json:"brief_mime_type,omitempty"` // Overrides media type detection
	ProductFile    string `json:"product_file,omitempty"`    // YAML product details; built-in sample when empty
	ResearchPrompt string `json:"research_prompt,omitempty"` // Overrides the built-in research questions

	// Behavior
	DatabaseURL string `json:"database_url,omitempty"`                                               // PostgreSQL URL for run artifacts
	LogLevel    string `json:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"` // Log level
	LogFormat   string `json:"log_format,omitempty" validate:"omitempty,oneof=console json"`         // Log format
	Verbose     bool   `json:"verbose,omitempty"`                                                    // Print full stage output
}

// Defaults returns the documented default values
func Defaults() Config {
	return Config{
		Location:  llm.DefaultLocation,
		Model:     llm.DefaultModel,
		LogLevel:  "info",
		LogFormat: "console",
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configured values are well-formed.
// Required inputs are checked separately by RequireBrief and CheckCredentials.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.CallTimeout != "" {
		d, err := time.ParseDuration(c.CallTimeout)
		if err != nil {
			return fmt.Errorf("config error: 'call_timeout' is not a duration: %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("config error: 'call_timeout' must be positive")
		}
	}

	if c.ProductFile != "" {
		if _, err := os.Stat(c.ProductFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: product file not found: %s", c.ProductFile)
		}
	}

	return nil
}

// RequireBrief checks that a source brief document was provided
func (c *Config) RequireBrief() error {
	if c.Brief == "" {
		return fmt.Errorf("a sample brief document is required (--brief or 'brief' in config)")
	}
	return nil
}

// CheckCredentials checks that the selected backend has what it needs
func (c *Config) CheckCredentials() error {
	llmCfg := c.LLMConfig()
	switch llmCfg.ResolveBackend() {
	case llm.BackendGeminiAPI:
		if c.APIKey == "" {
			return fmt.Errorf("%s environment variable or --api-key flag is required for the gemini backend", EnvAPIKey)
		}
	default:
		if c.Project == "" {
			return fmt.Errorf("%s environment variable or --project flag is required for the vertexai backend", EnvProject)
		}
	}
	return nil
}

// ApplyEnv fills empty fields from the environment using getenv
func (c *Config) ApplyEnv(getenv func(string) string) {
	if c.Project == "" {
		c.Project = getenv(EnvProject)
	}
	if c.Location == "" {
		c.Location = getenv(EnvRegion)
	}
	if c.Model == "" {
		c.Model = getenv(EnvModel)
	}
	if c.APIKey == "" {
		c.APIKey = getenv(EnvAPIKey)
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = getenv(EnvDatabaseURL)
	}
}

// MergeWithDefaults returns a new Config with empty string fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Backend == "" {
		result.Backend = defaults.Backend
	}
	if result.Project == "" {
		result.Project = defaults.Project
	}
	if result.Location == "" {
		result.Location = defaults.Location
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Temperature == nil && defaults.Temperature != nil {
		t := *defaults.Temperature
		result.Temperature = &t
	}
	if result.CallTimeout == "" {
		result.CallTimeout = defaults.CallTimeout
	}
	if result.Brief == "" {
		result.Brief = defaults.Brief
	}
	if result.BriefMIMEType == "" {
		result.BriefMIMEType = defaults.BriefMIMEType
	}
	if result.ProductFile == "" {
		result.ProductFile = defaults.ProductFile
	}
	if result.ResearchPrompt == "" {
		result.ResearchPrompt = defaults.ResearchPrompt
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// LLMConfig converts the configuration to the model client configuration
func (c *Config) LLMConfig() *llm.Config {
	return &llm.Config{
		Backend:     llm.Backend(c.Backend),
		Project:     c.Project,
		Location:    c.Location,
		APIKey:      c.APIKey,
		Model:       c.Model,
		Temperature: c.Temperature,
	}
}

// Timeout returns the parsed per-call timeout, or zero when unset
func (c *Config) Timeout() time.Duration {
	if c.CallTimeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.CallTimeout)
	if err != nil {
		return 0
	}
	return d
}
