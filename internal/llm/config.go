// Package llm provides the model client abstraction, backend configuration and the
// structured-output schemas used by the campaign pipeline.
package llm

// Backend selects which hosted endpoint serves model calls
type Backend string

const (
	// BackendVertexAI routes calls through Vertex AI using project and location
	BackendVertexAI Backend = "vertexai"
	// BackendGeminiAPI routes calls through the Gemini API using an API key
	BackendGeminiAPI Backend = "gemini"
)

const (
	// DefaultLocation is the Vertex AI region used when none is configured
	DefaultLocation = "us-central1"
	// DefaultModel is the model used when none is configured
	DefaultModel = "gemini-2.0-flash-001"
)

// Config holds the model configuration for the application
type Config struct {
	Backend     Backend
	Project     string
	Location    string
	APIKey      string
	Model       string
	Temperature *float32
}

// DefaultConfig returns the default Vertex AI configuration
func DefaultConfig() *Config {
	return &Config{
		Backend:  BackendVertexAI,
		Location: DefaultLocation,
		Model:    DefaultModel,
	}
}

// GetModel returns the configured model, falling back to DefaultModel
func (c *Config) GetModel() string {
	if c.Model == "" {
		return DefaultModel
	}
	return c.Model
}

// ResolveBackend returns the explicit backend, or infers one: an API key without
// a project means the Gemini API, everything else goes to Vertex AI.
func (c *Config) ResolveBackend() Backend {
	if c.Backend != "" {
		return c.Backend
	}
	if c.APIKey != "" && c.Project == "" {
		return BackendGeminiAPI
	}
	return BackendVertexAI
}

// WithModel returns a copy of the config using a different model
func (c *Config) WithModel(model string) *Config {
	newConfig := *c
	newConfig.Model = model
	return &newConfig
}
