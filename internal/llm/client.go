package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/campaign-pipeline/internal/types"
	"google.golang.org/genai"
)

// Attachment is a document passed to the model alongside the prompt.
// Either URI or Data is set; MIMEType is always required.
type Attachment struct {
	URI      string
	MIMEType string
	Data     []byte
}

// Request is a single model call
type Request struct {
	Prompt      string
	Attachments []Attachment
	// Schema constrains the response to JSON matching the schema when set
	Schema *ExtractionSchema
	// Grounding lets the model consult web search while generating
	Grounding bool
}

// Result is the raw model response
type Result struct {
	Text      string
	Citations []types.Citation
}

// Client is an abstraction over the hosted model endpoint
type Client interface {
	// Generate issues one model call and waits for the response
	Generate(ctx context.Context, req *Request) (*Result, error)
	// Model returns the model identifier used for calls
	Model() string
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a new client based on configuration
func NewClient(ctx context.Context, config *Config) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	return NewGeminiClient(ctx, config)
}

// GeminiClient implements Client for Gemini models on Vertex AI or the Gemini API
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config) (*GeminiClient, error) {
	clientConfig := &genai.ClientConfig{}

	switch config.ResolveBackend() {
	case BackendGeminiAPI:
		if config.APIKey == "" {
			return nil, fmt.Errorf("API key is required for the %s backend", BackendGeminiAPI)
		}
		clientConfig.Backend = genai.BackendGeminiAPI
		clientConfig.APIKey = config.APIKey
	default:
		if config.Project == "" {
			return nil, fmt.Errorf("project is required for the %s backend", BackendVertexAI)
		}
		location := config.Location
		if location == "" {
			location = DefaultLocation
		}
		clientConfig.Backend = genai.BackendVertexAI
		clientConfig.Project = config.Project
		clientConfig.Location = location
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// Generate issues one model call
func (c *GeminiClient) Generate(ctx context.Context, req *Request) (*Result, error) {
	if req == nil || strings.TrimSpace(req.Prompt) == "" {
		return nil, fmt.Errorf("prompt is required")
	}

	contents, err := buildContents(req)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.config.GetModel(), contents, c.buildGenerateConfig(req))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return nil, err
	}

	return &Result{
		Text:      text,
		Citations: extractCitations(resp.Candidates[0].GroundingMetadata),
	}, nil
}

// Model returns the model identifier used for calls
func (c *GeminiClient) Model() string {
	return c.config.GetModel()
}

// Close releases resources held by the client. The underlying genai client holds
// no closable resources.
func (c *GeminiClient) Close() error {
	return nil
}

// buildContents places attachments before the prompt text, in request order
func buildContents(req *Request) ([]*genai.Content, error) {
	parts := make([]*genai.Part, 0, len(req.Attachments)+1)
	for i, att := range req.Attachments {
		if att.MIMEType == "" {
			return nil, fmt.Errorf("attachment %d: media type is required", i)
		}
		switch {
		case len(att.Data) > 0:
			parts = append(parts, genai.NewPartFromBytes(att.Data, att.MIMEType))
		case att.URI != "":
			parts = append(parts, genai.NewPartFromURI(att.URI, att.MIMEType))
		default:
			return nil, fmt.Errorf("attachment %d: either a URI or inline data is required", i)
		}
	}
	parts = append(parts, genai.NewPartFromText(req.Prompt))

	return []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}, nil
}

func (c *GeminiClient) buildGenerateConfig(req *Request) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{}
	if c.config.Temperature != nil {
		config.Temperature = genai.Ptr(*c.config.Temperature)
	}
	if req.Schema != nil {
		config.ResponseMIMEType = "application/json"
		config.ResponseSchema = req.Schema.ResponseSchema()
	}
	if req.Grounding {
		config.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}
	return config
}

// extractTextFromResponse concatenates the text parts of the first candidate
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if part != nil && part.Text != "" {
			parts = append(parts, part.Text)
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}

// extractCitations returns one citation per grounding chunk, in chunk order.
// A web record takes precedence over a retrieved-context record; chunks carrying
// neither are skipped.
func extractCitations(meta *genai.GroundingMetadata) []types.Citation {
	if meta == nil {
		return nil
	}

	var citations []types.Citation
	for _, chunk := range meta.GroundingChunks {
		if chunk == nil {
			continue
		}
		switch {
		case chunk.Web != nil:
			citations = append(citations, types.Citation{
				Title:  chunk.Web.Title,
				URI:    chunk.Web.URI,
				Source: types.CitationWeb,
			})
		case chunk.RetrievedContext != nil:
			citations = append(citations, types.Citation{
				Title:  chunk.RetrievedContext.Title,
				URI:    chunk.RetrievedContext.URI,
				Source: types.CitationRetrievedContext,
			})
		}
	}
	return citations
}
