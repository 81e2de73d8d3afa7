// Package extraction performs schema-constrained model calls and decodes the
// response into validated entities.
package extraction

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jonathan/campaign-pipeline/internal/llm"
	"github.com/jonathan/campaign-pipeline/internal/schemas"
	"github.com/jonathan/campaign-pipeline/internal/types"
)

// Validatable is implemented by entities with struct-level checks
type Validatable interface {
	Validate() error
}

// Extract issues a schema-constrained call and decodes the response into T.
// The returned entity is nil whenever an error is returned.
func Extract[T any](ctx context.Context, client llm.Client, stage string, req *llm.Request) (*T, *llm.Result, error) {
	if req.Schema == nil {
		return nil, nil, fmt.Errorf("%s: extraction requires an output schema", stage)
	}

	result, err := client.Generate(ctx, req)
	if err != nil {
		return nil, nil, &UpstreamError{
			Stage:   stage,
			Message: "failed to generate content from model",
			Cause:   err,
		}
	}

	entity, err := Decode[T](*req.Schema, result.Text)
	if err != nil {
		return nil, result, err
	}
	return entity, result, nil
}

// Decode validates raw model text against schema and decodes it into T.
func Decode[T any](schema llm.ExtractionSchema, text string) (*T, error) {
	cleaned := llm.CleanJSONBlock(text)

	if !json.Valid([]byte(cleaned)) {
		return nil, &SchemaValidationError{
			Schema:  schema.Name,
			Message: "response is not valid JSON",
		}
	}

	if err := schemas.ValidateJSONString(schema.JSONSchema(), cleaned); err != nil {
		return nil, toSchemaValidationError(schema.Name, err)
	}

	var entity T
	if err := json.Unmarshal([]byte(cleaned), &entity); err != nil {
		return nil, &SchemaValidationError{
			Schema:  schema.Name,
			Message: "failed to decode response",
			Cause:   err,
		}
	}

	if v, ok := any(&entity).(Validatable); ok {
		if err := v.Validate(); err != nil {
			return nil, &SchemaValidationError{
				Schema:  schema.Name,
				Message: "decoded entity is incomplete",
				Cause:   err,
			}
		}
	}

	return &entity, nil
}

func toSchemaValidationError(name string, err error) error {
	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		return &SchemaValidationError{
			Schema:  name,
			Message: fmt.Sprintf("%d field error(s)", len(validationErr.Errors)),
			Fields:  validationErr.Errors,
			Cause:   err,
		}
	}
	return &SchemaValidationError{
		Schema:  name,
		Message: "response does not match schema",
		Cause:   err,
	}
}

// ExtractCampaignBrief runs a schema-constrained call for a CampaignBrief.
// Attachments (the source document) are sent before the prompt.
func ExtractCampaignBrief(ctx context.Context, client llm.Client, stage, prompt string, attachments ...llm.Attachment) (*types.CampaignBrief, error) {
	schema := llm.CampaignBriefSchema()
	brief, _, err := Extract[types.CampaignBrief](ctx, client, stage, &llm.Request{
		Prompt:      prompt,
		Attachments: attachments,
		Schema:      &schema,
	})
	return brief, err
}

// ExtractAdCopy runs a schema-constrained call for an AdCopyBundle.
func ExtractAdCopy(ctx context.Context, client llm.Client, stage, prompt string) (*types.AdCopyBundle, error) {
	schema := llm.AdCopySchema()
	bundle, _, err := Extract[types.AdCopyBundle](ctx, client, stage, &llm.Request{
		Prompt: prompt,
		Schema: &schema,
	})
	return bundle, err
}

// Generate runs an unconstrained call and returns the model text verbatim.
// Only upstream failures are possible.
func Generate(ctx context.Context, client llm.Client, stage, prompt string) (string, error) {
	result, err := client.Generate(ctx, &llm.Request{Prompt: prompt})
	if err != nil {
		return "", &UpstreamError{
			Stage:   stage,
			Message: "failed to generate content from model",
			Cause:   err,
		}
	}
	return result.Text, nil
}
