// Package research performs web-grounded market research through the model.
package research

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/campaign-pipeline/internal/extraction"
	"github.com/jonathan/campaign-pipeline/internal/llm"
	"github.com/jonathan/campaign-pipeline/internal/types"
)

// Run sends prompt with web-search grounding enabled and returns the answer text
// with the sources the model cited, in the order the model reported them.
// Only upstream failures are possible; there is no schema to violate.
func Run(ctx context.Context, client llm.Client, stage, prompt string) (*types.MarketResearch, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, fmt.Errorf("%s: research prompt is empty", stage)
	}

	result, err := client.Generate(ctx, &llm.Request{
		Prompt:    prompt,
		Grounding: true,
	})
	if err != nil {
		return nil, &extraction.UpstreamError{
			Stage:   stage,
			Message: "grounded research call failed",
			Cause:   err,
		}
	}

	citations := result.Citations
	if citations == nil {
		citations = []types.Citation{}
	}

	return &types.MarketResearch{
		Text:      result.Text,
		Citations: citations,
	}, nil
}

// Sources renders citations as a numbered list, one per line: "1. Title (uri)"
func Sources(citations []types.Citation) string {
	var sb strings.Builder
	for i, c := range citations {
		sb.WriteString(fmt.Sprintf("%d. %s (%s)\n", i+1, c.Title, c.URI))
	}
	return sb.String()
}
