// Package types provides type definitions for structured data used throughout the campaign pipeline.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"bytes"
	"encoding/json"

	"github.com/go-playground/validator/v10"
)

// CampaignBrief is the structured marketing campaign brief extracted from a document
// or synthesized from research. List order is significant and preserved.
type CampaignBrief struct {
	CampaignName       string   `json:"campaign_name"`
	CampaignObjectives []string `json:"campaign_objectives" validate:"required"`
	TargetAudience     string   `json:"target_audience"`
	MediaStrategy      []string `json:"media_strategy" validate:"required"`
	Timeline           string   `json:"timeline"`
	TargetCountries    []string `json:"target_countries" validate:"required"`
	PerformanceMetrics []string `json:"performance_metrics" validate:"required"`
}

// Validate checks that every list field was present in the decoded payload.
func (b *CampaignBrief) Validate() error {
	validate := validator.New()
	return validate.Struct(b)
}

// JSON returns the canonical indented JSON rendering of the brief.
// Non-ASCII characters and HTML-significant characters are written as-is.
func (b *CampaignBrief) JSON() string {
	return marshalIndent(b)
}

func marshalIndent(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		// structs of strings and string slices always encode
		panic(err)
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}
