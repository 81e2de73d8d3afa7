// Package llm - extractor.go declares the structured-output schemas used for
// schema-constrained model calls.
package llm

import (
	"encoding/json"

	"google.golang.org/genai"
)

// FieldType is the JSON type of an extracted field
type FieldType string

const (
	// FieldString is a single string value
	FieldString FieldType = "string"
	// FieldStringList is an ordered list of strings
	FieldStringList FieldType = "[]string"
)

// ExtractionSchema defines the structure a model response must conform to.
// Every field is required; partial extraction is not supported.
type ExtractionSchema struct {
	Name        string        // Schema name (e.g., "CampaignBrief")
	Description string        // What the object represents
	Fields      []SchemaField // Fields in output order
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string    // JSON field name
	Type        FieldType // Defaults to FieldString
	Description string    // Description for the model
}

// FieldNames returns the field names in declaration order
func (s ExtractionSchema) FieldNames() []string {
	names := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		names = append(names, f.Name)
	}
	return names
}

// ResponseSchema converts the schema to the model's structured-output schema
func (s ExtractionSchema) ResponseSchema() *genai.Schema {
	properties := make(map[string]*genai.Schema, len(s.Fields))
	for _, f := range s.Fields {
		prop := &genai.Schema{Description: f.Description}
		if f.Type == FieldStringList {
			prop.Type = genai.TypeArray
			prop.Items = &genai.Schema{Type: genai.TypeString}
		} else {
			prop.Type = genai.TypeString
		}
		properties[f.Name] = prop
	}

	return &genai.Schema{
		Type:             genai.TypeObject,
		Title:            s.Name,
		Description:      s.Description,
		Properties:       properties,
		Required:         s.FieldNames(),
		PropertyOrdering: s.FieldNames(),
	}
}

// JSONSchema renders the schema as a draft-07 JSON Schema document
func (s ExtractionSchema) JSONSchema() string {
	properties := make(map[string]any, len(s.Fields))
	for _, f := range s.Fields {
		if f.Type == FieldStringList {
			properties[f.Name] = map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			}
		} else {
			properties[f.Name] = map[string]any{"type": "string"}
		}
	}

	doc := map[string]any{
		"$schema":    "http://json-schema.org/draft-07/schema#",
		"title":      s.Name,
		"type":       "object",
		"properties": properties,
		"required":   s.FieldNames(),
	}

	data, err := json.Marshal(doc)
	if err != nil {
		// maps of strings always marshal
		panic(err)
	}
	return string(data)
}

// --- Predefined Schemas ---

// CampaignBriefSchema returns the schema for a marketing campaign brief.
func CampaignBriefSchema() ExtractionSchema {
	return ExtractionSchema{
		Name:        "CampaignBrief",
		Description: "A marketing campaign brief",
		Fields: []SchemaField{
			{Name: "campaign_name", Type: FieldString, Description: "Name of the campaign"},
			{Name: "campaign_objectives", Type: FieldStringList, Description: "Campaign objectives, most important first"},
			{Name: "target_audience", Type: FieldString, Description: "Who the campaign is aimed at"},
			{Name: "media_strategy", Type: FieldStringList, Description: "Channels and tactics"},
			{Name: "timeline", Type: FieldString, Description: "Campaign timeline"},
			{Name: "target_countries", Type: FieldStringList, Description: "Target markets"},
			{Name: "performance_metrics", Type: FieldStringList, Description: "KPIs used to measure success"},
		},
	}
}

// AdCopySchema returns the schema for localized ad copy, one entry per market.
func AdCopySchema() ExtractionSchema {
	return ExtractionSchema{
		Name:        "AdCopy",
		Description: "Localized ad copy, one list entry per target market in market order",
		Fields: []SchemaField{
			{Name: "ad_copy_options", Type: FieldStringList, Description: "Ad copy for each market"},
			{Name: "localization_notes", Type: FieldStringList, Description: "Localization notes for each market"},
			{Name: "visual_description", Type: FieldStringList, Description: "Visual description for each market"},
		},
	}
}

// SchemaByName returns a predefined schema by its name or its snake_case alias
func SchemaByName(name string) (ExtractionSchema, bool) {
	switch name {
	case "CampaignBrief", "campaign_brief":
		return CampaignBriefSchema(), true
	case "AdCopy", "ad_copy":
		return AdCopySchema(), true
	default:
		return ExtractionSchema{}, false
	}
}
