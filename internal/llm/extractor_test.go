package llm

import (
	"encoding/json"
	"testing"

	"github.com/jonathan/campaign-pipeline/internal/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestCampaignBriefSchema_Fields(t *testing.T) {
	schema := CampaignBriefSchema()

	assert.Equal(t, []string{
		"campaign_name",
		"campaign_objectives",
		"target_audience",
		"media_strategy",
		"timeline",
		"target_countries",
		"performance_metrics",
	}, schema.FieldNames())
}

func TestResponseSchema_AllFieldsRequiredAndOrdered(t *testing.T) {
	schema := CampaignBriefSchema()
	rs := schema.ResponseSchema()

	assert.Equal(t, genai.TypeObject, rs.Type)
	assert.Equal(t, schema.FieldNames(), rs.Required)
	assert.Equal(t, schema.FieldNames(), rs.PropertyOrdering)

	require.Contains(t, rs.Properties, "campaign_name")
	assert.Equal(t, genai.TypeString, rs.Properties["campaign_name"].Type)

	require.Contains(t, rs.Properties, "target_countries")
	countries := rs.Properties["target_countries"]
	assert.Equal(t, genai.TypeArray, countries.Type)
	require.NotNil(t, countries.Items)
	assert.Equal(t, genai.TypeString, countries.Items.Type)
}

func TestJSONSchema_IsValidDocument(t *testing.T) {
	for _, schema := range []ExtractionSchema{CampaignBriefSchema(), AdCopySchema()} {
		t.Run(schema.Name, func(t *testing.T) {
			var doc map[string]any
			require.NoError(t, json.Unmarshal([]byte(schema.JSONSchema()), &doc))
			assert.Equal(t, "object", doc["type"])
			assert.Len(t, doc["required"], len(schema.Fields))
		})
	}
}

func TestJSONSchema_ValidatesAdCopy(t *testing.T) {
	schema := AdCopySchema()

	valid := `{"ad_copy_options":["a"],"localization_notes":["b"],"visual_description":["c"]}`
	assert.NoError(t, schemas.ValidateJSONString(schema.JSONSchema(), valid))

	missing := `{"ad_copy_options":["a"],"localization_notes":["b"]}`
	err := schemas.ValidateJSONString(schema.JSONSchema(), missing)
	var validationErr *schemas.ValidationError
	require.ErrorAs(t, err, &validationErr)

	wrongType := `{"ad_copy_options":"a","localization_notes":["b"],"visual_description":["c"]}`
	require.ErrorAs(t, schemas.ValidateJSONString(schema.JSONSchema(), wrongType), &validationErr)
}

func TestSchemaByName(t *testing.T) {
	schema, ok := SchemaByName("campaign_brief")
	require.True(t, ok)
	assert.Equal(t, "CampaignBrief", schema.Name)

	schema, ok = SchemaByName("AdCopy")
	require.True(t, ok)
	assert.Equal(t, "AdCopy", schema.Name)

	_, ok = SchemaByName("unknown")
	assert.False(t, ok)
}
