package schemas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const briefSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "campaign_name": {"type": "string"},
    "target_countries": {"type": "array", "items": {"type": "string"}}
  },
  "required": ["campaign_name", "target_countries"]
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValidateJSONString_Valid(t *testing.T) {
	err := ValidateJSONString(briefSchema, `{"campaign_name":"X","target_countries":["US","FR"]}`)
	assert.NoError(t, err)
}

func TestValidateJSONString_MissingField(t *testing.T) {
	err := ValidateJSONString(briefSchema, `{"campaign_name":"X"}`)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	require.Len(t, validationErr.Errors, 1)
	assert.Equal(t, "(root)", validationErr.Errors[0].Field)
	assert.Contains(t, validationErr.Errors[0].Message, "target_countries")
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidateJSONString_WrongType(t *testing.T) {
	err := ValidateJSONString(briefSchema, `{"campaign_name":"X","target_countries":"US"}`)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Equal(t, "target_countries", validationErr.Errors[0].Field)
}

func TestValidateJSONString_MalformedDocument(t *testing.T) {
	err := ValidateJSONString(briefSchema, `{ invalid json }`)
	require.Error(t, err)

	var docErr *DocumentError
	require.ErrorAs(t, err, &docErr)
	assert.Contains(t, err.Error(), "not valid JSON")
}

func TestValidateJSONString_MalformedSchema(t *testing.T) {
	err := ValidateJSONString(`{"type": 42}`, `{}`)
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "(string schema)", loadErr.Path)
}

func TestValidateJSON_Files(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "brief.schema.json", briefSchema)
	validPath := writeFile(t, dir, "valid.json", `{"campaign_name":"X","target_countries":[]}`)
	invalidPath := writeFile(t, dir, "invalid.json", `{"target_countries":[]}`)

	assert.NoError(t, ValidateJSON(schemaPath, validPath))

	err := ValidateJSON(schemaPath, invalidPath)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateJSON_NonExistentFiles(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "brief.schema.json", briefSchema)

	err := ValidateJSON(filepath.Join(dir, "missing.schema.json"), schemaPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	err = ValidateJSON(schemaPath, filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()
	validPath := writeFile(t, dir, "valid.json", `{"campaign_name":"X","target_countries":["US"]}`)

	assert.NoError(t, ValidateFile(briefSchema, validPath))

	err := ValidateFile(briefSchema, filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestResolveSchemaPath(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "brief.schema.json", briefSchema)

	assert.Equal(t, path, ResolveSchemaPath(path))
	assert.Empty(t, ResolveSchemaPath(filepath.Join(dir, "nope.json")))
}
