package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jonathan/campaign-pipeline/internal/llm"
	"github.com/jonathan/campaign-pipeline/internal/schemas"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a JSON document against a schema",
	Long: `Validates a JSON file against a built-in schema (campaign_brief, ad_copy) or a JSON Schema file.
Exits with status 1 when the document does not conform.`,
	RunE: runValidate,
}

var (
	validateSchema string
	validateJSON   string
)

func init() {
	validateCmd.Flags().StringVarP(&validateSchema, "schema", "s", "", "Built-in schema name (campaign_brief, ad_copy) or path to a JSON Schema file (required)")
	validateCmd.Flags().StringVarP(&validateJSON, "json", "j", "", "Path to the JSON file to validate (required)")

	if err := validateCmd.MarkFlagRequired("schema"); err != nil {
		panic(fmt.Sprintf("failed to mark schema flag as required: %v", err))
	}
	if err := validateCmd.MarkFlagRequired("json"); err != nil {
		panic(fmt.Sprintf("failed to mark json flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	return validateDocument(validateSchema, validateJSON, cmd.OutOrStdout())
}

// validateDocument checks jsonPath against a named built-in schema or a schema file
func validateDocument(schemaRef, jsonPath string, out io.Writer) error {
	var err error
	if schema, ok := llm.SchemaByName(schemaRef); ok {
		err = schemas.ValidateFile(schema.JSONSchema(), jsonPath)
	} else {
		if _, statErr := os.Stat(schemaRef); statErr != nil {
			return fmt.Errorf("unknown schema %q: not a built-in schema name or a readable file", schemaRef)
		}
		err = schemas.ValidateJSON(schemaRef, jsonPath)
	}

	if err == nil {
		_, _ = fmt.Fprintln(out, "Validation passed")
		return nil
	}

	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		_, _ = fmt.Fprintln(out, "Validation failed:")
		for _, fe := range validationErr.Errors {
			_, _ = fmt.Fprintf(out, "  - %s: %s\n", fe.Field, fe.Message)
		}
		return fmt.Errorf("validation failed: %d error(s)", len(validationErr.Errors))
	}
	return fmt.Errorf("validation failed: %w", err)
}
