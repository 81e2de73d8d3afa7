package extraction

import (
	"errors"
	"fmt"

	"github.com/jonathan/campaign-pipeline/internal/schemas"
)

// UpstreamError represents a remote model call that could not be completed
type UpstreamError struct {
	Stage   string
	Message string
	Cause   error
}

func (e *UpstreamError) Error() string {
	prefix := "upstream call failed"
	if e.Stage != "" {
		prefix = fmt.Sprintf("upstream call failed in %s", e.Stage)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return e.Cause
}

// SchemaValidationError represents a completed call whose content does not
// satisfy the declared output schema
type SchemaValidationError struct {
	Schema  string
	Message string
	Fields  []schemas.FieldError
	Cause   error
}

func (e *SchemaValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("schema validation failed for %s: %s: %v", e.Schema, e.Message, e.Cause)
	}
	return fmt.Sprintf("schema validation failed for %s: %s", e.Schema, e.Message)
}

func (e *SchemaValidationError) Unwrap() error {
	return e.Cause
}

// IsUpstream reports whether err is or wraps an UpstreamError
func IsUpstream(err error) bool {
	var target *UpstreamError
	return errors.As(err, &target)
}

// IsSchemaValidation reports whether err is or wraps a SchemaValidationError
func IsSchemaValidation(err error) bool {
	var target *SchemaValidationError
	return errors.As(err, &target)
}
