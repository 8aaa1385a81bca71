// Package schemas gates generated structured artifacts on JSON Schema before
// any deterministic invariant checking runs. The schema is embedded so the
// binary needs no schema files on disk.
package schemas

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed compose_resume.schema.json
var composeResumeSchema string

// ValidationError reports a well-formed JSON document that violates the
// schema. Each entry pairs a field path with what the schema required there.
type ValidationError struct {
	Errors []FieldError
}

// FieldError is one schema violation at one field path.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	parts := make([]string, len(ve.Errors))
	for i, fe := range ve.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "schema validation failed: " + strings.Join(parts, "; ")
}

// ValidateComposeResume checks generated resume JSON against the embedded
// compose schema. Malformed JSON and schema violations both return a
// *ValidationError.
func ValidateComposeResume(jsonContent string) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(composeResumeSchema),
		gojsonschema.NewStringLoader(jsonContent),
	)
	if err != nil {
		// gojsonschema reports unparseable documents here rather than as
		// schema violations.
		return &ValidationError{Errors: []FieldError{{
			Field:   "(document)",
			Message: fmt.Sprintf("not a readable JSON document: %v", err),
		}}}
	}
	if result.Valid() {
		return nil
	}

	ve := &ValidationError{Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		ve.Errors = append(ve.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return ve
}
