// Package schemas validates extraction and verification payloads against JSON Schema.
package schemas

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xeipuuv/gojsonschema"
)

// ValidateFile checks the JSON document at payloadPath against the schema file at schemaPath.
// Errors name the schema by its base file name.
func ValidateFile(schemaPath, payloadPath string) error {
	schema, err := os.ReadFile(schemaPath)
	if err != nil {
		return &SchemaLoadError{Path: schemaPath, Message: "cannot read schema file", Cause: err}
	}
	payload, err := os.ReadFile(payloadPath)
	if err != nil {
		return fmt.Errorf("failed to read payload: %w", err)
	}
	return ValidateBytes(filepath.Base(schemaPath), schema, payload)
}

// ValidateBytes compiles schema and checks payload against it. label identifies the schema
// in returned errors.
func ValidateBytes(label string, schema, payload []byte) error {
	compiledSchema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schema))
	if err != nil {
		return &SchemaLoadError{Path: label, Message: "invalid schema", Cause: err}
	}
	result, err := compiledSchema.Validate(gojsonschema.NewBytesLoader(payload))
	if err != nil {
		return fmt.Errorf("failed to read %s payload: %w", label, err)
	}
	return toValidationError(label, result)
}

// toValidationError returns nil for a valid result.
func toValidationError(schema string, result *gojsonschema.Result) error {
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Schema: schema,
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
