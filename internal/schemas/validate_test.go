package schemas

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const personSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["person"],
	"properties": {
		"person": {
			"type": "object",
			"required": ["name"],
			"properties": {
				"name": {"type": "string"}
			}
		}
	}
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "person.schema.json", personSchema)

	tests := []struct {
		name      string
		document  string
		wantField string
	}{
		{"valid", `{"person": {"name": "Jane"}}`, ""},
		{"missing nested field", `{"person": {}}`, "person"},
		{"wrong type", `{"person": {"name": 7}}`, "person.name"},
		{"missing root field", `{}`, "(root)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jsonPath := writeFile(t, dir, "doc.json", tt.document)
			err := ValidateFile(schemaPath, jsonPath)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			require.NotEmpty(t, validationErr.Errors)
			assert.Equal(t, tt.wantField, validationErr.Errors[0].Field)
			assert.Equal(t, "person.schema.json", validationErr.Schema)
		})
	}
}

func TestValidateFile_MissingFiles(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "person.schema.json", personSchema)
	jsonPath := writeFile(t, dir, "doc.json", `{}`)

	err := ValidateFile(filepath.Join(dir, "nope.schema.json"), jsonPath)
	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.ErrorIs(t, err, os.ErrNotExist)

	err = ValidateFile(schemaPath, filepath.Join(dir, "nope.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.False(t, errors.As(err, &loadErr))
}

func TestValidateFile_MalformedDocument(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "person.schema.json", personSchema)
	jsonPath := writeFile(t, dir, "bad.json", "{ invalid json }")

	err := ValidateFile(schemaPath, jsonPath)
	require.Error(t, err)
	var validationErr *ValidationError
	assert.False(t, errors.As(err, &validationErr))
}

func TestValidateFile_BundledSchemaOnDisk(t *testing.T) {
	dir := t.TempDir()
	raw, err := Schema(VerificationResult)
	require.NoError(t, err)
	schemaPath := writeFile(t, dir, "verification_result.schema.json", string(raw))

	ok := writeFile(t, dir, "ok.json", `{"preserved": true, "missingEntities": [], "modifiedEntities": []}`)
	assert.NoError(t, ValidateFile(schemaPath, ok))

	bad := writeFile(t, dir, "bad.json", `{"preserved": true, "modifiedEntities": []}`)
	var validationErr *ValidationError
	require.ErrorAs(t, ValidateFile(schemaPath, bad), &validationErr)
	assert.Equal(t, "verification_result.schema.json", validationErr.Schema)
}

func TestValidateBytes(t *testing.T) {
	assert.NoError(t, ValidateBytes("person", []byte(personSchema), []byte(`{"person": {"name": "Jane"}}`)))

	err := ValidateBytes("person", []byte(personSchema), []byte(`{"age": 30}`))
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.NotEmpty(t, validationErr.Errors)

	err = ValidateBytes("broken", []byte(`{"type": 12}`), []byte(`{}`))
	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "broken", loadErr.Path)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Schema: ExtractedResumeData,
		Errors: []FieldError{
			{Field: "entities.0.confidence", Message: "Must be less than or equal to 1"},
			{Field: "rawText", Message: "rawText is required"},
		},
	}

	msg := err.Error()
	assert.Contains(t, msg, "extracted_resume_data validation failed")
	assert.Contains(t, msg, "1. entities.0.confidence")
	assert.Contains(t, msg, "2. rawText")
}

func TestSchemaLoadError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &SchemaLoadError{Path: "x", Message: "invalid schema", Cause: cause}
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to load schema x: invalid schema: boom", err.Error())
}
