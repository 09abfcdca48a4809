package schemas

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// Names of the bundled schemas.
const (
	ExtractedResumeData = "extracted_resume_data"
	VerificationResult  = "verification_result"
)

//go:embed json/*.schema.json
var bundled embed.FS

var (
	compiledMu sync.Mutex
	compiled   = map[string]*gojsonschema.Schema{}
)

// Schema returns the raw JSON of a bundled schema.
func Schema(name string) ([]byte, error) {
	data, err := bundled.ReadFile(path.Join("json", name+".schema.json"))
	if err != nil {
		return nil, &SchemaLoadError{Path: name, Message: "unknown schema", Cause: err}
	}
	return data, nil
}

func load(name string) (*gojsonschema.Schema, error) {
	compiledMu.Lock()
	defer compiledMu.Unlock()

	if s, ok := compiled[name]; ok {
		return s, nil
	}
	raw, err := Schema(name)
	if err != nil {
		return nil, err
	}
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, &SchemaLoadError{Path: name, Message: "invalid schema", Cause: err}
	}
	compiled[name] = s
	return s, nil
}

// Validate checks a JSON payload against the named bundled schema.
func Validate(name string, payload []byte) error {
	s, err := load(name)
	if err != nil {
		return err
	}
	result, err := s.Validate(gojsonschema.NewBytesLoader(payload))
	if err != nil {
		return fmt.Errorf("failed to read %s payload: %w", name, err)
	}
	return toValidationError(name, result)
}

// ValidateValue marshals v and validates it against the named bundled schema.
func ValidateValue(name string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", name, err)
	}
	return Validate(name, payload)
}

// ValidateExtractedData validates an ExtractedResumeData payload.
func ValidateExtractedData(payload []byte) error {
	return Validate(ExtractedResumeData, payload)
}

// ValidateVerificationResult validates a VerificationResult payload.
func ValidateVerificationResult(payload []byte) error {
	return Validate(VerificationResult, payload)
}
