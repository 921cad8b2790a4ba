package report

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/spigell/ats-checker/internal/analysis"
)

//go:embed schema/result.schema.json
var resultSchema string

// FieldError is one schema violation.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every schema violation of a JSON report.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return "report does not match schema: " + strings.Join(parts, "; ")
}

// JSON marshals res and checks it against the published report schema.
func JSON(res *analysis.Result) ([]byte, error) {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	if err := ValidateJSON(data); err != nil {
		return nil, err
	}
	return data, nil
}

// Schema returns the JSON schema of the report.
func Schema() string { return resultSchema }

// ValidateJSON checks a JSON document against the report schema.
func ValidateJSON(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(resultSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("validating report: %w", err)
	}
	if result.Valid() {
		return nil
	}

	verr := &ValidationError{Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		verr.Errors = append(verr.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return verr
}
