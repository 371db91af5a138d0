package persist

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed result-schema.json
var resultSchema string

// ErrSchemaViolation indicates an exported result does not match the
// result schema.
var ErrSchemaViolation = errors.New("result does not match schema")

// ValidateResult checks a JSON document against the result schema. The
// returned error wraps ErrSchemaViolation and lists every violation.
func ValidateResult(document []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(resultSchema)
	documentLoader := gojsonschema.NewBytesLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}

	if result.Valid() {
		return nil
	}

	violations := make([]string, 0, len(result.Errors()))
	for _, violation := range result.Errors() {
		violations = append(violations, violation.String())
	}

	return fmt.Errorf("%w: %s", ErrSchemaViolation, strings.Join(violations, "; "))
}
