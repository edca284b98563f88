package persist

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// TimelineSchemaFS contains the embedded timeline document JSON schema.
//
//go:embed timeline-schema.json
var TimelineSchemaFS embed.FS

// timelineSchemaFile is the embedded schema filename.
const timelineSchemaFile = "timeline-schema.json"

// ErrSchemaViolation is returned when a document fails schema validation.
var ErrSchemaViolation = errors.New("persist: document violates timeline schema")

// ValidateDocument checks a decoded document against the timeline schema.
// On failure it returns ErrSchemaViolation wrapped with the individual
// violations.
func ValidateDocument(doc map[string]any) error {
	schemaBytes, err := TimelineSchemaFS.ReadFile(timelineSchemaFile)
	if err != nil {
		return fmt.Errorf("read embedded schema: %w", err)
	}

	schemaLoader := gojsonschema.NewBytesLoader(schemaBytes)
	docLoader := gojsonschema.NewGoLoader(doc)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}

	if result.Valid() {
		return nil
	}

	violations := make([]string, 0, len(result.Errors()))
	for _, verr := range result.Errors() {
		violations = append(violations, fmt.Sprintf("%s: %s", verr.Field(), verr.Description()))
	}

	return fmt.Errorf("%w: %s", ErrSchemaViolation, strings.Join(violations, "; "))
}
