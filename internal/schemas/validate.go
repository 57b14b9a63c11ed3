// Package schemas provides JSON Schema validation for the structured files the CLI writes.
package schemas

import (
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"

	rootschemas "github.com/jonathan/resume-ranker/schemas"
)

// ValidateRankedResults validates a ranked results JSON document against the embedded schema
func ValidateRankedResults(data []byte) error {
	return validate(rootschemas.RankedResultsFile, gojsonschema.NewBytesLoader(rootschemas.RankedResults), gojsonschema.NewBytesLoader(data))
}

// ValidateRankedResultsFile validates a ranked results JSON file on disk
func ValidateRankedResultsFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("JSON file not found: %s", path)
		}
		return fmt.Errorf("failed to read JSON file %s: %w", path, err)
	}
	return ValidateRankedResults(data)
}

func validate(name string, schemaLoader, documentLoader gojsonschema.JSONLoader) error {
	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Name:    name,
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}

	if result.Valid() {
		return nil
	}

	// Build structured error
	validationErr := &ValidationError{
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
