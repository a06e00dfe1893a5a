package config

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// configSchema describes the config.json layout. Validation catches typos
// (a string where a number belongs, an unknown field) before a half-parsed
// config silently falls back to defaults.
const configSchema = `{
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"api_key":         {"type": "string"},
		"api_url":         {"type": "string"},
		"model":           {"type": "string"},
		"db_path":         {"type": "string"},
		"collection":      {"type": "string"},
		"top_k":           {"type": "integer", "minimum": 1, "maximum": 100},
		"engine_bin":      {"type": "string"},
		"engine_args":     {"type": "array", "items": {"type": "string"}},
		"auto_index":      {"type": "boolean"},
		"timeout_seconds": {"type": "integer", "minimum": 1}
	}
}`

// ValidationError reports config fields that failed schema validation.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: %s", strings.Join(e.Errors, "; "))
}

// validate checks raw config JSON against the schema.
func validate(data []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(configSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}

	if !result.Valid() {
		var errorMsgs []string
		for _, err := range result.Errors() {
			errorMsgs = append(errorMsgs, err.String())
		}
		return &ValidationError{Errors: errorMsgs}
	}

	return nil
}
