package config

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ConfigSchema is the JSON Schema for configuration file validation
const ConfigSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "logging": {
      "type": "object",
      "properties": {
        "level": {
          "type": "string",
          "enum": ["trace", "debug", "info", "warn", "error"]
        },
        "file": {"type": "string"},
        "console": {"type": "boolean"},
        "pretty": {"type": "boolean"}
      },
      "additionalProperties": false
    },
    "gateway": {
      "type": "object",
      "properties": {
        "addr": {"type": "string", "minLength": 1},
        "shared_secret": {"type": "string"}
      },
      "additionalProperties": false
    },
    "packages": {
      "type": "object",
      "properties": {
        "enabled": {
          "type": "array",
          "items": {"type": "string", "minLength": 1}
        }
      },
      "additionalProperties": false
    },
    "history": {
      "type": "object",
      "properties": {
        "enabled": {"type": "boolean"},
        "path": {"type": "string"}
      },
      "additionalProperties": false
    },
    "data_dir": {"type": "string"}
  },
  "additionalProperties": false
}`

// ValidateBytes checks a raw configuration document against the schema before
// it is unmarshaled, so a typo in the file is reported with its field path.
func ValidateBytes(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(ConfigSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("failed to validate config: %w", err)
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return fmt.Errorf("invalid config: %s", strings.Join(details, "; "))
	}
	return nil
}
