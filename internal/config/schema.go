package config

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// Schema returns the JSON schema of the configuration file.
func Schema() ([]byte, error) {
	r := &jsonschema.Reflector{
		FieldNameTag: "yaml",
	}
	schema := r.Reflect(&Config{})

	schema.ID = "https://github.com/uoon-dev/sancho/config.schema.json"
	schema.Title = "Sancho Configuration"
	schema.Description = "Configuration schema for sancho, an edge-attached sheet driven by drag gestures"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}
