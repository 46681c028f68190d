// Package profile loads, validates, and saves the candidate profile that
// drives job scoring and resume generation.
package profile

import (
	_ "embed"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/ats-optimizer/internal/types"
)

//go:embed schema.json
var profileSchema string

// Load reads a YAML profile from disk and validates it structurally.
func Load(path string) (*types.CandidateProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "read failed", Cause: err}
	}

	var profile types.CandidateProfile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, &LoadError{Path: path, Message: "invalid YAML", Cause: err}
	}

	if err := Validate(&profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Save writes the profile back to disk as YAML, creating parent
// directories as needed.
func Save(profile *types.CandidateProfile, path string) error {
	data, err := yaml.Marshal(profile)
	if err != nil {
		return &LoadError{Path: path, Message: "marshal failed", Cause: err}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &LoadError{Path: path, Message: "create directory failed", Cause: err}
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &LoadError{Path: path, Message: "write failed", Cause: err}
	}
	return nil
}

// Validate checks the profile against the embedded JSON Schema.
func Validate(profile *types.CandidateProfile) error {
	document, err := json.Marshal(profile)
	if err != nil {
		return &LoadError{Path: "(in-memory profile)", Message: "marshal failed", Cause: err}
	}

	schemaLoader := gojsonschema.NewStringLoader(profileSchema)
	documentLoader := gojsonschema.NewBytesLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &LoadError{Path: "(embedded schema)", Message: "schema load failed", Cause: err}
	}
	if result.Valid() {
		return nil
	}

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
