// Package jsonschema holds a minimal JSON Schema document model used for
// exporting and importing validation schemas.
package jsonschema

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// Schema is a minimal JSON Schema representation. Only the vocabulary
// the exporter emits is modeled; extend incrementally as needed.
type Schema struct {
	// Core
	Type   string `json:"type,omitempty"`
	Format string `json:"format,omitempty"`

	// Object
	Properties map[string]*Schema `json:"properties,omitempty"`
	Required   []string           `json:"required,omitempty"`

	// Array
	Items *Schema `json:"items,omitempty"`

	// Union
	OneOf []*Schema `json:"oneOf,omitempty"`
}

// Parse reads a JSON Schema document from raw JSON.
func Parse(data []byte) (*Schema, error) {
	var s Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse json schema: %w", err)
	}
	return &s, nil
}
