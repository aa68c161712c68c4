package typeforge

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Bind decodes a validation result's converted document into a Go
// struct. The result must come from a run with conversion enabled; an
// invalid result returns its violations as the error.
func Bind[T any](res ValidationResult) (T, error) {
	var out T
	if !res.Valid {
		return out, res.Err()
	}
	if res.Converted == nil {
		return out, fmt.Errorf("bind %T: result carries no converted document", out)
	}
	return BindValue[T](res.Converted)
}

// BindValue decodes a keyed document into a Go struct. Field names match
// case-insensitively; mapstructure tags override.
func BindValue[T any](doc any) (T, error) {
	var out T
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{Result: &out})
	if err != nil {
		return out, fmt.Errorf("bind %T: %w", out, err)
	}
	if err := dec.Decode(doc); err != nil {
		return out, fmt.Errorf("bind %T: %w", out, err)
	}
	return out, nil
}
