package typeforge

import (
	"fmt"
	"sort"

	"github.com/reoring/typeforge/jsonschema"
)

// FromJSONSchema builds a validation schema from a minimal JSON Schema
// document, inverting the JSONSchema projection. Objects become keyed
// schemas over their properties (name-sorted; the required list is not
// modeled, use Opt.AllowMissing at validation time), arrays become
// sequences, and a oneOf over primitive types becomes a leaf with
// alternatives. An empty document means any value.
func FromJSONSchema(doc *jsonschema.Schema) (Schema, error) {
	if doc == nil {
		return Schema{}, fmt.Errorf("nil json schema")
	}

	if len(doc.OneOf) > 0 {
		alts := make([]Type, 0, len(doc.OneOf))
		for _, alt := range doc.OneOf {
			t, ok := primitiveType(alt)
			if !ok {
				return Schema{}, fmt.Errorf("oneOf alternative %q is not a primitive type", alt.Type)
			}
			alts = append(alts, t)
		}
		return Leaf(alts...), nil
	}

	switch doc.Type {
	case "object":
		names := make([]string, 0, len(doc.Properties))
		for name := range doc.Properties {
			names = append(names, name)
		}
		sort.Strings(names)
		fields := make([]Field, 0, len(names))
		for _, name := range names {
			sub, err := FromJSONSchema(doc.Properties[name])
			if err != nil {
				return Schema{}, fmt.Errorf("property %q: %w", name, err)
			}
			fields = append(fields, F(name, sub))
		}
		return Keyed(fields...), nil
	case "array":
		if doc.Items == nil {
			return Seq(Leaf(Any)), nil
		}
		elem, err := FromJSONSchema(doc.Items)
		if err != nil {
			return Schema{}, fmt.Errorf("items: %w", err)
		}
		return Seq(elem), nil
	}

	t, ok := primitiveType(doc)
	if !ok {
		return Schema{}, fmt.Errorf("unsupported json schema type %q", doc.Type)
	}
	return Leaf(t), nil
}

func primitiveType(doc *jsonschema.Schema) (Type, bool) {
	if doc == nil {
		return Type{}, false
	}
	switch doc.Type {
	case "":
		return Any, true
	case "null":
		return Nil, true
	case "boolean":
		return Bool, true
	case "integer":
		return Int, true
	case "number":
		return Number, true
	case "string":
		if doc.Format == "byte" {
			return Bytes, true
		}
		return String, true
	}
	return Type{}, false
}
