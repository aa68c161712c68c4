package typeforge

import "github.com/reoring/typeforge/jsonschema"

// JSONSchema projects the schema onto a minimal JSON Schema document.
// Keyed schemas become objects with every field required, sequences
// become arrays, and a leaf with several alternatives becomes a oneOf.
func (s Schema) JSONSchema() *jsonschema.Schema {
	switch s.kind {
	case KeyedSchema:
		props := make(map[string]*jsonschema.Schema, len(s.fields))
		required := make([]string, 0, len(s.fields))
		for _, f := range s.fields {
			props[f.Name] = f.Schema.JSONSchema()
			required = append(required, f.Name)
		}
		return &jsonschema.Schema{Type: "object", Properties: props, Required: required}
	case SequenceSchema:
		out := &jsonschema.Schema{Type: "array"}
		if s.elem != nil {
			out.Items = s.elem.JSONSchema()
		}
		return out
	default:
		switch len(s.leaf.alts) {
		case 0:
			return &jsonschema.Schema{}
		case 1:
			return typeSchema(s.leaf.alts[0])
		default:
			oneOf := make([]*jsonschema.Schema, len(s.leaf.alts))
			for i, alt := range s.leaf.alts {
				oneOf[i] = typeSchema(alt)
			}
			return &jsonschema.Schema{OneOf: oneOf}
		}
	}
}

func typeSchema(t Type) *jsonschema.Schema {
	switch {
	case t.Is(Bytes):
		return &jsonschema.Schema{Type: "string", Format: "byte"}
	case t.Is(Any):
		return &jsonschema.Schema{}
	}
	switch t.Kind() {
	case KindNil:
		return &jsonschema.Schema{Type: "null"}
	case KindBool:
		return &jsonschema.Schema{Type: "boolean"}
	case KindInt:
		return &jsonschema.Schema{Type: "integer"}
	case KindFloat, KindAbstract:
		return &jsonschema.Schema{Type: "number"}
	case KindString:
		return &jsonschema.Schema{Type: "string"}
	case KindSequence:
		return &jsonschema.Schema{Type: "array"}
	case KindMapping, KindStruct:
		return &jsonschema.Schema{Type: "object"}
	default:
		return &jsonschema.Schema{}
	}
}
