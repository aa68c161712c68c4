package typeforge

import (
	"sort"
	"strings"
)

// SchemaKind tags the three schema shapes.
type SchemaKind int

const (
	LeafSchema SchemaKind = iota
	KeyedSchema
	SequenceSchema
)

func (k SchemaKind) String() string {
	switch k {
	case KeyedSchema:
		return "keyed"
	case SequenceSchema:
		return "sequence"
	default:
		return "leaf"
	}
}

// Field is a named slot in a keyed schema. Every field is required;
// absence of a key is a violation unless validation allows missing keys.
type Field struct {
	Name   string
	Schema Schema
}

// F builds a keyed schema field.
func F(name string, s Schema) Field {
	return Field{Name: name, Schema: s}
}

// Schema describes the expected shape of a value: a leaf with alternative
// types, a keyed record with named fields, or a sequence with a uniform
// element shape. The zero value is a leaf that matches nothing.
type Schema struct {
	kind   SchemaKind
	leaf   Descriptor
	fields []Field
	elem   *Schema
}

// Leaf returns a leaf schema accepting any of the alternative types, tried
// in the given order.
func Leaf(alternatives ...Type) Schema {
	return Schema{kind: LeafSchema, leaf: NewDescriptor(alternatives...)}
}

// LeafOf returns a leaf schema over an existing descriptor.
func LeafOf(d Descriptor) Schema {
	return Schema{kind: LeafSchema, leaf: d}
}

// Keyed returns a keyed schema with the given fields. Field order is
// preserved and fixes the order violations are reported in.
func Keyed(fields ...Field) Schema {
	fs := make([]Field, len(fields))
	copy(fs, fields)
	return Schema{kind: KeyedSchema, fields: fs}
}

// Seq returns a sequence schema whose elements all match elem.
func Seq(elem Schema) Schema {
	return Schema{kind: SequenceSchema, elem: &elem}
}

// Kind returns the schema's shape tag.
func (s Schema) Kind() SchemaKind { return s.kind }

// Descriptor returns a leaf schema's alternatives. It is empty for keyed
// and sequence schemas.
func (s Schema) Descriptor() Descriptor { return s.leaf }

// Fields returns a keyed schema's fields in declaration order.
func (s Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Elem returns a sequence schema's element shape.
func (s Schema) Elem() (Schema, bool) {
	if s.elem == nil {
		return Schema{}, false
	}
	return *s.elem, true
}

// SchemaOf derives a schema from a host value. Schemas, types and
// descriptors pass through as themselves; a map becomes a keyed schema
// over its entries with field names sorted for determinism; a slice of
// types becomes a leaf over those alternatives; any other slice becomes a
// sequence shaped after its first element. Plain values infer a leaf from
// their own type, so an example document doubles as a schema.
func SchemaOf(v any) Schema {
	switch x := v.(type) {
	case Schema:
		return x
	case Type:
		return Leaf(x)
	case Descriptor:
		return LeafOf(x)
	case []Type:
		return Leaf(x...)
	case Field:
		return Keyed(x)
	case map[string]any:
		names := make([]string, 0, len(x))
		for name := range x {
			names = append(names, name)
		}
		sort.Strings(names)
		fields := make([]Field, 0, len(names))
		for _, name := range names {
			fields = append(fields, F(name, SchemaOf(x[name])))
		}
		return Keyed(fields...)
	case []any:
		if len(x) == 0 {
			return Seq(Leaf(Any))
		}
		if types, ok := allTypes(x); ok {
			return Leaf(types...)
		}
		return Seq(SchemaOf(x[0]))
	}
	return Leaf(TypeOf(v))
}

func allTypes(xs []any) ([]Type, bool) {
	types := make([]Type, 0, len(xs))
	for _, x := range xs {
		t, ok := x.(Type)
		if !ok {
			return nil, false
		}
		types = append(types, t)
	}
	return types, true
}

// String renders the schema in a compact, human-oriented form.
func (s Schema) String() string {
	switch s.kind {
	case KeyedSchema:
		parts := make([]string, len(s.fields))
		for i, f := range s.fields {
			parts[i] = f.Name + ": " + f.Schema.String()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case SequenceSchema:
		if s.elem == nil {
			return "[]"
		}
		return "[" + s.elem.String() + "]"
	default:
		return s.leaf.String()
	}
}
