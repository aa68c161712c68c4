package typeforge

import (
	"reflect"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/reoring/typeforge/internal/collect"
)

// Kind classifies a Type for relationship analysis and conversion.
type Kind int

const (
	KindInvalid Kind = iota
	KindNil
	KindBool
	KindInt
	KindFloat
	KindString
	KindBytes
	KindSequence
	KindMapping
	KindStruct
	KindProtocol
	KindAbstract
	KindOpaque
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	case KindStruct:
		return "struct"
	case KindProtocol:
		return "protocol"
	case KindAbstract:
		return "abstract"
	case KindOpaque:
		return "opaque"
	default:
		return "invalid"
	}
}

// Type identifies a value type by name and kind. The built-in types below
// cover the values a decoded JSON or YAML document can hold; TypeOf and
// TypeFor derive types for arbitrary Go values, and NewType mints named
// types for registration with a Forge.
type Type struct {
	name string
	kind Kind
	rt   reflect.Type
}

// NewType returns a named type of the given kind with no Go representation
// attached.
func NewType(name string, kind Kind) Type {
	return Type{name: name, kind: kind}
}

// Name returns the type's name.
func (t Type) Name() string { return t.name }

// Kind returns the type's kind.
func (t Type) Kind() Kind { return t.kind }

// GoType returns the reflect.Type backing this type, or nil for abstract,
// protocol and nil types.
func (t Type) GoType() reflect.Type { return t.rt }

// IsZero reports whether t is the zero Type.
func (t Type) IsZero() bool { return t.name == "" && t.kind == KindInvalid }

// Is reports whether t and o name the same type.
func (t Type) Is(o Type) bool { return t.name == o.name }

func (t Type) String() string { return t.name }

// Built-in types.
var (
	Nil    = Type{name: "nil", kind: KindNil}
	Bool   = Type{name: "bool", kind: KindBool, rt: reflect.TypeOf(false)}
	Int    = Type{name: "int", kind: KindInt, rt: reflect.TypeOf(int64(0))}
	Float  = Type{name: "float", kind: KindFloat, rt: reflect.TypeOf(float64(0))}
	String = Type{name: "string", kind: KindString, rt: reflect.TypeOf("")}
	Bytes  = Type{name: "bytes", kind: KindBytes, rt: reflect.TypeOf([]byte(nil))}
	List   = Type{name: "list", kind: KindSequence, rt: reflect.TypeOf([]any(nil))}
	Map    = Type{name: "map", kind: KindMapping, rt: reflect.TypeOf(map[string]any(nil))}

	// Number is the abstract supertype of Int and Float.
	Number = Type{name: "number", kind: KindAbstract}
	// Any is the abstract supertype of every type.
	Any = Type{name: "any", kind: KindAbstract}

	// Protocol types are satisfied by capability rather than identity.
	Sized    = Type{name: "sized", kind: KindProtocol}
	Iterable = Type{name: "iterable", kind: KindProtocol}
	Ordered  = Type{name: "ordered", kind: KindProtocol}
)

// TypeOf derives the Type of a runtime value. Integer and float widths
// collapse to Int and Float, byte slices to Bytes, other slices and arrays
// to List, and string-keyed maps to Map. Pointers are followed; a nil value
// or nil pointer is Nil. Structs and anything else keep their Go type name.
func TypeOf(v any) Type {
	if v == nil {
		return Nil
	}
	switch v.(type) {
	case bool:
		return Bool
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return Int
	case float32, float64:
		return Float
	case string:
		return String
	case []byte:
		return Bytes
	case json.Number:
		return Number
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return Nil
		}
		return TypeOf(rv.Elem().Interface())
	}
	return typeFromReflect(rv.Type())
}

// TypeFor derives the Type for a Go type parameter, following the same
// mapping as TypeOf.
func TypeFor[T any]() Type {
	rt := reflect.TypeOf((*T)(nil)).Elem()
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	return typeFromReflect(rt)
}

func typeFromReflect(rt reflect.Type) Type {
	switch rt.Kind() {
	case reflect.Bool:
		return Bool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Int
	case reflect.Float32, reflect.Float64:
		return Float
	case reflect.String:
		if rt == reflect.TypeOf(json.Number("")) {
			return Number
		}
		return String
	case reflect.Slice, reflect.Array:
		if rt.Elem().Kind() == reflect.Uint8 {
			return Bytes
		}
		return List
	case reflect.Map:
		return Map
	case reflect.Interface:
		return Any
	case reflect.Struct:
		return Type{name: rt.String(), kind: KindStruct, rt: rt}
	default:
		return Type{name: rt.String(), kind: KindOpaque, rt: rt}
	}
}

// typeAliases maps spellings seen in schema files and user input onto the
// built-in types.
var typeAliases = map[string]Type{
	"nil": Nil, "none": Nil, "null": Nil,
	"bool": Bool, "boolean": Bool,
	"int": Int, "integer": Int, "int32": Int, "int64": Int,
	"float": Float, "float32": Float, "float64": Float, "double": Float, "real": Float,
	"string": String, "str": String, "text": String,
	"bytes": Bytes, "binary": Bytes, "blob": Bytes,
	"list": List, "array": List, "sequence": List, "slice": List, "tuple": List,
	"map": Map, "dict": Map, "object": Map, "mapping": Map,
	"number": Number, "numeric": Number,
	"any": Any,
	"sized": Sized, "iterable": Iterable, "ordered": Ordered,
}

// TypeByName resolves a type name or one of its common aliases, case
// insensitively. The second return reports whether the name was known.
func TypeByName(name string) (Type, bool) {
	t, ok := typeAliases[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// Descriptor lists the alternative types a leaf accepts. A value matches
// when it is, or can be converted to, any one of the alternatives.
type Descriptor struct {
	alts []Type
}

// NewDescriptor builds a descriptor over the given alternatives,
// dropping duplicates and preserving first-occurrence order. Order
// matters for conversion: alternatives are tried left to right and the
// first success wins.
func NewDescriptor(alternatives ...Type) Descriptor {
	return Descriptor{alts: collect.Dedupe(alternatives, Type.Name)}
}

// Alternatives returns the alternative types in declaration order.
func (d Descriptor) Alternatives() []Type {
	out := make([]Type, len(d.alts))
	copy(out, d.alts)
	return out
}

// Contains reports whether t is one of the alternatives.
func (d Descriptor) Contains(t Type) bool {
	for _, a := range d.alts {
		if a.Is(t) {
			return true
		}
	}
	return false
}

// Len returns the number of alternatives.
func (d Descriptor) Len() int { return len(d.alts) }

func (d Descriptor) String() string {
	if len(d.alts) == 0 {
		return "never"
	}
	names := make([]string, len(d.alts))
	for i, a := range d.alts {
		names[i] = a.Name()
	}
	return strings.Join(names, " | ")
}
