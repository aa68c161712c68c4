package typeforge

import (
	"context"
	"reflect"
)

type ctxKeyFailFast struct{}

// WithFailFast returns a context that requests fail-fast validation, as
// if every entry point below it received Opt{FailFast: true}.
func WithFailFast(ctx context.Context) context.Context {
	return context.WithValue(ctx, ctxKeyFailFast{}, true)
}

// IsFailFast reports whether ctx requests fail-fast validation.
func IsFailFast(ctx context.Context) bool {
	if ctx == nil {
		return false
	}
	v, ok := ctx.Value(ctxKeyFailFast{}).(bool)
	return ok && v
}

var defaultAnalyzer = NewAnalyzer(nil, nil)

// Validate walks v against s and reports every mismatch with its
// structural path. Violations appear in depth-first, left-to-right
// discovery order. Without Opt.Convert the result never carries a
// converted document.
func Validate(ctx context.Context, v any, s Schema, opts ...Opt) ValidationResult {
	return runValidation(ctx, defaultAnalyzer, v, s, opts)
}

// Convert validates v against s with conversion enabled: non-conforming
// values are coerced toward the leaf alternatives, and when the whole
// input is valid the result carries the converted document.
func Convert(ctx context.Context, v any, s Schema, opts ...Opt) ValidationResult {
	return runValidation(ctx, defaultAnalyzer, v, s, append(opts, Opt{Convert: true}))
}

// ValidateKeyed validates v against a keyed schema. A non-keyed s is
// itself a schema mismatch. Opt.AllowMissing relaxes completeness so a
// partial document validates only the keys it carries.
func ValidateKeyed(ctx context.Context, v any, s Schema, opts ...Opt) ValidationResult {
	if s.Kind() != KeyedSchema {
		return Failed(NewViolation(RootPath, "keyed schema", s.Kind().String(), CodeSchemaMismatch))
	}
	return runValidation(ctx, defaultAnalyzer, v, s, opts)
}

// Check is the boolean fast path: it validates fail-fast and reports
// only whether v conforms to s.
func Check(ctx context.Context, v any, s Schema) bool {
	return runValidation(ctx, defaultAnalyzer, v, s, []Opt{{FailFast: true}}).Valid
}

func runValidation(ctx context.Context, an *Analyzer, v any, s Schema, opts []Opt) ValidationResult {
	opt := mergeOpts(opts)
	if IsFailFast(ctx) {
		opt.FailFast = true
	}
	w := &walker{an: an, opt: opt}
	converted, ok := w.walk(RootPath, v, s)
	if !ok {
		return Failed(w.vs...)
	}
	res := Passed()
	if opt.Convert {
		res = res.WithConverted(converted)
	}
	return res
}

// walker carries one validation run. It is never shared between runs, so
// the engine stays safe for concurrent use without locking.
type walker struct {
	an  *Analyzer
	opt Opt
	vs  Violations
}

func (w *walker) report(v Violation) {
	w.vs = append(w.vs, v)
}

// done reports whether a fail-fast run has already found a violation.
func (w *walker) done() bool {
	return w.opt.FailFast && len(w.vs) > 0
}

// walk validates one subtree. The returned value is the converted
// subtree; it is meaningful only when the boolean reports the subtree
// valid.
func (w *walker) walk(path string, v any, s Schema) (any, bool) {
	switch s.Kind() {
	case KeyedSchema:
		return w.keyed(path, v, s.fields)
	case SequenceSchema:
		elem := Leaf(Any)
		if s.elem != nil {
			elem = *s.elem
		}
		return w.sequence(path, v, elem)
	default:
		return w.leaf(path, v, s.leaf)
	}
}

// leaf matches v against the descriptor's alternatives. A value whose
// type is identical to, a subtype of, or a protocol match for any
// alternative conforms as-is. With conversion enabled the remaining
// alternatives are tried in declared order, skipping Nil, and the first
// successful conversion wins. A failed conversion over at least one
// convertible alternative is a conversion error; no convertible
// alternative at all is a wrong type.
func (w *walker) leaf(path string, v any, d Descriptor) (any, bool) {
	source := TypeOf(v)
	for _, alt := range d.alts {
		switch w.an.Relationship(source, alt) {
		case Identical, Subtype:
			return v, true
		case ProtocolCompatible:
			if alt.Kind() == KindProtocol {
				return v, true
			}
		}
	}

	kind := CodeWrongType
	if w.opt.Convert {
		anyConvertible := false
		for _, alt := range d.alts {
			if alt.Is(Nil) {
				continue
			}
			if w.an.Relationship(source, alt) == Incompatible {
				continue
			}
			anyConvertible = true
			fn, ok := converterFor(alt)
			if !ok {
				continue
			}
			if out, ok := fn(v); ok {
				return out, true
			}
		}
		if anyConvertible {
			kind = CodeConversionError
		}
	}

	w.report(NewViolation(path, d.String(), source.Name(), kind))
	return nil, false
}

// keyed walks declared fields in order, interleaving missing-key checks
// with recursion into present values. The converted record contains only
// the schema's keys.
func (w *walker) keyed(path string, v any, fields []Field) (any, bool) {
	m, ok := asStringMap(v)
	if !ok {
		w.report(NewViolation(path, "keyed record", TypeOf(v).Name(), CodeSchemaMismatch))
		return nil, false
	}

	out := make(map[string]any, len(fields))
	valid := true
	for _, f := range fields {
		if w.done() {
			break
		}
		childPath := ChildKey(path, f.Name)
		val, present := m[f.Name]
		if !present {
			if w.opt.AllowMissing {
				continue
			}
			w.report(NewViolation(childPath, f.Schema.String(), "missing", CodeMissingKey))
			valid = false
			continue
		}
		converted, ok := w.walk(childPath, val, f.Schema)
		if !ok {
			valid = false
			continue
		}
		out[f.Name] = converted
	}
	if !valid {
		return nil, false
	}
	return out, true
}

// sequence walks elements in index order against the element shape.
func (w *walker) sequence(path string, v any, elem Schema) (any, bool) {
	items, ok := asSlice(v)
	if !ok {
		w.report(NewViolation(path, "sequence", TypeOf(v).Name(), CodeSchemaMismatch))
		return nil, false
	}

	out := make([]any, 0, len(items))
	valid := true
	for i, item := range items {
		if w.done() {
			break
		}
		converted, ok := w.walk(ChildIndex(path, i), item, elem)
		if !ok {
			valid = false
			continue
		}
		out = append(out, converted)
	}
	if !valid {
		return nil, false
	}
	return out, true
}

// asStringMap views v as a string-keyed record. Maps with string keys
// qualify directly; structs are viewed through their exported fields.
func asStringMap(v any) (map[string]any, bool) {
	if m, ok := v.(map[string]any); ok {
		return m, true
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = iter.Value().Interface()
		}
		return out, true
	case reflect.Struct:
		rt := rv.Type()
		out := make(map[string]any, rt.NumField())
		for i := 0; i < rt.NumField(); i++ {
			if f := rt.Field(i); f.IsExported() {
				out[f.Name] = rv.Field(i).Interface()
			}
		}
		return out, true
	}
	return nil, false
}

// asSlice views v as a sequence. Byte strings and text are scalars here,
// not sequences.
func asSlice(v any) ([]any, bool) {
	switch v.(type) {
	case nil, []byte, string:
		return nil, false
	}
	if items, ok := v.([]any); ok {
		return items, true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return nil, false
		}
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = rv.Index(i).Interface()
		}
		return out, true
	}
	return nil, false
}
