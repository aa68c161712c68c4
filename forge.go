package typeforge

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// TypeDef declares a named type for registration with a Forge.
type TypeDef struct {
	Name string
	Kind Kind
	// Ancestors is the supertype chain, nearest first. The universal
	// base Any is appended when absent. For a protocol kind,
	// Capabilities lists what a source must offer to satisfy it.
	Ancestors    []Type
	Capabilities []string
}

// Forge is a registry of named types with their ancestry and
// capabilities. It implements AncestryProvider and CapabilityInspector,
// falling back to the built-in hierarchy for types it does not know, so
// its Analyzer classifies registered and built-in types uniformly.
//
// A Forge is safe for concurrent use; registries are read-locked while
// validations run.
type Forge struct {
	mu       sync.RWMutex
	types    map[string]Type
	ancestry map[string][]Type
	caps     map[string][]string

	analyzer *Analyzer
}

// NewForge returns an empty registry.
func NewForge() *Forge {
	f := &Forge{
		types:    map[string]Type{},
		ancestry: map[string][]Type{},
		caps:     map[string][]string{},
	}
	f.analyzer = NewAnalyzer(f, f)
	return f
}

// Register adds a type under its declared name. Registering an empty
// name, a kindless definition, or a name already taken by the registry
// or a built-in type is an error.
func (f *Forge) Register(def TypeDef) (Type, error) {
	if def.Name == "" {
		return Type{}, fmt.Errorf("type name required")
	}
	if def.Kind == KindInvalid {
		return Type{}, fmt.Errorf("type %q: kind required", def.Name)
	}
	if _, ok := TypeByName(def.Name); ok {
		return Type{}, fmt.Errorf("type %q shadows a built-in type", def.Name)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.types[def.Name]; ok {
		return Type{}, fmt.Errorf("type %q already registered", def.Name)
	}

	t := NewType(def.Name, def.Kind)
	chain := make([]Type, 0, len(def.Ancestors)+1)
	chain = append(chain, def.Ancestors...)
	if len(chain) == 0 || !chain[len(chain)-1].Is(Any) {
		chain = append(chain, Any)
	}

	f.types[def.Name] = t
	f.ancestry[def.Name] = chain
	if len(def.Capabilities) > 0 {
		f.caps[def.Name] = append([]string(nil), def.Capabilities...)
	}
	return t, nil
}

// MustRegister is Register for program setup; it panics on error.
func (f *Forge) MustRegister(def TypeDef) Type {
	t, err := f.Register(def)
	if err != nil {
		panic(err)
	}
	return t
}

// Lookup resolves a name against the registry first, then the built-in
// aliases.
func (f *Forge) Lookup(name string) (Type, bool) {
	f.mu.RLock()
	t, ok := f.types[name]
	f.mu.RUnlock()
	if ok {
		return t, true
	}
	return TypeByName(name)
}

// Types returns the registered types sorted by name.
func (f *Forge) Types() []Type {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]Type, 0, len(f.types))
	for _, t := range f.types {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Ancestry implements AncestryProvider over the registry, falling back
// to the built-in hierarchy for unregistered types.
func (f *Forge) Ancestry(t Type) []Type {
	f.mu.RLock()
	chain, ok := f.ancestry[t.Name()]
	f.mu.RUnlock()
	if ok {
		return chain
	}
	return builtinAncestry{}.Ancestry(t)
}

// Capabilities implements CapabilityInspector over the registry, falling
// back to the built-in capabilities for unregistered types.
func (f *Forge) Capabilities(t Type) []string {
	f.mu.RLock()
	caps, ok := f.caps[t.Name()]
	f.mu.RUnlock()
	if ok {
		return caps
	}
	return builtinCapabilities{}.Capabilities(t)
}

// Analyzer returns the relationship analyzer backed by this registry.
func (f *Forge) Analyzer() *Analyzer { return f.analyzer }

// RegisterConverter installs a conversion routine for a target type.
// Converters are shared process-wide, not per Forge.
func (f *Forge) RegisterConverter(target Type, fn ConverterFunc) {
	RegisterConverter(target, fn)
}

// Validate walks v against s using this registry's type relationships.
func (f *Forge) Validate(ctx context.Context, v any, s Schema, opts ...Opt) ValidationResult {
	return runValidation(ctx, f.analyzer, v, s, opts)
}

// Convert validates with conversion enabled, like the package-level
// Convert but against this registry.
func (f *Forge) Convert(ctx context.Context, v any, s Schema, opts ...Opt) ValidationResult {
	return runValidation(ctx, f.analyzer, v, s, append(opts, Opt{Convert: true}))
}

// ValidateKeyed validates a keyed document against this registry.
func (f *Forge) ValidateKeyed(ctx context.Context, v any, s Schema, opts ...Opt) ValidationResult {
	if s.Kind() != KeyedSchema {
		return Failed(NewViolation(RootPath, "keyed schema", s.Kind().String(), CodeSchemaMismatch))
	}
	return runValidation(ctx, f.analyzer, v, s, opts)
}

// Check is the boolean fast path against this registry.
func (f *Forge) Check(ctx context.Context, v any, s Schema) bool {
	return runValidation(ctx, f.analyzer, v, s, []Opt{{FailFast: true}}).Valid
}

// CheckType reports whether v conforms to t as-is: identical, a
// declared subtype, or a protocol match.
func (f *Forge) CheckType(v any, t Type) bool {
	switch f.analyzer.Relationship(TypeOf(v), t) {
	case Identical, Subtype:
		return true
	case ProtocolCompatible:
		return t.Kind() == KindProtocol
	}
	return false
}

// AssertType returns a wrong-type violation when v does not conform
// to t.
func (f *Forge) AssertType(v any, t Type) error {
	if f.CheckType(v, t) {
		return nil
	}
	return Violations{NewViolation(RootPath, t.Name(), TypeOf(v).Name(), CodeWrongType)}
}

// TryConvert converts v into target. Unlike the package-level
// TryConvert, conformance is judged through this registry, so declared
// subtypes pass through unchanged.
func (f *Forge) TryConvert(v any, target Type) ConversionResult[any] {
	if f.CheckType(v, target) || target.Is(Any) {
		return Success(v)
	}
	source := TypeOf(v)
	if fn, ok := converterFor(target); ok {
		if out, ok := fn(v); ok {
			return Success(out)
		}
		return Failuref[any]("cannot convert %s to %s", source, target)
	}
	if v == nil {
		return Failuref[any]("cannot convert nil to %s", target)
	}
	return Failuref[any]("cannot convert %s to %s: no converter registered", source, target)
}

// Coerce converts v into target, erroring when no conversion applies.
func (f *Forge) Coerce(v any, target Type) (any, error) {
	return f.TryConvert(v, target).OrError(nil)
}
