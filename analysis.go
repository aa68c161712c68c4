package typeforge

import (
	"math"
	"reflect"
)

// Relationship ranks how closely a source type relates to a target type.
// The rungs are ordered from strongest to weakest; Relationship analysis
// returns the first rung that holds.
type Relationship int

const (
	Identical Relationship = iota
	Subtype
	Supertype
	ImplicitConvertible
	Convertible
	ContainerCompatible
	StructurallyCompatible
	ProtocolCompatible
	Incompatible
)

func (r Relationship) String() string {
	switch r {
	case Identical:
		return "identical"
	case Subtype:
		return "subtype"
	case Supertype:
		return "supertype"
	case ImplicitConvertible:
		return "implicit_convertible"
	case Convertible:
		return "convertible"
	case ContainerCompatible:
		return "container_compatible"
	case StructurallyCompatible:
		return "structurally_compatible"
	case ProtocolCompatible:
		return "protocol_compatible"
	default:
		return "incompatible"
	}
}

var relationshipDistance = map[Relationship]int{
	Identical:              0,
	Subtype:                1,
	Supertype:              2,
	ImplicitConvertible:    3,
	Convertible:            5,
	ContainerCompatible:    7,
	StructurallyCompatible: 10,
	ProtocolCompatible:     15,
	Incompatible:           math.MaxInt,
}

// AncestryProvider reports a type's supertypes, nearest first, excluding
// the type itself.
type AncestryProvider interface {
	Ancestry(t Type) []Type
}

// CapabilityInspector reports the capabilities a type supports, such as
// "len", "iter" or "compare". For a protocol type the reported
// capabilities are the ones a source must offer to satisfy it.
type CapabilityInspector interface {
	Capabilities(t Type) []string
}

type builtinAncestry struct{}

func (builtinAncestry) Ancestry(t Type) []Type {
	switch {
	case t.Is(Any):
		return nil
	case t.Is(Int), t.Is(Float):
		return []Type{Number, Any}
	default:
		return []Type{Any}
	}
}

type builtinCapabilities struct{}

func (builtinCapabilities) Capabilities(t Type) []string {
	switch t.Kind() {
	case KindString, KindBytes:
		return []string{"len", "iter", "compare"}
	case KindSequence, KindMapping:
		return []string{"len", "iter"}
	case KindInt, KindFloat, KindBool:
		return []string{"compare"}
	case KindAbstract:
		if t.Is(Number) {
			return []string{"compare"}
		}
		return nil
	case KindProtocol:
		switch t.Name() {
		case Sized.Name():
			return []string{"len"}
		case Iterable.Name():
			return []string{"iter"}
		case Ordered.Name():
			return []string{"compare"}
		}
	}
	return nil
}

// Analyzer classifies pairs of types. The zero value is not usable; build
// one with NewAnalyzer.
type Analyzer struct {
	ancestry AncestryProvider
	caps     CapabilityInspector
}

// NewAnalyzer returns an analyzer backed by the given providers. A nil
// ancestry or caps falls back to the built-in type hierarchy, where Int and
// Float descend from Number and every type descends from Any.
func NewAnalyzer(ancestry AncestryProvider, caps CapabilityInspector) *Analyzer {
	if ancestry == nil {
		ancestry = builtinAncestry{}
	}
	if caps == nil {
		caps = builtinCapabilities{}
	}
	return &Analyzer{ancestry: ancestry, caps: caps}
}

// Relationship returns the strongest rung that holds between source and
// target. The check is purely type-level; whether a particular value
// converts cleanly is decided at conversion time.
func (a *Analyzer) Relationship(source, target Type) Relationship {
	if source.Is(target) {
		return Identical
	}
	if containsType(a.ancestry.Ancestry(source), target) {
		return Subtype
	}
	if containsType(a.ancestry.Ancestry(target), source) {
		return Supertype
	}
	if implicitPair(source, target) {
		return ImplicitConvertible
	}
	if convertiblePair(source, target) {
		return Convertible
	}
	if containerPair(source, target) {
		return ContainerCompatible
	}
	if structuralPair(source, target) {
		return StructurallyCompatible
	}
	if target.Kind() == KindProtocol &&
		containsAll(a.caps.Capabilities(source), a.caps.Capabilities(target)) {
		return ProtocolCompatible
	}
	return Incompatible
}

// Distance returns the numeric cost of the relationship between source and
// target. Identical is 0 and the cost grows with weaker rungs; an
// incompatible pair costs math.MaxInt.
func (a *Analyzer) Distance(source, target Type) int {
	return relationshipDistance[a.Relationship(source, target)]
}

// IsConvertible reports whether any rung short of Incompatible holds.
func (a *Analyzer) IsConvertible(source, target Type) bool {
	return a.Relationship(source, target) != Incompatible
}

// CommonSupertype returns the nearest type every input descends from or
// is. A sole input returns unchanged. The universal base Any never
// counts: when the inputs only meet there, no meaningful common type
// exists and the second return is false.
func (a *Analyzer) CommonSupertype(types ...Type) (Type, bool) {
	if len(types) == 0 {
		return Type{}, false
	}
	if len(types) == 1 {
		return types[0], true
	}
	first := a.lineage(types[0])
	for _, candidate := range first {
		if candidate.Is(Any) {
			continue
		}
		shared := true
		for _, t := range types[1:] {
			if !containsType(a.lineage(t), candidate) {
				shared = false
				break
			}
		}
		if shared {
			return candidate, true
		}
	}
	return Type{}, false
}

// lineage is the type itself followed by its ancestry, nearest first.
func (a *Analyzer) lineage(t Type) []Type {
	return append([]Type{t}, a.ancestry.Ancestry(t)...)
}

// implicitPair lists the lossless widening moves the engine applies
// without being asked.
func implicitPair(source, target Type) bool {
	switch {
	case source.Is(Int) && target.Is(Float):
		return true
	case source.Is(Bool) && (target.Is(Int) || target.Is(Float)):
		return true
	}
	return false
}

// convertiblePair reports whether a conversion routine exists for the
// pair. For the built-in targets this mirrors the converter domains;
// value-level failures (unparseable text, overflow) surface later as
// conversion errors. Any other target is convertible exactly when a
// converter is registered for it.
func convertiblePair(source, target Type) bool {
	sk := source.Kind()
	switch {
	case target.Is(String):
		return sk != KindOpaque && sk != KindInvalid
	case target.Is(Int):
		switch sk {
		case KindBool, KindInt, KindFloat, KindString, KindBytes:
			return true
		}
		return source.Is(Number)
	case target.Is(Float):
		switch sk {
		case KindBool, KindInt, KindFloat, KindString:
			return true
		}
		return source.Is(Number)
	case target.Is(Bool):
		switch sk {
		case KindNil, KindBool, KindInt, KindFloat, KindString, KindSequence, KindMapping:
			return true
		}
		return source.Is(Number)
	case target.Is(Bytes):
		return sk == KindString || sk == KindBytes
	case target.Is(Nil), target.Is(Any), target.Is(Number):
		return false
	}
	return hasConverter(target)
}

func containerPair(source, target Type) bool {
	if source.Kind() == KindSequence && target.Kind() == KindSequence {
		return true
	}
	return source.Kind() == KindMapping && target.Kind() == KindMapping
}

// structuralPair holds for record shapes: two structs with the same
// exported field names, or a struct against a string-keyed map.
func structuralPair(source, target Type) bool {
	sk, tk := source.Kind(), target.Kind()
	if (sk == KindStruct && tk == KindMapping) || (sk == KindMapping && tk == KindStruct) {
		return true
	}
	if sk != KindStruct || tk != KindStruct {
		return false
	}
	srt, trt := source.GoType(), target.GoType()
	if srt == nil || trt == nil {
		return false
	}
	return containsAll(fieldNames(trt), fieldNames(srt)) && containsAll(fieldNames(srt), fieldNames(trt))
}

func fieldNames(rt reflect.Type) []string {
	names := make([]string, 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		if f := rt.Field(i); f.IsExported() {
			names = append(names, f.Name)
		}
	}
	return names
}

func containsType(ts []Type, want Type) bool {
	for _, t := range ts {
		if t.Is(want) {
			return true
		}
	}
	return false
}

func containsAll(have, need []string) bool {
	if len(need) == 0 {
		return false
	}
	for _, n := range need {
		found := false
		for _, h := range have {
			if h == n {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
