// Package rules provides small boolean validators that compose with AND
// semantics. A Composite's detailed check evaluates every member and
// reports each failure as an invalid-value violation, so callers get the
// full picture instead of the first refusal.
package rules

import (
	"fmt"
	"reflect"

	typeforge "github.com/reoring/typeforge"
)

// Validator is the boolean validation capability.
type Validator interface {
	Validate(v any) bool
}

// Rule couples a predicate with the description used in detailed reports.
type Rule struct {
	Name string
	Test func(v any) bool
}

// Validate reports whether v satisfies the rule. A rule without a
// predicate rejects everything.
func (r Rule) Validate(v any) bool {
	if r.Test == nil {
		return false
	}
	return r.Test(v)
}

// Of builds a named rule from a predicate.
func Of(name string, test func(v any) bool) Rule {
	return Rule{Name: name, Test: test}
}

// NonEmpty accepts values with content: non-nil, and for anything with a
// length, a length above zero.
func NonEmpty() Rule {
	return Of("non-empty value", func(v any) bool {
		if v == nil {
			return false
		}
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
			return rv.Len() > 0
		case reflect.Pointer:
			return !rv.IsNil()
		}
		return true
	})
}

// Positive accepts numbers strictly greater than zero. Non-numbers fail;
// text is not parsed here.
func Positive() Rule {
	return Of("positive number", func(v any) bool {
		f, ok := numeric(v)
		return ok && f > 0
	})
}

// InRange accepts numbers within [min, max].
func InRange(min, max float64) Rule {
	return Of(fmt.Sprintf("number in [%v, %v]", min, max), func(v any) bool {
		f, ok := numeric(v)
		return ok && f >= min && f <= max
	})
}

// LengthBetween accepts values whose length lies within [min, max].
func LengthBetween(min, max int) Rule {
	return Of(fmt.Sprintf("length in [%d, %d]", min, max), func(v any) bool {
		if v == nil {
			return false
		}
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
			return rv.Len() >= min && rv.Len() <= max
		}
		return false
	})
}

// Composite ANDs its members. The zero value is usable and accepts
// everything.
type Composite struct {
	members []Validator
}

// NewComposite builds a composite over the given members.
func NewComposite(members ...Validator) *Composite {
	c := &Composite{}
	return c.Add(members...)
}

// Add appends members, skipping nils, and returns the receiver for
// chaining.
func (c *Composite) Add(members ...Validator) *Composite {
	for _, m := range members {
		if m == nil {
			continue
		}
		c.members = append(c.members, m)
	}
	return c
}

// Len returns the number of members.
func (c *Composite) Len() int { return len(c.members) }

// Validate reports whether every member accepts v.
func (c *Composite) Validate(v any) bool {
	for _, m := range c.members {
		if !m.Validate(v) {
			return false
		}
	}
	return true
}

// Check evaluates every member and reports each failure as an
// invalid-value violation at $.validator[i], where i is the member's
// position. All members run even after a failure.
func (c *Composite) Check(v any) typeforge.ValidationResult {
	res := typeforge.Passed()
	for i, m := range c.members {
		if m.Validate(v) {
			continue
		}
		path := typeforge.ChildIndex(typeforge.ChildKey(typeforge.RootPath, "validator"), i)
		res = res.Merge(typeforge.Failed(
			typeforge.NewViolation(path, describe(m), render(v), typeforge.CodeInvalidValue),
		))
	}
	return res
}

// Check derives a detailed report from any validator. Composites report
// per member; anything else derives a single root violation from its
// boolean outcome.
func Check(val Validator, v any) typeforge.ValidationResult {
	if c, ok := val.(*Composite); ok {
		return c.Check(v)
	}
	if val.Validate(v) {
		return typeforge.Passed()
	}
	return typeforge.Failed(
		typeforge.NewViolation(typeforge.RootPath, describe(val), render(v), typeforge.CodeInvalidValue),
	)
}

func describe(v Validator) string {
	switch x := v.(type) {
	case Rule:
		if x.Name != "" {
			return x.Name
		}
	case *Composite:
		return fmt.Sprintf("all of %d rules", len(x.members))
	}
	return "validator"
}

func render(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%v", v)
}

func numeric(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}
