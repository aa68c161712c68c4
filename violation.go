package typeforge

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/reoring/typeforge/i18n"
)

// Violation kinds.
const (
	CodeWrongType       = "wrong_type"
	CodeMissingKey      = "missing_key"
	CodeInvalidValue    = "invalid_value"
	CodeSchemaMismatch  = "schema_mismatch"
	CodeConversionError = "conversion_error"
)

// RootPath is the sentinel locator for the top of the validated value.
const RootPath = "$"

// ChildKey extends a path with a keyed segment (for example: $.user.name).
func ChildKey(path, key string) string { return path + "." + key }

// ChildIndex extends a path with a sequence index (for example: $.tags[0]).
func ChildIndex(path string, i int) string { return path + "[" + strconv.Itoa(i) + "]" }

// Violation represents a single validation failure.
type Violation struct {
	Path     string `json:"path"`     // Dollar-rooted locator (for example: $.items[2].price).
	Expected string `json:"expected"` // Human-readable description of the required shape.
	Found    string `json:"found"`    // What was actually present.
	Kind     string `json:"kind"`     // One of the Code* kinds listed above.
	Message  string `json:"message,omitempty"`
}

// NewViolation builds a Violation and resolves its localized message.
func NewViolation(path, expected, found, kind string) Violation {
	return Violation{
		Path:     path,
		Expected: expected,
		Found:    found,
		Kind:     kind,
		Message:  i18n.T(kind, map[string]string{"expected": expected, "found": found}),
	}
}

// String renders a single violation in one line.
func (v Violation) String() string {
	return fmt.Sprintf("%s at %s: expected %s, found %s", v.Kind, v.Path, v.Expected, v.Found)
}

// Violations is a collection of validation failures that implements error.
type Violations []Violation

// Error summarizes the first few violations.
func (vs Violations) Error() string {
	if len(vs) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(vs)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := vs[i]
		// e.g. wrong_type at $.path
		fmt.Fprintf(b, "%s at %s", it.Kind, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendViolations appends violations to the destination, initializing the
// slice when needed.
func AppendViolations(dst Violations, more ...Violation) Violations {
	if dst == nil {
		dst = Violations{}
	}
	dst = append(dst, more...)
	return dst
}

// AsViolations extracts Violations from an error using errors.As internally.
func AsViolations(err error) (Violations, bool) {
	if err == nil {
		return nil, false
	}
	var vs Violations
	if errors.As(err, &vs) {
		return vs, true
	}
	return nil, false
}
