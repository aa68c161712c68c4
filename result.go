package typeforge

// ValidationResult carries the outcome of one validation call: overall
// validity, the ordered violation list, and the converted value when
// conversion was requested and succeeded for the whole subtree.
//
// Results are value types; Merge and WithConverted return new records and
// never mutate their inputs.
type ValidationResult struct {
	Valid      bool       `json:"valid"`
	Violations Violations `json:"violations,omitempty"`
	Converted  any        `json:"converted,omitempty"`
}

// Passed returns a valid result with no violations.
func Passed() ValidationResult { return ValidationResult{Valid: true} }

// Failed returns an invalid result carrying the given violations.
func Failed(vs ...Violation) ValidationResult {
	return ValidationResult{Valid: false, Violations: AppendViolations(nil, vs...)}
}

// Merge combines another result into a copy of this one: validity is ANDed
// and the other's violations are appended after the receiver's, preserving
// discovery order. The receiver's converted value is kept.
func (r ValidationResult) Merge(o ValidationResult) ValidationResult {
	out := ValidationResult{
		Valid:     r.Valid && o.Valid,
		Converted: r.Converted,
	}
	if len(r.Violations)+len(o.Violations) > 0 {
		vs := make(Violations, 0, len(r.Violations)+len(o.Violations))
		vs = append(vs, r.Violations...)
		vs = append(vs, o.Violations...)
		out.Violations = vs
	}
	return out
}

// WithConverted returns a copy of the result carrying the given converted
// value. Validity and violations are unchanged.
func (r ValidationResult) WithConverted(v any) ValidationResult {
	out := r
	out.Converted = v
	return out
}

// Err exposes the violations as an error, or nil when the result is valid.
// An invalid result with no recorded detail yields a single generic
// invalid_value violation at the root.
func (r ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	if len(r.Violations) == 0 {
		return Violations{NewViolation(RootPath, "validation to pass", "validation failure", CodeInvalidValue)}
	}
	return r.Violations
}
