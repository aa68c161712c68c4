package typeforge

// Opt bundles validation options. Options given to an entry point are
// combined; a flag set in any of them takes effect.
type Opt struct {
	// Convert coerces non-conforming values toward the leaf alternatives
	// and populates the result's Converted document when the whole input
	// is valid.
	Convert bool
	// AllowMissing accepts absent keys in keyed schemas instead of
	// reporting them as missing-key violations.
	AllowMissing bool
	// FailFast stops the walk at the first violation. The result then
	// carries only the violations discovered up to that point.
	FailFast bool
}

func mergeOpts(opts []Opt) Opt {
	var merged Opt
	for _, o := range opts {
		merged.Convert = merged.Convert || o.Convert
		merged.AllowMissing = merged.AllowMissing || o.AllowMissing
		merged.FailFast = merged.FailFast || o.FailFast
	}
	return merged
}
