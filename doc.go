package typeforge

// Package typeforge provides:
//
// - Recursive validation of loosely typed documents against Schema shapes (Validate/Convert/ValidateKeyed/Check)
// - A stable error model via Violations (dollar-rooted path, kind, expected/found)
// - Type relationship analysis on a fixed ladder (Analyzer: identical .. incompatible, with distances)
// - A railway-style ConversionResult for chaining fallible conversions (Map/Then/Recover/OrElse)
// - A registry facade (Forge) for named types with ancestry, capabilities and converters
//
// Design policy:
// - Keep only public APIs in the root package; put shared helpers under internal/.
// - Place boolean predicates under rules/, schema documents under schemafile/,
//   converter add-ons under codec/, and the CLI under cmd/typeforge.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	s := typeforge.Keyed(
//		typeforge.F("port", typeforge.Leaf(typeforge.Int)),
//	)
//	res := typeforge.Validate(ctx, doc, s)
//	res = typeforge.Convert(ctx, doc, s)
//	cfg, err := typeforge.Bind[Config](res)
//
// Violations report every mismatch in depth-first, left-to-right order so
// callers can surface complete feedback in one pass. Conversion never
// mutates the input document; converted output is always a fresh value.
