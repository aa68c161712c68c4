package typeforge_test

import (
	"context"
	"reflect"
	"testing"

	typeforge "github.com/reoring/typeforge"
)

func TestValidate_LeafConformance(t *testing.T) {
	ctx := context.Background()

	if res := typeforge.Validate(ctx, 42, typeforge.Leaf(typeforge.Int)); !res.Valid {
		t.Fatalf("identical type should conform: %v", res.Violations)
	}
	if res := typeforge.Validate(ctx, 42, typeforge.Leaf(typeforge.Number)); !res.Valid {
		t.Fatalf("subtype should conform: %v", res.Violations)
	}
	if res := typeforge.Validate(ctx, nil, typeforge.Leaf(typeforge.Nil, typeforge.Int)); !res.Valid {
		t.Fatalf("nil should conform to a nil alternative: %v", res.Violations)
	}
	if res := typeforge.Validate(ctx, []any{1, 2}, typeforge.Leaf(typeforge.Sized)); !res.Valid {
		t.Fatalf("a list should satisfy the sized protocol: %v", res.Violations)
	}

	res := typeforge.Validate(ctx, 3.5, typeforge.Leaf(typeforge.Int))
	if res.Valid {
		t.Fatalf("float must not conform to int without conversion")
	}
	v := res.Violations[0]
	if v.Path != "$" || v.Kind != typeforge.CodeWrongType || v.Expected != "int" || v.Found != "float" {
		t.Fatalf("unexpected violation: %+v", v)
	}
}

func TestValidate_DepthFirstOrdering(t *testing.T) {
	schema := typeforge.Keyed(
		typeforge.F("name", typeforge.Leaf(typeforge.String)),
		typeforge.F("age", typeforge.Leaf(typeforge.Int)),
		typeforge.F("tags", typeforge.Seq(typeforge.Leaf(typeforge.String))),
	)
	doc := map[string]any{
		"age":  "not a number",
		"tags": []any{"a", 3, "b"},
	}

	res := typeforge.Validate(context.Background(), doc, schema)
	if res.Valid {
		t.Fatalf("document should fail")
	}
	var paths []string
	for _, v := range res.Violations {
		paths = append(paths, v.Path)
	}
	want := []string{"$.name", "$.age", "$.tags[1]"}
	if !reflect.DeepEqual(paths, want) {
		t.Fatalf("violations out of order: %v, want %v", paths, want)
	}
	if res.Violations[0].Kind != typeforge.CodeMissingKey {
		t.Fatalf("absent key should report missing_key, got %s", res.Violations[0].Kind)
	}
	if res.Violations[1].Kind != typeforge.CodeWrongType {
		t.Fatalf("mismatched value should report wrong_type, got %s", res.Violations[1].Kind)
	}
}

func TestValidate_MissingKeysExhaustive(t *testing.T) {
	schema := typeforge.Keyed(
		typeforge.F("host", typeforge.Leaf(typeforge.String)),
		typeforge.F("port", typeforge.Leaf(typeforge.Int)),
		typeforge.F("debug", typeforge.Leaf(typeforge.Bool)),
	)
	res := typeforge.Validate(context.Background(), map[string]any{}, schema)
	if len(res.Violations) != 3 {
		t.Fatalf("every absent key must be reported, got %v", res.Violations)
	}
	for i, want := range []string{"$.host", "$.port", "$.debug"} {
		v := res.Violations[i]
		if v.Path != want || v.Kind != typeforge.CodeMissingKey || v.Found != "missing" {
			t.Fatalf("violation %d = %+v, want missing_key at %s", i, v, want)
		}
	}
}

func TestValidate_SchemaMismatchStopsDescent(t *testing.T) {
	res := typeforge.Validate(context.Background(), 42, typeforge.Keyed(
		typeforge.F("a", typeforge.Leaf(typeforge.Int)),
	))
	if len(res.Violations) != 1 {
		t.Fatalf("mismatched shape must not descend, got %v", res.Violations)
	}
	v := res.Violations[0]
	if v.Path != "$" || v.Kind != typeforge.CodeSchemaMismatch || v.Found != "int" {
		t.Fatalf("unexpected violation: %+v", v)
	}

	res = typeforge.Validate(context.Background(), "not a list", typeforge.Seq(typeforge.Leaf(typeforge.Int)))
	if len(res.Violations) != 1 || res.Violations[0].Kind != typeforge.CodeSchemaMismatch {
		t.Fatalf("text is not a sequence: %v", res.Violations)
	}
}

func TestValidate_NestedPaths(t *testing.T) {
	schema := typeforge.Keyed(
		typeforge.F("server", typeforge.Keyed(
			typeforge.F("ports", typeforge.Seq(typeforge.Leaf(typeforge.Int))),
		)),
	)
	doc := map[string]any{
		"server": map[string]any{"ports": []any{80, "x", 443}},
	}
	res := typeforge.Validate(context.Background(), doc, schema)
	if len(res.Violations) != 1 || res.Violations[0].Path != "$.server.ports[1]" {
		t.Fatalf("nested path wrong: %v", res.Violations)
	}
}

func TestValidate_FailFast(t *testing.T) {
	schema := typeforge.Keyed(
		typeforge.F("a", typeforge.Leaf(typeforge.Int)),
		typeforge.F("b", typeforge.Leaf(typeforge.Int)),
	)
	doc := map[string]any{"a": "x", "b": "y"}

	res := typeforge.Validate(context.Background(), doc, schema, typeforge.Opt{FailFast: true})
	if res.Valid || len(res.Violations) != 1 {
		t.Fatalf("fail-fast should stop after the first violation: %v", res.Violations)
	}

	res = typeforge.Validate(typeforge.WithFailFast(context.Background()), doc, schema)
	if len(res.Violations) != 1 {
		t.Fatalf("context fail-fast should behave the same: %v", res.Violations)
	}

	res = typeforge.Validate(context.Background(), doc, schema)
	if len(res.Violations) != 2 {
		t.Fatalf("full run should report both: %v", res.Violations)
	}
}

func TestValidate_AllowMissing(t *testing.T) {
	schema := typeforge.Keyed(
		typeforge.F("host", typeforge.Leaf(typeforge.String)),
		typeforge.F("port", typeforge.Leaf(typeforge.Int)),
	)
	partial := map[string]any{"host": "localhost"}

	if res := typeforge.Validate(context.Background(), partial, schema); res.Valid {
		t.Fatalf("absent keys fail by default")
	}
	res := typeforge.Validate(context.Background(), partial, schema, typeforge.Opt{AllowMissing: true})
	if !res.Valid {
		t.Fatalf("AllowMissing should accept a partial document: %v", res.Violations)
	}

	wrong := map[string]any{"host": 9}
	res = typeforge.Validate(context.Background(), wrong, schema, typeforge.Opt{AllowMissing: true})
	if res.Valid || res.Violations[0].Path != "$.host" {
		t.Fatalf("present keys still validate: %v", res.Violations)
	}
}

func TestConvert_LeafCoercion(t *testing.T) {
	ctx := context.Background()

	res := typeforge.Convert(ctx, " 42 ", typeforge.Leaf(typeforge.Int))
	if !res.Valid || res.Converted != int64(42) {
		t.Fatalf("text should coerce to int: %+v", res)
	}

	// Alternatives are tried in declared order; the first success wins.
	res = typeforge.Convert(ctx, "42", typeforge.Leaf(typeforge.Float, typeforge.Int))
	if res.Converted != float64(42) {
		t.Fatalf("first alternative should win: %#v", res.Converted)
	}
	res = typeforge.Convert(ctx, "42", typeforge.Leaf(typeforge.Int, typeforge.Float))
	if res.Converted != int64(42) {
		t.Fatalf("declaration order decides: %#v", res.Converted)
	}

	// A conforming value passes through untouched.
	res = typeforge.Convert(ctx, 7, typeforge.Leaf(typeforge.Int))
	if res.Converted != 7 {
		t.Fatalf("conforming value must not be rewritten: %#v", res.Converted)
	}
}

func TestConvert_ViolationKinds(t *testing.T) {
	ctx := context.Background()

	res := typeforge.Convert(ctx, "abc", typeforge.Leaf(typeforge.Int))
	if res.Valid || res.Violations[0].Kind != typeforge.CodeConversionError {
		t.Fatalf("failed conversion over a convertible pair: %v", res.Violations)
	}

	res = typeforge.Convert(ctx, []any{1}, typeforge.Leaf(typeforge.Int))
	if res.Valid || res.Violations[0].Kind != typeforge.CodeWrongType {
		t.Fatalf("no conversion path at all is a wrong type: %v", res.Violations)
	}

	// Nil alternatives are skipped during conversion.
	res = typeforge.Convert(ctx, "abc", typeforge.Leaf(typeforge.Nil, typeforge.Int))
	if res.Valid || res.Violations[0].Kind != typeforge.CodeConversionError {
		t.Fatalf("nil alternative must not absorb the attempt: %v", res.Violations)
	}
}

func TestConvert_DocumentRoundTrip(t *testing.T) {
	ctx := context.Background()
	schema := typeforge.Keyed(
		typeforge.F("port", typeforge.Leaf(typeforge.Int)),
		typeforge.F("debug", typeforge.Leaf(typeforge.Bool)),
		typeforge.F("name", typeforge.Leaf(typeforge.String)),
	)
	doc := map[string]any{"port": "8080", "debug": "yes", "name": "svc", "extra": true}

	res := typeforge.Convert(ctx, doc, schema)
	if !res.Valid {
		t.Fatalf("conversion should succeed: %v", res.Violations)
	}
	converted, ok := res.Converted.(map[string]any)
	if !ok {
		t.Fatalf("converted document should be a record: %#v", res.Converted)
	}
	if converted["port"] != int64(8080) || converted["debug"] != true || converted["name"] != "svc" {
		t.Fatalf("unexpected converted values: %#v", converted)
	}
	if _, ok := converted["extra"]; ok || len(converted) != 3 {
		t.Fatalf("converted record must contain only schema keys: %#v", converted)
	}

	// Converting a converted document is the identity.
	if strict := typeforge.Validate(ctx, converted, schema); !strict.Valid {
		t.Fatalf("converted document should validate strictly: %v", strict.Violations)
	}
	again := typeforge.Convert(ctx, converted, schema)
	if !reflect.DeepEqual(again.Converted, res.Converted) {
		t.Fatalf("conversion is not idempotent: %#v vs %#v", again.Converted, res.Converted)
	}
}

func TestConvert_SequencePreservesOrder(t *testing.T) {
	res := typeforge.Convert(context.Background(), []any{"1", "2", "3"}, typeforge.Seq(typeforge.Leaf(typeforge.Int)))
	if !res.Valid {
		t.Fatalf("sequence conversion failed: %v", res.Violations)
	}
	want := []any{int64(1), int64(2), int64(3)}
	if !reflect.DeepEqual(res.Converted, want) {
		t.Fatalf("order or length not preserved: %#v", res.Converted)
	}
}

func TestConvert_NeverPartial(t *testing.T) {
	schema := typeforge.Keyed(
		typeforge.F("a", typeforge.Leaf(typeforge.Int)),
		typeforge.F("b", typeforge.Leaf(typeforge.Int)),
	)
	res := typeforge.Convert(context.Background(), map[string]any{"a": "1", "b": "x"}, schema)
	if res.Valid {
		t.Fatalf("document should fail")
	}
	if res.Converted != nil {
		t.Fatalf("an invalid run must not expose a partial conversion: %#v", res.Converted)
	}
}

func TestValidateKeyed(t *testing.T) {
	ctx := context.Background()
	schema := typeforge.Keyed(
		typeforge.F("Port", typeforge.Leaf(typeforge.Int)),
		typeforge.F("Debug", typeforge.Leaf(typeforge.Bool)),
	)

	res := typeforge.ValidateKeyed(ctx, map[string]any{"Port": 80, "Debug": false}, schema)
	if !res.Valid {
		t.Fatalf("keyed validation failed: %v", res.Violations)
	}

	// Struct values are viewed through their exported fields.
	type cfg struct {
		Port  int
		Debug bool
	}
	if res := typeforge.ValidateKeyed(ctx, cfg{Port: 8080, Debug: true}, schema); !res.Valid {
		t.Fatalf("struct input should validate: %v", res.Violations)
	}

	res = typeforge.ValidateKeyed(ctx, map[string]any{}, typeforge.Leaf(typeforge.Int))
	if res.Valid || res.Violations[0].Kind != typeforge.CodeSchemaMismatch {
		t.Fatalf("non-keyed schema is a usage mismatch: %v", res.Violations)
	}
}

func TestCheck(t *testing.T) {
	ctx := context.Background()
	schema := typeforge.Seq(typeforge.Leaf(typeforge.Int))
	if !typeforge.Check(ctx, []any{1, 2, 3}, schema) {
		t.Fatalf("conforming value should check true")
	}
	if typeforge.Check(ctx, []any{1, "x", 3}, schema) {
		t.Fatalf("non-conforming value should check false")
	}
}
