package typeforge_test

import (
	"math"
	"strings"
	"testing"

	typeforge "github.com/reoring/typeforge"
)

func TestAsInt(t *testing.T) {
	accepted := []struct {
		in   any
		want int64
	}{
		{true, 1},
		{false, 0},
		{42, 42},
		{uint8(7), 7},
		{3.9, 3},
		{-3.9, -3},
		{" 42 ", 42},
		{"-17", -17},
		{[]byte("99"), 99},
	}
	for _, c := range accepted {
		got, ok := typeforge.AsInt(c.in)
		if !ok || got != c.want {
			t.Fatalf("AsInt(%#v) = %d (ok=%v), want %d", c.in, got, ok, c.want)
		}
	}

	refused := []any{nil, "3.5", "0x10", "ten", "", math.NaN(), math.Inf(1), uint64(math.MaxUint64), []any{1}}
	for _, in := range refused {
		if got, ok := typeforge.AsInt(in); ok {
			t.Fatalf("AsInt(%#v) accepted as %d, want refusal", in, got)
		}
	}
}

func TestAsFloat(t *testing.T) {
	if f, ok := typeforge.AsFloat("2.5"); !ok || f != 2.5 {
		t.Fatalf("AsFloat(\"2.5\") = %v (ok=%v)", f, ok)
	}
	if f, ok := typeforge.AsFloat(true); !ok || f != 1 {
		t.Fatalf("AsFloat(true) = %v (ok=%v)", f, ok)
	}
	if f, ok := typeforge.AsFloat(7); !ok || f != 7 {
		t.Fatalf("AsFloat(7) = %v (ok=%v)", f, ok)
	}
	if f, ok := typeforge.AsFloat("inf"); !ok || !math.IsInf(f, 1) {
		t.Fatalf("AsFloat(\"inf\") = %v (ok=%v)", f, ok)
	}
	if f, ok := typeforge.AsFloat(" nan "); !ok || !math.IsNaN(f) {
		t.Fatalf("AsFloat(\" nan \") = %v (ok=%v)", f, ok)
	}
	for _, in := range []any{nil, "many", []byte("1.5"), map[string]any{}} {
		if _, ok := typeforge.AsFloat(in); ok {
			t.Fatalf("AsFloat(%#v) should refuse", in)
		}
	}
}

func TestAsBool(t *testing.T) {
	truthy := []any{true, " YES ", "On", "t", "1", 1, -2, 0.5, []any{0}, map[string]any{"k": 1}, []byte("x")}
	for _, in := range truthy {
		if b, ok := typeforge.AsBool(in); !ok || !b {
			t.Fatalf("AsBool(%#v) = %v (ok=%v), want true", in, b, ok)
		}
	}
	falsy := []any{nil, false, "no", " OFF ", "f", "0", 0, 0.0, []any{}, map[string]any{}, []byte{}}
	for _, in := range falsy {
		if b, ok := typeforge.AsBool(in); !ok || b {
			t.Fatalf("AsBool(%#v) = %v (ok=%v), want false", in, b, ok)
		}
	}
	for _, in := range []any{"maybe", "", "  ", struct{}{}} {
		if _, ok := typeforge.AsBool(in); ok {
			t.Fatalf("AsBool(%#v) should refuse unrecognized text", in)
		}
	}
}

func TestAsString(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"plain", "plain"},
		{[]byte("utf8 ok"), "utf8 ok"},
		{true, "true"},
		{3.5, "3.5"},
		{42, "42"},
	}
	for _, c := range cases {
		got, ok := typeforge.AsString(c.in)
		if !ok || got != c.want {
			t.Fatalf("AsString(%#v) = %q (ok=%v), want %q", c.in, got, ok, c.want)
		}
	}

	got, ok := typeforge.AsString([]byte{0xff, 0xfe})
	if !ok || !strings.HasPrefix(got, `"`) {
		t.Fatalf("invalid UTF-8 should render as a quoted literal, got %q", got)
	}
}

func TestTryConvert(t *testing.T) {
	if res := typeforge.TryConvert("already", typeforge.String); !res.OK() {
		t.Fatalf("identity should pass through: %v", res)
	}

	res := typeforge.TryConvert(" 42 ", typeforge.Int)
	if v, ok := res.Value(); !ok || v != int64(42) {
		t.Fatalf("TryConvert(\" 42 \", Int) = %v (ok=%v)", v, ok)
	}

	if got := typeforge.TryConvert(nil, typeforge.Int).Err().Error(); got != "cannot convert nil to int" {
		t.Fatalf("nil error text: %q", got)
	}
	if got := typeforge.TryConvert("abc", typeforge.Int).Err().Error(); got != "cannot convert string to int" {
		t.Fatalf("refusal error text: %q", got)
	}

	if res := typeforge.TryConvert(3, typeforge.Any); !res.OK() {
		t.Fatalf("anything converts to any: %v", res)
	}
}

func TestRegisterConverter(t *testing.T) {
	celsius := typeforge.NewType("celsius", typeforge.KindFloat)

	if res := typeforge.TryConvert(21.5, celsius); res.OK() {
		t.Fatalf("unregistered target should fail, got %v", res)
	}

	typeforge.RegisterConverter(celsius, func(v any) (any, bool) {
		f, ok := typeforge.AsFloat(v)
		return f, ok
	})
	res := typeforge.TryConvert("21.5", celsius)
	if v, ok := res.Value(); !ok || v != 21.5 {
		t.Fatalf("registered converter should run: %v (ok=%v)", v, ok)
	}

	// A later registration replaces the earlier one.
	typeforge.RegisterConverter(celsius, func(v any) (any, bool) { return 0.0, true })
	if v, _ := typeforge.TryConvert("21.5", celsius).Value(); v != 0.0 {
		t.Fatalf("re-registration should win, got %v", v)
	}
}

func TestTo(t *testing.T) {
	if v, ok := typeforge.To[int]("42").Value(); !ok || v != 42 {
		t.Fatalf("To[int] = %v (ok=%v)", v, ok)
	}
	if v, ok := typeforge.To[bool]("off").Value(); !ok || v != false {
		t.Fatalf("To[bool] = %v (ok=%v)", v, ok)
	}
	if v, ok := typeforge.To[string](3.5).Value(); !ok || v != "3.5" {
		t.Fatalf("To[string] = %v (ok=%v)", v, ok)
	}
	if v, ok := typeforge.To[float32](7).Value(); !ok || v != 7 {
		t.Fatalf("To[float32] = %v (ok=%v)", v, ok)
	}
	if res := typeforge.To[int]("nope"); res.OK() {
		t.Fatalf("To should fail on unparseable input: %v", res)
	}
}

func TestCoerceAndFallback(t *testing.T) {
	v, err := typeforge.Coerce("10", typeforge.Int)
	if err != nil || v != int64(10) {
		t.Fatalf("Coerce = %v, %v", v, err)
	}
	if _, err := typeforge.Coerce("ten", typeforge.Int); err == nil {
		t.Fatalf("Coerce should surface the conversion error")
	}

	if got := typeforge.ConvertWithFallback("8", typeforge.Int, typeforge.Float); got != int64(8) {
		t.Fatalf("primary conversion should win: %#v", got)
	}
	if got := typeforge.ConvertWithFallback("8.5", typeforge.Int, typeforge.Float); got != 8.5 {
		t.Fatalf("fallback conversion should apply: %#v", got)
	}
	if got := typeforge.ConvertWithFallback("free", typeforge.Int, typeforge.Float); got != "free" {
		t.Fatalf("unconvertible input should come back untouched: %#v", got)
	}
}
