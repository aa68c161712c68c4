package typeforge

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	json "github.com/goccy/go-json"
)

// ConverterFunc attempts to convert a value into a target type's
// representation. The boolean reports whether the conversion applied; a
// false return is a refusal, not an error.
type ConverterFunc func(v any) (any, bool)

// AsInt converts v to an int64 where a faithful integer reading exists.
// Bools become 1 or 0, floats truncate toward zero, text and byte strings
// parse as base-10 integers after trimming surrounding whitespace. NaN,
// infinities, out-of-range values and non-decimal text such as "0x10" are
// refused, as is nil.
func AsInt(v any) (int64, bool) {
	switch n := v.(type) {
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return uintToInt64(uint64(n))
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return uintToInt64(n)
	case float32:
		return floatToInt64(float64(n))
	case float64:
		return floatToInt64(n)
	case string:
		return parseInt(n)
	case []byte:
		return parseInt(string(n))
	case json.Number:
		return parseInt(string(n))
	}
	return 0, false
}

func uintToInt64(u uint64) (int64, bool) {
	if u > math.MaxInt64 {
		return 0, false
	}
	return int64(u), true
}

func floatToInt64(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f >= math.MaxInt64 || f <= math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

func parseInt(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n, err == nil
}

// AsFloat converts v to a float64. Bools become 1 or 0, integers widen,
// and text parses including the "inf" and "nan" spellings. Nil and byte
// strings are refused.
func AsFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	case json.Number:
		f, err := strconv.ParseFloat(string(n), 64)
		return f, err == nil
	}
	return 0, false
}

var (
	truthyTokens = map[string]bool{"true": true, "yes": true, "1": true, "y": true, "t": true, "on": true}
	falsyTokens  = map[string]bool{"false": true, "no": true, "0": true, "n": true, "f": true, "off": true}
)

// AsBool converts v to a bool. Nil is false, numbers are true when
// non-zero, collections and byte strings are true when non-empty. Text
// must spell a recognized token ("true"/"false", "yes"/"no", "on"/"off",
// "1"/"0", "y"/"n", "t"/"f", case insensitive); any other text is refused.
func AsBool(v any) (bool, bool) {
	if v == nil {
		return false, true
	}
	switch n := v.(type) {
	case bool:
		return n, true
	case string:
		s := strings.ToLower(strings.TrimSpace(n))
		if truthyTokens[s] {
			return true, true
		}
		if falsyTokens[s] {
			return false, true
		}
		return false, false
	case []byte:
		return len(n) > 0, true
	case json.Number:
		f, err := strconv.ParseFloat(string(n), 64)
		return f != 0, err == nil
	}
	if f, ok := AsFloat(v); ok {
		return f != 0, true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() > 0, true
	}
	return false, false
}

// AsString renders v as text. It is total: nil becomes the empty string,
// byte strings decode as UTF-8 or fall back to a quoted literal, and
// everything else takes its natural rendering.
func AsString(v any) (string, bool) {
	switch s := v.(type) {
	case nil:
		return "", true
	case string:
		return s, true
	case []byte:
		if utf8.Valid(s) {
			return string(s), true
		}
		return strconv.Quote(string(s)), true
	case json.Number:
		return string(s), true
	case bool:
		return strconv.FormatBool(s), true
	case int64:
		return strconv.FormatInt(s, 10), true
	case float64:
		return strconv.FormatFloat(s, 'g', -1, 64), true
	}
	return fmt.Sprintf("%v", v), true
}

// AsBytes converts v to a byte string. Only text and byte strings qualify.
func AsBytes(v any) ([]byte, bool) {
	switch b := v.(type) {
	case []byte:
		out := make([]byte, len(b))
		copy(out, b)
		return out, true
	case string:
		return []byte(b), true
	}
	return nil, false
}

var builtinConverters = map[string]ConverterFunc{
	Int.Name(): func(v any) (any, bool) {
		n, ok := AsInt(v)
		return n, ok
	},
	Float.Name(): func(v any) (any, bool) {
		f, ok := AsFloat(v)
		return f, ok
	},
	Bool.Name(): func(v any) (any, bool) {
		b, ok := AsBool(v)
		return b, ok
	},
	String.Name(): func(v any) (any, bool) {
		s, ok := AsString(v)
		return s, ok
	},
	Bytes.Name(): func(v any) (any, bool) {
		b, ok := AsBytes(v)
		return b, ok
	},
}

var (
	convMu         sync.RWMutex
	customConverts = map[string]ConverterFunc{}
)

// RegisterConverter installs fn as the conversion routine for target. A
// later registration for the same type replaces the earlier one. The
// built-in converters for Int, Float, Bool, String and Bytes cannot be
// replaced.
func RegisterConverter(target Type, fn ConverterFunc) {
	convMu.Lock()
	defer convMu.Unlock()
	customConverts[target.Name()] = fn
}

func converterFor(target Type) (ConverterFunc, bool) {
	if fn, ok := builtinConverters[target.Name()]; ok {
		return fn, true
	}
	convMu.RLock()
	defer convMu.RUnlock()
	fn, ok := customConverts[target.Name()]
	return fn, ok
}

func hasConverter(target Type) bool {
	_, ok := converterFor(target)
	return ok
}

// TryConvert attempts to convert v into target and reports the outcome as
// a ConversionResult. Values already of the target type pass through
// unchanged, nil converts only to Nil, Any and the targets whose
// converters accept it, and unknown targets without a registered converter
// fail.
func TryConvert(v any, target Type) ConversionResult[any] {
	source := TypeOf(v)
	if source.Is(target) || target.Is(Any) {
		return Success(v)
	}
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

// To converts v into the Go type T, combining TryConvert with the
// reflection step needed to narrow the converted value into T.
func To[T any](v any) ConversionResult[T] {
	res := TryConvert(v, TypeFor[T]())
	if !res.OK() {
		return ConversionResult[T]{err: res.Err()}
	}
	raw, _ := res.Value()
	if out, ok := raw.(T); ok {
		return Success(out)
	}
	rt := reflect.TypeOf((*T)(nil)).Elem()
	rv := reflect.ValueOf(raw)
	if rv.IsValid() && rv.Type().ConvertibleTo(rt) {
		return Success(rv.Convert(rt).Interface().(T))
	}
	return Failuref[T]("conversion produced %T, want %s", raw, rt)
}

// Coerce converts v into target, returning an error instead of a result
// value when no conversion applies.
func Coerce(v any, target Type) (any, error) {
	return TryConvert(v, target).OrError(nil)
}

// ConvertWithFallback converts v into primary, then into fallback, and
// returns the original value untouched when neither applies.
func ConvertWithFallback(v any, primary, fallback Type) any {
	if res := TryConvert(v, primary); res.OK() {
		out, _ := res.Value()
		return out
	}
	if res := TryConvert(v, fallback); res.OK() {
		out, _ := res.Value()
		return out
	}
	return v
}
