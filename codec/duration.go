package codec

import (
	"strings"
	"time"

	typeforge "github.com/reoring/typeforge"
)

// Duration is the conversion target for time spans. Text parses with
// time.ParseDuration, numbers count nanoseconds.
var Duration = typeforge.NewType("duration", typeforge.KindOpaque)

// AsDuration converts v to a time.Duration. Text and byte strings parse
// in Go duration syntax ("1h30m", "250ms"); integers count nanoseconds.
// Everything else is refused.
func AsDuration(v any) (time.Duration, bool) {
	switch x := v.(type) {
	case time.Duration:
		return x, true
	case string:
		d, err := time.ParseDuration(strings.TrimSpace(x))
		return d, err == nil
	case []byte:
		d, err := time.ParseDuration(strings.TrimSpace(string(x)))
		return d, err == nil
	case bool, nil:
		return 0, false
	case float32, float64:
		return 0, false
	}
	if n, ok := typeforge.AsInt(v); ok {
		return time.Duration(n), true
	}
	return 0, false
}
