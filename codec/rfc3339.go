// Package codec registers converters for common wire representations:
// timestamps carried as RFC3339 text or Unix seconds, and durations
// carried as Go duration text or nanosecond counts.
package codec

import (
	"strings"
	"time"

	typeforge "github.com/reoring/typeforge"
)

// Timestamp is the conversion target for points in time. Text parses as
// RFC3339, numbers count Unix seconds.
var Timestamp = typeforge.NewType("timestamp", typeforge.KindOpaque)

func init() {
	typeforge.RegisterConverter(Timestamp, func(v any) (any, bool) {
		return AsTime(v)
	})
	typeforge.RegisterConverter(Duration, func(v any) (any, bool) {
		return AsDuration(v)
	})
}

// AsTime converts v to a time.Time. Text and byte strings parse as
// RFC3339 with optional fractional seconds; integers and floats count
// Unix seconds, truncated toward zero. Everything else is refused.
func AsTime(v any) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, true
	case string:
		return parseRFC3339(x)
	case []byte:
		return parseRFC3339(string(x))
	case bool, nil:
		return time.Time{}, false
	}
	if n, ok := typeforge.AsInt(v); ok {
		return time.Unix(n, 0).UTC(), true
	}
	return time.Time{}, false
}

// FormatRFC3339 renders t canonically: UTC, RFC3339 with fractional
// seconds only when present.
func FormatRFC3339(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseRFC3339(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	// RFC3339Nano first; plain RFC3339 catches offsets it rejects.
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	t, err := time.Parse(time.RFC3339, s)
	return t, err == nil
}
