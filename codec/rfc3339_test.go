package codec

import (
	"context"
	"testing"
	"time"

	typeforge "github.com/reoring/typeforge"
)

func TestAsTime_Text(t *testing.T) {
	got, ok := AsTime("2025-01-01T00:00:00Z")
	if !ok {
		t.Fatalf("expected RFC3339 text to convert")
	}
	if !got.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected time: %v", got)
	}

	if _, ok := AsTime("2025-01-01T00:00:00.25+09:00"); !ok {
		t.Fatalf("expected fractional seconds with offset to convert")
	}
	if _, ok := AsTime("January 1st"); ok {
		t.Fatalf("expected loose text to be refused")
	}
}

func TestAsTime_UnixSeconds(t *testing.T) {
	got, ok := AsTime(int64(1735689600))
	if !ok {
		t.Fatalf("expected unix seconds to convert")
	}
	if want := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("unexpected time: %v (want %v)", got, want)
	}

	if _, ok := AsTime(true); ok {
		t.Fatalf("expected bool to be refused")
	}
	if _, ok := AsTime(nil); ok {
		t.Fatalf("expected nil to be refused")
	}
}

func TestFormatRFC3339_Roundtrip(t *testing.T) {
	in := "2025-06-15T12:30:45Z"
	tm, ok := AsTime(in)
	if !ok {
		t.Fatalf("expected text to convert")
	}
	if out := FormatRFC3339(tm); out != in {
		t.Fatalf("roundtrip mismatch: %s != %s", out, in)
	}

	// Offsets normalize to UTC.
	tm, _ = AsTime("2025-06-15T21:30:45+09:00")
	if out := FormatRFC3339(tm); out != "2025-06-15T12:30:45Z" {
		t.Fatalf("expected canonical UTC form, got %s", out)
	}
}

func TestTimestamp_RegisteredConverter(t *testing.T) {
	res := typeforge.TryConvert("2025-01-01T00:00:00Z", Timestamp)
	v, ok := res.Value()
	if !ok {
		t.Fatalf("expected conversion to succeed: %v", res.Err())
	}
	if _, isTime := v.(time.Time); !isTime {
		t.Fatalf("expected a time.Time, got %T", v)
	}

	schema := typeforge.Keyed(
		typeforge.F("created", typeforge.Leaf(Timestamp)),
	)
	out := typeforge.Convert(context.Background(), map[string]any{
		"created": "2025-01-01T00:00:00Z",
	}, schema)
	if !out.Valid {
		t.Fatalf("expected document to convert: %v", out.Violations)
	}
	doc := out.Converted.(map[string]any)
	if _, isTime := doc["created"].(time.Time); !isTime {
		t.Fatalf("expected converted field to hold time.Time, got %T", doc["created"])
	}
}
