package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateUnmarshalCalendarDate(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"2025-06-01"`), &d); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	want := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if !d.Time.Equal(want) {
		t.Errorf("got %v, want %v (time-of-day must be zeroed)", d.Time, want)
	}
}

func TestDateUnmarshalRFC3339(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"2025-06-01T14:30:00Z"`), &d); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	want := time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC)
	if !d.Time.Equal(want) {
		t.Errorf("got %v, want %v", d.Time, want)
	}
}

func TestDateUnmarshalInvalid(t *testing.T) {
	for _, input := range []string{`"06/01/2025"`, `"yesterday"`, `42`} {
		var d Date
		if err := json.Unmarshal([]byte(input), &d); err == nil {
			t.Errorf("expected error for %s", input)
		}
	}
}

func TestDateUnmarshalNull(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`null`), &d); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !d.IsZero() {
		t.Errorf("null must produce zero date, got %v", d.Time)
	}
}

func TestDateMarshalRoundTrip(t *testing.T) {
	d := NewDate(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

	out, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(out) != `"2025-06-01T00:00:00Z"` {
		t.Errorf("got %s, want full RFC3339 timestamp", out)
	}

	var back Date
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !back.Time.Equal(d.Time) {
		t.Errorf("round trip changed value: %v != %v", back.Time, d.Time)
	}
}

func TestDateMarshalZero(t *testing.T) {
	out, err := json.Marshal(Date{})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(out) != "null" {
		t.Errorf("zero date must marshal to null, got %s", out)
	}
}
