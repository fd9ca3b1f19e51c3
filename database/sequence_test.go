package database

import "testing"

func TestFormatSequenceNumber(t *testing.T) {
	cases := []struct {
		prefix string
		seq    int64
		want   string
	}{
		{"WO", 1, "WO-001"},
		{"WO", 42, "WO-042"},
		{"ASSET", 999, "ASSET-999"},
		{"SR", 1000, "SR-1000"},
		{"PM", 12345, "PM-12345"},
	}

	for _, c := range cases {
		if got := FormatSequenceNumber(c.prefix, c.seq); got != c.want {
			t.Errorf("FormatSequenceNumber(%q, %d) = %q, want %q", c.prefix, c.seq, got, c.want)
		}
	}
}
