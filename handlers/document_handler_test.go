package handlers

import (
	"reflect"
	"testing"
)

func TestParseTags(t *testing.T) {
	cases := []struct {
		raw  string
		want []string
	}{
		{"", []string{}},
		{"manual", []string{"manual"}},
		{"manual, safety,  hvac ", []string{"manual", "safety", "hvac"}},
		{",,  ,", []string{}},
	}

	for _, c := range cases {
		if got := parseTags(c.raw); !reflect.DeepEqual(got, c.want) {
			t.Errorf("parseTags(%q) = %v, want %v", c.raw, got, c.want)
		}
	}
}
