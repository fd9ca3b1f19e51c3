package handlers

import (
	"testing"
	"time"
)

func TestDaysUntilDue(t *testing.T) {
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		nextDue  time.Time
		wantDays int
		wantDue  bool
	}{
		{"due right now", now, 0, true},
		{"due later today", now.Add(6 * time.Hour), 0, true},
		{"due in two days", now.Add(48 * time.Hour), 2, true},
		{"at the horizon edge", now.Add(alertHorizon), 3, true},
		{"just past the horizon", now.Add(alertHorizon + time.Minute), 0, false},
		{"already overdue", now.Add(-time.Hour), 0, false},
		{"far in the future", now.Add(30 * 24 * time.Hour), 0, false},
	}

	for _, c := range cases {
		days, due := daysUntilDue(c.nextDue, now)
		if due != c.wantDue || days != c.wantDays {
			t.Errorf("%s: got (%d, %v), want (%d, %v)", c.name, days, due, c.wantDays, c.wantDue)
		}
	}
}
