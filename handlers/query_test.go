package handlers

import (
	"net/http/httptest"
	"testing"
)

func TestParseListParamsDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/work-orders", nil)

	limit, skip := parseListParams(r)
	if limit != 100 || skip != 0 {
		t.Errorf("got limit=%d skip=%d, want 100/0", limit, skip)
	}
}

func TestParseListParamsExplicit(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/work-orders?limit=25&skip=50", nil)

	limit, skip := parseListParams(r)
	if limit != 25 || skip != 50 {
		t.Errorf("got limit=%d skip=%d, want 25/50", limit, skip)
	}
}

func TestParseListParamsCapAndGarbage(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/work-orders?limit=99999&skip=-3", nil)

	limit, skip := parseListParams(r)
	if limit != maxListLimit {
		t.Errorf("limit %d not capped at %d", limit, maxListLimit)
	}
	if skip != 0 {
		t.Errorf("negative skip must fall back to 0, got %d", skip)
	}

	r = httptest.NewRequest("GET", "/api/work-orders?limit=abc", nil)
	limit, _ = parseListParams(r)
	if limit != 100 {
		t.Errorf("unparseable limit must fall back to 100, got %d", limit)
	}
}

func TestEqualityFilter(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/work-orders?status=open&priority=&bogus=x", nil)

	filter := equalityFilter(r, "status", "priority", "assignedTo")
	if len(filter) != 1 {
		t.Fatalf("expected exactly one filter entry, got %v", filter)
	}
	if filter["status"] != "open" {
		t.Errorf("status filter missing: %v", filter)
	}
}
