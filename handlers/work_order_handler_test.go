package handlers

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

func TestWorkOrderUpdateDocEmpty(t *testing.T) {
	if doc := workOrderUpdateDoc(UpdateWorkOrderRequest{}); len(doc) != 0 {
		t.Errorf("empty request must build an empty update doc, got %v", doc)
	}
}

func TestWorkOrderUpdateDocPartial(t *testing.T) {
	status := "completed"
	cost := 125.50
	doc := workOrderUpdateDoc(UpdateWorkOrderRequest{Status: &status, Cost: &cost})

	if len(doc) != 2 {
		t.Fatalf("expected 2 fields, got %v", doc)
	}
	if doc["status"] != "completed" || doc["cost"] != 125.50 {
		t.Errorf("unexpected doc: %v", doc)
	}
	if _, ok := doc["title"]; ok {
		t.Error("unset fields must not appear in the update doc")
	}
}

func TestWorkOrderUpdateDocKeepsZeroValues(t *testing.T) {
	// An explicit "" or 0 is a real value, distinct from an absent field.
	empty := ""
	zero := 0.0
	doc := workOrderUpdateDoc(UpdateWorkOrderRequest{AssignedTo: &empty, ActualTime: &zero})

	if doc["assignedTo"] != "" {
		t.Errorf("explicit empty assignee dropped: %v", doc)
	}
	if doc["actualTime"] != 0.0 {
		t.Errorf("explicit zero actualTime dropped: %v", doc)
	}
}

func TestOverdueFilter(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	filter := overdueFilter(now)

	due, ok := filter["dueDate"].(bson.M)
	if !ok || due["$lt"] != now {
		t.Errorf("dueDate clause wrong: %v", filter)
	}

	status, ok := filter["status"].(bson.M)
	if !ok {
		t.Fatalf("status clause wrong: %v", filter)
	}
	statuses, ok := status["$in"].([]string)
	if !ok || len(statuses) != 2 {
		t.Fatalf("status $in wrong: %v", status)
	}
	// Completed and cancelled orders can never be overdue.
	for _, s := range statuses {
		if s == "completed" || s == "cancelled" {
			t.Errorf("status %q must not count as overdue", s)
		}
	}
}
