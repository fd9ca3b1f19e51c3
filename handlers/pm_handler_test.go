package handlers

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dinu12141/CMMS-MADAMPE/models"
)

func TestWorkOrderFromPM(t *testing.T) {
	nextDue := models.NewDate(time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC))
	pm := models.PreventiveMaintenance{
		ID:                primitive.NewObjectID(),
		PMNumber:          "PM-004",
		Name:              "Quarterly pump inspection",
		AssetID:           "665f1f77bcf86cd799439011",
		Frequency:         "quarterly",
		NextDue:           nextDue,
		EstimatedDuration: 2.5,
		AssignedTo:        "j.fernando",
		Priority:          "high",
		Tasks:             []string{"Check seals", "Grease bearings"},
		PartsRequired:     []string{"PART-002"},
		Active:            true,
	}

	now := time.Date(2025, 7, 10, 9, 0, 0, 0, time.UTC)
	wo := workOrderFromPM(pm, "WO-017", now)

	if wo.WorkOrderNumber != "WO-017" {
		t.Errorf("work order number = %q", wo.WorkOrderNumber)
	}
	if wo.Title != "PM: Quarterly pump inspection" {
		t.Errorf("title = %q", wo.Title)
	}
	if wo.Type != "preventive" || wo.Status != "open" {
		t.Errorf("type/status = %q/%q, want preventive/open", wo.Type, wo.Status)
	}
	if wo.Priority != "high" || wo.AssignedTo != "j.fernando" {
		t.Errorf("priority/assignee = %q/%q", wo.Priority, wo.AssignedTo)
	}
	if wo.CreatedBy != "PM Scheduler" {
		t.Errorf("createdBy = %q", wo.CreatedBy)
	}
	if !wo.DueDate.Time.Equal(nextDue.Time) {
		t.Errorf("dueDate = %v, want schedule's nextDue %v", wo.DueDate.Time, nextDue.Time)
	}
	if wo.EstimatedTime != 2.5 {
		t.Errorf("estimatedTime = %v", wo.EstimatedTime)
	}
	if wo.Cost != 0 {
		t.Errorf("generated work order must start with zero cost, got %v", wo.Cost)
	}
	if wo.Notes != "Check seals\nGrease bearings" {
		t.Errorf("notes = %q", wo.Notes)
	}
	if len(wo.PartsUsed) != 1 || wo.PartsUsed[0] != "PART-002" {
		t.Errorf("partsUsed = %v", wo.PartsUsed)
	}
}

func TestWorkOrderFromPMDefaults(t *testing.T) {
	pm := models.PreventiveMaintenance{
		ID:       primitive.NewObjectID(),
		PMNumber: "PM-001",
		Name:     "Filter swap",
	}

	wo := workOrderFromPM(pm, "WO-001", time.Now().UTC())

	if wo.Priority != "medium" {
		t.Errorf("missing priority must default to medium, got %q", wo.Priority)
	}
	if wo.Location != "Unknown" {
		t.Errorf("missing asset must default location to Unknown, got %q", wo.Location)
	}
	if wo.Notes != "Generated from preventive maintenance plan" {
		t.Errorf("notes = %q", wo.Notes)
	}
	if wo.PartsUsed == nil {
		t.Error("partsUsed must be an empty slice, not nil")
	}
}

func TestPMUpdateDocEmpty(t *testing.T) {
	if doc := pmUpdateDoc(UpdatePMScheduleRequest{}); len(doc) != 0 {
		t.Errorf("empty request must build an empty update doc, got %v", doc)
	}
}

func TestPMUpdateDocPartial(t *testing.T) {
	active := false
	freq := "monthly"
	doc := pmUpdateDoc(UpdatePMScheduleRequest{Active: &active, Frequency: &freq})

	if len(doc) != 2 {
		t.Fatalf("expected 2 fields, got %v", doc)
	}
	if doc["active"] != false || doc["frequency"] != "monthly" {
		t.Errorf("unexpected doc: %v", doc)
	}
}
