// models/work_order.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type WorkOrder struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	// LegacyID mirrors ID under the _id key for older clients.
	LegacyID        string    `bson:"-" json:"_id,omitempty"`
	WorkOrderNumber string    `bson:"workOrderNumber" json:"workOrderNumber"`
	Title           string    `bson:"title" json:"title"`
	Description     string    `bson:"description" json:"description"`
	AssetID         string    `bson:"assetId,omitempty" json:"assetId,omitempty"`
	AssetName       string    `bson:"-" json:"assetName,omitempty"`
	Priority        string    `bson:"priority" json:"priority"` // critical, high, medium, low
	Status          string    `bson:"status" json:"status"`     // open, in-progress, completed
	Type            string    `bson:"type" json:"type"`         // preventive, corrective
	AssignedTo      string    `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	CreatedBy       string    `bson:"createdBy" json:"createdBy"`
	CreatedDate     time.Time `bson:"createdDate" json:"createdDate"`
	DueDate         Date      `bson:"dueDate" json:"dueDate"`
	CompletedDate   *Date     `bson:"completedDate,omitempty" json:"completedDate,omitempty"`
	EstimatedTime   float64   `bson:"estimatedTime" json:"estimatedTime"`
	ActualTime      *float64  `bson:"actualTime,omitempty" json:"actualTime,omitempty"`
	Location        string    `bson:"location" json:"location"`
	Cost            float64   `bson:"cost" json:"cost"`
	PartsUsed       []string  `bson:"partsUsed" json:"partsUsed"`
	Notes           string    `bson:"notes" json:"notes"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (wo *WorkOrder) SyncID() {
	wo.LegacyID = wo.ID.Hex()
}
