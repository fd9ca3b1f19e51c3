// models/preventive_maintenance.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PreventiveMaintenance struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	LegacyID          string             `bson:"-" json:"_id,omitempty"`
	PMNumber          string             `bson:"pmNumber" json:"pmNumber"`
	Name              string             `bson:"name" json:"name"`
	AssetID           string             `bson:"assetId" json:"assetId"`
	Frequency         string             `bson:"frequency" json:"frequency"` // daily, weekly, monthly, quarterly, yearly
	LastCompleted     *Date              `bson:"lastCompleted,omitempty" json:"lastCompleted,omitempty"`
	NextDue           Date               `bson:"nextDue" json:"nextDue"`
	EstimatedDuration float64            `bson:"estimatedDuration" json:"estimatedDuration"`
	AssignedTo        string             `bson:"assignedTo" json:"assignedTo"`
	Priority          string             `bson:"priority" json:"priority"`
	Tasks             []string           `bson:"tasks" json:"tasks"`
	PartsRequired     []string           `bson:"partsRequired" json:"partsRequired"`
	Active            bool               `bson:"active" json:"active"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (pm *PreventiveMaintenance) SyncID() {
	pm.LegacyID = pm.ID.Hex()
}

// PMAlert is one row of the upcoming-maintenance poll under
// /api/notifications/alerts.
type PMAlert struct {
	ID        string `json:"id"`
	PMNumber  string `json:"pmNumber"`
	Name      string `json:"name"`
	AssetID   string `json:"assetId"`
	Priority  string `json:"priority"`
	NextDue   Date   `json:"nextDue"`
	DaysUntil int    `json:"daysUntil"`
}
