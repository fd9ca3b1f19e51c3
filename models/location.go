// models/location.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Location struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	LegacyID    string             `bson:"-" json:"_id,omitempty"`
	LocationID  string             `bson:"locationId" json:"locationId"`
	Name        string             `bson:"name" json:"name"`
	Type        string             `bson:"type" json:"type"`
	Address     string             `bson:"address" json:"address"`
	City        string             `bson:"city" json:"city"`
	State       string             `bson:"state" json:"state"`
	ZipCode     string             `bson:"zipCode" json:"zipCode"`
	Coordinates map[string]float64 `bson:"coordinates" json:"coordinates"`
	Size        int                `bson:"size" json:"size"`
	Floors      int                `bson:"floors" json:"floors"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`

	// Denormalized counters, recomputed after asset and work order
	// mutations. Eventually consistent: reads between a mutation and its
	// recompute can return stale counts.
	AssetCount int `bson:"assetCount" json:"assetCount"`
	ActiveWOs  int `bson:"activeWOs" json:"activeWOs"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (l *Location) SyncID() {
	l.LegacyID = l.ID.Hex()
}
