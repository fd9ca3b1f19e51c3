// models/asset.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Asset struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	LegacyID        string             `bson:"-" json:"_id,omitempty"`
	AssetNumber     string             `bson:"assetNumber" json:"assetNumber"`
	Name            string             `bson:"name" json:"name"`
	Category        string             `bson:"category" json:"category"`
	Manufacturer    string             `bson:"manufacturer" json:"manufacturer"`
	Model           string             `bson:"model" json:"model"`
	SerialNumber    string             `bson:"serialNumber" json:"serialNumber"`
	PurchaseDate    *Date              `bson:"purchaseDate,omitempty" json:"purchaseDate,omitempty"`
	InstallDate     *Date              `bson:"installDate,omitempty" json:"installDate,omitempty"`
	WarrantyExpiry  *Date              `bson:"warrantyExpiry,omitempty" json:"warrantyExpiry,omitempty"`
	Location        string             `bson:"location" json:"location"`
	Status          string             `bson:"status" json:"status"`       // operational, down, maintenance, retired
	Condition       string             `bson:"condition" json:"condition"` // excellent, good, fair, poor
	MaintenanceCost float64            `bson:"maintenanceCost" json:"maintenanceCost"`
	Downtime        int                `bson:"downtime" json:"downtime"`
	LastMaintenance *Date              `bson:"lastMaintenance,omitempty" json:"lastMaintenance,omitempty"`
	NextMaintenance *Date              `bson:"nextMaintenance,omitempty" json:"nextMaintenance,omitempty"`
	Criticality     string             `bson:"criticality" json:"criticality"` // critical, high, medium, low
	Specifications  map[string]any     `bson:"specifications" json:"specifications"`
	ImageURL        string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (a *Asset) SyncID() {
	a.LegacyID = a.ID.Hex()
}
