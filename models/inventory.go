// models/inventory.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type InventoryItem struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	LegacyID    string             `bson:"-" json:"_id,omitempty"`
	PartNumber  string             `bson:"partNumber" json:"partNumber"`
	Name        string             `bson:"name" json:"name"`
	Category    string             `bson:"category" json:"category"`
	Description string             `bson:"description" json:"description"`
	Quantity    int                `bson:"quantity" json:"quantity"`
	MinStock    int                `bson:"minStock" json:"minStock"`
	MaxStock    int                `bson:"maxStock" json:"maxStock"`
	Unit        string             `bson:"unit" json:"unit"`
	UnitCost    float64            `bson:"unitCost" json:"unitCost"`
	Location    string             `bson:"location" json:"location"`
	Supplier    string             `bson:"supplier" json:"supplier"`
	LastOrdered *Date              `bson:"lastOrdered,omitempty" json:"lastOrdered,omitempty"`
	Status      string             `bson:"status" json:"status"` // in-stock, low-stock, out-of-stock
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (i *InventoryItem) SyncID() {
	i.LegacyID = i.ID.Hex()
}
