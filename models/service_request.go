// models/service_request.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ServiceRequest struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	LegacyID      string             `bson:"-" json:"_id,omitempty"`
	RequestNumber string             `bson:"requestNumber" json:"requestNumber"`
	Title         string             `bson:"title" json:"title"`
	Description   string             `bson:"description" json:"description"`
	RequestedBy   string             `bson:"requestedBy" json:"requestedBy"`
	Department    string             `bson:"department" json:"department"`
	Location      string             `bson:"location" json:"location"`
	Priority      string             `bson:"priority" json:"priority"`
	Status        string             `bson:"status" json:"status"` // open, in-review, converted, closed
	Category      string             `bson:"category" json:"category"`
	RelatedAsset  string             `bson:"relatedAsset,omitempty" json:"relatedAsset,omitempty"`
	AssignedTo    string             `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	ConvertedToWO string             `bson:"convertedToWO,omitempty" json:"convertedToWO,omitempty"`
	CreatedDate   time.Time          `bson:"createdDate" json:"createdDate"`
	ClosedDate    *Date              `bson:"closedDate,omitempty" json:"closedDate,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (sr *ServiceRequest) SyncID() {
	sr.LegacyID = sr.ID.Hex()
}
