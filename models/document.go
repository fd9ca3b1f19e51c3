// models/document.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Document struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	LegacyID       string             `bson:"-" json:"_id,omitempty"`
	DocumentNumber string             `bson:"documentNumber" json:"documentNumber"`
	Name           string             `bson:"name" json:"name"`
	Description    string             `bson:"description" json:"description"`
	Category       string             `bson:"category" json:"category"`
	FileType       string             `bson:"fileType" json:"fileType"`
	FileName       string             `bson:"fileName" json:"fileName"`
	FilePath       string             `bson:"filePath" json:"filePath"`
	FileSize       int64              `bson:"fileSize" json:"fileSize"`
	RelatedTo      string             `bson:"relatedTo,omitempty" json:"relatedTo,omitempty"`
	RelatedType    string             `bson:"relatedType,omitempty" json:"relatedType,omitempty"`
	UploadedBy     string             `bson:"uploadedBy" json:"uploadedBy"`
	UploadedDate   time.Time          `bson:"uploadedDate" json:"uploadedDate"`
	ExpiryDate     *Date              `bson:"expiryDate,omitempty" json:"expiryDate,omitempty"`
	Tags           []string           `bson:"tags" json:"tags"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (d *Document) SyncID() {
	d.LegacyID = d.ID.Hex()
}
