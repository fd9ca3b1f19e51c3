// handlers/collections.go
package handlers

import (
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dinu12141/CMMS-MADAMPE/database"
)

var (
	workOrderCollection      *mongo.Collection
	assetCollection          *mongo.Collection
	inventoryCollection      *mongo.Collection
	locationCollection       *mongo.Collection
	serviceRequestCollection *mongo.Collection
	documentCollection       *mongo.Collection
	pmCollection             *mongo.Collection
	userCollection           *mongo.Collection
)

func InitCollections() {
	db := database.DB()
	workOrderCollection = db.Collection("work_orders")
	assetCollection = db.Collection("assets")
	inventoryCollection = db.Collection("inventory")
	locationCollection = db.Collection("locations")
	serviceRequestCollection = db.Collection("service_requests")
	documentCollection = db.Collection("documents")
	pmCollection = db.Collection("preventive_maintenance")
	userCollection = db.Collection("users")
}
