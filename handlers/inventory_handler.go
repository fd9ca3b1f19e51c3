package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dinu12141/CMMS-MADAMPE/models"
	"github.com/dinu12141/CMMS-MADAMPE/utils"
)

func ListInventory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := equalityFilter(r, "category", "status")
	limit, skip := parseListParams(r)

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit).
		SetSkip(skip)

	cursor, err := inventoryCollection.Find(ctx, filter, opts)
	if err != nil {
		log.Printf("inventory Find error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}
	defer cursor.Close(ctx)

	var items []models.InventoryItem
	if err = cursor.All(ctx, &items); err != nil {
		log.Printf("cursor decode error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to decode inventory items")
		return
	}
	if items == nil {
		items = []models.InventoryItem{}
	}
	for i := range items {
		items[i].SyncID()
	}

	utils.RespondWithJSON(w, http.StatusOK, items)
}

func GetInventoryItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid inventory item id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var item models.InventoryItem
	err = inventoryCollection.FindOne(ctx, bson.M{"_id": itemID}).Decode(&item)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "inventory item not found")
			return
		}
		log.Printf("find inventory item error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}

	item.SyncID()
	utils.RespondWithJSON(w, http.StatusOK, item)
}

type CreateInventoryItemRequest struct {
	PartNumber  string  `json:"partNumber"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	MinStock    int     `json:"minStock"`
	MaxStock    int     `json:"maxStock"`
	Unit        string  `json:"unit"`
	UnitCost    float64 `json:"unitCost"`
	Location    string  `json:"location"`
	Supplier    string  `json:"supplier"`
}

func CreateInventoryItem(w http.ResponseWriter, r *http.Request) {
	var req CreateInventoryItemRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	if req.PartNumber == "" || req.Name == "" || req.Category == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "missing required fields: partNumber, name, category")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	now := time.Now().UTC()
	item := models.InventoryItem{
		ID:          primitive.NewObjectID(),
		PartNumber:  req.PartNumber,
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Quantity:    req.Quantity,
		MinStock:    req.MinStock,
		MaxStock:    req.MaxStock,
		Unit:        req.Unit,
		UnitCost:    req.UnitCost,
		Location:    req.Location,
		Supplier:    req.Supplier,
		Status:      "in-stock",
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := inventoryCollection.InsertOne(ctx, item); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusConflict, "part number already exists")
			return
		}
		log.Printf("inventory insert error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to create inventory item")
		return
	}

	item.SyncID()
	utils.RespondWithJSON(w, http.StatusCreated, item)
}

type UpdateInventoryItemRequest struct {
	PartNumber  *string      `json:"partNumber"`
	Name        *string      `json:"name"`
	Category    *string      `json:"category"`
	Description *string      `json:"description"`
	Quantity    *int         `json:"quantity"`
	MinStock    *int         `json:"minStock"`
	MaxStock    *int         `json:"maxStock"`
	Unit        *string      `json:"unit"`
	UnitCost    *float64     `json:"unitCost"`
	Location    *string      `json:"location"`
	Supplier    *string      `json:"supplier"`
	LastOrdered *models.Date `json:"lastOrdered"`
	Status      *string      `json:"status"`
}

func inventoryUpdateDoc(req UpdateInventoryItemRequest) bson.M {
	doc := bson.M{}
	if req.PartNumber != nil {
		doc["partNumber"] = *req.PartNumber
	}
	if req.Name != nil {
		doc["name"] = *req.Name
	}
	if req.Category != nil {
		doc["category"] = *req.Category
	}
	if req.Description != nil {
		doc["description"] = *req.Description
	}
	if req.Quantity != nil {
		doc["quantity"] = *req.Quantity
	}
	if req.MinStock != nil {
		doc["minStock"] = *req.MinStock
	}
	if req.MaxStock != nil {
		doc["maxStock"] = *req.MaxStock
	}
	if req.Unit != nil {
		doc["unit"] = *req.Unit
	}
	if req.UnitCost != nil {
		doc["unitCost"] = *req.UnitCost
	}
	if req.Location != nil {
		doc["location"] = *req.Location
	}
	if req.Supplier != nil {
		doc["supplier"] = *req.Supplier
	}
	if req.LastOrdered != nil {
		doc["lastOrdered"] = *req.LastOrdered
	}
	if req.Status != nil {
		doc["status"] = *req.Status
	}
	return doc
}

func UpdateInventoryItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid inventory item id")
		return
	}

	var req UpdateInventoryItemRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	doc := inventoryUpdateDoc(req)
	if len(doc) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "no fields to update")
		return
	}
	doc = utils.Stamp(doc, true)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.InventoryItem
	err = inventoryCollection.FindOneAndUpdate(ctx, bson.M{"_id": itemID}, bson.M{"$set": doc}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "inventory item not found")
			return
		}
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusConflict, "part number already exists")
			return
		}
		log.Printf("inventory update error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to update inventory item")
		return
	}

	updated.SyncID()
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

func DeleteInventoryItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid inventory item id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := inventoryCollection.DeleteOne(ctx, bson.M{"_id": itemID})
	if err != nil {
		log.Printf("inventory delete error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to delete inventory item")
		return
	}
	if result.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "inventory item not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Inventory item deleted successfully"})
}
