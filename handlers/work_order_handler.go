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

	"github.com/dinu12141/CMMS-MADAMPE/database"
	"github.com/dinu12141/CMMS-MADAMPE/models"
	"github.com/dinu12141/CMMS-MADAMPE/utils"
)

// attachAssetNames copies the referenced asset's name onto each work order
// so clients don't need a second round trip. Asset ids are soft references:
// a missing or malformed id is skipped silently, no name gets attached.
func attachAssetNames(ctx context.Context, workOrders []models.WorkOrder) {
	seen := map[string]bool{}
	var ids []primitive.ObjectID
	for _, wo := range workOrders {
		if wo.AssetID == "" || seen[wo.AssetID] {
			continue
		}
		seen[wo.AssetID] = true
		oid, err := primitive.ObjectIDFromHex(wo.AssetID)
		if err != nil {
			continue
		}
		ids = append(ids, oid)
	}
	if len(ids) == 0 {
		return
	}

	cursor, err := assetCollection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		log.Printf("asset name lookup failed: %v", err)
		return
	}
	defer cursor.Close(ctx)

	var assets []models.Asset
	if err := cursor.All(ctx, &assets); err != nil {
		log.Printf("asset name decode failed: %v", err)
		return
	}

	names := make(map[string]string, len(assets))
	for _, a := range assets {
		names[a.ID.Hex()] = a.Name
	}
	for i := range workOrders {
		if name, ok := names[workOrders[i].AssetID]; ok {
			workOrders[i].AssetName = name
		}
	}
}

func ListWorkOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := equalityFilter(r, "status", "priority", "assignedTo", "assetId")
	limit, skip := parseListParams(r)

	opts := options.Find().
		SetSort(bson.D{{Key: "createdDate", Value: -1}}).
		SetLimit(limit).
		SetSkip(skip)

	cursor, err := workOrderCollection.Find(ctx, filter, opts)
	if err != nil {
		log.Printf("work orders Find error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}
	defer cursor.Close(ctx)

	var workOrders []models.WorkOrder
	if err = cursor.All(ctx, &workOrders); err != nil {
		log.Printf("cursor decode error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to decode work orders")
		return
	}
	if workOrders == nil {
		workOrders = []models.WorkOrder{}
	}

	attachAssetNames(ctx, workOrders)
	for i := range workOrders {
		workOrders[i].SyncID()
	}

	utils.RespondWithJSON(w, http.StatusOK, workOrders)
}

func GetWorkOrder(w http.ResponseWriter, r *http.Request) {
	woID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid work order id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var wo models.WorkOrder
	err = workOrderCollection.FindOne(ctx, bson.M{"_id": woID}).Decode(&wo)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "work order not found")
			return
		}
		log.Printf("find work order error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}

	workOrders := []models.WorkOrder{wo}
	attachAssetNames(ctx, workOrders)
	wo = workOrders[0]
	wo.SyncID()

	utils.RespondWithJSON(w, http.StatusOK, wo)
}

type CreateWorkOrderRequest struct {
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	AssetID       string      `json:"assetId,omitempty"`
	Priority      string      `json:"priority"`
	Type          string      `json:"type"`
	AssignedTo    string      `json:"assignedTo,omitempty"`
	DueDate       models.Date `json:"dueDate"`
	EstimatedTime float64     `json:"estimatedTime"`
	Location      string      `json:"location"`
	Cost          float64     `json:"cost"`
	PartsUsed     []string    `json:"partsUsed"`
	Notes         string      `json:"notes"`
}

func CreateWorkOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateWorkOrderRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	if req.Title == "" || req.Description == "" || req.Priority == "" || req.Type == "" || req.Location == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "missing required fields: title, description, priority, type, location")
		return
	}
	if req.DueDate.IsZero() {
		utils.RespondWithError(w, http.StatusBadRequest, "dueDate is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	woNumber, err := database.NextSequenceNumber(ctx, "work_orders", "WO")
	if err != nil {
		log.Printf("work order number allocation error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to allocate work order number")
		return
	}

	if req.PartsUsed == nil {
		req.PartsUsed = []string{}
	}

	now := time.Now().UTC()
	wo := models.WorkOrder{
		ID:              primitive.NewObjectID(),
		WorkOrderNumber: woNumber,
		Title:           req.Title,
		Description:     req.Description,
		AssetID:         req.AssetID,
		Priority:        req.Priority,
		Status:          "open",
		Type:            req.Type,
		AssignedTo:      req.AssignedTo,
		CreatedBy:       "System",
		CreatedDate:     now,
		DueDate:         req.DueDate,
		EstimatedTime:   req.EstimatedTime,
		Location:        req.Location,
		Cost:            req.Cost,
		PartsUsed:       req.PartsUsed,
		Notes:           req.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if _, err := workOrderCollection.InsertOne(ctx, wo); err != nil {
		log.Printf("work order insert error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to create work order")
		return
	}

	RecomputeLocationCounters(ctx, wo.Location)

	wo.SyncID()
	utils.RespondWithJSON(w, http.StatusCreated, wo)
}

type UpdateWorkOrderRequest struct {
	Title         *string      `json:"title"`
	Description   *string      `json:"description"`
	AssetID       *string      `json:"assetId"`
	Priority      *string      `json:"priority"`
	Status        *string      `json:"status"`
	AssignedTo    *string      `json:"assignedTo"`
	DueDate       *models.Date `json:"dueDate"`
	CompletedDate *models.Date `json:"completedDate"`
	EstimatedTime *float64     `json:"estimatedTime"`
	ActualTime    *float64     `json:"actualTime"`
	Location      *string      `json:"location"`
	Cost          *float64     `json:"cost"`
	PartsUsed     *[]string    `json:"partsUsed"`
	Notes         *string      `json:"notes"`
}

// workOrderUpdateDoc keeps only the fields the caller actually sent.
func workOrderUpdateDoc(req UpdateWorkOrderRequest) bson.M {
	doc := bson.M{}
	if req.Title != nil {
		doc["title"] = *req.Title
	}
	if req.Description != nil {
		doc["description"] = *req.Description
	}
	if req.AssetID != nil {
		doc["assetId"] = *req.AssetID
	}
	if req.Priority != nil {
		doc["priority"] = *req.Priority
	}
	if req.Status != nil {
		doc["status"] = *req.Status
	}
	if req.AssignedTo != nil {
		doc["assignedTo"] = *req.AssignedTo
	}
	if req.DueDate != nil {
		doc["dueDate"] = *req.DueDate
	}
	if req.CompletedDate != nil {
		doc["completedDate"] = *req.CompletedDate
	}
	if req.EstimatedTime != nil {
		doc["estimatedTime"] = *req.EstimatedTime
	}
	if req.ActualTime != nil {
		doc["actualTime"] = *req.ActualTime
	}
	if req.Location != nil {
		doc["location"] = *req.Location
	}
	if req.Cost != nil {
		doc["cost"] = *req.Cost
	}
	if req.PartsUsed != nil {
		doc["partsUsed"] = *req.PartsUsed
	}
	if req.Notes != nil {
		doc["notes"] = *req.Notes
	}
	return doc
}

func UpdateWorkOrder(w http.ResponseWriter, r *http.Request) {
	woID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid work order id")
		return
	}

	var req UpdateWorkOrderRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	doc := workOrderUpdateDoc(req)
	if len(doc) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "no fields to update")
		return
	}
	doc = utils.Stamp(doc, true)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	// The previous state is needed to know which locations to recount.
	var before models.WorkOrder
	err = workOrderCollection.FindOne(ctx, bson.M{"_id": woID}).Decode(&before)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "work order not found")
			return
		}
		log.Printf("find work order error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.WorkOrder
	err = workOrderCollection.FindOneAndUpdate(ctx, bson.M{"_id": woID}, bson.M{"$set": doc}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "work order not found")
			return
		}
		log.Printf("work order update error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to update work order")
		return
	}

	if _, touched := doc["status"]; touched || before.Location != updated.Location {
		RecomputeLocationCounters(ctx, before.Location)
		if updated.Location != before.Location {
			RecomputeLocationCounters(ctx, updated.Location)
		}
	}

	updated.SyncID()
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

func DeleteWorkOrder(w http.ResponseWriter, r *http.Request) {
	woID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid work order id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var deleted models.WorkOrder
	err = workOrderCollection.FindOneAndDelete(ctx, bson.M{"_id": woID}).Decode(&deleted)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "work order not found")
			return
		}
		log.Printf("work order delete error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to delete work order")
		return
	}

	RecomputeLocationCounters(ctx, deleted.Location)

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Work order deleted successfully"})
}

type WorkOrderStats struct {
	Total      int64 `json:"total"`
	Open       int64 `json:"open"`
	InProgress int64 `json:"inProgress"`
	Completed  int64 `json:"completed"`
	Overdue    int64 `json:"overdue"`
}

// overdueFilter matches work orders still active past their due date.
func overdueFilter(now time.Time) bson.M {
	return bson.M{
		"status":  bson.M{"$in": activeWorkOrderStatuses},
		"dueDate": bson.M{"$lt": now},
	}
}

func GetWorkOrderStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var stats WorkOrderStats
	var err error

	counts := []struct {
		dst    *int64
		filter bson.M
	}{
		{&stats.Total, bson.M{}},
		{&stats.Open, bson.M{"status": "open"}},
		{&stats.InProgress, bson.M{"status": "in-progress"}},
		{&stats.Completed, bson.M{"status": "completed"}},
		{&stats.Overdue, overdueFilter(time.Now().UTC())},
	}
	for _, c := range counts {
		*c.dst, err = workOrderCollection.CountDocuments(ctx, c.filter)
		if err != nil {
			log.Printf("work order stats count error: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "failed to compute work order stats")
			return
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, stats)
}
