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

func ListServiceRequests(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := equalityFilter(r, "status", "priority", "category")
	limit, skip := parseListParams(r)

	opts := options.Find().
		SetSort(bson.D{{Key: "createdDate", Value: -1}}).
		SetLimit(limit).
		SetSkip(skip)

	cursor, err := serviceRequestCollection.Find(ctx, filter, opts)
	if err != nil {
		log.Printf("service requests Find error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}
	defer cursor.Close(ctx)

	var requests []models.ServiceRequest
	if err = cursor.All(ctx, &requests); err != nil {
		log.Printf("cursor decode error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to decode service requests")
		return
	}
	if requests == nil {
		requests = []models.ServiceRequest{}
	}
	for i := range requests {
		requests[i].SyncID()
	}

	utils.RespondWithJSON(w, http.StatusOK, requests)
}

func GetServiceRequest(w http.ResponseWriter, r *http.Request) {
	srID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid service request id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var sr models.ServiceRequest
	err = serviceRequestCollection.FindOne(ctx, bson.M{"_id": srID}).Decode(&sr)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "service request not found")
			return
		}
		log.Printf("find service request error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}

	sr.SyncID()
	utils.RespondWithJSON(w, http.StatusOK, sr)
}

type CreateServiceRequestRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	RequestedBy  string `json:"requestedBy"`
	Department   string `json:"department"`
	Location     string `json:"location"`
	Priority     string `json:"priority"`
	Category     string `json:"category"`
	RelatedAsset string `json:"relatedAsset,omitempty"`
}

func CreateServiceRequest(w http.ResponseWriter, r *http.Request) {
	var req CreateServiceRequestRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	if req.Title == "" || req.Description == "" || req.RequestedBy == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "missing required fields: title, description, requestedBy")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	srNumber, err := database.NextSequenceNumber(ctx, "service_requests", "SR")
	if err != nil {
		log.Printf("service request number allocation error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to allocate service request number")
		return
	}

	now := time.Now().UTC()
	sr := models.ServiceRequest{
		ID:            primitive.NewObjectID(),
		RequestNumber: srNumber,
		Title:         req.Title,
		Description:   req.Description,
		RequestedBy:   req.RequestedBy,
		Department:    req.Department,
		Location:      req.Location,
		Priority:      req.Priority,
		Status:        "open",
		Category:      req.Category,
		RelatedAsset:  req.RelatedAsset,
		CreatedDate:   now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := serviceRequestCollection.InsertOne(ctx, sr); err != nil {
		log.Printf("service request insert error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to create service request")
		return
	}

	sr.SyncID()
	utils.RespondWithJSON(w, http.StatusCreated, sr)
}

type UpdateServiceRequestRequest struct {
	Title         *string      `json:"title"`
	Description   *string      `json:"description"`
	Priority      *string      `json:"priority"`
	Status        *string      `json:"status"`
	Category      *string      `json:"category"`
	AssignedTo    *string      `json:"assignedTo"`
	ConvertedToWO *string      `json:"convertedToWO"`
	ClosedDate    *models.Date `json:"closedDate"`
}

func serviceRequestUpdateDoc(req UpdateServiceRequestRequest) bson.M {
	doc := bson.M{}
	if req.Title != nil {
		doc["title"] = *req.Title
	}
	if req.Description != nil {
		doc["description"] = *req.Description
	}
	if req.Priority != nil {
		doc["priority"] = *req.Priority
	}
	if req.Status != nil {
		doc["status"] = *req.Status
	}
	if req.Category != nil {
		doc["category"] = *req.Category
	}
	if req.AssignedTo != nil {
		doc["assignedTo"] = *req.AssignedTo
	}
	if req.ConvertedToWO != nil {
		doc["convertedToWO"] = *req.ConvertedToWO
	}
	if req.ClosedDate != nil {
		doc["closedDate"] = *req.ClosedDate
	}
	return doc
}

func UpdateServiceRequest(w http.ResponseWriter, r *http.Request) {
	srID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid service request id")
		return
	}

	var req UpdateServiceRequestRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	doc := serviceRequestUpdateDoc(req)
	if len(doc) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "no fields to update")
		return
	}
	doc = utils.Stamp(doc, true)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.ServiceRequest
	err = serviceRequestCollection.FindOneAndUpdate(ctx, bson.M{"_id": srID}, bson.M{"$set": doc}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "service request not found")
			return
		}
		log.Printf("service request update error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to update service request")
		return
	}

	updated.SyncID()
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

func DeleteServiceRequest(w http.ResponseWriter, r *http.Request) {
	srID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid service request id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := serviceRequestCollection.DeleteOne(ctx, bson.M{"_id": srID})
	if err != nil {
		log.Printf("service request delete error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to delete service request")
		return
	}
	if result.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "service request not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Service request deleted successfully"})
}
