package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
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

func ListPMSchedules(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := equalityFilter(r, "frequency", "priority", "assetId")
	limit, skip := parseListParams(r)

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit).
		SetSkip(skip)

	cursor, err := pmCollection.Find(ctx, filter, opts)
	if err != nil {
		log.Printf("PM schedules Find error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}
	defer cursor.Close(ctx)

	var schedules []models.PreventiveMaintenance
	if err = cursor.All(ctx, &schedules); err != nil {
		log.Printf("cursor decode error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to decode PM schedules")
		return
	}
	if schedules == nil {
		schedules = []models.PreventiveMaintenance{}
	}
	for i := range schedules {
		schedules[i].SyncID()
	}

	utils.RespondWithJSON(w, http.StatusOK, schedules)
}

func GetPMSchedule(w http.ResponseWriter, r *http.Request) {
	pmID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid PM schedule id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var pm models.PreventiveMaintenance
	err = pmCollection.FindOne(ctx, bson.M{"_id": pmID}).Decode(&pm)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "PM schedule not found")
			return
		}
		log.Printf("find PM schedule error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}

	pm.SyncID()
	utils.RespondWithJSON(w, http.StatusOK, pm)
}

type CreatePMScheduleRequest struct {
	Name              string      `json:"name"`
	AssetID           string      `json:"assetId"`
	Frequency         string      `json:"frequency"`
	NextDue           models.Date `json:"nextDue"`
	EstimatedDuration float64     `json:"estimatedDuration"`
	AssignedTo        string      `json:"assignedTo"`
	Priority          string      `json:"priority"`
	Tasks             []string    `json:"tasks"`
	PartsRequired     []string    `json:"partsRequired"`
}

func CreatePMSchedule(w http.ResponseWriter, r *http.Request) {
	var req CreatePMScheduleRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	if req.Name == "" || req.AssetID == "" || req.Frequency == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "missing required fields: name, assetId, frequency")
		return
	}
	if req.NextDue.IsZero() {
		utils.RespondWithError(w, http.StatusBadRequest, "nextDue is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	pmNumber, err := database.NextSequenceNumber(ctx, "preventive_maintenance", "PM")
	if err != nil {
		log.Printf("PM number allocation error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to allocate PM number")
		return
	}

	if req.Tasks == nil {
		req.Tasks = []string{}
	}
	if req.PartsRequired == nil {
		req.PartsRequired = []string{}
	}

	now := time.Now().UTC()
	pm := models.PreventiveMaintenance{
		ID:                primitive.NewObjectID(),
		PMNumber:          pmNumber,
		Name:              req.Name,
		AssetID:           req.AssetID,
		Frequency:         req.Frequency,
		NextDue:           req.NextDue,
		EstimatedDuration: req.EstimatedDuration,
		AssignedTo:        req.AssignedTo,
		Priority:          req.Priority,
		Tasks:             req.Tasks,
		PartsRequired:     req.PartsRequired,
		Active:            true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if _, err := pmCollection.InsertOne(ctx, pm); err != nil {
		log.Printf("PM schedule insert error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to create PM schedule")
		return
	}

	pm.SyncID()
	utils.RespondWithJSON(w, http.StatusCreated, pm)
}

type UpdatePMScheduleRequest struct {
	Name              *string      `json:"name"`
	AssetID           *string      `json:"assetId"`
	Frequency         *string      `json:"frequency"`
	LastCompleted     *models.Date `json:"lastCompleted"`
	NextDue           *models.Date `json:"nextDue"`
	EstimatedDuration *float64     `json:"estimatedDuration"`
	AssignedTo        *string      `json:"assignedTo"`
	Priority          *string      `json:"priority"`
	Tasks             *[]string    `json:"tasks"`
	PartsRequired     *[]string    `json:"partsRequired"`
	Active            *bool        `json:"active"`
}

func pmUpdateDoc(req UpdatePMScheduleRequest) bson.M {
	doc := bson.M{}
	if req.Name != nil {
		doc["name"] = *req.Name
	}
	if req.AssetID != nil {
		doc["assetId"] = *req.AssetID
	}
	if req.Frequency != nil {
		doc["frequency"] = *req.Frequency
	}
	if req.LastCompleted != nil {
		doc["lastCompleted"] = *req.LastCompleted
	}
	if req.NextDue != nil {
		doc["nextDue"] = *req.NextDue
	}
	if req.EstimatedDuration != nil {
		doc["estimatedDuration"] = *req.EstimatedDuration
	}
	if req.AssignedTo != nil {
		doc["assignedTo"] = *req.AssignedTo
	}
	if req.Priority != nil {
		doc["priority"] = *req.Priority
	}
	if req.Tasks != nil {
		doc["tasks"] = *req.Tasks
	}
	if req.PartsRequired != nil {
		doc["partsRequired"] = *req.PartsRequired
	}
	if req.Active != nil {
		doc["active"] = *req.Active
	}
	return doc
}

func UpdatePMSchedule(w http.ResponseWriter, r *http.Request) {
	pmID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid PM schedule id")
		return
	}

	var req UpdatePMScheduleRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	doc := pmUpdateDoc(req)
	if len(doc) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "no fields to update")
		return
	}
	doc = utils.Stamp(doc, true)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.PreventiveMaintenance
	err = pmCollection.FindOneAndUpdate(ctx, bson.M{"_id": pmID}, bson.M{"$set": doc}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "PM schedule not found")
			return
		}
		log.Printf("PM schedule update error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to update PM schedule")
		return
	}

	updated.SyncID()
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

func DeletePMSchedule(w http.ResponseWriter, r *http.Request) {
	pmID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid PM schedule id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := pmCollection.DeleteOne(ctx, bson.M{"_id": pmID})
	if err != nil {
		log.Printf("PM schedule delete error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to delete PM schedule")
		return
	}
	if result.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "PM schedule not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "PM schedule deleted successfully"})
}

// workOrderFromPM maps a PM schedule onto a fresh work order. The schedule
// itself is left untouched: generating twice yields two work orders, and
// nextDue is only advanced when the schedule is explicitly updated.
func workOrderFromPM(pm models.PreventiveMaintenance, woNumber string, now time.Time) models.WorkOrder {
	notes := "Generated from preventive maintenance plan"
	if len(pm.Tasks) > 0 {
		notes = strings.Join(pm.Tasks, "\n")
	}

	priority := pm.Priority
	if priority == "" {
		priority = "medium"
	}

	partsUsed := pm.PartsRequired
	if partsUsed == nil {
		partsUsed = []string{}
	}

	location := pm.AssetID
	if location == "" {
		location = "Unknown"
	}

	return models.WorkOrder{
		ID:              primitive.NewObjectID(),
		WorkOrderNumber: woNumber,
		Title:           "PM: " + pm.Name,
		Description:     "Automatically generated from preventive maintenance schedule",
		AssetID:         pm.AssetID,
		Priority:        priority,
		Status:          "open",
		Type:            "preventive",
		AssignedTo:      pm.AssignedTo,
		CreatedBy:       "PM Scheduler",
		CreatedDate:     now,
		DueDate:         pm.NextDue,
		EstimatedTime:   pm.EstimatedDuration,
		Location:        location,
		Cost:            0,
		PartsUsed:       partsUsed,
		Notes:           notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func GenerateWorkOrderFromPM(w http.ResponseWriter, r *http.Request) {
	pmID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid PM schedule id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var pm models.PreventiveMaintenance
	err = pmCollection.FindOne(ctx, bson.M{"_id": pmID}).Decode(&pm)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "PM schedule not found")
			return
		}
		log.Printf("find PM schedule error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}

	woNumber, err := database.NextSequenceNumber(ctx, "work_orders", "WO")
	if err != nil {
		log.Printf("work order number allocation error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to allocate work order number")
		return
	}

	wo := workOrderFromPM(pm, woNumber, time.Now().UTC())
	if _, err := workOrderCollection.InsertOne(ctx, wo); err != nil {
		log.Printf("generated work order insert error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to create work order")
		return
	}

	RecomputeLocationCounters(ctx, wo.Location)

	wo.SyncID()
	utils.RespondWithJSON(w, http.StatusCreated, wo)
}
