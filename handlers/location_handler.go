package handlers

import (
	"context"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dinu12141/CMMS-MADAMPE/config"
	"github.com/dinu12141/CMMS-MADAMPE/database"
	"github.com/dinu12141/CMMS-MADAMPE/models"
	"github.com/dinu12141/CMMS-MADAMPE/utils"
)

var locationImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

func ListLocations(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := equalityFilter(r, "type")
	limit, skip := parseListParams(r)

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit).
		SetSkip(skip)

	cursor, err := locationCollection.Find(ctx, filter, opts)
	if err != nil {
		log.Printf("locations Find error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}
	defer cursor.Close(ctx)

	var locations []models.Location
	if err = cursor.All(ctx, &locations); err != nil {
		log.Printf("cursor decode error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to decode locations")
		return
	}
	if locations == nil {
		locations = []models.Location{}
	}
	for i := range locations {
		locations[i].SyncID()
	}

	utils.RespondWithJSON(w, http.StatusOK, locations)
}

func GetLocation(w http.ResponseWriter, r *http.Request) {
	locID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid location id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var loc models.Location
	err = locationCollection.FindOne(ctx, bson.M{"_id": locID}).Decode(&loc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "location not found")
			return
		}
		log.Printf("find location error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}

	loc.SyncID()
	utils.RespondWithJSON(w, http.StatusOK, loc)
}

type CreateLocationRequest struct {
	Name        string             `json:"name"`
	Type        string             `json:"type"`
	Address     string             `json:"address"`
	City        string             `json:"city"`
	State       string             `json:"state"`
	ZipCode     string             `json:"zipCode"`
	Coordinates map[string]float64 `json:"coordinates"`
	Size        int                `json:"size"`
	Floors      int                `json:"floors"`
	Image       string             `json:"image,omitempty"`
}

func CreateLocation(w http.ResponseWriter, r *http.Request) {
	var req CreateLocationRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	if req.Name == "" || req.Type == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "missing required fields: name and type")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	locNumber, err := database.NextSequenceNumber(ctx, "locations", "LOC")
	if err != nil {
		log.Printf("location number allocation error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to allocate location number")
		return
	}

	if req.Coordinates == nil {
		req.Coordinates = map[string]float64{"lat": 0, "lng": 0}
	}

	now := time.Now().UTC()
	loc := models.Location{
		ID:          primitive.NewObjectID(),
		LocationID:  locNumber,
		Name:        req.Name,
		Type:        req.Type,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		ZipCode:     req.ZipCode,
		Coordinates: req.Coordinates,
		Size:        req.Size,
		Floors:      req.Floors,
		Image:       req.Image,
		AssetCount:  0,
		ActiveWOs:   0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := locationCollection.InsertOne(ctx, loc); err != nil {
		log.Printf("location insert error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to create location")
		return
	}

	loc.SyncID()
	utils.RespondWithJSON(w, http.StatusCreated, loc)
}

type UpdateLocationRequest struct {
	Name        *string             `json:"name"`
	Type        *string             `json:"type"`
	Address     *string             `json:"address"`
	City        *string             `json:"city"`
	State       *string             `json:"state"`
	ZipCode     *string             `json:"zipCode"`
	Coordinates *map[string]float64 `json:"coordinates"`
	Size        *int                `json:"size"`
	Floors      *int                `json:"floors"`
	Image       *string             `json:"image"`
}

func locationUpdateDoc(req UpdateLocationRequest) bson.M {
	doc := bson.M{}
	if req.Name != nil {
		doc["name"] = *req.Name
	}
	if req.Type != nil {
		doc["type"] = *req.Type
	}
	if req.Address != nil {
		doc["address"] = *req.Address
	}
	if req.City != nil {
		doc["city"] = *req.City
	}
	if req.State != nil {
		doc["state"] = *req.State
	}
	if req.ZipCode != nil {
		doc["zipCode"] = *req.ZipCode
	}
	if req.Coordinates != nil {
		doc["coordinates"] = *req.Coordinates
	}
	if req.Size != nil {
		doc["size"] = *req.Size
	}
	if req.Floors != nil {
		doc["floors"] = *req.Floors
	}
	if req.Image != nil {
		doc["image"] = *req.Image
	}
	return doc
}

func UpdateLocation(w http.ResponseWriter, r *http.Request) {
	locID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid location id")
		return
	}

	var req UpdateLocationRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	doc := locationUpdateDoc(req)
	if len(doc) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "no fields to update")
		return
	}
	doc = utils.Stamp(doc, true)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Location
	err = locationCollection.FindOneAndUpdate(ctx, bson.M{"_id": locID}, bson.M{"$set": doc}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "location not found")
			return
		}
		log.Printf("location update error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to update location")
		return
	}

	// A mutation of the location itself also refreshes its counters.
	RecomputeLocationCounters(ctx, locID.Hex())

	updated.SyncID()
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

func DeleteLocation(w http.ResponseWriter, r *http.Request) {
	locID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid location id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := locationCollection.DeleteOne(ctx, bson.M{"_id": locID})
	if err != nil {
		log.Printf("location delete error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to delete location")
		return
	}
	if result.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "location not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Location deleted successfully"})
}

func UploadLocationImage(w http.ResponseWriter, r *http.Request) {
	locID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid location id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	count, err := locationCollection.CountDocuments(ctx, bson.M{"_id": locID})
	if err != nil {
		log.Printf("location lookup error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}
	if count == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "location not found")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	ext := filepath.Ext(header.Filename)
	fileName := "location_" + locID.Hex() + ext
	imageURL := "/api/locations/" + locID.Hex() + "/image"

	if err := saveUploadedFile(file, filepath.Join(config.UploadDir, "locations", fileName)); err != nil {
		log.Printf("location %s image save failed: %v", locID.Hex(), err)
		utils.RespondWithJSON(w, http.StatusOK, map[string]string{
			"warning": "image could not be persisted, location left unchanged",
		})
		return
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Location
	err = locationCollection.FindOneAndUpdate(ctx, bson.M{"_id": locID},
		bson.M{"$set": utils.Stamp(bson.M{"image": imageURL}, true)}, opts).Decode(&updated)
	if err != nil {
		log.Printf("location image url update error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to update location image")
		return
	}

	updated.SyncID()
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"imageUrl": imageURL, "location": updated})
}

// GetLocationImage serves a previously uploaded location image. The file on
// disk is keyed by location id with whatever extension the upload carried.
func GetLocationImage(w http.ResponseWriter, r *http.Request) {
	locID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid location id")
		return
	}

	for _, ext := range locationImageExtensions {
		path := filepath.Join(config.UploadDir, "locations", "location_"+locID.Hex()+ext)
		if _, err := os.Stat(path); err == nil {
			http.ServeFile(w, r, path)
			return
		}
	}

	utils.RespondWithError(w, http.StatusNotFound, "image not found")
}
