package handlers

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
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

func ListAssets(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := equalityFilter(r, "category", "status", "criticality", "location")
	limit, skip := parseListParams(r)

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit).
		SetSkip(skip)

	cursor, err := assetCollection.Find(ctx, filter, opts)
	if err != nil {
		log.Printf("assets Find error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}
	defer cursor.Close(ctx)

	var assets []models.Asset
	if err = cursor.All(ctx, &assets); err != nil {
		log.Printf("cursor decode error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to decode assets")
		return
	}
	if assets == nil {
		assets = []models.Asset{}
	}
	for i := range assets {
		assets[i].SyncID()
	}

	utils.RespondWithJSON(w, http.StatusOK, assets)
}

func GetAsset(w http.ResponseWriter, r *http.Request) {
	assetID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid asset id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var asset models.Asset
	err = assetCollection.FindOne(ctx, bson.M{"_id": assetID}).Decode(&asset)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "asset not found")
			return
		}
		log.Printf("find asset error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}

	asset.SyncID()
	utils.RespondWithJSON(w, http.StatusOK, asset)
}

type CreateAssetRequest struct {
	AssetNumber    string         `json:"assetNumber,omitempty"`
	Name           string         `json:"name"`
	Category       string         `json:"category,omitempty"`
	Manufacturer   string         `json:"manufacturer,omitempty"`
	Model          string         `json:"model,omitempty"`
	SerialNumber   string         `json:"serialNumber,omitempty"`
	PurchaseDate   *models.Date   `json:"purchaseDate,omitempty"`
	InstallDate    *models.Date   `json:"installDate,omitempty"`
	WarrantyExpiry *models.Date   `json:"warrantyExpiry,omitempty"`
	Location       string         `json:"location"`
	Criticality    string         `json:"criticality,omitempty"`
	Specifications map[string]any `json:"specifications,omitempty"`
	ImageURL       string         `json:"imageUrl,omitempty"`
}

func CreateAsset(w http.ResponseWriter, r *http.Request) {
	var req CreateAssetRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	if req.Name == "" || req.Location == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "missing required fields: name and location")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	// A caller-supplied asset number is used as-is; otherwise one is
	// allocated from the sequence counter. Either way uniqueness is
	// enforced by the unique index on assetNumber at insert time.
	assetNumber := strings.TrimSpace(req.AssetNumber)
	if assetNumber == "" {
		var err error
		assetNumber, err = database.NextSequenceNumber(ctx, "assets", "ASSET")
		if err != nil {
			log.Printf("asset number allocation error: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "failed to allocate asset number")
			return
		}
	}

	if req.Criticality == "" {
		req.Criticality = "medium"
	}
	if req.Specifications == nil {
		req.Specifications = map[string]any{}
	}

	now := time.Now().UTC()
	asset := models.Asset{
		ID:              primitive.NewObjectID(),
		AssetNumber:     assetNumber,
		Name:            req.Name,
		Category:        req.Category,
		Manufacturer:    req.Manufacturer,
		Model:           req.Model,
		SerialNumber:    req.SerialNumber,
		PurchaseDate:    req.PurchaseDate,
		InstallDate:     req.InstallDate,
		WarrantyExpiry:  req.WarrantyExpiry,
		Location:        req.Location,
		Status:          "operational",
		Condition:       "good",
		MaintenanceCost: 0,
		Downtime:        0,
		Criticality:     req.Criticality,
		Specifications:  req.Specifications,
		ImageURL:        req.ImageURL,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if _, err := assetCollection.InsertOne(ctx, asset); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusConflict, "asset number already exists")
			return
		}
		log.Printf("asset insert error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to create asset")
		return
	}

	RecomputeLocationCounters(ctx, asset.Location)

	asset.SyncID()
	utils.RespondWithJSON(w, http.StatusCreated, asset)
}

type UpdateAssetRequest struct {
	AssetNumber     *string         `json:"assetNumber"`
	Name            *string         `json:"name"`
	Category        *string         `json:"category"`
	Manufacturer    *string         `json:"manufacturer"`
	Model           *string         `json:"model"`
	SerialNumber    *string         `json:"serialNumber"`
	PurchaseDate    *models.Date    `json:"purchaseDate"`
	InstallDate     *models.Date    `json:"installDate"`
	WarrantyExpiry  *models.Date    `json:"warrantyExpiry"`
	Location        *string         `json:"location"`
	Status          *string         `json:"status"`
	Condition       *string         `json:"condition"`
	MaintenanceCost *float64        `json:"maintenanceCost"`
	Downtime        *int            `json:"downtime"`
	LastMaintenance *models.Date    `json:"lastMaintenance"`
	NextMaintenance *models.Date    `json:"nextMaintenance"`
	Criticality     *string         `json:"criticality"`
	Specifications  *map[string]any `json:"specifications"`
	ImageURL        *string         `json:"imageUrl"`
}

func assetUpdateDoc(req UpdateAssetRequest) bson.M {
	doc := bson.M{}
	if req.AssetNumber != nil {
		doc["assetNumber"] = strings.TrimSpace(*req.AssetNumber)
	}
	if req.Name != nil {
		doc["name"] = *req.Name
	}
	if req.Category != nil {
		doc["category"] = *req.Category
	}
	if req.Manufacturer != nil {
		doc["manufacturer"] = *req.Manufacturer
	}
	if req.Model != nil {
		doc["model"] = *req.Model
	}
	if req.SerialNumber != nil {
		doc["serialNumber"] = *req.SerialNumber
	}
	if req.PurchaseDate != nil {
		doc["purchaseDate"] = *req.PurchaseDate
	}
	if req.InstallDate != nil {
		doc["installDate"] = *req.InstallDate
	}
	if req.WarrantyExpiry != nil {
		doc["warrantyExpiry"] = *req.WarrantyExpiry
	}
	if req.Location != nil {
		doc["location"] = *req.Location
	}
	if req.Status != nil {
		doc["status"] = *req.Status
	}
	if req.Condition != nil {
		doc["condition"] = *req.Condition
	}
	if req.MaintenanceCost != nil {
		doc["maintenanceCost"] = *req.MaintenanceCost
	}
	if req.Downtime != nil {
		doc["downtime"] = *req.Downtime
	}
	if req.LastMaintenance != nil {
		doc["lastMaintenance"] = *req.LastMaintenance
	}
	if req.NextMaintenance != nil {
		doc["nextMaintenance"] = *req.NextMaintenance
	}
	if req.Criticality != nil {
		doc["criticality"] = *req.Criticality
	}
	if req.Specifications != nil {
		doc["specifications"] = *req.Specifications
	}
	if req.ImageURL != nil {
		doc["imageUrl"] = *req.ImageURL
	}
	return doc
}

func UpdateAsset(w http.ResponseWriter, r *http.Request) {
	assetID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid asset id")
		return
	}

	var req UpdateAssetRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	doc := assetUpdateDoc(req)
	if len(doc) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "no fields to update")
		return
	}
	doc = utils.Stamp(doc, true)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var before models.Asset
	err = assetCollection.FindOne(ctx, bson.M{"_id": assetID}).Decode(&before)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "asset not found")
			return
		}
		log.Printf("find asset error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Asset
	err = assetCollection.FindOneAndUpdate(ctx, bson.M{"_id": assetID}, bson.M{"$set": doc}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "asset not found")
			return
		}
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusConflict, "asset number already exists")
			return
		}
		log.Printf("asset update error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to update asset")
		return
	}

	// A moved asset changes the counters of both locations.
	if before.Location != updated.Location {
		RecomputeLocationCounters(ctx, before.Location)
	}
	RecomputeLocationCounters(ctx, updated.Location)

	updated.SyncID()
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

func DeleteAsset(w http.ResponseWriter, r *http.Request) {
	assetID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid asset id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var deleted models.Asset
	err = assetCollection.FindOneAndDelete(ctx, bson.M{"_id": assetID}).Decode(&deleted)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "asset not found")
			return
		}
		log.Printf("asset delete error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to delete asset")
		return
	}

	RecomputeLocationCounters(ctx, deleted.Location)

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Asset deleted successfully"})
}

type AssetHistory struct {
	WorkOrders            []models.WorkOrder             `json:"workOrders"`
	PreventiveMaintenance []models.PreventiveMaintenance `json:"preventiveMaintenance"`
	ServiceRequests       []models.ServiceRequest        `json:"serviceRequests"`
}

// GetAssetHistory fans out three independent queries keyed by the asset id.
// The three lists have no global ordering and each is capped at 100.
func GetAssetHistory(w http.ResponseWriter, r *http.Request) {
	assetIDStr := mux.Vars(r)["id"]
	if _, err := primitive.ObjectIDFromHex(assetIDStr); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid asset id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	history := AssetHistory{
		WorkOrders:            []models.WorkOrder{},
		PreventiveMaintenance: []models.PreventiveMaintenance{},
		ServiceRequests:       []models.ServiceRequest{},
	}
	histOpts := options.Find().SetLimit(100)

	cursor, err := workOrderCollection.Find(ctx, bson.M{"assetId": assetIDStr}, histOpts)
	if err != nil {
		log.Printf("asset history work orders error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to load asset history")
		return
	}
	if err := cursor.All(ctx, &history.WorkOrders); err != nil {
		log.Printf("asset history decode error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to load asset history")
		return
	}

	cursor, err = pmCollection.Find(ctx, bson.M{"assetId": assetIDStr}, histOpts)
	if err != nil {
		log.Printf("asset history PM error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to load asset history")
		return
	}
	if err := cursor.All(ctx, &history.PreventiveMaintenance); err != nil {
		log.Printf("asset history decode error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to load asset history")
		return
	}

	cursor, err = serviceRequestCollection.Find(ctx, bson.M{"relatedAsset": assetIDStr}, histOpts)
	if err != nil {
		log.Printf("asset history service requests error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to load asset history")
		return
	}
	if err := cursor.All(ctx, &history.ServiceRequests); err != nil {
		log.Printf("asset history decode error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to load asset history")
		return
	}

	for i := range history.WorkOrders {
		history.WorkOrders[i].SyncID()
	}
	for i := range history.PreventiveMaintenance {
		history.PreventiveMaintenance[i].SyncID()
	}
	for i := range history.ServiceRequests {
		history.ServiceRequests[i].SyncID()
	}

	utils.RespondWithJSON(w, http.StatusOK, history)
}

// UploadAssetImage stores an image on local disk and points the asset's
// imageUrl at it. A failed file write never fails the request: the asset
// stays valid without an image, and the omission is reported back.
func UploadAssetImage(w http.ResponseWriter, r *http.Request) {
	assetID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid asset id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	count, err := assetCollection.CountDocuments(ctx, bson.M{"_id": assetID})
	if err != nil {
		log.Printf("asset lookup error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}
	if count == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "asset not found")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	ext := filepath.Ext(header.Filename)
	fileName := uuid.NewString() + ext
	imageURL := "/uploads/assets/" + fileName

	if err := saveUploadedFile(file, filepath.Join(config.UploadDir, "assets", fileName)); err != nil {
		log.Printf("asset %s image save failed: %v", assetID.Hex(), err)
		utils.RespondWithJSON(w, http.StatusOK, map[string]string{
			"warning": "image could not be persisted, asset left unchanged",
		})
		return
	}

	_, err = assetCollection.UpdateByID(ctx, assetID, bson.M{"$set": utils.Stamp(bson.M{"imageUrl": imageURL}, true)})
	if err != nil {
		log.Printf("asset image url update error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to update asset image")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"imageUrl": imageURL})
}

func saveUploadedFile(src io.Reader, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, src); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
