package handlers

import (
	"context"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
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

func ListDocuments(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if category := r.URL.Query().Get("category"); category != "" && category != "all" {
		filter["category"] = category
	}
	// The one non-equality query in the API: case-insensitive substring
	// match over name and description.
	if search := r.URL.Query().Get("search"); search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"description": pattern},
		}
	}

	limit, skip := parseListParams(r)
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit).
		SetSkip(skip)

	cursor, err := documentCollection.Find(ctx, filter, opts)
	if err != nil {
		log.Printf("documents Find error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}
	defer cursor.Close(ctx)

	var documents []models.Document
	if err = cursor.All(ctx, &documents); err != nil {
		log.Printf("cursor decode error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to decode documents")
		return
	}
	if documents == nil {
		documents = []models.Document{}
	}
	for i := range documents {
		documents[i].SyncID()
	}

	utils.RespondWithJSON(w, http.StatusOK, documents)
}

func GetDocument(w http.ResponseWriter, r *http.Request) {
	docID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid document id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var document models.Document
	err = documentCollection.FindOne(ctx, bson.M{"_id": docID}).Decode(&document)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "document not found")
			return
		}
		log.Printf("find document error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}

	document.SyncID()
	utils.RespondWithJSON(w, http.StatusOK, document)
}

// parseTags splits a comma-separated tag string, dropping empties.
func parseTags(raw string) []string {
	tags := []string{}
	for _, tag := range strings.Split(raw, ",") {
		if t := strings.TrimSpace(tag); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// UploadDocument creates a document record from a multipart form and
// stores the file under the upload directory keyed by document number.
func UploadDocument(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	name := r.FormValue("name")
	description := r.FormValue("description")
	category := r.FormValue("category")
	if name == "" || description == "" || category == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "missing required fields: name, description, category")
		return
	}

	var expiryDate *models.Date
	if raw := r.FormValue("expiryDate"); raw != "" {
		var d models.Date
		if err := d.UnmarshalJSON([]byte(`"` + raw + `"`)); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "invalid expiryDate")
			return
		}
		expiryDate = &d
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	docNumber, err := database.NextSequenceNumber(ctx, "documents", "DOC")
	if err != nil {
		log.Printf("document number allocation error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to allocate document number")
		return
	}

	ext := filepath.Ext(header.Filename)
	filePath := filepath.Join(config.UploadDir, "documents", docNumber+ext)
	if err := saveUploadedFile(file, filePath); err != nil {
		log.Printf("document file save failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to store document file")
		return
	}

	now := time.Now().UTC()
	document := models.Document{
		ID:             primitive.NewObjectID(),
		DocumentNumber: docNumber,
		Name:           name,
		Description:    description,
		Category:       category,
		FileType:       header.Header.Get("Content-Type"),
		FileName:       header.Filename,
		FilePath:       filePath,
		FileSize:       header.Size,
		RelatedTo:      r.FormValue("relatedTo"),
		RelatedType:    r.FormValue("relatedType"),
		UploadedBy:     "Current User",
		UploadedDate:   now,
		ExpiryDate:     expiryDate,
		Tags:           parseTags(r.FormValue("tags")),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if _, err := documentCollection.InsertOne(ctx, document); err != nil {
		log.Printf("document insert error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to create document")
		return
	}

	document.SyncID()
	utils.RespondWithJSON(w, http.StatusCreated, document)
}

type UpdateDocumentRequest struct {
	Name        *string      `json:"name"`
	Description *string      `json:"description"`
	Category    *string      `json:"category"`
	RelatedTo   *string      `json:"relatedTo"`
	RelatedType *string      `json:"relatedType"`
	ExpiryDate  *models.Date `json:"expiryDate"`
	Tags        *[]string    `json:"tags"`
}

func documentUpdateDoc(req UpdateDocumentRequest) bson.M {
	doc := bson.M{}
	if req.Name != nil {
		doc["name"] = *req.Name
	}
	if req.Description != nil {
		doc["description"] = *req.Description
	}
	if req.Category != nil {
		doc["category"] = *req.Category
	}
	if req.RelatedTo != nil {
		doc["relatedTo"] = *req.RelatedTo
	}
	if req.RelatedType != nil {
		doc["relatedType"] = *req.RelatedType
	}
	if req.ExpiryDate != nil {
		doc["expiryDate"] = *req.ExpiryDate
	}
	if req.Tags != nil {
		doc["tags"] = *req.Tags
	}
	return doc
}

func UpdateDocument(w http.ResponseWriter, r *http.Request) {
	docID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid document id")
		return
	}

	var req UpdateDocumentRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	doc := documentUpdateDoc(req)
	if len(doc) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "no fields to update")
		return
	}
	doc = utils.Stamp(doc, true)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Document
	err = documentCollection.FindOneAndUpdate(ctx, bson.M{"_id": docID}, bson.M{"$set": doc}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "document not found")
			return
		}
		log.Printf("document update error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to update document")
		return
	}

	updated.SyncID()
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

func DeleteDocument(w http.ResponseWriter, r *http.Request) {
	docID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid document id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var deleted models.Document
	err = documentCollection.FindOneAndDelete(ctx, bson.M{"_id": docID}).Decode(&deleted)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "document not found")
			return
		}
		log.Printf("document delete error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to delete document")
		return
	}

	// The record is gone either way; a stranded file on disk is only logged.
	if deleted.FilePath != "" {
		if err := os.Remove(deleted.FilePath); err != nil && !os.IsNotExist(err) {
			log.Printf("document %s file removal failed: %v", deleted.DocumentNumber, err)
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Document deleted successfully"})
}

func DownloadDocument(w http.ResponseWriter, r *http.Request) {
	serveDocumentFile(w, r, true)
}

func ViewDocument(w http.ResponseWriter, r *http.Request) {
	serveDocumentFile(w, r, false)
}

func serveDocumentFile(w http.ResponseWriter, r *http.Request, asAttachment bool) {
	docID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid document id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var document models.Document
	err = documentCollection.FindOne(ctx, bson.M{"_id": docID}).Decode(&document)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "document not found")
			return
		}
		log.Printf("find document error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}

	if _, err := os.Stat(document.FilePath); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "file not found")
		return
	}

	if document.FileType != "" {
		w.Header().Set("Content-Type", document.FileType)
	}
	if asAttachment {
		w.Header().Set("Content-Disposition", `attachment; filename="`+document.FileName+`"`)
	}
	http.ServeFile(w, r, document.FilePath)
}
