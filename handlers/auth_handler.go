package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dinu12141/CMMS-MADAMPE/database"
	"github.com/dinu12141/CMMS-MADAMPE/models"
	"github.com/dinu12141/CMMS-MADAMPE/utils"
)

// Available roles
var Roles = []string{"Administrator", "Engineering Manager", "CEO", "DGM", "Supervisor", "Technician", "Electrician"}

func isValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

type RegisterRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department"`
	Phone      string `json:"phone"`
}

func Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	if req.Username == "" || req.Password == "" || req.Email == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "missing required fields: username, password, email")
		return
	}
	if !isValidRole(req.Role) {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid role, must be one of: "+strings.Join(Roles, ", "))
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Printf("password hash error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to register user")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userNumber, err := database.NextSequenceNumber(ctx, "users", "USER")
	if err != nil {
		log.Printf("user number allocation error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to allocate user number")
		return
	}

	now := time.Now().UTC()
	user := models.User{
		ID:           primitive.NewObjectID(),
		UserID:       userNumber,
		Username:     req.Username,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
		Department:   req.Department,
		Phone:        req.Phone,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := userCollection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusConflict, "username or email already registered")
			return
		}
		log.Printf("user insert error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to register user")
		return
	}

	user.SyncID()
	utils.RespondWithJSON(w, http.StatusCreated, user)
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Username == "" || req.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var user models.User
	err := userCollection.FindOne(ctx, bson.M{"username": req.Username}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusUnauthorized, "incorrect username or password")
			return
		}
		log.Printf("find user error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		utils.RespondWithError(w, http.StatusUnauthorized, "incorrect username or password")
		return
	}
	if !user.Active {
		utils.RespondWithError(w, http.StatusUnauthorized, "user account is deactivated")
		return
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.Username, user.Role)
	if err != nil {
		log.Printf("token generation error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// GetCurrentUser returns the user behind the bearer token.
func GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userIDStr, ok := r.Context().Value("userID").(string)
	if !ok || userIDStr == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "user id required")
		return
	}

	userID, err := primitive.ObjectIDFromHex(userIDStr)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var user models.User
	err = userCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "user not found")
			return
		}
		log.Printf("find user error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}

	user.SyncID()
	utils.RespondWithJSON(w, http.StatusOK, user)
}
