package auth

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"mandi/db"
	"mandi/globals"
	"mandi/middleware"
	"mandi/models"
	"mandi/rdx"
	"mandi/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

const accessTokenTTL = 24 * time.Hour

// Register creates an account with one of the signup roles.
func Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if input.Username == "" || input.Email == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if len(input.Password) < 8 {
		utils.RespondWithError(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}
	if !models.ValidRole(input.Role) {
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown role")
		return
	}

	count, err := db.UserCollection.CountDocuments(ctx, bson.M{"$or": []bson.M{
		{"username": input.Username},
		{"email": input.Email},
	}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if count > 0 {
		utils.RespondWithError(w, http.StatusConflict, "Username or email already registered")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	user := models.User{
		UserID:    utils.GetUUID(),
		Username:  input.Username,
		Email:     input.Email,
		Phone:     input.Phone,
		Password:  string(hashed),
		Role:      input.Role,
		CreatedAt: time.Now(),
	}
	if _, err := db.UserCollection.InsertOne(ctx, user); err != nil {
		log.Println("Register insert error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	token, err := issueToken(user)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	user.Password = ""
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"success": true, "token": token, "user": user})
}

// Login checks credentials and returns a JWT with the role claim.
func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"username": input.Username}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	token, err := issueToken(user)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	user.Password = ""
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "token": token, "user": user})
}

// Logout drops the session marker. The JWT itself stays valid until expiry.
func Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if err := rdx.RdxDel("session:" + userID); err != nil {
		log.Println("Logout session delete error:", err)
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": "Logged out"})
}

func issueToken(user models.User) (string, error) {
	claims := &middleware.Claims{
		Username: user.Username,
		UserID:   user.UserID,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	if err != nil {
		return "", err
	}
	if err := rdx.RdxSet("session:"+user.UserID, token, accessTokenTTL); err != nil {
		log.Println("Session cache error:", err)
	}
	return token, nil
}
