// Package admin holds the platform operator endpoints.
package admin

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"mandi/db"
	"mandi/models"
	"mandi/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// VerifyShop toggles a shop's verified badge.
func VerifyShop(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Verified bool `json:"verified"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	result, err := db.ShopsCollection.UpdateOne(ctx,
		bson.M{"shopid": ps.ByName("id")},
		bson.M{"$set": bson.M{"isVerified": input.Verified, "updatedAt": time.Now()}})
	if err != nil {
		log.Println("VerifyShop error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Shop not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "verified": input.Verified})
}

// ListShops returns all shops including closed and unverified ones.
func ListShops(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := db.ShopsCollection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch shops")
		return
	}
	defer cursor.Close(ctx)

	var shops []models.Shop
	if err := cursor.All(ctx, &shops); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode shops")
		return
	}
	if shops == nil {
		shops = []models.Shop{}
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "shops": shops})
}

// PlatformStats reports entity counts for the admin dashboard.
func PlatformStats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	counts := utils.M{}
	for name, coll := range map[string]*mongo.Collection{
		"users":      db.UserCollection,
		"shops":      db.ShopsCollection,
		"products":   db.ProductsCollection,
		"orders":     db.OrdersCollection,
		"produce":    db.ProduceCollection,
		"bulkOrders": db.BulkOrdersCollection,
	} {
		n, err := coll.CountDocuments(ctx, bson.M{})
		if err != nil {
			log.Println("PlatformStats count error:", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to count "+name)
			return
		}
		counts[name] = n
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "stats": counts})
}
