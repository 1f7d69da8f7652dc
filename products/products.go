// Package products maintains the master catalog. Entries are created and
// edited by platform operators only; everyone else reads.
package products

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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListProducts returns the catalog, optionally filtered by category.
func ListProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if cat := r.URL.Query().Get("category"); cat != "" {
		if !models.ValidCategory(cat) {
			utils.RespondWithError(w, http.StatusBadRequest, "Unknown category")
			return
		}
		filter["category"] = cat
	}

	cursor, err := db.ProductsCollection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		log.Println("ListProducts error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	defer cursor.Close(ctx)

	var items []models.Product
	if err := cursor.All(ctx, &items); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode products")
		return
	}
	if items == nil {
		items = []models.Product{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "products": items})
}

// GetProduct returns one catalog entry.
func GetProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var product models.Product
	if err := db.ProductsCollection.FindOne(ctx, bson.M{"productid": ps.ByName("id")}).Decode(&product); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "product": product})
}

// CreateProduct adds a catalog entry. Admin only (gated at the route).
func CreateProduct(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input models.Product
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if input.Name == "" || !models.ValidCategory(input.Category) || !models.ValidUnit(input.Unit) {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing or invalid fields")
		return
	}
	if input.MinQuantity <= 0 {
		input.MinQuantity = 1
	}

	input.ProductID = utils.GetUUID()
	input.CreatedAt = time.Now()

	if _, err := db.ProductsCollection.InsertOne(ctx, input); err != nil {
		log.Println("CreateProduct insert error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create product")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"success": true, "product": input})
}

// UpdateProduct edits a catalog entry. Admin only.
func UpdateProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Name          *string  `json:"name"`
		LocalizedName *string  `json:"localizedName"`
		Category      *string  `json:"category"`
		Description   *string  `json:"description"`
		Image         *string  `json:"image"`
		Unit          *string  `json:"unit"`
		MinQuantity   *float64 `json:"minQuantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	updateFields := bson.M{}
	if input.Name != nil {
		updateFields["name"] = *input.Name
	}
	if input.LocalizedName != nil {
		updateFields["localizedName"] = *input.LocalizedName
	}
	if input.Category != nil {
		if !models.ValidCategory(*input.Category) {
			utils.RespondWithError(w, http.StatusBadRequest, "Unknown category")
			return
		}
		updateFields["category"] = *input.Category
	}
	if input.Description != nil {
		updateFields["description"] = *input.Description
	}
	if input.Image != nil {
		updateFields["image"] = *input.Image
	}
	if input.Unit != nil {
		if !models.ValidUnit(*input.Unit) {
			utils.RespondWithError(w, http.StatusBadRequest, "Unknown unit")
			return
		}
		updateFields["unit"] = *input.Unit
	}
	if input.MinQuantity != nil {
		updateFields["minQuantity"] = *input.MinQuantity
	}
	if len(updateFields) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "No fields to update")
		return
	}

	result, err := db.ProductsCollection.UpdateOne(ctx, bson.M{"productid": ps.ByName("id")}, bson.M{"$set": updateFields})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": "Product updated"})
}
