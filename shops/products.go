package shops

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
)

// ownShop resolves the caller's shop, or "" when the account owns none.
func ownShop(ctx context.Context, userID string) (models.Shop, bool) {
	var shop models.Shop
	if err := db.ShopsCollection.FindOne(ctx, bson.M{"ownerid": userID}).Decode(&shop); err != nil {
		return models.Shop{}, false
	}
	return shop, true
}

// AddShopProduct lists a master product in the caller's shop. A second
// listing of the same product is rejected rather than silently duplicated.
func AddShopProduct(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	shop, ok := ownShop(ctx, userID)
	if !ok {
		utils.RespondWithError(w, http.StatusNotFound, "No shop for this account")
		return
	}

	var input struct {
		ProductID string  `json:"productId"`
		Price     float64 `json:"price"`
		Stock     int     `json:"stock"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if input.ProductID == "" || input.Price < 0 || input.Stock < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing or invalid fields")
		return
	}

	if err := db.ProductsCollection.FindOne(ctx, bson.M{"productid": input.ProductID}).Err(); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Unknown product")
		return
	}

	// One listing per (shop, product) pair. Two tabs racing past this check
	// is resolved by the unique index on the pair.
	count, err := db.ShopProductsCollection.CountDocuments(ctx, bson.M{"shopid": shop.ShopID, "productid": input.ProductID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if count > 0 {
		utils.RespondWithError(w, http.StatusConflict, "Product already listed in this shop")
		return
	}

	now := time.Now()
	sp := models.ShopProduct{
		ShopProductID: utils.GetUUID(),
		ShopID:        shop.ShopID,
		ProductID:     input.ProductID,
		Price:         input.Price,
		Stock:         input.Stock,
		IsAvailable:   true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := db.ShopProductsCollection.InsertOne(ctx, sp); err != nil {
		log.Println("AddShopProduct insert error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add product")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"success": true, "shopProduct": sp})
}

// ListShopProducts returns a shop's available products with master data.
func ListShopProducts(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	items, err := listAvailableProducts(ctx, ps.ByName("id"))
	if err != nil {
		log.Println("ListShopProducts error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "products": items})
}

// UpdateShopProduct applies a partial update (price, stock, availability) to
// one of the caller's listings. Last write wins on concurrent edits.
func UpdateShopProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	shop, ok := ownShop(ctx, userID)
	if !ok {
		utils.RespondWithError(w, http.StatusNotFound, "No shop for this account")
		return
	}

	var input struct {
		Price       *float64 `json:"price"`
		Stock       *int     `json:"stock"`
		IsAvailable *bool    `json:"isAvailable"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	updateFields := bson.M{}
	if input.Price != nil {
		if *input.Price < 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "Price must not be negative")
			return
		}
		updateFields["price"] = *input.Price
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "Stock must not be negative")
			return
		}
		updateFields["stock"] = *input.Stock
	}
	if input.IsAvailable != nil {
		updateFields["isAvailable"] = *input.IsAvailable
	}
	if len(updateFields) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "No fields to update")
		return
	}
	updateFields["updatedAt"] = time.Now()

	result, err := db.ShopProductsCollection.UpdateOne(ctx,
		bson.M{"shopproductid": ps.ByName("id"), "shopid": shop.ShopID},
		bson.M{"$set": updateFields})
	if err != nil {
		log.Println("UpdateShopProduct error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Listing not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": "Listing updated"})
}

// RemoveShopProduct hard-deletes a listing from the caller's shop.
func RemoveShopProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	shop, ok := ownShop(ctx, userID)
	if !ok {
		utils.RespondWithError(w, http.StatusNotFound, "No shop for this account")
		return
	}

	result, err := db.ShopProductsCollection.DeleteOne(ctx,
		bson.M{"shopproductid": ps.ByName("id"), "shopid": shop.ShopID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if result.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Listing not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": "Listing removed"})
}
