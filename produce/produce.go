// Package produce is the farmer-side wholesale inventory: produce offered to
// shopkeepers by the kilogram.
package produce

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

// CreateProduce adds an offer owned by the signed-in farmer.
func CreateProduce(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	farmerID := utils.GetUserIDFromRequest(r)

	var input struct {
		ProductID         string     `json:"productId"`
		PricePerKg        float64    `json:"pricePerKg"`
		AvailableQuantity float64    `json:"availableQuantity"`
		HarvestDate       *time.Time `json:"harvestDate"`
		IsOrganic         bool       `json:"isOrganic"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if input.ProductID == "" || input.PricePerKg <= 0 || input.AvailableQuantity <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing or invalid fields")
		return
	}
	if err := db.ProductsCollection.FindOne(ctx, bson.M{"productid": input.ProductID}).Err(); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Unknown product")
		return
	}

	now := time.Now()
	p := models.FarmerProduce{
		ProduceID:         utils.GetUUID(),
		FarmerID:          farmerID,
		ProductID:         input.ProductID,
		PricePerKg:        input.PricePerKg,
		AvailableQuantity: input.AvailableQuantity,
		HarvestDate:       input.HarvestDate,
		IsOrganic:         input.IsOrganic,
		IsAvailable:       true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if _, err := db.ProduceCollection.InsertOne(ctx, p); err != nil {
		log.Println("CreateProduce insert error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create produce")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"success": true, "produce": p})
}

// ListProduce returns available offers for shopkeepers to browse, with
// optional organic and farmer filters, joined to product master data.
func ListProduce(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{"isAvailable": true}
	q := r.URL.Query()
	if q.Get("organic") == "true" {
		filter["isOrganic"] = true
	}
	if farmer := q.Get("farmerId"); farmer != "" {
		filter["farmerid"] = farmer
	}

	items, err := findProduce(ctx, filter)
	if err != nil {
		log.Println("ListProduce error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch produce")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "produce": items})
}

// ListMyProduce returns the farmer's own offers, available or not.
func ListMyProduce(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	items, err := findProduce(ctx, bson.M{"farmerid": utils.GetUserIDFromRequest(r)})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch produce")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "produce": items})
}

// UpdateProduce partially updates one of the farmer's offers.
func UpdateProduce(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	farmerID := utils.GetUserIDFromRequest(r)

	var input struct {
		PricePerKg        *float64   `json:"pricePerKg"`
		AvailableQuantity *float64   `json:"availableQuantity"`
		HarvestDate       *time.Time `json:"harvestDate"`
		IsOrganic         *bool      `json:"isOrganic"`
		IsAvailable       *bool      `json:"isAvailable"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	updateFields := bson.M{}
	if input.PricePerKg != nil {
		if *input.PricePerKg <= 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "Price must be positive")
			return
		}
		updateFields["pricePerKg"] = *input.PricePerKg
	}
	if input.AvailableQuantity != nil {
		if *input.AvailableQuantity < 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "Quantity must not be negative")
			return
		}
		updateFields["availableQuantity"] = *input.AvailableQuantity
	}
	if input.HarvestDate != nil {
		updateFields["harvestDate"] = *input.HarvestDate
	}
	if input.IsOrganic != nil {
		updateFields["isOrganic"] = *input.IsOrganic
	}
	if input.IsAvailable != nil {
		updateFields["isAvailable"] = *input.IsAvailable
	}
	if len(updateFields) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "No fields to update")
		return
	}
	updateFields["updatedAt"] = time.Now()

	result, err := db.ProduceCollection.UpdateOne(ctx,
		bson.M{"produceid": ps.ByName("id"), "farmerid": farmerID},
		bson.M{"$set": updateFields})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Produce not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": "Produce updated"})
}

// RemoveProduce hard-deletes one of the farmer's offers.
func RemoveProduce(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := db.ProduceCollection.DeleteOne(ctx,
		bson.M{"produceid": ps.ByName("id"), "farmerid": utils.GetUserIDFromRequest(r)})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if result.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Produce not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": "Produce removed"})
}

func findProduce(ctx context.Context, filter bson.M) ([]models.FarmerProduce, error) {
	cursor, err := db.ProduceCollection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []models.FarmerProduce
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.FarmerProduce{}
	}

	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	if len(ids) == 0 {
		return items, nil
	}

	prodCursor, err := db.ProductsCollection.Find(ctx, bson.M{"productid": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer prodCursor.Close(ctx)

	var masters []models.Product
	if err := prodCursor.All(ctx, &masters); err != nil {
		return nil, err
	}
	byID := make(map[string]models.Product, len(masters))
	for _, p := range masters {
		byID[p.ProductID] = p
	}
	for i := range items {
		if p, ok := byID[items[i].ProductID]; ok {
			prod := p
			items[i].Product = &prod
		}
	}
	return items, nil
}
