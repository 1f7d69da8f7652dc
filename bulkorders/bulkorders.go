// Package bulkorders handles wholesale requests from shopkeepers to farmers.
package bulkorders

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"mandi/db"
	"mandi/models"
	"mandi/mq"
	"mandi/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateRequest opens a pending bulk order against a farmer's produce offer.
func CreateRequest(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	shopkeeperID := utils.GetUserIDFromRequest(r)

	var input struct {
		ProduceID         string  `json:"produceId"`
		RequestedQuantity float64 `json:"requestedQuantity"`
		OfferedPrice      float64 `json:"offeredPrice"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if input.ProduceID == "" || input.RequestedQuantity <= 0 || input.OfferedPrice <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing or invalid fields")
		return
	}

	var produce models.FarmerProduce
	if err := db.ProduceCollection.FindOne(ctx, bson.M{"produceid": input.ProduceID}).Decode(&produce); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Produce not found")
		return
	}
	if !produce.IsAvailable {
		utils.RespondWithError(w, http.StatusBadRequest, "Produce is not available")
		return
	}

	now := time.Now()
	req := models.BulkOrderRequest{
		RequestID:         utils.GetUUID(),
		ShopkeeperID:      shopkeeperID,
		FarmerID:          produce.FarmerID,
		ProduceID:         produce.ProduceID,
		RequestedQuantity: input.RequestedQuantity,
		OfferedPrice:      input.OfferedPrice,
		Status:            models.BulkPending,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if _, err := db.BulkOrdersCollection.InsertOne(ctx, req); err != nil {
		log.Println("CreateRequest insert error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create request")
		return
	}

	go mq.Emit(context.Background(), mq.Event{Name: "bulk-order-created", EntityType: "bulkorder", EntityID: req.RequestID, Status: req.Status})

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"success": true, "request": req})
}

// ListRequests returns the caller's side of the ledger: outgoing requests
// for shopkeepers, incoming ones for farmers.
func ListRequests(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	switch utils.GetRoleFromRequest(r) {
	case models.RoleShopkeeper:
		listRequests(ctx, w, bson.M{"shopkeeperid": userID})
	case models.RoleFarmer:
		listRequests(ctx, w, bson.M{"farmerid": userID})
	default:
		utils.RespondWithError(w, http.StatusForbidden, "Access denied")
	}
}

// GetRequest returns one request visible to either party.
func GetRequest(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)

	var req models.BulkOrderRequest
	if err := db.BulkOrdersCollection.FindOne(ctx, bson.M{"requestid": ps.ByName("id")}).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Request not found")
		return
	}
	if req.ShopkeeperID != userID && req.FarmerID != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Access denied")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "request": req})
}

// UpdateRequestStatus overwrites the request's status. Scoping the filter to
// the owning farmer is the only guard — the overwrite itself is unconditional
// (last write wins), kept behind this single function.
func UpdateRequestStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	farmerID := utils.GetUserIDFromRequest(r)
	requestID := ps.ByName("id")

	var input struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	switch input.Status {
	case models.BulkAccepted, models.BulkRejected, models.BulkCompleted:
	default:
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown status")
		return
	}

	result, err := db.BulkOrdersCollection.UpdateOne(ctx,
		bson.M{"requestid": requestID, "farmerid": farmerID},
		bson.M{"$set": bson.M{"status": input.Status, "updatedAt": time.Now()}})
	if err != nil {
		log.Println("UpdateRequestStatus error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Request not found")
		return
	}

	go mq.Emit(context.Background(), mq.Event{Name: "bulk-order-updated", EntityType: "bulkorder", EntityID: requestID, Status: input.Status})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "status": input.Status})
}

func listRequests(ctx context.Context, w http.ResponseWriter, filter bson.M) {
	cursor, err := db.BulkOrdersCollection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		log.Println("listRequests error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch requests")
		return
	}
	defer cursor.Close(ctx)

	var items []models.BulkOrderRequest
	if err := cursor.All(ctx, &items); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode requests")
		return
	}
	if items == nil {
		items = []models.BulkOrderRequest{}
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "requests": items})
}
