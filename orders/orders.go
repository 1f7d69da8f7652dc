// Package orders covers the customer order lifecycle: placement from the
// cart, dashboards for both sides, and status updates.
package orders

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"mandi/cart"
	"mandi/db"
	"mandi/models"
	"mandi/mq"
	"mandi/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PlaceOrder snapshots the caller's cart into a pending order and clears the
// cart. Prices and totals are recomputed from the current store rows, not
// trusted from the client.
func PlaceOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		PaymentMethod string     `json:"paymentMethod"`
		PickupTime    *time.Time `json:"pickupTime"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if !models.ValidPaymentMethod(input.PaymentMethod) {
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown payment method")
		return
	}

	c, err := cart.Load(userID)
	if err != nil {
		log.Println("PlaceOrder cart load error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve cart")
		return
	}
	if len(c.Items) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Cart is empty")
		return
	}

	now := time.Now()
	order := models.Order{
		OrderID:       utils.GetUUID(),
		CustomerID:    userID,
		ShopID:        c.ShopID,
		Status:        models.OrderPending,
		PaymentMethod: input.PaymentMethod,
		PickupTime:    input.PickupTime,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	for _, line := range c.Items {
		// Re-read the listing so the order carries current prices.
		var sp models.ShopProduct
		if err := db.ShopProductsCollection.FindOne(ctx, bson.M{"shopproductid": line.ShopProductID}).Decode(&sp); err != nil {
			utils.RespondWithError(w, http.StatusConflict, "An item in the cart is no longer listed")
			return
		}
		if !sp.IsAvailable || sp.Stock < line.Quantity {
			utils.RespondWithError(w, http.StatusConflict, "An item in the cart is out of stock")
			return
		}

		var product models.Product
		if err := db.ProductsCollection.FindOne(ctx, bson.M{"productid": sp.ProductID}).Decode(&product); err != nil {
			utils.RespondWithError(w, http.StatusConflict, "An item in the cart is no longer in the catalog")
			return
		}

		item := models.OrderItem{
			OrderItemID:  utils.GetUUID(),
			ProductID:    sp.ProductID,
			Product:      product,
			Quantity:     line.Quantity,
			PricePerUnit: sp.Price,
			Total:        sp.Price * float64(line.Quantity),
		}
		order.Items = append(order.Items, item)
		order.Subtotal += item.Total
	}
	order.Total = order.Subtotal

	if _, err := db.OrdersCollection.InsertOne(ctx, order); err != nil {
		log.Println("PlaceOrder insert error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Order creation failed")
		return
	}

	// Decrement stock per line. Each decrement is a single atomic row
	// operation; there is no cross-row transaction here.
	for _, item := range order.Items {
		for _, line := range c.Items {
			if line.ShopProduct.ProductID != item.ProductID {
				continue
			}
			if _, err := db.ShopProductsCollection.UpdateOne(ctx,
				bson.M{"shopproductid": line.ShopProductID, "stock": bson.M{"$gte": item.Quantity}},
				bson.M{"$inc": bson.M{"stock": -item.Quantity}, "$set": bson.M{"updatedAt": time.Now()}}); err != nil {
				log.Println("PlaceOrder stock decrement error:", err)
			}
		}
	}

	if err := cart.Save(userID, cart.Cart{}); err != nil {
		log.Println("PlaceOrder cart cleanup error:", err)
	}

	go mq.Emit(context.Background(), mq.Event{Name: "order-placed", EntityType: "order", EntityID: order.OrderID, ShopID: order.ShopID, Status: order.Status})

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"success": true, "order": order})
}

// ListMyOrders returns the customer's own orders, newest first.
func ListMyOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	listOrders(ctx, w, bson.M{"customerid": utils.GetUserIDFromRequest(r)})
}

// ListShopOrders returns the orders placed with the caller's shop, newest
// first, each annotated with the actions the dashboard should offer.
func ListShopOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var shop models.Shop
	if err := db.ShopsCollection.FindOne(ctx, bson.M{"ownerid": utils.GetUserIDFromRequest(r)}).Decode(&shop); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "No shop for this account")
		return
	}

	filter := bson.M{"shopid": shop.ShopID}
	if status := r.URL.Query().Get("status"); status != "" {
		if !models.ValidOrderStatus(status) {
			utils.RespondWithError(w, http.StatusBadRequest, "Unknown status")
			return
		}
		filter["status"] = status
	}
	listOrders(ctx, w, filter)
}

// GetOrder returns one order visible to its customer or its shop's owner.
func GetOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, ok := loadVisibleOrder(ctx, w, r, ps.ByName("id"))
	if !ok {
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "order": order, "actions": Actions(order.Status)})
}

// UpdateOrderStatus overwrites the order's status. The write is deliberately
// unguarded — any valid status can replace any other, last write wins — and
// lives behind applyStatus so a transition guard has a single place to go.
func UpdateOrderStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	orderID := ps.ByName("id")

	var input struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if !models.ValidOrderStatus(input.Status) {
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown status")
		return
	}

	var shop models.Shop
	if err := db.ShopsCollection.FindOne(ctx, bson.M{"ownerid": userID}).Decode(&shop); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "No shop for this account")
		return
	}

	if err := applyStatus(ctx, orderID, shop.ShopID, input.Status); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	go mq.Emit(context.Background(), mq.Event{Name: "order-status-changed", EntityType: "order", EntityID: orderID, ShopID: shop.ShopID, Status: input.Status})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "status": input.Status, "actions": Actions(input.Status)})
}

// CancelOrder lets the customer cancel their own order.
func CancelOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	orderID := ps.ByName("id")

	var order models.Order
	if err := db.OrdersCollection.FindOne(ctx, bson.M{"orderid": orderID, "customerid": userID}).Decode(&order); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}
	if !CanCancel(order.Status) {
		utils.RespondWithError(w, http.StatusConflict, "Order can no longer be cancelled")
		return
	}

	// Filter on the status we just read so a concurrent pickup wins the race.
	result, err := db.OrdersCollection.UpdateOne(ctx,
		bson.M{"orderid": orderID, "customerid": userID, "status": order.Status},
		bson.M{"$set": bson.M{"status": models.OrderCancelled, "updatedAt": time.Now()}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusConflict, "Order can no longer be cancelled")
		return
	}

	go mq.Emit(context.Background(), mq.Event{Name: "order-status-changed", EntityType: "order", EntityID: orderID, ShopID: order.ShopID, Status: models.OrderCancelled})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "status": models.OrderCancelled})
}

// applyStatus is the single writer of order status. It performs an
// unconditional overwrite scoped to the shop.
func applyStatus(ctx context.Context, orderID, shopID, status string) error {
	result, err := db.OrdersCollection.UpdateOne(ctx,
		bson.M{"orderid": orderID, "shopid": shopID},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return errNotFound
	}
	return nil
}

var errNotFound = &notFoundError{}

type notFoundError struct{}

func (*notFoundError) Error() string { return "not found" }

func listOrders(ctx context.Context, w http.ResponseWriter, filter bson.M) {
	cursor, err := db.OrdersCollection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		log.Println("listOrders error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}
	defer cursor.Close(ctx)

	var items []models.Order
	if err := cursor.All(ctx, &items); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode orders")
		return
	}
	if items == nil {
		items = []models.Order{}
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "orders": items})
}

// loadVisibleOrder fetches an order and checks the caller may see it.
func loadVisibleOrder(ctx context.Context, w http.ResponseWriter, r *http.Request, orderID string) (models.Order, bool) {
	userID := utils.GetUserIDFromRequest(r)

	var order models.Order
	if err := db.OrdersCollection.FindOne(ctx, bson.M{"orderid": orderID}).Decode(&order); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return models.Order{}, false
	}

	if order.CustomerID != userID {
		var shop models.Shop
		err := db.ShopsCollection.FindOne(ctx, bson.M{"shopid": order.ShopID}).Decode(&shop)
		if err != nil || shop.OwnerID != userID {
			utils.RespondWithError(w, http.StatusForbidden, "Access denied")
			return models.Order{}, false
		}
	}
	return order, true
}
