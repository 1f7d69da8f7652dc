package cart

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"mandi/db"
	"mandi/models"
	"mandi/rdx"
	"mandi/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
)

const cartTTL = 7 * 24 * time.Hour

func cartKey(userID string) string { return "cart:" + userID }

// Load reads the user's cart from Redis; a missing key is an empty cart.
func Load(userID string) (Cart, error) {
	var c Cart
	raw, err := rdx.RdxGet(cartKey(userID))
	if err == redis.Nil {
		return c, nil
	}
	if err != nil {
		return c, err
	}
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return Cart{}, err
	}
	return c, nil
}

// Save writes the cart back; an empty cart deletes the key.
func Save(userID string, c Cart) error {
	if len(c.Items) == 0 {
		return rdx.RdxDel(cartKey(userID))
	}
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return rdx.RdxSet(cartKey(userID), string(data), cartTTL)
}

func respondCart(w http.ResponseWriter, c Cart) {
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success":   true,
		"cart":      c,
		"total":     c.Total(),
		"itemCount": c.ItemCount(),
	})
}

// GetCart returns the cart with its derived totals.
func GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	c, err := Load(userID)
	if err != nil {
		log.Println("GetCart load error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve cart")
		return
	}
	respondCart(w, c)
}

// AddToCart adds one unit of a shop product, fetching the current snapshot
// from the store. Switching shops silently discards the previous cart.
func AddToCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		ShopProductID string `json:"shopProductId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.ShopProductID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	var sp models.ShopProduct
	if err := db.ShopProductsCollection.FindOne(ctx, bson.M{"shopproductid": input.ShopProductID}).Decode(&sp); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}
	if !sp.IsAvailable {
		utils.RespondWithError(w, http.StatusBadRequest, "Product is not available")
		return
	}

	var shop models.Shop
	if err := db.ShopsCollection.FindOne(ctx, bson.M{"shopid": sp.ShopID}).Decode(&shop); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Shop not found")
		return
	}

	c, err := Load(userID)
	if err != nil {
		log.Println("AddToCart load error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve cart")
		return
	}

	c.AddItem(sp, &shop)

	if err := Save(userID, c); err != nil {
		log.Println("AddToCart save error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add to cart")
		return
	}
	respondCart(w, c)
}

// UpdateCartItem sets a line's quantity, clamped to the product's current
// stock. Quantity 0 removes the line.
func UpdateCartItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	shopProductID := ps.ByName("id")

	var input struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	c, err := Load(userID)
	if err != nil {
		log.Println("UpdateCartItem load error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve cart")
		return
	}

	quantity := input.Quantity
	if quantity > 0 {
		var sp models.ShopProduct
		if err := db.ShopProductsCollection.FindOne(ctx, bson.M{"shopproductid": shopProductID}).Decode(&sp); err == nil && quantity > sp.Stock {
			quantity = sp.Stock
		}
	}
	c.UpdateQuantity(shopProductID, quantity)

	if err := Save(userID, c); err != nil {
		log.Println("UpdateCartItem save error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update cart")
		return
	}
	respondCart(w, c)
}

// RemoveCartItem drops a line from the cart.
func RemoveCartItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	c, err := Load(userID)
	if err != nil {
		log.Println("RemoveCartItem load error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve cart")
		return
	}

	c.RemoveItem(ps.ByName("id"))

	if err := Save(userID, c); err != nil {
		log.Println("RemoveCartItem save error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update cart")
		return
	}
	respondCart(w, c)
}

// ClearCart empties the cart unconditionally.
func ClearCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := rdx.RdxDel(cartKey(userID)); err != nil {
		log.Println("ClearCart delete error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to clear cart")
		return
	}
	respondCart(w, Cart{})
}
