package shops

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sort"
	"strconv"
	"time"

	"mandi/db"
	"mandi/geo"
	"mandi/models"
	"mandi/mq"
	"mandi/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateShop registers the caller's shop. One shop per shopkeeper account.
func CreateShop(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		Name        string          `json:"name"`
		Description string          `json:"description"`
		Location    models.Location `json:"location"`
		OpeningTime string          `json:"openingTime"`
		ClosingTime string          `json:"closingTime"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if input.Name == "" || input.Location.City == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	count, err := db.ShopsCollection.CountDocuments(ctx, bson.M{"ownerid": userID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if count > 0 {
		utils.RespondWithError(w, http.StatusConflict, "Account already owns a shop")
		return
	}

	now := time.Now()
	shop := models.Shop{
		ShopID:      utils.GetUUID(),
		OwnerID:     userID,
		Name:        input.Name,
		Description: input.Description,
		Location:    input.Location,
		IsOpen:      true,
		OpeningTime: input.OpeningTime,
		ClosingTime: input.ClosingTime,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := db.ShopsCollection.InsertOne(ctx, shop); err != nil {
		log.Println("CreateShop insert error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create shop")
		return
	}

	go mq.Emit(context.Background(), mq.Event{Name: "shop-created", EntityType: "shop", EntityID: shop.ShopID, ShopID: shop.ShopID})

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"success": true, "shop": shop})
}

// ListShops returns open shops. When the caller supplies lat/lon, each shop
// is annotated with its distance and the list is sorted nearest first;
// otherwise the store's default order is kept. Shops without coordinates are
// never filtered out, only pushed to the end of a sorted list.
func ListShops(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := db.ShopsCollection.Find(ctx, bson.M{"isOpen": true})
	if err != nil {
		log.Println("ListShops find error:", err)
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

	q := r.URL.Query()
	latStr, lonStr := q.Get("lat"), q.Get("lon")
	if latStr != "" && lonStr != "" {
		lat, errLat := strconv.ParseFloat(latStr, 64)
		lon, errLon := strconv.ParseFloat(lonStr, 64)
		if errLat != nil || errLon != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid coordinates")
			return
		}

		for i := range shops {
			loc := shops[i].Location
			if loc.Latitude == 0 && loc.Longitude == 0 {
				continue
			}
			d := geo.DistanceKm(lat, lon, loc.Latitude, loc.Longitude)
			shops[i].DistanceKm = &d
		}

		if maxStr := q.Get("maxDistance"); maxStr != "" {
			max, err := strconv.ParseFloat(maxStr, 64)
			if err != nil {
				utils.RespondWithError(w, http.StatusBadRequest, "Invalid maxDistance")
				return
			}
			filtered := shops[:0]
			for _, s := range shops {
				if s.DistanceKm != nil && *s.DistanceKm <= max {
					filtered = append(filtered, s)
				}
			}
			shops = filtered
		}

		sort.SliceStable(shops, func(i, j int) bool {
			di, dj := shops[i].DistanceKm, shops[j].DistanceKm
			if di == nil {
				return false
			}
			if dj == nil {
				return true
			}
			return *di < *dj
		})
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "shops": shops})
}

// GetShop returns one shop with its available products joined to the product
// master.
func GetShop(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	shopID := ps.ByName("id")

	var shop models.Shop
	if err := db.ShopsCollection.FindOne(ctx, bson.M{"shopid": shopID}).Decode(&shop); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Shop not found")
		return
	}

	products, err := listAvailableProducts(ctx, shopID)
	if err != nil {
		log.Println("GetShop products error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load products")
		return
	}
	shop.Products = products

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "shop": shop})
}

// GetMyShop returns the caller's own shop, products included regardless of
// availability.
func GetMyShop(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)

	var shop models.Shop
	if err := db.ShopsCollection.FindOne(ctx, bson.M{"ownerid": userID}).Decode(&shop); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "No shop for this account")
		return
	}

	products, err := listShopProducts(ctx, shop.ShopID, bson.M{"shopid": shop.ShopID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load products")
		return
	}
	shop.Products = products

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "shop": shop})
}

// UpdateShop applies a partial update to the caller's shop: hours,
// description, open/closed flag. Last write wins.
func UpdateShop(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	shopID := ps.ByName("id")

	var input struct {
		Name        *string          `json:"name"`
		Description *string          `json:"description"`
		IsOpen      *bool            `json:"isOpen"`
		OpeningTime *string          `json:"openingTime"`
		ClosingTime *string          `json:"closingTime"`
		Location    *models.Location `json:"location"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	updateFields := bson.M{}
	if input.Name != nil {
		updateFields["name"] = *input.Name
	}
	if input.Description != nil {
		updateFields["description"] = *input.Description
	}
	if input.IsOpen != nil {
		updateFields["isOpen"] = *input.IsOpen
	}
	if input.OpeningTime != nil {
		updateFields["openingTime"] = *input.OpeningTime
	}
	if input.ClosingTime != nil {
		updateFields["closingTime"] = *input.ClosingTime
	}
	if input.Location != nil {
		updateFields["location"] = *input.Location
	}
	if len(updateFields) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "No fields to update")
		return
	}
	updateFields["updatedAt"] = time.Now()

	result, err := db.ShopsCollection.UpdateOne(ctx,
		bson.M{"shopid": shopID, "ownerid": userID},
		bson.M{"$set": updateFields})
	if err != nil {
		log.Println("UpdateShop error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Shop not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": "Shop updated"})
}

// UploadShopPhoto stores the shop image with a generated thumbnail.
func UploadShopPhoto(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	shopID := ps.ByName("id")

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to parse form")
		return
	}
	file, header, err := r.FormFile("photo")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing photo")
		return
	}
	defer file.Close()

	filename, err := utils.SaveImageWithThumb(file, header, "./static/shoppic")
	if err != nil {
		log.Println("UploadShopPhoto save error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store photo")
		return
	}

	result, err := db.ShopsCollection.UpdateOne(ctx,
		bson.M{"shopid": shopID, "ownerid": userID},
		bson.M{"$set": bson.M{"image": "/static/shoppic/" + filename, "updatedAt": time.Now()}})
	if err != nil || result.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Shop not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "image": "/static/shoppic/" + filename})
}

// listAvailableProducts joins available shop products with their master rows.
func listAvailableProducts(ctx context.Context, shopID string) ([]models.ShopProduct, error) {
	return listShopProducts(ctx, shopID, bson.M{"shopid": shopID, "isAvailable": true})
}

func listShopProducts(ctx context.Context, shopID string, filter bson.M) ([]models.ShopProduct, error) {
	cursor, err := db.ShopProductsCollection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []models.ShopProduct
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.ShopProduct{}
	}

	// Join product master data in one round trip.
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
