package routes

import (
	"net/http"

	"mandi/admin"
	"mandi/auth"
	"mandi/bulkorders"
	"mandi/cart"
	"mandi/geo"
	"mandi/live"
	"mandi/maps"
	"mandi/middleware"
	"mandi/models"
	"mandi/orders"
	"mandi/produce"
	"mandi/products"
	"mandi/ratelim"
	"mandi/shops"
	"mandi/utils"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/shoppic/*filepath", http.Dir("static/shoppic"))
}

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(auth.Register))
	router.POST("/api/auth/login", rl.Limit(auth.Login))
	router.POST("/api/auth/request-otp", rl.Limit(auth.RequestOTP))
	router.POST("/api/auth/verify-otp", rl.Limit(auth.VerifyOTP))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.Logout))
}

func AddGeoRoutes(router *httprouter.Router) {
	router.GET("/api/geo/cities", listCities)
	router.GET("/api/geo/resolve", resolveLocation)
}

func AddMapRoutes(router *httprouter.Router) {
	router.GET("/api/maps/token", maps.GetToken)
}

func AddCartRoutes(router *httprouter.Router) {
	router.GET("/api/cart", middleware.Authenticate(cart.GetCart))
	router.POST("/api/cart/items", middleware.Authenticate(cart.AddToCart))
	router.PUT("/api/cart/items/:id", middleware.Authenticate(cart.UpdateCartItem))
	router.DELETE("/api/cart/items/:id", middleware.Authenticate(cart.RemoveCartItem))
	router.DELETE("/api/cart", middleware.Authenticate(cart.ClearCart))
}

func AddShopRoutes(router *httprouter.Router) {
	router.GET("/api/shops", shops.ListShops)
	router.GET("/api/shops/:id", shops.GetShop)
	router.GET("/api/shops/:id/products", shops.ListShopProducts)

	router.POST("/api/shop", middleware.RequireRole(models.RoleShopkeeper, shops.CreateShop))
	router.GET("/api/shop/mine", middleware.RequireRole(models.RoleShopkeeper, shops.GetMyShop))
	router.PUT("/api/shop/:id", middleware.RequireRole(models.RoleShopkeeper, shops.UpdateShop))
	router.POST("/api/shop/:id/photo", middleware.RequireRole(models.RoleShopkeeper, shops.UploadShopPhoto))

	router.POST("/api/shopproducts", middleware.RequireRole(models.RoleShopkeeper, shops.AddShopProduct))
	router.PUT("/api/shopproducts/:id", middleware.RequireRole(models.RoleShopkeeper, shops.UpdateShopProduct))
	router.DELETE("/api/shopproducts/:id", middleware.RequireRole(models.RoleShopkeeper, shops.RemoveShopProduct))
}

func AddProductRoutes(router *httprouter.Router) {
	router.GET("/api/products", products.ListProducts)
	router.GET("/api/products/:id", products.GetProduct)
	router.POST("/api/products", middleware.RequireRole(models.RoleAdmin, products.CreateProduct))
	router.PUT("/api/products/:id", middleware.RequireRole(models.RoleAdmin, products.UpdateProduct))
}

func AddProduceRoutes(router *httprouter.Router) {
	router.GET("/api/produce", middleware.RequireRole(models.RoleShopkeeper, produce.ListProduce))
	router.GET("/api/produce/mine", middleware.RequireRole(models.RoleFarmer, produce.ListMyProduce))
	router.POST("/api/produce", middleware.RequireRole(models.RoleFarmer, produce.CreateProduce))
	router.PUT("/api/produce/:id", middleware.RequireRole(models.RoleFarmer, produce.UpdateProduce))
	router.DELETE("/api/produce/:id", middleware.RequireRole(models.RoleFarmer, produce.RemoveProduce))
}

func AddOrderRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/orders", rl.Limit(middleware.RequireRole(models.RoleCustomer, orders.PlaceOrder)))
	router.GET("/api/orders", middleware.Authenticate(orders.ListMyOrders))
	router.GET("/api/shop/orders", middleware.RequireRole(models.RoleShopkeeper, orders.ListShopOrders))
	router.GET("/api/orders/:id", middleware.Authenticate(orders.GetOrder))
	router.GET("/api/orders/:id/receipt", middleware.Authenticate(orders.DownloadReceipt))
	router.PUT("/api/orders/:id/status", middleware.RequireRole(models.RoleShopkeeper, orders.UpdateOrderStatus))
	router.POST("/api/orders/:id/cancel", middleware.RequireRole(models.RoleCustomer, orders.CancelOrder))
}

func AddBulkOrderRoutes(router *httprouter.Router) {
	router.POST("/api/bulkorders", middleware.RequireRole(models.RoleShopkeeper, bulkorders.CreateRequest))
	router.GET("/api/bulkorders", middleware.Authenticate(bulkorders.ListRequests))
	router.GET("/api/bulkorders/:id", middleware.Authenticate(bulkorders.GetRequest))
	router.PUT("/api/bulkorders/:id/status", middleware.RequireRole(models.RoleFarmer, bulkorders.UpdateRequestStatus))
}

func AddAdminRoutes(router *httprouter.Router) {
	router.GET("/api/admin/shops", middleware.RequireRole(models.RoleAdmin, admin.ListShops))
	router.PUT("/api/admin/shops/:id/verify", middleware.RequireRole(models.RoleAdmin, admin.VerifyShop))
	router.GET("/api/admin/stats", middleware.RequireRole(models.RoleAdmin, admin.PlatformStats))
}

func AddLiveRoutes(router *httprouter.Router, hub *live.Hub) {
	router.GET("/api/live/shop", middleware.Authenticate(live.ShopFeed(hub)))
}

// listCities serves the supported city table for the location picker.
func listCities(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "cities": geo.Cities()})
}

// resolveLocation resolves ?city=, ?pincode= or ?lat=&lon= to a canonical
// location.
func resolveLocation(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()

	switch {
	case q.Get("pincode") != "":
		loc, err := geo.ResolvePincode(q.Get("pincode"))
		if err == geo.ErrInvalidPincode {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err != nil {
			utils.RespondWithError(w, http.StatusNotFound, "Pincode not covered")
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "location": loc})

	case q.Get("city") != "":
		loc, ok := geo.ResolveCity(q.Get("city"))
		if !ok {
			utils.RespondWithError(w, http.StatusNotFound, "City not covered")
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "location": loc})

	case q.Get("lat") != "" && q.Get("lon") != "":
		loc := geo.ResolveCoordinate(utils.ParseFloat(q.Get("lat")), utils.ParseFloat(q.Get("lon")))
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "location": loc})

	default:
		utils.RespondWithError(w, http.StatusBadRequest, "Provide city, pincode or lat/lon")
	}
}
