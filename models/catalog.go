package models

import "time"

// Location is a value type embedded wherever a point on the map is needed.
// Pincode may be empty when the location came from a coordinate lookup.
type Location struct {
	Latitude  float64 `json:"latitude" bson:"latitude"`
	Longitude float64 `json:"longitude" bson:"longitude"`
	Address   string  `json:"address,omitempty" bson:"address,omitempty"`
	City      string  `json:"city" bson:"city"`
	State     string  `json:"state" bson:"state"`
	Pincode   string  `json:"pincode,omitempty" bson:"pincode,omitempty"`
}

// Product categories and units, fixed by the platform.
const (
	CategoryVegetable = "vegetable"
	CategoryFruit     = "fruit"
	CategoryLeafy     = "leafy"
	CategoryExotic    = "exotic"

	UnitKg     = "kg"
	UnitDozen  = "dozen"
	UnitPiece  = "piece"
	UnitBundle = "bundle"
)

func ValidCategory(c string) bool {
	switch c {
	case CategoryVegetable, CategoryFruit, CategoryLeafy, CategoryExotic:
		return true
	}
	return false
}

func ValidUnit(u string) bool {
	switch u {
	case UnitKg, UnitDozen, UnitPiece, UnitBundle:
		return true
	}
	return false
}

// Product is the master catalog entry, maintained by platform operators.
// Read-only to shopkeepers and customers.
type Product struct {
	ProductID     string    `json:"productId" bson:"productid"`
	Name          string    `json:"name" bson:"name"`
	LocalizedName string    `json:"localizedName,omitempty" bson:"localizedName,omitempty"`
	Category      string    `json:"category" bson:"category"`
	Description   string    `json:"description,omitempty" bson:"description,omitempty"`
	Image         string    `json:"image,omitempty" bson:"image,omitempty"`
	Unit          string    `json:"unit" bson:"unit"`
	MinQuantity   float64   `json:"minQuantity" bson:"minQuantity"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
}

// ShopProduct is a product listed by a shop with its own price and stock.
// At most one per (shopid, productid) pair.
type ShopProduct struct {
	ShopProductID string    `json:"shopProductId" bson:"shopproductid"`
	ShopID        string    `json:"shopId" bson:"shopid"`
	ProductID     string    `json:"productId" bson:"productid"`
	Product       *Product  `json:"product,omitempty" bson:"product,omitempty"`
	Price         float64   `json:"price" bson:"price"`
	Stock         int       `json:"stock" bson:"stock"`
	IsAvailable   bool      `json:"isAvailable" bson:"isAvailable"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updatedAt"`
}

type Shop struct {
	ShopID      string   `json:"shopId" bson:"shopid"`
	OwnerID     string   `json:"ownerId" bson:"ownerid"`
	Name        string   `json:"name" bson:"name"`
	Description string   `json:"description,omitempty" bson:"description,omitempty"`
	Image       string   `json:"image,omitempty" bson:"image,omitempty"`
	Location    Location `json:"location" bson:"location"`
	Rating      float64  `json:"rating" bson:"rating"`
	ReviewCount int      `json:"reviewCount" bson:"reviewCount"`
	IsVerified  bool     `json:"isVerified" bson:"isVerified"`
	IsOpen      bool     `json:"isOpen" bson:"isOpen"`
	OpeningTime string   `json:"openingTime,omitempty" bson:"openingTime,omitempty"`
	ClosingTime string   `json:"closingTime,omitempty" bson:"closingTime,omitempty"`

	// DistanceKm is computed per request relative to the caller's location;
	// never persisted.
	DistanceKm *float64 `json:"distanceKm,omitempty" bson:"-"`

	Products  []ShopProduct `json:"products,omitempty" bson:"-"`
	CreatedAt time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt" bson:"updatedAt"`
}
