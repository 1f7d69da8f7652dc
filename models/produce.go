package models

import "time"

// Bulk order request statuses. Only the owning farmer advances a request.
const (
	BulkPending   = "pending"
	BulkAccepted  = "accepted"
	BulkRejected  = "rejected"
	BulkCompleted = "completed"
)

func ValidBulkStatus(s string) bool {
	switch s {
	case BulkPending, BulkAccepted, BulkRejected, BulkCompleted:
		return true
	}
	return false
}

// FarmerProduce is wholesale produce a farmer offers to shopkeepers.
type FarmerProduce struct {
	ProduceID         string     `json:"produceId" bson:"produceid"`
	FarmerID          string     `json:"farmerId" bson:"farmerid"`
	ProductID         string     `json:"productId" bson:"productid"`
	Product           *Product   `json:"product,omitempty" bson:"product,omitempty"`
	PricePerKg        float64    `json:"pricePerKg" bson:"pricePerKg"`
	AvailableQuantity float64    `json:"availableQuantity" bson:"availableQuantity"` // kg
	HarvestDate       *time.Time `json:"harvestDate,omitempty" bson:"harvestDate,omitempty"`
	IsOrganic         bool       `json:"isOrganic" bson:"isOrganic"`
	IsAvailable       bool       `json:"isAvailable" bson:"isAvailable"`
	CreatedAt         time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt" bson:"updatedAt"`
}

type BulkOrderRequest struct {
	RequestID         string    `json:"requestId" bson:"requestid"`
	ShopkeeperID      string    `json:"shopkeeperId" bson:"shopkeeperid"`
	FarmerID          string    `json:"farmerId" bson:"farmerid"`
	ProduceID         string    `json:"produceId" bson:"produceid"`
	RequestedQuantity float64   `json:"requestedQuantity" bson:"requestedQuantity"` // kg
	OfferedPrice      float64   `json:"offeredPrice" bson:"offeredPrice"`           // per kg
	Status            string    `json:"status" bson:"status"`
	CreatedAt         time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt" bson:"updatedAt"`
}
