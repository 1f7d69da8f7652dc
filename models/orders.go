package models

import "time"

// Customer order statuses.
const (
	OrderPending   = "pending"
	OrderConfirmed = "confirmed"
	OrderPreparing = "preparing"
	OrderReady     = "ready"
	OrderPickedUp  = "picked_up"
	OrderCancelled = "cancelled"
)

// Payment methods.
const (
	PaymentUPI  = "upi"
	PaymentCash = "cash"
)

func ValidOrderStatus(s string) bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderPreparing, OrderReady, OrderPickedUp, OrderCancelled:
		return true
	}
	return false
}

func ValidPaymentMethod(m string) bool {
	return m == PaymentUPI || m == PaymentCash
}

// OrderItem is immutable once the order is placed; it snapshots the product
// master data and the unit price at purchase time.
type OrderItem struct {
	OrderItemID  string  `json:"orderItemId" bson:"orderitemid"`
	ProductID    string  `json:"productId" bson:"productid"`
	Product      Product `json:"product" bson:"product"`
	Quantity     int     `json:"quantity" bson:"quantity"`
	PricePerUnit float64 `json:"pricePerUnit" bson:"pricePerUnit"`
	Total        float64 `json:"total" bson:"total"`
}

type Order struct {
	OrderID       string      `json:"orderId" bson:"orderid"`
	CustomerID    string      `json:"customerId" bson:"customerid"`
	ShopID        string      `json:"shopId" bson:"shopid"`
	Items         []OrderItem `json:"items" bson:"items"`
	Status        string      `json:"status" bson:"status"`
	Subtotal      float64     `json:"subtotal" bson:"subtotal"`
	Total         float64     `json:"total" bson:"total"`
	PickupTime    *time.Time  `json:"pickupTime,omitempty" bson:"pickupTime,omitempty"`
	PaymentMethod string      `json:"paymentMethod" bson:"paymentMethod"`
	IsPaid        bool        `json:"isPaid" bson:"isPaid"`
	CreatedAt     time.Time   `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt" bson:"updatedAt"`
}
