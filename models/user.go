package models

import "time"

// App roles. A user has exactly one role, chosen at signup; "admin" is
// assigned out of band.
const (
	RoleCustomer   = "customer"
	RoleShopkeeper = "shopkeeper"
	RoleFarmer     = "farmer"
	RoleAdmin      = "admin"
)

func ValidRole(role string) bool {
	switch role {
	case RoleCustomer, RoleShopkeeper, RoleFarmer:
		return true
	}
	return false
}

type User struct {
	UserID        string    `json:"userId" bson:"userid"`
	Username      string    `json:"username" bson:"username"`
	Email         string    `json:"email" bson:"email"`
	Phone         string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Password      string    `json:"password,omitempty" bson:"password"`
	Role          string    `json:"role" bson:"role"`
	PhoneVerified bool      `json:"phoneVerified" bson:"phoneVerified"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
}
