package tokens

import "github.com/golang-jwt/jwt/v5"

const (
	RoleCustomer       = "customer"
	RoleManager        = "delivery_manager"
	RoleAdmin          = "admin"
	RoleDeliveryPerson = "delivery_person"
)

type AccessClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type RefreshClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}
