package transport

import (
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/shoe_shop/internal/models"
)

type CreateOrderItem struct {
	ShoeID   string  `json:"shoeId"   validate:"required"`
	Color    string  `json:"color"    validate:"required"`
	Size     float64 `json:"size"     validate:"gt=0"`
	Quantity int     `json:"quantity" validate:"gte=1"`

	// Client-side snapshot, used only when the line does not resolve in the catalog.
	BrandName string           `json:"brandName"`
	ModelName string           `json:"modelName"`
	ImageURL  string           `json:"imageUrl"`
	Price     *decimal.Decimal `json:"price"`
}

type CreateOrderRequest struct {
	FirstName       string            `json:"firstName"       validate:"required"`
	LastName        string            `json:"lastName"        validate:"required"`
	Email           string            `json:"email"           validate:"required,email"`
	PhoneNumber     string            `json:"phoneNumber"     validate:"required"`
	ShippingAddress string            `json:"shippingAddress" validate:"required"`
	City            string            `json:"city"            validate:"required"`
	PaymentMethod   string            `json:"paymentMethod"   validate:"required"`
	PaymentStatus   string            `json:"paymentStatus"   validate:"omitempty,oneof=Unpaid Paid"`
	Items           []CreateOrderItem `json:"items"           validate:"required,min=1,dive"`
}

type SkippedItem struct {
	Index  int     `json:"index"`
	ShoeID string  `json:"shoeId"`
	Color  string  `json:"color"`
	Size   float64 `json:"size"`
	Reason string  `json:"reason"`
}

type CreateOrderResponse struct {
	Order        *models.Order `json:"order"`
	SkippedItems []SkippedItem `json:"skippedItems"`
}

type UpdateStatusRequest struct {
	PaymentStatus  *string `json:"paymentStatus"`
	DeliveryStatus *string `json:"deliveryStatus"`
}
