package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "Unpaid"
	PaymentPaid   PaymentStatus = "Paid"
)

func (s PaymentStatus) Valid() bool {
	return s == PaymentUnpaid || s == PaymentPaid
}

type DeliveryStatus string

const (
	DeliveryProcessing DeliveryStatus = "processing"
	DeliveryPickedUp   DeliveryStatus = "pickedup"
	DeliveryDelivered  DeliveryStatus = "delivered"
	DeliveryCancelled  DeliveryStatus = "cancelled"
)

func (s DeliveryStatus) Valid() bool {
	switch s {
	case DeliveryProcessing, DeliveryPickedUp, DeliveryDelivered, DeliveryCancelled:
		return true
	}
	return false
}

// OrderStatus marks the refund flow on an order; empty means none.
type OrderStatus string

const (
	OrderStatusNone            OrderStatus = ""
	OrderStatusRefundRequested OrderStatus = "RefundRequested"
	OrderStatusRefunded        OrderStatus = "Refunded"
)

type Order struct {
	ID              uuid.UUID              `gorm:"type:uuid;primaryKey"                          json:"id"`
	UserID          string                 `gorm:"not null;index"                                json:"userId"`
	FirstName       string                 `gorm:"not null"                                      json:"firstName"`
	LastName        string                 `gorm:"not null"                                      json:"lastName"`
	Email           string                 `gorm:"not null"                                      json:"email"`
	PhoneNumber     string                 `gorm:"not null"                                      json:"phoneNumber"`
	ShippingAddress string                 `gorm:"not null"                                      json:"shippingAddress"`
	City            string                 `gorm:"not null"                                      json:"city"`
	PaymentMethod   string                 `gorm:"not null"                                      json:"paymentMethod"`
	PaymentStatus   PaymentStatus          `gorm:"not null;default:Unpaid"                       json:"paymentStatus"`
	DeliveryStatus  DeliveryStatus         `gorm:"not null;default:processing;index"             json:"deliveryStatus"`
	Status          OrderStatus            `gorm:"not null;default:''"                           json:"status"`
	TotalAmount     decimal.Decimal        `gorm:"type:numeric(12,2);not null"                   json:"totalAmount"`
	OrderDate       time.Time              `gorm:"not null"                                      json:"orderDate"`
	DeliveryPerson  DeliveryPersonSnapshot `gorm:"embedded;embeddedPrefix:delivery_person_"      json:"deliveryPerson"`
	Items           []OrderItem            `gorm:"foreignKey:OrderID"                            json:"items"`
	CreatedAt       time.Time              `json:"createdAt"`
	UpdatedAt       time.Time              `json:"updatedAt"`
}

// OrderItem is a copy of the catalog data at purchase time.
type OrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"        json:"id"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"    json:"-"`
	ShoeID    string          `gorm:"not null"                    json:"shoeId"`
	BrandName string          `json:"brandName"`
	ModelName string          `json:"modelName"`
	Color     string          `json:"color"`
	Size      float64         `json:"size"`
	Quantity  int             `gorm:"not null;check:quantity > 0" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	ImageURL  string          `json:"imageUrl"`
}

// DeliveryPersonSnapshot is copied onto the order at assignment time and is
// not updated when the person changes later.
type DeliveryPersonSnapshot struct {
	ID         *uuid.UUID `gorm:"type:uuid;index" json:"id"`
	Name       string     `json:"name,omitempty"`
	Email      string     `json:"email,omitempty"`
	Phone      string     `json:"phone,omitempty"`
	AssignedAt *time.Time `json:"assignedAt,omitempty"`
}

func (s DeliveryPersonSnapshot) Assigned() bool { return s.ID != nil }

// Columns maps the snapshot onto its embedded order columns for Updates.
func (s DeliveryPersonSnapshot) Columns() map[string]any {
	return map[string]any{
		"delivery_person_id":          s.ID,
		"delivery_person_name":        s.Name,
		"delivery_person_email":       s.Email,
		"delivery_person_phone":       s.Phone,
		"delivery_person_assigned_at": s.AssignedAt,
	}
}

func SnapshotOf(p *DeliveryPerson, at time.Time) DeliveryPersonSnapshot {
	id := p.ID
	return DeliveryPersonSnapshot{
		ID:         &id,
		Name:       p.Name,
		Email:      p.Email,
		Phone:      p.Phone,
		AssignedAt: &at,
	}
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.OrderDate.IsZero() {
		o.OrderDate = time.Now().UTC()
	}
	return nil
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
