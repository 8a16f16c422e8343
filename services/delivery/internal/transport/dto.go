package transport

import "github.com/Skotchmaster/shoe_shop/internal/models"

type CreatePersonRequest struct {
	Name          string `json:"name"          validate:"required"`
	Email         string `json:"email"         validate:"required,email"`
	Password      string `json:"password"      validate:"required,min=6"`
	Phone         string `json:"phone"         validate:"required"`
	VehicleNumber string `json:"vehicleNumber" validate:"required"`
	LicenseNumber string `json:"licenseNumber" validate:"required"`
}

type UpdatePersonRequest struct {
	Name          *string `json:"name"          validate:"omitempty,min=1"`
	Email         *string `json:"email"         validate:"omitempty,email"`
	Phone         *string `json:"phone"         validate:"omitempty,min=1"`
	VehicleNumber *string `json:"vehicleNumber" validate:"omitempty,min=1"`
	LicenseNumber *string `json:"licenseNumber" validate:"omitempty,min=1"`
	Status        *string `json:"status"        validate:"omitempty,oneof=active inactive"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token          string                 `json:"token"`
	DeliveryPerson *models.DeliveryPerson `json:"deliveryPerson"`
}

type PersonsResponse struct {
	DeliveryPersons []models.DeliveryPerson `json:"deliveryPersons"`
}

// StatusRequest takes "status", or "deliveryStatus" as older clients send it.
type StatusRequest struct {
	Status         string `json:"status"`
	DeliveryStatus string `json:"deliveryStatus"`
}

func (r StatusRequest) Value() string {
	if r.Status != "" {
		return r.Status
	}
	return r.DeliveryStatus
}

type AssignRequest struct {
	DeliveryPersonID string `json:"deliveryPersonId" validate:"required"`
}

type Stats struct {
	PendingDeliveries int64 `json:"pendingDeliveries" db:"pending_deliveries"`
	InTransit         int64 `json:"inTransit"         db:"in_transit"`
	Completed         int64 `json:"completed"         db:"completed"`
	Cancelled         int64 `json:"cancelled"         db:"cancelled"`
	TotalDrivers      int64 `json:"totalDrivers"      db:"total_drivers"`
}

type OrdersResponse struct {
	Orders []models.Order `json:"orders"`
	Stats  Stats          `json:"stats"`
}

type WelcomeNotificationRequest struct {
	DeliveryPersonID string `json:"deliveryPersonId" validate:"required"`
}

type AssignmentNotificationRequest struct {
	OrderID string `json:"orderId" validate:"required"`
}

type Notification struct {
	Kind    string `json:"kind"`
	To      string `json:"to"`
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	OrderID string `json:"orderId,omitempty"`
}
