package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PersonStatus string

const (
	PersonActive   PersonStatus = "active"
	PersonInactive PersonStatus = "inactive"
)

type DeliveryPerson struct {
	ID            uuid.UUID    `gorm:"type:uuid;primaryKey"         json:"id"`
	Name          string       `gorm:"not null"                     json:"name"`
	Email         string       `gorm:"not null;uniqueIndex"         json:"email"`
	PasswordHash  string       `gorm:"not null"                     json:"-"`
	Phone         string       `gorm:"not null"                     json:"phone"`
	VehicleNumber string       `gorm:"not null"                     json:"vehicleNumber"`
	LicenseNumber string       `gorm:"not null"                     json:"licenseNumber"`
	Status        PersonStatus `gorm:"not null;default:active"      json:"status"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

func (p *DeliveryPerson) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = PersonActive
	}
	return nil
}

func (DeliveryPerson) TableName() string { return "delivery_persons" }
