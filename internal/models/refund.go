package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RefundStatus string

const (
	RefundPending  RefundStatus = "pending"
	RefundApproved RefundStatus = "approved"
	RefundRejected RefundStatus = "rejected"
)

func (s RefundStatus) Valid() bool {
	return s == RefundPending || s == RefundApproved || s == RefundRejected
}

type ContactPreference string

const (
	ContactEmail ContactPreference = "email"
	ContactPhone ContactPreference = "phone"
)

type Refund struct {
	ID                uuid.UUID         `gorm:"type:uuid;primaryKey"          json:"id"`
	OrderID           uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex" json:"orderId"`
	UserID            string            `gorm:"not null;index"                json:"userId"`
	Reason            string            `gorm:"not null"                      json:"reason"`
	Description       string            `gorm:"not null"                      json:"description"`
	Images            []string          `gorm:"serializer:json"               json:"images"`
	ContactPreference ContactPreference `gorm:"not null;default:email"        json:"contactPreference"`
	ContactDetails    string            `gorm:"not null"                      json:"contactDetails"`
	Status            RefundStatus      `gorm:"not null;default:pending"      json:"status"`
	CreatedAt         time.Time         `json:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt"`
}

func (r *Refund) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
