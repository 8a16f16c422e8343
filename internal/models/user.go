package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey"      json:"id"`
	Email               string     `gorm:"not null;uniqueIndex"      json:"email"`
	PasswordHash        string     `gorm:"not null"                  json:"-"`
	Name                string     `gorm:"not null"                  json:"name"`
	PhoneNumber         string     `gorm:"not null"                  json:"phoneNumber"`
	ProfilePicture      string     `json:"profilePicture,omitempty"`
	Role                string     `gorm:"not null;default:customer" json:"role"`
	IsVerified          bool       `gorm:"not null;default:false"    json:"isVerified"`
	VerificationCode    *string    `gorm:"index"                     json:"-"`
	VerificationExpires *time.Time `json:"-"`
	ResetToken          *string    `gorm:"index"                     json:"-"`
	ResetTokenExpires   *time.Time `json:"-"`
	LastLogin           *time.Time `json:"lastLogin,omitempty"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

type RefreshToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"   json:"id"`
	JTI       string    `gorm:"not null;uniqueIndex"   json:"jti"`
	TokenHash string    `gorm:"not null;uniqueIndex"   json:"-"`
	Subject   string    `gorm:"not null;index"         json:"subject"`
	Role      string    `gorm:"not null"               json:"role"`
	ExpiresAt int64     `gorm:"not null"               json:"expiresAt"`
	Revoked   bool      `gorm:"not null;default:false" json:"revoked"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (t *RefreshToken) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
