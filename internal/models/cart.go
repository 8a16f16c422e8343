package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Cart struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"      json:"id"`
	UserID    string     `gorm:"not null;uniqueIndex"      json:"userId"`
	Items     []CartItem `gorm:"foreignKey:CartID"         json:"items"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// CartItem is keyed by (BrandID, ColorID, SizeID). The display fields are
// filled when the key resolves against the catalog.
type CartItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"                  json:"id"`
	CartID    uuid.UUID       `gorm:"type:uuid;not null;index"              json:"-"`
	BrandID   string          `gorm:"not null"                              json:"brandId"`
	ColorID   string          `gorm:"not null"                              json:"colorId"`
	SizeID    string          `gorm:"not null"                              json:"sizeId"`
	Quantity  int             `gorm:"not null;default:1;check:quantity > 0" json:"quantity"`
	BrandName string          `json:"brandName,omitempty"`
	ModelName string          `json:"modelName,omitempty"`
	Color     string          `json:"color,omitempty"`
	Size      float64         `json:"size,omitempty"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2)"                    json:"price"`
	ImageURL  string          `json:"imageUrl,omitempty"`
	Position  int             `gorm:"not null;default:0"                    json:"-"`
}

type ItemKey struct {
	BrandID string `json:"brandId" validate:"required"`
	ColorID string `json:"colorId" validate:"required"`
	SizeID  string `json:"sizeId"  validate:"required"`
}

func (i CartItem) Key() ItemKey {
	return ItemKey{BrandID: i.BrandID, ColorID: i.ColorID, SizeID: i.SizeID}
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (i *CartItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
