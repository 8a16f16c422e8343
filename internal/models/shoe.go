package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Wearer string

const (
	WearerMen   Wearer = "Men"
	WearerWomen Wearer = "Women"
	WearerKids  Wearer = "Kids"
)

type Shoe struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"          json:"id"`
	Brand        string          `gorm:"not null;index"                json:"brand"`
	Model        string          `gorm:"not null"                      json:"model"`
	Wearer       Wearer          `gorm:"not null;index"                json:"shoeWearer"`
	ShoeType     string          `json:"shoeType"`
	Price        decimal.Decimal `gorm:"type:numeric(12,2);not null"   json:"price"`
	Description  string          `json:"description"`
	Availability bool            `gorm:"not null;default:true"         json:"availability"`
	SalesCount   int             `gorm:"not null;default:0"            json:"salesCount"`
	Variants     []Variant       `gorm:"foreignKey:ShoeID"             json:"variants"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

type Variant struct {
	ID       uuid.UUID   `gorm:"type:uuid;primaryKey"       json:"id"`
	ShoeID   uuid.UUID   `gorm:"type:uuid;not null;index"   json:"-"`
	Color    string      `gorm:"not null"                   json:"color"`
	ImageURL string      `json:"imageUrl"`
	Sizes    []SizeStock `gorm:"foreignKey:VariantID"       json:"sizes"`
}

type SizeStock struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"       json:"id"`
	VariantID uuid.UUID `gorm:"type:uuid;not null;index"   json:"-"`
	Size      float64   `gorm:"not null"                   json:"size"`
	Stock     int       `gorm:"not null;check:stock >= 0"  json:"stock"`
}

func (s *Shoe) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (v *Variant) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

func (s *SizeStock) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (Variant) TableName() string { return "shoe_variants" }

func (SizeStock) TableName() string { return "shoe_sizes" }

// VariantByColor matches case-insensitively, the way customers type colors.
func (s *Shoe) VariantByColor(color string) (*Variant, bool) {
	for i := range s.Variants {
		if strings.EqualFold(s.Variants[i].Color, strings.TrimSpace(color)) {
			return &s.Variants[i], true
		}
	}
	return nil, false
}

func (s *Shoe) VariantByID(id string) (*Variant, bool) {
	for i := range s.Variants {
		if s.Variants[i].ID.String() == id {
			return &s.Variants[i], true
		}
	}
	return nil, false
}

func (v *Variant) SizeBySize(size float64) (*SizeStock, bool) {
	for i := range v.Sizes {
		if v.Sizes[i].Size == size {
			return &v.Sizes[i], true
		}
	}
	return nil, false
}

func (v *Variant) SizeByID(id string) (*SizeStock, bool) {
	for i := range v.Sizes {
		if v.Sizes[i].ID.String() == id {
			return &v.Sizes[i], true
		}
	}
	return nil, false
}
