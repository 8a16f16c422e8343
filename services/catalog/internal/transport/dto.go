package transport

import (
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/shoe_shop/pkg/util"
)

type SizeRequest struct {
	Size  float64 `json:"size"  yaml:"size"  validate:"gt=0"`
	Stock int     `json:"stock" yaml:"stock" validate:"gte=0"`
}

type VariantRequest struct {
	Color    string        `json:"color"    yaml:"color"    validate:"required"`
	ImageURL string        `json:"imageUrl" yaml:"imageUrl"`
	Sizes    []SizeRequest `json:"sizes"    yaml:"sizes"    validate:"required,min=1,dive"`
}

type CreateShoeRequest struct {
	Brand        string           `json:"brand"        yaml:"brand"        validate:"required"`
	Model        string           `json:"model"        yaml:"model"        validate:"required"`
	Wearer       string           `json:"shoeWearer"   yaml:"shoeWearer"   validate:"required,oneof=Men Women Kids"`
	ShoeType     string           `json:"shoeType"     yaml:"shoeType"`
	Price        decimal.Decimal  `json:"price"        yaml:"price"`
	Description  string           `json:"description"  yaml:"description"`
	Availability *bool            `json:"availability" yaml:"availability"`
	Variants     []VariantRequest `json:"variants"     yaml:"variants"     validate:"required,min=1,dive"`
}

type PatchShoeRequest struct {
	Brand        *string          `json:"brand"        validate:"omitempty,min=1"`
	Model        *string          `json:"model"        validate:"omitempty,min=1"`
	Wearer       *string          `json:"shoeWearer"   validate:"omitempty,oneof=Men Women Kids"`
	ShoeType     *string          `json:"shoeType"`
	Price        *decimal.Decimal `json:"price"`
	Description  *string          `json:"description"`
	Availability *bool            `json:"availability"`
}

type StockRequest struct {
	Stock *int `json:"stock" validate:"required,gte=0"`
}

type ShoeFilter struct {
	Wearer string
	Brand  string
}

type ListResponse struct {
	Data any       `json:"data"`
	Meta util.Meta `json:"meta"`
}
