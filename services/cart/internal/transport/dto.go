package transport

import "github.com/Skotchmaster/shoe_shop/internal/models"

type BrandRef struct {
	BrandID string `json:"brandId" validate:"required"`
}

type ColorRef struct {
	ColorID string `json:"colorId" validate:"required"`
}

type SizeRef struct {
	SizeID string `json:"sizeId" validate:"required"`
}

type ItemRequest struct {
	Brand    BrandRef `json:"brand"`
	Color    ColorRef `json:"color"`
	Size     SizeRef  `json:"size"`
	Quantity int      `json:"quantity" validate:"gte=1"`
}

func (r ItemRequest) Key() models.ItemKey {
	return models.ItemKey{BrandID: r.Brand.BrandID, ColorID: r.Color.ColorID, SizeID: r.Size.SizeID}
}

type AddRequest struct {
	Items []ItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateQuantityRequest accepts the item either inline or wrapped in "item".
type UpdateQuantityRequest struct {
	Item *ItemRequest `json:"item"`
	ItemRequest
}

func (r UpdateQuantityRequest) Resolve() ItemRequest {
	if r.Item != nil {
		return *r.Item
	}
	return r.ItemRequest
}
