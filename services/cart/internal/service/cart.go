package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/shoe_shop/internal/models"
	"github.com/Skotchmaster/shoe_shop/pkg/logging"
	"github.com/Skotchmaster/shoe_shop/services/cart/internal/repo"
	"github.com/Skotchmaster/shoe_shop/services/cart/internal/transport"
)

var (
	ErrValidation = errors.New("validation")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
)

type CartService struct {
	Repo *repo.GormRepo
}

func (s *CartService) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	cart, err := s.Repo.GetCart(ctx, userID)
	if errors.Is(err, repo.ErrCartNotFound) {
		return nil, fmt.Errorf("cart not found: %w", ErrNotFound)
	}
	return cart, err
}

// AddItems rejects the whole request when a key repeats, either against the
// stored cart or within the request itself.
func (s *CartService) AddItems(ctx context.Context, userID string, reqs []transport.ItemRequest) (*models.Cart, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id is required: %w", ErrValidation)
	}
	if len(reqs) == 0 {
		return nil, fmt.Errorf("items are required and cannot be empty: %w", ErrValidation)
	}

	seen := make(map[models.ItemKey]struct{}, len(reqs))
	items := make([]models.CartItem, 0, len(reqs))
	for _, r := range reqs {
		if r.Quantity < 1 {
			return nil, fmt.Errorf("quantity must be at least 1: %w", ErrValidation)
		}
		key := r.Key()
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("item is already in the cart: %w", ErrConflict)
		}
		seen[key] = struct{}{}

		item := models.CartItem{BrandID: key.BrandID, ColorID: key.ColorID, SizeID: key.SizeID, Quantity: r.Quantity}
		if err := s.enrich(ctx, &item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	cart, err := s.Repo.AddItems(ctx, userID, items)
	if errors.Is(err, repo.ErrDuplicateItem) {
		return nil, fmt.Errorf("item is already in the cart: %w", ErrConflict)
	}
	return cart, err
}

// enrich copies display fields from the catalog. Keys that do not resolve are kept as is.
func (s *CartService) enrich(ctx context.Context, item *models.CartItem) error {
	id, err := uuid.Parse(item.BrandID)
	if err != nil {
		return nil
	}
	shoe, err := s.Repo.GetShoe(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logging.FromContext(ctx).Debug("cart_item_unresolved", "svc", "cart", "brand_id", item.BrandID)
			return nil
		}
		return err
	}

	item.BrandName = shoe.Brand
	item.ModelName = shoe.Model
	item.Price = shoe.Price
	if v, ok := shoe.VariantByID(item.ColorID); ok {
		item.Color = v.Color
		item.ImageURL = v.ImageURL
		if sz, ok := v.SizeByID(item.SizeID); ok {
			item.Size = sz.Size
		}
	}
	return nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, userID string, req transport.ItemRequest) (*models.Cart, error) {
	if req.Quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1: %w", ErrValidation)
	}

	shoeID, err := uuid.Parse(req.Brand.BrandID)
	if err != nil {
		return nil, fmt.Errorf("shoe not found: %w", ErrNotFound)
	}
	shoe, err := s.Repo.GetShoe(ctx, shoeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("shoe not found: %w", ErrNotFound)
		}
		return nil, err
	}
	variant, ok := shoe.VariantByID(req.Color.ColorID)
	if !ok {
		return nil, fmt.Errorf("color not available: %w", ErrNotFound)
	}
	size, ok := variant.SizeByID(req.Size.SizeID)
	if !ok {
		return nil, fmt.Errorf("size not available: %w", ErrNotFound)
	}
	if req.Quantity > size.Stock {
		return nil, fmt.Errorf("only %d items left in stock: %w", size.Stock, ErrValidation)
	}

	cart, err := s.Repo.UpdateQuantity(ctx, userID, req.Key(), req.Quantity)
	switch {
	case errors.Is(err, repo.ErrCartNotFound):
		return nil, fmt.Errorf("cart not found: %w", ErrNotFound)
	case errors.Is(err, repo.ErrItemNotFound):
		return nil, fmt.Errorf("cart item not found: %w", ErrNotFound)
	}
	return cart, err
}

func (s *CartService) RemoveItem(ctx context.Context, userID string, key models.ItemKey) (*models.Cart, error) {
	cart, err := s.Repo.RemoveItems(ctx, userID, key)
	if errors.Is(err, repo.ErrCartNotFound) {
		return nil, fmt.Errorf("cart not found: %w", ErrNotFound)
	}
	return cart, err
}
