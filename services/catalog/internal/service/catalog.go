package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/shoe_shop/internal/models"
	"github.com/Skotchmaster/shoe_shop/pkg/logging"
	"github.com/Skotchmaster/shoe_shop/pkg/mykafka"
	"github.com/Skotchmaster/shoe_shop/services/catalog/internal/repo"
	"github.com/Skotchmaster/shoe_shop/services/catalog/internal/transport"
)

const (
	EventShoeCreated = mykafka.EventShoeCreated
	EventShoeUpdated = mykafka.EventShoeUpdated
	EventShoeDeleted = mykafka.EventShoeDeleted

	DefaultBestSellers = 10
	MaxBestSellers     = 50
)

type CatalogService struct {
	Repo      *repo.GormRepo
	Publisher mykafka.Publisher
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("shoe not found: %w", ErrNotFound)
	}
	return err
}

func (s *CatalogService) publish(ctx context.Context, typ string, id uuid.UUID, data any) {
	if s.Publisher == nil {
		return
	}
	if err := s.Publisher.PublishEvent(ctx, mykafka.TopicShoeEvents, id.String(), mykafka.NewEvent(typ, data)); err != nil {
		logging.FromContext(ctx).Error("publish_failed", "svc", "catalog", "type", typ, "shoe_id", id, "error", err)
	}
}

func (s *CatalogService) GetShoe(ctx context.Context, id uuid.UUID) (*models.Shoe, error) {
	shoe, err := s.Repo.GetShoe(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return shoe, nil
}

func (s *CatalogService) ListShoes(ctx context.Context, f transport.ShoeFilter, offset, limit int) (int64, []models.Shoe, error) {
	if f.Wearer != "" && !validWearer(f.Wearer) {
		return 0, nil, fmt.Errorf("wearer must be one of Men, Women, Kids: %w", ErrValidation)
	}
	return s.Repo.ListShoes(ctx, f, offset, limit)
}

func (s *CatalogService) BestSellers(ctx context.Context, limit int) ([]models.Shoe, error) {
	if limit < 1 {
		limit = DefaultBestSellers
	}
	if limit > MaxBestSellers {
		limit = MaxBestSellers
	}
	return s.Repo.BestSellers(ctx, limit)
}

func (s *CatalogService) CreateShoe(ctx context.Context, req transport.CreateShoeRequest) (*models.Shoe, error) {
	shoe, err := ShoeFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.CreateShoe(ctx, shoe); err != nil {
		return nil, err
	}

	s.publish(ctx, EventShoeCreated, shoe.ID, shoe)
	return shoe, nil
}

func (s *CatalogService) PatchShoe(ctx context.Context, id uuid.UUID, req transport.PatchShoeRequest) (*models.Shoe, error) {
	updates := map[string]any{}
	if req.Brand != nil {
		updates["brand"] = *req.Brand
	}
	if req.Model != nil {
		updates["model"] = *req.Model
	}
	if req.Wearer != nil {
		if !validWearer(*req.Wearer) {
			return nil, fmt.Errorf("wearer must be one of Men, Women, Kids: %w", ErrValidation)
		}
		updates["wearer"] = *req.Wearer
	}
	if req.ShoeType != nil {
		updates["shoe_type"] = *req.ShoeType
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, fmt.Errorf("price cannot be negative: %w", ErrValidation)
		}
		updates["price"] = *req.Price
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Availability != nil {
		updates["availability"] = *req.Availability
	}

	shoe, err := s.Repo.UpdateShoe(ctx, id, updates)
	if err != nil {
		return nil, notFound(err)
	}

	s.publish(ctx, EventShoeUpdated, shoe.ID, shoe)
	return shoe, nil
}

func (s *CatalogService) SetStock(ctx context.Context, shoeID, variantID, sizeID uuid.UUID, stock int) (*models.Shoe, error) {
	if stock < 0 {
		return nil, fmt.Errorf("stock cannot be negative: %w", ErrValidation)
	}
	shoe, err := s.Repo.SetStock(ctx, shoeID, variantID, sizeID, stock)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("size not found for this shoe: %w", ErrNotFound)
		}
		return nil, err
	}

	s.publish(ctx, EventShoeUpdated, shoe.ID, shoe)
	return shoe, nil
}

func (s *CatalogService) DeleteShoe(ctx context.Context, id uuid.UUID) error {
	if err := s.Repo.DeleteShoe(ctx, id); err != nil {
		return notFound(err)
	}
	s.publish(ctx, EventShoeDeleted, id, mykafka.DeletedShoe{ID: id})
	return nil
}

// Seed inserts shoes only into an empty catalog. It returns how many were stored.
func (s *CatalogService) Seed(ctx context.Context, reqs []transport.CreateShoeRequest) (int, error) {
	l := logging.FromContext(ctx)

	n, err := s.Repo.CountShoes(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		l.Info("seed_skipped", "svc", "catalog", "existing", n)
		return 0, nil
	}

	stored := 0
	for i, req := range reqs {
		if _, err := s.CreateShoe(ctx, req); err != nil {
			return stored, fmt.Errorf("seed shoe %d: %w", i, err)
		}
		stored++
	}
	l.Info("seed_done", "svc", "catalog", "count", stored)
	return stored, nil
}

func validWearer(w string) bool {
	switch models.Wearer(w) {
	case models.WearerMen, models.WearerWomen, models.WearerKids:
		return true
	}
	return false
}

func ShoeFromRequest(req transport.CreateShoeRequest) (*models.Shoe, error) {
	if !validWearer(req.Wearer) {
		return nil, fmt.Errorf("wearer must be one of Men, Women, Kids: %w", ErrValidation)
	}
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("price cannot be negative: %w", ErrValidation)
	}
	if len(req.Variants) == 0 {
		return nil, fmt.Errorf("at least one variant is required: %w", ErrValidation)
	}

	availability := true
	if req.Availability != nil {
		availability = *req.Availability
	}

	shoe := &models.Shoe{
		Brand:        req.Brand,
		Model:        req.Model,
		Wearer:       models.Wearer(req.Wearer),
		ShoeType:     req.ShoeType,
		Price:        req.Price,
		Description:  req.Description,
		Availability: availability,
	}
	for _, v := range req.Variants {
		variant := models.Variant{Color: v.Color, ImageURL: v.ImageURL}
		for _, sz := range v.Sizes {
			if sz.Stock < 0 {
				return nil, fmt.Errorf("stock cannot be negative: %w", ErrValidation)
			}
			variant.Sizes = append(variant.Sizes, models.SizeStock{Size: sz.Size, Stock: sz.Stock})
		}
		shoe.Variants = append(shoe.Variants, variant)
	}
	return shoe, nil
}

