package repo

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/shoe_shop/internal/models"
	"github.com/Skotchmaster/shoe_shop/services/catalog/internal/transport"
)

type GormRepo struct {
	DB *gorm.DB
}

func preloadSizes(db *gorm.DB) *gorm.DB {
	return db.Preload("Variants.Sizes")
}

func shoeFilter(f transport.ShoeFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.Wearer != "" {
			db = db.Where("wearer = ?", f.Wearer)
		}
		if f.Brand != "" {
			db = db.Where("LOWER(brand) = ?", strings.ToLower(strings.TrimSpace(f.Brand)))
		}
		return db
	}
}

func (r *GormRepo) ListShoes(ctx context.Context, f transport.ShoeFilter, offset, limit int) (int64, []models.Shoe, error) {
	var total int64
	if err := r.DB.WithContext(ctx).
		Model(&models.Shoe{}).
		Scopes(shoeFilter(f)).
		Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := make([]models.Shoe, 0, limit)
	if err := preloadSizes(r.DB.WithContext(ctx)).
		Scopes(shoeFilter(f)).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (r *GormRepo) BestSellers(ctx context.Context, limit int) ([]models.Shoe, error) {
	items := make([]models.Shoe, 0, limit)
	err := preloadSizes(r.DB.WithContext(ctx)).
		Order("sales_count DESC").
		Order("created_at DESC").
		Limit(limit).
		Find(&items).Error
	return items, err
}

func (r *GormRepo) GetShoe(ctx context.Context, id uuid.UUID) (*models.Shoe, error) {
	var shoe models.Shoe
	if err := preloadSizes(r.DB.WithContext(ctx)).First(&shoe, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &shoe, nil
}

// CreateShoe inserts the shoe together with its variants and sizes.
func (r *GormRepo) CreateShoe(ctx context.Context, shoe *models.Shoe) error {
	return r.DB.WithContext(ctx).Create(shoe).Error
}

func (r *GormRepo) CountShoes(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Shoe{}).Count(&n).Error
	return n, err
}

func (r *GormRepo) UpdateShoe(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.Shoe, error) {
	if len(updates) > 0 {
		res := r.DB.WithContext(ctx).Model(&models.Shoe{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.GetShoe(ctx, id)
}

// SetStock only touches a size that really belongs to the given shoe and variant.
func (r *GormRepo) SetStock(ctx context.Context, shoeID, variantID, sizeID uuid.UUID, stock int) (*models.Shoe, error) {
	db := r.DB.WithContext(ctx)
	variants := db.Model(&models.Variant{}).Select("id").Where("id = ? AND shoe_id = ?", variantID, shoeID)

	res := db.Model(&models.SizeStock{}).
		Where("id = ? AND variant_id IN (?)", sizeID, variants).
		Update("stock", stock)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetShoe(ctx, shoeID)
}

func (r *GormRepo) DeleteShoe(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		variants := tx.Model(&models.Variant{}).Select("id").Where("shoe_id = ?", id)
		if err := tx.Where("variant_id IN (?)", variants).Delete(&models.SizeStock{}).Error; err != nil {
			return err
		}
		if err := tx.Where("shoe_id = ?", id).Delete(&models.Variant{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Shoe{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
