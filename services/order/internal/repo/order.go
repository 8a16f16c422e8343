package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/shoe_shop/internal/models"
)

type GormRepo struct {
	DB *gorm.DB
}

// InTx runs fn against a repo bound to one transaction.
func (r *GormRepo) InTx(ctx context.Context, fn func(tx *GormRepo) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormRepo{DB: tx})
	})
}

func (r *GormRepo) FindShoe(ctx context.Context, id uuid.UUID) (*models.Shoe, error) {
	var shoe models.Shoe
	if err := r.DB.WithContext(ctx).Preload("Variants.Sizes").First(&shoe, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &shoe, nil
}

// DecrementStock lowers stock by qty in one statement, never below zero.
func (r *GormRepo) DecrementStock(ctx context.Context, sizeID uuid.UUID, qty int) error {
	return r.DB.WithContext(ctx).
		Model(&models.SizeStock{}).
		Where("id = ?", sizeID).
		Update("stock", gorm.Expr("CASE WHEN stock > ? THEN stock - ? ELSE 0 END", qty, qty)).Error
}

func (r *GormRepo) AddSales(ctx context.Context, shoeID uuid.UUID, qty int) error {
	return r.DB.WithContext(ctx).
		Model(&models.Shoe{}).
		Where("id = ?", shoeID).
		Update("sales_count", gorm.Expr("sales_count + ?", qty)).Error
}

func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Create(order).Error
}

func (r *GormRepo) DeleteCart(ctx context.Context, userID string) error {
	db := r.DB.WithContext(ctx)
	carts := db.Model(&models.Cart{}).Select("id").Where("user_id = ?", userID)
	if err := db.Where("cart_id IN (?)", carts).Delete(&models.CartItem{}).Error; err != nil {
		return err
	}
	return db.Where("user_id = ?", userID).Delete(&models.Cart{}).Error
}

func (r *GormRepo) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) ListOrders(ctx context.Context, userID string) ([]models.Order, error) {
	q := r.DB.WithContext(ctx).Preload("Items")
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}

	orders := make([]models.Order, 0)
	if err := q.Order("order_date DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) UpdateOrder(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.Order, error) {
	res := r.DB.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetOrder(ctx, id)
}
