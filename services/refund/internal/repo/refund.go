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

func (r *GormRepo) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) RefundExists(ctx context.Context, orderID uuid.UUID) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Refund{}).Where("order_id = ?", orderID).Count(&n).Error
	return n > 0, err
}

// CreateRefund stores the refund and marks its order in one transaction.
func (r *GormRepo) CreateRefund(ctx context.Context, refund *models.Refund) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(refund).Error; err != nil {
			return err
		}
		return tx.Model(&models.Order{}).
			Where("id = ?", refund.OrderID).
			Update("status", models.OrderStatusRefundRequested).Error
	})
}

func (r *GormRepo) ListByUser(ctx context.Context, userID string) ([]models.Refund, error) {
	refunds := make([]models.Refund, 0)
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&refunds).Error
	return refunds, err
}

func (r *GormRepo) GetRefund(ctx context.Context, id uuid.UUID) (*models.Refund, error) {
	var refund models.Refund
	if err := r.DB.WithContext(ctx).First(&refund, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &refund, nil
}

// SetStatus updates the refund and mirrors it onto the order, except that an
// order already marked Refunded keeps that status.
func (r *GormRepo) SetStatus(ctx context.Context, id uuid.UUID, status models.RefundStatus, orderStatus models.OrderStatus) (*models.Refund, error) {
	var refund models.Refund
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&refund, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Model(&refund).Update("status", status).Error; err != nil {
			return err
		}
		return tx.Model(&models.Order{}).
			Where("id = ? AND status <> ?", refund.OrderID, models.OrderStatusRefunded).
			Update("status", orderStatus).Error
	})
	if err != nil {
		return nil, err
	}
	return &refund, nil
}
