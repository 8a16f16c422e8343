package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/shoe_shop/internal/models"
)

func (r *GormRepo) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) ListOrders(ctx context.Context) ([]models.Order, error) {
	orders := make([]models.Order, 0)
	err := r.DB.WithContext(ctx).Preload("Items").Order("order_date DESC").Find(&orders).Error
	return orders, err
}

func (r *GormRepo) ListAssigned(ctx context.Context, personID uuid.UUID) ([]models.Order, error) {
	orders := make([]models.Order, 0)
	err := r.DB.WithContext(ctx).
		Preload("Items").
		Where("delivery_person_id = ?", personID).
		Order("order_date DESC").
		Find(&orders).Error
	return orders, err
}

func (r *GormRepo) SetDeliveryStatus(ctx context.Context, orderID uuid.UUID, status models.DeliveryStatus) (*models.Order, error) {
	res := r.DB.WithContext(ctx).Model(&models.Order{}).Where("id = ?", orderID).Update("delivery_status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetOrder(ctx, orderID)
}

// SetAssignedStatus only matches orders whose snapshot carries personID.
func (r *GormRepo) SetAssignedStatus(ctx context.Context, orderID, personID uuid.UUID, status models.DeliveryStatus) (*models.Order, error) {
	res := r.DB.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND delivery_person_id = ?", orderID, personID).
		Update("delivery_status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetOrder(ctx, orderID)
}

// Assign copies the person snapshot onto the order and moves it back to processing.
func (r *GormRepo) Assign(ctx context.Context, orderID uuid.UUID, snapshot models.DeliveryPersonSnapshot) (*models.Order, error) {
	updates := snapshot.Columns()
	updates["delivery_status"] = models.DeliveryProcessing

	res := r.DB.WithContext(ctx).Model(&models.Order{}).Where("id = ?", orderID).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetOrder(ctx, orderID)
}
