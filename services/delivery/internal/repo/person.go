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

func (r *GormRepo) CreatePerson(ctx context.Context, p *models.DeliveryPerson) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *GormRepo) ListPersons(ctx context.Context) ([]models.DeliveryPerson, error) {
	persons := make([]models.DeliveryPerson, 0)
	err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&persons).Error
	return persons, err
}

func (r *GormRepo) GetPerson(ctx context.Context, id uuid.UUID) (*models.DeliveryPerson, error) {
	var p models.DeliveryPerson
	if err := r.DB.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormRepo) GetPersonByEmail(ctx context.Context, email string) (*models.DeliveryPerson, error) {
	var p models.DeliveryPerson
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormRepo) EmailTaken(ctx context.Context, email string, except uuid.UUID) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).
		Model(&models.DeliveryPerson{}).
		Where("email = ? AND id <> ?", email, except).
		Count(&n).Error
	return n > 0, err
}

func (r *GormRepo) UpdatePerson(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.DeliveryPerson, error) {
	if len(updates) > 0 {
		res := r.DB.WithContext(ctx).Model(&models.DeliveryPerson{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.GetPerson(ctx, id)
}

func (r *GormRepo) DeletePerson(ctx context.Context, id uuid.UUID) (*models.DeliveryPerson, error) {
	var p models.DeliveryPerson
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&p, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&p).Error
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}
