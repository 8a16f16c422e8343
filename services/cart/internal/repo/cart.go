package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/shoe_shop/internal/models"
)

var (
	ErrCartNotFound  = errors.New("cart not found")
	ErrItemNotFound  = errors.New("cart item not found")
	ErrDuplicateItem = errors.New("item is already in the cart")
)

type GormRepo struct {
	DB *gorm.DB
}

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func keyWhere(db *gorm.DB, cartID uuid.UUID, key models.ItemKey) *gorm.DB {
	return db.Where("cart_id = ? AND brand_id = ? AND color_id = ? AND size_id = ?", cartID, key.BrandID, key.ColorID, key.SizeID)
}

func (r *GormRepo) findCart(tx *gorm.DB, userID string) (*models.Cart, error) {
	var cart models.Cart
	if err := tx.Preload("Items", orderedItems).Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, err
	}
	return &cart, nil
}

func (r *GormRepo) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	return r.findCart(r.DB.WithContext(ctx), userID)
}

// AddItems creates the cart on first use. Nothing is written when any
// item's key is already in the cart.
func (r *GormRepo) AddItems(ctx context.Context, userID string, items []models.CartItem) (*models.Cart, error) {
	var out *models.Cart
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// A concurrent first add may create the row between our insert and
		// select; the insert is a no-op then and the lock waits for it.
		fresh := models.Cart{UserID: userID}
		err := tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
			Create(&fresh).Error
		if err != nil {
			return err
		}

		var cart models.Cart
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("user_id = ?", userID).First(&cart).Error; err != nil {
			return err
		}

		var existing []models.CartItem
		if err := tx.Where("cart_id = ?", cart.ID).Find(&existing).Error; err != nil {
			return err
		}
		taken := make(map[models.ItemKey]struct{}, len(existing))
		for _, it := range existing {
			taken[it.Key()] = struct{}{}
		}

		for i := range items {
			if _, ok := taken[items[i].Key()]; ok {
				return ErrDuplicateItem
			}
			items[i].CartID = cart.ID
			items[i].Position = len(existing) + i
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(&cart).Update("updated_at", time.Now().UTC()).Error; err != nil {
			return err
		}

		out, err = r.findCart(tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GormRepo) UpdateQuantity(ctx context.Context, userID string, key models.ItemKey, quantity int) (*models.Cart, error) {
	db := r.DB.WithContext(ctx)

	var cart models.Cart
	if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, err
	}

	res := keyWhere(db.Model(&models.CartItem{}), cart.ID, key).Update("quantity", quantity)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrItemNotFound
	}
	return r.findCart(db, userID)
}

// RemoveItems deletes every item with key. A key that is not in the cart is not an error.
func (r *GormRepo) RemoveItems(ctx context.Context, userID string, key models.ItemKey) (*models.Cart, error) {
	db := r.DB.WithContext(ctx)

	var cart models.Cart
	if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, err
	}

	if err := keyWhere(db, cart.ID, key).Delete(&models.CartItem{}).Error; err != nil {
		return nil, err
	}
	return r.findCart(db, userID)
}

func (r *GormRepo) GetShoe(ctx context.Context, id uuid.UUID) (*models.Shoe, error) {
	var shoe models.Shoe
	if err := r.DB.WithContext(ctx).Preload("Variants.Sizes").First(&shoe, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &shoe, nil
}
