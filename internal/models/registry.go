package models

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// All lists every persisted model. Migrate runs once per process at startup.
func All() []any {
	return []any{
		&User{},
		&RefreshToken{},
		&Shoe{},
		&Variant{},
		&SizeStock{},
		&Cart{},
		&CartItem{},
		&Order{},
		&OrderItem{},
		&DeliveryPerson{},
		&Refund{},
	}
}

func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
