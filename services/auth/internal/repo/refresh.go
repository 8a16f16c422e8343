package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/shoe_shop/internal/models"
)

var ErrTokenRevoked = errors.New("refresh token expired or revoked")

func (r *GormRepo) SaveRefresh(ctx context.Context, t *models.RefreshToken) error {
	return r.DB.WithContext(ctx).Create(t).Error
}

func refreshUsable(db *gorm.DB, jti string) error {
	var t models.RefreshToken
	if err := db.Where("jti = ?", jti).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTokenRevoked
		}
		return err
	}
	if t.Revoked || t.ExpiresAt < time.Now().Unix() {
		return ErrTokenRevoked
	}
	return nil
}

// RotateRefresh revokes oldJTI and stores next in one transaction. A
// revoked, expired or unknown old token fails with ErrTokenRevoked.
func (r *GormRepo) RotateRefresh(ctx context.Context, oldJTI string, next *models.RefreshToken) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := refreshUsable(tx, oldJTI); err != nil {
			return err
		}
		res := tx.Model(&models.RefreshToken{}).
			Where("jti = ? AND revoked = ?", oldJTI, false).
			Update("revoked", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrTokenRevoked
		}
		return tx.Create(next).Error
	})
}

func (r *GormRepo) RevokeByHash(ctx context.Context, hash string) error {
	return r.DB.WithContext(ctx).
		Model(&models.RefreshToken{}).
		Where("token_hash = ?", hash).
		Update("revoked", true).Error
}

func revokeSubject(db *gorm.DB, subject string) error {
	return db.Model(&models.RefreshToken{}).
		Where("subject = ? AND revoked = ?", subject, false).
		Update("revoked", true).Error
}
