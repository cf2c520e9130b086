package database

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/inkwell-labs/blog-platform-backend/models"
)

type RevokedTokenRepo struct {
	db *gorm.DB
}

func NewRevokedTokenRepo(db *gorm.DB) *RevokedTokenRepo {
	return &RevokedTokenRepo{db}
}

// Add blacklists a token by jti. Revoking the same token twice is a no-op.
func (r *RevokedTokenRepo) Add(token *models.RevokedToken) error {
	if token.RevokedAt.IsZero() {
		token.RevokedAt = time.Now()
	}
	err := r.db.Create(token).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

// IsRevoked reports whether the jti has been blacklisted.
func (r *RevokedTokenRepo) IsRevoked(jti string) (bool, error) {
	var count int64
	err := r.db.Model(&models.RevokedToken{}).Where("jti = ?", jti).Count(&count).Error
	return count > 0, err
}

// PurgeExpired drops blacklist rows whose tokens have expired anyway.
func (r *RevokedTokenRepo) PurgeExpired() error {
	return r.db.Where("expires_at < ?", time.Now()).Delete(&models.RevokedToken{}).Error
}
