package models

import (
	"time"

	"github.com/google/uuid"
)

// RevokedToken blacklists a refresh token by its jti claim until it would
// have expired anyway.
type RevokedToken struct {
	JTI       string    `json:"jti" db:"jti" gorm:"type:text;primaryKey"`
	UserID    uuid.UUID `json:"userId" db:"user_id" gorm:"type:uuid;not null;index"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at" gorm:"type:timestamp;not null;index"`
	RevokedAt time.Time `json:"revokedAt" db:"revoked_at" gorm:"type:timestamp;not null"`
}
