package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account identified by email. The password is stored only as a
// bcrypt hash and never serialized.
type User struct {
	ID           uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Email        string    `json:"email" db:"email" gorm:"type:text;not null;uniqueIndex"`
	Username     string    `json:"username" db:"username" gorm:"type:text;not null;uniqueIndex"`
	PasswordHash string    `json:"-" db:"password_hash" gorm:"type:text;not null"`
	IsActive     bool      `json:"isActive" db:"is_active" gorm:"not null;default:true"`
	IsStaff      bool      `json:"isStaff" db:"is_staff" gorm:"not null;default:false"`
	IsSuperuser  bool      `json:"isSuperuser" db:"is_superuser" gorm:"not null;default:false"`
	DateJoined   time.Time `json:"dateJoined" db:"date_joined" gorm:"type:timestamp;not null"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.DateJoined.IsZero() {
		u.DateJoined = time.Now()
	}
	return nil
}
