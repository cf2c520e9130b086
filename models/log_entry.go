package models

import (
	"time"

	"github.com/google/uuid"
)

// LogAction classifies an audit record.
type LogAction string

const (
	ActionCreated LogAction = "CREATED"
	ActionUpdated LogAction = "UPDATED"
	ActionDeleted LogAction = "DELETED"
	ActionViewed  LogAction = "VIEWED"
)

// LogEntry is an append-only audit record of an action taken against a blog
// entry. The entry reference is nulled when the entry is deleted; the user
// reference is null for anonymous viewers. Rows are never updated or deleted.
type LogEntry struct {
	ID          int64      `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	BlogEntryID *uuid.UUID `json:"blogEntryId,omitempty" db:"blog_entry_id" gorm:"type:uuid;index"`
	UserID      *uuid.UUID `json:"userId,omitempty" db:"user_id" gorm:"type:uuid;index"`
	Action      LogAction  `json:"action" db:"action" gorm:"type:text;not null"`
	Details     string     `json:"details" db:"details" gorm:"type:text;not null;default:''"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null"`

	BlogEntry *BlogEntry `json:"-" gorm:"foreignKey:BlogEntryID;references:ID;constraint:OnDelete:SET NULL"`
}
