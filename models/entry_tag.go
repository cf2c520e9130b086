package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EntryTag is a tag attached to a blog entry.
type EntryTag struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	BlogEntryID uuid.UUID `json:"blogEntryId" db:"blog_entry_id" gorm:"type:uuid;not null;index:idx_entry_tag_entry_id;uniqueIndex:idx_entry_tag_unique"`
	Value       string    `json:"value" db:"value" gorm:"type:text;not null;uniqueIndex:idx_entry_tag_unique"`
}

func (t *EntryTag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
