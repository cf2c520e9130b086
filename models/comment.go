package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment belongs to exactly one blog entry. CommentNumber starts at 1 per
// entry and only ever grows; deleting a comment never frees its number.
type Comment struct {
	ID            uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	BlogEntryID   uuid.UUID `json:"blogEntryId" db:"blog_entry_id" gorm:"type:uuid;not null;uniqueIndex:idx_comment_entry_number"`
	AuthorID      uuid.UUID `json:"authorId" db:"author_id" gorm:"type:uuid;not null;index"`
	Content       string    `json:"content" db:"content" gorm:"type:text;not null"`
	CommentNumber int       `json:"commentNumber" db:"comment_number" gorm:"not null;uniqueIndex:idx_comment_entry_number"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at" gorm:"type:timestamp;not null"`

	Author *User `json:"author,omitempty" gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
