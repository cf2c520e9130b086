package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EntryStatus controls who can see a blog entry.
type EntryStatus string

const (
	StatusPublic   EntryStatus = "PUBLIC"
	StatusUnlisted EntryStatus = "UNLISTED"
	StatusPrivate  EntryStatus = "PRIVATE"
)

// Valid reports whether s is one of the three known statuses.
func (s EntryStatus) Valid() bool {
	switch s {
	case StatusPublic, StatusUnlisted, StatusPrivate:
		return true
	}
	return false
}

// BlogEntry is a blog post. Slug and ShortURLID are assigned once at first
// persistence and never change afterwards, even if the title does.
type BlogEntry struct {
	ID         uuid.UUID   `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title      string      `json:"title" db:"title" gorm:"type:text;not null"`
	Content    string      `json:"content" db:"content" gorm:"type:text;not null"`
	Slug       string      `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex"`
	ShortURLID string      `json:"shortUrlId" db:"short_url_id" gorm:"column:short_url_id;type:text;not null;uniqueIndex"`
	AuthorID   uuid.UUID   `json:"authorId" db:"author_id" gorm:"type:uuid;not null;index"`
	Status     EntryStatus `json:"status" db:"status" gorm:"type:text;not null;default:'PRIVATE'"`
	CreatedAt  time.Time   `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null"`
	UpdatedAt  time.Time   `json:"updatedAt" db:"updated_at" gorm:"type:timestamp;not null"`

	// LastCommentNumber is the high-water mark of comment sequence numbers
	// handed out for this entry. It only grows, so numbers freed by comment
	// deletion are never reissued.
	LastCommentNumber int `json:"-" db:"last_comment_number" gorm:"not null;default:0"`

	Author   *User      `json:"author,omitempty" gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE"`
	Tags     []EntryTag `json:"tags,omitempty" gorm:"foreignKey:BlogEntryID;references:ID;constraint:OnDelete:CASCADE"`
	Comments []Comment  `json:"-" gorm:"foreignKey:BlogEntryID;references:ID;constraint:OnDelete:CASCADE"`
}

func (e *BlogEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TagValues returns the tag strings in declaration order.
func (e *BlogEntry) TagValues() []string {
	values := make([]string, 0, len(e.Tags))
	for _, t := range e.Tags {
		values = append(values, t.Value)
	}
	return values
}
