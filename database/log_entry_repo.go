package database

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inkwell-labs/blog-platform-backend/models"
)

type LogEntryRepo struct {
	db *gorm.DB
}

func NewLogEntryRepo(db *gorm.DB) *LogEntryRepo {
	return &LogEntryRepo{db}
}

// Add appends an audit record. Records are never updated or deleted.
func (r *LogEntryRepo) Add(entry *models.LogEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	return r.db.Create(entry).Error
}

// ListForUser returns the audit trail visible to a regular user: actions
// against entries they own plus actions they performed themselves, newest
// first.
func (r *LogEntryRepo) ListForUser(userID uuid.UUID) ([]*models.LogEntry, error) {
	var entries []*models.LogEntry
	err := r.db.
		Joins("LEFT JOIN blog_entries ON blog_entries.id = log_entries.blog_entry_id").
		Where("log_entries.user_id = ? OR blog_entries.author_id = ?", userID, userID).
		Order("log_entries.created_at DESC").
		Find(&entries).Error
	return entries, err
}

// ListAll returns the full audit trail, newest first. Staff only.
func (r *LogEntryRepo) ListAll() ([]*models.LogEntry, error) {
	var entries []*models.LogEntry
	err := r.db.Order("created_at DESC").Find(&entries).Error
	return entries, err
}
