package database

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/inkwell-labs/blog-platform-backend/models"
)

// newTestDB opens a fresh in-memory sqlite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	return db
}

// newTestUser inserts a user and returns it.
func newTestUser(t *testing.T, db *gorm.DB, email, username string) *models.User {
	t.Helper()

	user := &models.User{
		Email:        email,
		Username:     username,
		PasswordHash: "x",
		IsActive:     true,
	}
	require.NoError(t, NewUserRepo(db).Add(user))
	return user
}

// newTestEntry inserts an entry owned by the user and returns it.
func newTestEntry(t *testing.T, db *gorm.DB, author *models.User, title string, status models.EntryStatus) *models.BlogEntry {
	t.Helper()

	entry := &models.BlogEntry{
		Title:    title,
		Content:  "content of " + title,
		AuthorID: author.ID,
		Status:   status,
	}
	require.NoError(t, NewBlogEntryRepo(db).Add(entry))
	return entry
}
