package database

import (
	"gorm.io/gorm"

	"github.com/inkwell-labs/blog-platform-backend/models"
)

type Database struct {
	userRepo         *UserRepo
	blogEntryRepo    *BlogEntryRepo
	commentRepo      *CommentRepo
	logEntryRepo     *LogEntryRepo
	revokedTokenRepo *RevokedTokenRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		userRepo:         NewUserRepo(db),
		blogEntryRepo:    NewBlogEntryRepo(db),
		commentRepo:      NewCommentRepo(db),
		logEntryRepo:     NewLogEntryRepo(db),
		revokedTokenRepo: NewRevokedTokenRepo(db),
	}
}

// AutoMigrate creates or updates the schema for every model this service owns.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.BlogEntry{},
		&models.EntryTag{},
		&models.Comment{},
		&models.LogEntry{},
		&models.RevokedToken{},
	)
}

// Accessor methods for each repository

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) BlogEntryRepo() *BlogEntryRepo {
	return d.blogEntryRepo
}

func (d Database) CommentRepo() *CommentRepo {
	return d.commentRepo
}

func (d Database) LogEntryRepo() *LogEntryRepo {
	return d.logEntryRepo
}

func (d Database) RevokedTokenRepo() *RevokedTokenRepo {
	return d.revokedTokenRepo
}
