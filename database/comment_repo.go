package database

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inkwell-labs/blog-platform-backend/errs"
	"github.com/inkwell-labs/blog-platform-backend/models"
)

// maxSequenceRetries bounds how often a comment insert is retried when two
// writers race to the same sequence number on one entry.
const maxSequenceRetries = 5

type CommentRepo struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) *CommentRepo {
	return &CommentRepo{db}
}

// Add inserts a comment, assigning the next sequence number for its entry.
// Numbers start at 1 and come from the entry's high-water mark, incremented
// in the same transaction as the insert, so concurrent writers serialize on
// the entry row and numbers freed by deletion are never reissued. The unique
// (entry, number) index is the backstop; losing a race there means retrying
// against the advanced counter.
func (r *CommentRepo) Add(comment *models.Comment) error {
	for attempt := 0; attempt < maxSequenceRetries; attempt++ {
		err := r.db.Transaction(func(tx *gorm.DB) error {
			res := tx.Model(&models.BlogEntry{}).
				Where("id = ?", comment.BlogEntryID).
				UpdateColumn("last_comment_number", gorm.Expr("last_comment_number + 1"))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
			var next int
			err := tx.Model(&models.BlogEntry{}).
				Where("id = ?", comment.BlogEntryID).
				Select("last_comment_number").
				Scan(&next).Error
			if err != nil {
				return err
			}
			comment.CommentNumber = next
			return tx.Create(comment).Error
		})
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		comment.ID = uuid.Nil
	}

	return errs.NewConflictError("comment numbering contention, try again")
}

// FindByID returns a comment by id, or nil if absent.
func (r *CommentRepo) FindByID(id uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.Preload("Author").First(&comment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// FindByEntryAndNumber returns the comment with the given sequence number on
// the entry, or nil if absent.
func (r *CommentRepo) FindByEntryAndNumber(entryID uuid.UUID, number int) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.Preload("Author").
		First(&comment, "blog_entry_id = ? AND comment_number = ?", entryID, number).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByEntry returns all comments on the entry in sequence order.
func (r *CommentRepo) ListByEntry(entryID uuid.UUID) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.Preload("Author").
		Where("blog_entry_id = ?", entryID).
		Order("comment_number ASC").
		Find(&comments).Error
	return comments, err
}

// Update persists a comment's content. The sequence number is never
// reassigned.
func (r *CommentRepo) Update(comment *models.Comment) error {
	return r.db.Model(comment).
		Select("content", "updated_at").
		Updates(map[string]any{
			"content":    comment.Content,
			"updated_at": time.Now(),
		}).Error
}

// Delete removes a comment. Its sequence number is not reclaimed; later
// comments keep counting from the historical maximum.
func (r *CommentRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Comment{}, "id = ?", id).Error
}
