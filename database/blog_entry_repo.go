package database

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inkwell-labs/blog-platform-backend/errs"
	"github.com/inkwell-labs/blog-platform-backend/ident"
	"github.com/inkwell-labs/blog-platform-backend/models"
)

type BlogEntryRepo struct {
	db *gorm.DB
}

func NewBlogEntryRepo(db *gorm.DB) *BlogEntryRepo {
	return &BlogEntryRepo{db}
}

// Add inserts a new blog entry, assigning its slug and short-url id. The
// identifiers are generated exactly once here; concurrent writers that race
// to the same candidate lose on the unique index and retry with the next
// suffix, up to ident.MaxAttempts before giving up with a conflict error.
func (r *BlogEntryRepo) Add(entry *models.BlogEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	slugBase := ident.Slugify(entry.Title)
	shortBase := ident.ShortID(entry.Title, entry.CreatedAt, entry.AuthorID)

	for attempt := 0; attempt < ident.MaxAttempts; attempt++ {
		slug, err := r.firstFree(slugBase, "slug")
		if err != nil {
			return err
		}
		shortID, err := r.firstFree(shortBase, "short_url_id")
		if err != nil {
			return err
		}

		entry.Slug = slug
		entry.ShortURLID = shortID

		err = r.db.Create(entry).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		// A concurrent writer claimed the candidate between the existence
		// check and the insert; recompute against the new table state.
		entry.ID = uuid.Nil
	}

	return errs.NewConflictError("could not assign a unique identifier to the entry")
}

// firstFree walks base, base-1, base-2, ... and returns the first value not
// present in the given column.
func (r *BlogEntryRepo) firstFree(base, column string) (string, error) {
	for n := 0; n < ident.MaxAttempts; n++ {
		candidate := ident.WithSuffix(base, n)
		var count int64
		err := r.db.Model(&models.BlogEntry{}).Where(column+" = ?", candidate).Count(&count).Error
		if err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
	}
	return "", errs.NewConflictError("identifier collision retries exhausted")
}

// FindByID returns an entry with its tags and author, or nil if absent.
func (r *BlogEntryRepo) FindByID(id uuid.UUID) (*models.BlogEntry, error) {
	return r.findOne("id = ?", id)
}

// FindBySlug returns an entry by its slug, or nil if absent.
func (r *BlogEntryRepo) FindBySlug(slug string) (*models.BlogEntry, error) {
	return r.findOne("slug = ?", slug)
}

// FindByShortURLID returns an entry by its short-url id, or nil if absent.
func (r *BlogEntryRepo) FindByShortURLID(shortID string) (*models.BlogEntry, error) {
	return r.findOne("short_url_id = ?", shortID)
}

func (r *BlogEntryRepo) findOne(query string, arg any) (*models.BlogEntry, error) {
	var entry models.BlogEntry
	err := r.db.Preload("Tags").Preload("Author").First(&entry, query, arg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindVisible lists entries for the actor, newest first. Anonymous actors
// see PUBLIC entries only; authenticated actors additionally see their own.
// UNLISTED entries of other authors never appear in lists, only via direct
// link.
func (r *BlogEntryRepo) FindVisible(actorID *uuid.UUID) ([]*models.BlogEntry, error) {
	q := r.db.Preload("Tags").Preload("Author").Order("created_at DESC")
	if actorID == nil {
		q = q.Where("status = ?", models.StatusPublic)
	} else {
		q = q.Where("status = ? OR author_id = ?", models.StatusPublic, *actorID)
	}
	var entries []*models.BlogEntry
	err := q.Find(&entries).Error
	return entries, err
}

// Update persists the mutable fields of an entry. Slug and short-url id are
// immutable once assigned and deliberately excluded.
func (r *BlogEntryRepo) Update(entry *models.BlogEntry) error {
	return r.db.Model(entry).
		Select("title", "content", "status", "updated_at").
		Updates(map[string]any{
			"title":      entry.Title,
			"content":    entry.Content,
			"status":     entry.Status,
			"updated_at": time.Now(),
		}).Error
}

// ReplaceTags swaps the entry's tag set for the given values.
func (r *BlogEntryRepo) ReplaceTags(entryID uuid.UUID, values []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("blog_entry_id = ?", entryID).Delete(&models.EntryTag{}).Error; err != nil {
			return err
		}
		for _, value := range values {
			tag := models.EntryTag{BlogEntryID: entryID, Value: value}
			if err := tx.Create(&tag).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes an entry together with its comments and tags.
func (r *BlogEntryRepo) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("blog_entry_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("blog_entry_id = ?", id).Delete(&models.EntryTag{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.LogEntry{}).Where("blog_entry_id = ?", id).
			Update("blog_entry_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.BlogEntry{}, "id = ?", id).Error
	})
}
