package database

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-labs/blog-platform-backend/errs"
	"github.com/inkwell-labs/blog-platform-backend/ident"
	"github.com/inkwell-labs/blog-platform-backend/models"
)

func TestAddAssignsIdentifiers(t *testing.T) {
	db := newTestDB(t)
	author := newTestUser(t, db, "author@example.com", "author")

	entry := newTestEntry(t, db, author, "Hello World", models.StatusPublic)

	assert.Equal(t, "hello-world", entry.Slug)
	assert.Len(t, entry.ShortURLID, ident.ShortIDLength)
	assert.NotEqual(t, uuid.Nil, entry.ID)
	assert.False(t, entry.CreatedAt.IsZero())
}

func TestAddSuffixesCollidingSlugs(t *testing.T) {
	db := newTestDB(t)
	author := newTestUser(t, db, "author@example.com", "author")

	first := newTestEntry(t, db, author, "Hello World", models.StatusPublic)
	second := newTestEntry(t, db, author, "Hello World", models.StatusPublic)
	third := newTestEntry(t, db, author, "Hello, World!", models.StatusPublic)

	assert.Equal(t, "hello-world", first.Slug)
	assert.Equal(t, "hello-world-1", second.Slug)
	assert.Equal(t, "hello-world-2", third.Slug)

	// Short ids stay unique too; different creation instants hash apart.
	assert.NotEqual(t, first.ShortURLID, second.ShortURLID)
	assert.NotEqual(t, second.ShortURLID, third.ShortURLID)
}

func TestUpdateKeepsIdentifiersImmutable(t *testing.T) {
	db := newTestDB(t)
	repo := NewBlogEntryRepo(db)
	author := newTestUser(t, db, "author@example.com", "author")

	entry := newTestEntry(t, db, author, "Original Title", models.StatusPublic)
	slug, shortID := entry.Slug, entry.ShortURLID

	entry.Title = "A Completely New Title"
	entry.Content = "rewritten"
	entry.Status = models.StatusUnlisted
	require.NoError(t, repo.Update(entry))

	reloaded, err := repo.FindByID(entry.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded)

	assert.Equal(t, "A Completely New Title", reloaded.Title)
	assert.Equal(t, models.StatusUnlisted, reloaded.Status)
	assert.Equal(t, slug, reloaded.Slug)
	assert.Equal(t, shortID, reloaded.ShortURLID)
}

func TestFindByAllThreeKeys(t *testing.T) {
	db := newTestDB(t)
	repo := NewBlogEntryRepo(db)
	author := newTestUser(t, db, "author@example.com", "author")

	entry := newTestEntry(t, db, author, "Findable", models.StatusPublic)

	byID, err := repo.FindByID(entry.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)

	bySlug, err := repo.FindBySlug(entry.Slug)
	require.NoError(t, err)
	require.NotNil(t, bySlug)
	assert.Equal(t, entry.ID, bySlug.ID)

	byShort, err := repo.FindByShortURLID(entry.ShortURLID)
	require.NoError(t, err)
	require.NotNil(t, byShort)
	assert.Equal(t, entry.ID, byShort.ID)

	missing, err := repo.FindBySlug("no-such-slug")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestFindVisible(t *testing.T) {
	db := newTestDB(t)
	repo := NewBlogEntryRepo(db)
	author := newTestUser(t, db, "author@example.com", "author")
	reader := newTestUser(t, db, "reader@example.com", "reader")

	public := newTestEntry(t, db, author, "Public Post", models.StatusPublic)
	newTestEntry(t, db, author, "Unlisted Post", models.StatusUnlisted)
	newTestEntry(t, db, author, "Private Post", models.StatusPrivate)

	// Anonymous: PUBLIC only.
	anon, err := repo.FindVisible(nil)
	require.NoError(t, err)
	require.Len(t, anon, 1)
	assert.Equal(t, public.ID, anon[0].ID)

	// A different authenticated user: still PUBLIC only. UNLISTED stays out
	// of lists even though it is readable by direct link.
	forReader, err := repo.FindVisible(&reader.ID)
	require.NoError(t, err)
	assert.Len(t, forReader, 1)

	// The author sees all their own entries.
	forAuthor, err := repo.FindVisible(&author.ID)
	require.NoError(t, err)
	assert.Len(t, forAuthor, 3)
}

func TestReplaceTags(t *testing.T) {
	db := newTestDB(t)
	repo := NewBlogEntryRepo(db)
	author := newTestUser(t, db, "author@example.com", "author")

	entry := newTestEntry(t, db, author, "Tagged", models.StatusPublic)

	require.NoError(t, repo.ReplaceTags(entry.ID, []string{"go", "testing"}))
	reloaded, err := repo.FindByID(entry.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"go", "testing"}, reloaded.TagValues())

	require.NoError(t, repo.ReplaceTags(entry.ID, []string{"rewritten"}))
	reloaded, err = repo.FindByID(entry.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"rewritten"}, reloaded.TagValues())
}

func TestDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	entryRepo := NewBlogEntryRepo(db)
	commentRepo := NewCommentRepo(db)
	logRepo := NewLogEntryRepo(db)
	author := newTestUser(t, db, "author@example.com", "author")

	entry := newTestEntry(t, db, author, "Doomed", models.StatusPublic)
	require.NoError(t, entryRepo.ReplaceTags(entry.ID, []string{"tag"}))

	comment := &models.Comment{BlogEntryID: entry.ID, AuthorID: author.ID, Content: "hi"}
	require.NoError(t, commentRepo.Add(comment))

	require.NoError(t, logRepo.Add(&models.LogEntry{
		BlogEntryID: &entry.ID,
		UserID:      &author.ID,
		Action:      models.ActionCreated,
	}))

	require.NoError(t, entryRepo.Delete(entry.ID))

	gone, err := entryRepo.FindByID(entry.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	comments, err := commentRepo.ListByEntry(entry.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)

	var tagCount int64
	require.NoError(t, db.Model(&models.EntryTag{}).Where("blog_entry_id = ?", entry.ID).Count(&tagCount).Error)
	assert.Zero(t, tagCount)

	// Audit rows survive the entry with their reference nulled.
	logs, err := logRepo.ListForUser(author.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Nil(t, logs[0].BlogEntryID)
}

func TestAddFailsWhenSlugCandidatesExhausted(t *testing.T) {
	db := newTestDB(t)
	repo := NewBlogEntryRepo(db)
	author := newTestUser(t, db, "author@example.com", "author")

	// Occupy "busy" and all of its suffix candidates up to the cap.
	for n := 0; n < ident.MaxAttempts; n++ {
		seed := models.BlogEntry{
			Title:      "Busy",
			Content:    "seed",
			Slug:       ident.WithSuffix("busy", n),
			ShortURLID: fmt.Sprintf("seed%04d", n),
			AuthorID:   author.ID,
			Status:     models.StatusPublic,
		}
		require.NoError(t, db.Create(&seed).Error)
	}

	entry := &models.BlogEntry{
		Title:    "Busy",
		Content:  "one too many",
		AuthorID: author.ID,
		Status:   models.StatusPublic,
	}
	err := repo.Add(entry)
	require.Error(t, err)
	assert.True(t, errs.IsConflict(err))
}
