// Package services holds side-effecting business logic that sits between the
// HTTP handlers and the repositories.
package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/inkwell-labs/blog-platform-backend/database"
	"github.com/inkwell-labs/blog-platform-backend/models"
)

// AuditRecorder appends audit records for actions against blog entries.
// Writes are best-effort: a failed insert is logged and swallowed so the
// primary operation is never rolled back or failed by its audit trail.
type AuditRecorder struct {
	logs   *database.LogEntryRepo
	logger zerolog.Logger
}

func NewAuditRecorder(logs *database.LogEntryRepo) *AuditRecorder {
	return &AuditRecorder{
		logs:   logs,
		logger: log.With().Str("component", "audit").Logger(),
	}
}

func (a *AuditRecorder) record(action models.LogAction, entryID, userID *uuid.UUID, details string) {
	entry := &models.LogEntry{
		BlogEntryID: entryID,
		UserID:      userID,
		Action:      action,
		Details:     details,
	}
	if err := a.logs.Add(entry); err != nil {
		a.logger.Error().Err(err).
			Str("action", string(action)).
			Str("details", details).
			Msg("Failed to write audit record")
	}
}

// EntryCreated records a CREATED action by the entry's author.
func (a *AuditRecorder) EntryCreated(entry *models.BlogEntry, actorID uuid.UUID) {
	a.record(models.ActionCreated, &entry.ID, &actorID,
		fmt.Sprintf("created entry %q", entry.Title))
}

// EntryUpdated records an UPDATED action.
func (a *AuditRecorder) EntryUpdated(entry *models.BlogEntry, actorID uuid.UUID) {
	a.record(models.ActionUpdated, &entry.ID, &actorID,
		fmt.Sprintf("updated entry %q", entry.Title))
}

// EntryDeleted records a DELETED action. The entry row is already gone, so
// the record carries no entry reference and captures the title in details.
func (a *AuditRecorder) EntryDeleted(title string, actorID uuid.UUID) {
	a.record(models.ActionDeleted, nil, &actorID,
		fmt.Sprintf("deleted entry %q", title))
}

// EntryViewed records a VIEWED action. actorID is nil for anonymous readers.
func (a *AuditRecorder) EntryViewed(entry *models.BlogEntry, actorID *uuid.UUID) {
	a.record(models.ActionViewed, &entry.ID, actorID,
		fmt.Sprintf("viewed entry %q", entry.Title))
}

// CommentCreated records a CREATED action for a comment against its entry.
func (a *AuditRecorder) CommentCreated(comment *models.Comment, actorID uuid.UUID) {
	a.record(models.ActionCreated, &comment.BlogEntryID, &actorID,
		fmt.Sprintf("created comment #%d", comment.CommentNumber))
}

// CommentUpdated records an UPDATED action for a comment against its entry.
func (a *AuditRecorder) CommentUpdated(comment *models.Comment, actorID uuid.UUID) {
	a.record(models.ActionUpdated, &comment.BlogEntryID, &actorID,
		fmt.Sprintf("updated comment #%d", comment.CommentNumber))
}

// CommentDeleted records a DELETED action for a comment against its entry.
func (a *AuditRecorder) CommentDeleted(comment *models.Comment, actorID uuid.UUID) {
	a.record(models.ActionDeleted, &comment.BlogEntryID, &actorID,
		fmt.Sprintf("deleted comment #%d", comment.CommentNumber))
}
