package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/inkwell-labs/blog-platform-backend/database"
	"github.com/inkwell-labs/blog-platform-backend/errs"
	"github.com/inkwell-labs/blog-platform-backend/models"
	"github.com/inkwell-labs/blog-platform-backend/policy"
	"github.com/inkwell-labs/blog-platform-backend/services"
)

type entryHandler struct {
	responder Responder
	logger    zerolog.Logger
	entryRepo *database.BlogEntryRepo
	audit     *services.AuditRecorder
}

func newEntryHandler(entryRepo *database.BlogEntryRepo, audit *services.AuditRecorder) entryHandler {
	logger := log.With().Str("handlerName", "entryHandler").Logger()

	return entryHandler{
		responder: NewResponder(logger),
		logger:    logger,
		entryRepo: entryRepo,
		audit:     audit,
	}
}

// resolveEntryRef looks up the entry addressed by the request path, which
// may carry an id, a slug, or a short-url id. Returns (nil, nil) when no
// entry matches.
func resolveEntryRef(repo *database.BlogEntryRepo, r *http.Request) (*models.BlogEntry, error) {
	if slug := chi.URLParam(r, "slug"); slug != "" {
		return repo.FindBySlug(slug)
	}
	if shortID := chi.URLParam(r, "shortURLID"); shortID != "" {
		return repo.FindByShortURLID(shortID)
	}
	idStr := chi.URLParam(r, "entryID")
	if idStr == "" {
		return nil, errs.NewBadRequestError("missing entry reference")
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, errs.NewBadRequestError("invalid entryID")
	}
	return repo.FindByID(id)
}

// decisionError maps a policy denial to the HTTP error the client sees.
// Hidden resources 404 so their existence never leaks.
func decisionError(d policy.Decision, entity string) error {
	if d == policy.DecisionHidden {
		return errs.NewNotFoundError(entity + " not found")
	}
	return errs.NewForbiddenError("you do not have permission to modify this " + entity)
}

// actorRef returns the actor's id as a nullable reference for audit records.
func actorRef(user *models.User) *uuid.UUID {
	if user == nil {
		return nil
	}
	return &user.ID
}

// list returns the entries visible to the caller
// @Summary List blog entries
// @Description Lists blog entries: PUBLIC ones for everyone plus the caller's own when authenticated. UNLISTED entries of other authors are reachable by direct link only
// @Tags Entries
// @Produce json
// @Success 200 {object} entryCollectionResponse "Visible entries"
// @Failure 500 {object} ErrorResponse "Internal Server Error"
// @Router /entries/ [get]
func (h entryHandler) list() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := userFromCtx(r.Context())

		entries, err := h.entryRepo.FindVisible(actorRef(user))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list entries", "blog_entries", err))
			return
		}

		responses := make([]entryResponse, 0, len(entries))
		for _, entry := range entries {
			responses = append(responses, toEntryResponse(entry))
		}

		h.responder.WriteJSON(w, entryCollectionResponse{
			Entries: responses,
			Total:   len(responses),
		})
	}
}

// create creates a new blog entry
// @Summary Create blog entry
// @Description Creates a blog entry owned by the caller, assigning a unique slug and short-url id
// @Tags Entries
// @Accept json
// @Produce json
// @Param entry body createEntryRequest true "Entry data"
// @Success 201 {object} entryResponse "Created entry"
// @Failure 400 {object} ErrorResponse "Bad Request - validation failure"
// @Failure 401 {object} ErrorResponse "Unauthorized - authentication required"
// @Failure 409 {object} ErrorResponse "Conflict - identifier collision retries exhausted"
// @Router /entries/ [post]
func (h entryHandler) create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := userFromCtx(r.Context())
		if !policy.CanCreateEntry(policy.RoleOf(user)) {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		var req createEntryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Malformed("entry payload"))
			return
		}
		if err := req.Validate(); err != nil {
			h.responder.WriteValidationErrors(w, err)
			return
		}

		status := models.EntryStatus(req.Status)
		if req.Status == "" {
			status = models.StatusPrivate
		}

		entry := models.BlogEntry{
			Title:    req.Title,
			Content:  req.Content,
			AuthorID: user.ID,
			Status:   status,
		}
		if err := h.entryRepo.Add(&entry); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create entry", "blog_entry", err))
			return
		}

		if len(req.Tags) > 0 {
			if err := h.entryRepo.ReplaceTags(entry.ID, req.Tags); err != nil {
				// Tags are secondary; the entry itself was created.
				h.logger.Error().Err(err).Str("entryID", entry.ID.String()).Msg("Failed to create entry tags")
			}
		}

		created, err := h.entryRepo.FindByID(entry.ID)
		if err != nil || created == nil {
			h.responder.WriteError(w, wrapDatabaseError("find created entry", "blog_entry", err))
			return
		}

		h.audit.EntryCreated(created, user.ID)

		h.responder.WriteJSONStatus(w, http.StatusCreated, toEntryResponse(created))
	}
}

// get returns one entry by id, slug, or short-url id
// @Summary Get blog entry
// @Description Retrieves one entry addressed by id, slug, or short-url id, subject to its visibility status
// @Tags Entries
// @Produce json
// @Param entryID path string false "Entry ID" format(uuid)
// @Success 200 {object} entryResponse "Entry"
// @Failure 404 {object} ErrorResponse "Not Found - unknown or invisible entry"
// @Router /entries/{entryID}/ [get]
func (h entryHandler) get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := userFromCtx(r.Context())

		entry, err := resolveEntryRef(h.entryRepo, r)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find entry", "blog_entry", err))
			return
		}
		if entry == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("entry not found"))
			return
		}

		role := policy.RoleOf(user)
		actorID := uuid.Nil
		if user != nil {
			actorID = user.ID
		}
		if d := policy.DecideEntry(role, actorID, policy.ActionRead, entry); d != policy.DecisionAllow {
			h.responder.WriteError(w, decisionError(d, "entry"))
			return
		}

		if policy.ShouldRecordView(role, actorID, entry) {
			h.audit.EntryViewed(entry, actorRef(user))
		}

		h.responder.WriteJSON(w, toEntryResponse(entry))
	}
}

// update mutates an entry's title, content, status, or tags
// @Summary Update blog entry
// @Description Updates an entry's mutable fields. The slug and short-url id never change
// @Tags Entries
// @Accept json
// @Produce json
// @Param entryID path string false "Entry ID" format(uuid)
// @Param entry body updateEntryRequest true "Fields to update"
// @Success 200 {object} entryResponse "Updated entry"
// @Failure 400 {object} ErrorResponse "Bad Request - validation failure"
// @Failure 403 {object} ErrorResponse "Forbidden - caller may read but not modify"
// @Failure 404 {object} ErrorResponse "Not Found - unknown or invisible entry"
// @Router /entries/{entryID}/ [put]
func (h entryHandler) update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := userFromCtx(r.Context())

		entry, err := resolveEntryRef(h.entryRepo, r)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find entry", "blog_entry", err))
			return
		}
		if entry == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("entry not found"))
			return
		}

		role := policy.RoleOf(user)
		actorID := uuid.Nil
		if user != nil {
			actorID = user.ID
		}
		if d := policy.DecideEntry(role, actorID, policy.ActionMutate, entry); d != policy.DecisionAllow {
			h.responder.WriteError(w, decisionError(d, "entry"))
			return
		}

		var req updateEntryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Malformed("entry payload"))
			return
		}
		if err := req.Validate(); err != nil {
			h.responder.WriteValidationErrors(w, err)
			return
		}

		if req.Title != nil {
			entry.Title = *req.Title
		}
		if req.Content != nil {
			entry.Content = *req.Content
		}
		if req.Status != nil {
			entry.Status = models.EntryStatus(*req.Status)
		}

		if err := h.entryRepo.Update(entry); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update entry", "blog_entry", err))
			return
		}

		if req.Tags != nil {
			if err := h.entryRepo.ReplaceTags(entry.ID, *req.Tags); err != nil {
				h.responder.WriteError(w, wrapDatabaseError("update entry tags", "entry_tags", err))
				return
			}
		}

		updated, err := h.entryRepo.FindByID(entry.ID)
		if err != nil || updated == nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated entry", "blog_entry", err))
			return
		}

		h.audit.EntryUpdated(updated, user.ID)

		h.responder.WriteJSON(w, toEntryResponse(updated))
	}
}

// del deletes an entry and its comments
// @Summary Delete blog entry
// @Description Deletes an entry; its comments and tags are deleted with it
// @Tags Entries
// @Produce json
// @Param entryID path string false "Entry ID" format(uuid)
// @Success 200 {object} map[string]string "Deletion confirmation"
// @Failure 403 {object} ErrorResponse "Forbidden - caller may read but not modify"
// @Failure 404 {object} ErrorResponse "Not Found - unknown or invisible entry"
// @Router /entries/{entryID}/ [delete]
func (h entryHandler) del() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := userFromCtx(r.Context())

		entry, err := resolveEntryRef(h.entryRepo, r)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find entry", "blog_entry", err))
			return
		}
		if entry == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("entry not found"))
			return
		}

		role := policy.RoleOf(user)
		actorID := uuid.Nil
		if user != nil {
			actorID = user.ID
		}
		if d := policy.DecideEntry(role, actorID, policy.ActionMutate, entry); d != policy.DecisionAllow {
			h.responder.WriteError(w, decisionError(d, "entry"))
			return
		}

		// The title outlives the row in the audit trail.
		title := entry.Title

		if err := h.entryRepo.Delete(entry.ID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete entry", "blog_entry", err))
			return
		}

		h.audit.EntryDeleted(title, user.ID)

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "entry deleted successfully",
		})
	}
}
