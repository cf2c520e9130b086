package api

import (
	"encoding/json"
	"net/http"
	"strconv"

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

type commentHandler struct {
	responder   Responder
	logger      zerolog.Logger
	commentRepo *database.CommentRepo
	entryRepo   *database.BlogEntryRepo
	audit       *services.AuditRecorder
}

func newCommentHandler(commentRepo *database.CommentRepo, entryRepo *database.BlogEntryRepo, audit *services.AuditRecorder) commentHandler {
	logger := log.With().Str("handlerName", "commentHandler").Logger()

	return commentHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		commentRepo: commentRepo,
		entryRepo:   entryRepo,
		audit:       audit,
	}
}

// resolveComment finds the comment addressed by the request path together
// with its parent entry. Comments are addressable by their own id or by
// (entry reference, sequence number).
func (h commentHandler) resolveComment(r *http.Request) (*models.Comment, *models.BlogEntry, error) {
	if idStr := chi.URLParam(r, "commentID"); idStr != "" {
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, nil, errs.NewBadRequestError("invalid commentID")
		}
		comment, err := h.commentRepo.FindByID(id)
		if err != nil || comment == nil {
			return nil, nil, err
		}
		entry, err := h.entryRepo.FindByID(comment.BlogEntryID)
		if err != nil {
			return nil, nil, err
		}
		return comment, entry, nil
	}

	entry, err := resolveEntryRef(h.entryRepo, r)
	if err != nil || entry == nil {
		return nil, nil, err
	}

	number, err := strconv.Atoi(chi.URLParam(r, "commentNumber"))
	if err != nil || number < 1 {
		return nil, nil, errs.NewBadRequestError("invalid comment number")
	}
	comment, err := h.commentRepo.FindByEntryAndNumber(entry.ID, number)
	if err != nil {
		return nil, nil, err
	}
	return comment, entry, nil
}

// listForEntry lists all comments on one entry
// @Summary List comments
// @Description Lists the comments on an entry in sequence order, subject to the entry's visibility
// @Tags Comments
// @Produce json
// @Success 200 {object} commentCollectionResponse "Comments"
// @Failure 404 {object} ErrorResponse "Not Found - unknown or invisible entry"
// @Router /entries/{entryID}/comments/ [get]
func (h commentHandler) listForEntry() http.HandlerFunc {
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

		comments, err := h.commentRepo.ListByEntry(entry.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list comments", "comments", err))
			return
		}

		responses := make([]commentResponse, 0, len(comments))
		for _, comment := range comments {
			responses = append(responses, toCommentResponse(comment))
		}

		h.responder.WriteJSON(w, commentCollectionResponse{
			Comments: responses,
			Total:    len(responses),
		})
	}
}

// createForEntry adds a comment to one entry
// @Summary Create comment
// @Description Creates a comment on an entry the caller can read, assigning the next sequence number
// @Tags Comments
// @Accept json
// @Produce json
// @Param comment body commentRequest true "Comment data"
// @Success 201 {object} commentResponse "Created comment"
// @Failure 400 {object} ErrorResponse "Bad Request - validation failure"
// @Failure 401 {object} ErrorResponse "Unauthorized - authentication required"
// @Failure 404 {object} ErrorResponse "Not Found - unknown or invisible entry"
// @Router /entries/{entryID}/comments/ [post]
func (h commentHandler) createForEntry() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := userFromCtx(r.Context())
		// Authentication is decided before the entry is even looked up, so
		// anonymous callers cannot tell an invisible entry from a missing one.
		if user == nil {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		entry, err := resolveEntryRef(h.entryRepo, r)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find entry", "blog_entry", err))
			return
		}
		if entry == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("entry not found"))
			return
		}

		if !policy.CanCreateComment(policy.RoleOf(user), user.ID, entry) {
			h.responder.WriteError(w, errs.NewNotFoundError("entry not found"))
			return
		}

		var req commentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Malformed("comment payload"))
			return
		}
		if err := req.Validate(); err != nil {
			h.responder.WriteValidationErrors(w, err)
			return
		}

		comment := models.Comment{
			BlogEntryID: entry.ID,
			AuthorID:    user.ID,
			Content:     req.Content,
		}
		if err := h.commentRepo.Add(&comment); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create comment", "comment", err))
			return
		}

		created, err := h.commentRepo.FindByID(comment.ID)
		if err != nil || created == nil {
			h.responder.WriteError(w, wrapDatabaseError("find created comment", "comment", err))
			return
		}

		h.audit.CommentCreated(created, user.ID)

		h.responder.WriteJSONStatus(w, http.StatusCreated, toCommentResponse(created))
	}
}

// get returns one comment
// @Summary Get comment
// @Description Retrieves one comment by id or by entry reference and sequence number
// @Tags Comments
// @Produce json
// @Param commentID path string false "Comment ID" format(uuid)
// @Success 200 {object} commentResponse "Comment"
// @Failure 404 {object} ErrorResponse "Not Found - unknown or invisible comment"
// @Router /comments/{commentID}/ [get]
func (h commentHandler) get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := userFromCtx(r.Context())

		comment, entry, err := h.resolveComment(r)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find comment", "comment", err))
			return
		}
		if comment == nil || entry == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("comment not found"))
			return
		}

		role := policy.RoleOf(user)
		actorID := uuid.Nil
		if user != nil {
			actorID = user.ID
		}
		if d := policy.DecideComment(role, actorID, policy.ActionRead, comment, entry); d != policy.DecisionAllow {
			h.responder.WriteError(w, errs.NewNotFoundError("comment not found"))
			return
		}

		h.responder.WriteJSON(w, toCommentResponse(comment))
	}
}

// update mutates a comment's content
// @Summary Update comment
// @Description Updates a comment's content. The sequence number never changes
// @Tags Comments
// @Accept json
// @Produce json
// @Param commentID path string false "Comment ID" format(uuid)
// @Param comment body commentRequest true "Comment data"
// @Success 200 {object} commentResponse "Updated comment"
// @Failure 400 {object} ErrorResponse "Bad Request - validation failure"
// @Failure 403 {object} ErrorResponse "Forbidden - caller may read but not modify"
// @Failure 404 {object} ErrorResponse "Not Found - unknown or invisible comment"
// @Router /comments/{commentID}/ [put]
func (h commentHandler) update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := userFromCtx(r.Context())

		comment, entry, err := h.resolveComment(r)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find comment", "comment", err))
			return
		}
		if comment == nil || entry == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("comment not found"))
			return
		}

		role := policy.RoleOf(user)
		actorID := uuid.Nil
		if user != nil {
			actorID = user.ID
		}
		if d := policy.DecideComment(role, actorID, policy.ActionMutate, comment, entry); d != policy.DecisionAllow {
			h.responder.WriteError(w, decisionError(d, "comment"))
			return
		}

		var req commentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Malformed("comment payload"))
			return
		}
		if err := req.Validate(); err != nil {
			h.responder.WriteValidationErrors(w, err)
			return
		}

		comment.Content = req.Content
		if err := h.commentRepo.Update(comment); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update comment", "comment", err))
			return
		}

		updated, err := h.commentRepo.FindByID(comment.ID)
		if err != nil || updated == nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated comment", "comment", err))
			return
		}

		h.audit.CommentUpdated(updated, user.ID)

		h.responder.WriteJSON(w, toCommentResponse(updated))
	}
}

// del deletes a comment
// @Summary Delete comment
// @Description Deletes a comment. Its sequence number is never reused
// @Tags Comments
// @Produce json
// @Param commentID path string false "Comment ID" format(uuid)
// @Success 200 {object} map[string]string "Deletion confirmation"
// @Failure 403 {object} ErrorResponse "Forbidden - caller may read but not modify"
// @Failure 404 {object} ErrorResponse "Not Found - unknown or invisible comment"
// @Router /comments/{commentID}/ [delete]
func (h commentHandler) del() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := userFromCtx(r.Context())

		comment, entry, err := h.resolveComment(r)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find comment", "comment", err))
			return
		}
		if comment == nil || entry == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("comment not found"))
			return
		}

		role := policy.RoleOf(user)
		actorID := uuid.Nil
		if user != nil {
			actorID = user.ID
		}
		if d := policy.DecideComment(role, actorID, policy.ActionMutate, comment, entry); d != policy.DecisionAllow {
			h.responder.WriteError(w, decisionError(d, "comment"))
			return
		}

		if err := h.commentRepo.Delete(comment.ID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete comment", "comment", err))
			return
		}

		h.audit.CommentDeleted(comment, user.ID)

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "comment deleted successfully",
		})
	}
}
