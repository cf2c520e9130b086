package api

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"github.com/inkwell-labs/blog-platform-backend/models"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	authHandler    authHandler
	entryHandler   entryHandler
	commentHandler commentHandler
	logHandler     logHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"Internal Server Error"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"title"`
	Details string `json:"details,omitempty" example:"Additional error details"`
}

// registerRequest is the payload for account creation.
type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r registerRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("must be a valid email address"),
		),
		validation.Field(&r.Username,
			validation.Required.Error("username is required"),
			validation.Length(1, 100).Error("must be at most 100 characters"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("must be between 8 and 128 characters"),
		),
	)
}

// loginRequest is the payload for obtaining a token pair.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r loginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required.Error("email is required")),
		validation.Field(&r.Password, validation.Required.Error("password is required")),
	)
}

// refreshRequest carries a refresh token for rotation or revocation.
type refreshRequest struct {
	Refresh string `json:"refresh"`
}

func (r refreshRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Refresh, validation.Required.Error("refresh token is required")),
	)
}

// verifyRequest carries any token for verification.
type verifyRequest struct {
	Token string `json:"token"`
}

func (r verifyRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Token, validation.Required.Error("token is required")),
	)
}

// createEntryRequest is the payload for creating a blog entry.
type createEntryRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Status  string   `json:"status"`
	Tags    []string `json:"tags"`
}

func (r createEntryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 200).Error("must be at most 200 characters"),
		),
		validation.Field(&r.Content, validation.Required.Error("content is required")),
		validation.Field(&r.Status,
			validation.In("PUBLIC", "UNLISTED", "PRIVATE").Error("must be PUBLIC, UNLISTED or PRIVATE"),
		),
	)
}

// updateEntryRequest is the payload for PUT/PATCH on an entry. Nil fields
// keep their current values; slug and short-url id are not accepted at all.
type updateEntryRequest struct {
	Title   *string   `json:"title"`
	Content *string   `json:"content"`
	Status  *string   `json:"status"`
	Tags    *[]string `json:"tags"`
}

func (r updateEntryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.NilOrNotEmpty.Error("title cannot be empty"),
			validation.Length(1, 200).Error("must be at most 200 characters"),
		),
		validation.Field(&r.Content, validation.NilOrNotEmpty.Error("content cannot be empty")),
		validation.Field(&r.Status,
			validation.In("PUBLIC", "UNLISTED", "PRIVATE").Error("must be PUBLIC, UNLISTED or PRIVATE"),
		),
	)
}

// commentRequest is the payload for creating or updating a comment.
type commentRequest struct {
	Content string `json:"content"`
}

func (r commentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content, validation.Required.Error("content is required")),
	)
}

// entryResponse is the JSON shape of a blog entry.
type entryResponse struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Slug       string    `json:"slug"`
	ShortURLID string    `json:"shortUrlId"`
	Content    string    `json:"content"`
	Author     string    `json:"author"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	Tags       []string  `json:"tags"`
}

func toEntryResponse(e *models.BlogEntry) entryResponse {
	author := ""
	if e.Author != nil {
		author = e.Author.Username
	}
	return entryResponse{
		ID:         e.ID,
		Title:      e.Title,
		Slug:       e.Slug,
		ShortURLID: e.ShortURLID,
		Content:    e.Content,
		Author:     author,
		Status:     string(e.Status),
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
		Tags:       e.TagValues(),
	}
}

// entryCollectionResponse is a list of entries with a total count.
type entryCollectionResponse struct {
	Entries []entryResponse `json:"entries"`
	Total   int             `json:"total"`
}

// commentResponse is the JSON shape of a comment.
type commentResponse struct {
	ID            uuid.UUID `json:"id"`
	BlogEntryID   uuid.UUID `json:"blogEntryId"`
	CommentNumber int       `json:"commentNumber"`
	Author        string    `json:"author"`
	Content       string    `json:"content"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func toCommentResponse(c *models.Comment) commentResponse {
	author := ""
	if c.Author != nil {
		author = c.Author.Username
	}
	return commentResponse{
		ID:            c.ID,
		BlogEntryID:   c.BlogEntryID,
		CommentNumber: c.CommentNumber,
		Author:        author,
		Content:       c.Content,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

// commentCollectionResponse is a list of comments with a total count.
type commentCollectionResponse struct {
	Comments []commentResponse `json:"comments"`
	Total    int               `json:"total"`
}
