package api

import (
	"github.com/inkwell-labs/blog-platform-backend/auth"
	"github.com/inkwell-labs/blog-platform-backend/database"
	"github.com/inkwell-labs/blog-platform-backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, tokens *auth.TokenManager) *routeHandlers {
	audit := services.NewAuditRecorder(database.LogEntryRepo())

	return &routeHandlers{
		authHandler:    newAuthHandler(tokens, database.UserRepo(), database.RevokedTokenRepo()),
		entryHandler:   newEntryHandler(database.BlogEntryRepo(), audit),
		commentHandler: newCommentHandler(database.CommentRepo(), database.BlogEntryRepo(), audit),
		logHandler:     newLogHandler(database.LogEntryRepo()),
	}
}
