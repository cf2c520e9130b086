package api

import (
	"context"

	"github.com/inkwell-labs/blog-platform-backend/models"
)

type keyType string

const (
	userKey keyType = "user"
)

// ctxWithUser adds the authenticated user to the context
func ctxWithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// userFromCtx retrieves the authenticated user from the context, or nil for
// anonymous requests
func userFromCtx(ctx context.Context) *models.User {
	if user, ok := ctx.Value(userKey).(*models.User); ok {
		return user
	}
	return nil
}
