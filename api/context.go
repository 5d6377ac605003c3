package api

import (
	"context"

	"github.com/rpupo63/blog-platform-backend/models"
)

type keyType string

const (
	userKey      keyType = "user"
	requestIDKey keyType = "requestID"
)

// ctxWithUser adds the resolved user to the context
func ctxWithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// ctxGetUser retrieves the resolved user from the context; nil means the
// caller is anonymous.
func ctxGetUser(ctx context.Context) *models.User {
	if user, ok := ctx.Value(userKey).(*models.User); ok {
		return user
	}
	return nil
}

// ctxWithRequestID adds a request ID to the context
func ctxWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// ctxGetRequestID retrieves the request ID from the context
func ctxGetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}
