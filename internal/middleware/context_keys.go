package middleware

import (
	"context"

	"github.com/SscSPs/produce_settlement_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// callerKey is the key used to store the authenticated caller in the request context.
const callerKey = contextKey("caller")

// WithCaller returns a copy of ctx carrying the caller.
func WithCaller(ctx context.Context, caller domain.Caller) context.Context {
	return context.WithValue(ctx, callerKey, caller)
}

// GetCallerFromCtx retrieves the authenticated caller from a standard context.
func GetCallerFromCtx(ctx context.Context) (domain.Caller, bool) {
	caller, ok := ctx.Value(callerKey).(domain.Caller)
	if !ok || caller.UserID == "" {
		return domain.Caller{}, false
	}
	return caller, true
}

// GetCallerFromContext retrieves the authenticated caller from the Gin context.
// It returns the caller and a boolean indicating if it was found.
func GetCallerFromContext(c *gin.Context) (domain.Caller, bool) {
	return GetCallerFromCtx(c.Request.Context())
}

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	caller, ok := GetCallerFromContext(c)
	if !ok {
		return "", false
	}
	return caller.UserID, true
}
