package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// sessionIDKey is the key used to store the caller's session ID in the Gin and request contexts.
const sessionIDKey = contextKey("sessionID")

// GetSessionIDFromContext retrieves the session ID set by SessionMiddleware.
// It returns the session ID and a boolean indicating if it was found.
func GetSessionIDFromContext(c *gin.Context) (string, bool) {
	sessionIDVal, exists := c.Get(string(sessionIDKey))
	if !exists {
		return GetSessionIDFromCtx(c.Request.Context())
	}

	sessionID, ok := sessionIDVal.(string)
	if !ok || sessionID == "" {
		return "", false
	}
	return sessionID, true
}

// GetSessionIDFromCtx retrieves the session ID from a standard context.
func GetSessionIDFromCtx(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(sessionIDKey).(string)
	if !ok || sessionID == "" {
		return "", false
	}
	return sessionID, true
}
