package middleware

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
)

// contextKey is a private type so context keys cannot collide.
type contextKey string

const (
	loggerKey    = contextKey("logger")
	userIDKey    = contextKey("userID")
	companyIDKey = contextKey("companyID")
)

// GetLoggerFromCtx retrieves the request-scoped logger from a standard
// context, falling back to the default logger.
func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// GetUserIDFromContext retrieves the authenticated user id set by the auth
// middleware.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Get(string(userIDKey))
	if !ok {
		return "", false
	}
	id, ok := userID.(string)
	return id, ok
}

// GetCompanyIDFromContext retrieves the company scope set by the auth
// middleware.
func GetCompanyIDFromContext(c *gin.Context) (string, bool) {
	companyID, ok := c.Get(string(companyIDKey))
	if !ok {
		return "", false
	}
	id, ok := companyID.(string)
	return id, ok
}
