package middleware

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
)

// contextKey is the type of keys stored in the request context.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	userIDKey    = contextKey("userID")
	tenantIDKey  = contextKey("tenantID")
)

// GetLoggerFromCtx retrieves the request-scoped logger from a standard context.
// It returns the default logger when none was injected, e.g. in background jobs and tests.
func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return slog.Default()
	}
	if logger, ok := ctx.Value(loggerCtxKey).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey, logger)
}

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	return stringFromContext(c, userIDKey)
}

// GetTenantIDFromContext retrieves the tenant the caller is authenticated for.
func GetTenantIDFromContext(c *gin.Context) (string, bool) {
	return stringFromContext(c, tenantIDKey)
}

func stringFromContext(c *gin.Context, key contextKey) (string, bool) {
	if val, exists := c.Get(string(key)); exists {
		s, ok := val.(string)
		return s, ok && s != ""
	}
	// check in the request context as well
	if s, ok := c.Request.Context().Value(key).(string); ok && s != "" {
		return s, true
	}
	return "", false
}
