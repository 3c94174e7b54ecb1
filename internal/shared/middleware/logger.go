package middleware

import (
	"log/slog"
	"time"

	sharedContext "github.com/gcclub/membercard/internal/shared/context"
	"github.com/gcclub/membercard/internal/shared/logger"
	"github.com/gin-gonic/gin"
)

// LoggerMiddleware logs one line per request and binds a request-scoped
// logger (carrying request_id) into the request context.
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Start timer
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		// Create logger with request_id bound
		reqLogger := slog.Default().With("request_id", GetRequestID(c))

		// Store logger in context for use in handlers/services/repositories
		ctx := logger.WithLogger(c.Request.Context(), reqLogger)
		c.Request = c.Request.WithContext(ctx)

		// Process request
		c.Next()

		// Build log fields (request_id is already bound to reqLogger)
		status := c.Writer.Status()
		fields := []any{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"latency", time.Since(start).String(),
			"ip", c.ClientIP(),
			"userAgent", c.Request.UserAgent(),
		}

		if raw != "" {
			fields = append(fields, "query", raw)
		}

		// Identify the caller once auth middleware has run
		if actor, ok := sharedContext.GetActor(c); ok {
			fields = append(fields, "actor", actor.MemberID, "role", actor.Role.String())
		} else if userID, ok := sharedContext.GetUserID(c); ok {
			fields = append(fields, "user_id", userID)
		}

		// Add error if exists
		if len(c.Errors) > 0 {
			fields = append(fields, "error", c.Errors.String())
		}

		// Log level follows the status code
		msg := "Request processed"

		switch {
		case status >= 500:
			reqLogger.Error(msg, fields...)
		case status >= 400:
			reqLogger.Warn(msg, fields...)
		default:
			reqLogger.Info(msg, fields...)
		}
	}
}
