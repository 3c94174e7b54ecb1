package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/gcclub/membercard/internal/shared/logger"
	"github.com/gin-gonic/gin"
)

// DefaultTimeout bounds a request when no other timeout is configured.
const DefaultTimeout = 30 * time.Second

// Timeout middleware sets a timeout context for request processing.
// Queries, MinIO calls and Redis commands observe the deadline through ctx.
// The handler itself is not interrupted and must check ctx.Err() where it
// matters.
func Timeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Create a context with timeout
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		// Replace request context with the timeout context
		c.Request = c.Request.WithContext(ctx)

		// Execute the handler chain on this goroutine
		c.Next()

		// After the handler completes, check whether the deadline passed
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			// request_id comes from the request-scoped logger
			logger.FromContext(c.Request.Context()).Warn("request deadline exceeded",
				"path", c.FullPath(),
				"method", c.Request.Method,
				"timeout", timeout.String(),
				"status", c.Writer.Status(),
			)

			// No response is written here: the handler may already have sent one.
		}
	}
}
