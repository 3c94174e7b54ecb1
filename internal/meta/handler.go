package meta

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gcclub/membercard/internal/config"
	"github.com/gcclub/membercard/internal/shared/database"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Handler handles meta endpoints (health check)
type Handler struct {
	cfg   *config.Config
	db    *database.DB
	redis redis.Cmdable // nil when Redis is not configured
}

// NewHandler creates a new meta handler. redisClient may be nil.
func NewHandler(cfg *config.Config, db *database.DB, redisClient redis.Cmdable) *Handler {
	return &Handler{
		cfg:   cfg,
		db:    db,
		redis: redisClient,
	}
}

// Health checks service and database health. Redis is reported but only the
// database decides the overall status, since every Redis feature degrades.
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	service := gin.H{
		"name":        h.cfg.App.Name,
		"environment": h.cfg.App.Env,
	}
	checks := gin.H{}

	// Check database connectivity
	start := time.Now()
	if err := h.db.HealthCheck(ctx); err != nil {
		slog.Error("health check failed", "error", err)

		checks["database"] = gin.H{
			"status": "down",
			"error":  err.Error(),
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"service": service,
			"checks":  checks,
		})
		return
	}
	checks["database"] = gin.H{
		"status":     "up",
		"latency_ms": time.Since(start).Milliseconds(),
	}

	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			slog.Warn("redis health check failed", "error", err)
			checks["redis"] = gin.H{"status": "down", "error": err.Error()}
		} else {
			checks["redis"] = gin.H{"status": "up"}
		}
	}

	// All required checks passed
	service["port"] = h.cfg.App.Port
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": service,
		"checks":  checks,
	})
}
