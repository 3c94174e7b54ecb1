package bootstrap

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gcclub/membercard/internal/config"
	"github.com/gcclub/membercard/internal/shared/middleware"
	"github.com/gin-gonic/gin"
)

// Bootstrap handles common server setup
type Bootstrap struct {
	cfg *config.Config
}

// NewBootstrap creates a new bootstrap instance
func NewBootstrap(cfg *config.Config) *Bootstrap {
	return &Bootstrap{
		cfg: cfg,
	}
}

// SetupEngine creates and configures a gin engine with common middleware
func (b *Bootstrap) SetupEngine() *gin.Engine {
	// Set Gin mode based on environment
	if b.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Disable Gin's default logger (using slog)
	gin.DefaultWriter = io.Discard
	gin.DefaultErrorWriter = io.Discard

	// Create engine without default middleware
	engine := gin.New()

	engine.Use(gin.CustomRecovery(b.recoveryHandler))
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Metrics())
	engine.Use(middleware.CORS(b.cfg))
	engine.Use(middleware.Timeout(middleware.DefaultTimeout)) // 30 second global timeout
	engine.Use(middleware.LoggerMiddleware())

	return engine
}

// recoveryHandler handles panics
func (b *Bootstrap) recoveryHandler(c *gin.Context, recovered any) {
	slog.Error("panic recovered",
		"error", recovered,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"request_id", middleware.GetRequestID(c),
	)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"error": "Internal server error", "request_id": middleware.GetRequestID(c),
	})
}
