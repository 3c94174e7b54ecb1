package middleware

import (
	"time"

	"github.com/gcclub/membercard/internal/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS builds the gin-contrib/cors handler from CORS_* settings. A lone "*"
// origin switches to AllowAllOrigins. Response headers clients read are exposed.
func CORS(cfg *config.Config) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		ExposeHeaders:    []string{RequestIDHeader, "Location", "Retry-After"},
		MaxAge:           time.Duration(cfg.CORS.MaxAge) * time.Second,
	}

	if len(corsConfig.AllowOrigins) == 1 && corsConfig.AllowOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowOrigins = nil
	}

	return cors.New(corsConfig)
}
