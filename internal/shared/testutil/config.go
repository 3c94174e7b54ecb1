package testutil

import (
	"time"

	"github.com/gcclub/membercard/internal/config"
)

// NewTestConfig creates a test configuration
// This removes the need for environment variables during testing
func NewTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name: "membercard-api-test",
			Env:  "test",
			Port: 8080,
		},
		Site: config.SiteConfig{
			URL: "http://cards.test",
		},
		Database: config.DatabaseConfig{
			Driver:          config.DriverSQLite,
			Path:            ":memory:",
			MaxIdleConns:    1,
			MaxOpenConns:    1,
			ConnMaxLifetime: time.Hour,
			ConnMaxIdleTime: 10 * time.Minute,
			IsAutoMigrate:   true,
		},
		JWT: config.JWTConfig{
			Secret:        "test-jwt-secret-key-must-be-at-least-32-characters-long",
			Expiry:        24 * time.Hour,
			RefreshExpiry: 168 * time.Hour,
		},
		CORS: config.CORSConfig{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: true,
			MaxAge:           86400,
		},
		Server: config.ServerConfig{
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			GracefulTimeout: 30 * time.Second,
			LoginRateLimit:  20,
		},
		Membership: config.MembershipConfig{
			ExpiringWindowDays: 30,
			PageSize:           15,
			TempPasswordLength: 12,
			FlashTTL:           30 * time.Minute,
		},
	}
}
