package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported database drivers
const (
	DriverOracle   = "oracle"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	App        AppConfig
	Site       SiteConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Storage    StorageConfig
	JWT        JWTConfig
	CORS       CORSConfig
	Server     ServerConfig
	Membership MembershipConfig
}

type AppConfig struct {
	Name string
	Env  string
	Port int
}

// SiteConfig holds the public base URL printed on member cards and QR codes
type SiteConfig struct {
	URL string
}

type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            int
	Service         string // oracle service name or postgres database name
	User            string
	Password        string
	Path            string // sqlite file path
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	IsAutoMigrate   bool // true: drop and recreate tables on boot
}

// RedisConfig is optional. An empty Addr disables Redis-backed features.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// StorageConfig configures the MinIO bucket used for member photos.
// An empty Endpoint disables photo uploads.
type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type JWTConfig struct {
	Secret        string
	Expiry        time.Duration
	RefreshExpiry time.Duration
}

type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

type ServerConfig struct {
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	GracefulTimeout time.Duration
	LoginRateLimit  int // login attempts per minute per IP
}

type MembershipConfig struct {
	ExpiringWindowDays int
	PageSize           int
	TempPasswordLength int
	FlashTTL           time.Duration
}

func Load(env string) (*Config, error) {
	if err := loadEnvFile(env); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name: getEnv("APP_NAME", "membercard-api"),
			Env:  env,
			Port: getEnvAsInt("APP_PORT", 8080),
		},
		Site: SiteConfig{
			URL: strings.TrimRight(getEnv("SITE_URL", "http://127.0.0.1:8000"), "/"),
		},
		Database: DatabaseConfig{
			Driver:          strings.ToLower(getEnv("DB_DRIVER", DriverOracle)),
			Host:            getEnv("DB_HOST", ""),
			Port:            getEnvAsInt("DB_PORT", 1521),
			Service:         getEnv("DB_SERVICE", ""),
			User:            getEnv("DB_USER", ""),
			Password:        getEnv("DB_PASSWORD", ""),
			Path:            getEnv("DB_PATH", "membercard.db"),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", "1h"),
			ConnMaxIdleTime: getEnvAsDuration("DB_CONN_MAX_IDLE_TIME", "10m"),
			IsAutoMigrate:   getEnvAsBool("DB_AUTO_MIGRATE", false),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Storage: StorageConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", "member-photos"),
			UseSSL:    getEnvAsBool("MINIO_USE_SSL", false),
		},
		JWT: JWTConfig{
			Secret:        getEnv("JWT_SECRET", ""),
			Expiry:        getEnvAsDuration("JWT_EXPIRY", "24h"),
			RefreshExpiry: getEnvAsDuration("JWT_REFRESH_EXPIRY", "168h"),
		},
		CORS: CORSConfig{
			AllowedOrigins:   getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
			AllowedMethods:   getEnvAsSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			AllowedHeaders:   getEnvAsSlice("CORS_ALLOWED_HEADERS", []string{"*"}),
			AllowCredentials: getEnvAsBool("CORS_ALLOW_CREDENTIALS", true),
			MaxAge:           getEnvAsInt("CORS_MAX_AGE", 86400),
		},
		Server: ServerConfig{
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", "15s"),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", "15s"),
			IdleTimeout:     getEnvAsDuration("SERVER_IDLE_TIMEOUT", "60s"),
			GracefulTimeout: getEnvAsDuration("GRACEFUL_TIMEOUT", "30s"),
			LoginRateLimit:  getEnvAsInt("LOGIN_RATE_LIMIT", 20),
		},
		Membership: MembershipConfig{
			ExpiringWindowDays: getEnvAsInt("MEMBERSHIP_EXPIRING_WINDOW_DAYS", 30),
			PageSize:           getEnvAsInt("MEMBERSHIP_PAGE_SIZE", 15),
			TempPasswordLength: getEnvAsInt("MEMBERSHIP_TEMP_PASSWORD_LENGTH", 12),
			FlashTTL:           getEnvAsDuration("FLASH_TTL", "30m"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func loadEnvFile(env string) error {
	envFile := fmt.Sprintf(".env.%s", env)

	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		slog.Warn("env file not found, falling back to process environment",
			"file", envFile)
		return nil
	}

	if err := godotenv.Load(envFile); err != nil {
		return fmt.Errorf("load env file %s: %w", envFile, err)
	}

	absPath, _ := filepath.Abs(envFile)
	slog.Info("env file loaded", "file", absPath)
	return nil
}

func (c *Config) Validate() error {
	var errors []string

	// App validation
	if c.App.Port < 1 || c.App.Port > 65535 {
		errors = append(errors, "invalid APP_PORT")
	}

	// Database validation
	switch c.Database.Driver {
	case DriverOracle, DriverPostgres:
		if c.Database.Host == "" {
			errors = append(errors, "DB_HOST is required")
		}
		if c.Database.Service == "" {
			errors = append(errors, "DB_SERVICE is required")
		}
		if c.Database.User == "" {
			errors = append(errors, "DB_USER is required")
		}
		if c.Database.Password == "" {
			errors = append(errors, "DB_PASSWORD is required")
		}
	case DriverSQLite:
		if c.Database.Path == "" {
			errors = append(errors, "DB_PATH is required")
		}
	default:
		errors = append(errors, fmt.Sprintf("unsupported DB_DRIVER %q", c.Database.Driver))
	}

	// JWT validation
	if c.JWT.Secret == "" {
		errors = append(errors, "JWT_SECRET is required")
	}
	if len(c.JWT.Secret) < 32 {
		errors = append(errors, "JWT_SECRET must be at least 32 characters")
	}

	// Storage validation
	if c.Storage.Endpoint != "" && (c.Storage.AccessKey == "" || c.Storage.SecretKey == "") {
		errors = append(errors, "MINIO_ACCESS_KEY and MINIO_SECRET_KEY are required")
	}

	// Membership validation
	if c.Membership.ExpiringWindowDays < 0 {
		errors = append(errors, "MEMBERSHIP_EXPIRING_WINDOW_DAYS must not be negative")
	}
	if c.Membership.PageSize < 1 {
		errors = append(errors, "MEMBERSHIP_PAGE_SIZE must be positive")
	}
	if c.Membership.TempPasswordLength < 8 {
		errors = append(errors, "MEMBERSHIP_TEMP_PASSWORD_LENGTH must be at least 8")
	}

	if len(errors) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(errors, ", "))
	}

	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "local" || c.App.Env == "dev"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "prod"
}

// CardURL returns the public card URL for a member's public identifier
func (c *Config) CardURL(publicID string) string {
	return fmt.Sprintf("%s/member/%s/", c.Site.URL, publicID)
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	if defaultDuration, err := time.ParseDuration(defaultValue); err == nil {
		return defaultDuration
	}
	return 0
}
