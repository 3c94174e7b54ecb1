package database

import (
	"fmt"
	"log/slog"

	"github.com/gcclub/membercard/internal/config"
	"github.com/gcclub/membercard/internal/model"

	"gorm.io/gorm"
)

// Models lists every table in dependency order (referenced tables first).
func Models() []any {
	return []any{
		&model.User{},
		&model.Member{},
		&model.MemberSequence{},
	}
}

// Migrate executes database migration based on configuration.
// With DB_AUTO_MIGRATE on, every table in Models is dropped and recreated,
// so existing rows are lost. It is refused in production.
func Migrate(db *gorm.DB, cfg *config.Config) error {
	if !cfg.Database.IsAutoMigrate {
		slog.Info("database migration disabled", "auto_migrate", false, "env", cfg.App.Env)
		return nil
	}

	// Safety check: prevent accidental data loss in production
	if cfg.App.Env == "prod" || cfg.App.Env == "production" {
		return fmt.Errorf("DB_AUTO_MIGRATE=true is not allowed in production")
	}

	slog.Warn("database migration started: all tables will be dropped and recreated",
		"auto_migrate", true, "env", cfg.App.Env,
	)

	models := Models()

	// Step 1: Drop existing tables in reverse dependency order (FK constraints)
	for i := len(models) - 1; i >= 0; i-- {
		m := models[i]
		if !db.Migrator().HasTable(m) {
			continue
		}
		if err := db.Migrator().DropTable(m); err != nil {
			slog.Debug("drop table failed", "model", fmt.Sprintf("%T", m), "error", err)
		}
	}

	// Step 2: Create tables from the model definitions
	if err := AutoMigrate(db); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}

	slog.Info("database migration finished")
	return nil
}

// AutoMigrate creates or updates tables from the model definitions in Models
// order. Tests call it directly on an in-memory SQLite database.
func AutoMigrate(db *gorm.DB) error {
	for _, m := range Models() {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("migrate %T: %w", m, err)
		}
		slog.Debug("table migrated", "model", fmt.Sprintf("%T", m))
	}
	return nil
}
