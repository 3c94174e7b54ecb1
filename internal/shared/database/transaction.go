package database

import (
	"context"
	"errors"

	"github.com/gcclub/membercard/internal/shared/logger"
	"gorm.io/gorm"
)

// WithTransaction executes fn within a transaction while propagating ctx.
// The transaction DB instance passed to fn already carries the context, so
// repository methods can use it directly with their usual (ctx, db) signature.
//
// Returning an error from fn rolls back. Member ID allocation relies on that:
// a failed create never consumes a number.
//
// Usage:
//
//	err := WithTransaction(ctx, db, func(tx *gorm.DB) error {
//	    memberID, err := allocator.Next(ctx, tx)
//	    ...
//	    return repo.Create(ctx, tx, member) // nil commits
//	})
func WithTransaction(ctx context.Context, db *gorm.DB, fn func(*gorm.DB) error) error {
	if fn == nil {
		return errors.New("database: transaction function is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	err := db.WithContext(ctx).Transaction(fn)
	if err != nil {
		// The caller logs the failure; this only records the rollback
		logger.FromContext(ctx).Debug("transaction rolled back", "error", err)
	}
	return err
}
