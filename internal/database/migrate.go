package database

import (
	"context"

	"gorm.io/gorm"

	"github.com/pageza/nutrilog/backend/internal/store"
)

// RunMigrations creates or updates the document table.
func RunMigrations(ctx context.Context, db *gorm.DB) error {
	return store.NewGormBackend(db).Migrate(ctx)
}
