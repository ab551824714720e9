package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/nutrilog/backend/internal/models"
)

// GormBackend stores documents as rows of the app_states table. It works
// with any gorm dialect; sqlite and postgres are wired in.
type GormBackend struct {
	db *gorm.DB
}

var _ Backend = (*GormBackend)(nil)

func NewGormBackend(db *gorm.DB) *GormBackend {
	return &GormBackend{db: db}
}

// Migrate creates or updates the app_states table.
func (g *GormBackend) Migrate(ctx context.Context) error {
	if err := g.db.WithContext(ctx).AutoMigrate(&models.AppState{}); err != nil {
		return fmt.Errorf("failed to migrate app_states: %w", err)
	}
	return nil
}

func (g *GormBackend) Load(ctx context.Context, key string) ([]byte, error) {
	var row models.AppState
	err := g.db.WithContext(ctx).Where(&models.AppState{Key: key}).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load document %q: %w", key, err)
	}
	return []byte(row.Document), nil
}

func (g *GormBackend) Save(ctx context.Context, key string, doc []byte) error {
	row := models.AppState{Key: key, Document: string(doc)}
	err := g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"document", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to save document %q: %w", key, err)
	}
	return nil
}

func (g *GormBackend) Ping(ctx context.Context) error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (g *GormBackend) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (g *GormBackend) Name() string {
	return g.db.Dialector.Name()
}
