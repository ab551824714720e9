// Package database opens the document store backend selected by the
// configuration.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pageza/nutrilog/backend/config"
	"github.com/pageza/nutrilog/backend/internal/store"
)

const connectTimeout = 5 * time.Second

// NewBackend opens the backend named by cfg.StoreBackend. The sqlite table
// is created on open; postgres expects cmd/migrate to have run.
func NewBackend(ctx context.Context, cfg *config.Config, log zerolog.Logger) (store.Backend, error) {
	switch cfg.StoreBackend {
	case config.StoreMemory:
		log.Warn().Msg("using in-memory store, data is lost on exit")
		return store.NewMemoryBackend(), nil

	case config.StoreSQLite:
		db, err := OpenGorm(cfg)
		if err != nil {
			return nil, err
		}
		if err := RunMigrations(ctx, db); err != nil {
			return nil, err
		}
		log.Info().Str("path", cfg.SQLitePath).Msg("connected to sqlite")
		return store.NewGormBackend(db), nil

	case config.StorePostgres:
		db, err := OpenGorm(cfg)
		if err != nil {
			return nil, err
		}
		log.Info().Msg("connected to postgres")
		return store.NewGormBackend(db), nil

	case config.StoreRedis:
		client, err := NewRedisClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		log.Info().Str("addr", client.Options().Addr).Msg("connected to redis")
		return store.NewRedisBackend(client, cfg.RedisPrefix), nil

	case config.StoreS3:
		client, err := config.NewS3Client(ctx, cfg)
		if err != nil {
			return nil, err
		}
		backend := store.NewS3Backend(client, cfg.S3BucketName, cfg.S3Prefix)
		pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		if err := backend.Ping(pingCtx); err != nil {
			return nil, fmt.Errorf("failed to reach bucket %q: %w", cfg.S3BucketName, err)
		}
		log.Info().Str("bucket", cfg.S3BucketName).Msg("connected to s3")
		return backend, nil
	}

	return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}

// OpenGorm opens the sql database for the sqlite and postgres backends.
func OpenGorm(cfg *config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}

	switch cfg.StoreBackend {
	case config.StoreSQLite:
		db, err := gorm.Open(sqlite.Open(cfg.SQLitePath), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("error opening sqlite database: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// sqlite allows a single writer.
		sqlDB.SetMaxOpenConns(1)
		return db, nil

	case config.StorePostgres:
		db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("error connecting to the database: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(25)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
		return db, nil
	}

	return nil, fmt.Errorf("store backend %q is not sql", cfg.StoreBackend)
}
