package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/pantry-chef/backend/internal/model"
)

//go:embed migrations/*.sql
var migrations embed.FS

// NewMigrationProvider returns a goose provider over the embedded migrations
func NewMigrationProvider(db *sql.DB) (*goose.Provider, error) {
	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return nil, err
	}
	return goose.NewProvider(goose.DialectPostgres, db, fsys)
}

// MigrateUp applies every pending migration
func MigrateUp(ctx context.Context, db *sql.DB, logger *zap.Logger) error {
	provider, err := NewMigrationProvider(db)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	for _, r := range results {
		logger.Info("Applied migration",
			zap.String("source", r.Source.Path),
			zap.Duration("duration", r.Duration),
		)
	}
	return nil
}

// MigrateDown rolls back the most recent migration
func MigrateDown(ctx context.Context, db *sql.DB, logger *zap.Logger) error {
	provider, err := NewMigrationProvider(db)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}

	result, err := provider.Down(ctx)
	if err != nil {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}
	logger.Info("Rolled back migration", zap.String("source", result.Source.Path))
	return nil
}

// RunMigrations brings the schema up to date. SQLite has no vector
// extension, so it is migrated from the models instead.
func RunMigrations(ctx context.Context, db *gorm.DB, logger *zap.Logger) error {
	if db.Dialector.Name() == "sqlite" {
		logger.Info("Using GORM auto-migration for SQLite")
		return db.WithContext(ctx).AutoMigrate(
			&model.Recipe{},
			&model.UserPreference{},
			&model.SavedRecipe{},
		)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return MigrateUp(ctx, sqlDB, logger)
}
