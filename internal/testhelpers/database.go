// Package testhelpers builds databases and clients for tests.
package testhelpers

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/pantry-chef/backend/config"
	"github.com/pageza/pantry-chef/backend/internal/database"
	"github.com/pageza/pantry-chef/backend/internal/model"
	"github.com/pageza/pantry-chef/backend/internal/testhelpers/containers"
)

// SetupSQLiteDB returns a migrated SQLite database private to the test
func SetupSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	return open(t, config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "pantry_chef.db"),
	})
}

// SetupPostgresDB returns a migrated PostgreSQL database running in a
// container. The test is skipped when docker is unavailable.
func SetupPostgresDB(t *testing.T) *gorm.DB {
	t.Helper()
	return open(t, config.DatabaseConfig{
		Driver: "postgres",
		URL:    containers.Postgres(t),
	})
}

// SetupRedis returns a client for a Redis container. The test is skipped
// when docker is unavailable.
func SetupRedis(t *testing.T) *redis.Client {
	t.Helper()

	client, err := database.NewRedisClient(config.RedisConfig{
		Enabled: true,
		URL:     containers.Redis(t),
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

// SeedRecipes inserts recipes and returns them with their assigned IDs
func SeedRecipes(t *testing.T, db *gorm.DB, recipes ...model.Recipe) []model.Recipe {
	t.Helper()
	for i := range recipes {
		if err := db.Create(&recipes[i]).Error; err != nil {
			t.Fatalf("failed to seed recipe %q: %v", recipes[i].Name, err)
		}
	}
	return recipes
}

func open(t *testing.T, cfg config.DatabaseConfig) *gorm.DB {
	t.Helper()
	logger := zap.NewNop()

	db, err := database.Open(cfg, logger)
	if err != nil {
		t.Fatalf("failed to open %s database: %v", cfg.Driver, err)
	}
	t.Cleanup(func() { _ = database.Close(db) })

	if err := database.RunMigrations(context.Background(), db, logger); err != nil {
		t.Fatalf("failed to migrate %s database: %v", cfg.Driver, err)
	}
	return db
}
