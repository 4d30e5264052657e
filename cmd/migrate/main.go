package main

import (
	"context"
	"database/sql"
	"flag"
	"log"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/pageza/pantry-chef/backend/config"
	"github.com/pageza/pantry-chef/backend/internal/database"
	"github.com/pageza/pantry-chef/backend/internal/logger"
)

func main() {
	down := flag.Bool("down", false, "Roll back the most recent migration")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	ctx := context.Background()

	// SQLite schemas are derived from the models and have no versions to roll back
	if cfg.Database.Driver == "sqlite" {
		if *down {
			zapLogger.Fatal("Rollback is only supported on postgres")
		}
		db, err := database.Open(cfg.Database, zapLogger)
		if err != nil {
			zapLogger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer func() { _ = database.Close(db) }()
		if err := database.RunMigrations(ctx, db, zapLogger); err != nil {
			zapLogger.Fatal("Migration failed", zap.Error(err))
		}
		return
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if *down {
		err = database.MigrateDown(ctx, db, zapLogger)
	} else {
		err = database.MigrateUp(ctx, db, zapLogger)
	}
	if err != nil {
		zapLogger.Fatal("Migration failed", zap.Error(err))
	}
}
