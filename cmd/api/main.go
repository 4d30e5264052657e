package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pageza/pantry-chef/backend/config"
	"github.com/pageza/pantry-chef/backend/internal/api"
	"github.com/pageza/pantry-chef/backend/internal/cache"
	"github.com/pageza/pantry-chef/backend/internal/database"
	"github.com/pageza/pantry-chef/backend/internal/logger"
	"github.com/pageza/pantry-chef/backend/internal/matching"
	"github.com/pageza/pantry-chef/backend/internal/middleware"
	"github.com/pageza/pantry-chef/backend/internal/server"
	"github.com/pageza/pantry-chef/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	gin.SetMode(cfg.Env.GinMode())

	zapLogger, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	ctx := context.Background()

	db, err := database.Open(cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() { _ = database.Close(db) }()

	if err := database.RunMigrations(ctx, db, zapLogger); err != nil {
		zapLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	if cfg.Database.Seed {
		if _, err := database.SeedRecipes(ctx, db, zapLogger); err != nil {
			zapLogger.Fatal("Failed to seed recipes", zap.Error(err))
		}
	}

	redisClient := connectRedis(cfg, zapLogger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	var resultCache cache.Cache
	if redisClient != nil {
		resultCache = cache.NewRedisCache(redisClient)
	} else {
		memoryCache := cache.NewMemoryCache(time.Minute)
		defer memoryCache.Close()
		resultCache = memoryCache
	}

	llm := service.NewLLMClient(cfg.LLM, zapLogger)
	engine := matching.NewEngine(cfg.Matching.MinMatchScore, cfg.Matching.Limit)
	recipeService := service.NewRecipeService(db, engine, zapLogger)

	deps := api.Dependencies{
		Recipes:      recipeService,
		Generator:    service.NewRecipeGenerator(llm, recipeService, resultCache, cfg.Cache.TTL, zapLogger),
		Ingredients:  service.NewIngredientRecognizer(llm, resultCache, cfg.Cache.TTL, zapLogger),
		Images:       service.NewImageService(objectStore(ctx, cfg, zapLogger), recipeService, cfg.Storage.MaxUploadSize, zapLogger),
		Preferences:  service.NewPreferenceService(db),
		SavedRecipes: service.NewSavedRecipeService(db, recipeService),
		Health: func(ctx context.Context) error {
			return database.HealthCheck(ctx, db)
		},
	}
	if cfg.RateLimit.Enabled {
		deps.AILimit = middleware.RateLimit(newLimiter(cfg, redisClient), zapLogger)
	}

	srv, err := server.NewServer(cfg.Server, deps, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to create server", zap.Error(err))
	}

	if err := srv.Start(); err != nil {
		zapLogger.Fatal("Server error", zap.Error(err))
	}
	zapLogger.Info("Server stopped")
}

// connectRedis returns nil when Redis is disabled or unreachable
func connectRedis(cfg *config.Config, logger *zap.Logger) *redis.Client {
	if !cfg.Redis.Enabled {
		logger.Info("Redis disabled, using in-process cache and rate limiting")
		return nil
	}
	client, err := database.NewRedisClient(cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis unavailable, using in-process cache and rate limiting", zap.Error(err))
		return nil
	}
	return client
}

func newLimiter(cfg *config.Config, redisClient *redis.Client) middleware.Limiter {
	limitCfg := middleware.RateLimitConfig{
		Window:    cfg.RateLimit.Window,
		Limit:     cfg.RateLimit.Requests,
		KeyPrefix: "ratelimit:ai",
	}
	if redisClient != nil {
		return middleware.NewRedisLimiter(redisClient, limitCfg)
	}
	return middleware.NewLocalLimiter(limitCfg)
}

// objectStore returns a nil store when image storage is disabled
func objectStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) service.ObjectStore {
	if !cfg.Storage.Enabled {
		logger.Info("Image storage disabled")
		return nil
	}
	s3, err := config.NewS3Config(ctx, cfg.Storage)
	if err != nil {
		logger.Warn("Failed to initialize image storage", zap.Error(err))
		return nil
	}
	return s3
}
