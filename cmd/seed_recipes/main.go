package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/pageza/pantry-chef/backend/config"
	"github.com/pageza/pantry-chef/backend/internal/cache"
	"github.com/pageza/pantry-chef/backend/internal/database"
	"github.com/pageza/pantry-chef/backend/internal/logger"
	"github.com/pageza/pantry-chef/backend/internal/matching"
	"github.com/pageza/pantry-chef/backend/internal/parser"
	"github.com/pageza/pantry-chef/backend/internal/service"
)

// pantries are the ingredient sets used to generate extra recipes
var pantries = []parser.PromptRequest{
	{Ingredients: []string{"spaghetti", "garlic", "olive oil", "chili flakes"}, CuisinePreference: "Italian"},
	{Ingredients: []string{"chickpeas", "spinach", "coconut milk", "curry paste"}, DietaryPreferences: []string{"vegan"}},
	{Ingredients: []string{"eggs", "tortillas", "black beans", "salsa"}, CuisinePreference: "Mexican", Difficulty: "easy"},
	{Ingredients: []string{"salmon", "rice", "soy sauce", "ginger"}, CuisinePreference: "Japanese"},
	{Ingredients: []string{"chicken thighs", "lemon", "oregano", "potatoes"}, CuisinePreference: "Greek"},
	{Ingredients: []string{"tofu", "broccoli", "peanut butter", "noodles"}, DietaryPreferences: []string{"vegetarian"}},
	{Ingredients: []string{"lentils", "carrots", "celery", "cumin"}, DietaryPreferences: []string{"vegan", "gluten-free"}},
	{Ingredients: []string{"ground beef", "onion", "paprika", "sour cream"}, Difficulty: "medium"},
	{Ingredients: []string{"oats", "banana", "honey", "almonds"}, Difficulty: "easy"},
	{Ingredients: []string{"shrimp", "coconut milk", "lemongrass", "lime"}, CuisinePreference: "Thai"},
}

func main() {
	generate := flag.Int("generate", 0, "Number of additional recipes to generate through the AI provider")
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

	db, err := database.Open(cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() { _ = database.Close(db) }()

	if err := database.RunMigrations(ctx, db, zapLogger); err != nil {
		zapLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	inserted, err := database.SeedRecipes(ctx, db, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to seed recipes", zap.Error(err))
	}
	zapLogger.Info("Starter recipes seeded", zap.Int("inserted", inserted))

	if *generate <= 0 {
		return
	}

	memoryCache := cache.NewMemoryCache(time.Minute)
	defer memoryCache.Close()

	recipes := service.NewRecipeService(db, matching.NewEngine(cfg.Matching.MinMatchScore, cfg.Matching.Limit), zapLogger)
	generator := service.NewRecipeGenerator(service.NewLLMClient(cfg.LLM, zapLogger), recipes, memoryCache, cfg.Cache.TTL, zapLogger)

	created := 0
	for i := 0; i < *generate; i++ {
		req := pantries[i%len(pantries)]
		recipe, err := generator.GenerateRecipe(ctx, req)
		if err != nil {
			zapLogger.Error("Failed to generate recipe", zap.Strings("ingredients", req.Ingredients), zap.Error(err))
			continue
		}
		created++
		zapLogger.Info("Generated recipe", zap.String("name", recipe.Name), zap.String("id", recipe.ID.String()))
	}

	zapLogger.Info("Recipe generation finished", zap.Int("requested", *generate), zap.Int("created", created))
}
