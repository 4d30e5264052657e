package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/pantry-chef/backend/internal/cache"
	"github.com/pageza/pantry-chef/backend/internal/metrics"
	"github.com/pageza/pantry-chef/backend/internal/model"
	"github.com/pageza/pantry-chef/backend/internal/parser"
)

// RecipeGenerator creates recipes with the language model and stores them
type RecipeGenerator struct {
	llm     TextGenerator
	recipes *RecipeService
	cache   cache.Cache
	ttl     time.Duration
	logger  *zap.Logger
}

// NewRecipeGenerator creates a new RecipeGenerator instance
func NewRecipeGenerator(llm TextGenerator, recipes *RecipeService, c cache.Cache, ttl time.Duration, logger *zap.Logger) *RecipeGenerator {
	return &RecipeGenerator{
		llm:     llm,
		recipes: recipes,
		cache:   c,
		ttl:     ttl,
		logger:  logger,
	}
}

// GenerateRecipe returns a stored recipe for an identical earlier request, or
// asks the model for a new one, parses and stores it
func (g *RecipeGenerator) GenerateRecipe(ctx context.Context, req parser.PromptRequest) (*model.Recipe, error) {
	prompt := parser.Prompt(req)
	key := cache.Key("recipe", parser.SystemPrompt, prompt)

	if recipe := g.cached(ctx, key); recipe != nil {
		return recipe, nil
	}

	text, err := g.llm.Complete(ctx, parser.SystemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	record := parser.Parse(text)
	if record.Name == "" {
		g.logger.Warn("Generated recipe has no name",
			zap.Strings("ingredients", req.Ingredients),
			zap.Int("response_length", len(text)),
		)
	}

	recipe := record.Recipe()
	if err := g.recipes.CreateRecipe(ctx, &recipe); err != nil {
		return nil, err
	}

	if err := cache.SetJSON(ctx, g.cache, key, recipe.ID.String(), g.ttl); err != nil {
		g.logger.Warn("Failed to cache generated recipe", zap.Error(err))
	}

	g.logger.Info("Generated recipe",
		zap.String("id", recipe.ID.String()),
		zap.String("name", recipe.Name),
		zap.String("ingredients", strings.Join(req.Ingredients, ", ")),
	)
	return &recipe, nil
}

func (g *RecipeGenerator) cached(ctx context.Context, key string) *model.Recipe {
	var id string
	err := cache.GetJSON(ctx, g.cache, key, &id)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			g.logger.Warn("Recipe cache lookup failed", zap.Error(err))
		}
		metrics.RecordCacheLookup("recipe", false)
		return nil
	}

	recipe, err := g.lookup(ctx, id)
	if err != nil {
		g.logger.Debug("Discarding stale recipe cache entry", zap.String("id", id), zap.Error(err))
		_ = g.cache.Delete(ctx, key)
		metrics.RecordCacheLookup("recipe", false)
		return nil
	}

	metrics.RecordCacheLookup("recipe", true)
	return recipe
}

func (g *RecipeGenerator) lookup(ctx context.Context, id string) (*model.Recipe, error) {
	recipeID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid cached recipe id: %w", err)
	}
	return g.recipes.GetRecipe(ctx, recipeID)
}
