package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/pantry-chef/backend/internal/matching"
	"github.com/pageza/pantry-chef/backend/internal/metrics"
	"github.com/pageza/pantry-chef/backend/internal/model"
	"github.com/pageza/pantry-chef/backend/internal/types"
)

// Listing bounds
const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

// RecipeFilter narrows a recipe listing
type RecipeFilter struct {
	Query   string
	Cuisine string
	Limit   int
}

// RecipeService handles recipe operations
type RecipeService struct {
	db     *gorm.DB
	engine matching.Engine
	logger *zap.Logger
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB, engine matching.Engine, logger *zap.Logger) *RecipeService {
	return &RecipeService{
		db:     db,
		engine: engine,
		logger: logger,
	}
}

// CreateRecipe stores a new recipe
func (s *RecipeService) CreateRecipe(ctx context.Context, recipe *model.Recipe) error {
	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return fmt.Errorf("failed to create recipe: %w", err)
	}
	return nil
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	return &recipe, nil
}

// ListRecipes lists recipes, newest first unless a search query orders them
// by similarity
func (s *RecipeService) ListRecipes(ctx context.Context, filter RecipeFilter) ([]model.Recipe, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	query := s.db.WithContext(ctx).Model(&model.Recipe{})

	if cuisine := strings.TrimSpace(filter.Cuisine); cuisine != "" {
		query = query.Where("LOWER(cuisine) = ?", strings.ToLower(cuisine))
	}

	if q := strings.TrimSpace(filter.Query); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		if s.db.Dialector.Name() == "postgres" {
			query = query.
				Where("LOWER(name) LIKE ? OR LOWER(cuisine) LIKE ? OR LOWER(ingredients::text) LIKE ?", like, like, like).
				Order(clause.OrderBy{Expression: clause.Expr{
					SQL:                "embedding <-> ?",
					Vars:               []interface{}{model.GenerateEmbedding(q)},
					WithoutParentheses: true,
				}})
		} else {
			query = query.
				Where("LOWER(name) LIKE ? OR LOWER(cuisine) LIKE ? OR LOWER(ingredients) LIKE ?", like, like, like).
				Order("name ASC")
		}
	} else {
		query = query.Order("created_at DESC").Order("name ASC")
	}

	var recipes []model.Recipe
	if err := query.Limit(limit).Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

// AllRecipes loads the whole catalogue for matching
func (s *RecipeService) AllRecipes(ctx context.Context) ([]model.Recipe, error) {
	var recipes []model.Recipe
	if err := s.db.WithContext(ctx).Order("created_at ASC").Order("name ASC").Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to load recipes: %w", err)
	}
	return recipes, nil
}

// FindRecipes ranks the catalogue against the available ingredients
func (s *RecipeService) FindRecipes(ctx context.Context, query matching.Query) ([]model.MatchResult, error) {
	recipes, err := s.AllRecipes(ctx)
	if err != nil {
		return nil, err
	}

	results := s.engine.Match(recipes, query)
	metrics.MatchResults.Observe(float64(len(results)))

	s.logger.Debug("Matched recipes",
		zap.Int("catalogue", len(recipes)),
		zap.Int("ingredients", len(query.Ingredients)),
		zap.Int("results", len(results)),
	)
	return results, nil
}

// AdjustServing returns the recipe rescaled to servings. The stored recipe
// is not modified.
func (s *RecipeService) AdjustServing(ctx context.Context, id uuid.UUID, servings int) (*types.AdjustedRecipe, error) {
	recipe, err := s.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}

	original := recipe.ServingSize
	recipe.ServingSize = servings
	return &types.AdjustedRecipe{
		Recipe: *recipe,
		Note:   fmt.Sprintf("Recipe adjusted from %d to %d servings", original, servings),
	}, nil
}

// SetImage records the image URL of a recipe
func (s *RecipeService) SetImage(ctx context.Context, id uuid.UUID, url string) (*model.Recipe, error) {
	res := s.db.WithContext(ctx).Model(&model.Recipe{}).Where("id = ?", id).UpdateColumn("image_url", url)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update recipe image: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrRecipeNotFound
	}
	return s.GetRecipe(ctx, id)
}

// CountRecipes returns the catalogue size
func (s *RecipeService) CountRecipes(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Recipe{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count recipes: %w", err)
	}
	return count, nil
}
