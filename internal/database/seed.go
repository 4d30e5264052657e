package database

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/pantry-chef/backend/internal/model"
)

//go:embed seeddata/recipes.json
var starterRecipes []byte

// StarterRecipes returns the built-in recipe catalogue
func StarterRecipes() ([]model.Recipe, error) {
	var recipes []model.Recipe
	if err := json.Unmarshal(starterRecipes, &recipes); err != nil {
		return nil, fmt.Errorf("failed to decode starter recipes: %w", err)
	}
	return recipes, nil
}

// SeedRecipes inserts the starter catalogue when the recipes table is empty
// and returns the number of recipes inserted
func SeedRecipes(ctx context.Context, db *gorm.DB, logger *zap.Logger) (int, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&model.Recipe{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count recipes: %w", err)
	}
	if count > 0 {
		logger.Debug("Skipping recipe seed", zap.Int64("existing", count))
		return 0, nil
	}

	recipes, err := StarterRecipes()
	if err != nil {
		return 0, err
	}
	if err := db.WithContext(ctx).CreateInBatches(recipes, 50).Error; err != nil {
		return 0, fmt.Errorf("failed to seed recipes: %w", err)
	}

	logger.Info("Seeded starter recipes", zap.Int("count", len(recipes)))
	return len(recipes), nil
}
