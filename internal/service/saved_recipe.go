package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/pantry-chef/backend/internal/model"
	"github.com/pageza/pantry-chef/backend/internal/types"
)

// SavedRecipeService manages the recipes a session has saved
type SavedRecipeService struct {
	db      *gorm.DB
	recipes *RecipeService
}

// NewSavedRecipeService creates a new SavedRecipeService instance
func NewSavedRecipeService(db *gorm.DB, recipes *RecipeService) *SavedRecipeService {
	return &SavedRecipeService{
		db:      db,
		recipes: recipes,
	}
}

// SaveRecipe saves a recipe for a session, replacing the rating and notes
// of an earlier save
func (s *SavedRecipeService) SaveRecipe(ctx context.Context, saved *model.SavedRecipe) (*model.SavedRecipe, error) {
	if _, err := s.recipes.GetRecipe(ctx, saved.RecipeID); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_session"}, {Name: "recipe_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "notes", "updated_at"}),
	}).Create(saved).Error
	if err != nil {
		return nil, fmt.Errorf("failed to save recipe: %w", err)
	}

	var stored model.SavedRecipe
	if err := s.db.WithContext(ctx).
		First(&stored, "user_session = ? AND recipe_id = ?", saved.UserSession, saved.RecipeID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload saved recipe: %w", err)
	}
	return &stored, nil
}

// ListSavedRecipes returns the saved recipes of session with their details,
// most recently saved first. Saves whose recipe no longer exists are skipped.
func (s *SavedRecipeService) ListSavedRecipes(ctx context.Context, session string) ([]types.SavedRecipeView, error) {
	var saved []model.SavedRecipe
	if err := s.db.WithContext(ctx).
		Where("user_session = ?", session).
		Order("created_at DESC").
		Find(&saved).Error; err != nil {
		return nil, fmt.Errorf("failed to list saved recipes: %w", err)
	}

	views := make([]types.SavedRecipeView, 0, len(saved))
	if len(saved) == 0 {
		return views, nil
	}

	ids := make([]uuid.UUID, len(saved))
	for i, sr := range saved {
		ids[i] = sr.RecipeID
	}

	var recipes []model.Recipe
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to load saved recipe details: %w", err)
	}
	byID := make(map[uuid.UUID]model.Recipe, len(recipes))
	for _, r := range recipes {
		byID[r.ID] = r
	}

	for _, sr := range saved {
		recipe, ok := byID[sr.RecipeID]
		if !ok {
			continue
		}
		views = append(views, types.SavedRecipeView{
			Recipe:     recipe,
			UserRating: sr.Rating,
			UserNotes:  sr.Notes,
		})
	}
	return views, nil
}

// DeleteSavedRecipe removes a saved recipe from a session
func (s *SavedRecipeService) DeleteSavedRecipe(ctx context.Context, session string, recipeID uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Where("user_session = ? AND recipe_id = ?", session, recipeID).
		Delete(&model.SavedRecipe{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete saved recipe: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrSavedRecipeNotFound
	}
	return nil
}
