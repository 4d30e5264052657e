package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/pageza/pantry-chef/backend/internal/matching"
	"github.com/pageza/pantry-chef/backend/internal/model"
	"github.com/pageza/pantry-chef/backend/internal/parser"
	"github.com/pageza/pantry-chef/backend/internal/types"
)

// TextGenerator completes a prompt with a language model
type TextGenerator interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// ImageRecognizer answers a prompt about a base64 encoded image
type ImageRecognizer interface {
	DescribeImage(ctx context.Context, system, prompt, imageBase64 string) (string, error)
}

// ObjectStore persists uploaded files and returns their public URL
type ObjectStore interface {
	PutObject(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// IRecipeService defines the interface for recipe catalogue operations
type IRecipeService interface {
	ListRecipes(ctx context.Context, filter RecipeFilter) ([]model.Recipe, error)
	GetRecipe(ctx context.Context, id uuid.UUID) (*model.Recipe, error)
	FindRecipes(ctx context.Context, query matching.Query) ([]model.MatchResult, error)
	AdjustServing(ctx context.Context, id uuid.UUID, servings int) (*types.AdjustedRecipe, error)
}

// IRecipeGenerator defines the interface for AI recipe generation
type IRecipeGenerator interface {
	GenerateRecipe(ctx context.Context, req parser.PromptRequest) (*model.Recipe, error)
}

// IIngredientRecognizer defines the interface for ingredient recognition
type IIngredientRecognizer interface {
	RecognizeIngredients(ctx context.Context, imageBase64 string) ([]string, error)
}

// IImageService defines the interface for recipe image uploads
type IImageService interface {
	UploadRecipeImage(ctx context.Context, recipeID uuid.UUID, upload ImageUpload) (*model.Recipe, error)
}

// IPreferenceService defines the interface for session preferences
type IPreferenceService interface {
	SavePreferences(ctx context.Context, pref *model.UserPreference) (*model.UserPreference, error)
	GetPreferences(ctx context.Context, session string) (*model.UserPreference, error)
}

// ISavedRecipeService defines the interface for a session's saved recipes
type ISavedRecipeService interface {
	SaveRecipe(ctx context.Context, saved *model.SavedRecipe) (*model.SavedRecipe, error)
	ListSavedRecipes(ctx context.Context, session string) ([]types.SavedRecipeView, error)
	DeleteSavedRecipe(ctx context.Context, session string, recipeID uuid.UUID) error
}
