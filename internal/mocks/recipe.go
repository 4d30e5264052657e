package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/pantry-chef/backend/internal/matching"
	"github.com/pageza/pantry-chef/backend/internal/model"
	"github.com/pageza/pantry-chef/backend/internal/parser"
	"github.com/pageza/pantry-chef/backend/internal/service"
	"github.com/pageza/pantry-chef/backend/internal/types"
)

// MockRecipeService is a mock implementation of the recipe service
type MockRecipeService struct {
	mock.Mock
}

// ListRecipes mocks the ListRecipes method
func (m *MockRecipeService) ListRecipes(ctx context.Context, filter service.RecipeFilter) ([]model.Recipe, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}

// GetRecipe mocks the GetRecipe method
func (m *MockRecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

// FindRecipes mocks the FindRecipes method
func (m *MockRecipeService) FindRecipes(ctx context.Context, query matching.Query) ([]model.MatchResult, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MatchResult), args.Error(1)
}

// AdjustServing mocks the AdjustServing method
func (m *MockRecipeService) AdjustServing(ctx context.Context, id uuid.UUID, servings int) (*types.AdjustedRecipe, error) {
	args := m.Called(ctx, id, servings)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.AdjustedRecipe), args.Error(1)
}

// MockRecipeGenerator is a mock implementation of the recipe generator
type MockRecipeGenerator struct {
	mock.Mock
}

// GenerateRecipe mocks the GenerateRecipe method
func (m *MockRecipeGenerator) GenerateRecipe(ctx context.Context, req parser.PromptRequest) (*model.Recipe, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

// MockImageService is a mock implementation of the image service
type MockImageService struct {
	mock.Mock
}

// UploadRecipeImage mocks the UploadRecipeImage method
func (m *MockImageService) UploadRecipeImage(ctx context.Context, recipeID uuid.UUID, upload service.ImageUpload) (*model.Recipe, error) {
	args := m.Called(ctx, recipeID, upload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}
