package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/pantry-chef/backend/internal/model"
	"github.com/pageza/pantry-chef/backend/internal/types"
)

// MockPreferenceService is a mock implementation of the preference service
type MockPreferenceService struct {
	mock.Mock
}

// SavePreferences mocks the SavePreferences method
func (m *MockPreferenceService) SavePreferences(ctx context.Context, pref *model.UserPreference) (*model.UserPreference, error) {
	args := m.Called(ctx, pref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserPreference), args.Error(1)
}

// GetPreferences mocks the GetPreferences method
func (m *MockPreferenceService) GetPreferences(ctx context.Context, session string) (*model.UserPreference, error) {
	args := m.Called(ctx, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserPreference), args.Error(1)
}

// MockSavedRecipeService is a mock implementation of the saved recipe service
type MockSavedRecipeService struct {
	mock.Mock
}

// SaveRecipe mocks the SaveRecipe method
func (m *MockSavedRecipeService) SaveRecipe(ctx context.Context, saved *model.SavedRecipe) (*model.SavedRecipe, error) {
	args := m.Called(ctx, saved)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SavedRecipe), args.Error(1)
}

// ListSavedRecipes mocks the ListSavedRecipes method
func (m *MockSavedRecipeService) ListSavedRecipes(ctx context.Context, session string) ([]types.SavedRecipeView, error) {
	args := m.Called(ctx, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.SavedRecipeView), args.Error(1)
}

// DeleteSavedRecipe mocks the DeleteSavedRecipe method
func (m *MockSavedRecipeService) DeleteSavedRecipe(ctx context.Context, session string, recipeID uuid.UUID) error {
	args := m.Called(ctx, session, recipeID)
	return args.Error(0)
}
