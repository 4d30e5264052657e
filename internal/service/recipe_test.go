package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/pantry-chef/backend/internal/matching"
	"github.com/pageza/pantry-chef/backend/internal/model"
	"github.com/pageza/pantry-chef/backend/internal/service"
	"github.com/pageza/pantry-chef/backend/internal/testhelpers"
)

func sampleRecipes() []model.Recipe {
	return []model.Recipe{
		{
			Name: "Caprese Salad", Cuisine: "Italian", Difficulty: "easy", CookingTime: 10, ServingSize: 2,
			Ingredients:  model.JSONBStringArray{"fresh mozzarella", "tomatoes", "fresh basil", "olive oil"},
			Instructions: model.JSONBStringArray{"Slice", "Layer", "Drizzle"},
			DietaryTags:  model.JSONBStringArray{"vegetarian", "gluten-free"},
		},
		{
			Name: "Beef Tacos", Cuisine: "Mexican", Difficulty: "easy", CookingTime: 25, ServingSize: 4,
			Ingredients:  model.JSONBStringArray{"ground beef", "taco shells", "lettuce", "cheddar cheese", "salsa"},
			Instructions: model.JSONBStringArray{"Brown the beef", "Fill the shells"},
		},
		{
			Name: "Pancakes", Cuisine: "American", Difficulty: "easy", CookingTime: 20, ServingSize: 4,
			Ingredients:  model.JSONBStringArray{"flour", "whole milk", "egg", "butter"},
			Instructions: model.JSONBStringArray{"Mix", "Fry"},
			DietaryTags:  model.JSONBStringArray{"vegetarian"},
		},
	}
}

func newRecipeService(t *testing.T) (*service.RecipeService, []model.Recipe) {
	t.Helper()
	db := testhelpers.SetupSQLiteDB(t)
	recipes := testhelpers.SeedRecipes(t, db, sampleRecipes()...)
	return service.NewRecipeService(db, matching.NewEngine(0, 0), zap.NewNop()), recipes
}

func TestRecipeServiceGetRecipe(t *testing.T) {
	svc, recipes := newRecipeService(t)
	ctx := context.Background()

	t.Run("should return a stored recipe", func(t *testing.T) {
		got, err := svc.GetRecipe(ctx, recipes[0].ID)
		require.NoError(t, err)
		assert.Equal(t, "Caprese Salad", got.Name)
		assert.Equal(t, model.JSONBStringArray{"vegetarian", "gluten-free"}, got.DietaryTags)
	})

	t.Run("should report unknown recipes", func(t *testing.T) {
		_, err := svc.GetRecipe(ctx, uuid.New())
		assert.ErrorIs(t, err, service.ErrRecipeNotFound)
	})
}

func TestRecipeServiceListRecipes(t *testing.T) {
	svc, _ := newRecipeService(t)
	ctx := context.Background()

	t.Run("should list every recipe", func(t *testing.T) {
		got, err := svc.ListRecipes(ctx, service.RecipeFilter{})
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("should filter by cuisine ignoring case", func(t *testing.T) {
		got, err := svc.ListRecipes(ctx, service.RecipeFilter{Cuisine: "mexican"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Beef Tacos", got[0].Name)
	})

	t.Run("should search names and ingredients", func(t *testing.T) {
		got, err := svc.ListRecipes(ctx, service.RecipeFilter{Query: "MILK"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Pancakes", got[0].Name)

		got, err = svc.ListRecipes(ctx, service.RecipeFilter{Query: "salad"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Caprese Salad", got[0].Name)
	})

	t.Run("should honor the limit", func(t *testing.T) {
		got, err := svc.ListRecipes(ctx, service.RecipeFilter{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})
}

func TestRecipeServiceFindRecipes(t *testing.T) {
	svc, _ := newRecipeService(t)
	ctx := context.Background()

	t.Run("should rank the catalogue by match score", func(t *testing.T) {
		got, err := svc.FindRecipes(ctx, matching.Query{Ingredients: []string{"tomatoes", "basil", "flour", "egg"}})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Caprese Salad", got[0].Name)
		assert.Equal(t, 50.0, got[0].MatchScore)
		assert.Equal(t, "Pancakes", got[1].Name)
		assert.Equal(t, []string{"whole milk", "butter"}, got[1].MissingIngredients)
	})

	t.Run("should apply dietary tags", func(t *testing.T) {
		got, err := svc.FindRecipes(ctx, matching.Query{
			Ingredients: []string{"tomatoes", "basil", "flour", "egg"},
			DietaryTags: []string{"Gluten-Free"},
		})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Caprese Salad", got[0].Name)
	})

	t.Run("should return nothing below the threshold", func(t *testing.T) {
		got, err := svc.FindRecipes(ctx, matching.Query{Ingredients: []string{"chocolate"}})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("should exclude recipes without a cooking time under a large bound", func(t *testing.T) {
		db := testhelpers.SetupSQLiteDB(t)
		testhelpers.SeedRecipes(t, db, model.Recipe{
			Name: "Saffron Rice", Cuisine: "Spanish", Difficulty: "easy", ServingSize: 2,
			Ingredients:  model.JSONBStringArray{"saffron", "rice"},
			Instructions: model.JSONBStringArray{"Simmer"},
		})
		untimed := service.NewRecipeService(db, matching.NewEngine(0, 0), zap.NewNop())

		got, err := untimed.FindRecipes(ctx, matching.Query{Ingredients: []string{"saffron", "rice"}})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, 0, got[0].CookingTime)

		got, err = untimed.FindRecipes(ctx, matching.Query{Ingredients: []string{"saffron", "rice"}, MaxCookingTime: 1000})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestRecipeServiceAdjustServing(t *testing.T) {
	svc, recipes := newRecipeService(t)
	ctx := context.Background()

	t.Run("should rescale without persisting", func(t *testing.T) {
		got, err := svc.AdjustServing(ctx, recipes[1].ID, 8)
		require.NoError(t, err)
		assert.Equal(t, 8, got.ServingSize)
		assert.Equal(t, "Recipe adjusted from 4 to 8 servings", got.Note)

		stored, err := svc.GetRecipe(ctx, recipes[1].ID)
		require.NoError(t, err)
		assert.Equal(t, 4, stored.ServingSize)
	})

	t.Run("should report unknown recipes", func(t *testing.T) {
		_, err := svc.AdjustServing(ctx, uuid.New(), 2)
		assert.ErrorIs(t, err, service.ErrRecipeNotFound)
	})
}

func TestRecipeServiceSetImage(t *testing.T) {
	svc, recipes := newRecipeService(t)
	ctx := context.Background()

	got, err := svc.SetImage(ctx, recipes[0].ID, "https://cdn.example.com/caprese.jpg")
	require.NoError(t, err)
	require.NotNil(t, got.ImageURL)
	assert.Equal(t, "https://cdn.example.com/caprese.jpg", *got.ImageURL)

	_, err = svc.SetImage(ctx, uuid.New(), "https://cdn.example.com/x.jpg")
	assert.ErrorIs(t, err, service.ErrRecipeNotFound)
}

func TestRecipeServiceCountRecipes(t *testing.T) {
	svc, _ := newRecipeService(t)

	count, err := svc.CountRecipes(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
}
