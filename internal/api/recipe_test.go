package api

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/pantry-chef/backend/internal/matching"
	"github.com/pageza/pantry-chef/backend/internal/model"
	"github.com/pageza/pantry-chef/backend/internal/parser"
	"github.com/pageza/pantry-chef/backend/internal/service"
	"github.com/pageza/pantry-chef/backend/internal/types"
)

func sampleRecipe() *model.Recipe {
	return &model.Recipe{
		ID:           uuid.New(),
		Name:         "Caprese Salad",
		Cuisine:      "Italian",
		Difficulty:   model.DifficultyEasy,
		CookingTime:  10,
		ServingSize:  2,
		Ingredients:  model.JSONBStringArray{"fresh mozzarella", "tomatoes", "fresh basil"},
		Instructions: model.JSONBStringArray{"Slice", "Layer", "Drizzle"},
		DietaryTags:  model.JSONBStringArray{"vegetarian"},
	}
}

func TestGenerateRecipe(t *testing.T) {
	t.Run("should generate a recipe from cleaned input", func(t *testing.T) {
		router, deps := setupTestRouter(t, nil)
		recipe := sampleRecipe()
		deps.generator.On("GenerateRecipe", mock.Anything, parser.PromptRequest{
			Ingredients:        []string{"tomatoes", "basil"},
			DietaryPreferences: []string{"vegetarian"},
			CuisinePreference:  "Italian",
			Difficulty:         "easy",
		}).Return(recipe, nil)

		w := performJSON(t, router, http.MethodPost, "/api/recipes/generate", map[string]interface{}{
			"ingredients":         []string{" tomatoes ", "basil"},
			"dietary_preferences": []string{"vegetarian", " "},
			"cuisine_preference":  " Italian ",
			"difficulty":          "Easy",
		})

		assert.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "Caprese Salad", body["recipe"].(map[string]interface{})["name"])
		deps.assertExpectations(t)
	})

	t.Run("should reject a missing ingredient list", func(t *testing.T) {
		router, deps := setupTestRouter(t, nil)

		w := performJSON(t, router, http.MethodPost, "/api/recipes/generate", map[string]interface{}{})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeError(t, w)
		assert.False(t, body.Success)
		assert.Equal(t, types.ErrCodeInvalidRequest, body.Code)
		assert.Equal(t, "ingredients is required", body.Error)
		deps.assertExpectations(t)
	})

	t.Run("should reject blank ingredients", func(t *testing.T) {
		router, _ := setupTestRouter(t, nil)

		w := performJSON(t, router, http.MethodPost, "/api/recipes/generate", map[string]interface{}{
			"ingredients": []string{"   "},
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "ingredients is required", decodeError(t, w).Error)
	})

	t.Run("should reject an unknown difficulty", func(t *testing.T) {
		router, _ := setupTestRouter(t, nil)

		w := performJSON(t, router, http.MethodPost, "/api/recipes/generate", map[string]interface{}{
			"ingredients": []string{"eggs"},
			"difficulty":  "impossible",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "difficulty must be one of easy, medium, hard", decodeError(t, w).Error)
	})

	t.Run("should reject malformed JSON", func(t *testing.T) {
		router, _ := setupTestRouter(t, nil)

		w := performJSON(t, router, http.MethodPost, "/api/recipes/generate", `{"ingredients":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid request body", decodeError(t, w).Error)
	})

	t.Run("should report an unavailable AI provider", func(t *testing.T) {
		router, deps := setupTestRouter(t, nil)
		deps.generator.On("GenerateRecipe", mock.Anything, mock.Anything).Return(nil, service.ErrAIUnavailable)

		w := performJSON(t, router, http.MethodPost, "/api/recipes/generate", map[string]interface{}{
			"ingredients": []string{"eggs"},
		})

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, types.ErrCodeServiceUnavailable, decodeError(t, w).Code)
	})

	t.Run("should run the AI limiter before generating", func(t *testing.T) {
		limited := func(c *gin.Context) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"success": false})
		}
		router, deps := setupTestRouter(t, limited)

		w := performJSON(t, router, http.MethodPost, "/api/recipes/generate", map[string]interface{}{
			"ingredients": []string{"eggs"},
		})

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		deps.assertExpectations(t)
	})
}

func TestFindRecipes(t *testing.T) {
	t.Run("should pass the criteria to the engine", func(t *testing.T) {
		router, deps := setupTestRouter(t, nil)
		results := []model.MatchResult{{
			Recipe:             *sampleRecipe(),
			MatchScore:         66.67,
			MissingIngredients: []string{"fresh mozzarella"},
		}}
		deps.recipes.On("FindRecipes", mock.Anything, mock.MatchedBy(func(q matching.Query) bool {
			return assert.ObjectsAreEqual([]string{"tomatoes", "basil"}, q.Ingredients) &&
				q.Difficulty == "easy" &&
				q.MaxCookingTime == 20 &&
				q.MinMatchScore != nil && *q.MinMatchScore == 0 &&
				q.Limit == 5
		})).Return(results, nil)

		w := performJSON(t, router, http.MethodPost, "/api/recipes/find", map[string]interface{}{
			"ingredients":      []string{"tomatoes", "", "basil"},
			"difficulty":       "EASY",
			"max_cooking_time": 20,
			"min_match_score":  0,
			"limit":            5,
		})

		assert.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, float64(1), body["count"])
		recipes := body["recipes"].([]interface{})
		require.Len(t, recipes, 1)
		first := recipes[0].(map[string]interface{})
		assert.Equal(t, 66.67, first["match_score"])
		assert.Equal(t, []interface{}{"fresh mozzarella"}, first["missing_ingredients"])
		deps.assertExpectations(t)
	})

	t.Run("should leave the threshold unset when omitted", func(t *testing.T) {
		router, deps := setupTestRouter(t, nil)
		deps.recipes.On("FindRecipes", mock.Anything, mock.MatchedBy(func(q matching.Query) bool {
			return q.MinMatchScore == nil && q.Limit == 0
		})).Return([]model.MatchResult{}, nil)

		w := performJSON(t, router, http.MethodPost, "/api/recipes/find", map[string]interface{}{
			"ingredients": []string{"rice"},
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(0), decode(t, w)["count"])
		deps.assertExpectations(t)
	})

	t.Run("should reject an out of range threshold", func(t *testing.T) {
		router, _ := setupTestRouter(t, nil)

		w := performJSON(t, router, http.MethodPost, "/api/recipes/find", map[string]interface{}{
			"ingredients":     []string{"rice"},
			"min_match_score": 150,
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "min_match_score must be at most 100", decodeError(t, w).Error)
	})

	t.Run("should reject an empty ingredient list", func(t *testing.T) {
		router, _ := setupTestRouter(t, nil)

		w := performJSON(t, router, http.MethodPost, "/api/recipes/find", map[string]interface{}{
			"ingredients": []string{},
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "ingredients must be at least 1", decodeError(t, w).Error)
	})
}

func TestSubstitutions(t *testing.T) {
	router, _ := setupTestRouter(t, nil)

	w := performJSON(t, router, http.MethodPost, "/api/recipes/substitutions", map[string]interface{}{
		"ingredients": []string{"Butter", "saffron"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, map[string]interface{}{
		"Butter": []interface{}{"margarine", "coconut oil", "olive oil"},
	}, body["substitutions"])
}

func TestListRecipes(t *testing.T) {
	t.Run("should pass search parameters", func(t *testing.T) {
		router, deps := setupTestRouter(t, nil)
		deps.recipes.On("ListRecipes", mock.Anything, service.RecipeFilter{Query: "pasta", Cuisine: "Italian", Limit: 5}).
			Return([]model.Recipe{*sampleRecipe()}, nil)

		w := performJSON(t, router, http.MethodGet, "/api/recipes?q=pasta&cuisine=Italian&limit=5", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(1), decode(t, w)["count"])
		deps.assertExpectations(t)
	})

	t.Run("should reject a bad limit", func(t *testing.T) {
		router, _ := setupTestRouter(t, nil)

		w := performJSON(t, router, http.MethodGet, "/api/recipes?limit=abc", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetRecipe(t *testing.T) {
	t.Run("should return the recipe", func(t *testing.T) {
		router, deps := setupTestRouter(t, nil)
		recipe := sampleRecipe()
		deps.recipes.On("GetRecipe", mock.Anything, recipe.ID).Return(recipe, nil)

		w := performJSON(t, router, http.MethodGet, "/api/recipes/"+recipe.ID.String(), nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, recipe.ID.String(), decode(t, w)["recipe"].(map[string]interface{})["id"])
	})

	t.Run("should return 404 for an unknown recipe", func(t *testing.T) {
		router, deps := setupTestRouter(t, nil)
		deps.recipes.On("GetRecipe", mock.Anything, mock.Anything).Return(nil, service.ErrRecipeNotFound)

		w := performJSON(t, router, http.MethodGet, "/api/recipes/"+uuid.NewString(), nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		body := decodeError(t, w)
		assert.Equal(t, "Recipe not found", body.Error)
		assert.Equal(t, types.ErrCodeNotFound, body.Code)
	})

	t.Run("should return 404 for a malformed id", func(t *testing.T) {
		router, deps := setupTestRouter(t, nil)

		w := performJSON(t, router, http.MethodGet, "/api/recipes/not-a-uuid", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		deps.assertExpectations(t)
	})
}

func TestAdjustServing(t *testing.T) {
	t.Run("should return the adjusted recipe", func(t *testing.T) {
		router, deps := setupTestRouter(t, nil)
		recipe := sampleRecipe()
		adjusted := &types.AdjustedRecipe{Recipe: *recipe, Note: "Recipe adjusted from 2 to 6 servings"}
		adjusted.ServingSize = 6
		deps.recipes.On("AdjustServing", mock.Anything, recipe.ID, 6).Return(adjusted, nil)

		w := performJSON(t, router, http.MethodPost, "/api/recipes/adjust-serving", map[string]interface{}{
			"recipe_id":        recipe.ID.String(),
			"new_serving_size": 6,
		})

		assert.Equal(t, http.StatusOK, w.Code)
		got := decode(t, w)["recipe"].(map[string]interface{})
		assert.Equal(t, float64(6), got["serving_size"])
		assert.Equal(t, "Recipe adjusted from 2 to 6 servings", got["note"])
	})

	t.Run("should reject a serving size below one", func(t *testing.T) {
		router, _ := setupTestRouter(t, nil)

		w := performJSON(t, router, http.MethodPost, "/api/recipes/adjust-serving", map[string]interface{}{
			"recipe_id":        uuid.NewString(),
			"new_serving_size": 0,
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "new_serving_size is required", decodeError(t, w).Error)
	})

	t.Run("should return 404 for an unknown recipe", func(t *testing.T) {
		router, deps := setupTestRouter(t, nil)
		deps.recipes.On("AdjustServing", mock.Anything, mock.Anything, 3).Return(nil, service.ErrRecipeNotFound)

		w := performJSON(t, router, http.MethodPost, "/api/recipes/adjust-serving", map[string]interface{}{
			"recipe_id":        uuid.NewString(),
			"new_serving_size": 3,
		})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUploadImage(t *testing.T) {
	upload := func(t *testing.T, router http.Handler, id string, data []byte) *httptest.ResponseRecorder {
		t.Helper()
		var buf bytes.Buffer
		writer := multipart.NewWriter(&buf)
		part, err := writer.CreateFormFile("image", "dish.png")
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/recipes/"+id+"/image", &buf)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("should store the uploaded image", func(t *testing.T) {
		router, deps := setupTestRouter(t, nil)
		recipe := sampleRecipe()
		url := "https://images.example.com/recipes/dish.png"
		recipe.ImageURL = &url
		deps.images.On("UploadRecipeImage", mock.Anything, recipe.ID, service.ImageUpload{
			Filename: "dish.png",
			Data:     []byte("png-bytes"),
		}).Return(recipe, nil)

		w := upload(t, router, recipe.ID.String(), []byte("png-bytes"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, url, decode(t, w)["recipe"].(map[string]interface{})["image_url"])
		deps.assertExpectations(t)
	})

	t.Run("should report disabled storage", func(t *testing.T) {
		router, deps := setupTestRouter(t, nil)
		deps.images.On("UploadRecipeImage", mock.Anything, mock.Anything, mock.Anything).Return(nil, service.ErrStorageDisabled)

		w := upload(t, router, uuid.NewString(), []byte("png-bytes"))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("should require the image field", func(t *testing.T) {
		router, _ := setupTestRouter(t, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/recipes/"+uuid.NewString()+"/image", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "image file is required", decodeError(t, w).Error)
	})
}
