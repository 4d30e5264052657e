package api

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/pantry-chef/backend/internal/matching"
	"github.com/pageza/pantry-chef/backend/internal/parser"
	"github.com/pageza/pantry-chef/backend/internal/service"
	"github.com/pageza/pantry-chef/backend/internal/types"
)

type RecipeHandler struct {
	recipes   service.IRecipeService
	generator service.IRecipeGenerator
	images    service.IImageService
}

func NewRecipeHandler(recipes service.IRecipeService, generator service.IRecipeGenerator, images service.IImageService) *RecipeHandler {
	return &RecipeHandler{
		recipes:   recipes,
		generator: generator,
		images:    images,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup, aiLimit gin.HandlerFunc) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("/generate", aiLimit, h.GenerateRecipe)
		recipes.POST("/find", h.FindRecipes)
		recipes.POST("/substitutions", h.Substitutions)
		recipes.POST("/adjust-serving", h.AdjustServing)
		recipes.POST("/:id/image", h.UploadImage)
	}
}

// GenerateRecipe asks the AI provider for a recipe using the given ingredients
func (h *RecipeHandler) GenerateRecipe(c *gin.Context) {
	var req types.GenerateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindingError(err))
		return
	}

	ingredients := cleanList(req.Ingredients)
	if len(ingredients) == 0 {
		respondError(c, types.NewInvalidRequest("ingredients is required", nil))
		return
	}

	recipe, err := h.generator.GenerateRecipe(c.Request.Context(), parser.PromptRequest{
		Ingredients:        ingredients,
		DietaryPreferences: cleanList(req.DietaryPreferences),
		CuisinePreference:  strings.TrimSpace(req.CuisinePreference),
		Difficulty:         strings.ToLower(req.Difficulty),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "recipe": recipe})
}

// FindRecipes ranks stored recipes against the available ingredients
func (h *RecipeHandler) FindRecipes(c *gin.Context) {
	var req types.FindRecipesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindingError(err))
		return
	}

	ingredients := cleanList(req.Ingredients)
	if len(ingredients) == 0 {
		respondError(c, types.NewInvalidRequest("ingredients is required", nil))
		return
	}

	results, err := h.recipes.FindRecipes(c.Request.Context(), matching.Query{
		Ingredients:    ingredients,
		Difficulty:     strings.ToLower(req.Difficulty),
		MaxCookingTime: req.MaxCookingTime,
		DietaryTags:    cleanList(req.DietaryTags),
		MinMatchScore:  req.MinMatchScore,
		Limit:          req.Limit,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "recipes": results, "count": len(results)})
}

// Substitutions lists known replacements for each ingredient
func (h *RecipeHandler) Substitutions(c *gin.Context) {
	var req types.SubstitutionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindingError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"substitutions": matching.Substitutions(cleanList(req.Ingredients)),
	})
}

// ListRecipes lists stored recipes, optionally searched and filtered by cuisine
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	filter := service.RecipeFilter{
		Query:   c.Query("q"),
		Cuisine: c.Query("cuisine"),
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			respondError(c, types.NewInvalidRequest("limit must be a positive integer", err))
			return
		}
		filter.Limit = limit
	}

	recipes, err := h.recipes.ListRecipes(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "recipes": recipes, "count": len(recipes)})
}

// GetRecipe returns one stored recipe
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := recipeID(c, c.Param("id"))
	if !ok {
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "recipe": recipe})
}

// AdjustServing returns a recipe rescaled to a new serving size
func (h *RecipeHandler) AdjustServing(c *gin.Context) {
	var req types.AdjustServingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindingError(err))
		return
	}

	id, ok := recipeID(c, req.RecipeID)
	if !ok {
		return
	}

	recipe, err := h.recipes.AdjustServing(c.Request.Context(), id, req.NewServingSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "recipe": recipe})
}

// UploadImage stores a photo for a recipe
func (h *RecipeHandler) UploadImage(c *gin.Context) {
	id, ok := recipeID(c, c.Param("id"))
	if !ok {
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		respondError(c, types.NewInvalidRequest("image file is required", err))
		return
	}

	f, err := file.Open()
	if err != nil {
		respondError(c, types.NewInvalidRequest("image file could not be read", err))
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		respondError(c, types.NewInvalidRequest("image file could not be read", err))
		return
	}

	recipe, err := h.images.UploadRecipeImage(c.Request.Context(), id, service.ImageUpload{
		Filename: file.Filename,
		Data:     data,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "recipe": recipe})
}

// recipeID parses a recipe ID, answering 404 when it cannot name a recipe
func recipeID(c *gin.Context, raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		respondError(c, service.ErrRecipeNotFound)
		return uuid.Nil, false
	}
	return id, true
}

// cleanList trims entries and drops blank ones
func cleanList(values []string) []string {
	cleaned := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			cleaned = append(cleaned, v)
		}
	}
	return cleaned
}
