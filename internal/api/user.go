package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/pantry-chef/backend/internal/model"
	"github.com/pageza/pantry-chef/backend/internal/service"
	"github.com/pageza/pantry-chef/backend/internal/types"
)

// UserHandler serves session preferences and saved recipes
type UserHandler struct {
	preferences  service.IPreferenceService
	savedRecipes service.ISavedRecipeService
}

func NewUserHandler(preferences service.IPreferenceService, savedRecipes service.ISavedRecipeService) *UserHandler {
	return &UserHandler{
		preferences:  preferences,
		savedRecipes: savedRecipes,
	}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	user := router.Group("/user")
	{
		user.POST("/preferences", h.SavePreferences)
		user.GET("/preferences/:session", h.GetPreferences)
		user.POST("/saved-recipes", h.SaveRecipe)
		user.GET("/saved-recipes/:session", h.ListSavedRecipes)
		user.DELETE("/saved-recipes/:session/:recipe_id", h.DeleteSavedRecipe)
	}
}

func (h *UserHandler) SavePreferences(c *gin.Context) {
	var req types.UserPreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindingError(err))
		return
	}

	session := strings.TrimSpace(req.UserSession)
	if session == "" {
		respondError(c, types.NewInvalidRequest("user_session is required", nil))
		return
	}

	pref, err := h.preferences.SavePreferences(c.Request.Context(), &model.UserPreference{
		UserSession:         session,
		DietaryRestrictions: model.JSONBStringArray(cleanList(req.DietaryRestrictions)),
		FavoriteCuisines:    model.JSONBStringArray(cleanList(req.FavoriteCuisines)),
		Allergies:           model.JSONBStringArray(cleanList(req.Allergies)),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "preferences": pref})
}

// GetPreferences returns the preferences of a session, or null when it has none
func (h *UserHandler) GetPreferences(c *gin.Context) {
	pref, err := h.preferences.GetPreferences(c.Request.Context(), c.Param("session"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "preferences": pref})
}

func (h *UserHandler) SaveRecipe(c *gin.Context) {
	var req types.SaveRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindingError(err))
		return
	}

	recipeID, err := uuid.Parse(req.RecipeID)
	if err != nil {
		respondError(c, types.NewInvalidRequest("recipe_id must be a valid UUID", err))
		return
	}

	saved, err := h.savedRecipes.SaveRecipe(c.Request.Context(), &model.SavedRecipe{
		UserSession: strings.TrimSpace(req.UserSession),
		RecipeID:    recipeID,
		Rating:      req.Rating,
		Notes:       req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "saved_recipe": saved})
}

// ListSavedRecipes returns a session's favorites with the full recipe details
func (h *UserHandler) ListSavedRecipes(c *gin.Context) {
	recipes, err := h.savedRecipes.ListSavedRecipes(c.Request.Context(), c.Param("session"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "recipes": recipes, "count": len(recipes)})
}

func (h *UserHandler) DeleteSavedRecipe(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("recipe_id"))
	if err != nil {
		respondError(c, service.ErrSavedRecipeNotFound)
		return
	}

	if err := h.savedRecipes.DeleteSavedRecipe(c.Request.Context(), c.Param("session"), recipeID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Recipe removed from favorites"})
}
