// Package api exposes the recipe services over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/pantry-chef/backend/internal/service"
)

// HealthChecker reports whether a backing store is reachable
type HealthChecker func(ctx context.Context) error

// Dependencies holds everything the handlers need
type Dependencies struct {
	Recipes      service.IRecipeService
	Generator    service.IRecipeGenerator
	Ingredients  service.IIngredientRecognizer
	Images       service.IImageService
	Preferences  service.IPreferenceService
	SavedRecipes service.ISavedRecipeService
	Health       HealthChecker
	// AILimit guards the endpoints that call the AI provider
	AILimit gin.HandlerFunc
}

// RegisterRoutes registers all API routes under /api
func RegisterRoutes(router *gin.Engine, deps Dependencies) error {
	if err := RegisterValidators(); err != nil {
		return err
	}

	aiLimit := deps.AILimit
	if aiLimit == nil {
		aiLimit = func(c *gin.Context) { c.Next() }
	}

	api := router.Group("/api")
	api.GET("/", HealthCheck(deps.Health))

	recipeHandler := NewRecipeHandler(deps.Recipes, deps.Generator, deps.Images)
	recipeHandler.RegisterRoutes(api, aiLimit)

	ingredientHandler := NewIngredientHandler(deps.Ingredients)
	ingredientHandler.RegisterRoutes(api, aiLimit)

	userHandler := NewUserHandler(deps.Preferences, deps.SavedRecipes)
	userHandler.RegisterRoutes(api)

	return nil
}

// HealthCheck returns the health status of the API
func HealthCheck(check HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		body := gin.H{
			"message":  "Pantry Chef API is running",
			"status":   "healthy",
			"database": "ok",
		}
		if check != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				body["status"] = "degraded"
				body["database"] = "unavailable"
				c.JSON(http.StatusServiceUnavailable, body)
				return
			}
		}
		c.JSON(http.StatusOK, body)
	}
}
