package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/pageza/pantry-chef/backend/internal/middleware"
	"github.com/pageza/pantry-chef/backend/internal/service"
	"github.com/pageza/pantry-chef/backend/internal/types"
)

// respondError maps service errors onto API errors and writes the response
func respondError(c *gin.Context, err error) {
	middleware.AbortWithError(c, toAppError(err))
}

func toAppError(err error) *types.AppError {
	var appErr *types.AppError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, service.ErrRecipeNotFound):
		return types.NewNotFound("Recipe not found")
	case errors.Is(err, service.ErrSavedRecipeNotFound):
		return types.NewNotFound("Saved recipe not found")
	case errors.Is(err, service.ErrInvalidImage):
		return types.NewInvalidRequest("Invalid image data", err)
	case errors.Is(err, service.ErrImageTooLarge):
		return types.NewError(types.ErrCodeInvalidRequest, "Image exceeds the upload size limit", http.StatusRequestEntityTooLarge, err)
	case errors.Is(err, service.ErrStorageDisabled):
		return types.NewUnavailable("Image storage is not configured", err)
	case errors.Is(err, service.ErrAIUnavailable):
		return types.NewUnavailable("AI service is temporarily unavailable", err)
	case errors.Is(err, service.ErrEmptyCompletion):
		return types.NewUpstream("AI service returned an empty response", err)
	default:
		return types.NewInternal(err)
	}
}

// bindingError describes a request that failed binding or validation
func bindingError(err error) *types.AppError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return types.NewInvalidRequest(fieldMessage(fe), err)
	}
	return types.NewInvalidRequest("Invalid request body", err)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min":
		return fe.Field() + " must be at least " + fe.Param()
	case "max":
		return fe.Field() + " must be at most " + fe.Param()
	case "difficulty":
		return fe.Field() + " must be one of easy, medium, hard"
	case "uuid":
		return fe.Field() + " must be a valid UUID"
	default:
		return fe.Field() + " is invalid"
	}
}
