package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/pantry-chef/backend/internal/service"
	"github.com/pageza/pantry-chef/backend/internal/types"
)

type IngredientHandler struct {
	recognizer service.IIngredientRecognizer
}

func NewIngredientHandler(recognizer service.IIngredientRecognizer) *IngredientHandler {
	return &IngredientHandler{recognizer: recognizer}
}

func (h *IngredientHandler) RegisterRoutes(router *gin.RouterGroup, aiLimit gin.HandlerFunc) {
	router.POST("/ingredients/recognize", aiLimit, h.Recognize)
}

// Recognize lists the ingredients visible in a base64 encoded photo
func (h *IngredientHandler) Recognize(c *gin.Context) {
	var req types.RecognizeIngredientsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindingError(err))
		return
	}

	ingredients, err := h.recognizer.RecognizeIngredients(c.Request.Context(), strings.TrimSpace(req.ImageBase64))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "ingredients": ingredients})
}
