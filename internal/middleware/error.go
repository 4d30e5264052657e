package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/pantry-chef/backend/internal/types"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

// AbortWithError records err on the context and writes its JSON rendering
func AbortWithError(c *gin.Context, err error) {
	appErr := types.AsAppError(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(appErr.Status, ErrorResponse{
		Success: false,
		Error:   appErr.Message,
		Code:    appErr.Code,
	})
}

// ErrorHandler renders errors attached to the context when the handler did
// not write a response itself, and logs server-side failures
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		last := c.Errors.Last().Err
		appErr := types.AsAppError(last)
		if appErr.Status >= 500 {
			logger.Error("Request failed",
				zap.String("path", c.Request.URL.Path),
				zap.String("code", appErr.Code),
				zap.Error(last),
			)
		}

		if c.Writer.Written() {
			return
		}
		c.AbortWithStatusJSON(appErr.Status, ErrorResponse{
			Success: false,
			Error:   appErr.Message,
			Code:    appErr.Code,
		})
	}
}
