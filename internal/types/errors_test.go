package types

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAsAppError(t *testing.T) {
	t.Run("should unwrap a wrapped AppError", func(t *testing.T) {
		notFound := NewNotFound("Recipe not found")
		got := AsAppError(fmt.Errorf("lookup: %w", notFound))
		assert.Same(t, notFound, got)
		assert.Equal(t, http.StatusNotFound, got.Status)
	})

	t.Run("should treat unknown errors as internal", func(t *testing.T) {
		cause := errors.New("boom")
		got := AsAppError(cause)
		assert.Equal(t, ErrCodeInternalError, got.Code)
		assert.Equal(t, http.StatusInternalServerError, got.Status)
		assert.ErrorIs(t, got, cause)
	})
}

func TestAppErrorMessage(t *testing.T) {
	assert.Equal(t, "model failed: timeout", NewUpstream("model failed", errors.New("timeout")).Error())
	assert.Equal(t, "Recipe not found", NewNotFound("Recipe not found").Error())
}
