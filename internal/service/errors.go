package service

import "errors"

var (
	ErrRecipeNotFound      = errors.New("recipe not found")
	ErrSavedRecipeNotFound = errors.New("saved recipe not found")
	ErrAIUnavailable       = errors.New("AI provider unavailable")
	ErrEmptyCompletion     = errors.New("AI provider returned no content")
	ErrInvalidImage        = errors.New("invalid image data")
	ErrStorageDisabled     = errors.New("image storage is not configured")
	ErrImageTooLarge       = errors.New("image exceeds the upload size limit")
)
