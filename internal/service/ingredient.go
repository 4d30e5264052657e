package service

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pageza/pantry-chef/backend/internal/cache"
	"github.com/pageza/pantry-chef/backend/internal/metrics"
	"github.com/pageza/pantry-chef/backend/internal/parser"
)

// IngredientRecognizer lists the ingredients visible in a photo
type IngredientRecognizer struct {
	vision ImageRecognizer
	cache  cache.Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewIngredientRecognizer creates a new IngredientRecognizer instance
func NewIngredientRecognizer(vision ImageRecognizer, c cache.Cache, ttl time.Duration, logger *zap.Logger) *IngredientRecognizer {
	return &IngredientRecognizer{
		vision: vision,
		cache:  c,
		ttl:    ttl,
		logger: logger,
	}
}

// RecognizeIngredients returns the ingredients the model sees in the image
func (r *IngredientRecognizer) RecognizeIngredients(ctx context.Context, imageBase64 string) ([]string, error) {
	if err := validateImage(imageBase64); err != nil {
		return nil, err
	}

	key := cache.Key("ingredients", imageBase64)
	var ingredients []string
	err := cache.GetJSON(ctx, r.cache, key, &ingredients)
	if err == nil {
		metrics.RecordCacheLookup("ingredients", true)
		return ingredients, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		r.logger.Warn("Ingredient cache lookup failed", zap.Error(err))
	}
	metrics.RecordCacheLookup("ingredients", false)

	text, err := r.vision.DescribeImage(ctx, parser.RecognitionSystemPrompt, parser.RecognitionPrompt, imageBase64)
	if err != nil {
		return nil, err
	}

	ingredients = parser.IngredientList(text)
	if err := cache.SetJSON(ctx, r.cache, key, ingredients, r.ttl); err != nil {
		r.logger.Warn("Failed to cache recognized ingredients", zap.Error(err))
	}

	r.logger.Info("Recognized ingredients", zap.Int("count", len(ingredients)))
	return ingredients, nil
}

// validateImage checks that the payload is base64, optionally inside a data URL
func validateImage(imageBase64 string) error {
	data := imageBase64
	if strings.HasPrefix(data, "data:") {
		_, payload, ok := strings.Cut(data, ",")
		if !ok {
			return ErrInvalidImage
		}
		data = payload
	}
	if strings.TrimSpace(data) == "" {
		return ErrInvalidImage
	}
	if _, err := base64.StdEncoding.DecodeString(data); err != nil {
		return ErrInvalidImage
	}
	return nil
}
