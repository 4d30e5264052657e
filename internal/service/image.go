package service

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/pantry-chef/backend/internal/model"
)

// ImageUpload is a recipe photo received from a client
type ImageUpload struct {
	Filename string
	Data     []byte
}

// ImageService stores recipe photos in object storage
type ImageService struct {
	store   ObjectStore
	recipes *RecipeService
	maxSize int64
	logger  *zap.Logger
}

// NewImageService creates a new ImageService instance. A nil store disables
// uploads.
func NewImageService(store ObjectStore, recipes *RecipeService, maxSize int64, logger *zap.Logger) *ImageService {
	return &ImageService{
		store:   store,
		recipes: recipes,
		maxSize: maxSize,
		logger:  logger,
	}
}

// Enabled reports whether uploads are configured
func (s *ImageService) Enabled() bool {
	return s.store != nil
}

// UploadRecipeImage stores the photo and links it to the recipe
func (s *ImageService) UploadRecipeImage(ctx context.Context, recipeID uuid.UUID, upload ImageUpload) (*model.Recipe, error) {
	if !s.Enabled() {
		return nil, ErrStorageDisabled
	}
	if len(upload.Data) == 0 {
		return nil, ErrInvalidImage
	}
	if s.maxSize > 0 && int64(len(upload.Data)) > s.maxSize {
		return nil, ErrImageTooLarge
	}

	contentType := http.DetectContentType(upload.Data)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("%w: unsupported content type %s", ErrInvalidImage, contentType)
	}

	if _, err := s.recipes.GetRecipe(ctx, recipeID); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("recipes/%s/%s%s", recipeID, uuid.New(), imageExtension(upload.Filename, contentType))
	url, err := s.store.PutObject(ctx, key, contentType, upload.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	s.logger.Info("Uploaded recipe image",
		zap.String("recipe_id", recipeID.String()),
		zap.String("key", key),
		zap.Int("size", len(upload.Data)),
	)
	return s.recipes.SetImage(ctx, recipeID, url)
}

func imageExtension(filename, contentType string) string {
	if ext := strings.ToLower(path.Ext(filename)); ext != "" {
		return ext
	}
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}
