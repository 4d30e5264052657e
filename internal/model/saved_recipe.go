package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Rating bounds for a saved recipe
const (
	MinRating = 0
	MaxRating = 5
)

// SavedRecipe is a recipe a session has marked as a favorite
type SavedRecipe struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserSession string    `gorm:"size:255;not null;uniqueIndex:idx_saved_recipes_session_recipe" json:"user_session"`
	RecipeID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_saved_recipes_session_recipe" json:"recipe_id"`
	Rating      int       `gorm:"not null;default:0" json:"rating"`
	Notes       string    `gorm:"type:text;not null;default:''" json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (SavedRecipe) TableName() string {
	return "saved_recipes"
}

func (s *SavedRecipe) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
