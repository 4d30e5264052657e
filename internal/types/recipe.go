package types

import "github.com/pageza/pantry-chef/backend/internal/model"

// AdjustedRecipe is a recipe rescaled to a new serving size
type AdjustedRecipe struct {
	model.Recipe
	Note string `json:"note"`
}

// SavedRecipeView is a saved recipe joined with the caller's rating and notes
type SavedRecipeView struct {
	model.Recipe
	UserRating int    `json:"user_rating"`
	UserNotes  string `json:"user_notes"`
}
