package types

// GenerateRecipeRequest is the body of POST /recipes/generate
type GenerateRecipeRequest struct {
	Ingredients        []string `json:"ingredients" binding:"required,min=1,dive,required"`
	DietaryPreferences []string `json:"dietary_preferences"`
	CuisinePreference  string   `json:"cuisine_preference" binding:"omitempty,max=100"`
	Difficulty         string   `json:"difficulty" binding:"omitempty,difficulty"`
}

// FindRecipesRequest is the body of POST /recipes/find
type FindRecipesRequest struct {
	Ingredients    []string `json:"ingredients" binding:"required,min=1"`
	Difficulty     string   `json:"difficulty" binding:"omitempty,difficulty"`
	MaxCookingTime int      `json:"max_cooking_time" binding:"omitempty,min=1"`
	DietaryTags    []string `json:"dietary_tags"`
	MinMatchScore  *float64 `json:"min_match_score" binding:"omitempty,min=0,max=100"`
	Limit          int      `json:"limit" binding:"omitempty,min=1,max=100"`
}

// SubstitutionsRequest is the body of POST /recipes/substitutions
type SubstitutionsRequest struct {
	Ingredients []string `json:"ingredients" binding:"required,min=1"`
}

// AdjustServingRequest is the body of POST /recipes/adjust-serving
type AdjustServingRequest struct {
	RecipeID       string `json:"recipe_id" binding:"required"`
	NewServingSize int    `json:"new_serving_size" binding:"required,min=1"`
}

// RecognizeIngredientsRequest is the body of POST /ingredients/recognize
type RecognizeIngredientsRequest struct {
	ImageBase64 string `json:"image_base64" binding:"required"`
}

// UserPreferenceRequest is the body of POST /user/preferences
type UserPreferenceRequest struct {
	UserSession         string   `json:"user_session" binding:"required,max=255"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
	FavoriteCuisines    []string `json:"favorite_cuisines"`
	Allergies           []string `json:"allergies"`
}

// SaveRecipeRequest is the body of POST /user/saved-recipes
type SaveRecipeRequest struct {
	UserSession string `json:"user_session" binding:"required,max=255"`
	RecipeID    string `json:"recipe_id" binding:"required,uuid"`
	Rating      int    `json:"rating" binding:"min=0,max=5"`
	Notes       string `json:"notes" binding:"max=2000"`
}
