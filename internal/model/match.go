package model

// MatchResult is a recipe scored against a set of available ingredients.
// It is derived per request and never persisted.
type MatchResult struct {
	Recipe
	MatchScore         float64             `json:"match_score"`
	MissingIngredients []string            `json:"missing_ingredients,omitempty"`
	Substitutions      map[string][]string `json:"substitutions,omitempty"`
}
