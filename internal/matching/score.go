// Package matching scores recipes against the ingredients a user has on hand,
// narrows a collection by auxiliary criteria and suggests substitutions for
// what is missing. Every function here is pure and safe for concurrent use.
package matching

import (
	"math"
	"strings"
)

func normalize(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(strings.TrimSpace(v))
	}
	return out
}

// matches reports whether a recipe ingredient and an available ingredient
// contain one another. Short names match inside longer ones, so "egg" is
// found in "eggplant".
func matches(recipeIngredient string, available []string) bool {
	for _, a := range available {
		if strings.Contains(recipeIngredient, a) || strings.Contains(a, recipeIngredient) {
			return true
		}
	}
	return false
}

// Score returns the percentage of recipeIngredients found among available,
// rounded to two decimals with halves to even. An empty recipe scores 0.
func Score(recipeIngredients, available []string) float64 {
	if len(recipeIngredients) == 0 {
		return 0
	}

	avail := normalize(available)
	matched := 0
	for _, r := range normalize(recipeIngredients) {
		if matches(r, avail) {
			matched++
		}
	}

	score := float64(matched) / float64(len(recipeIngredients)) * 100
	return math.RoundToEven(score*100) / 100
}

// Missing returns the recipe ingredients that Score would not count as
// matched, in recipe order and with their original spelling.
func Missing(recipeIngredients, available []string) []string {
	avail := normalize(available)
	var missing []string
	for i, r := range normalize(recipeIngredients) {
		if !matches(r, avail) {
			missing = append(missing, recipeIngredients[i])
		}
	}
	return missing
}
