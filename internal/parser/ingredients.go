package parser

import "strings"

// Ingredient recognition prompts
const (
	RecognitionSystemPrompt = "You are an expert chef and ingredient recognition assistant. Analyze images and identify all visible ingredients with high accuracy."
	RecognitionPrompt       = "Please identify all the ingredients visible in this image. List them clearly, one per line. Only list the ingredient names, nothing else."
)

// IngredientList reads one ingredient per line, skipping blank lines and
// markdown headings
func IngredientList(text string) []string {
	ingredients := []string{}
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ingredients = append(ingredients, line)
	}
	return ingredients
}
