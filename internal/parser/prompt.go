package parser

import (
	"strings"
)

// PromptRequest describes the recipe a caller wants generated
type PromptRequest struct {
	Ingredients        []string
	DietaryPreferences []string
	CuisinePreference  string
	Difficulty         string
}

// SystemPrompt sets up the model for recipe generation
const SystemPrompt = "You are a professional chef and recipe creator. Generate creative, delicious, and practical recipes based on available ingredients."

const layout = `Provide the recipe in the following EXACT format:

NAME: [Recipe Name]
CUISINE: [Cuisine Type]
DIFFICULTY: [easy/medium/hard]
COOKING_TIME: [time in minutes, number only]
SERVING_SIZE: [number of servings, number only]
DIETARY_TAGS: [comma-separated tags like vegetarian, vegan, gluten-free]

INGREDIENTS:
- [ingredient 1 with quantity]
- [ingredient 2 with quantity]
...

INSTRUCTIONS:
1. [step 1]
2. [step 2]
...

NUTRITION (per serving):
Calories: [number]
Protein: [number]g
Carbs: [number]g
Fat: [number]g
Fiber: [number]g
`

// Prompt builds the generation prompt asking for the layout Parse reads
func Prompt(req PromptRequest) string {
	var b strings.Builder
	b.WriteString("Create a detailed recipe using these ingredients: ")
	b.WriteString(strings.Join(req.Ingredients, ", "))
	b.WriteString("\n\n")

	if len(req.DietaryPreferences) > 0 {
		b.WriteString("Dietary preferences: " + strings.Join(req.DietaryPreferences, ", ") + "\n")
	}
	if req.CuisinePreference != "" {
		b.WriteString("Preferred cuisine: " + req.CuisinePreference + "\n")
	}
	if req.Difficulty != "" {
		b.WriteString("Difficulty level: " + req.Difficulty + "\n")
	}

	b.WriteString("\n")
	b.WriteString(layout)
	return b.String()
}
