// Package parser turns a language model's free-text recipe into a structured
// record. Parsing never fails: anything missing or malformed keeps its default.
package parser

import "github.com/pageza/pantry-chef/backend/internal/model"

// Defaults applied before any line is read
const (
	DefaultDifficulty  = model.DifficultyMedium
	DefaultCookingTime = 30
	DefaultServingSize = 4
)

// Record is the structured form of a generated recipe
type Record struct {
	Name         string          `json:"name"`
	Cuisine      string          `json:"cuisine"`
	Difficulty   string          `json:"difficulty"`
	CookingTime  int             `json:"cooking_time"`
	ServingSize  int             `json:"serving_size"`
	DietaryTags  []string        `json:"dietary_tags"`
	Ingredients  []string        `json:"ingredients"`
	Instructions []string        `json:"instructions"`
	Nutrition    model.Nutrition `json:"nutrition"`
}

// NewRecord returns a record holding every default
func NewRecord() Record {
	return Record{
		Difficulty:   DefaultDifficulty,
		CookingTime:  DefaultCookingTime,
		ServingSize:  DefaultServingSize,
		DietaryTags:  []string{},
		Ingredients:  []string{},
		Instructions: []string{},
	}
}

// Recipe converts the record into a storable recipe
func (r Record) Recipe() model.Recipe {
	return model.Recipe{
		Name:         r.Name,
		Ingredients:  append(model.JSONBStringArray{}, r.Ingredients...),
		Instructions: append(model.JSONBStringArray{}, r.Instructions...),
		Cuisine:      r.Cuisine,
		Difficulty:   r.Difficulty,
		CookingTime:  r.CookingTime,
		ServingSize:  r.ServingSize,
		DietaryTags:  append(model.JSONBStringArray{}, r.DietaryTags...),
		Nutrition:    r.Nutrition,
	}
}
