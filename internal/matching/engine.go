package matching

import "github.com/pageza/pantry-chef/backend/internal/model"

// Default find policy
const (
	DefaultMinMatchScore = 30
	DefaultLimit         = 10
)

// Engine applies the configured find policy to a recipe collection.
type Engine struct {
	MinMatchScore float64
	Limit         int
}

// NewEngine returns an engine, falling back to the defaults for
// non-positive values.
func NewEngine(minMatchScore float64, limit int) Engine {
	if minMatchScore <= 0 {
		minMatchScore = DefaultMinMatchScore
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return Engine{MinMatchScore: minMatchScore, Limit: limit}
}

// Query describes one find request. Nil or zero fields use the engine policy
// or apply no constraint.
type Query struct {
	Ingredients    []string
	Difficulty     string
	MaxCookingTime int
	DietaryTags    []string
	MinMatchScore  *float64
	Limit          int
}

// Match scores every recipe against the query ingredients, filters by the
// query criteria and returns the best matches, each annotated with its
// missing ingredients and their substitutions.
func (e Engine) Match(recipes []model.Recipe, q Query) []model.MatchResult {
	scored := make([]model.MatchResult, len(recipes))
	for i, r := range recipes {
		scored[i] = model.MatchResult{
			Recipe:     r,
			MatchScore: Score(r.Ingredients, q.Ingredients),
		}
	}

	minScore := e.MinMatchScore
	if q.MinMatchScore != nil {
		minScore = *q.MinMatchScore
	}
	limit := e.Limit
	if q.Limit > 0 {
		limit = q.Limit
	}

	results := Rank(Filter(scored, Criteria{
		Difficulty:     q.Difficulty,
		MaxCookingTime: q.MaxCookingTime,
		DietaryTags:    q.DietaryTags,
		MinMatchScore:  minScore,
	}), limit)

	for i := range results {
		missing := Missing(results[i].Ingredients, q.Ingredients)
		results[i].MissingIngredients = missing
		if subs := Substitutions(missing); len(subs) > 0 {
			results[i].Substitutions = subs
		}
	}
	return results
}
