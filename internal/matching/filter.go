package matching

import (
	"sort"
	"strings"

	"github.com/pageza/pantry-chef/backend/internal/model"
)

// Criteria narrows a scored recipe collection. Zero values mean no constraint.
type Criteria struct {
	Difficulty     string
	MaxCookingTime int
	DietaryTags    []string
	MinMatchScore  float64
}

// Filter returns the results that satisfy every active criterion, in input order.
func Filter(results []model.MatchResult, c Criteria) []model.MatchResult {
	difficulty := strings.ToLower(c.Difficulty)

	var tags map[string]struct{}
	if len(c.DietaryTags) > 0 {
		tags = make(map[string]struct{}, len(c.DietaryTags))
		for _, t := range c.DietaryTags {
			tags[strings.ToLower(t)] = struct{}{}
		}
	}

	filtered := make([]model.MatchResult, 0, len(results))
	for _, r := range results {
		if difficulty != "" && strings.ToLower(r.Difficulty) != difficulty {
			continue
		}
		// a recipe without a cooking time never satisfies a bound
		if c.MaxCookingTime > 0 && (r.CookingTime <= 0 || r.CookingTime > c.MaxCookingTime) {
			continue
		}
		if tags != nil && !hasAnyTag(r.DietaryTags, tags) {
			continue
		}
		if c.MinMatchScore > 0 && r.MatchScore < c.MinMatchScore {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

func hasAnyTag(recipeTags []string, wanted map[string]struct{}) bool {
	for _, t := range recipeTags {
		if _, ok := wanted[strings.ToLower(t)]; ok {
			return true
		}
	}
	return false
}

// Rank orders results by match score, highest first, keeping the input order
// of ties, and truncates to limit when limit is positive.
func Rank(results []model.MatchResult, limit int) []model.MatchResult {
	ranked := make([]model.MatchResult, len(results))
	copy(ranked, results)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MatchScore > ranked[j].MatchScore
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
