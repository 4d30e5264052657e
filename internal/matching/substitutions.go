package matching

import "strings"

type substitution struct {
	key          string
	alternatives []string
}

// substitutionTable is checked in order; the first key found in an
// ingredient wins.
var substitutionTable = []substitution{
	{"butter", []string{"margarine", "coconut oil", "olive oil"}},
	{"milk", []string{"almond milk", "soy milk", "coconut milk", "oat milk"}},
	{"egg", []string{"flax egg", "chia egg", "applesauce", "banana"}},
	{"flour", []string{"almond flour", "coconut flour", "rice flour"}},
	{"sugar", []string{"honey", "maple syrup", "agave nectar", "stevia"}},
	{"cream", []string{"coconut cream", "cashew cream", "greek yogurt"}},
	{"cheese", []string{"nutritional yeast", "cashew cheese", "tofu"}},
}

// Substitutions maps each ingredient with a known substitute to its
// alternatives. Ingredients without one are left out of the result.
func Substitutions(missing []string) map[string][]string {
	suggestions := make(map[string][]string)
	for _, ingredient := range missing {
		lower := strings.ToLower(ingredient)
		for _, s := range substitutionTable {
			if strings.Contains(lower, s.key) {
				suggestions[ingredient] = append([]string(nil), s.alternatives...)
				break
			}
		}
	}
	return suggestions
}
