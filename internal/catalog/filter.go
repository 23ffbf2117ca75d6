package catalog

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/tastebud-ai/backend/internal/types"
)

// Filter holds the four independent filter inputs. Empty fields pass
// everything through; set fields compose with logical AND.
type Filter struct {
	Search     string
	Cuisine    string
	Diet       string
	Difficulty string
}

// Apply filters the loaded recipe set. The free-text filter matches
// case-insensitively as a substring of title, ingredients or cuisine;
// categorical filters match on full-field equality, case-insensitively.
func Apply(recipes []types.Recipe, f Filter) []types.Recipe {
	search := strings.ToLower(strings.TrimSpace(f.Search))

	result := []types.Recipe{}
	for _, r := range recipes {
		if search != "" {
			if !strings.Contains(strings.ToLower(r.Title), search) &&
				!strings.Contains(strings.ToLower(r.Ingredients), search) &&
				!strings.Contains(strings.ToLower(r.Cuisine), search) {
				continue
			}
		}
		if !matchField(r.Cuisine, f.Cuisine) ||
			!matchField(r.Diet, f.Diet) ||
			!matchField(r.Difficulty, f.Difficulty) {
			continue
		}
		result = append(result, r)
	}
	return result
}

func matchField(value, want string) bool {
	if want == "" {
		return true
	}
	return strings.EqualFold(value, want)
}

// Cuisines returns the distinct cuisine options of the loaded set.
func Cuisines(recipes []types.Recipe) []string {
	return options(recipes, func(r types.Recipe) string { return r.Cuisine })
}

// Diets returns the distinct diet options of the loaded set.
func Diets(recipes []types.Recipe) []string {
	return options(recipes, func(r types.Recipe) string { return r.Diet })
}

// Difficulties returns the distinct difficulty options of the loaded set.
func Difficulties(recipes []types.Recipe) []string {
	return options(recipes, func(r types.Recipe) string { return r.Difficulty })
}

// options derives a distinct, sorted option list, removing blank and
// "Unknown" values.
func options(recipes []types.Recipe, field func(types.Recipe) string) []string {
	seen := make(map[string]struct{})
	result := []string{}
	for _, r := range recipes {
		v := strings.TrimSpace(field(r))
		if v == "" || v == "Unknown" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	sort.Strings(result)
	return result
}

// Suggest returns up to limit recipes whose titles fuzzy-match the term,
// best matches first. Used for search-box typeahead; the strict filter
// semantics of Apply are unaffected.
func Suggest(recipes []types.Recipe, term string, limit int) []types.Recipe {
	if strings.TrimSpace(term) == "" || limit <= 0 {
		return []types.Recipe{}
	}

	titles := make([]string, len(recipes))
	for i, r := range recipes {
		titles[i] = r.Title
	}

	matches := fuzzy.Find(term, titles)
	if len(matches) > limit {
		matches = matches[:limit]
	}

	result := make([]types.Recipe, 0, len(matches))
	for _, m := range matches {
		result = append(result, recipes[m.Index])
	}
	return result
}
