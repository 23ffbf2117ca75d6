package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tastebud-ai/backend/internal/types"
)

func testRecipes() []types.Recipe {
	return []types.Recipe{
		{ID: "1", Title: "Margherita Pizza", Ingredients: "Flour, tomatoes, mozzarella", Cuisine: "Italian", Diet: "Vegetarian", Difficulty: "Medium"},
		{ID: "2", Title: "Dal Tadka", Ingredients: "Lentils, cumin, ghee", Cuisine: "Indian", Diet: "Vegan", Difficulty: "Easy"},
		{ID: "3", Title: "Beef Bourguignon", Ingredients: "Beef, red wine, onions", Cuisine: "French", Diet: "None", Difficulty: "Hard"},
		{ID: "4", Title: "Mystery Stew", Ingredients: "Leftovers", Cuisine: "Unknown", Diet: "", Difficulty: "Easy"},
	}
}

func TestApply(t *testing.T) {
	recipes := testRecipes()

	t.Run("no filters returns everything", func(t *testing.T) {
		assert.Len(t, Apply(recipes, Filter{}), len(recipes))
	})

	t.Run("text matches title case-insensitively", func(t *testing.T) {
		got := Apply(recipes, Filter{Search: "pizza"})
		require.Len(t, got, 1)
		assert.Equal(t, "1", got[0].ID)
	})

	t.Run("text matches ingredients", func(t *testing.T) {
		got := Apply(recipes, Filter{Search: "red wine"})
		require.Len(t, got, 1)
		assert.Equal(t, "3", got[0].ID)
	})

	t.Run("text matches cuisine", func(t *testing.T) {
		got := Apply(recipes, Filter{Search: "indian"})
		require.Len(t, got, 1)
		assert.Equal(t, "2", got[0].ID)
	})

	t.Run("categorical filters are exact and case-insensitive", func(t *testing.T) {
		got := Apply(recipes, Filter{Cuisine: "italian"})
		require.Len(t, got, 1)
		assert.Equal(t, "1", got[0].ID)

		// Substring of a field value does not match categorically.
		assert.Empty(t, Apply(recipes, Filter{Cuisine: "ital"}))
	})

	t.Run("filters compose with AND", func(t *testing.T) {
		got := Apply(recipes, Filter{Search: "l", Difficulty: "Easy"})
		ids := []string{}
		for _, r := range got {
			ids = append(ids, r.ID)
		}
		assert.Equal(t, []string{"2", "4"}, ids)

		assert.Empty(t, Apply(recipes, Filter{Cuisine: "Italian", Difficulty: "Hard"}))
	})

	t.Run("idempotent", func(t *testing.T) {
		f := Filter{Search: "o", Difficulty: "Medium"}
		once := Apply(recipes, f)
		twice := Apply(once, f)
		assert.Equal(t, once, twice)
	})
}

func TestOptionLists(t *testing.T) {
	recipes := testRecipes()

	// Blank and "Unknown" values are removed; results sorted.
	assert.Equal(t, []string{"French", "Indian", "Italian"}, Cuisines(recipes))
	assert.Equal(t, []string{"None", "Vegan", "Vegetarian"}, Diets(recipes))
	assert.Equal(t, []string{"Easy", "Hard", "Medium"}, Difficulties(recipes))

	t.Run("duplicates removed", func(t *testing.T) {
		dups := append(testRecipes(), types.Recipe{ID: "5", Cuisine: "Italian", Title: "Carbonara"})
		assert.Equal(t, []string{"French", "Indian", "Italian"}, Cuisines(dups))
	})
}

func TestSuggest(t *testing.T) {
	recipes := testRecipes()

	t.Run("fuzzy title match", func(t *testing.T) {
		got := Suggest(recipes, "marg pizza", 5)
		require.NotEmpty(t, got)
		assert.Equal(t, "Margherita Pizza", got[0].Title)
	})

	t.Run("limit respected", func(t *testing.T) {
		got := Suggest(recipes, "a", 2)
		assert.LessOrEqual(t, len(got), 2)
	})

	t.Run("blank term", func(t *testing.T) {
		assert.Empty(t, Suggest(recipes, "  ", 5))
	})
}
