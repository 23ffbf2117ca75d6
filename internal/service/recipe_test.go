package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tastebud-ai/backend/internal/types"
)

func sampleCatalogRecipe(id string) types.Recipe {
	return types.Recipe{
		ID:          id,
		Title:       "Margherita Pizza",
		Ingredients: "Flour, tomatoes, mozzarella",
		Steps:       "Make dough. Bake.",
		Cuisine:     "Italian",
		Diet:        "Vegetarian",
		Difficulty:  "Medium",
		ImageURL:    "/images/pizza.jpg",
	}
}

func sampleGenerated(id string) *types.GeneratedRecipe {
	return &types.GeneratedRecipe{
		ID:          id,
		Title:       "Spicy Chickpea Curry",
		Description: "A warming curry",
		Ingredients: []string{"1 can chickpeas", "1 onion"},
		Steps:       []string{"Fry onion", "Add chickpeas"},
		Cuisine:     "Indian",
		Diet:        "Vegan",
		Difficulty:  "Easy",
		MealType:    "Dinner",
		NutritionalInfo: types.NutritionalInfo{
			Calories: "420 kcal per serving",
			Protein:  "15 g",
			Carbs:    "50 g",
			Fat:      "12 g",
			Fiber:    "10 g",
			Sodium:   "600 mg",
		},
		PrepTime:  "10 minutes",
		CookTime:  "25 minutes",
		TotalTime: "35 minutes",
		CreatedAt: time.Now(),
	}
}

func TestSavedRecipes(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)
	ctx := context.Background()
	userID := uuid.New()

	t.Run("save and list", func(t *testing.T) {
		require.NoError(t, svc.SaveRecipe(ctx, userID, sampleCatalogRecipe("7")))

		recipes, err := svc.SavedRecipes(ctx, userID)
		require.NoError(t, err)
		require.Len(t, recipes, 1)
		assert.Equal(t, "7", recipes[0].ID)
		assert.Equal(t, "Margherita Pizza", recipes[0].Title)
	})

	t.Run("duplicate save rejected", func(t *testing.T) {
		err := svc.SaveRecipe(ctx, userID, sampleCatalogRecipe("7"))
		assert.ErrorIs(t, err, ErrDuplicateRecipe)
	})

	t.Run("other users can save the same recipe", func(t *testing.T) {
		otherID := uuid.New()
		require.NoError(t, svc.SaveRecipe(ctx, otherID, sampleCatalogRecipe("7")))

		recipes, err := svc.SavedRecipes(ctx, userID)
		require.NoError(t, err)
		assert.Len(t, recipes, 1)
	})

	t.Run("unsave", func(t *testing.T) {
		require.NoError(t, svc.UnsaveRecipe(ctx, userID, "7"))

		recipes, err := svc.SavedRecipes(ctx, userID)
		require.NoError(t, err)
		assert.Empty(t, recipes)
	})

	t.Run("unsave missing recipe", func(t *testing.T) {
		err := svc.UnsaveRecipe(ctx, userID, "99")
		assert.ErrorIs(t, err, ErrRecipeNotFound)
	})
}

func TestGeneratedRecipes(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)
	ctx := context.Background()
	userID := uuid.New()

	t.Run("store and list round-trips JSONB fields", func(t *testing.T) {
		require.NoError(t, svc.SaveGeneratedRecipe(ctx, userID, sampleGenerated("1700000000001")))

		recipes, err := svc.GeneratedRecipes(ctx, userID)
		require.NoError(t, err)
		require.Len(t, recipes, 1)

		got := recipes[0]
		assert.Equal(t, "1700000000001", got.ID)
		assert.Equal(t, []string{"1 can chickpeas", "1 onion"}, got.Ingredients)
		assert.Equal(t, "420 kcal per serving", got.NutritionalInfo.Calories)
	})

	t.Run("duplicate store rejected", func(t *testing.T) {
		err := svc.SaveGeneratedRecipe(ctx, userID, sampleGenerated("1700000000001"))
		assert.ErrorIs(t, err, ErrDuplicateRecipe)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, svc.DeleteGeneratedRecipe(ctx, userID, "1700000000001"))
		assert.ErrorIs(t, svc.DeleteGeneratedRecipe(ctx, userID, "1700000000001"), ErrRecipeNotFound)
	})

	t.Run("users see only their own", func(t *testing.T) {
		require.NoError(t, svc.SaveGeneratedRecipe(ctx, userID, sampleGenerated("a")))

		recipes, err := svc.GeneratedRecipes(ctx, uuid.New())
		require.NoError(t, err)
		assert.Empty(t, recipes)
	})
}
