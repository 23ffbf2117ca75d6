package service

import (
	"encoding/base64"
	"encoding/json"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tastebud-ai/backend/internal/types"
)

func samplePlan() *types.MealPlan {
	snack := types.MealItem{Name: "Energy Bites", Calories: "450 kcal", Ingredients: []string{"Oats", "Honey"}}
	return &types.MealPlan{
		ID: "1700000000002",
		FormData: types.MealPlanFormData{
			Name:               "Alex",
			DietaryPreference:  "Vegetarian",
			CuisinePreference:  "Italian",
			HealthGoal:         "Maintain",
			DailyCalorieTarget: "1800",
		},
		Days: []types.DayPlan{
			{
				Day:       1,
				Breakfast: types.MealItem{Name: "Oatmeal", Calories: "450 kcal", Ingredients: []string{"Oats", "Milk"}},
				Lunch:     types.MealItem{Name: "Salad", Calories: "450 kcal", Ingredients: []string{"Greens"}},
				Dinner:    types.MealItem{Name: "Risotto", Calories: "450 kcal", Ingredients: []string{"Rice", "Stock"}},
				Snack:     &snack,
			},
		},
		TotalCaloriesPerDay: "1800",
	}
}

func newExportService(t *testing.T) *ExportService {
	t.Helper()
	svc, err := NewExportService("https://tastebud.app")
	require.NoError(t, err)
	return svc
}

func TestRecipePDF(t *testing.T) {
	svc := newExportService(t)
	recipe := sampleGenerated("1700000000001")

	data, err := svc.RecipePDF(recipe)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))

	t.Run("cached render is reused", func(t *testing.T) {
		again, err := svc.RecipePDF(recipe)
		require.NoError(t, err)
		assert.Equal(t, data, again)
	})
}

func TestMealPlanPDF(t *testing.T) {
	svc := newExportService(t)

	data, err := svc.MealPlanPDF(samplePlan())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))
}

func TestRecipeText(t *testing.T) {
	svc := newExportService(t)
	recipe := sampleGenerated("1700000000001")

	text := svc.RecipeText(recipe)

	assert.True(t, strings.HasPrefix(text, "Spicy Chickpea Curry\n\nA warming curry"))
	assert.Contains(t, text, "Ingredients:\n1. 1 can chickpeas\n2. 1 onion")
	assert.Contains(t, text, "Instructions:\n1. Fry onion\n2. Add chickpeas")
	assert.Contains(t, text, "View full recipe: https://tastebud.app/shared-recipe?data=")
}

func TestMealPlanText(t *testing.T) {
	svc := newExportService(t)

	text := svc.MealPlanText(samplePlan())

	assert.Contains(t, text, "AI Meal Plan for Alex")
	assert.Contains(t, text, "Day 1")
	assert.Contains(t, text, "Breakfast: Oatmeal (450 kcal)")
	assert.Contains(t, text, "Snack: Energy Bites (450 kcal)")
	assert.Contains(t, text, "Ingredients: Rice, Stock")
}

func TestShareLink(t *testing.T) {
	svc := newExportService(t)
	recipe := sampleGenerated("1700000000001")

	link := svc.ShareLink(recipe)
	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "/shared-recipe", parsed.Path)

	parts := strings.SplitN(link, "?data=", 2)
	require.Len(t, parts, 2)
	decoded, err := base64.StdEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	var payload sharedRecipe
	require.NoError(t, json.Unmarshal(decoded, &payload))
	assert.Equal(t, recipe.Title, payload.Title)
	assert.Equal(t, recipe.Ingredients, payload.Ingredients)
	assert.Equal(t, recipe.Steps, payload.Steps)
}

func TestExportFileNames(t *testing.T) {
	recipe := sampleGenerated("1")
	assert.Equal(t, "spicy_chickpea_curry.pdf", RecipeFileName(recipe))

	plan := samplePlan()
	plan.FormData.Name = "Alex Jordan"
	assert.Equal(t, "meal-plan-alex-jordan.pdf", MealPlanFileName(plan))
}
