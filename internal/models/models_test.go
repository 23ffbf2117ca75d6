package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&User{}, &DietaryPreference{}, &SavedRecipe{}, &GeneratedRecipe{}))
	return db
}

func TestUserBeforeCreate(t *testing.T) {
	db := setupDB(t)

	user := User{Email: "cook@example.com", PasswordHash: "hash", Name: "Cook"}
	require.NoError(t, db.Create(&user).Error)
	assert.NotEqual(t, uuid.Nil, user.ID)

	// Duplicate email is rejected by the unique index.
	dup := User{Email: "cook@example.com", PasswordHash: "hash", Name: "Other"}
	assert.Error(t, db.Create(&dup).Error)
}

func TestJSONBStringArrayScan(t *testing.T) {
	t.Run("valid array", func(t *testing.T) {
		var a JSONBStringArray
		require.NoError(t, a.Scan([]byte(`["flour","sugar"]`)))
		assert.Equal(t, JSONBStringArray{"flour", "sugar"}, a)
	})

	t.Run("nil value", func(t *testing.T) {
		var a JSONBStringArray
		require.NoError(t, a.Scan(nil))
		assert.Empty(t, a)
	})

	t.Run("malformed value coerced to single element", func(t *testing.T) {
		var a JSONBStringArray
		require.NoError(t, a.Scan([]byte(`just some text`)))
		assert.Equal(t, JSONBStringArray{"just some text"}, a)
	})
}

func TestJSONBNutritionScan(t *testing.T) {
	t.Run("valid object", func(t *testing.T) {
		var n JSONBNutrition
		require.NoError(t, n.Scan([]byte(`{"calories":"450 kcal","protein":"20 g"}`)))
		assert.Equal(t, "450 kcal", n.Calories)
		assert.Equal(t, "20 g", n.Protein)
	})

	t.Run("malformed value coerced to defaults", func(t *testing.T) {
		var n JSONBNutrition
		require.NoError(t, n.Scan([]byte(`{broken`)))
		assert.Equal(t, "Not available", n.Calories)
		assert.Equal(t, "Not available", n.Sodium)
	})
}

func TestGeneratedRecipeRoundTrip(t *testing.T) {
	db := setupDB(t)

	user := User{Email: "cook@example.com", PasswordHash: "hash", Name: "Cook"}
	require.NoError(t, db.Create(&user).Error)

	row := GeneratedRecipe{
		UserID:      user.ID,
		RecipeID:    "1700000000000",
		Title:       "Lemon Pasta",
		Description: "Bright and quick",
		Ingredients: JSONBStringArray{"200g spaghetti", "1 lemon"},
		Steps:       JSONBStringArray{"Boil pasta", "Zest lemon"},
		Cuisine:     "Italian",
		MealType:    "Dinner",
		NutritionalInfo: JSONBNutrition{
			Calories: "520 kcal", Protein: "14 g", Carbs: "80 g",
			Fat: "12 g", Fiber: "4 g", Sodium: "300 mg",
		},
	}
	require.NoError(t, db.Create(&row).Error)

	var loaded GeneratedRecipe
	require.NoError(t, db.First(&loaded, "recipe_id = ?", "1700000000000").Error)

	recipe := loaded.ToGeneratedRecipe()
	assert.Equal(t, "Lemon Pasta", recipe.Title)
	assert.Equal(t, []string{"200g spaghetti", "1 lemon"}, recipe.Ingredients)
	assert.Equal(t, []string{"Boil pasta", "Zest lemon"}, recipe.Steps)
	assert.Equal(t, "520 kcal", recipe.NutritionalInfo.Calories)
}
