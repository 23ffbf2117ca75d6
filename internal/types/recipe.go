package types

import "time"

// Recipe is a catalog entry loaded from the bundled CSV resource. The ID is
// the 1-based data line index in the source file; gaps appear where rows
// were dropped during parsing.
type Recipe struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Ingredients string `json:"ingredients"`
	Steps       string `json:"steps"`
	Cuisine     string `json:"cuisine"`
	Diet        string `json:"diet"`
	Difficulty  string `json:"difficulty"`
	ImageURL    string `json:"image_url"`
}

// NutritionalInfo carries free-text quantity strings, not numbers; the
// upstream model returns values like "450 kcal per serving".
type NutritionalInfo struct {
	Calories string `json:"calories"`
	Protein  string `json:"protein"`
	Carbs    string `json:"carbs"`
	Fat      string `json:"fat"`
	Fiber    string `json:"fiber"`
	Sodium   string `json:"sodium"`
}

// GeneratedRecipe is a recipe produced by the AI generation client.
type GeneratedRecipe struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Ingredients     []string        `json:"ingredients"`
	Steps           []string        `json:"steps"`
	Cuisine         string          `json:"cuisine"`
	Diet            string          `json:"diet"`
	Difficulty      string          `json:"difficulty"`
	MealType        string          `json:"mealType"`
	NutritionalInfo NutritionalInfo `json:"nutritionalInfo"`
	PrepTime        string          `json:"prepTime"`
	CookTime        string          `json:"cookTime"`
	TotalTime       string          `json:"totalTime"`
	ImageURL        string          `json:"imageUrl,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// RecipeGenerationParams are the structured inputs embedded into the
// generation prompt. Optional fields are included only when present.
type RecipeGenerationParams struct {
	Ingredients        string `json:"ingredients"`
	Cuisine            string `json:"cuisine"`
	MealType           string `json:"mealType"`
	Diet               string `json:"diet"`
	Difficulty         string `json:"difficulty"`
	Servings           string `json:"servings,omitempty"`
	CookingTime        string `json:"cookingTime,omitempty"`
	Allergens          string `json:"allergens,omitempty"`
	SpiceLevel         string `json:"spiceLevel,omitempty"`
	HealthGoals        string `json:"healthGoals,omitempty"`
	EquipmentAvailable string `json:"equipmentAvailable,omitempty"`
	BudgetLevel        string `json:"budgetLevel,omitempty"`
}
