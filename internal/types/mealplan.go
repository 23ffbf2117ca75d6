package types

import "time"

// MealPlanFormData is the intake form for a meal plan request. All fields
// arrive as strings from the client form; numeric fields are parsed with
// defaults at orchestration time.
type MealPlanFormData struct {
	Name                  string `json:"name"`
	Age                   string `json:"age"`
	Gender                string `json:"gender"`
	Height                string `json:"height"`
	Weight                string `json:"weight"`
	DietaryPreference     string `json:"dietaryPreference"`
	CuisinePreference     string `json:"cuisinePreference"`
	HealthGoal            string `json:"healthGoal"`
	DailyCalorieTarget    string `json:"dailyCalorieTarget"`
	ProteinPreference     string `json:"proteinPreference"`
	Allergies             string `json:"allergies"`
	MealsPerDay           string `json:"mealsPerDay"`
	Duration              string `json:"duration"`
	BudgetPreference      string `json:"budgetPreference"`
	CookingTimePreference string `json:"cookingTimePreference"`
}

// MealItem is a single generated meal inside a day plan.
type MealItem struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	Calories     string   `json:"calories"`
	PrepTime     string   `json:"prepTime"`
	ImageURL     string   `json:"imageUrl,omitempty"`
}

// DayPlan holds the meals for one day. Snack is non-nil iff the requested
// meals per day is at least four.
type DayPlan struct {
	Day       int       `json:"day"`
	Breakfast MealItem  `json:"breakfast"`
	Lunch     MealItem  `json:"lunch"`
	Dinner    MealItem  `json:"dinner"`
	Snack     *MealItem `json:"snack,omitempty"`
}

// MealPlan is a full multi-day plan. len(Days) always equals the requested
// duration and day indices run 1..duration in order.
type MealPlan struct {
	ID                  string           `json:"id"`
	FormData            MealPlanFormData `json:"formData"`
	Days                []DayPlan        `json:"days"`
	CreatedAt           time.Time        `json:"createdAt"`
	TotalCaloriesPerDay string           `json:"totalCaloriesPerDay"`
}
