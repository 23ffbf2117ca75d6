package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tastebud-ai/backend/internal/types"
)

const (
	defaultDuration      = 3
	defaultMealsPerDay   = 3
	defaultDailyCalories = 2000
)

// MealPlanService builds multi-day meal plans by fanning out per-meal
// generation requests to a TextGenerator. Individual meal failures never
// fail the plan; a fallback meal fills the slot.
type MealPlanService struct {
	generator TextGenerator
}

func NewMealPlanService(generator TextGenerator) *MealPlanService {
	return &MealPlanService{generator: generator}
}

// planRun carries the per-request dedupe state. Dish names generated so
// far are fed back into later prompts so the model avoids repeats; the
// constraint is advisory, a repeated name is kept.
type planRun struct {
	form          types.MealPlanFormData
	mealsPerDay   int
	dailyCalories int

	mu     sync.Mutex
	dishes []string
}

func (r *planRun) previousDishes() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.dishes) == 0 {
		return "None yet"
	}
	return strings.Join(r.dishes, ", ")
}

func (r *planRun) recordDish(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.dishes {
		if d == name {
			return
		}
	}
	r.dishes = append(r.dishes, name)
}

// GenerateMealPlan produces a plan covering the requested duration. Days
// are generated sequentially so earlier dish names inform later prompts;
// within a day the three main meals are generated concurrently.
func (s *MealPlanService) GenerateMealPlan(ctx context.Context, form types.MealPlanFormData) (*types.MealPlan, error) {
	duration := intOr(form.Duration, defaultDuration)
	run := &planRun{
		form:          form,
		mealsPerDay:   intOr(form.MealsPerDay, defaultMealsPerDay),
		dailyCalories: intOr(form.DailyCalorieTarget, defaultDailyCalories),
	}

	days := make([]types.DayPlan, 0, duration)
	for day := 1; day <= duration; day++ {
		dayPlan, err := s.generateDayPlan(ctx, run, day)
		if err != nil {
			return nil, err
		}
		days = append(days, dayPlan)
	}

	target := form.DailyCalorieTarget
	if target == "" {
		target = "2000"
	}

	return &types.MealPlan{
		ID:                  strconv.FormatInt(time.Now().UnixMilli(), 10),
		FormData:            form,
		Days:                days,
		CreatedAt:           time.Now(),
		TotalCaloriesPerDay: target,
	}, nil
}

func (s *MealPlanService) generateDayPlan(ctx context.Context, run *planRun, day int) (types.DayPlan, error) {
	var breakfast, lunch, dinner types.MealItem

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		breakfast = s.generateMeal(gctx, run, "Breakfast", day)
		return nil
	})
	g.Go(func() error {
		lunch = s.generateMeal(gctx, run, "Lunch", day)
		return nil
	})
	g.Go(func() error {
		dinner = s.generateMeal(gctx, run, "Dinner", day)
		return nil
	})
	if err := g.Wait(); err != nil {
		return types.DayPlan{}, err
	}

	plan := types.DayPlan{Day: day, Breakfast: breakfast, Lunch: lunch, Dinner: dinner}

	if run.mealsPerDay >= 4 {
		snack := s.generateMeal(ctx, run, "Snack", day)
		plan.Snack = &snack
	}

	return plan, nil
}

// mealDraft mirrors the JSON shape the model is instructed to return.
type mealDraft struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	Calories     string   `json:"calories"`
	PrepTime     string   `json:"prepTime"`
}

// generateMeal produces one meal. Any failure along the way yields the
// per-type fallback meal instead of an error.
func (s *MealPlanService) generateMeal(ctx context.Context, run *planRun, mealType string, day int) types.MealItem {
	perMeal := mealCalories(run.dailyCalories, run.mealsPerDay)

	response, err := s.generator.GenerateText(ctx, buildMealPrompt(run, mealType, day, perMeal))
	if err != nil {
		log.Printf("mealplan: failed to generate %s for day %d: %v", mealType, day, err)
		return fallbackMeal(mealType, perMeal)
	}

	raw, err := ExtractJSON(response)
	if err != nil {
		log.Printf("mealplan: failed to generate %s for day %d: %v", mealType, day, err)
		return fallbackMeal(mealType, perMeal)
	}

	var draft mealDraft
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		log.Printf("mealplan: failed to generate %s for day %d: %v", mealType, day, err)
		return fallbackMeal(mealType, perMeal)
	}

	if draft.Name != "" {
		run.recordDish(draft.Name)
	}

	meal := types.MealItem{
		Name:         valueOr(draft.Name, mealType+" Dish"),
		Description:  draft.Description,
		Ingredients:  draft.Ingredients,
		Instructions: draft.Instructions,
		Calories:     valueOr(draft.Calories, fmt.Sprintf("%d kcal", perMeal)),
		PrepTime:     valueOr(draft.PrepTime, "20 minutes"),
	}
	if meal.Ingredients == nil {
		meal.Ingredients = []string{}
	}
	if meal.Instructions == nil {
		meal.Instructions = []string{}
	}
	return meal
}

// mealCalories splits the daily target evenly across meals, rounding to
// the nearest whole calorie.
func mealCalories(daily, meals int) int {
	if meals <= 0 {
		meals = defaultMealsPerDay
	}
	return int(math.Round(float64(daily) / float64(meals)))
}

func buildMealPrompt(run *planRun, mealType string, day, perMeal int) string {
	form := run.form
	return fmt.Sprintf(`Generate a unique %s recipe for Day %d of a meal plan.

User Profile:
- Diet: %s
- Cuisine: %s
- Health Goal: %s
- Target Calories per meal: ~%d kcal
- Protein preference: %s
- Allergies/Restrictions: %s
- Budget: %s
- Cooking time: %s

IMPORTANT: Do NOT repeat these dishes: %s

Return ONLY valid JSON:
{
  "name": "Dish Name",
  "description": "Brief description",
  "ingredients": ["ingredient 1", "ingredient 2"],
  "calories": "%d kcal",
  "prepTime": "XX minutes",
  "instructions": ["step 1", "step 2"]
}`,
		mealType, day,
		form.DietaryPreference,
		form.CuisinePreference,
		form.HealthGoal,
		perMeal,
		form.ProteinPreference,
		valueOr(form.Allergies, "None"),
		valueOr(form.BudgetPreference, "Any"),
		valueOr(form.CookingTimePreference, "Any"),
		run.previousDishes(),
		perMeal)
}

// fallbackMeal returns the canned meal for the given type with calories
// set to the computed per-meal target. Unknown types get the lunch meal.
func fallbackMeal(mealType string, calories int) types.MealItem {
	kcal := fmt.Sprintf("%d kcal", calories)

	switch mealType {
	case "Breakfast":
		return types.MealItem{
			Name:         "Healthy Oatmeal Bowl",
			Description:  "A nutritious start to your day",
			Ingredients:  []string{"1 cup oats", "1 cup milk", "1 banana", "1 tbsp honey", "Handful of nuts"},
			Instructions: []string{"Cook oats with milk", "Top with sliced banana", "Drizzle honey and add nuts"},
			Calories:     kcal,
			PrepTime:     "10 minutes",
		}
	case "Dinner":
		return types.MealItem{
			Name:         "Balanced Power Bowl",
			Description:  "A satisfying evening meal",
			Ingredients:  []string{"1 cup brown rice", "Grilled vegetables", "Protein of choice", "Tahini sauce"},
			Instructions: []string{"Cook rice", "Grill vegetables", "Cook protein", "Assemble and add sauce"},
			Calories:     kcal,
			PrepTime:     "30 minutes",
		}
	case "Snack":
		return types.MealItem{
			Name:         "Energy Bites",
			Description:  "Quick energy boost",
			Ingredients:  []string{"Oats", "Peanut butter", "Honey", "Dark chocolate chips"},
			Instructions: []string{"Mix all ingredients", "Roll into balls", "Refrigerate for 30 min"},
			Calories:     kcal,
			PrepTime:     "10 minutes",
		}
	default:
		return types.MealItem{
			Name:         "Garden Fresh Salad Bowl",
			Description:  "A light and refreshing midday meal",
			Ingredients:  []string{"Mixed greens", "Cherry tomatoes", "Cucumber", "Grilled chicken/tofu", "Olive oil dressing"},
			Instructions: []string{"Wash and chop vegetables", "Grill protein", "Combine in bowl", "Add dressing"},
			Calories:     kcal,
			PrepTime:     "15 minutes",
		}
	}
}

func intOr(value string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
