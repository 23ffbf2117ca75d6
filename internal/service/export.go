package service

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-pdf/fpdf"
	lru "github.com/hashicorp/golang-lru"

	"github.com/tastebud-ai/backend/internal/types"
)

const (
	pdfTextWidth  = 170
	pdfPageBreakY = 250
	pdfTopY       = 20
)

var fileNameSanitizer = regexp.MustCompile(`[^a-zA-Z0-9]`)

// ExportService renders recipes and meal plans to PDF and plain text and
// builds shareable links. Rendered PDFs are cached per recipe so repeated
// exports of the same generated recipe do not re-render.
type ExportService struct {
	shareBaseURL string
	cache        *lru.Cache
}

func NewExportService(shareBaseURL string) (*ExportService, error) {
	cache, err := lru.New(128)
	if err != nil {
		return nil, fmt.Errorf("failed to create export cache: %w", err)
	}
	return &ExportService{shareBaseURL: shareBaseURL, cache: cache}, nil
}

// RecipePDF renders a generated recipe as a PDF document.
func (s *ExportService) RecipePDF(recipe *types.GeneratedRecipe) ([]byte, error) {
	key := "recipe:" + recipe.ID
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]byte), nil
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.Text(20, 30, recipe.Title)

	pdf.SetFont("Helvetica", "", 12)
	y := writeWrapped(pdf, recipe.Description, 20, 50, 6)

	y = 70
	pdf.SetFont("Helvetica", "B", 14)
	y = writeLine(pdf, "Recipe Details:", 20, y, 10)

	pdf.SetFont("Helvetica", "", 10)
	y = writeLine(pdf, "Cuisine: "+recipe.Cuisine, 20, y, 7)
	y = writeLine(pdf, "Diet: "+recipe.Diet, 20, y, 7)
	y = writeLine(pdf, "Difficulty: "+recipe.Difficulty, 20, y, 7)
	y = writeLine(pdf, "Prep Time: "+recipe.PrepTime, 20, y, 7)
	y = writeLine(pdf, "Cook Time: "+recipe.CookTime, 20, y, 15)

	pdf.SetFont("Helvetica", "B", 14)
	y = writeLine(pdf, "Ingredients:", 20, y, 10)

	pdf.SetFont("Helvetica", "", 10)
	for i, ingredient := range recipe.Ingredients {
		y = writeWrapped(pdf, fmt.Sprintf("%d. %s", i+1, ingredient), 20, y, 5)
		y = breakPage(pdf, y)
	}
	y += 10

	pdf.SetFont("Helvetica", "B", 14)
	y = writeLine(pdf, "Instructions:", 20, y, 10)

	pdf.SetFont("Helvetica", "", 10)
	for i, step := range recipe.Steps {
		y = writeWrapped(pdf, fmt.Sprintf("%d. %s", i+1, step), 20, y, 5)
		y = breakPage(pdf, y)
	}

	data, err := renderPDF(pdf)
	if err != nil {
		return nil, err
	}
	s.cache.Add(key, data)
	return data, nil
}

// MealPlanPDF renders a full meal plan as a PDF document.
func (s *ExportService) MealPlanPDF(plan *types.MealPlan) ([]byte, error) {
	key := "mealplan:" + plan.ID
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]byte), nil
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.Text(20, 20, "AI Meal Plan")

	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(20, 30, "Generated for: "+plan.FormData.Name)
	pdf.Text(20, 36, fmt.Sprintf("Diet: %s | Cuisine: %s", plan.FormData.DietaryPreference, plan.FormData.CuisinePreference))
	pdf.Text(20, 42, fmt.Sprintf("Health Goal: %s | Daily Calories: %s", plan.FormData.HealthGoal, plan.FormData.DailyCalorieTarget))

	y := 55.0
	for _, day := range plan.Days {
		y = breakPage(pdf, y)

		pdf.SetFont("Helvetica", "B", 14)
		y = writeLine(pdf, fmt.Sprintf("Day %d", day.Day), 20, y, 8)

		for _, entry := range dayMeals(day) {
			if y > 260 {
				pdf.AddPage()
				y = pdfTopY
			}
			pdf.SetFont("Helvetica", "B", 11)
			y = writeLine(pdf, fmt.Sprintf("%s: %s (%s)", entry.label, entry.meal.Name, entry.meal.Calories), 25, y, 6)

			pdf.SetFont("Helvetica", "", 9)
			y = writeWrapped(pdf, "Ingredients: "+strings.Join(entry.meal.Ingredients, ", "), 30, y, 4)
			y += 4
		}
		y += 6
	}

	data, err := renderPDF(pdf)
	if err != nil {
		return nil, err
	}
	s.cache.Add(key, data)
	return data, nil
}

type labeledMeal struct {
	label string
	meal  types.MealItem
}

func dayMeals(day types.DayPlan) []labeledMeal {
	meals := []labeledMeal{
		{"Breakfast", day.Breakfast},
		{"Lunch", day.Lunch},
		{"Dinner", day.Dinner},
	}
	if day.Snack != nil {
		meals = append(meals, labeledMeal{"Snack", *day.Snack})
	}
	return meals
}

// writeLine writes one unwrapped line and advances the cursor.
func writeLine(pdf *fpdf.Fpdf, text string, x, y, advance float64) float64 {
	pdf.Text(x, y, text)
	return y + advance
}

// writeWrapped writes text wrapped to the content width, one line at a
// time, and returns the new cursor position.
func writeWrapped(pdf *fpdf.Fpdf, text string, x, y, lineHeight float64) float64 {
	for _, line := range pdf.SplitText(text, pdfTextWidth) {
		pdf.Text(x, y, line)
		y += lineHeight
	}
	return y
}

// breakPage starts a new page when the cursor passed the break line.
func breakPage(pdf *fpdf.Fpdf, y float64) float64 {
	if y > pdfPageBreakY {
		pdf.AddPage()
		return pdfTopY
	}
	return y
}

func renderPDF(pdf *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// RecipeText renders the shareable plain-text form of a recipe, with
// numbered ingredients and steps and the share link appended.
func (s *ExportService) RecipeText(recipe *types.GeneratedRecipe) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n%s\n\nIngredients:\n", recipe.Title, recipe.Description)
	for i, ingredient := range recipe.Ingredients {
		fmt.Fprintf(&b, "%d. %s\n", i+1, ingredient)
	}
	b.WriteString("\nInstructions:\n")
	for i, step := range recipe.Steps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}
	fmt.Fprintf(&b, "\nView full recipe: %s", s.ShareLink(recipe))
	return b.String()
}

// MealPlanText renders a meal plan as plain text, one block per day.
func (s *ExportService) MealPlanText(plan *types.MealPlan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "AI Meal Plan for %s\n", plan.FormData.Name)
	fmt.Fprintf(&b, "Diet: %s | Cuisine: %s\n", plan.FormData.DietaryPreference, plan.FormData.CuisinePreference)
	fmt.Fprintf(&b, "Health Goal: %s | Daily Calories: %s\n", plan.FormData.HealthGoal, plan.FormData.DailyCalorieTarget)

	for _, day := range plan.Days {
		fmt.Fprintf(&b, "\nDay %d\n", day.Day)
		for _, entry := range dayMeals(day) {
			fmt.Fprintf(&b, "%s: %s (%s)\n", entry.label, entry.meal.Name, entry.meal.Calories)
			fmt.Fprintf(&b, "  Ingredients: %s\n", strings.Join(entry.meal.Ingredients, ", "))
		}
	}
	return b.String()
}

// sharedRecipe is the payload embedded in a share link. Identifier and
// timestamps are intentionally excluded; the link is self-contained.
type sharedRecipe struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
	Cuisine     string   `json:"cuisine"`
	Diet        string   `json:"diet"`
	Difficulty  string   `json:"difficulty"`
	PrepTime    string   `json:"prepTime"`
	CookTime    string   `json:"cookTime"`
}

// ShareLink builds a self-contained link carrying the recipe as
// base64-encoded JSON in the query string.
func (s *ExportService) ShareLink(recipe *types.GeneratedRecipe) string {
	payload, _ := json.Marshal(sharedRecipe{
		Title:       recipe.Title,
		Description: recipe.Description,
		Ingredients: recipe.Ingredients,
		Steps:       recipe.Steps,
		Cuisine:     recipe.Cuisine,
		Diet:        recipe.Diet,
		Difficulty:  recipe.Difficulty,
		PrepTime:    recipe.PrepTime,
		CookTime:    recipe.CookTime,
	})
	encoded := base64.StdEncoding.EncodeToString(payload)
	return fmt.Sprintf("%s/shared-recipe?data=%s", s.shareBaseURL, encoded)
}

// RecipeFileName derives the download file name from the recipe title.
func RecipeFileName(recipe *types.GeneratedRecipe) string {
	return strings.ToLower(fileNameSanitizer.ReplaceAllString(recipe.Title, "_")) + ".pdf"
}

// MealPlanFileName derives the download file name from the plan owner.
func MealPlanFileName(plan *types.MealPlan) string {
	name := strings.Join(strings.Fields(plan.FormData.Name), "-")
	return "meal-plan-" + strings.ToLower(name) + ".pdf"
}
