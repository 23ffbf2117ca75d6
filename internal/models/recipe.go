package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tastebud-ai/backend/internal/types"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB.
// A value that fails to decode is coerced to a single-element array rather
// than surfaced as an error, matching the read-path contract for stored
// generated recipes.
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		*a = JSONBStringArray{}
		return nil
	}

	if err := json.Unmarshal(bytes, a); err != nil {
		*a = JSONBStringArray{string(bytes)}
	}
	return nil
}

// JSONBNutrition stores a recipe's nutritional summary in JSONB. Decode
// failures coerce to "Not available" placeholders instead of erroring.
type JSONBNutrition types.NutritionalInfo

// Value implements the driver.Valuer interface
func (n JSONBNutrition) Value() (driver.Value, error) {
	return json.Marshal(n)
}

// Scan implements the sql.Scanner interface
func (n *JSONBNutrition) Scan(value interface{}) error {
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		*n = defaultNutrition()
		return nil
	}

	if err := json.Unmarshal(bytes, n); err != nil {
		*n = defaultNutrition()
	}
	return nil
}

func defaultNutrition() JSONBNutrition {
	return JSONBNutrition{
		Calories: "Not available",
		Protein:  "Not available",
		Carbs:    "Not available",
		Fat:      "Not available",
		Fiber:    "Not available",
		Sodium:   "Not available",
	}
}

// SavedRecipe is a catalog recipe bookmarked by a user. RecipeID is the
// catalog's ephemeral line-number identifier, unique per user.
type SavedRecipe struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	RecipeID    string    `gorm:"size:36;not null" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Ingredients string    `gorm:"type:text" json:"ingredients"`
	Steps       string    `gorm:"type:text" json:"steps"`
	Cuisine     string    `gorm:"size:100" json:"cuisine"`
	Diet        string    `gorm:"size:100" json:"diet"`
	Difficulty  string    `gorm:"size:50" json:"difficulty"`
	ImageURL    string    `gorm:"size:512" json:"image_url"`
	SavedAt     time.Time `gorm:"autoCreateTime" json:"saved_at"`
}

func (SavedRecipe) TableName() string {
	return "saved_recipes"
}

func (r *SavedRecipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// ToRecipe converts the stored row back to its catalog shape.
func (r *SavedRecipe) ToRecipe() types.Recipe {
	return types.Recipe{
		ID:          r.RecipeID,
		Title:       r.Title,
		Ingredients: r.Ingredients,
		Steps:       r.Steps,
		Cuisine:     r.Cuisine,
		Diet:        r.Diet,
		Difficulty:  r.Difficulty,
		ImageURL:    r.ImageURL,
	}
}

// GeneratedRecipe persists an AI-generated recipe for a user. RecipeID is
// the client-side timestamp identifier, unique per user.
type GeneratedRecipe struct {
	ID              uuid.UUID        `gorm:"type:uuid;primaryKey" json:"-"`
	UserID          uuid.UUID        `gorm:"type:uuid;not null;index" json:"-"`
	RecipeID        string           `gorm:"size:36;not null" json:"id"`
	Title           string           `gorm:"size:255;not null" json:"title"`
	Description     string           `gorm:"type:text" json:"description"`
	Ingredients     JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Steps           JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"steps"`
	Cuisine         string           `gorm:"size:100" json:"cuisine"`
	Diet            string           `gorm:"size:100" json:"diet"`
	Difficulty      string           `gorm:"size:50" json:"difficulty"`
	MealType        string           `gorm:"size:50" json:"mealType"`
	NutritionalInfo JSONBNutrition   `gorm:"type:jsonb" json:"nutritionalInfo"`
	PrepTime        string           `gorm:"size:50" json:"prepTime"`
	CookTime        string           `gorm:"size:50" json:"cookTime"`
	TotalTime       string           `gorm:"size:50" json:"totalTime"`
	ImageURL        string           `gorm:"size:512" json:"imageUrl,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
}

func (GeneratedRecipe) TableName() string {
	return "generated_recipes"
}

func (r *GeneratedRecipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// FromGeneratedRecipe builds a row from the service-level recipe.
func FromGeneratedRecipe(userID uuid.UUID, recipe *types.GeneratedRecipe) *GeneratedRecipe {
	return &GeneratedRecipe{
		UserID:          userID,
		RecipeID:        recipe.ID,
		Title:           recipe.Title,
		Description:     recipe.Description,
		Ingredients:     JSONBStringArray(recipe.Ingredients),
		Steps:           JSONBStringArray(recipe.Steps),
		Cuisine:         recipe.Cuisine,
		Diet:            recipe.Diet,
		Difficulty:      recipe.Difficulty,
		MealType:        recipe.MealType,
		NutritionalInfo: JSONBNutrition(recipe.NutritionalInfo),
		PrepTime:        recipe.PrepTime,
		CookTime:        recipe.CookTime,
		TotalTime:       recipe.TotalTime,
		ImageURL:        recipe.ImageURL,
		CreatedAt:       recipe.CreatedAt,
	}
}

// ToGeneratedRecipe converts the row back to the service-level shape.
func (r *GeneratedRecipe) ToGeneratedRecipe() types.GeneratedRecipe {
	return types.GeneratedRecipe{
		ID:              r.RecipeID,
		Title:           r.Title,
		Description:     r.Description,
		Ingredients:     []string(r.Ingredients),
		Steps:           []string(r.Steps),
		Cuisine:         r.Cuisine,
		Diet:            r.Diet,
		Difficulty:      r.Difficulty,
		MealType:        r.MealType,
		NutritionalInfo: types.NutritionalInfo(r.NutritionalInfo),
		PrepTime:        r.PrepTime,
		CookTime:        r.CookTime,
		TotalTime:       r.TotalTime,
		ImageURL:        r.ImageURL,
		CreatedAt:       r.CreatedAt,
	}
}
