package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tastebud-ai/backend/internal/models"
	"github.com/tastebud-ai/backend/internal/types"
)

var (
	ErrDuplicateRecipe = errors.New("recipe already saved")
	ErrRecipeNotFound  = errors.New("recipe not found")
)

// RecipeService manages a user's saved catalog recipes and stored
// AI-generated recipes.
type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// SavedRecipes lists the user's bookmarked catalog recipes, most recently
// saved first.
func (s *RecipeService) SavedRecipes(ctx context.Context, userID uuid.UUID) ([]types.Recipe, error) {
	var rows []models.SavedRecipe
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("saved_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list saved recipes: %w", err)
	}

	recipes := make([]types.Recipe, 0, len(rows))
	for _, row := range rows {
		recipes = append(recipes, row.ToRecipe())
	}
	return recipes, nil
}

// SaveRecipe bookmarks a catalog recipe for the user. Saving the same
// recipe twice returns ErrDuplicateRecipe.
func (s *RecipeService) SaveRecipe(ctx context.Context, userID uuid.UUID, recipe types.Recipe) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.SavedRecipe{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipe.ID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check saved recipe: %w", err)
	}
	if count > 0 {
		return ErrDuplicateRecipe
	}

	row := models.SavedRecipe{
		UserID:      userID,
		RecipeID:    recipe.ID,
		Title:       recipe.Title,
		Ingredients: recipe.Ingredients,
		Steps:       recipe.Steps,
		Cuisine:     recipe.Cuisine,
		Diet:        recipe.Diet,
		Difficulty:  recipe.Difficulty,
		ImageURL:    recipe.ImageURL,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to save recipe: %w", err)
	}
	return nil
}

// UnsaveRecipe removes a bookmark. Removing a recipe that is not saved
// returns ErrRecipeNotFound.
func (s *RecipeService) UnsaveRecipe(ctx context.Context, userID uuid.UUID, recipeID string) error {
	result := s.db.WithContext(ctx).Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&models.SavedRecipe{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete saved recipe: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRecipeNotFound
	}
	return nil
}

// GeneratedRecipes lists the user's stored AI-generated recipes, newest
// first.
func (s *RecipeService) GeneratedRecipes(ctx context.Context, userID uuid.UUID) ([]types.GeneratedRecipe, error) {
	var rows []models.GeneratedRecipe
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list generated recipes: %w", err)
	}

	recipes := make([]types.GeneratedRecipe, 0, len(rows))
	for _, row := range rows {
		recipes = append(recipes, row.ToGeneratedRecipe())
	}
	return recipes, nil
}

// SaveGeneratedRecipe stores an AI-generated recipe for the user. The
// same generated recipe cannot be stored twice.
func (s *RecipeService) SaveGeneratedRecipe(ctx context.Context, userID uuid.UUID, recipe *types.GeneratedRecipe) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.GeneratedRecipe{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipe.ID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check generated recipe: %w", err)
	}
	if count > 0 {
		return ErrDuplicateRecipe
	}

	row := models.FromGeneratedRecipe(userID, recipe)
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("failed to store generated recipe: %w", err)
	}
	return nil
}

// DeleteGeneratedRecipe removes a stored generated recipe. A missing
// recipe returns ErrRecipeNotFound.
func (s *RecipeService) DeleteGeneratedRecipe(ctx context.Context, userID uuid.UUID, recipeID string) error {
	result := s.db.WithContext(ctx).Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&models.GeneratedRecipe{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete generated recipe: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRecipeNotFound
	}
	return nil
}
