package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tastebud-ai/backend/internal/middleware"
	"github.com/tastebud-ai/backend/internal/service"
	"github.com/tastebud-ai/backend/internal/types"
)

type RecipeHandler struct {
	recipeService *service.RecipeService
	authService   *service.AuthService
}

func NewRecipeHandler(recipeService *service.RecipeService, authService *service.AuthService) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService, authService: authService}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes", middleware.AuthMiddleware(h.authService))
	{
		recipes.GET("/saved", h.ListSaved)
		recipes.POST("/save", h.Save)
		recipes.DELETE("/saved/:recipeId", h.Unsave)
		recipes.GET("/generated", h.ListGenerated)
		recipes.POST("/generated", h.SaveGenerated)
		recipes.DELETE("/generated/:recipeId", h.DeleteGenerated)
	}
}

func (h *RecipeHandler) ListSaved(c *gin.Context) {
	recipes, err := h.recipeService.SavedRecipes(c.Request.Context(), currentUserID(c))
	if err != nil {
		log.Printf("recipes: failed to list saved: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch saved recipes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *RecipeHandler) Save(c *gin.Context) {
	var recipe types.Recipe
	if err := c.ShouldBindJSON(&recipe); err != nil || recipe.ID == "" || recipe.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe"})
		return
	}

	err := h.recipeService.SaveRecipe(c.Request.Context(), currentUserID(c), recipe)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateRecipe) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("recipes: failed to save: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save recipe"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"recipe": recipe})
}

func (h *RecipeHandler) Unsave(c *gin.Context) {
	err := h.recipeService.UnsaveRecipe(c.Request.Context(), currentUserID(c), c.Param("recipeId"))
	if err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		log.Printf("recipes: failed to unsave: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove recipe"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) ListGenerated(c *gin.Context) {
	recipes, err := h.recipeService.GeneratedRecipes(c.Request.Context(), currentUserID(c))
	if err != nil {
		log.Printf("recipes: failed to list generated: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch generated recipes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *RecipeHandler) SaveGenerated(c *gin.Context) {
	var recipe types.GeneratedRecipe
	if err := c.ShouldBindJSON(&recipe); err != nil || recipe.ID == "" || recipe.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe"})
		return
	}

	err := h.recipeService.SaveGeneratedRecipe(c.Request.Context(), currentUserID(c), &recipe)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateRecipe) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("recipes: failed to store generated: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store recipe"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"recipe": recipe})
}

func (h *RecipeHandler) DeleteGenerated(c *gin.Context) {
	err := h.recipeService.DeleteGeneratedRecipe(c.Request.Context(), currentUserID(c), c.Param("recipeId"))
	if err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		log.Printf("recipes: failed to delete generated: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete recipe"})
		return
	}
	c.Status(http.StatusNoContent)
}
