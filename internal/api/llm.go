package api

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tastebud-ai/backend/internal/middleware"
	"github.com/tastebud-ai/backend/internal/service"
	"github.com/tastebud-ai/backend/internal/types"
)

// RecipeGenerator is the recipe-producing side of the LLM service.
type RecipeGenerator interface {
	GenerateRecipe(ctx context.Context, params types.RecipeGenerationParams) (*types.GeneratedRecipe, error)
}

type GenerateHandler struct {
	llmService      RecipeGenerator
	mealPlanService *service.MealPlanService
	authService     *service.AuthService
	rateLimiter     *middleware.RateLimiter
}

func NewGenerateHandler(llm RecipeGenerator, mealPlan *service.MealPlanService, auth *service.AuthService, limiter *middleware.RateLimiter) *GenerateHandler {
	return &GenerateHandler{
		llmService:      llm,
		mealPlanService: mealPlan,
		authService:     auth,
		rateLimiter:     limiter,
	}
}

func (h *GenerateHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/generate", middleware.AuthMiddleware(h.authService))
	if h.rateLimiter != nil {
		group.Use(h.rateLimiter.RateLimitMiddleware())
	}
	{
		group.POST("/recipe", h.GenerateRecipe)
		group.POST("/meal-plan", h.GenerateMealPlan)
	}
}

type GenerateRecipeRequest struct {
	types.RecipeGenerationParams
}

func (h *GenerateHandler) GenerateRecipe(c *gin.Context) {
	var req GenerateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Ingredients == "" || req.Cuisine == "" || req.Diet == "" || req.Difficulty == "" || req.MealType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ingredients, cuisine, diet, difficulty and mealType are required"})
		return
	}

	recipe, err := h.llmService.GenerateRecipe(c.Request.Context(), req.RecipeGenerationParams)
	if err != nil {
		c.JSON(generationStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

func (h *GenerateHandler) GenerateMealPlan(c *gin.Context) {
	var form types.MealPlanFormData
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if form.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	plan, err := h.mealPlanService.GenerateMealPlan(c.Request.Context(), form)
	if err != nil {
		log.Printf("generate: meal plan failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate meal plan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"mealPlan": plan})
}

// generationStatus maps generation failures onto HTTP statuses. Upstream
// throttling surfaces as 429 so clients can back off; configuration
// problems read as service unavailability rather than a client fault.
func generationStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, service.ErrMissingAPIKey),
		errors.Is(err, service.ErrInvalidAPIKey),
		errors.Is(err, service.ErrQuotaExceeded):
		return http.StatusServiceUnavailable
	case errors.Is(err, service.ErrMalformedResponse):
		return http.StatusBadGateway
	default:
		return http.StatusBadGateway
	}
}
