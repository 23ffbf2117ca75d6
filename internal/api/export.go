package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tastebud-ai/backend/internal/middleware"
	"github.com/tastebud-ai/backend/internal/service"
	"github.com/tastebud-ai/backend/internal/types"
)

type ExportHandler struct {
	exportService *service.ExportService
	shareService  *service.ShareService
	authService   *service.AuthService
}

func NewExportHandler(export *service.ExportService, share *service.ShareService, auth *service.AuthService) *ExportHandler {
	return &ExportHandler{exportService: export, shareService: share, authService: auth}
}

func (h *ExportHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/export", middleware.AuthMiddleware(h.authService))
	{
		group.POST("/recipe/pdf", h.RecipePDF)
		group.POST("/recipe/text", h.RecipeText)
		group.POST("/recipe/share", h.ShareRecipe)
		group.POST("/meal-plan/pdf", h.MealPlanPDF)
		group.POST("/meal-plan/text", h.MealPlanText)
	}
}

func (h *ExportHandler) bindRecipe(c *gin.Context) (*types.GeneratedRecipe, bool) {
	var recipe types.GeneratedRecipe
	if err := c.ShouldBindJSON(&recipe); err != nil || recipe.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe"})
		return nil, false
	}
	return &recipe, true
}

func (h *ExportHandler) bindPlan(c *gin.Context) (*types.MealPlan, bool) {
	var plan types.MealPlan
	if err := c.ShouldBindJSON(&plan); err != nil || len(plan.Days) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal plan"})
		return nil, false
	}
	return &plan, true
}

// RecipePDF renders the posted recipe. With shared storage configured
// the PDF is uploaded and its URL returned; otherwise the bytes are sent
// as a download.
func (h *ExportHandler) RecipePDF(c *gin.Context) {
	recipe, ok := h.bindRecipe(c)
	if !ok {
		return
	}

	data, err := h.exportService.RecipePDF(recipe)
	if err != nil {
		log.Printf("export: recipe PDF failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export recipe to PDF"})
		return
	}

	h.servePDF(c, service.RecipeFileName(recipe), data)
}

func (h *ExportHandler) MealPlanPDF(c *gin.Context) {
	plan, ok := h.bindPlan(c)
	if !ok {
		return
	}

	data, err := h.exportService.MealPlanPDF(plan)
	if err != nil {
		log.Printf("export: meal plan PDF failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export meal plan to PDF"})
		return
	}

	h.servePDF(c, service.MealPlanFileName(plan), data)
}

func (h *ExportHandler) servePDF(c *gin.Context, fileName string, data []byte) {
	if h.shareService != nil && h.shareService.Enabled() {
		url, err := h.shareService.UploadPDF(c.Request.Context(), fileName, data)
		if err == nil {
			c.JSON(http.StatusOK, gin.H{"url": url, "fileName": fileName})
			return
		}
		log.Printf("export: upload failed, falling back to download: %v", err)
	}

	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

func (h *ExportHandler) RecipeText(c *gin.Context) {
	recipe, ok := h.bindRecipe(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": h.exportService.RecipeText(recipe)})
}

func (h *ExportHandler) MealPlanText(c *gin.Context) {
	plan, ok := h.bindPlan(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": h.exportService.MealPlanText(plan)})
}

func (h *ExportHandler) ShareRecipe(c *gin.Context) {
	recipe, ok := h.bindRecipe(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": h.exportService.ShareLink(recipe)})
}
