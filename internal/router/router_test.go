package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tastebud-ai/backend/internal/api"
	"github.com/tastebud-ai/backend/internal/catalog"
	"github.com/tastebud-ai/backend/internal/models"
	"github.com/tastebud-ai/backend/internal/service"
)

func TestHealthEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.DietaryPreference{}, &models.SavedRecipe{}, &models.GeneratedRecipe{}))

	authService := service.NewAuthService(db, "test-secret")
	recipeService := service.NewRecipeService(db)
	exportService, err := service.NewExportService("https://tastebud.app")
	require.NoError(t, err)

	handlers := Handlers{
		Auth:     api.NewAuthHandler(authService),
		Recipe:   api.NewRecipeHandler(recipeService, authService),
		Catalog:  api.NewCatalogHandler(catalog.NewLoader("http://127.0.0.1:1/recipes.csv", nil)),
		Generate: api.NewGenerateHandler(nil, nil, authService, nil),
		Export:   api.NewExportHandler(exportService, service.NewShareService(nil, ""), authService),
	}
	engine := SetupRouter(handlers, nil)

	t.Run("health", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "ok")
	})

	t.Run("protected routes are registered and guarded", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/recipes/saved", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("catalog route is public", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/catalog/recipes", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
