package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tastebud-ai/backend/internal/api"
	"github.com/tastebud-ai/backend/internal/middleware"
)

// Handlers bundles the route-owning handlers for router setup.
type Handlers struct {
	Auth     *api.AuthHandler
	Recipe   *api.RecipeHandler
	Catalog  *api.CatalogHandler
	Generate *api.GenerateHandler
	Export   *api.ExportHandler
}

// SetupRouter configures the application routes
func SetupRouter(h Handlers, allowedOrigins []string) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS(allowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	root := router.Group("/api")
	h.Auth.RegisterRoutes(root)
	h.Recipe.RegisterRoutes(root)
	h.Catalog.RegisterRoutes(root)
	h.Generate.RegisterRoutes(root)
	h.Export.RegisterRoutes(root)

	return router
}
