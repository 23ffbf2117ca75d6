package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tastebud-ai/backend/internal/catalog"
)

const defaultSuggestionLimit = 5

type CatalogHandler struct {
	loader *catalog.Loader
}

func NewCatalogHandler(loader *catalog.Loader) *CatalogHandler {
	return &CatalogHandler{loader: loader}
}

func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/catalog")
	{
		group.GET("/recipes", h.ListRecipes)
		group.GET("/options", h.Options)
		group.GET("/suggestions", h.Suggestions)
	}
}

// ListRecipes returns the catalog filtered by the query parameters. An
// unreachable or malformed source yields an empty list, not an error.
func (h *CatalogHandler) ListRecipes(c *gin.Context) {
	recipes := h.loader.Load(c.Request.Context())

	filtered := catalog.Apply(recipes, catalog.Filter{
		Search:     c.Query("q"),
		Cuisine:    c.Query("cuisine"),
		Diet:       c.Query("diet"),
		Difficulty: c.Query("difficulty"),
	})

	c.JSON(http.StatusOK, gin.H{"recipes": filtered, "total": len(filtered)})
}

// Options returns the distinct filter options of the loaded catalog.
func (h *CatalogHandler) Options(c *gin.Context) {
	recipes := h.loader.Load(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"cuisines":     catalog.Cuisines(recipes),
		"diets":        catalog.Diets(recipes),
		"difficulties": catalog.Difficulties(recipes),
	})
}

// Suggestions returns fuzzy title matches for search-box typeahead.
func (h *CatalogHandler) Suggestions(c *gin.Context) {
	limit := defaultSuggestionLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	recipes := h.loader.Load(c.Request.Context())
	matches := catalog.Suggest(recipes, c.Query("q"), limit)

	c.JSON(http.StatusOK, gin.H{"suggestions": matches})
}
