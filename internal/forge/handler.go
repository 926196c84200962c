package forge

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Catalog *Catalog
}

func NewHandler(catalog *Catalog) *Handler {
	return &Handler{Catalog: catalog}
}

// Recipes answers GET /forge/recipes?q=.
func (h *Handler) Recipes(c *gin.Context) {
	recipes, err := h.Catalog.Recipes()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load forge recipes"})
		return
	}

	results := Search(recipes, c.Query("q"))
	c.JSON(http.StatusOK, gin.H{
		"recipes": results,
		"total":   len(results),
	})
}
