package community

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dungeonhub/internal/dex"
)

type Handler struct {
	Service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dex", h.getDex)                 // GET /community/dex
	rg.GET("/stats", h.getStats)             // GET /community/stats
	rg.GET("/discoveries", h.getDiscoveries) // GET /community/discoveries
}

func (h *Handler) getDex(c *gin.Context) {
	data, err := h.Service.Current(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "community data unavailable"})
		return
	}
	c.JSON(http.StatusOK, data)
}

func (h *Handler) getStats(c *gin.Context) {
	data, err := h.Service.Current(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "community data unavailable"})
		return
	}

	discovered := 0
	fullyDiscovered := 0
	for _, m := range data.Monsters {
		d := dex.Classify(m)
		if d.Discovered {
			discovered++
		}
		if d.FullyDiscovered {
			fullyDiscovered++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"lastUpdated":      data.LastUpdated,
		"totalMonsters":    data.TotalMonsters,
		"totalDiscoveries": data.TotalDiscoveries,
		"knownMonsters":    len(data.Monsters),
		"discovered":       discovered,
		"fullyDiscovered":  fullyDiscovered,
	})
}

func (h *Handler) getDiscoveries(c *gin.Context) {
	data, err := h.Service.Current(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "community data unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"lastUpdated": data.LastUpdated,
		"items":       dex.BuildDiscoveryList(data.Monsters),
	})
}
