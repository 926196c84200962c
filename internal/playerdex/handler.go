package playerdex

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dungeonhub/internal/auth"
	"dungeonhub/internal/dex"
)

type Handler struct {
	Repo *Repo
}

func NewHandler(repo *Repo) *Handler {
	return &Handler{Repo: repo}
}

// Dex returns the caller's last synced snapshot.
func (h *Handler) Dex(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	data, err := h.Repo.Get(c.Request.Context(), claims.Account)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load dex"})
		return
	}
	if data == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no dex synced yet"})
		return
	}

	c.JSON(http.StatusOK, data)
}

// Discoveries returns the caller's monsters with per-drop identification
// rollups, ordered as discovered.
func (h *Handler) Discoveries(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	data, err := h.Repo.Get(c.Request.Context(), claims.Account)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load dex"})
		return
	}
	if data == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no dex synced yet"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"discoveries": dex.BuildDiscoveryList(data.Monsters),
		"lastUpdated": data.LastUpdated,
	})
}
