package search

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"dungeonhub/pkg/models"
)

// Source provides the dataset the resource search runs over.
type Source interface {
	Current(ctx context.Context) (*models.MonsterDexData, error)
}

type Handler struct {
	Community Source
}

func NewHandler(community Source) *Handler {
	return &Handler{Community: community}
}

// Resources answers GET /resources?q=&page=&pageSize=. Rows are rebuilt from
// the community dataset on every request; at a few thousand drops that is
// cheaper than keeping a cache coherent with commits.
func (h *Handler) Resources(c *gin.Context) {
	data, err := h.Community.Current(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load community data"})
		return
	}

	rows := FilterRows(BuildResourceRows(data), c.Query("q"))

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "25"))

	c.JSON(http.StatusOK, gin.H{
		"resources":   Paginate(rows, page, pageSize),
		"total":       len(rows),
		"page":        page,
		"pageSize":    pageSize,
		"lastUpdated": data.LastUpdated,
	})
}
