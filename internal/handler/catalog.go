package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/youtube-seguro/video-catalog-go/internal/db/models"
	"github.com/youtube-seguro/video-catalog-go/internal/service"
)

// CatalogHandler serves the public read and view endpoints.
type CatalogHandler struct {
	catalog *service.CatalogService
	views   *service.ViewTracker
	stats   *service.StatsAggregator
}

// NewCatalogHandler creates a new CatalogHandler instance.
func NewCatalogHandler(catalog *service.CatalogService, views *service.ViewTracker, stats *service.StatsAggregator) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		views:   views,
		stats:   stats,
	}
}

// ServiceInfo answers GET /.
func (h *CatalogHandler) ServiceInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "YouTube Seguro API",
		"version": "1.0",
	})
}

// ListVideos answers GET /videos. ?orden=random requests a shuffled list.
func (h *CatalogHandler) ListVideos(c *gin.Context) {
	var order models.ListOrder
	if raw := c.Query("orden"); raw != "" {
		parsed, ok := models.ParseListOrder(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  statusError,
				"error":   "InvalidArgument",
				"message": "orden must be default or random",
			})
			return
		}
		order = parsed
	}

	videos, err := h.catalog.ListVideos(c.Request.Context(), order)
	if err != nil {
		respondError(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"videos": videos})
}

// GetVideo answers GET /videos/:id.
func (h *CatalogHandler) GetVideo(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	video, err := h.catalog.GetVideo(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"video": video})
}

// ListHistory answers GET /videos/:id/historial.
func (h *CatalogHandler) ListHistory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	history, err := h.catalog.ListHistory(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"video_id": id, "historial": history})
}

// ListByCategory answers GET /videos/categoria/:categoria.
func (h *CatalogHandler) ListByCategory(c *gin.Context) {
	category := c.Param("categoria")

	videos, err := h.catalog.ListByCategory(c.Request.Context(), category)
	if err != nil {
		respondError(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"categoria": category, "videos": videos})
}

// Search answers GET /search?q=.
func (h *CatalogHandler) Search(c *gin.Context) {
	query, videos, err := h.catalog.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{
		"query":      query,
		"resultados": len(videos),
		"videos":     videos,
	})
}

// RegisterView answers POST /view/:id.
func (h *CatalogHandler) RegisterView(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if _, err := h.views.RegisterView(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"message": "Vista registrada"})
}

// GetStats answers GET /stats.
func (h *CatalogHandler) GetStats(c *gin.Context) {
	stats, err := h.stats.GetStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"stats": stats})
}

// ListCategories answers GET /categorias.
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"categorias": categories})
}
