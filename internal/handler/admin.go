package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/youtube-seguro/video-catalog-go/internal/db/models"
	"github.com/youtube-seguro/video-catalog-go/internal/service"
	"github.com/youtube-seguro/video-catalog-go/pkg/logger"
)

// AdminHandler serves the API-key protected catalog management endpoints.
type AdminHandler struct {
	catalog *service.CatalogService
}

// NewAdminHandler creates a new AdminHandler instance.
func NewAdminHandler(catalog *service.CatalogService) *AdminHandler {
	return &AdminHandler{catalog: catalog}
}

// CreateVideo answers POST /admin/videos.
func (h *AdminHandler) CreateVideo(c *gin.Context) {
	var in models.VideoInput
	if err := c.ShouldBindJSON(&in); err != nil {
		logger.Log.Warn("Invalid request payload",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
		)
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  statusError,
			"error":   "InvalidArgument",
			"message": "invalid request payload: " + err.Error(),
		})
		return
	}

	id, err := h.catalog.CreateVideo(c.Request.Context(), &in)
	if err != nil {
		respondError(c, err)
		return
	}

	success(c, http.StatusCreated, gin.H{
		"message":  "Video agregado correctamente",
		"video_id": id,
	})
}

// DeleteVideo answers DELETE /admin/videos/:id. Deleting a missing video
// succeeds.
func (h *AdminHandler) DeleteVideo(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	deleted, err := h.catalog.DeleteVideo(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	success(c, http.StatusOK, gin.H{
		"message": "Video eliminado correctamente",
		"deleted": deleted,
	})
}

// ListBlockedTerms answers GET /admin/palabras-bloqueadas.
func (h *AdminHandler) ListBlockedTerms(c *gin.Context) {
	terms, err := h.catalog.ListBlockedTerms(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"palabras_bloqueadas": terms})
}
