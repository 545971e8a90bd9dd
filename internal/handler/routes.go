package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers groups everything RegisterRoutes mounts.
type Handlers struct {
	Catalog *CatalogHandler
	Admin   *AdminHandler
	Health  *HealthHandler
	// AdminAuth guards /admin. It must not be nil.
	AdminAuth gin.HandlerFunc
}

// RegisterRoutes mounts the catalog API on r.
func RegisterRoutes(r *gin.Engine, h Handlers) {
	r.GET("/", h.Catalog.ServiceInfo)

	r.GET("/videos", h.Catalog.ListVideos)
	r.GET("/videos/:id", h.Catalog.GetVideo)
	r.GET("/videos/:id/historial", h.Catalog.ListHistory)
	r.GET("/videos/categoria/:categoria", h.Catalog.ListByCategory)
	r.GET("/search", h.Catalog.Search)
	r.POST("/view/:id", h.Catalog.RegisterView)
	r.GET("/stats", h.Catalog.GetStats)
	r.GET("/categorias", h.Catalog.ListCategories)

	admin := r.Group("/admin", h.AdminAuth)
	admin.POST("/videos", h.Admin.CreateVideo)
	admin.DELETE("/videos/:id", h.Admin.DeleteVideo)
	admin.GET("/palabras-bloqueadas", h.Admin.ListBlockedTerms)

	r.GET("/health/live", h.Health.LivenessProbe)
	r.GET("/health/ready", h.Health.ReadinessProbe)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
