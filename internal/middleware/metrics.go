package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/youtube-seguro/video-catalog-go/internal/metrics"
)

// Metrics records request count and latency per route template.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		metrics.TrackActiveRequest(true)
		defer metrics.TrackActiveRequest(false)

		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		metrics.RecordAPIRequest(c.Request.Method, endpoint, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
