// Package handler provides HTTP request handlers for the application.
package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/youtube-seguro/video-catalog-go/internal/db"
	"github.com/youtube-seguro/video-catalog-go/pkg/logger"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// success writes the envelope {"status":"success", ...fields}.
func success(c *gin.Context, code int, fields gin.H) {
	body := gin.H{"status": statusSuccess}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(code, body)
}

// respondError maps a classified error onto its HTTP status. Unclassified
// errors become 500 and are logged with the request path.
func respondError(c *gin.Context, err error) {
	kind := db.Kind(err)

	var code int
	message := err.Error()
	switch kind {
	case "NotFound":
		code = http.StatusNotFound
	case "DuplicateKey":
		code = http.StatusConflict
	case "InvalidArgument":
		code = http.StatusBadRequest
	case "StoreUnavailable":
		code = http.StatusServiceUnavailable
		message = "catalog store unavailable"
	default:
		kind = "Internal"
		code = http.StatusInternalServerError
		message = "an unexpected error occurred"
	}

	if code >= http.StatusInternalServerError {
		logger.Log.Error("Request failed",
			zap.Error(err),
			zap.String("kind", kind),
			zap.String("path", c.Request.URL.Path),
		)
	}

	_ = c.Error(err)
	c.JSON(code, gin.H{
		"status":  statusError,
		"error":   kind,
		"message": message,
	})
}

// parseID reads a positive integer path parameter.
func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  statusError,
			"error":   "InvalidArgument",
			"message": "invalid " + name + ": " + c.Param(name),
		})
		return 0, false
	}
	return id, true
}
