package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	headerAPIKey      = "X-API-Key"
	headerAuth        = "Authorization"
	bearerPrefix      = "Bearer "
	unauthorizedError = "Unauthorized"
)

// APIKeyAuth guards admin routes with static API keys.
type APIKeyAuth struct {
	apiKeys [][]byte
	logger  *zap.Logger
}

// NewAPIKeyAuth creates a new API key authentication middleware.
// If no keys are provided, all requests will be rejected.
func NewAPIKeyAuth(apiKeys []string, logger *zap.Logger) *APIKeyAuth {
	if logger == nil {
		logger = zap.NewNop()
	}

	keys := make([][]byte, 0, len(apiKeys))
	for _, key := range apiKeys {
		if key != "" {
			keys = append(keys, []byte(key))
		}
	}

	return &APIKeyAuth{
		apiKeys: keys,
		logger:  logger,
	}
}

// Handler returns the gin middleware. It reads the key from X-API-Key first,
// then from Authorization: Bearer <key>, and aborts with 401 otherwise.
func (a *APIKeyAuth) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.isValidAPIKey(extractAPIKey(c.Request)) {
			a.logger.Warn("unauthorized request - invalid or missing API key",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
				zap.String("remoteAddr", c.ClientIP()),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"error":   unauthorizedError,
				"message": "valid API key required",
			})
			return
		}

		c.Next()
	}
}

func extractAPIKey(r *http.Request) string {
	if apiKey := r.Header.Get(headerAPIKey); apiKey != "" {
		return apiKey
	}

	authHeader := r.Header.Get(headerAuth)
	if strings.HasPrefix(authHeader, bearerPrefix) {
		return strings.TrimPrefix(authHeader, bearerPrefix)
	}

	return ""
}

// isValidAPIKey compares against every configured key in constant time.
func (a *APIKeyAuth) isValidAPIKey(providedKey string) bool {
	if providedKey == "" || len(a.apiKeys) == 0 {
		return false
	}

	provided := []byte(providedKey)
	valid := 0
	for _, key := range a.apiKeys {
		valid |= subtle.ConstantTimeCompare(provided, key)
	}

	return valid == 1
}
