package middleware

import (
	"crypto/hmac"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminKeyMiddleware guards /admin routes with the configured shared secret
// presented in the x-admin-key header. When no key is configured the check is
// skipped entirely - the permissive default is deliberate but risky, so it is
// logged at startup by the router.
func AdminKeyMiddleware(adminKey string, logger *zap.Logger) gin.HandlerFunc {
	key := strings.TrimSpace(adminKey)
	return func(c *gin.Context) {
		if key == "" {
			c.Next()
			return
		}

		presented := strings.TrimSpace(c.GetHeader("x-admin-key"))
		if presented == "" || !hmac.Equal([]byte(presented), []byte(key)) {
			logger.Warn("Rejected admin request with bad key",
				zap.String("path", c.Request.URL.Path),
			)
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid admin key"})
			c.Abort()
			return
		}

		c.Next()
	}
}
