package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AdminKeyHeader carries the static admin key.
const AdminKeyHeader = "X-Admin-Key"

// AdminKeyMiddleware guards admin routes with a static key taken from X-Admin-Key
// or an "Authorization: Bearer" header. An empty configured key rejects every request.
func AdminKeyMiddleware(adminKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader(AdminKeyHeader)
		if provided == "" {
			if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
				provided = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}
		if provided == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": "unauthorized", "message": "missing admin key"})
			return
		}

		if adminKey == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(adminKey)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": "unauthorized", "message": "unauthorized admin access"})
			return
		}

		c.Set("isAdmin", true)
		c.Next()
	}
}
