package middleware

import (
	"github.com/gin-gonic/gin"
)

// getClientIP keys rate limiting. It relies on gin's proxy handling, so X-Forwarded-For
// and X-Real-IP are only honored from proxies the engine trusts.
func getClientIP(c *gin.Context) string {
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}
