package handlers

import (
	"net/http"

	"detailing/utils"

	"github.com/gin-gonic/gin"
)

// Health reports the last background health snapshot. Mongo down means the booking store is unusable.
func Health(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	state := "ok"
	if !status.Mongo {
		code = http.StatusServiceUnavailable
		state = "degraded"
	}
	c.JSON(code, gin.H{"status": state, "checks": status})
}
