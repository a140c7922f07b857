package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"slotify/utils"
)

// HealthHandler reports the latest stored health snapshot of Mongo and
// the Redis clients.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	c.JSON(http.StatusOK, gin.H{"status": "ok", "services": status})
}
