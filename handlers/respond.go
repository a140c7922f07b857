package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	appointmentRepo "slotify/database/repository/appointment"
	providerRepo "slotify/database/repository/provider"
	"slotify/services/scheduling"
	"slotify/utils"

	"go.uber.org/zap"
)

// respondError translates scheduling and repository errors into HTTP
// responses. Pre-commit conflicts and commit-time conflicts are both 409
// but carry different bodies: only the latter means the caller's
// availability view is stale.
func respondError(c *gin.Context, err error) {
	var ve *scheduling.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error()})
		return
	}

	var ce *scheduling.ConflictError
	if errors.As(err, &ce) {
		c.JSON(http.StatusConflict, gin.H{
			"error":  ce.Error(),
			"kind":   ce.Kind,
			"date":   ce.Date,
			"window": ce.Window,
		})
		return
	}

	var cce *scheduling.CommitConflictError
	if errors.As(err, &cce) {
		c.JSON(http.StatusConflict, gin.H{
			"error":  cce.Error(),
			"stale":  true,
			"date":   cce.Date,
			"window": cce.Window,
		})
		return
	}

	if errors.Is(err, appointmentRepo.ErrStaleStatus) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "stale": true})
		return
	}

	if errors.Is(err, appointmentRepo.ErrNotFound) || errors.Is(err, providerRepo.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	utils.GetLogger().Error("request failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
