package controllers

import (
	"net/http"
	"time"

	"backend/config"
	"backend/services"

	"github.com/gin-gonic/gin"
)

func GetProgress(c *gin.Context) {
	progressSvc := services.NewProgressService(config.DB)
	stats, err := progressSvc.Statistics(c.Request.Context(), currentUserID(c), time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute progress"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
