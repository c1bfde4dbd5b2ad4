package controllers

import (
	"errors"
	"net/http"

	"backend/config"
	"backend/services"

	"github.com/gin-gonic/gin"
)

func GetWaterLogs(c *gin.Context) {
	svc := services.NewWaterLogService(config.DB)
	logs, err := svc.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, logs)
}

func CreateWaterLog(c *gin.Context) {
	var body struct {
		Amount float64 `json:"amount" binding:"required"`
		Note   string  `json:"note"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewWaterLogService(config.DB)
	log, err := svc.Create(c.Request.Context(), currentUserID(c), body.Amount, body.Note)
	if err != nil {
		if errors.Is(err, services.ErrInvalidAmount) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, log)
}

func DeleteWaterLog(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Log ID is required"})
		return
	}

	svc := services.NewWaterLogService(config.DB)
	if err := svc.Delete(c.Request.Context(), currentUserID(c), id); err != nil {
		if errors.Is(err, services.ErrWaterLogNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Water log not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Water log deleted"})
}
