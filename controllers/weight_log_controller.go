package controllers

import (
	"errors"
	"net/http"

	"backend/config"
	"backend/services"

	"github.com/gin-gonic/gin"
)

func GetWeightLogs(c *gin.Context) {
	svc := services.NewWeightLogService(config.DB)
	logs, err := svc.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, logs)
}

func CreateWeightLog(c *gin.Context) {
	var body struct {
		Weight float64 `json:"weight" binding:"required"`
		Note   string  `json:"note"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewWeightLogService(config.DB)
	log, err := svc.Create(c.Request.Context(), currentUserID(c), body.Weight, body.Note)
	if err != nil {
		if errors.Is(err, services.ErrInvalidWeight) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid weight value"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, log)
}

func UpdateWeightLog(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Log ID is required"})
		return
	}

	var body struct {
		Weight *float64 `json:"weight"`
		Note   *string  `json:"note"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewWeightLogService(config.DB)
	log, err := svc.Update(c.Request.Context(), currentUserID(c), id, body.Weight, body.Note)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrWeightLogNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Weight log not found"})
		case errors.Is(err, services.ErrInvalidWeight):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid weight value"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, log)
}

func DeleteWeightLog(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Log ID is required"})
		return
	}

	svc := services.NewWeightLogService(config.DB)
	if err := svc.Delete(c.Request.Context(), currentUserID(c), id); err != nil {
		if errors.Is(err, services.ErrWeightLogNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Weight log not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Weight log deleted"})
}
