package controllers

import (
	"errors"
	"net/http"

	"backend/config"
	"backend/services"

	"github.com/gin-gonic/gin"
)

func SubmitFeedback(c *gin.Context) {
	var body services.FeedbackRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewFeedbackService(config.DB)
	fb, err := svc.Submit(c.Request.Context(), currentUserID(c), body)
	if err != nil {
		if errors.Is(err, services.ErrInvalidFeedback) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid feedback"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Feedback submitted successfully",
		"feedback": fb,
	})
}

func GetFeedbackHistory(c *gin.Context) {
	svc := services.NewFeedbackService(config.DB)
	feedback, err := svc.History(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, feedback)
}

func GetFeedback(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Feedback ID is required"})
		return
	}

	svc := services.NewFeedbackService(config.DB)
	fb, err := svc.Get(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		if errors.Is(err, services.ErrFeedbackNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Feedback not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, fb)
}
