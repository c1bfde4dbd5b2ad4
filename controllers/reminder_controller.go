package controllers

import (
	"errors"
	"net/http"

	"backend/config"
	"backend/services"

	"github.com/gin-gonic/gin"
)

func reminderService() *services.ReminderService {
	push, err := services.NewPushService(config.DB)
	if err != nil {
		push = nil // reminders still work, just without push delivery
	}
	return services.NewReminderService(config.DB, push)
}

func GetReminders(c *gin.Context) {
	reminders, err := reminderService().List(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, reminders)
}

func CreateReminder(c *gin.Context) {
	var body services.ReminderRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reminder, err := reminderService().Create(c.Request.Context(), currentUserID(c), body)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingFields), errors.Is(err, services.ErrInvalidTime):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, reminder)
}

func UpdateReminder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Reminder ID is required"})
		return
	}

	var body services.ReminderRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reminder, err := reminderService().Update(c.Request.Context(), currentUserID(c), id, body)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrReminderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Reminder not found"})
		case errors.Is(err, services.ErrInvalidTime):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, reminder)
}

func DeleteReminder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Reminder ID is required"})
		return
	}

	if err := reminderService().Delete(c.Request.Context(), currentUserID(c), id); err != nil {
		if errors.Is(err, services.ErrReminderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reminder not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reminder deleted successfully"})
}

func ToggleReminder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Reminder ID is required"})
		return
	}

	reminder, err := reminderService().Toggle(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		if errors.Is(err, services.ErrReminderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reminder not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, reminder)
}
