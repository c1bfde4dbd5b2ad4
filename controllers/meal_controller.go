package controllers

import (
	"errors"
	"net/http"

	"backend/config"
	"backend/services"

	"github.com/gin-gonic/gin"
)

func LogMeal(c *gin.Context) {
	var body services.LogMealRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mealSvc := services.NewMealService(config.DB)
	meal, err := mealSvc.LogMeal(c.Request.Context(), currentUserID(c), body)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingFields), errors.Is(err, services.ErrInvalidCalories):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, meal)
}

// GetMeals returns the last 7 days grouped by date with daily totals.
func GetMeals(c *gin.Context) {
	mealSvc := services.NewMealService(config.DB)
	days, err := mealSvc.RecentMeals(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch meals"})
		return
	}
	c.JSON(http.StatusOK, days)
}

func DeleteMeal(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Meal ID is required"})
		return
	}

	mealSvc := services.NewMealService(config.DB)
	if err := mealSvc.DeleteMeal(c.Request.Context(), currentUserID(c), id); err != nil {
		if errors.Is(err, services.ErrMealNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Meal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Meal deleted successfully"})
}

// MealSuggestions lists catalog meals for a category, respecting the
// user's dietary restrictions.
func MealSuggestions(c *gin.Context) {
	mealSvc := services.NewMealService(config.DB)
	meals, err := mealSvc.Suggestions(c.Request.Context(), currentUserID(c), c.Query("category"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, meals)
}
