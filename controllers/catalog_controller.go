package controllers

import (
	"errors"
	"net/http"

	"backend/config"
	"backend/models"
	"backend/services"

	"github.com/gin-gonic/gin"
)

// Catalog administration. These sit behind the auth middleware like
// everything else; catalog data is shared across users.

func ListCatalogMeals(c *gin.Context) {
	svc := services.NewCatalogService(config.DB)
	meals, err := svc.ListMeals(c.Request.Context(), c.Query("category"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(meals), "meals": meals})
}

func CreateCatalogMeal(c *gin.Context) {
	var meal models.PredefinedMeal
	if err := c.ShouldBindJSON(&meal); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	meal.ID = 0

	svc := services.NewCatalogService(config.DB)
	if err := svc.SaveMeal(c.Request.Context(), &meal); err != nil {
		catalogError(c, err)
		return
	}
	c.JSON(http.StatusCreated, meal)
}

func UpdateCatalogMeal(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Meal ID is required"})
		return
	}

	svc := services.NewCatalogService(config.DB)
	meal, err := svc.GetMeal(c.Request.Context(), id)
	if err != nil {
		catalogError(c, err)
		return
	}

	if err := c.ShouldBindJSON(meal); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	meal.ID = id

	if err := svc.SaveMeal(c.Request.Context(), meal); err != nil {
		catalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, meal)
}

func DeleteCatalogMeal(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Meal ID is required"})
		return
	}

	svc := services.NewCatalogService(config.DB)
	if err := svc.DeleteMeal(c.Request.Context(), id); err != nil {
		catalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Meal deleted successfully"})
}

func ListCatalogPackages(c *gin.Context) {
	svc := services.NewCatalogService(config.DB)
	pkgs, err := svc.ListPackages(c.Request.Context(), c.Query("goal"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, pkgs)
}

func CreateCatalogPackage(c *gin.Context) {
	var pkg models.MealPackage
	if err := c.ShouldBindJSON(&pkg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	pkg.ID = 0

	svc := services.NewCatalogService(config.DB)
	if err := svc.SavePackage(c.Request.Context(), &pkg); err != nil {
		catalogError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pkg)
}

func DeleteCatalogPackage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Package ID is required"})
		return
	}

	svc := services.NewCatalogService(config.DB)
	if err := svc.DeletePackage(c.Request.Context(), id); err != nil {
		catalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Package deleted successfully"})
}

func catalogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCatalogMealNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Meal not found"})
	case errors.Is(err, services.ErrPackageNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Package not found"})
	case errors.Is(err, services.ErrMissingFields):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
