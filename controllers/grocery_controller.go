package controllers

import (
	"errors"
	"net/http"

	"backend/config"
	"backend/services"

	"github.com/gin-gonic/gin"
)

func CreateGroceryList(c *gin.Context) {
	var body struct {
		Name  string                        `json:"name" binding:"required"`
		Items []services.GroceryItemRequest `json:"items"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewGroceryService(config.DB)
	list, err := svc.CreateList(c.Request.Context(), currentUserID(c), body.Name, body.Items)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, list)
}

func GetGroceryLists(c *gin.Context) {
	svc := services.NewGroceryService(config.DB)
	lists, err := svc.Lists(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, lists)
}

func GetActiveGroceryList(c *gin.Context) {
	svc := services.NewGroceryService(config.DB)
	list, err := svc.ActiveList(c.Request.Context(), currentUserID(c))
	if err != nil {
		if errors.Is(err, services.ErrGroceryListNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No active grocery list found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

func UpdateGroceryList(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "List ID is required"})
		return
	}

	var body struct {
		Name      string `json:"name"`
		Completed *bool  `json:"is_completed"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewGroceryService(config.DB)

	if body.Completed != nil && *body.Completed {
		list, err := svc.CompleteList(c.Request.Context(), currentUserID(c), id)
		if err != nil {
			groceryError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
		return
	}

	if body.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}
	list, err := svc.RenameList(c.Request.Context(), currentUserID(c), id, body.Name)
	if err != nil {
		groceryError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func DeleteGroceryList(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "List ID is required"})
		return
	}

	svc := services.NewGroceryService(config.DB)
	if err := svc.DeleteList(c.Request.Context(), currentUserID(c), id); err != nil {
		groceryError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Grocery list deleted successfully"})
}

func AddGroceryItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "List ID is required"})
		return
	}

	var body services.GroceryItemRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewGroceryService(config.DB)
	list, err := svc.AddItem(c.Request.Context(), currentUserID(c), id, body)
	if err != nil {
		groceryError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func UpdateGroceryItem(c *gin.Context) {
	listID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "List ID is required"})
		return
	}
	itemID, ok := parseIDParam(c, "itemId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Item ID is required"})
		return
	}

	var body services.GroceryItemRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewGroceryService(config.DB)
	list, err := svc.UpdateItem(c.Request.Context(), currentUserID(c), listID, itemID, body)
	if err != nil {
		groceryError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func RemoveGroceryItem(c *gin.Context) {
	listID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "List ID is required"})
		return
	}
	itemID, ok := parseIDParam(c, "itemId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Item ID is required"})
		return
	}

	svc := services.NewGroceryService(config.DB)
	list, err := svc.RemoveItem(c.Request.Context(), currentUserID(c), listID, itemID)
	if err != nil {
		groceryError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func groceryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrGroceryListNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Grocery list not found"})
	case errors.Is(err, services.ErrGroceryItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Grocery item not found"})
	case errors.Is(err, services.ErrMissingFields):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
