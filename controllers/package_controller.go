package controllers

import (
	"errors"
	"net/http"
	"strings"

	"backend/config"
	"backend/services"

	"github.com/gin-gonic/gin"
)

func RecommendPackages(c *gin.Context) {
	pkgSvc := services.NewPackageService(config.DB)
	packages, err := pkgSvc.Recommend(c.Request.Context(), currentUserID(c))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, packages)
}

// SuggestPackages is the recommender with query-string goal/tag
// overrides, e.g. ?goal=lose&tags=vegan,low-carb.
func SuggestPackages(c *gin.Context) {
	var tags []string
	if raw := c.Query("tags"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
	}

	pkgSvc := services.NewPackageService(config.DB)
	packages, err := pkgSvc.Suggest(c.Request.Context(), currentUserID(c), c.Query("goal"), tags)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, packages)
}
