package controllers

import (
	"errors"
	"net/http"
	"strings"

	"backend/config"
	"backend/services"

	"github.com/gin-gonic/gin"
)

const (
	defaultSearchLimit     = 15
	defaultSuggestionLimit = 5
)

// SearchNutrition runs the cascading catalog search, falling back to
// the external food database when the catalog has no match.
func SearchNutrition(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter is required"})
		return
	}

	searchSvc := services.NewSearchService(config.DB)
	results, err := searchSvc.SearchMeals(c.Request.Context(), query, defaultSearchLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if len(results) == 0 {
		external := services.NewNutritionFallbackService()
		if foods, err := external.Search(query); err == nil {
			c.JSON(http.StatusOK, gin.H{
				"source": "external",
				"meals":  foods,
				"searchInfo": gin.H{
					"query":        query,
					"strategy":     "external_api",
					"resultsCount": len(foods),
				},
			})
			return
		}
	}

	scores := make([]gin.H, 0, len(results))
	for _, r := range results {
		scores = append(scores, gin.H{"name": r.Meal.Name, "relevance": r.Relevance})
	}
	c.JSON(http.StatusOK, gin.H{
		"source": "predefined",
		"meals":  results,
		"searchInfo": gin.H{
			"query":           query,
			"strategy":        "enhanced_search",
			"resultsCount":    len(results),
			"relevanceScores": scores,
		},
	})
}

func SearchSuggestions(c *gin.Context) {
	searchSvc := services.NewSearchService(config.DB)
	suggestions, err := searchSvc.Suggest(c.Request.Context(), c.Query("query"), defaultSuggestionLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

// GetAllNutritionMeals lists the meal catalog, optionally filtered by
// category, for clients that browse instead of searching.
func GetAllNutritionMeals(c *gin.Context) {
	catalog := services.NewCatalogService(config.DB)
	meals, err := catalog.ListMeals(c.Request.Context(), c.Query("category"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"meals": meals, "count": len(meals)})
}

func GetNutritionMeal(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Meal ID is required"})
		return
	}

	catalog := services.NewCatalogService(config.DB)
	meal, err := catalog.GetMeal(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrCatalogMealNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Meal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, meal)
}

// RecognizeMealPhoto labels a meal photo and searches the catalog for
// each label, returning the first label that produces results.
func RecognizeMealPhoto(c *gin.Context) {
	var body struct {
		Image string `json:"image" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	vision, err := services.NewVisionService()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	labels, err := vision.RecognizeLabels(body.Image)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	searchSvc := services.NewSearchService(config.DB)
	for _, label := range labels {
		results, err := searchSvc.SearchMeals(c.Request.Context(), strings.ToLower(label), defaultSearchLimit)
		if err != nil {
			continue
		}
		if len(results) > 0 {
			c.JSON(http.StatusOK, gin.H{"labels": labels, "matchedLabel": label, "meals": results})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"labels": labels, "meals": []any{}})
}
