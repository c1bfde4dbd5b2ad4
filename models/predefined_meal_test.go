package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveSearchFields(t *testing.T) {
	meal := &PredefinedMeal{
		Name:        "Chicken Fried Rice",
		Ingredients: []string{"chicken breast", "rice", "XO sauce"},
		Tags:        []string{"Asian", "quick"},
		Category:    "dinner",
	}

	DeriveSearchFields(meal)

	assert.Equal(t, "chicken fried rice", meal.SearchName)
	assert.Contains(t, meal.SearchKeywords, "chicken")
	assert.Contains(t, meal.SearchKeywords, "fried")
	assert.Contains(t, meal.SearchKeywords, "rice")
	assert.Contains(t, meal.SearchKeywords, "breast")
	assert.Contains(t, meal.SearchKeywords, "sauce")
	assert.Contains(t, meal.SearchKeywords, "asian", "tags lowercased")
	assert.Contains(t, meal.SearchKeywords, "quick")
	assert.Contains(t, meal.SearchKeywords, "dinner")
	assert.NotContains(t, meal.SearchKeywords, "xo", "tokens of 2 chars or fewer dropped")

	seen := map[string]bool{}
	for _, kw := range meal.SearchKeywords {
		assert.False(t, seen[kw], "keyword %q duplicated", kw)
		seen[kw] = true
	}
}

func TestDeriveSearchFieldsRederives(t *testing.T) {
	meal := &PredefinedMeal{Name: "Old Name"}
	DeriveSearchFields(meal)
	assert.Contains(t, meal.SearchKeywords, "old")

	meal.Name = "New Dish"
	DeriveSearchFields(meal)
	assert.Equal(t, "new dish", meal.SearchName)
	assert.NotContains(t, meal.SearchKeywords, "old", "stale keywords dropped on rederive")
}

func TestUnitCalories(t *testing.T) {
	meal := &PredefinedMeal{
		Units: []MealUnit{
			{Unit: "bowl", Calories: 320},
			{Unit: "cup", Calories: 210},
		},
	}
	assert.Equal(t, 320.0, meal.UnitCalories("bowl"))
	assert.Equal(t, 210.0, meal.UnitCalories("cup"))
	assert.Zero(t, meal.UnitCalories("plate"))
}
