package services

import (
	"testing"
	"time"

	"backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupMealsByDate(t *testing.T) {
	day1 := time.Date(2025, time.March, 14, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, time.March, 13, 19, 30, 0, 0, time.UTC)

	meals := []models.Meal{
		{Model: gormModel(1), Type: "breakfast", Name: "Oats", Calories: 350, Protein: 12, Carbs: 60, Fat: 6, Date: day1},
		{Model: gormModel(2), Type: "lunch", Name: "Salad", Calories: 420, Protein: 20, Carbs: 30, Fat: 22, Date: day1},
		{Model: gormModel(3), Type: "dinner", Name: "Pasta", Calories: 700, Protein: 25, Carbs: 90, Fat: 20, Date: day2},
	}

	days := groupMealsByDate(meals)

	require.Len(t, days, 2)
	assert.Equal(t, "2025-03-14", days[0].Date, "input order preserved")
	assert.Len(t, days[0].Meals, 2)
	assert.Equal(t, 770, days[0].TotalCalories)
	assert.Equal(t, 32, days[0].TotalProtein)
	assert.Equal(t, 90, days[0].TotalCarbs)
	assert.Equal(t, 28, days[0].TotalFat)

	assert.Equal(t, "2025-03-13", days[1].Date)
	assert.Equal(t, 700, days[1].TotalCalories)
}

func TestValidMealTypes(t *testing.T) {
	for _, typ := range []string{"breakfast", "lunch", "dinner", "snack", "other"} {
		assert.True(t, validMealTypes[typ], "%s is a valid meal type", typ)
	}
	assert.False(t, validMealTypes["brunch"])
	assert.False(t, validMealTypes[""])
}

func TestGroupMealsByDateEmpty(t *testing.T) {
	days := groupMealsByDate(nil)
	require.NotNil(t, days)
	assert.Empty(t, days)
}

func TestFilterByRestrictions(t *testing.T) {
	catalog := []models.PredefinedMeal{
		{Name: "Peanut Bowl", Ingredients: []string{"Peanuts", "rice"}},
		{Name: "Veggie Wrap", Tags: []string{"vegan"}, Ingredients: []string{"tortilla", "beans"}},
		{Name: "Dairy Shake", Tags: []string{"dairy"}, Ingredients: []string{"milk"}},
	}

	t.Run("no restrictions", func(t *testing.T) {
		assert.Len(t, filterByRestrictions(catalog, nil), 3)
	})

	t.Run("ingredient match is case-insensitive", func(t *testing.T) {
		got := filterByRestrictions(catalog, []string{"peanuts"})
		require.Len(t, got, 2)
		assert.Equal(t, "Veggie Wrap", got[0].Name)
	})

	t.Run("tag match", func(t *testing.T) {
		got := filterByRestrictions(catalog, []string{"dairy"})
		require.Len(t, got, 2)
	})

	t.Run("multiple restrictions", func(t *testing.T) {
		got := filterByRestrictions(catalog, []string{"peanuts", "dairy"})
		require.Len(t, got, 1)
		assert.Equal(t, "Veggie Wrap", got[0].Name)
	})
}

func TestCleanIngredients(t *testing.T) {
	got := cleanIngredients([]string{" rice ", "", "  ", "beans"})
	assert.Equal(t, []string{"rice", "beans"}, got)
}
