package services

import (
	"testing"

	"backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() map[uint]*models.PredefinedMeal {
	return map[uint]*models.PredefinedMeal{
		10: {
			Model: gormModel(10),
			Name:  "Oatmeal",
			Units: []models.MealUnit{{Unit: "bowl", Calories: 300}},
		},
		11: {
			Model: gormModel(11),
			Name:  "Grilled Chicken",
			Units: []models.MealUnit{{Unit: "plate", Calories: 500}, {Unit: "half", Calories: 250}},
		},
		12: {
			Model: gormModel(12),
			Name:  "Fried Snack",
			Tags:  []string{"oily"},
			Units: []models.MealUnit{{Unit: "piece", Calories: 200}},
		},
	}
}

func TestScalePackage(t *testing.T) {
	pkg := models.MealPackage{
		Model:         gormModel(1),
		Title:         "Balanced Day",
		Goal:          "maintain",
		TotalCalories: 2000,
		Entries: []models.PackageEntry{
			{PredefinedMealID: 10, Quantity: 2, Unit: "bowl", Category: "breakfast"},
			{PredefinedMealID: 11, Quantity: 1, Unit: "plate", Category: "dinner"},
		},
	}

	scaled := ScalePackage(pkg, testCatalog(), 1500)

	assert.Equal(t, 0.75, scaled.ScalingFactor)
	assert.Equal(t, 2000.0, scaled.OriginalTotalCalories)
	require.Len(t, scaled.Meals, 2)

	oatmeal := scaled.Meals[0]
	assert.Equal(t, 2.0, oatmeal.OriginalQuantity)
	assert.Equal(t, 600.0, oatmeal.OriginalCalories)
	assert.Equal(t, 1.5, oatmeal.ScaledQuantity)
	assert.Equal(t, 450.0, oatmeal.ScaledCalories)

	chicken := scaled.Meals[1]
	assert.Equal(t, 0.75, chicken.ScaledQuantity)
	assert.Equal(t, 375.0, chicken.ScaledCalories)

	// Sum of scaled entry calories, not TotalCalories * factor.
	assert.Equal(t, 825, scaled.ScaledTotalCalories)
}

func TestScalePackageUnknownUnit(t *testing.T) {
	pkg := models.MealPackage{
		TotalCalories: 1000,
		Entries: []models.PackageEntry{
			{PredefinedMealID: 10, Quantity: 1, Unit: "bucket"},
		},
	}

	scaled := ScalePackage(pkg, testCatalog(), 1000)

	require.Len(t, scaled.Meals, 1)
	assert.Zero(t, scaled.Meals[0].OriginalCalories)
	assert.Zero(t, scaled.Meals[0].ScaledCalories)
	assert.Zero(t, scaled.ScaledTotalCalories)
}

func TestScalePackageMissingMealPlaceholder(t *testing.T) {
	pkg := models.MealPackage{
		TotalCalories: 1000,
		Entries: []models.PackageEntry{
			{PredefinedMealID: 99, Quantity: 2, Unit: "bowl", Category: "lunch"},
			{PredefinedMealID: 10, Quantity: 1, Unit: "bowl", Category: "breakfast"},
		},
	}

	scaled := ScalePackage(pkg, testCatalog(), 2000)

	require.Len(t, scaled.Meals, 2, "missing meal keeps its slot")
	missing := scaled.Meals[0]
	assert.Equal(t, "Meal not found", missing.Meal.Name)
	assert.Equal(t, "unknown", missing.Meal.Category)
	assert.Zero(t, missing.OriginalCalories)
	assert.Zero(t, missing.ScaledCalories)
	assert.Equal(t, 4.0, missing.ScaledQuantity, "quantity still scales")

	assert.Equal(t, 600, scaled.ScaledTotalCalories, "only resolvable entries contribute")
}

func TestScalePackageZeroTotalCalories(t *testing.T) {
	pkg := models.MealPackage{TotalCalories: 0}
	scaled := ScalePackage(pkg, testCatalog(), 1800)
	assert.Equal(t, 1.0, scaled.ScalingFactor)
}

func TestFilterOverweightPackages(t *testing.T) {
	catalog := testCatalog()
	clean := models.MealPackage{
		Model:   gormModel(1),
		Entries: []models.PackageEntry{{PredefinedMealID: 10}},
	}
	oily := models.MealPackage{
		Model:   gormModel(2),
		Entries: []models.PackageEntry{{PredefinedMealID: 10}, {PredefinedMealID: 12}},
	}
	dangling := models.MealPackage{
		Model:   gormModel(3),
		Entries: []models.PackageEntry{{PredefinedMealID: 99}},
	}

	kept := filterOverweightPackages([]models.MealPackage{clean, oily, dangling}, catalog)

	require.Len(t, kept, 2)
	assert.Equal(t, uint(1), kept[0].ID)
	assert.Equal(t, uint(3), kept[1].ID, "unresolvable entries don't exclude a package")
}

func TestSortByCalorieDistance(t *testing.T) {
	packages := []models.MealPackage{
		{Model: gormModel(1), TotalCalories: 2600},
		{Model: gormModel(2), TotalCalories: 1900},
		{Model: gormModel(3), TotalCalories: 2100},
		{Model: gormModel(4), TotalCalories: 1200},
	}

	sortByCalorieDistance(packages, 2000)

	assert.Equal(t, uint(2), packages[0].ID, "stable: equidistant packages keep fetch order")
	assert.Equal(t, uint(3), packages[1].ID)
	assert.Equal(t, uint(1), packages[2].ID)
	assert.Equal(t, uint(4), packages[3].ID)
}
