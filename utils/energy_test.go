package utils

import (
	"testing"

	"backend/models"

	"github.com/stretchr/testify/assert"
)

func TestCalculateBMR(t *testing.T) {
	// Mifflin-St Jeor at 70 kg, 175 cm, 30 y.
	assert.Equal(t, 1648.75, CalculateBMR("male", 70, 175, 30))
	assert.Equal(t, 1482.75, CalculateBMR("female", 70, 175, 30))
	assert.Equal(t, 1482.75, CalculateBMR("other", 70, 175, 30), "non-male uses the -161 offset")
}

func TestActivityMultiplier(t *testing.T) {
	assert.Equal(t, 1.2, ActivityMultiplier("sedentary"))
	assert.Equal(t, 1.9, ActivityMultiplier("very_active"))
	assert.Equal(t, 1.375, ActivityMultiplier(""), "unknown level defaults to light")
	assert.Equal(t, 1.375, ActivityMultiplier("couch"))
}

func TestDailyCalorieTarget(t *testing.T) {
	user := &models.User{
		Age:           30,
		Gender:        "male",
		Height:        175,
		Weight:        70,
		ActivityLevel: "moderate",
		Goal:          "maintain",
	}

	// 1648.75 * 1.55 = 2555.5625 -> 2556
	assert.Equal(t, 2556, DailyCalorieTarget(user))

	user.Goal = "lose"
	assert.Equal(t, 2056, DailyCalorieTarget(user))

	user.Goal = "gain"
	assert.Equal(t, 3056, DailyCalorieTarget(user))
}

func TestDailyCalorieTargetFallback(t *testing.T) {
	assert.Equal(t, DefaultCalorieGoal, DailyCalorieTarget(nil))
	assert.Equal(t, DefaultCalorieGoal, DailyCalorieTarget(&models.User{Weight: 70}), "incomplete profile")
}

func TestDailyWaterTarget(t *testing.T) {
	assert.Equal(t, 2100, DailyWaterTarget(&models.User{Weight: 70}))
	assert.Equal(t, DefaultWaterGoalML, DailyWaterTarget(nil))
	assert.Equal(t, DefaultWaterGoalML, DailyWaterTarget(&models.User{}))
}

func TestCalculateBMI(t *testing.T) {
	bmi, err := CalculateBMI(175, 70)
	assert.NoError(t, err)
	assert.Equal(t, 22.9, bmi)

	_, err = CalculateBMI(0, 70)
	assert.Error(t, err)
}

func TestBMICategory(t *testing.T) {
	assert.Equal(t, "Underweight", BMICategory(18.0))
	assert.Equal(t, "Normal weight", BMICategory(22.0))
	assert.Equal(t, "Overweight", BMICategory(27.0))
	assert.Equal(t, "Obese", BMICategory(31.0))
}
