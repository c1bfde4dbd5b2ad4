package utils

import (
	"math"

	"backend/models"
)

// Calorie adjustment applied on top of maintenance needs.
const (
	WeightLossDeficit  = 500
	WeightGainSurplus  = 500
	DefaultCalorieGoal = 2000
	DefaultWaterGoalML = 2000
)

var activityMultipliers = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

// CalculateBMR implements the Mifflin-St Jeor equation.
// Weight in kg, height in cm, age in years.
func CalculateBMR(gender string, weightKg, heightCm float64, age int) float64 {
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if gender == "male" {
		return bmr + 5
	}
	return bmr - 161
}

// ActivityMultiplier maps an activity level to its TDEE multiplier,
// defaulting to light activity when the level is unrecognized.
func ActivityMultiplier(level string) float64 {
	if m, ok := activityMultipliers[level]; ok {
		return m
	}
	return 1.375
}

// DailyCalorieTarget derives the user's calorie goal from BMR × activity,
// adjusted for the weight goal. Falls back to DefaultCalorieGoal when the
// profile is incomplete. The result is recomputed on demand and never
// persisted as ground truth.
func DailyCalorieTarget(user *models.User) int {
	if user == nil || !user.HasProfile() {
		return DefaultCalorieGoal
	}

	bmr := CalculateBMR(user.Gender, user.Weight, user.Height, user.Age)
	tdee := bmr * ActivityMultiplier(user.ActivityLevel)

	switch user.Goal {
	case "lose":
		tdee -= WeightLossDeficit
	case "gain":
		tdee += WeightGainSurplus
	}
	return int(math.Round(tdee))
}

// DailyWaterTarget is 30 mL per kg of body weight, defaulting to 2000 mL
// when no weight is known.
func DailyWaterTarget(user *models.User) int {
	if user == nil || user.Weight <= 0 {
		return DefaultWaterGoalML
	}
	return int(math.Round(user.Weight * 30))
}
