package services

import (
	"testing"
	"time"

	"backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var progressNow = time.Date(2025, time.March, 15, 14, 30, 0, 0, time.UTC)

func dayAgo(n int) time.Time {
	return time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC).AddDate(0, 0, -n)
}

func TestBuildDailyDataWindow(t *testing.T) {
	daily := buildDailyData(nil, nil, nil, progressNow)

	require.Len(t, daily, progressWindowDays)
	assert.Equal(t, "2024-12-16", daily[0].Date, "oldest bucket first")
	assert.Equal(t, "2025-03-15", daily[len(daily)-1].Date, "today last")

	for _, d := range daily {
		assert.Zero(t, d.Calories)
		assert.Zero(t, d.Water)
		assert.Zero(t, d.MealCount)
		assert.Nil(t, d.Weight)
	}
}

func TestBuildDailyDataBucketsByDate(t *testing.T) {
	meals := []models.Meal{
		{UserID: 1, Calories: 400, Protein: 30, Carbs: 40, Fat: 10, Date: dayAgo(0)},
		{UserID: 1, Calories: 600, Protein: 20, Carbs: 70, Fat: 25, Date: dayAgo(0)},
		{UserID: 1, Calories: 500, Date: dayAgo(3)},
	}
	water := []models.WaterLog{
		{UserID: 1, Amount: 500},
		{UserID: 1, Amount: 750},
	}
	water[0].CreatedAt = dayAgo(0)
	water[1].CreatedAt = dayAgo(0)

	weights := []models.WeightLog{
		{UserID: 1, Weight: 82.5},
		{UserID: 1, Weight: 82.1},
	}
	weights[0].CreatedAt = dayAgo(3)
	weights[1].CreatedAt = dayAgo(3) // later fetch wins

	daily := buildDailyData(meals, water, weights, progressNow)
	require.Len(t, daily, progressWindowDays)

	today := daily[len(daily)-1]
	assert.Equal(t, 1000, today.Calories)
	assert.Equal(t, 50, today.Protein)
	assert.Equal(t, 110, today.Carbs)
	assert.Equal(t, 35, today.Fat)
	assert.Equal(t, 2, today.MealCount)
	assert.Equal(t, 1250.0, today.Water)
	assert.Equal(t, 2, today.WaterLogCount)
	assert.Nil(t, today.Weight)

	threeBack := daily[len(daily)-4]
	assert.Equal(t, 500, threeBack.Calories)
	require.NotNil(t, threeBack.Weight)
	assert.Equal(t, 82.1, *threeBack.Weight)
}

func TestBuildWeeklyData(t *testing.T) {
	daily := buildDailyData(nil, nil, nil, progressNow)
	// Put data in the oldest 7 days so it lands entirely in week 1.
	for i := 0; i < 7; i++ {
		daily[i].Calories = 2100
		daily[i].MealCount = 3
		daily[i].Water = 2000
		daily[i].Weight = floatPtr(80)
	}

	weekly := buildWeeklyData(daily)
	require.Len(t, weekly, progressWeeks)

	first := weekly[0]
	assert.Equal(t, 1, first.Week)
	assert.Equal(t, 2100, first.AvgCalories)
	assert.Equal(t, 2000, first.AvgWater)
	assert.Equal(t, 21, first.TotalMeals)
	assert.Equal(t, 7, first.DaysWithData)
	assert.Equal(t, 7, first.DaysWithWeight)

	for _, w := range weekly[1:] {
		assert.Zero(t, w.AvgCalories)
		assert.Zero(t, w.DaysWithData)
	}
}

func TestBuildMonthlyData(t *testing.T) {
	daily := buildDailyData(nil, nil, nil, progressNow)
	for i := range daily {
		daily[i].Calories = 2000
		daily[i].MealCount = 2
	}

	monthly := buildMonthlyData(daily, progressNow)
	require.Len(t, monthly, progressMonths)

	assert.Equal(t, "Jan 2025", monthly[0].Month)
	assert.Equal(t, "Feb 2025", monthly[1].Month)
	assert.Equal(t, "Mar 2025", monthly[2].Month, "current month last")

	// January is fully inside the window; March only up to the 15th.
	assert.Equal(t, 31*2, monthly[0].TotalMeals)
	assert.Equal(t, 15*2, monthly[2].TotalMeals)
	assert.Equal(t, 2000, monthly[2].AvgCalories)
}

func TestCalculateStreak(t *testing.T) {
	mk := func(calories ...int) []DayData {
		days := make([]DayData, len(calories))
		for i, c := range calories {
			days[i] = DayData{Calories: c}
		}
		return days
	}
	calorieValue := func(d DayData) float64 { return float64(d.Calories) }

	t.Run("running streak ends today", func(t *testing.T) {
		s := calculateStreak(mk(0, 2100, 2100, 1500, 2100, 2100), calorieValue, 2000)
		assert.Equal(t, 2, s.Current)
		assert.Equal(t, 2, s.Max)
	})

	t.Run("max can predate current", func(t *testing.T) {
		s := calculateStreak(mk(2100, 2100, 2100, 0, 2100), calorieValue, 2000)
		assert.Equal(t, 1, s.Current)
		assert.Equal(t, 3, s.Max)
	})

	t.Run("goal boundary is inclusive", func(t *testing.T) {
		s := calculateStreak(mk(2000, 2000), calorieValue, 2000)
		assert.Equal(t, 2, s.Current)
		assert.Equal(t, 2, s.Max)
	})

	t.Run("no days meeting goal", func(t *testing.T) {
		s := calculateStreak(mk(100, 100), calorieValue, 2000)
		assert.Zero(t, s.Current)
		assert.Zero(t, s.Max)
	})
}

func TestGenerateInsightsThresholds(t *testing.T) {
	days := make([]DayData, progressWindowDays)
	for i := range days {
		days[i] = DayData{Date: "2025-01-01", Calories: 1000, Water: 1000}
	}

	insights := generateInsights(days, 2000, 2000)

	assert.Contains(t, insights[0], "below your calorie goal", "average under 80 percent of goal")
	found := false
	for _, in := range insights {
		if in == "You're not drinking enough water. Try setting reminders throughout the day." {
			found = true
		}
	}
	assert.True(t, found, "water under 70 percent of goal")
}

func TestGenerateInsightsWeekendPattern(t *testing.T) {
	days := make([]DayData, progressWindowDays)
	for i := range days {
		cal := 2000
		if i%7 >= 5 {
			cal = 3000 // 150% of the weekday average
		}
		days[i] = DayData{Date: "2025-01-01", Calories: cal, Water: 2000}
	}

	insights := generateInsights(days, 2000, 2000)

	found := false
	for _, in := range insights {
		if in == "You tend to eat more calories on weekends. Consider meal planning for weekends." {
			found = true
		}
	}
	assert.True(t, found)
}

func TestGenerateSummary(t *testing.T) {
	days := make([]DayData, progressWindowDays)
	for i := range days {
		days[i] = DayData{Date: "2025-01-01"}
	}
	last := len(days) - 1
	days[last-3] = DayData{Date: "best", Calories: 2050, Water: 1500, MealCount: 2, WaterLogCount: 1}
	days[last-2] = DayData{Date: "highest", Calories: 2900, Water: 2500, MealCount: 3, WaterLogCount: 2}
	days[last-1] = DayData{Date: "under", Calories: 1500, Water: 900, MealCount: 1, WaterLogCount: 1}
	days[last] = DayData{Date: "exact", Calories: 2000, Water: 2000, MealCount: 2, WaterLogCount: 2}

	s := generateSummary(days, 2000, 2000)

	// Best calorie day: lowest calories still meeting the goal.
	require.NotNil(t, s.BestDays.Calories)
	assert.Equal(t, "exact", s.BestDays.Calories.Date)
	assert.Equal(t, 2000.0, s.BestDays.Calories.Value)

	// Highest day: highest strictly above goal.
	require.NotNil(t, s.HighestDays.Calories)
	assert.Equal(t, "highest", s.HighestDays.Calories.Date)

	assert.Equal(t, "highest", s.BestDays.Water.Date)
	assert.Equal(t, "under", s.WorstDays.Water.Date)

	// 3 of 4 calorie days met the goal.
	assert.Equal(t, 3, s.GoalAchievement.Calories.DaysMet)
	assert.Equal(t, 4, s.GoalAchievement.Calories.TotalDays)
	assert.Equal(t, 75, s.GoalAchievement.Calories.Percentage)

	assert.Equal(t, 4, s.Activity.TotalDaysTracked)
	assert.Equal(t, 8, s.Activity.TotalMealsLogged)
	assert.Equal(t, 6, s.Activity.TotalWaterLogs)
	assert.Equal(t, 4, s.Activity.Consistency, "4 of 90 days rounds to 4 percent")
}

func TestGenerateSummaryTrends(t *testing.T) {
	days := make([]DayData, progressWindowDays)
	for i := range days {
		days[i] = DayData{Date: "x"}
	}
	// Prior week 2000/day, last week 2500/day: +25%.
	for i := len(days) - 14; i < len(days)-7; i++ {
		days[i].Calories = 2000
		days[i].Water = 2000
	}
	for i := len(days) - 7; i < len(days); i++ {
		days[i].Calories = 2500
		days[i].Water = 1000
	}

	s := generateSummary(days, 2000, 2000)
	assert.Equal(t, 25, s.Trends.Calories)
	assert.Equal(t, -50, s.Trends.Water)
}

func TestTrendPercentZeroBaseline(t *testing.T) {
	assert.Zero(t, trendPercent(100, 0))
}
