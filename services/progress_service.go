package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"backend/models"
	"backend/utils"

	"gorm.io/gorm"
)

const (
	progressWindowDays = 90
	progressWeeks      = 12
	progressMonths     = 3
)

type ProgressService struct{ db *gorm.DB }

func NewProgressService(db *gorm.DB) *ProgressService { return &ProgressService{db: db} }

// One calendar day's totals. Weight is nil on days without a reading.
type DayData struct {
	Date          string   `json:"date"`
	Calories      int      `json:"calories"`
	Protein       int      `json:"protein"`
	Carbs         int      `json:"carbs"`
	Fat           int      `json:"fat"`
	MealCount     int      `json:"mealCount"`
	Water         float64  `json:"water"`
	WaterLogCount int      `json:"waterLogCount"`
	Weight        *float64 `json:"weight"`
}

type WeekData struct {
	Week           int `json:"week"`
	AvgCalories    int `json:"avgCalories"`
	AvgProtein     int `json:"avgProtein"`
	AvgCarbs       int `json:"avgCarbs"`
	AvgFat         int `json:"avgFat"`
	AvgWater       int `json:"avgWater"`
	TotalMeals     int `json:"totalMeals"`
	DaysWithWeight int `json:"daysWithWeight"`
	DaysWithData   int `json:"daysWithData"`
}

type MonthData struct {
	Month        string `json:"month"`
	AvgCalories  int    `json:"avgCalories"`
	AvgWater     int    `json:"avgWater"`
	AvgProtein   int    `json:"avgProtein"`
	AvgCarbs     int    `json:"avgCarbs"`
	AvgFat       int    `json:"avgFat"`
	TotalMeals   int    `json:"totalMeals"`
	DaysWithData int    `json:"daysWithData"`
}

type Streak struct {
	Current int `json:"current"`
	Max     int `json:"max"`
}

type DayValue struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

type GoalAchievement struct {
	Percentage int `json:"percentage"`
	DaysMet    int `json:"daysMet"`
	TotalDays  int `json:"totalDays"`
}

type ProgressSummary struct {
	BestDays struct {
		Calories *DayValue `json:"calories"`
		Water    DayValue  `json:"water"`
	} `json:"bestDays"`
	HighestDays struct {
		Calories *DayValue `json:"calories"`
	} `json:"highestDays"`
	WorstDays struct {
		Water DayValue `json:"water"`
	} `json:"worstDays"`
	Averages struct {
		Calories int `json:"calories"`
		Water    int `json:"water"`
		Protein  int `json:"protein"`
		Carbs    int `json:"carbs"`
		Fat      int `json:"fat"`
	} `json:"averages"`
	GoalAchievement struct {
		Calories GoalAchievement `json:"calories"`
		Water    GoalAchievement `json:"water"`
	} `json:"goalAchievement"`
	Trends struct {
		Calories int `json:"calories"` // week-over-week percent change
		Water    int `json:"water"`
	} `json:"trends"`
	Activity struct {
		TotalDaysTracked int `json:"totalDaysTracked"`
		TotalMealsLogged int `json:"totalMealsLogged"`
		TotalWaterLogs   int `json:"totalWaterLogs"`
		Consistency      int `json:"consistency"` // % of window days with data
	} `json:"activity"`
}

type ProgressStatistics struct {
	DailyData   []DayData   `json:"dailyData"`
	WeeklyData  []WeekData  `json:"weeklyData"`
	MonthlyData []MonthData `json:"monthlyData"`
	Streaks     struct {
		Calories Streak `json:"calories"`
		Water    Streak `json:"water"`
		Meals    Streak `json:"meals"`
	} `json:"streaks"`
	Insights   []string        `json:"insights"`
	Statistics ProgressSummary `json:"statistics"`
	Goals      struct {
		Calories int `json:"calories"`
		Water    int `json:"water"`
	} `json:"goals"`
}

// Statistics aggregates the trailing 90 days of logs into daily, weekly and
// monthly buckets with streaks, insights and summary statistics. A failed
// sub-query fails the whole call; no retries.
func (s *ProgressService) Statistics(ctx context.Context, userID uint, now time.Time) (*ProgressStatistics, error) {
	windowStart := dayStart(now).AddDate(0, 0, -(progressWindowDays - 1))

	var meals []models.Meal
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date >= ?", userID, windowStart).
		Order("date ASC").
		Find(&meals).Error; err != nil {
		return nil, err
	}

	var waterLogs []models.WaterLog
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND created_at >= ?", userID, windowStart).
		Order("created_at ASC").
		Find(&waterLogs).Error; err != nil {
		return nil, err
	}

	var weightLogs []models.WeightLog
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND created_at >= ?", userID, windowStart).
		Order("created_at ASC").
		Find(&weightLogs).Error; err != nil {
		return nil, err
	}

	var user *models.User
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, userID).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	} else {
		user = &u
	}

	dailyData := buildDailyData(meals, waterLogs, weightLogs, now)

	out := &ProgressStatistics{
		DailyData:   dailyData,
		WeeklyData:  buildWeeklyData(dailyData),
		MonthlyData: buildMonthlyData(dailyData, now),
	}

	goalCalories := utils.DailyCalorieTarget(user)
	goalWater := utils.DailyWaterTarget(user)
	out.Goals.Calories = goalCalories
	out.Goals.Water = goalWater

	out.Streaks.Calories = calculateStreak(dailyData, func(d DayData) float64 { return float64(d.Calories) }, float64(goalCalories))
	out.Streaks.Water = calculateStreak(dailyData, func(d DayData) float64 { return d.Water }, float64(goalWater))
	out.Streaks.Meals = calculateStreak(dailyData, func(d DayData) float64 { return float64(d.MealCount) }, 1)

	out.Insights = generateInsights(dailyData, goalCalories, goalWater)
	out.Statistics = generateSummary(dailyData, goalCalories, goalWater)

	return out, nil
}

const dayKeyLayout = "2006-01-02"

// buildDailyData buckets raw logs into exactly progressWindowDays calendar
// days ending at "now", oldest first. Days without records get zero totals
// and a nil weight. Multiple weight readings on one date resolve to the
// most recently fetched one.
func buildDailyData(meals []models.Meal, waterLogs []models.WaterLog, weightLogs []models.WeightLog, now time.Time) []DayData {
	type mealTotals struct {
		calories, protein, carbs, fat, count int
	}
	mealsByDate := map[string]*mealTotals{}
	for _, m := range meals {
		key := m.Date.In(now.Location()).Format(dayKeyLayout)
		t := mealsByDate[key]
		if t == nil {
			t = &mealTotals{}
			mealsByDate[key] = t
		}
		t.calories += m.Calories
		t.protein += m.Protein
		t.carbs += m.Carbs
		t.fat += m.Fat
		t.count++
	}

	type waterTotals struct {
		amount float64
		count  int
	}
	waterByDate := map[string]*waterTotals{}
	for _, w := range waterLogs {
		key := w.CreatedAt.In(now.Location()).Format(dayKeyLayout)
		t := waterByDate[key]
		if t == nil {
			t = &waterTotals{}
			waterByDate[key] = t
		}
		t.amount += w.Amount
		t.count++
	}

	weightByDate := map[string]float64{}
	for _, w := range weightLogs {
		key := w.CreatedAt.In(now.Location()).Format(dayKeyLayout)
		weightByDate[key] = w.Weight // last fetched wins
	}

	dailyData := make([]DayData, 0, progressWindowDays)
	for i := progressWindowDays - 1; i >= 0; i-- {
		date := dayStart(now).AddDate(0, 0, -i)
		key := date.Format(dayKeyLayout)

		day := DayData{Date: key}
		if t := mealsByDate[key]; t != nil {
			day.Calories = t.calories
			day.Protein = t.protein
			day.Carbs = t.carbs
			day.Fat = t.fat
			day.MealCount = t.count
		}
		if t := waterByDate[key]; t != nil {
			day.Water = t.amount
			day.WaterLogCount = t.count
		}
		if w, ok := weightByDate[key]; ok {
			weight := w
			day.Weight = &weight
		}
		dailyData = append(dailyData, day)
	}
	return dailyData
}

// buildWeeklyData derives 12 non-overlapping 7-day windows, oldest first.
func buildWeeklyData(dailyData []DayData) []WeekData {
	weeklyData := make([]WeekData, 0, progressWeeks)
	for week := 0; week < progressWeeks; week++ {
		start := week * 7
		if start >= len(dailyData) {
			break
		}
		end := start + 7
		if end > len(dailyData) {
			end = len(dailyData)
		}
		days := dailyData[start:end]

		w := WeekData{Week: week + 1}
		var calories, protein, carbs, fat, water float64
		for _, d := range days {
			calories += float64(d.Calories)
			protein += float64(d.Protein)
			carbs += float64(d.Carbs)
			fat += float64(d.Fat)
			water += d.Water
			w.TotalMeals += d.MealCount
			if d.Weight != nil {
				w.DaysWithWeight++
			}
			if d.Calories > 0 || d.Water > 0 {
				w.DaysWithData++
			}
		}
		n := float64(len(days))
		w.AvgCalories = roundInt(calories / n)
		w.AvgProtein = roundInt(protein / n)
		w.AvgCarbs = roundInt(carbs / n)
		w.AvgFat = roundInt(fat / n)
		w.AvgWater = roundInt(water / n)
		weeklyData = append(weeklyData, w)
	}
	return weeklyData
}

// buildMonthlyData derives up to 3 calendar-month buckets, current month
// last. Months with no days inside the window are skipped.
func buildMonthlyData(dailyData []DayData, now time.Time) []MonthData {
	byDate := map[string]DayData{}
	for _, d := range dailyData {
		byDate[d.Date] = d
	}

	monthlyData := make([]MonthData, 0, progressMonths)
	for month := progressMonths - 1; month >= 0; month-- {
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -month, 0)
		monthEnd := monthStart.AddDate(0, 1, 0)

		var days []DayData
		for d := monthStart; d.Before(monthEnd); d = d.AddDate(0, 0, 1) {
			if day, ok := byDate[d.Format(dayKeyLayout)]; ok {
				days = append(days, day)
			}
		}
		if len(days) == 0 {
			continue
		}

		m := MonthData{Month: monthStart.Format("Jan 2006")}
		var calories, protein, carbs, fat, water float64
		for _, d := range days {
			calories += float64(d.Calories)
			protein += float64(d.Protein)
			carbs += float64(d.Carbs)
			fat += float64(d.Fat)
			water += d.Water
			m.TotalMeals += d.MealCount
			if d.Calories > 0 || d.Water > 0 {
				m.DaysWithData++
			}
		}
		n := float64(len(days))
		m.AvgCalories = roundInt(calories / n)
		m.AvgWater = roundInt(water / n)
		m.AvgProtein = roundInt(protein / n)
		m.AvgCarbs = roundInt(carbs / n)
		m.AvgFat = roundInt(fat / n)
		monthlyData = append(monthlyData, m)
	}
	return monthlyData
}

// calculateStreak scans from the most recent day backward. Current is the
// still-running streak ending at "today"; Max is the longest run anywhere in
// the window. Meeting the goal exactly counts (boundary inclusive).
func calculateStreak(days []DayData, value func(DayData) float64, goal float64) Streak {
	var streak Streak
	run := 0
	counting := true
	for i := len(days) - 1; i >= 0; i-- {
		if value(days[i]) >= goal {
			run++
			if run > streak.Max {
				streak.Max = run
			}
			if counting {
				streak.Current++
			}
		} else {
			run = 0
			counting = false
		}
	}
	return streak
}

// generateInsights synthesizes free-text observations over the window.
func generateInsights(dailyData []DayData, goalCalories, goalWater int) []string {
	insights := []string{}
	if len(dailyData) == 0 {
		return insights
	}

	var totalCalories, totalWater float64
	for _, d := range dailyData {
		totalCalories += float64(d.Calories)
		totalWater += d.Water
	}
	avgCalories := totalCalories / float64(len(dailyData))
	avgWater := totalWater / float64(len(dailyData))

	if avgCalories < float64(goalCalories)*0.8 {
		insights = append(insights, "You're consistently eating below your calorie goal. Consider adding healthy snacks.")
	} else if avgCalories > float64(goalCalories)*1.2 {
		insights = append(insights, "You're consistently eating above your calorie goal. Try portion control strategies.")
	}

	if avgWater < float64(goalWater)*0.7 {
		insights = append(insights, "You're not drinking enough water. Try setting reminders throughout the day.")
	}

	// Weekend pattern: the last 2 days of every 7-day stretch.
	var weekdaySum, weekendSum float64
	var weekdayCount, weekendCount int
	for i, d := range dailyData {
		if i%7 < 5 {
			weekdaySum += float64(d.Calories)
			weekdayCount++
		} else {
			weekendSum += float64(d.Calories)
			weekendCount++
		}
	}
	if weekdayCount > 0 && weekendCount > 0 {
		weekdayAvg := weekdaySum / float64(weekdayCount)
		weekendAvg := weekendSum / float64(weekendCount)
		if weekdayAvg > 0 && weekendAvg > weekdayAvg*1.3 {
			insights = append(insights, "You tend to eat more calories on weekends. Consider meal planning for weekends.")
		}
	}

	best := dailyData[0]
	worst := dailyData[0]
	for _, d := range dailyData[1:] {
		if d.Calories > best.Calories {
			best = d
		}
		if d.Calories < worst.Calories {
			worst = d
		}
	}
	insights = append(insights, fmt.Sprintf("Your best day was %s with %d calories", best.Date, best.Calories))
	insights = append(insights, fmt.Sprintf("Your lowest day was %s with %d calories", worst.Date, worst.Calories))

	return insights
}

// generateSummary computes aggregate statistics over the window.
// Best calorie day is the lowest-calorie day still meeting the goal, which
// rewards efficient goal-meeting rather than simply eating less.
func generateSummary(dailyData []DayData, goalCalories, goalWater int) ProgressSummary {
	var summary ProgressSummary

	var daysWithData, daysWithCalories, daysWithWater []DayData
	for _, d := range dailyData {
		if d.Calories > 0 || d.Water > 0 {
			daysWithData = append(daysWithData, d)
		}
		if d.Calories > 0 {
			daysWithCalories = append(daysWithCalories, d)
		}
		if d.Water > 0 {
			daysWithWater = append(daysWithWater, d)
		}
	}

	// Best calorie day: lowest calories at or above goal.
	var bestCalorieDay *DayValue
	for _, d := range daysWithCalories {
		if d.Calories >= goalCalories {
			if bestCalorieDay == nil || float64(d.Calories) < bestCalorieDay.Value {
				bestCalorieDay = &DayValue{Date: d.Date, Value: float64(d.Calories)}
			}
		}
	}
	summary.BestDays.Calories = bestCalorieDay

	// Highest calorie day: highest calories strictly above goal.
	var highestCalorieDay *DayValue
	for _, d := range daysWithCalories {
		if d.Calories > goalCalories {
			if highestCalorieDay == nil || float64(d.Calories) > highestCalorieDay.Value {
				highestCalorieDay = &DayValue{Date: d.Date, Value: float64(d.Calories)}
			}
		}
	}
	summary.HighestDays.Calories = highestCalorieDay

	for _, d := range daysWithWater {
		if d.Water > summary.BestDays.Water.Value {
			summary.BestDays.Water = DayValue{Date: d.Date, Value: d.Water}
		}
	}
	if len(daysWithWater) > 0 {
		summary.WorstDays.Water = DayValue{Date: daysWithWater[0].Date, Value: daysWithWater[0].Water}
		for _, d := range daysWithWater[1:] {
			if d.Water < summary.WorstDays.Water.Value {
				summary.WorstDays.Water = DayValue{Date: d.Date, Value: d.Water}
			}
		}
	}

	if len(daysWithCalories) > 0 {
		var calories, protein, carbs, fat float64
		for _, d := range daysWithCalories {
			calories += float64(d.Calories)
			protein += float64(d.Protein)
			carbs += float64(d.Carbs)
			fat += float64(d.Fat)
		}
		n := float64(len(daysWithCalories))
		summary.Averages.Calories = roundInt(calories / n)
		summary.Averages.Protein = roundInt(protein / n)
		summary.Averages.Carbs = roundInt(carbs / n)
		summary.Averages.Fat = roundInt(fat / n)
	}
	if len(daysWithWater) > 0 {
		var water float64
		for _, d := range daysWithWater {
			water += d.Water
		}
		summary.Averages.Water = roundInt(water / float64(len(daysWithWater)))
	}

	// Goal achievement: days meeting goal over days with any data for that metric.
	calorieGoalDays := 0
	for _, d := range daysWithCalories {
		if d.Calories >= goalCalories {
			calorieGoalDays++
		}
	}
	waterGoalDays := 0
	for _, d := range daysWithWater {
		if d.Water >= float64(goalWater) {
			waterGoalDays++
		}
	}
	summary.GoalAchievement.Calories = GoalAchievement{
		Percentage: pctOf(calorieGoalDays, len(daysWithCalories)),
		DaysMet:    calorieGoalDays,
		TotalDays:  len(daysWithCalories),
	}
	summary.GoalAchievement.Water = GoalAchievement{
		Percentage: pctOf(waterGoalDays, len(daysWithWater)),
		DaysMet:    waterGoalDays,
		TotalDays:  len(daysWithWater),
	}

	// Week-over-week trend: last 7 days vs the 7 before them.
	if len(dailyData) >= 14 {
		recent := dailyData[len(dailyData)-7:]
		previous := dailyData[len(dailyData)-14 : len(dailyData)-7]
		summary.Trends.Calories = trendPercent(
			meanOf(recent, func(d DayData) float64 { return float64(d.Calories) }),
			meanOf(previous, func(d DayData) float64 { return float64(d.Calories) }),
		)
		summary.Trends.Water = trendPercent(
			meanOf(recent, func(d DayData) float64 { return d.Water }),
			meanOf(previous, func(d DayData) float64 { return d.Water }),
		)
	}

	summary.Activity.TotalDaysTracked = len(daysWithData)
	for _, d := range daysWithData {
		summary.Activity.TotalMealsLogged += d.MealCount
		summary.Activity.TotalWaterLogs += d.WaterLogCount
	}
	if len(dailyData) > 0 {
		summary.Activity.Consistency = pctOf(len(daysWithData), len(dailyData))
	}

	return summary
}

func meanOf(days []DayData, value func(DayData) float64) float64 {
	if len(days) == 0 {
		return 0
	}
	var sum float64
	for _, d := range days {
		sum += value(d)
	}
	return sum / float64(len(days))
}

func trendPercent(recent, previous float64) int {
	if previous <= 0 {
		return 0
	}
	return roundInt(((recent - previous) / previous) * 100)
}

func pctOf(part, total int) int {
	if total <= 0 {
		return 0
	}
	return roundInt(float64(part) / float64(total) * 100)
}

func roundInt(v float64) int { return int(math.Round(v)) }

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
