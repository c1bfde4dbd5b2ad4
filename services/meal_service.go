package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"backend/models"
	"backend/utils"

	"gorm.io/gorm"
)

var (
	ErrMealNotFound    = errors.New("meal not found")
	ErrInvalidCalories = errors.New("invalid calories value")
	ErrMissingFields   = errors.New("missing required fields")
)

var validMealTypes = map[string]bool{
	"breakfast": true,
	"lunch":     true,
	"dinner":    true,
	"snack":     true,
	"other":     true,
}

type MealService struct{ db *gorm.DB }

func NewMealService(db *gorm.DB) *MealService { return &MealService{db: db} }

type LogMealRequest struct {
	Type             string   `json:"type"`
	Name             string   `json:"name"`
	Calories         int      `json:"calories"`
	Protein          int      `json:"protein"`
	Carbs            int      `json:"carbs"`
	Fat              int      `json:"fat"`
	Ingredients      []string `json:"ingredients"`
	PredefinedMealID *uint    `json:"predefined_meal_id"`
	Photo            string   `json:"photo"` // base64 data URI, optional
}

// LogMeal records a meal for today. When the entry references a catalog
// meal, nutrition absent from the request is snapshotted from the catalog
// so later catalog edits don't rewrite history.
func (s *MealService) LogMeal(ctx context.Context, userID uint, req LogMealRequest) (*models.Meal, error) {
	req.Type = strings.ToLower(strings.TrimSpace(req.Type))
	req.Name = strings.TrimSpace(req.Name)
	if req.Type == "" || req.Name == "" {
		return nil, ErrMissingFields
	}
	if !validMealTypes[req.Type] {
		return nil, errors.New("unknown meal type")
	}
	if req.Calories < 0 {
		return nil, ErrInvalidCalories
	}

	meal := models.Meal{
		UserID:           userID,
		Type:             req.Type,
		Name:             req.Name,
		Calories:         req.Calories,
		Protein:          req.Protein,
		Carbs:            req.Carbs,
		Fat:              req.Fat,
		Ingredients:      cleanIngredients(req.Ingredients),
		PredefinedMealID: req.PredefinedMealID,
		Date:             time.Now(),
	}

	if req.PredefinedMealID != nil {
		var pm models.PredefinedMeal
		if err := s.db.WithContext(ctx).Preload("Units").First(&pm, *req.PredefinedMealID).Error; err == nil {
			if len(meal.Ingredients) == 0 {
				meal.Ingredients = pm.Ingredients
			}
			if meal.Calories == 0 && len(pm.Units) > 0 {
				u := pm.Units[0]
				meal.Calories = int(u.Calories)
				meal.Protein = int(u.Protein)
				meal.Carbs = int(u.Carbs)
				meal.Fat = int(u.Fat)
			}
		}
	}

	if req.Photo != "" {
		url, err := utils.UploadBase64ImageToS3(req.Photo, "meal-photos", "meal")
		if err != nil {
			return nil, err
		}
		meal.PhotoURL = url
	}

	if err := s.db.WithContext(ctx).Create(&meal).Error; err != nil {
		return nil, err
	}
	return &meal, nil
}

type MealEntry struct {
	ID          uint     `json:"id"`
	Type        string   `json:"type"`
	Name        string   `json:"name"`
	Calories    int      `json:"calories"`
	Ingredients []string `json:"ingredients"`
	Protein     int      `json:"protein"`
	Carbs       int      `json:"carbs"`
	Fat         int      `json:"fat"`
	PhotoURL    string   `json:"photoUrl,omitempty"`
}

type MealDay struct {
	Date          string      `json:"date"`
	Meals         []MealEntry `json:"meals"`
	TotalCalories int         `json:"totalCalories"`
	TotalProtein  int         `json:"totalProtein"`
	TotalCarbs    int         `json:"totalCarbs"`
	TotalFat      int         `json:"totalFat"`
}

// RecentMeals returns the last 7 days of meals grouped per date with
// daily macro totals, most recent date first.
func (s *MealService) RecentMeals(ctx context.Context, userID uint) ([]MealDay, error) {
	since := time.Now().AddDate(0, 0, -7)

	var meals []models.Meal
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date >= ?", userID, since).
		Order("date DESC").
		Find(&meals).Error; err != nil {
		return nil, err
	}

	return groupMealsByDate(meals), nil
}

func groupMealsByDate(meals []models.Meal) []MealDay {
	days := []MealDay{}
	index := map[string]int{}
	for _, m := range meals {
		key := m.Date.Format(dayKeyLayout)
		i, ok := index[key]
		if !ok {
			i = len(days)
			index[key] = i
			days = append(days, MealDay{Date: key, Meals: []MealEntry{}})
		}
		days[i].Meals = append(days[i].Meals, MealEntry{
			ID:          m.ID,
			Type:        m.Type,
			Name:        m.Name,
			Calories:    m.Calories,
			Ingredients: m.Ingredients,
			Protein:     m.Protein,
			Carbs:       m.Carbs,
			Fat:         m.Fat,
			PhotoURL:    m.PhotoURL,
		})
		days[i].TotalCalories += m.Calories
		days[i].TotalProtein += m.Protein
		days[i].TotalCarbs += m.Carbs
		days[i].TotalFat += m.Fat
	}
	return days
}

func (s *MealService) DeleteMeal(ctx context.Context, userID, mealID uint) error {
	var meal models.Meal
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", mealID, userID).First(&meal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMealNotFound
		}
		return err
	}
	return s.db.WithContext(ctx).Delete(&meal).Error
}

// Suggestions lists catalog meals for a category, dropping entries that
// contain any of the user's restricted ingredients or tags.
func (s *MealService) Suggestions(ctx context.Context, userID uint, category string) ([]models.PredefinedMeal, error) {
	tx := s.db.WithContext(ctx).Preload("Units").Order("name ASC")
	if category != "" {
		tx = tx.Where("category = ?", strings.ToLower(category))
	}
	var catalog []models.PredefinedMeal
	if err := tx.Find(&catalog).Error; err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		return nil, err
	}
	return filterByRestrictions(catalog, user.DietaryRestrictions), nil
}

func filterByRestrictions(catalog []models.PredefinedMeal, restrictions []string) []models.PredefinedMeal {
	if len(restrictions) == 0 {
		return catalog
	}
	restricted := map[string]bool{}
	for _, r := range restrictions {
		restricted[strings.ToLower(strings.TrimSpace(r))] = true
	}

	allowed := make([]models.PredefinedMeal, 0, len(catalog))
	for _, meal := range catalog {
		blocked := false
		for _, tag := range meal.Tags {
			if restricted[strings.ToLower(tag)] {
				blocked = true
				break
			}
		}
		if !blocked {
			for _, ing := range meal.Ingredients {
				if restricted[strings.ToLower(strings.TrimSpace(ing))] {
					blocked = true
					break
				}
			}
		}
		if !blocked {
			allowed = append(allowed, meal)
		}
	}
	return allowed
}

func cleanIngredients(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
