package services

import (
	"context"
	"errors"
	"math"
	"sort"

	"backend/models"
	"backend/utils"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Tags that exclude a package from recommendations when the user is
// meaningfully above their target weight.
var overweightExcludedTags = map[string]bool{
	"spicy": true,
	"oily":  true,
	"fat":   true,
}

const maxRecommendedPackages = 3

var ErrUserNotFound = errors.New("user not found")

type PackageService struct{ db *gorm.DB }

func NewPackageService(db *gorm.DB) *PackageService { return &PackageService{db: db} }

// PackageMeal is the catalog entry snapshot embedded in a scaled package.
type PackageMeal struct {
	ID          uint              `json:"id"`
	Name        string            `json:"name"`
	Units       []models.MealUnit `json:"units"`
	Tags        []string          `json:"tags"`
	Ingredients []string          `json:"ingredients"`
	Category    string            `json:"category"`
	ImageURL    string            `json:"imageUrl"`
}

type ScaledEntry struct {
	Meal             PackageMeal `json:"meal"`
	Unit             string      `json:"unit"`
	Category         string      `json:"category"`
	OriginalQuantity float64     `json:"originalQuantity"`
	OriginalCalories float64     `json:"originalCalories"`
	ScaledQuantity   float64     `json:"scaledQuantity"`
	ScaledCalories   float64     `json:"scaledCalories"`
}

type ScaledPackage struct {
	ID                    uint          `json:"id"`
	Title                 string        `json:"title"`
	Goal                  string        `json:"goal"`
	Tags                  []string      `json:"tags"`
	OriginalTotalCalories float64       `json:"originalTotalCalories"`
	ScaledTotalCalories   int           `json:"scaledTotalCalories"`
	ScalingFactor         float64       `json:"scalingFactor"`
	Meals                 []ScaledEntry `json:"meals"`
}

// Recommend returns up to 3 packages for the user's own goal and dietary
// tags, scaled to their calorie target. When the tag filter yields nothing
// the tags are dropped and the goal alone is retried.
func (s *PackageService) Recommend(ctx context.Context, userID uint) ([]ScaledPackage, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	goal := user.Goal
	if goal == "" {
		goal = "maintain"
	}
	return s.recommendFor(ctx, user, goal, user.DietaryRestrictions, true)
}

// Suggest is Recommend with explicit goal/tag overrides; empty overrides
// fall back to the user's profile. Unlike Recommend it does not relax the
// tag filter when nothing matches.
func (s *PackageService) Suggest(ctx context.Context, userID uint, goal string, tags []string) ([]ScaledPackage, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if goal == "" {
		goal = user.Goal
		if goal == "" {
			goal = "maintain"
		}
	}
	if len(tags) == 0 {
		tags = user.DietaryRestrictions
	}
	return s.recommendFor(ctx, user, goal, tags, false)
}

func (s *PackageService) loadUser(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *PackageService) recommendFor(ctx context.Context, user *models.User, goal string, tags []string, relaxTags bool) ([]ScaledPackage, error) {
	target := float64(utils.DailyCalorieTarget(user))

	packages, err := s.findPackages(ctx, goal, tags)
	if err != nil {
		return nil, err
	}
	if len(packages) == 0 && relaxTags && len(tags) > 0 {
		packages, err = s.findPackages(ctx, goal, nil)
		if err != nil {
			return nil, err
		}
	}

	mealsByID, err := s.loadReferencedMeals(ctx, packages)
	if err != nil {
		return nil, err
	}

	if user.Overweight() {
		packages = filterOverweightPackages(packages, mealsByID)
	}

	sortByCalorieDistance(packages, target)
	if len(packages) > maxRecommendedPackages {
		packages = packages[:maxRecommendedPackages]
	}

	scaled := make([]ScaledPackage, 0, len(packages))
	for _, pkg := range packages {
		scaled = append(scaled, ScalePackage(pkg, mealsByID, target))
	}
	return scaled, nil
}

func (s *PackageService) findPackages(ctx context.Context, goal string, tags []string) ([]models.MealPackage, error) {
	tx := s.db.WithContext(ctx).Preload("Entries").Where("goal = ?", goal)
	if len(tags) > 0 {
		tx = tx.Where("tags @> ?", pq.Array(tags))
	}
	var packages []models.MealPackage
	if err := tx.Find(&packages).Error; err != nil {
		return nil, err
	}
	return packages, nil
}

func (s *PackageService) loadReferencedMeals(ctx context.Context, packages []models.MealPackage) (map[uint]*models.PredefinedMeal, error) {
	ids := map[uint]bool{}
	for _, pkg := range packages {
		for _, e := range pkg.Entries {
			ids[e.PredefinedMealID] = true
		}
	}
	byID := map[uint]*models.PredefinedMeal{}
	if len(ids) == 0 {
		return byID, nil
	}
	idList := make([]uint, 0, len(ids))
	for id := range ids {
		idList = append(idList, id)
	}
	var meals []models.PredefinedMeal
	if err := s.db.WithContext(ctx).Preload("Units").Where("id IN ?", idList).Find(&meals).Error; err != nil {
		return nil, err
	}
	for i := range meals {
		byID[meals[i].ID] = &meals[i]
	}
	return byID, nil
}

// filterOverweightPackages drops any package containing a meal tagged
// spicy, oily or fat. Entries whose meal no longer exists don't exclude
// the package.
func filterOverweightPackages(packages []models.MealPackage, mealsByID map[uint]*models.PredefinedMeal) []models.MealPackage {
	kept := packages[:0]
	for _, pkg := range packages {
		excluded := false
		for _, e := range pkg.Entries {
			meal := mealsByID[e.PredefinedMealID]
			if meal == nil {
				continue
			}
			for _, tag := range meal.Tags {
				if overweightExcludedTags[tag] {
					excluded = true
					break
				}
			}
			if excluded {
				break
			}
		}
		if !excluded {
			kept = append(kept, pkg)
		}
	}
	return kept
}

// sortByCalorieDistance orders packages by |TotalCalories - target|
// ascending; the sort is stable so equidistant packages keep their
// fetch order.
func sortByCalorieDistance(packages []models.MealPackage, target float64) {
	sort.SliceStable(packages, func(i, j int) bool {
		return math.Abs(packages[i].TotalCalories-target) < math.Abs(packages[j].TotalCalories-target)
	})
}

// ScalePackage scales every entry of a package by target/TotalCalories.
// Per-entry calories come from the referenced meal's matching serving
// unit; an unknown unit contributes 0 calories, and a missing meal is
// replaced by a "Meal not found" placeholder so the entry count is
// preserved. ScaledTotalCalories is the rounded sum of scaled entry
// calories, not pkg.TotalCalories scaled.
func ScalePackage(pkg models.MealPackage, mealsByID map[uint]*models.PredefinedMeal, target float64) ScaledPackage {
	factor := 1.0
	if pkg.TotalCalories > 0 {
		factor = target / pkg.TotalCalories
	}

	var scaledTotal float64
	entries := make([]ScaledEntry, 0, len(pkg.Entries))
	for _, e := range pkg.Entries {
		meal := mealsByID[e.PredefinedMealID]
		if meal == nil {
			entries = append(entries, ScaledEntry{
				Meal: PackageMeal{
					ID:          e.PredefinedMealID,
					Name:        "Meal not found",
					Units:       []models.MealUnit{},
					Tags:        []string{},
					Ingredients: []string{},
					Category:    "unknown",
				},
				Unit:             e.Unit,
				Category:         e.Category,
				OriginalQuantity: e.Quantity,
				ScaledQuantity:   e.Quantity * factor,
			})
			continue
		}

		unitCalories := meal.UnitCalories(e.Unit)
		scaledQuantity := e.Quantity * factor
		scaledCalories := unitCalories * scaledQuantity
		scaledTotal += scaledCalories

		entries = append(entries, ScaledEntry{
			Meal: PackageMeal{
				ID:          meal.ID,
				Name:        meal.Name,
				Units:       meal.Units,
				Tags:        meal.Tags,
				Ingredients: meal.Ingredients,
				Category:    meal.Category,
				ImageURL:    meal.ImageURL,
			},
			Unit:             e.Unit,
			Category:         e.Category,
			OriginalQuantity: e.Quantity,
			OriginalCalories: unitCalories * e.Quantity,
			ScaledQuantity:   scaledQuantity,
			ScaledCalories:   scaledCalories,
		})
	}

	return ScaledPackage{
		ID:                    pkg.ID,
		Title:                 pkg.Title,
		Goal:                  pkg.Goal,
		Tags:                  pkg.Tags,
		OriginalTotalCalories: pkg.TotalCalories,
		ScaledTotalCalories:   roundInt(scaledTotal),
		ScalingFactor:         factor,
		Meals:                 entries,
	}
}
