package services

import (
	"context"
	"errors"
	"strings"

	"backend/models"

	"gorm.io/gorm"
)

var (
	ErrCatalogMealNotFound = errors.New("predefined meal not found")
	ErrPackageNotFound     = errors.New("meal package not found")
)

// CatalogService manages the shared predefined-meal catalog and the
// meal packages built from it. These are admin-maintained; user-facing
// reads go through SearchService and PackageService.
type CatalogService struct{ db *gorm.DB }

func NewCatalogService(db *gorm.DB) *CatalogService { return &CatalogService{db: db} }

// SaveMeal creates or updates a catalog entry. Search fields are
// rederived on every save so the search index never drifts from the
// visible name, ingredients and tags.
func (s *CatalogService) SaveMeal(ctx context.Context, meal *models.PredefinedMeal) error {
	meal.Name = strings.TrimSpace(meal.Name)
	if meal.Name == "" {
		return ErrMissingFields
	}
	models.DeriveSearchFields(meal)
	return s.db.WithContext(ctx).Save(meal).Error
}

func (s *CatalogService) GetMeal(ctx context.Context, id uint) (*models.PredefinedMeal, error) {
	var meal models.PredefinedMeal
	if err := s.db.WithContext(ctx).Preload("Units").First(&meal, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCatalogMealNotFound
		}
		return nil, err
	}
	return &meal, nil
}

func (s *CatalogService) ListMeals(ctx context.Context, category string) ([]models.PredefinedMeal, error) {
	tx := s.db.WithContext(ctx).Preload("Units").Order("name ASC")
	if category != "" {
		tx = tx.Where("category = ?", strings.ToLower(category))
	}
	var meals []models.PredefinedMeal
	err := tx.Find(&meals).Error
	return meals, err
}

func (s *CatalogService) DeleteMeal(ctx context.Context, id uint) error {
	meal, err := s.GetMeal(ctx, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Where("predefined_meal_id = ?", meal.ID).Delete(&models.MealUnit{}).Error; err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(meal).Error
}

func (s *CatalogService) SavePackage(ctx context.Context, pkg *models.MealPackage) error {
	pkg.Title = strings.TrimSpace(pkg.Title)
	if pkg.Title == "" || pkg.Goal == "" {
		return ErrMissingFields
	}
	return s.db.WithContext(ctx).Save(pkg).Error
}

func (s *CatalogService) GetPackage(ctx context.Context, id uint) (*models.MealPackage, error) {
	var pkg models.MealPackage
	if err := s.db.WithContext(ctx).Preload("Entries").First(&pkg, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, err
	}
	return &pkg, nil
}

func (s *CatalogService) ListPackages(ctx context.Context, goal string) ([]models.MealPackage, error) {
	tx := s.db.WithContext(ctx).Preload("Entries").Order("title ASC")
	if goal != "" {
		tx = tx.Where("goal = ?", goal)
	}
	var pkgs []models.MealPackage
	err := tx.Find(&pkgs).Error
	return pkgs, err
}

func (s *CatalogService) DeletePackage(ctx context.Context, id uint) error {
	pkg, err := s.GetPackage(ctx, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Where("meal_package_id = ?", pkg.ID).Delete(&models.PackageEntry{}).Error; err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(pkg).Error
}
