package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"backend/models"

	"gorm.io/gorm"
)

var (
	ErrGroceryListNotFound = errors.New("grocery list not found")
	ErrGroceryItemNotFound = errors.New("grocery item not found")
)

type GroceryService struct{ db *gorm.DB }

func NewGroceryService(db *gorm.DB) *GroceryService { return &GroceryService{db: db} }

type GroceryItemRequest struct {
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	Unit      string  `json:"unit"`
	Category  string  `json:"category"`
	IsChecked *bool   `json:"is_checked"`
}

func (s *GroceryService) CreateList(ctx context.Context, userID uint, name string, items []GroceryItemRequest) (*models.GroceryList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrMissingFields
	}

	list := models.GroceryList{UserID: userID, Name: name}
	for _, it := range items {
		if strings.TrimSpace(it.Name) == "" {
			continue
		}
		list.Items = append(list.Items, models.GroceryItem{
			Name:     strings.TrimSpace(it.Name),
			Quantity: it.Quantity,
			Unit:     it.Unit,
			Category: it.Category,
		})
	}

	if err := s.db.WithContext(ctx).Create(&list).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

func (s *GroceryService) Lists(ctx context.Context, userID uint) ([]models.GroceryList, error) {
	var lists []models.GroceryList
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&lists).Error
	return lists, err
}

// ActiveList is the most recent list not yet marked completed.
func (s *GroceryService) ActiveList(ctx context.Context, userID uint) (*models.GroceryList, error) {
	var list models.GroceryList
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ? AND is_completed = ?", userID, false).
		Order("created_at DESC").
		First(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroceryListNotFound
		}
		return nil, err
	}
	return &list, nil
}

func (s *GroceryService) RenameList(ctx context.Context, userID, listID uint, name string) (*models.GroceryList, error) {
	list, err := s.getList(ctx, userID, listID)
	if err != nil {
		return nil, err
	}
	list.Name = strings.TrimSpace(name)
	if err := s.db.WithContext(ctx).Save(list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// CompleteList marks the list done and stamps the completion time.
func (s *GroceryService) CompleteList(ctx context.Context, userID, listID uint) (*models.GroceryList, error) {
	list, err := s.getList(ctx, userID, listID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	list.IsCompleted = true
	list.CompletedAt = &now
	if err := s.db.WithContext(ctx).Save(list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (s *GroceryService) DeleteList(ctx context.Context, userID, listID uint) error {
	list, err := s.getList(ctx, userID, listID)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Where("grocery_list_id = ?", list.ID).Delete(&models.GroceryItem{}).Error; err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(list).Error
}

func (s *GroceryService) AddItem(ctx context.Context, userID, listID uint, req GroceryItemRequest) (*models.GroceryList, error) {
	list, err := s.getList(ctx, userID, listID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrMissingFields
	}

	item := models.GroceryItem{
		GroceryListID: list.ID,
		Name:          strings.TrimSpace(req.Name),
		Quantity:      req.Quantity,
		Unit:          req.Unit,
		Category:      req.Category,
	}
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}
	return s.getList(ctx, userID, listID)
}

func (s *GroceryService) UpdateItem(ctx context.Context, userID, listID, itemID uint, req GroceryItemRequest) (*models.GroceryList, error) {
	list, err := s.getList(ctx, userID, listID)
	if err != nil {
		return nil, err
	}

	var item models.GroceryItem
	if err := s.db.WithContext(ctx).Where("id = ? AND grocery_list_id = ?", itemID, list.ID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroceryItemNotFound
		}
		return nil, err
	}

	if strings.TrimSpace(req.Name) != "" {
		item.Name = strings.TrimSpace(req.Name)
	}
	if req.Quantity > 0 {
		item.Quantity = req.Quantity
	}
	if req.Unit != "" {
		item.Unit = req.Unit
	}
	if req.Category != "" {
		item.Category = req.Category
	}
	if req.IsChecked != nil {
		item.IsChecked = *req.IsChecked
	}

	if err := s.db.WithContext(ctx).Save(&item).Error; err != nil {
		return nil, err
	}
	return s.getList(ctx, userID, listID)
}

func (s *GroceryService) RemoveItem(ctx context.Context, userID, listID, itemID uint) (*models.GroceryList, error) {
	list, err := s.getList(ctx, userID, listID)
	if err != nil {
		return nil, err
	}
	result := s.db.WithContext(ctx).Where("id = ? AND grocery_list_id = ?", itemID, list.ID).Delete(&models.GroceryItem{})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrGroceryItemNotFound
	}
	return s.getList(ctx, userID, listID)
}

func (s *GroceryService) getList(ctx context.Context, userID, listID uint) (*models.GroceryList, error) {
	var list models.GroceryList
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("id = ? AND user_id = ?", listID, userID).
		First(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroceryListNotFound
		}
		return nil, err
	}
	return &list, nil
}
