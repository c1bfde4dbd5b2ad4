package services

import (
	"context"
	"errors"
	"log"

	"backend/models"

	"gorm.io/gorm"
)

var (
	ErrWeightLogNotFound = errors.New("weight log not found")
	ErrInvalidWeight     = errors.New("invalid weight value")
)

type WeightLogService struct{ db *gorm.DB }

func NewWeightLogService(db *gorm.DB) *WeightLogService { return &WeightLogService{db: db} }

func (s *WeightLogService) List(ctx context.Context, userID uint) ([]models.WeightLog, error) {
	var logs []models.WeightLog
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&logs).Error
	return logs, err
}

// Create records a weight reading and mirrors it onto the profile so
// calorie and water targets track the latest weight.
func (s *WeightLogService) Create(ctx context.Context, userID uint, weight float64, note string) (*models.WeightLog, error) {
	if weight <= 0 {
		return nil, ErrInvalidWeight
	}

	entry := models.WeightLog{UserID: userID, Weight: weight, Note: note}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("weight", weight).Error; err != nil {
		log.Printf("failed to sync profile weight for user %d: %v", userID, err)
	}

	return &entry, nil
}

func (s *WeightLogService) Update(ctx context.Context, userID, logID uint, weight *float64, note *string) (*models.WeightLog, error) {
	var entry models.WeightLog
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", logID, userID).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWeightLogNotFound
		}
		return nil, err
	}

	if weight != nil {
		if *weight <= 0 {
			return nil, ErrInvalidWeight
		}
		entry.Weight = *weight
	}
	if note != nil {
		entry.Note = *note
	}

	if err := s.db.WithContext(ctx).Save(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *WeightLogService) Delete(ctx context.Context, userID, logID uint) error {
	var entry models.WeightLog
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", logID, userID).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWeightLogNotFound
		}
		return err
	}
	return s.db.WithContext(ctx).Delete(&entry).Error
}
