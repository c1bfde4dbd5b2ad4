package services

import (
	"context"
	"errors"

	"backend/models"
	"backend/utils"

	"gorm.io/gorm"
)

var (
	ErrWaterLogNotFound = errors.New("water log not found")
	ErrInvalidAmount    = errors.New("invalid amount")
)

type WaterLogService struct{ db *gorm.DB }

func NewWaterLogService(db *gorm.DB) *WaterLogService { return &WaterLogService{db: db} }

func (s *WaterLogService) List(ctx context.Context, userID uint) ([]models.WaterLog, error) {
	var logs []models.WaterLog
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&logs).Error
	return logs, err
}

func (s *WaterLogService) Create(ctx context.Context, userID uint, amount float64, note string) (*models.WaterLog, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	log := models.WaterLog{
		UserID: userID,
		Amount: amount,
		Target: float64(utils.DefaultWaterGoalML),
		Note:   note,
	}
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err == nil {
		log.Target = float64(utils.DailyWaterTarget(&user))
	}

	if err := s.db.WithContext(ctx).Create(&log).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

func (s *WaterLogService) Delete(ctx context.Context, userID, logID uint) error {
	var log models.WaterLog
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", logID, userID).First(&log).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWaterLogNotFound
		}
		return err
	}
	return s.db.WithContext(ctx).Delete(&log).Error
}
