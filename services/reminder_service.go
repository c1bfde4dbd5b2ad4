package services

import (
	"context"
	"errors"
	"regexp"
	"strconv"

	"backend/models"

	"gorm.io/gorm"
)

var (
	ErrReminderNotFound = errors.New("reminder not found")
	ErrInvalidTime      = errors.New("time must be HH:MM")
)

var timeOfDayRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

type ReminderService struct {
	db   *gorm.DB
	push *PushService // nil disables push notifications
}

func NewReminderService(db *gorm.DB, push *PushService) *ReminderService {
	return &ReminderService{db: db, push: push}
}

type ReminderRequest struct {
	Type     string   `json:"type"`
	Title    string   `json:"title"`
	Message  string   `json:"message"`
	Time     string   `json:"time"` // "HH:MM", 24h
	Days     []string `json:"days"`
	MealType string   `json:"meal_type"`
	IsActive *bool    `json:"is_active"`
}

func (s *ReminderService) List(ctx context.Context, userID uint) ([]models.Reminder, error) {
	var reminders []models.Reminder
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("time ASC").
		Find(&reminders).Error
	return reminders, err
}

func (s *ReminderService) Create(ctx context.Context, userID uint, req ReminderRequest) (*models.Reminder, error) {
	if req.Type == "" || req.Title == "" || req.Message == "" || req.Time == "" {
		return nil, ErrMissingFields
	}
	if !timeOfDayRe.MatchString(req.Time) {
		return nil, ErrInvalidTime
	}

	reminder := models.Reminder{
		UserID:   userID,
		Type:     req.Type,
		Title:    req.Title,
		Message:  req.Message,
		Time:     req.Time,
		Days:     req.Days,
		IsActive: true,
	}
	if len(reminder.Days) == 0 {
		reminder.Days = models.AllDays
	}
	if req.Type == "meal" {
		reminder.MealType = req.MealType
	}

	if err := s.db.WithContext(ctx).Create(&reminder).Error; err != nil {
		return nil, err
	}

	if s.push != nil {
		go s.push.PushToUser(userID, reminder.Title, "Reminder scheduled for "+reminder.Time, map[string]string{
			"reminderId": strconv.FormatUint(uint64(reminder.ID), 10),
			"type":       reminder.Type,
		})
	}
	return &reminder, nil
}

func (s *ReminderService) Update(ctx context.Context, userID, reminderID uint, req ReminderRequest) (*models.Reminder, error) {
	reminder, err := s.get(ctx, userID, reminderID)
	if err != nil {
		return nil, err
	}

	if req.Type != "" {
		reminder.Type = req.Type
	}
	if req.Title != "" {
		reminder.Title = req.Title
	}
	if req.Message != "" {
		reminder.Message = req.Message
	}
	if req.Time != "" {
		if !timeOfDayRe.MatchString(req.Time) {
			return nil, ErrInvalidTime
		}
		reminder.Time = req.Time
	}
	if req.Days != nil {
		reminder.Days = req.Days
	}
	if req.IsActive != nil {
		reminder.IsActive = *req.IsActive
	}
	if reminder.Type == "meal" && req.MealType != "" {
		reminder.MealType = req.MealType
	}

	if err := s.db.WithContext(ctx).Save(reminder).Error; err != nil {
		return nil, err
	}
	return reminder, nil
}

func (s *ReminderService) Delete(ctx context.Context, userID, reminderID uint) error {
	reminder, err := s.get(ctx, userID, reminderID)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(reminder).Error
}

// Toggle flips the active flag and returns the updated reminder.
func (s *ReminderService) Toggle(ctx context.Context, userID, reminderID uint) (*models.Reminder, error) {
	reminder, err := s.get(ctx, userID, reminderID)
	if err != nil {
		return nil, err
	}
	reminder.IsActive = !reminder.IsActive
	if err := s.db.WithContext(ctx).Save(reminder).Error; err != nil {
		return nil, err
	}
	return reminder, nil
}

func (s *ReminderService) get(ctx context.Context, userID, reminderID uint) (*models.Reminder, error) {
	var reminder models.Reminder
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", reminderID, userID).First(&reminder).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReminderNotFound
		}
		return nil, err
	}
	return &reminder, nil
}
