package services

import (
	"context"
	"errors"
	"strings"

	"backend/models"

	"gorm.io/gorm"
)

var (
	ErrFeedbackNotFound = errors.New("feedback not found")
	ErrInvalidFeedback  = errors.New("invalid feedback")
)

var feedbackCategories = map[string]bool{
	"bug":       true,
	"feature":   true,
	"general":   true,
	"complaint": true,
	"praise":    true,
}

type FeedbackService struct{ db *gorm.DB }

func NewFeedbackService(db *gorm.DB) *FeedbackService { return &FeedbackService{db: db} }

type FeedbackRequest struct {
	Email       string `json:"email"`
	Subject     string `json:"subject"`
	Message     string `json:"message"`
	Category    string `json:"category"`
	Rating      *int   `json:"rating"`
	IsAnonymous bool   `json:"isAnonymous"`
}

func (s *FeedbackService) Submit(ctx context.Context, userID uint, req FeedbackRequest) (*models.Feedback, error) {
	req.Subject = strings.TrimSpace(req.Subject)
	req.Message = strings.TrimSpace(req.Message)

	switch {
	case !strings.Contains(req.Email, "@"):
		return nil, ErrInvalidFeedback
	case req.Subject == "" || len(req.Subject) > 200:
		return nil, ErrInvalidFeedback
	case req.Message == "" || len(req.Message) > 2000:
		return nil, ErrInvalidFeedback
	case !feedbackCategories[req.Category]:
		return nil, ErrInvalidFeedback
	case req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5):
		return nil, ErrInvalidFeedback
	}

	fb := models.Feedback{
		UserID:      userID,
		Email:       req.Email,
		Subject:     req.Subject,
		Message:     req.Message,
		Category:    req.Category,
		Rating:      req.Rating,
		Status:      "pending",
		Priority:    "medium",
		IsAnonymous: req.IsAnonymous,
	}
	if err := s.db.WithContext(ctx).Create(&fb).Error; err != nil {
		return nil, err
	}
	return &fb, nil
}

func (s *FeedbackService) History(ctx context.Context, userID uint) ([]models.Feedback, error) {
	var feedback []models.Feedback
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&feedback).Error
	return feedback, err
}

func (s *FeedbackService) Get(ctx context.Context, userID, feedbackID uint) (*models.Feedback, error) {
	var fb models.Feedback
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", feedbackID, userID).First(&fb).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeedbackNotFound
		}
		return nil, err
	}
	return &fb, nil
}
