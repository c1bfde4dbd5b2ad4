package models

import (
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Reminder struct {
	gorm.Model
	UserID         uint           `gorm:"index;not null"`
	Type           string         `gorm:"size:10;not null"` // meal | water | exercise | weight
	Title          string         `gorm:"not null"`
	Message        string         `gorm:"not null"`
	Time           string         `gorm:"size:5;not null"` // "HH:MM"
	Days           pq.StringArray `gorm:"type:text[]"`
	IsActive       bool           `gorm:"default:true"`
	MealType       string         `gorm:"size:10"` // required when Type == "meal"
	NotificationID string
}

// AllDays is the default schedule for a new reminder.
var AllDays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
