package models

import (
	"time"

	"gorm.io/gorm"
)

type Feedback struct {
	gorm.Model
	UserID            uint   `gorm:"index;not null"`
	Email             string `gorm:"not null"`
	Subject           string `gorm:"size:200;not null"`
	Message           string `gorm:"size:2000;not null"`
	Category          string `gorm:"size:20;default:general"` // bug | feature | general | complaint | praise
	Rating            *int   // 1..5, optional
	Status            string `gorm:"size:20;default:pending"`
	Priority          string `gorm:"size:10;default:medium"`
	AdminResponse     string `gorm:"size:1000"`
	AdminResponseDate *time.Time
	IsAnonymous       bool `gorm:"default:false"`
}
