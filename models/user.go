package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email         string `gorm:"uniqueIndex;not null"`
	Password      string `gorm:"not null"`
	IsPremium     bool   `gorm:"default:false"`
	ResetToken    string
	ResetTokenExp time.Time

	// Profile
	Name                string
	Age                 int
	Gender              string // "male" | "female" | "other"
	Height              float64
	Weight              float64
	TargetWeight        float64
	ActivityLevel       string         // sedentary | light | moderate | active | very_active
	Goal                string         `gorm:"default:maintain"` // lose | maintain | gain
	DietaryRestrictions pq.StringArray `gorm:"type:text[]"`
	ProfilePicture      string

	// Cumulative stats
	StreakDays          int
	TotalWorkouts       int
	TotalCaloriesBurned float64
	LastWorkout         *time.Time

	NotificationsEnabled bool `gorm:"default:true"`
	PremiumExpiryDate    *time.Time
}

// HasProfile reports whether enough demographic data exists to derive
// a calorie target instead of falling back to defaults.
func (u *User) HasProfile() bool {
	return u.Age > 0 && u.Height > 0 && u.Weight > 0
}

// Overweight: current weight exceeds the target by more than 5 kg.
// A profile without a target weight is never flagged.
func (u *User) Overweight() bool {
	return u.TargetWeight > 0 && u.Weight-u.TargetWeight > 5
}
