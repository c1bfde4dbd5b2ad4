package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// A logged meal. Immutable once written except for deletion.
type Meal struct {
	gorm.Model
	UserID           uint           `gorm:"index;not null"`
	Type             string         `gorm:"size:20"` // breakfast | lunch | dinner | snack | other
	Name             string         `gorm:"not null"`
	Calories         int            `gorm:"not null"`
	Protein          int            `gorm:"default:0"`
	Carbs            int            `gorm:"default:0"`
	Fat              int            `gorm:"default:0"`
	Ingredients      pq.StringArray `gorm:"type:text[]"`
	Date             time.Time      `gorm:"index"`
	PredefinedMealID *uint
	PhotoURL         string
}
