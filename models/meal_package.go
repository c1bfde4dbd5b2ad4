package models

import (
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// A meal package bundles catalog entries into a full day's plan for a goal.
// TotalCalories is advisory: it drives the scaling ratio only and is never
// treated as the authoritative sum of the entries.
type MealPackage struct {
	gorm.Model
	Title         string         `gorm:"not null"`
	Goal          string         `gorm:"size:10;index;not null"` // lose | maintain | gain
	Tags          pq.StringArray `gorm:"type:text[]"`
	TotalCalories float64        `gorm:"not null"`
	Entries       []PackageEntry
}

type PackageEntry struct {
	gorm.Model
	MealPackageID    uint    `gorm:"index;not null"`
	PredefinedMealID uint    `gorm:"not null"`
	Quantity         float64 `gorm:"not null"`
	Unit             string  `gorm:"not null"`
	Category         string  `gorm:"size:20"` // breakfast | lunch | snack | dinner
}
