package models

import (
	"time"

	"gorm.io/gorm"
)

type GroceryList struct {
	gorm.Model
	UserID      uint   `gorm:"index;not null"`
	Name        string `gorm:"not null"`
	Items       []GroceryItem
	IsCompleted bool `gorm:"default:false"`
	CompletedAt *time.Time
}

type GroceryItem struct {
	gorm.Model
	GroceryListID uint    `gorm:"index;not null"`
	Name          string  `gorm:"not null"`
	Quantity      float64 `gorm:"default:1"`
	Unit          string  `gorm:"default:piece"`
	Category      string  `gorm:"default:other"`
	IsChecked     bool    `gorm:"default:false"`
}
