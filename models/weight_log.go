package models

import "gorm.io/gorm"

type WeightLog struct {
	gorm.Model
	UserID uint    `gorm:"index;not null"`
	Weight float64 `gorm:"not null"` // kilograms
	Note   string  `gorm:"size:500"`
}
