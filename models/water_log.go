package models

import "gorm.io/gorm"

type WaterLog struct {
	gorm.Model
	UserID uint    `gorm:"index;not null"`
	Amount float64 `gorm:"not null"` // millilitres
	Target float64 `gorm:"default:2000"`
	Note   string  `gorm:"size:500"`
}
