package services

import "gorm.io/gorm"

func gormModel(id uint) gorm.Model { return gorm.Model{ID: id} }

func floatPtr(v float64) *float64 { return &v }
