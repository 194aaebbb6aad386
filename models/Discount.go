package models

import "gorm.io/gorm"

// Discount is a percentage taken off the service price at reservation time.
type Discount struct {
	gorm.Model
	Name     string  `json:"name" gorm:"size:100;not null"`
	Discount float64 `json:"discount" gorm:"not null;check:discount >= 0 AND discount <= 100"`
}
