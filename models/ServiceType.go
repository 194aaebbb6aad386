package models

import "gorm.io/gorm"

type ServiceType struct {
	gorm.Model
	Name        string `json:"name" gorm:"size:50;not null"`
	Description string `json:"description" gorm:"type:text"`
}
