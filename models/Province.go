package models

import "gorm.io/gorm"

type Province struct {
	gorm.Model
	Name string `json:"name" gorm:"size:100;not null;uniqueIndex"`
}
