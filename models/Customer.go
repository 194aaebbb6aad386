package models

import "gorm.io/gorm"

type Customer struct {
	gorm.Model
	FirstName string `json:"first_name" gorm:"size:30;not null"`
	LastName  string `json:"last_name" gorm:"size:30;not null"`
	Birthday  string `json:"birthday" gorm:"size:10"` // "2006-01-02"
	Gender    string `json:"gender" gorm:"size:15"`
	UserID    uint   `json:"user_id" gorm:"not null;uniqueIndex"`
	User      User   `json:"user" gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
