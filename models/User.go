package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Username  string `json:"username" gorm:"size:150;not null;uniqueIndex"`
	Email     string `json:"email" gorm:"size:255;index"`
	Password  string `json:"-" gorm:"not null"`
	Phone     string `json:"phone" gorm:"size:10;not null"`
	Address   string `json:"address" gorm:"size:100"`
	AvatarURL string `json:"avatar_url"`
	RoleID    *uint  `json:"role_id" gorm:"index"`
	Role      *Role  `json:"role,omitempty" gorm:"foreignKey:RoleID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}
