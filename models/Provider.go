package models

import "gorm.io/gorm"

// Provider is a business entity offering one or more services.
type Provider struct {
	gorm.Model
	Name        string `json:"name" gorm:"size:100;not null"`
	Description string `json:"description" gorm:"type:text"`
	UserID      uint   `json:"user_id" gorm:"not null;uniqueIndex"`
	User        User   `json:"user" gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	Services []Service `json:"services,omitempty" gorm:"foreignKey:ProviderID"`
}
