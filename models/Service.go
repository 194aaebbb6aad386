package models

import "gorm.io/gorm"

// Service is a bookable tour or activity listed by a provider.
type Service struct {
	gorm.Model
	Name        string  `json:"name" gorm:"size:100;not null;index"`
	Address     string  `json:"address" gorm:"size:100;not null"`
	Price       float64 `json:"price" gorm:"not null;default:0;index"`
	Description string  `json:"description" gorm:"type:text"`
	Require     string  `json:"require" gorm:"type:text"`

	DiscountID    *uint       `json:"discount_id" gorm:"index"`
	Discount      *Discount   `json:"discount,omitempty" gorm:"foreignKey:DiscountID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	ServiceTypeID uint        `json:"service_type_id" gorm:"not null;index"`
	ServiceType   ServiceType `json:"service_type" gorm:"foreignKey:ServiceTypeID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	ProviderID    uint        `json:"provider_id" gorm:"not null;index"`
	Provider      Provider    `json:"provider" gorm:"foreignKey:ProviderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	ProvinceID    uint        `json:"province_id" gorm:"not null;index"`
	Province      Province    `json:"province" gorm:"foreignKey:ProvinceID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`

	Images    []Image           `json:"images,omitempty" gorm:"foreignKey:ServiceID"`
	Schedules []ServiceSchedule `json:"schedules,omitempty" gorm:"foreignKey:ServiceID"`
	Reviews   []Review          `json:"reviews,omitempty" gorm:"foreignKey:ServiceID"`
}
