package models

import "gorm.io/gorm"

type Review struct {
	gorm.Model
	Star    int    `json:"star" gorm:"not null;check:star >= 1 AND star <= 5"`
	Content string `json:"content" gorm:"type:text"`

	CustomerID uint     `json:"customer_id" gorm:"not null;index"`
	Customer   Customer `json:"customer" gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	ServiceID  uint     `json:"service_id" gorm:"not null;index"`
	Service    Service  `json:"-" gorm:"foreignKey:ServiceID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
