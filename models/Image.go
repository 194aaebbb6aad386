package models

import "gorm.io/gorm"

// Image is a Cloudinary-hosted photo attached to a service.
type Image struct {
	gorm.Model
	URL       string `json:"url" gorm:"not null"`
	ServiceID uint   `json:"service_id" gorm:"not null;index"`
	Service   Service `json:"-" gorm:"foreignKey:ServiceID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
