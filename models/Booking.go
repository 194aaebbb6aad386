package models

import "gorm.io/gorm"

// Booking ties one customer to one schedule slot. PaymentStatus starts false
// and flips to true exactly once via the payment confirmation path.
// Cancellation soft-deletes the row so revenue queries skip it automatically.
type Booking struct {
	gorm.Model
	CustomerID uint     `json:"customer_id" gorm:"not null;index"`
	Customer   Customer `json:"customer" gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	ServiceScheduleID uint            `json:"service_schedule_id" gorm:"not null;index"`
	ServiceSchedule   ServiceSchedule `json:"service_schedule" gorm:"foreignKey:ServiceScheduleID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`

	Quantity      int     `json:"quantity" gorm:"not null;check:quantity >= 1"`
	TotalPrice    float64 `json:"total_price" gorm:"not null"`
	PaymentStatus bool    `json:"payment_status" gorm:"not null;default:false;index"`
	PaymentMethod string  `json:"payment_method" gorm:"size:20"`
}
