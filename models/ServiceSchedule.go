package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ServiceSchedule is a bookable date+time slot of a service with finite
// capacity. Available is the slot ledger: it only moves through the guarded
// updates in services/bookings.go and must stay within [0, MaxSlot].
type ServiceSchedule struct {
	gorm.Model
	ServiceID uint    `json:"service_id" gorm:"not null;index"`
	Service   Service `json:"service" gorm:"foreignKey:ServiceID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	Date      datatypes.Date `json:"date" gorm:"type:date;not null;index"`
	StartTime string         `json:"start_time" gorm:"size:5;not null"` // "09:00"
	EndTime   string         `json:"end_time" gorm:"size:5;not null"`   // "17:00"

	MaxSlot   int `json:"max_slot" gorm:"not null;check:max_slot >= 0"`
	Available int `json:"available" gorm:"not null;check:available >= 0 AND available <= max_slot"`

	Bookings []Booking `json:"bookings,omitempty" gorm:"foreignKey:ServiceScheduleID"`
}
