package services

import (
	"errors"
	"fmt"

	"travel-api-server/models"

	"gorm.io/gorm"
)

var (
	ErrScheduleNotFound = errors.New("service schedule not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrCapacityExceeded = errors.New("booking quantity exceeds available slots")
	ErrAlreadyPaid      = errors.New("booking is already paid")
	ErrInvalidQuantity  = errors.New("booking quantity must be at least 1")
)

// BookingService owns the slot capacity ledger: every change to
// ServiceSchedule.Available goes through the guarded updates below, so two
// concurrent reservations can never both pass the capacity check.
type BookingService struct {
	DB *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{DB: db}
}

// Reserve books quantity seats on a schedule for a customer. The capacity
// check and the decrement are a single conditional UPDATE, so a concurrent
// reservation that would overbook sees zero rows affected and fails with
// ErrCapacityExceeded.
func (s *BookingService) Reserve(customerID, scheduleID uint, quantity int) (*models.Booking, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	var booking *models.Booking
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var customer models.Customer
		if err := tx.First(&customer, customerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCustomerNotFound
			}
			return err
		}

		var schedule models.ServiceSchedule
		if err := tx.Preload("Service.Discount").First(&schedule, scheduleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrScheduleNotFound
			}
			return err
		}

		res := tx.Model(&models.ServiceSchedule{}).
			Where("id = ? AND available >= ?", scheduleID, quantity).
			UpdateColumn("available", gorm.Expr("available - ?", quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrCapacityExceeded
		}

		discount := 0.0
		if schedule.Service.Discount != nil {
			discount = schedule.Service.Discount.Discount
		}
		totalPrice := schedule.Service.Price * (1 - discount/100) * float64(quantity)

		booking = &models.Booking{
			CustomerID:        customerID,
			ServiceScheduleID: scheduleID,
			Quantity:          quantity,
			TotalPrice:        totalPrice,
			PaymentStatus:     false,
		}
		return tx.Create(booking).Error
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// ConfirmPayment flips payment_status to true exactly once. A second call
// fails with ErrAlreadyPaid and changes nothing, so revenue totals never
// count a booking twice. Capacity was committed at reservation time and is
// not re-validated here.
func (s *BookingService) ConfirmPayment(bookingID uint, method string) (*models.Booking, error) {
	var booking models.Booking
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		res := tx.Model(&models.Booking{}).
			Where("id = ? AND payment_status = ?", bookingID, false).
			Updates(map[string]interface{}{
				"payment_status": true,
				"payment_method": method,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyPaid
		}

		booking.PaymentStatus = true
		booking.PaymentMethod = method
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// Cancel soft-deletes a booking and returns its seats to the schedule. The
// restore is guarded against exceeding max_slot, which can only happen if the
// ledger was edited outside this service.
func (s *BookingService) Cancel(bookingID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		res := tx.Model(&models.ServiceSchedule{}).
			Where("id = ? AND available + ? <= max_slot", booking.ServiceScheduleID, booking.Quantity).
			UpdateColumn("available", gorm.Expr("available + ?", booking.Quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("restoring %d slots on schedule %d would exceed max_slot", booking.Quantity, booking.ServiceScheduleID)
		}

		return tx.Delete(&booking).Error
	})
}
