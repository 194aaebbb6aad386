package services

import (
	"time"

	"travel-api-server/models"

	"gorm.io/gorm"
)

// ServiceRevenue is one row of a provider's monthly roll-up.
type ServiceRevenue struct {
	ServiceName  string  `json:"service_name"`
	TotalRevenue float64 `json:"total_revenue"`
}

// MonthRevenue is one row of the yearly roll-up.
type MonthRevenue struct {
	Month        int     `json:"month"`
	TotalRevenue float64 `json:"total_revenue"`
}

// RevenueService rolls up paid bookings. Only bookings with
// payment_status=true count, and soft-deleted (cancelled) bookings are
// excluded by gorm's default scope.
type RevenueService struct {
	DB *gorm.DB
}

func NewRevenueService(db *gorm.DB) *RevenueService {
	return &RevenueService{DB: db}
}

// monthRange returns the half-open [start, end) interval of a month in UTC.
// Range filters on created_at keep the query portable between Postgres and
// the sqlite test database.
func monthRange(month, year int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// MonthlyRevenue sums paid booking totals of one provider for a given month,
// grouped by service.
func (s *RevenueService) MonthlyRevenue(providerID uint, month, year int) ([]ServiceRevenue, error) {
	start, end := monthRange(month, year)

	rows := make([]ServiceRevenue, 0)
	err := s.DB.Model(&models.Booking{}).
		Select("services.name AS service_name, SUM(bookings.total_price) AS total_revenue").
		Joins("JOIN service_schedules ON service_schedules.id = bookings.service_schedule_id").
		Joins("JOIN services ON services.id = service_schedules.service_id").
		Where("services.provider_id = ?", providerID).
		Where("bookings.payment_status = ?", true).
		Where("bookings.created_at >= ? AND bookings.created_at < ?", start, end).
		Group("services.name").
		Order("services.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// YearlyRevenue sums paid booking totals across all providers for each of the
// 12 months of a year. Months with no bookings are reported with a zero
// total, never omitted.
func (s *RevenueService) YearlyRevenue(year int) ([]MonthRevenue, error) {
	rows := make([]MonthRevenue, 0, 12)
	for month := 1; month <= 12; month++ {
		start, end := monthRange(month, year)

		var total float64
		err := s.DB.Model(&models.Booking{}).
			Select("COALESCE(SUM(total_price), 0)").
			Where("payment_status = ?", true).
			Where("created_at >= ? AND created_at < ?", start, end).
			Scan(&total).Error
		if err != nil {
			return nil, err
		}
		rows = append(rows, MonthRevenue{Month: month, TotalRevenue: total})
	}
	return rows, nil
}
