package services

import (
	"testing"
	"time"

	"travel-api-server/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// All revenue fixtures are pinned to one fixed UTC month so assertions never
// depend on the wall clock or the local timezone.
var revenueMonth = time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)

// seedRevenueData creates one provider with two services and a mix of paid,
// unpaid and cancelled bookings, all dated revenueMonth.
func seedRevenueData(t *testing.T, db *gorm.DB) (providerID uint) {
	t.Helper()

	fx := seedSchedule(t, db, 100, 0, 50)
	svc := NewBookingService(db)

	var schedule models.ServiceSchedule
	if err := db.Preload("Service").First(&schedule, fx.Schedule.ID).Error; err != nil {
		t.Fatalf("loading schedule: %v", err)
	}
	providerID = schedule.Service.ProviderID

	secondService := models.Service{
		Name:          "Mekong Boat Trip",
		Address:       "Can Tho",
		Price:         200,
		ServiceTypeID: schedule.Service.ServiceTypeID,
		ProviderID:    providerID,
		ProvinceID:    schedule.Service.ProvinceID,
	}
	if err := db.Create(&secondService).Error; err != nil {
		t.Fatalf("seeding second service: %v", err)
	}
	secondSchedule := models.ServiceSchedule{
		ServiceID: secondService.ID,
		Date:      datatypes.Date(time.Now().AddDate(0, 0, 3)),
		StartTime: "08:00",
		EndTime:   "12:00",
		MaxSlot:   20,
		Available: 20,
	}
	if err := db.Create(&secondSchedule).Error; err != nil {
		t.Fatalf("seeding second schedule: %v", err)
	}

	// Paid: 2x100 on the walking tour, 1x200 on the boat trip.
	paidWalk, err := svc.Reserve(fx.Customer.ID, fx.Schedule.ID, 2)
	if err != nil {
		t.Fatalf("reserving paid booking: %v", err)
	}
	if _, err := svc.ConfirmPayment(paidWalk.ID, "momo"); err != nil {
		t.Fatalf("confirming payment: %v", err)
	}
	paidBoat, err := svc.Reserve(fx.Customer.ID, secondSchedule.ID, 1)
	if err != nil {
		t.Fatalf("reserving boat booking: %v", err)
	}
	if _, err := svc.ConfirmPayment(paidBoat.ID, "zalopay"); err != nil {
		t.Fatalf("confirming boat payment: %v", err)
	}

	// Unpaid booking, must never show up in revenue.
	if _, err := svc.Reserve(fx.Customer.ID, fx.Schedule.ID, 5); err != nil {
		t.Fatalf("reserving unpaid booking: %v", err)
	}

	// Paid then cancelled, must never show up either.
	cancelled, err := svc.Reserve(fx.Customer.ID, fx.Schedule.ID, 4)
	if err != nil {
		t.Fatalf("reserving cancelled booking: %v", err)
	}
	if _, err := svc.ConfirmPayment(cancelled.ID, "momo"); err != nil {
		t.Fatalf("confirming cancelled booking: %v", err)
	}
	if err := svc.Cancel(cancelled.ID); err != nil {
		t.Fatalf("cancelling booking: %v", err)
	}

	// Rewrite created_at (cancelled rows included) onto the pinned month.
	if err := db.Unscoped().Model(&models.Booking{}).
		Where("1 = 1").
		UpdateColumn("created_at", revenueMonth).Error; err != nil {
		t.Fatalf("pinning booking dates: %v", err)
	}

	return providerID
}

func TestMonthlyRevenueCountsOnlyPaidBookings(t *testing.T) {
	db := openTestDB(t)
	providerID := seedRevenueData(t, db)

	rows, err := NewRevenueService(db).MonthlyRevenue(providerID, int(revenueMonth.Month()), revenueMonth.Year())
	if err != nil {
		t.Fatalf("MonthlyRevenue: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("expected 2 services with revenue, got %d: %+v", len(rows), rows)
	}
	byName := map[string]float64{}
	for _, row := range rows {
		byName[row.ServiceName] = row.TotalRevenue
	}
	if byName["City Walking Tour"] != 200 {
		t.Errorf("walking tour revenue: expected 200, got %v", byName["City Walking Tour"])
	}
	if byName["Mekong Boat Trip"] != 200 {
		t.Errorf("boat trip revenue: expected 200, got %v", byName["Mekong Boat Trip"])
	}
}

func TestMonthlyRevenueEmptyMonth(t *testing.T) {
	db := openTestDB(t)
	providerID := seedRevenueData(t, db)

	// A month far in the past has no bookings at all.
	rows, err := NewRevenueService(db).MonthlyRevenue(providerID, 1, 2001)
	if err != nil {
		t.Fatalf("MonthlyRevenue: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected no revenue rows, got %+v", rows)
	}
}

func TestMonthlyRevenueUnknownProvider(t *testing.T) {
	db := openTestDB(t)
	seedRevenueData(t, db)

	rows, err := NewRevenueService(db).MonthlyRevenue(9999, int(revenueMonth.Month()), revenueMonth.Year())
	if err != nil {
		t.Fatalf("MonthlyRevenue: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected no rows for unknown provider, got %+v", rows)
	}
}

func TestYearlyRevenueAlwaysReportsTwelveMonths(t *testing.T) {
	db := openTestDB(t)
	seedRevenueData(t, db)

	rows, err := NewRevenueService(db).YearlyRevenue(revenueMonth.Year())
	if err != nil {
		t.Fatalf("YearlyRevenue: %v", err)
	}

	if len(rows) != 12 {
		t.Fatalf("expected 12 months, got %d", len(rows))
	}
	var total float64
	for i, row := range rows {
		if row.Month != i+1 {
			t.Errorf("expected month %d at position %d, got %d", i+1, i, row.Month)
		}
		if row.Month != int(revenueMonth.Month()) && row.TotalRevenue != 0 {
			t.Errorf("month %d: expected zero revenue, got %v", row.Month, row.TotalRevenue)
		}
		total += row.TotalRevenue
	}
	if total != 400 {
		t.Errorf("expected 400 total paid revenue, got %v", total)
	}
}
