package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"travel-api-server/models"
	"travel-api-server/services"
	"travel-api-server/storage"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// buildTestApp wires the booking API against a fresh in-memory database.
// Auth middleware is left out so the handlers are exercised directly.
func buildTestApp(t *testing.T) *iris.Application {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	storage.InitializeTestDB(db)

	app := iris.New()
	app.Validator = validator.New()

	service := app.Party("/api/services")
	{
		service.Get("/", ListServices)
		service.Get("/{id:uint}", GetService)
	}
	schedule := app.Party("/api/service-schedules")
	{
		schedule.Get("/{id:uint}", GetSchedule)
		schedule.Post("/", CreateSchedule)
		schedule.Patch("/{id:uint}", UpdateSchedule)
		schedule.Delete("/{id:uint}", DeleteSchedule)
	}
	booking := app.Party("/api/bookings")
	{
		booking.Post("/", CreateBooking)
		booking.Get("/customer-bookings", CustomerBookings)
		booking.Get("/customer-bookings-notyetpaid", CustomerBookingsNotYetPaid)
		booking.Post("/{id:uint}/confirm-payment", ConfirmBookingPayment)
		booking.Delete("/{id:uint}", CancelBooking)
	}
	app.Get("/api/customers-by-schedule/{schedule_id:uint}", CustomersBySchedule)
	revenue := app.Party("/api/revenue")
	{
		revenue.Get("/{provider_id:uint}/monthly-revenue", MonthlyRevenue)
		revenue.Get("/yearly-revenue", YearlyRevenue)
	}
	app.Post("/api/payment", CreateMoMoPayment)

	if err := app.Build(); err != nil {
		t.Fatalf("building app: %v", err)
	}
	return app
}

type bookingFixture struct {
	Provider models.Provider
	Customer models.Customer
	Service  models.Service
	Schedule models.ServiceSchedule
}

func seedBookingGraph(t *testing.T, maxSlot int) bookingFixture {
	t.Helper()
	db := storage.DB

	providerUser := models.User{Username: "prov-" + t.Name(), Password: "x", Phone: "0900000001"}
	customerUser := models.User{Username: "cust-" + t.Name(), Password: "x", Phone: "0900000002"}
	if err := db.Create(&providerUser).Error; err != nil {
		t.Fatalf("seeding users: %v", err)
	}
	if err := db.Create(&customerUser).Error; err != nil {
		t.Fatalf("seeding users: %v", err)
	}

	provider := models.Provider{Name: "Hanoi Tours", UserID: providerUser.ID}
	customer := models.Customer{FirstName: "Minh", LastName: "Tran", UserID: customerUser.ID}
	serviceType := models.ServiceType{Name: "Tour"}
	province := models.Province{Name: "Hanoi"}
	for _, record := range []interface{}{&provider, &customer, &serviceType, &province} {
		if err := db.Create(record).Error; err != nil {
			t.Fatalf("seeding fixture: %v", err)
		}
	}

	service := models.Service{
		Name:          "Old Quarter Food Tour",
		Address:       "Hoan Kiem",
		Price:         120,
		ServiceTypeID: serviceType.ID,
		ProviderID:    provider.ID,
		ProvinceID:    province.ID,
	}
	if err := db.Create(&service).Error; err != nil {
		t.Fatalf("seeding service: %v", err)
	}

	schedule := models.ServiceSchedule{
		ServiceID: service.ID,
		Date:      datatypes.Date(time.Now().AddDate(0, 0, 5)),
		StartTime: "18:00",
		EndTime:   "21:00",
		MaxSlot:   maxSlot,
		Available: maxSlot,
	}
	if err := db.Create(&schedule).Error; err != nil {
		t.Fatalf("seeding schedule: %v", err)
	}

	return bookingFixture{Provider: provider, Customer: customer, Service: service, Schedule: schedule}
}

func doJSON(app *iris.Application, method, path string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	return resp
}

func TestBookingLifecycle(t *testing.T) {
	app := buildTestApp(t)
	fx := seedBookingGraph(t, 5)

	// Reserve 3 of 5 slots.
	resp := doJSON(app, http.MethodPost, "/api/bookings", iris.Map{
		"customer_id":         fx.Customer.ID,
		"service_schedule_id": fx.Schedule.ID,
		"quantity":            3,
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating booking, got %d: %s", resp.Code, resp.Body)
	}
	var booking models.Booking
	if err := json.Unmarshal(resp.Body.Bytes(), &booking); err != nil {
		t.Fatalf("decoding booking: %v", err)
	}
	if booking.TotalPrice != 360 {
		t.Errorf("expected total 360, got %v", booking.TotalPrice)
	}

	// The ledger reflects the reservation.
	resp = doJSON(app, http.MethodGet, fmt.Sprintf("/api/service-schedules/%d", fx.Schedule.ID), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 reading schedule, got %d", resp.Code)
	}
	var schedule models.ServiceSchedule
	if err := json.Unmarshal(resp.Body.Bytes(), &schedule); err != nil {
		t.Fatalf("decoding schedule: %v", err)
	}
	if schedule.Available != 2 {
		t.Errorf("expected 2 slots left, got %d", schedule.Available)
	}

	// Overbooking is rejected with 409.
	resp = doJSON(app, http.MethodPost, "/api/bookings", iris.Map{
		"customer_id":         fx.Customer.ID,
		"service_schedule_id": fx.Schedule.ID,
		"quantity":            3,
	})
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 on overbooking, got %d: %s", resp.Code, resp.Body)
	}

	// Schedules with bookings cannot be deleted.
	resp = doJSON(app, http.MethodDelete, fmt.Sprintf("/api/service-schedules/%d", fx.Schedule.ID), nil)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 deleting booked schedule, got %d", resp.Code)
	}

	// Confirm the payment, then confirm again.
	confirmPath := fmt.Sprintf("/api/bookings/%d/confirm-payment", booking.ID)
	resp = doJSON(app, http.MethodPost, confirmPath, iris.Map{"payment_method": "momo"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 confirming payment, got %d: %s", resp.Code, resp.Body)
	}
	resp = doJSON(app, http.MethodPost, confirmPath, iris.Map{"payment_method": "momo"})
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 on second confirmation, got %d", resp.Code)
	}

	// The paid booking shows up in the customer's history.
	resp = doJSON(app, http.MethodGet, fmt.Sprintf("/api/bookings/customer-bookings?customer_id=%d", fx.Customer.ID), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 listing customer bookings, got %d", resp.Code)
	}
	var history struct {
		Data []CustomerBookingResponse `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &history); err != nil {
		t.Fatalf("decoding history: %v", err)
	}
	if len(history.Data) != 1 || history.Data[0].ServiceName != "Old Quarter Food Tour" {
		t.Errorf("unexpected history: %+v", history.Data)
	}

	// And in the provider's monthly revenue. The booking date is pinned so
	// the assertion never straddles a month boundary.
	paidAt := time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)
	if err := storage.DB.Model(&models.Booking{}).
		Where("id = ?", booking.ID).
		UpdateColumn("created_at", paidAt).Error; err != nil {
		t.Fatalf("pinning booking date: %v", err)
	}
	resp = doJSON(app, http.MethodGet,
		fmt.Sprintf("/api/revenue/%d/monthly-revenue?month=%d&year=%d", fx.Provider.ID, int(paidAt.Month()), paidAt.Year()), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 reading revenue, got %d: %s", resp.Code, resp.Body)
	}
	var revenue struct {
		Data []services.ServiceRevenue `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &revenue); err != nil {
		t.Fatalf("decoding revenue: %v", err)
	}
	if len(revenue.Data) != 1 || revenue.Data[0].TotalRevenue != 360 {
		t.Errorf("unexpected revenue: %+v", revenue.Data)
	}

	// Cancelling restores the slots.
	resp = doJSON(app, http.MethodDelete, fmt.Sprintf("/api/bookings/%d", booking.ID), nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204 cancelling booking, got %d", resp.Code)
	}
	var reloaded models.ServiceSchedule
	if err := storage.DB.First(&reloaded, fx.Schedule.ID).Error; err != nil {
		t.Fatalf("reloading schedule: %v", err)
	}
	if reloaded.Available != 5 {
		t.Errorf("expected full capacity after cancel, got %d", reloaded.Available)
	}
}

func TestCustomerBookingsRequireCustomerID(t *testing.T) {
	app := buildTestApp(t)
	seedBookingGraph(t, 5)

	for _, path := range []string{"/api/bookings/customer-bookings", "/api/bookings/customer-bookings-notyetpaid"} {
		resp := doJSON(app, http.MethodGet, path, nil)
		if resp.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400 without customer_id, got %d", path, resp.Code)
		}
	}
}

func TestServiceListingReportsZeroRatingWithoutReviews(t *testing.T) {
	app := buildTestApp(t)
	seedBookingGraph(t, 5)

	resp := doJSON(app, http.MethodGet, "/api/services", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 listing services, got %d", resp.Code)
	}
	var page struct {
		Data []ServiceResponse `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &page); err != nil {
		t.Fatalf("decoding services: %v", err)
	}
	if len(page.Data) != 1 {
		t.Fatalf("expected 1 service, got %d", len(page.Data))
	}
	if page.Data[0].AverageRating != 0 {
		t.Errorf("expected zero rating without reviews, got %v", page.Data[0].AverageRating)
	}
}

func TestScheduleCreationValidatesCapacity(t *testing.T) {
	app := buildTestApp(t)
	fx := seedBookingGraph(t, 5)

	over := 10
	resp := doJSON(app, http.MethodPost, "/api/service-schedules", iris.Map{
		"service_id": fx.Service.ID,
		"date":       "2026-10-01",
		"start_time": "09:00",
		"end_time":   "11:00",
		"max_slot":   5,
		"available":  over,
	})
	if resp.Code != http.StatusBadRequest {
		t.Errorf("expected 400 when available exceeds max_slot, got %d: %s", resp.Code, resp.Body)
	}

	resp = doJSON(app, http.MethodPost, "/api/service-schedules", iris.Map{
		"service_id": fx.Service.ID,
		"date":       "2026-10-01",
		"start_time": "11:00",
		"end_time":   "09:00",
		"max_slot":   5,
	})
	if resp.Code != http.StatusBadRequest {
		t.Errorf("expected 400 on inverted time window, got %d: %s", resp.Code, resp.Body)
	}
}

func TestScheduleMaxSlotRebasePreservesBookedSeats(t *testing.T) {
	app := buildTestApp(t)
	fx := seedBookingGraph(t, 5)

	// Book 3 of 5 seats, then resize the schedule.
	resp := doJSON(app, http.MethodPost, "/api/bookings", iris.Map{
		"customer_id":         fx.Customer.ID,
		"service_schedule_id": fx.Schedule.ID,
		"quantity":            3,
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating booking, got %d: %s", resp.Code, resp.Body)
	}

	patchPath := fmt.Sprintf("/api/service-schedules/%d", fx.Schedule.ID)

	// Growing to 10 keeps the 3 booked seats: available becomes 7. The
	// rebase must be computed from the row's current state, not from a
	// stale handler read.
	resp = doJSON(app, http.MethodPatch, patchPath, iris.Map{"max_slot": 10})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 growing max_slot, got %d: %s", resp.Code, resp.Body)
	}
	var schedule models.ServiceSchedule
	if err := json.Unmarshal(resp.Body.Bytes(), &schedule); err != nil {
		t.Fatalf("decoding schedule: %v", err)
	}
	if schedule.MaxSlot != 10 || schedule.Available != 7 {
		t.Errorf("expected max_slot=10 available=7, got max_slot=%d available=%d", schedule.MaxSlot, schedule.Available)
	}

	// Shrinking to 3 still fits the booked seats exactly.
	resp = doJSON(app, http.MethodPatch, patchPath, iris.Map{"max_slot": 3})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 shrinking max_slot to booked count, got %d: %s", resp.Code, resp.Body)
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &schedule); err != nil {
		t.Fatalf("decoding schedule: %v", err)
	}
	if schedule.MaxSlot != 3 || schedule.Available != 0 {
		t.Errorf("expected max_slot=3 available=0, got max_slot=%d available=%d", schedule.MaxSlot, schedule.Available)
	}

	// Shrinking below the booked seats is refused and changes nothing.
	resp = doJSON(app, http.MethodPatch, patchPath, iris.Map{"max_slot": 2})
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 shrinking below booked seats, got %d", resp.Code)
	}
	var reloaded models.ServiceSchedule
	if err := storage.DB.First(&reloaded, fx.Schedule.ID).Error; err != nil {
		t.Fatalf("reloading schedule: %v", err)
	}
	if reloaded.MaxSlot != 3 || reloaded.Available != 0 {
		t.Errorf("rejected resize mutated the row: max_slot=%d available=%d", reloaded.MaxSlot, reloaded.Available)
	}
}

func TestPaymentEndpointValidation(t *testing.T) {
	app := buildTestApp(t)
	seedBookingGraph(t, 5)

	// Gateway failure surfaces as 502.
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer broken.Close()
	services.MoMo = &services.MoMoClient{
		Endpoint:   broken.URL,
		HTTPClient: broken.Client(),
	}

	req := httptest.NewRequest(http.MethodPost, "/api/payment", nil)
	req.Header.Set("amount", "50000")
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadGateway {
		t.Errorf("expected 502 on gateway failure, got %d", resp.Code)
	}

	// Bad amount header never reaches the gateway.
	for _, amount := range []string{"", "-5", "abc"} {
		req := httptest.NewRequest(http.MethodPost, "/api/payment", nil)
		req.Header.Set("amount", amount)
		resp := httptest.NewRecorder()
		app.ServeHTTP(resp, req)
		if resp.Code != http.StatusBadRequest {
			t.Errorf("amount %q: expected 400, got %d", amount, resp.Code)
		}
	}
}
