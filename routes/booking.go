package routes

import (
	"errors"

	"travel-api-server/models"
	"travel-api-server/services"
	"travel-api-server/storage"
	"travel-api-server/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/datatypes"
)

type BookingInput struct {
	CustomerID        uint `json:"customer_id" validate:"required"`
	ServiceScheduleID uint `json:"service_schedule_id" validate:"required"`
	Quantity          int  `json:"quantity" validate:"required,min=1"`
}

type ConfirmPaymentInput struct {
	PaymentMethod string `json:"payment_method" validate:"required,oneof=momo zalopay cash"`
}

// CustomerBookingResponse is the denormalized shape the mobile clients
// render on the "my bookings" screens.
type CustomerBookingResponse struct {
	ID             uint           `json:"id"`
	ServiceName    string         `json:"service_name"`
	ServiceAddress string         `json:"service_address"`
	Images         []string       `json:"images"`
	Date           datatypes.Date `json:"date"`
	StartTime      string         `json:"start_time"`
	EndTime        string         `json:"end_time"`
	Quantity       int            `json:"quantity"`
	TotalPrice     float64        `json:"total_price"`
	PaymentStatus  bool           `json:"payment_status"`
	PaymentMethod  string         `json:"payment_method"`
}

// CreateBooking reserves slots on a schedule. Capacity is enforced inside
// the reservation transaction, concurrent overbooking attempts get a 409.
func CreateBooking(ctx iris.Context) {
	var input BookingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	booking, err := services.NewBookingService(storage.DB).
		Reserve(input.CustomerID, input.ServiceScheduleID, input.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCustomerNotFound), errors.Is(err, services.ErrScheduleNotFound):
			utils.CreateNotFound(ctx)
		case errors.Is(err, services.ErrCapacityExceeded):
			utils.JSONError(ctx, iris.StatusConflict, "capacity_exceeded", "not enough available slots")
		case errors.Is(err, services.ErrInvalidQuantity):
			utils.JSONError(ctx, iris.StatusBadRequest, "invalid_quantity", "quantity must be at least 1")
		default:
			utils.CreateInternalServerError(ctx)
		}
		return
	}

	utils.Audit(ctx, "create", "booking", booking.ID, nil, booking)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(booking)
}

// ConfirmBookingPayment flips the booking to paid exactly once. A second
// confirmation returns 409 without touching the row.
func ConfirmBookingPayment(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var input ConfirmPaymentInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	booking, err := services.NewBookingService(storage.DB).ConfirmPayment(id, input.PaymentMethod)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBookingNotFound):
			utils.CreateNotFound(ctx)
		case errors.Is(err, services.ErrAlreadyPaid):
			utils.JSONError(ctx, iris.StatusConflict, "already_paid", "booking payment was already confirmed")
		default:
			utils.CreateInternalServerError(ctx)
		}
		return
	}

	utils.Audit(ctx, "confirm_payment", "booking", booking.ID, nil, booking)
	ctx.JSON(booking)
}

// CancelBooking soft deletes the booking and returns its slots to the
// schedule.
func CancelBooking(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	if err := services.NewBookingService(storage.DB).Cancel(id); err != nil {
		switch {
		case errors.Is(err, services.ErrBookingNotFound):
			utils.CreateNotFound(ctx)
		default:
			utils.CreateInternalServerError(ctx)
		}
		return
	}

	utils.Audit(ctx, "cancel", "booking", id, nil, nil)
	ctx.StatusCode(iris.StatusNoContent)
}

func ListBookings(ctx iris.Context) {
	page, perPage := utils.Paginate(ctx)

	query := storage.DB.Model(&models.Booking{})
	if scheduleID, err := ctx.URLParamInt("service_schedule_id"); err == nil && scheduleID > 0 {
		query = query.Where("service_schedule_id = ?", scheduleID)
	}

	var total int64
	query.Count(&total)

	var bookings []models.Booking
	if err := query.Offset((page - 1) * perPage).Limit(perPage).
		Order("id").
		Find(&bookings).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.JSONPage(ctx, bookings, page, perPage, total)
}

func GetBooking(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var booking models.Booking
	if err := storage.DB.Preload("ServiceSchedule").First(&booking, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	ctx.JSON(booking)
}

// CustomerBookings lists a customer's paid bookings with the service
// snapshot the clients render.
func CustomerBookings(ctx iris.Context) {
	customerBookingsByPayment(ctx, true)
}

// CustomerBookingsNotYetPaid lists a customer's pending bookings.
func CustomerBookingsNotYetPaid(ctx iris.Context) {
	customerBookingsByPayment(ctx, false)
}

func customerBookingsByPayment(ctx iris.Context, paid bool) {
	customerID, err := ctx.URLParamInt("customer_id")
	if err != nil || customerID <= 0 {
		utils.JSONError(ctx, iris.StatusBadRequest, "missing_customer_id", "customer_id query parameter is required")
		return
	}

	var bookings []models.Booking
	if err := storage.DB.
		Preload("ServiceSchedule.Service.Images").
		Where("customer_id = ? AND payment_status = ?", customerID, paid).
		Order("id DESC").
		Find(&bookings).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	data := make([]CustomerBookingResponse, 0, len(bookings))
	for i := range bookings {
		data = append(data, customerBookingResponse(&bookings[i]))
	}
	ctx.JSON(iris.Map{"data": data})
}

func customerBookingResponse(booking *models.Booking) CustomerBookingResponse {
	schedule := booking.ServiceSchedule
	images := make([]string, 0, len(schedule.Service.Images))
	for _, image := range schedule.Service.Images {
		images = append(images, image.URL)
	}
	return CustomerBookingResponse{
		ID:             booking.ID,
		ServiceName:    schedule.Service.Name,
		ServiceAddress: schedule.Service.Address,
		Images:         images,
		Date:           schedule.Date,
		StartTime:      schedule.StartTime,
		EndTime:        schedule.EndTime,
		Quantity:       booking.Quantity,
		TotalPrice:     booking.TotalPrice,
		PaymentStatus:  booking.PaymentStatus,
		PaymentMethod:  booking.PaymentMethod,
	}
}

// CustomersBySchedule is the provider-facing attendee roster for one
// schedule.
func CustomersBySchedule(ctx iris.Context) {
	scheduleID := ctx.Params().GetUintDefault("schedule_id", 0)

	var schedule models.ServiceSchedule
	if err := storage.DB.First(&schedule, scheduleID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var rows []struct {
		BookingID     uint    `json:"booking_id"`
		FirstName     string  `json:"first_name"`
		LastName      string  `json:"last_name"`
		Quantity      int     `json:"quantity"`
		TotalPrice    float64 `json:"total_price"`
		PaymentStatus bool    `json:"payment_status"`
	}
	if err := storage.DB.Model(&models.Booking{}).
		Select("bookings.id AS booking_id, customers.first_name, customers.last_name, bookings.quantity, bookings.total_price, bookings.payment_status").
		Joins("JOIN customers ON customers.id = bookings.customer_id").
		Where("bookings.service_schedule_id = ?", scheduleID).
		Order("bookings.id").
		Scan(&rows).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"data": rows})
}
