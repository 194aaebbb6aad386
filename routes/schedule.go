package routes

import (
	"time"

	"travel-api-server/models"
	"travel-api-server/storage"
	"travel-api-server/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ScheduleInput struct {
	ServiceID uint   `json:"service_id" validate:"required"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time" validate:"required,datetime=15:04"`
	MaxSlot   int    `json:"max_slot" validate:"required,min=1"`
	Available *int   `json:"available" validate:"omitempty,min=0"`
}

func ListSchedules(ctx iris.Context) {
	page, perPage := utils.Paginate(ctx)

	query := storage.DB.Model(&models.ServiceSchedule{})
	if serviceID, err := ctx.URLParamInt("service_id"); err == nil && serviceID > 0 {
		query = query.Where("service_id = ?", serviceID)
	}
	if date := ctx.URLParam("date"); date != "" {
		query = query.Where("date = ?", date)
	}

	var total int64
	query.Count(&total)

	var schedules []models.ServiceSchedule
	if err := query.Offset((page - 1) * perPage).Limit(perPage).
		Order("date, start_time").
		Find(&schedules).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.JSONPage(ctx, schedules, page, perPage, total)
}

func GetSchedule(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var schedule models.ServiceSchedule
	if err := storage.DB.First(&schedule, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	ctx.JSON(schedule)
}

func CreateSchedule(ctx iris.Context) {
	var input ScheduleInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var service models.Service
	if err := storage.DB.First(&service, input.ServiceID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if input.StartTime >= input.EndTime {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_window", "start_time must be before end_time")
		return
	}

	// Available defaults to a full slot count and may never exceed it.
	available := input.MaxSlot
	if input.Available != nil {
		if *input.Available > input.MaxSlot {
			utils.JSONError(ctx, iris.StatusBadRequest, "invalid_capacity", "available cannot exceed max_slot")
			return
		}
		available = *input.Available
	}

	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_date", "date must be formatted as YYYY-MM-DD")
		return
	}

	schedule := models.ServiceSchedule{
		ServiceID: input.ServiceID,
		Date:      datatypes.Date(date),
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		MaxSlot:   input.MaxSlot,
		Available: available,
	}
	if err := storage.DB.Create(&schedule).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(schedule)
}

func UpdateSchedule(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var schedule models.ServiceSchedule
	if err := storage.DB.First(&schedule, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var input struct {
		Date      string `json:"date" validate:"omitempty,datetime=2006-01-02"`
		StartTime string `json:"start_time" validate:"omitempty,datetime=15:04"`
		EndTime   string `json:"end_time" validate:"omitempty,datetime=15:04"`
		MaxSlot   *int   `json:"max_slot" validate:"omitempty,min=1"`
	}
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	updates := map[string]interface{}{}
	startTime, endTime := schedule.StartTime, schedule.EndTime
	if input.Date != "" {
		date, err := time.Parse("2006-01-02", input.Date)
		if err != nil {
			utils.JSONError(ctx, iris.StatusBadRequest, "invalid_date", "date must be formatted as YYYY-MM-DD")
			return
		}
		updates["date"] = datatypes.Date(date)
	}
	if input.StartTime != "" {
		startTime = input.StartTime
		updates["start_time"] = input.StartTime
	}
	if input.EndTime != "" {
		endTime = input.EndTime
		updates["end_time"] = input.EndTime
	}
	if startTime >= endTime {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_window", "start_time must be before end_time")
		return
	}

	// The rebase reads booked = max_slot - available inside the UPDATE
	// itself, so a reservation landing after the handler's read cannot be
	// overwritten.
	if input.MaxSlot != nil {
		res := storage.DB.Model(&models.ServiceSchedule{}).
			Where("id = ? AND ? >= max_slot - available", id, *input.MaxSlot).
			Updates(map[string]interface{}{
				"available": gorm.Expr("? - (max_slot - available)", *input.MaxSlot),
				"max_slot":  *input.MaxSlot,
			})
		if res.Error != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
		if res.RowsAffected == 0 {
			utils.JSONError(ctx, iris.StatusConflict, "capacity_below_booked", "max_slot cannot drop below already booked slots")
			return
		}
	}

	if len(updates) > 0 {
		if err := storage.DB.Model(&schedule).Updates(updates).Error; err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
	}

	if err := storage.DB.First(&schedule, id).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(schedule)
}

// DeleteSchedule refuses while bookings still point at the schedule.
func DeleteSchedule(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var schedule models.ServiceSchedule
	if err := storage.DB.First(&schedule, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var inUse int64
	storage.DB.Model(&models.Booking{}).Where("service_schedule_id = ?", id).Count(&inUse)
	if inUse > 0 {
		utils.JSONError(ctx, iris.StatusConflict, "protected", "schedule has existing bookings")
		return
	}

	if err := storage.DB.Delete(&schedule).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.StatusCode(iris.StatusNoContent)
}
