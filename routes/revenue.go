package routes

import (
	"travel-api-server/models"
	"travel-api-server/services"
	"travel-api-server/storage"
	"travel-api-server/utils"

	"github.com/kataras/iris/v12"
)

// MonthlyRevenue reports paid revenue per service for one provider and
// month. Cancelled bookings never count.
func MonthlyRevenue(ctx iris.Context) {
	providerID := ctx.Params().GetUintDefault("provider_id", 0)

	var provider models.Provider
	if err := storage.DB.First(&provider, providerID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	month, err := ctx.URLParamInt("month")
	if err != nil || month < 1 || month > 12 {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_month", "month must be between 1 and 12")
		return
	}
	year, err := ctx.URLParamInt("year")
	if err != nil || year < 2000 {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_year", "year query parameter is required")
		return
	}

	rows, err := services.NewRevenueService(storage.DB).MonthlyRevenue(providerID, month, year)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"provider_id": providerID,
		"month":       month,
		"year":        year,
		"data":        rows,
	})
}

// YearlyRevenue reports platform-wide paid revenue per month, all twelve
// months present even when zero.
func YearlyRevenue(ctx iris.Context) {
	year, err := ctx.URLParamInt("year")
	if err != nil || year < 2000 {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_year", "year query parameter is required")
		return
	}

	rows, err := services.NewRevenueService(storage.DB).YearlyRevenue(year)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"year": year,
		"data": rows,
	})
}
