package routes

import (
	"strings"

	"travel-api-server/models"
	"travel-api-server/storage"
	"travel-api-server/utils"

	"github.com/kataras/iris/v12"
)

type ServiceInput struct {
	Name          string  `json:"name" validate:"required,max=100"`
	Address       string  `json:"address" validate:"required,max=100"`
	Price         float64 `json:"price" validate:"min=0"`
	Description   string  `json:"description"`
	Require       string  `json:"require"`
	DiscountID    *uint   `json:"discount_id"`
	ServiceTypeID uint    `json:"service_type_id" validate:"required"`
	ProviderID    uint    `json:"provider_id" validate:"required"`
	ProvinceID    uint    `json:"province_id" validate:"required"`
}

type ServiceResponse struct {
	ID            uint             `json:"id"`
	Name          string           `json:"name"`
	Address       string           `json:"address"`
	Price         float64          `json:"price"`
	Description   string           `json:"description"`
	Require       string           `json:"require"`
	Discount      *models.Discount `json:"discount"`
	ServiceTypeID uint             `json:"service_type_id"`
	ProviderID    uint             `json:"provider_id"`
	ProvinceID    uint             `json:"province_id"`
	AverageRating float64          `json:"average_rating"`
	Images        []string         `json:"images"`
}

// ListServices supports the catalog filters: q (name), address, service_type,
// province, provider and sort=1|2 (price ascending/descending).
func ListServices(ctx iris.Context) {
	query := storage.DB.Model(&models.Service{})

	if q := strings.TrimSpace(ctx.URLParam("q")); q != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+q+"%")
	}
	if address := strings.TrimSpace(ctx.URLParam("address")); address != "" {
		query = query.Where("LOWER(address) LIKE LOWER(?)", "%"+address+"%")
	}
	if serviceTypeID, err := ctx.URLParamInt("service_type"); err == nil && serviceTypeID > 0 {
		query = query.Where("service_type_id = ?", serviceTypeID)
	}
	if provinceID, err := ctx.URLParamInt("province"); err == nil && provinceID > 0 {
		query = query.Where("province_id = ?", provinceID)
	}
	if providerID, err := ctx.URLParamInt("provider"); err == nil && providerID > 0 {
		query = query.Where("provider_id = ?", providerID)
	}

	switch ctx.URLParam("sort") {
	case "1":
		query = query.Order("price ASC")
	case "2":
		query = query.Order("price DESC")
	default:
		query = query.Order("id")
	}

	page, perPage := utils.Paginate(ctx)

	var total int64
	query.Count(&total)

	var services []models.Service
	if err := query.Preload("Discount").Preload("Images").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&services).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ratings := averageRatings(services)
	data := make([]ServiceResponse, 0, len(services))
	for i := range services {
		data = append(data, serviceResponse(&services[i], ratings[services[i].ID]))
	}

	utils.JSONPage(ctx, data, page, perPage, total)
}

func GetService(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var service models.Service
	if err := storage.DB.Preload("Discount").Preload("Images").Preload("Schedules").
		First(&service, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	ratings := averageRatings([]models.Service{service})
	response := serviceResponse(&service, ratings[service.ID])
	ctx.JSON(iris.Map{
		"service":   response,
		"schedules": service.Schedules,
	})
}

func CreateService(ctx iris.Context) {
	var input ServiceInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var provider models.Provider
	if err := storage.DB.First(&provider, input.ProviderID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	service := models.Service{
		Name:          input.Name,
		Address:       input.Address,
		Price:         input.Price,
		Description:   input.Description,
		Require:       input.Require,
		DiscountID:    input.DiscountID,
		ServiceTypeID: input.ServiceTypeID,
		ProviderID:    input.ProviderID,
		ProvinceID:    input.ProvinceID,
	}
	if err := storage.DB.Create(&service).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(service)
}

func UpdateService(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var service models.Service
	if err := storage.DB.First(&service, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var input struct {
		Name        string   `json:"name" validate:"omitempty,max=100"`
		Address     string   `json:"address" validate:"omitempty,max=100"`
		Price       *float64 `json:"price" validate:"omitempty,min=0"`
		Description string   `json:"description"`
		Require     string   `json:"require"`
		DiscountID  *uint    `json:"discount_id"`
	}
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.Name != "" {
		service.Name = input.Name
	}
	if input.Address != "" {
		service.Address = input.Address
	}
	if input.Price != nil {
		service.Price = *input.Price
	}
	if input.Description != "" {
		service.Description = input.Description
	}
	if input.Require != "" {
		service.Require = input.Require
	}
	if input.DiscountID != nil {
		service.DiscountID = input.DiscountID
	}
	if err := storage.DB.Save(&service).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(service)
}

// DeleteService cascades to schedules, so it is blocked while any of the
// service's schedules still has bookings.
func DeleteService(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var service models.Service
	if err := storage.DB.First(&service, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var bookingCount int64
	storage.DB.Model(&models.Booking{}).
		Joins("JOIN service_schedules ON service_schedules.id = bookings.service_schedule_id").
		Where("service_schedules.service_id = ?", id).
		Count(&bookingCount)
	if bookingCount > 0 {
		utils.JSONError(ctx, iris.StatusConflict, "protected", "service has schedules with existing bookings")
		return
	}

	if err := storage.DB.Select("Images", "Schedules").Delete(&service).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.StatusCode(iris.StatusNoContent)
}

// averageRatings returns the mean review star per service id, 0 when a
// service has no reviews.
func averageRatings(services []models.Service) map[uint]float64 {
	ratings := make(map[uint]float64, len(services))
	if len(services) == 0 {
		return ratings
	}

	ids := make([]uint, 0, len(services))
	for i := range services {
		ids = append(ids, services[i].ID)
	}

	var rows []struct {
		ServiceID uint
		Average   float64
	}
	storage.DB.Model(&models.Review{}).
		Select("service_id, AVG(star) AS average").
		Where("service_id IN ?", ids).
		Group("service_id").
		Scan(&rows)

	for _, row := range rows {
		ratings[row.ServiceID] = row.Average
	}
	return ratings
}

func serviceResponse(service *models.Service, rating float64) ServiceResponse {
	images := make([]string, 0, len(service.Images))
	for _, image := range service.Images {
		images = append(images, image.URL)
	}
	return ServiceResponse{
		ID:            service.ID,
		Name:          service.Name,
		Address:       service.Address,
		Price:         service.Price,
		Description:   service.Description,
		Require:       service.Require,
		Discount:      service.Discount,
		ServiceTypeID: service.ServiceTypeID,
		ProviderID:    service.ProviderID,
		ProvinceID:    service.ProvinceID,
		AverageRating: rating,
		Images:        images,
	}
}
