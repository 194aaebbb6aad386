package routes

import (
	"travel-api-server/models"
	"travel-api-server/storage"
	"travel-api-server/utils"

	"github.com/kataras/iris/v12"
)

type ServiceTypeInput struct {
	Name        string `json:"name" validate:"required,max=50"`
	Description string `json:"description"`
}

func ListServiceTypes(ctx iris.Context) {
	page, perPage := utils.Paginate(ctx)

	var total int64
	storage.DB.Model(&models.ServiceType{}).Count(&total)

	var serviceTypes []models.ServiceType
	if err := storage.DB.Offset((page - 1) * perPage).Limit(perPage).Order("name").Find(&serviceTypes).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.JSONPage(ctx, serviceTypes, page, perPage, total)
}

func GetServiceType(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var serviceType models.ServiceType
	if err := storage.DB.First(&serviceType, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	ctx.JSON(serviceType)
}

func CreateServiceType(ctx iris.Context) {
	var input ServiceTypeInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	serviceType := models.ServiceType{Name: input.Name, Description: input.Description}
	if err := storage.DB.Create(&serviceType).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "create", "service_type", serviceType.ID, nil, serviceType)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(serviceType)
}

func UpdateServiceType(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var serviceType models.ServiceType
	if err := storage.DB.First(&serviceType, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var input ServiceTypeInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	before := serviceType
	serviceType.Name = input.Name
	serviceType.Description = input.Description
	if err := storage.DB.Save(&serviceType).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "update", "service_type", serviceType.ID, before, serviceType)
	ctx.JSON(serviceType)
}

func DeleteServiceType(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var serviceType models.ServiceType
	if err := storage.DB.First(&serviceType, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	if err := storage.DB.Delete(&serviceType).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "delete", "service_type", serviceType.ID, serviceType, nil)
	ctx.StatusCode(iris.StatusNoContent)
}
