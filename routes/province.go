package routes

import (
	"travel-api-server/models"
	"travel-api-server/storage"
	"travel-api-server/utils"

	"github.com/kataras/iris/v12"
)

type ProvinceInput struct {
	Name string `json:"name" validate:"required,max=100"`
}

func ListProvinces(ctx iris.Context) {
	page, perPage := utils.Paginate(ctx)

	var total int64
	storage.DB.Model(&models.Province{}).Count(&total)

	var provinces []models.Province
	if err := storage.DB.Offset((page - 1) * perPage).Limit(perPage).Order("name").Find(&provinces).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.JSONPage(ctx, provinces, page, perPage, total)
}

func GetProvince(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var province models.Province
	if err := storage.DB.First(&province, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	ctx.JSON(province)
}

func CreateProvince(ctx iris.Context) {
	var input ProvinceInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	province := models.Province{Name: input.Name}
	if err := storage.DB.Create(&province).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "create", "province", province.ID, nil, province)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(province)
}

func UpdateProvince(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var province models.Province
	if err := storage.DB.First(&province, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var input ProvinceInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	before := province
	province.Name = input.Name
	if err := storage.DB.Save(&province).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "update", "province", province.ID, before, province)
	ctx.JSON(province)
}

func DeleteProvince(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var province models.Province
	if err := storage.DB.First(&province, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	if err := storage.DB.Delete(&province).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "delete", "province", province.ID, province, nil)
	ctx.StatusCode(iris.StatusNoContent)
}
