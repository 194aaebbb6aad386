package routes

import (
	"travel-api-server/models"
	"travel-api-server/storage"
	"travel-api-server/utils"

	"github.com/kataras/iris/v12"
)

type ProviderInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
	UserID      uint   `json:"user_id" validate:"required"`
}

func ListProviders(ctx iris.Context) {
	page, perPage := utils.Paginate(ctx)

	var total int64
	storage.DB.Model(&models.Provider{}).Count(&total)

	var providers []models.Provider
	if err := storage.DB.Preload("User").
		Offset((page - 1) * perPage).Limit(perPage).
		Order("id").
		Find(&providers).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.JSONPage(ctx, providers, page, perPage, total)
}

func GetProvider(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var provider models.Provider
	if err := storage.DB.Preload("User").First(&provider, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	ctx.JSON(provider)
}

func CreateProvider(ctx iris.Context) {
	var input ProviderInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var user models.User
	if err := storage.DB.First(&user, input.UserID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	provider := models.Provider{
		Name:        input.Name,
		Description: input.Description,
		UserID:      input.UserID,
	}
	if err := storage.DB.Create(&provider).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(provider)
}

func UpdateProvider(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var provider models.Provider
	if err := storage.DB.First(&provider, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var input struct {
		Name        string `json:"name" validate:"omitempty,max=100"`
		Description string `json:"description"`
	}
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.Name != "" {
		provider.Name = input.Name
	}
	if input.Description != "" {
		provider.Description = input.Description
	}
	if err := storage.DB.Save(&provider).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(provider)
}

func DeleteProvider(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var provider models.Provider
	if err := storage.DB.First(&provider, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	if err := storage.DB.Delete(&provider).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.StatusCode(iris.StatusNoContent)
}
