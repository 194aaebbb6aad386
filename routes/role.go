package routes

import (
	"travel-api-server/models"
	"travel-api-server/storage"
	"travel-api-server/utils"

	"github.com/kataras/iris/v12"
)

type RoleInput struct {
	Name string `json:"name" validate:"required,max=20"`
}

func ListRoles(ctx iris.Context) {
	page, perPage := utils.Paginate(ctx)

	var total int64
	storage.DB.Model(&models.Role{}).Count(&total)

	var roles []models.Role
	if err := storage.DB.Offset((page - 1) * perPage).Limit(perPage).Order("id").Find(&roles).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.JSONPage(ctx, roles, page, perPage, total)
}

func GetRole(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var role models.Role
	if err := storage.DB.First(&role, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	ctx.JSON(role)
}

func CreateRole(ctx iris.Context) {
	var input RoleInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	role := models.Role{Name: input.Name}
	if err := storage.DB.Create(&role).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "create", "role", role.ID, nil, role)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(role)
}

func UpdateRole(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var role models.Role
	if err := storage.DB.First(&role, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var input RoleInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	before := role
	role.Name = input.Name
	if err := storage.DB.Save(&role).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "update", "role", role.ID, before, role)
	ctx.JSON(role)
}

func DeleteRole(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var role models.Role
	if err := storage.DB.First(&role, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	if err := storage.DB.Delete(&role).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "delete", "role", role.ID, role, nil)
	ctx.StatusCode(iris.StatusNoContent)
}
