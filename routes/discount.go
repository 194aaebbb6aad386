package routes

import (
	"travel-api-server/models"
	"travel-api-server/storage"
	"travel-api-server/utils"

	"github.com/kataras/iris/v12"
)

type DiscountInput struct {
	Name     string  `json:"name" validate:"required,max=100"`
	Discount float64 `json:"discount" validate:"min=0,max=100"`
}

func ListDiscounts(ctx iris.Context) {
	page, perPage := utils.Paginate(ctx)

	var total int64
	storage.DB.Model(&models.Discount{}).Count(&total)

	var discounts []models.Discount
	if err := storage.DB.Offset((page - 1) * perPage).Limit(perPage).Order("id").Find(&discounts).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.JSONPage(ctx, discounts, page, perPage, total)
}

func GetDiscount(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var discount models.Discount
	if err := storage.DB.First(&discount, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	ctx.JSON(discount)
}

func CreateDiscount(ctx iris.Context) {
	var input DiscountInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	discount := models.Discount{Name: input.Name, Discount: input.Discount}
	if err := storage.DB.Create(&discount).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "create", "discount", discount.ID, nil, discount)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(discount)
}

func UpdateDiscount(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var discount models.Discount
	if err := storage.DB.First(&discount, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var input DiscountInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	before := discount
	discount.Name = input.Name
	discount.Discount = input.Discount
	if err := storage.DB.Save(&discount).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "update", "discount", discount.ID, before, discount)
	ctx.JSON(discount)
}

func DeleteDiscount(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var discount models.Discount
	if err := storage.DB.First(&discount, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	// Services keep a RESTRICT foreign key to discounts
	var inUse int64
	storage.DB.Model(&models.Service{}).Where("discount_id = ?", id).Count(&inUse)
	if inUse > 0 {
		utils.JSONError(ctx, iris.StatusConflict, "protected", "discount is referenced by existing services")
		return
	}

	if err := storage.DB.Delete(&discount).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "delete", "discount", discount.ID, discount, nil)
	ctx.StatusCode(iris.StatusNoContent)
}
