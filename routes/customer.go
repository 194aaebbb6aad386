package routes

import (
	"travel-api-server/models"
	"travel-api-server/storage"
	"travel-api-server/utils"

	"github.com/kataras/iris/v12"
)

type CustomerInput struct {
	FirstName string `json:"first_name" validate:"required,max=30"`
	LastName  string `json:"last_name" validate:"required,max=30"`
	Birthday  string `json:"birthday" validate:"omitempty,datetime=2006-01-02"`
	Gender    string `json:"gender" validate:"omitempty,max=15"`
	UserID    uint   `json:"user_id" validate:"required"`
}

func ListCustomers(ctx iris.Context) {
	page, perPage := utils.Paginate(ctx)

	var total int64
	storage.DB.Model(&models.Customer{}).Count(&total)

	var customers []models.Customer
	if err := storage.DB.Preload("User").
		Offset((page - 1) * perPage).Limit(perPage).
		Order("id").
		Find(&customers).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.JSONPage(ctx, customers, page, perPage, total)
}

func GetCustomer(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var customer models.Customer
	if err := storage.DB.Preload("User").First(&customer, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	ctx.JSON(customer)
}

func CreateCustomer(ctx iris.Context) {
	var input CustomerInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var user models.User
	if err := storage.DB.First(&user, input.UserID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	customer := models.Customer{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Birthday:  input.Birthday,
		Gender:    input.Gender,
		UserID:    input.UserID,
	}
	if err := storage.DB.Create(&customer).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(customer)
}

func UpdateCustomer(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var customer models.Customer
	if err := storage.DB.First(&customer, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var input struct {
		FirstName string `json:"first_name" validate:"omitempty,max=30"`
		LastName  string `json:"last_name" validate:"omitempty,max=30"`
		Birthday  string `json:"birthday" validate:"omitempty,datetime=2006-01-02"`
		Gender    string `json:"gender" validate:"omitempty,max=15"`
	}
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.FirstName != "" {
		customer.FirstName = input.FirstName
	}
	if input.LastName != "" {
		customer.LastName = input.LastName
	}
	if input.Birthday != "" {
		customer.Birthday = input.Birthday
	}
	if input.Gender != "" {
		customer.Gender = input.Gender
	}
	if err := storage.DB.Save(&customer).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(customer)
}

func DeleteCustomer(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var customer models.Customer
	if err := storage.DB.First(&customer, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	if err := storage.DB.Delete(&customer).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.StatusCode(iris.StatusNoContent)
}
