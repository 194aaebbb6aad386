package routes

import (
	"fmt"
	"time"

	"travel-api-server/models"
	"travel-api-server/storage"
	"travel-api-server/utils"

	"github.com/kataras/iris/v12"
)

type ImageInput struct {
	URL       string `json:"url" validate:"required,url"`
	ServiceID uint   `json:"service_id" validate:"required"`
}

type UploadImageInput struct {
	Base64    string `json:"base64" validate:"required"`
	ServiceID uint   `json:"service_id" validate:"required"`
}

func ListImages(ctx iris.Context) {
	page, perPage := utils.Paginate(ctx)

	query := storage.DB.Model(&models.Image{})
	if serviceID, err := ctx.URLParamInt("service_id"); err == nil && serviceID > 0 {
		query = query.Where("service_id = ?", serviceID)
	}

	var total int64
	query.Count(&total)

	var images []models.Image
	if err := query.Offset((page - 1) * perPage).Limit(perPage).Order("id").Find(&images).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.JSONPage(ctx, images, page, perPage, total)
}

func GetImage(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var image models.Image
	if err := storage.DB.First(&image, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	ctx.JSON(image)
}

func CreateImage(ctx iris.Context) {
	var input ImageInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var service models.Service
	if err := storage.DB.First(&service, input.ServiceID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	image := models.Image{URL: input.URL, ServiceID: input.ServiceID}
	if err := storage.DB.Create(&image).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(image)
}

// UploadImage pushes a base64 payload to Cloudinary and records the
// resulting URL against the service.
func UploadImage(ctx iris.Context) {
	var input UploadImageInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var service models.Service
	if err := storage.DB.First(&service, input.ServiceID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	publicID := fmt.Sprintf("service_%d_%d", input.ServiceID, time.Now().UnixNano())
	url, err := storage.UploadBase64Image(input.Base64, publicID)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadGateway, "upload_failed", err.Error())
		return
	}

	image := models.Image{URL: url, ServiceID: input.ServiceID}
	if err := storage.DB.Create(&image).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(image)
}

func DeleteImage(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var image models.Image
	if err := storage.DB.First(&image, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	// Remote cleanup is best effort, the row goes regardless.
	storage.DeleteImage(image.URL)

	if err := storage.DB.Delete(&image).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.StatusCode(iris.StatusNoContent)
}
