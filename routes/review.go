package routes

import (
	"time"

	"travel-api-server/models"
	"travel-api-server/storage"
	"travel-api-server/utils"

	"github.com/kataras/iris/v12"
)

type ReviewInput struct {
	Star       int    `json:"star" validate:"required,min=1,max=5"`
	Content    string `json:"content" validate:"max=2000"`
	CustomerID uint   `json:"customer_id" validate:"required"`
	ServiceID  uint   `json:"service_id" validate:"required"`
}

func ListReviews(ctx iris.Context) {
	page, perPage := utils.Paginate(ctx)

	var total int64
	storage.DB.Model(&models.Review{}).Count(&total)

	var reviews []models.Review
	if err := storage.DB.Offset((page - 1) * perPage).Limit(perPage).
		Order("id DESC").
		Find(&reviews).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.JSONPage(ctx, reviews, page, perPage, total)
}

func GetReview(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var review models.Review
	if err := storage.DB.First(&review, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	ctx.JSON(review)
}

func CreateReview(ctx iris.Context) {
	var input ReviewInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var customer models.Customer
	if err := storage.DB.First(&customer, input.CustomerID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	var service models.Service
	if err := storage.DB.First(&service, input.ServiceID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	review := models.Review{
		Star:       input.Star,
		Content:    input.Content,
		CustomerID: input.CustomerID,
		ServiceID:  input.ServiceID,
	}
	if err := storage.DB.Create(&review).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(review)
}

func UpdateReview(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var review models.Review
	if err := storage.DB.First(&review, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var input struct {
		Star    *int   `json:"star" validate:"omitempty,min=1,max=5"`
		Content string `json:"content" validate:"max=2000"`
	}
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.Star != nil {
		review.Star = *input.Star
	}
	if input.Content != "" {
		review.Content = input.Content
	}
	if err := storage.DB.Save(&review).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(review)
}

func DeleteReview(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var review models.Review
	if err := storage.DB.First(&review, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	if err := storage.DB.Delete(&review).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.StatusCode(iris.StatusNoContent)
}

// ServiceReviews lists a service's reviews with the reviewer name
// denormalized for the detail screen.
func ServiceReviews(ctx iris.Context) {
	serviceID, err := ctx.URLParamInt("service_id")
	if err != nil || serviceID <= 0 {
		utils.JSONError(ctx, iris.StatusBadRequest, "missing_service_id", "service_id query parameter is required")
		return
	}

	var service models.Service
	if err := storage.DB.First(&service, serviceID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var rows []struct {
		ID        uint      `json:"id"`
		Star      int       `json:"star"`
		Content   string    `json:"content"`
		FirstName string    `json:"first_name"`
		LastName  string    `json:"last_name"`
		AvatarURL string    `json:"avatar_url"`
		CreatedAt time.Time `json:"created_at"`
	}
	if err := storage.DB.Model(&models.Review{}).
		Select("reviews.id, reviews.star, reviews.content, customers.first_name, customers.last_name, users.avatar_url, reviews.created_at").
		Joins("JOIN customers ON customers.id = reviews.customer_id").
		Joins("JOIN users ON users.id = customers.user_id").
		Where("reviews.service_id = ?", serviceID).
		Order("reviews.id DESC").
		Scan(&rows).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"data": rows})
}
