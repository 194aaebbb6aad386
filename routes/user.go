package routes

import (
	"errors"
	"strings"

	"travel-api-server/models"
	"travel-api-server/storage"
	"travel-api-server/utils"

	"github.com/kataras/iris/v12"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterUserInput struct {
	Username string `json:"username" validate:"required,max=150"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required,min=8,max=256"`
	Phone    string `json:"phone" validate:"required,max=10"`
	Address  string `json:"address" validate:"max=100"`
	RoleID   *uint  `json:"role_id"`
}

type LoginUserInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UpdateUserInput struct {
	Email     string `json:"email" validate:"omitempty,email"`
	Password  string `json:"password" validate:"omitempty,min=8,max=256"`
	Phone     string `json:"phone" validate:"omitempty,max=10"`
	Address   string `json:"address" validate:"omitempty,max=100"`
	AvatarURL string `json:"avatar_url"`
}

func Register(ctx iris.Context) {
	var userInput RegisterUserInput
	if err := ctx.ReadJSON(&userInput); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	username := strings.ToLower(userInput.Username)

	var existing models.User
	userExists, userExistsErr := getAndHandleUserExists(&existing, username)
	if userExistsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if userExists {
		utils.CreateUsernameAlreadyRegistered(ctx)
		return
	}

	hashedPassword, hashErr := hashAndSaltPassword(userInput.Password)
	if hashErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	newUser := models.User{
		Username: username,
		Email:    strings.ToLower(userInput.Email),
		Password: hashedPassword,
		Phone:    userInput.Phone,
		Address:  userInput.Address,
		RoleID:   userInput.RoleID,
	}
	if err := storage.DB.Create(&newUser).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	returnUser(newUser, ctx)
}

func Login(ctx iris.Context) {
	var userInput LoginUserInput
	if err := ctx.ReadJSON(&userInput); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var existingUser models.User
	userExists, userExistsErr := getAndHandleUserExists(&existingUser, strings.ToLower(userInput.Username))
	if userExistsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if !userExists {
		utils.CreateNotFound(ctx)
		return
	}

	passwordErr := bcrypt.CompareHashAndPassword([]byte(existingUser.Password), []byte(userInput.Password))
	if passwordErr != nil {
		ctx.StatusCode(iris.StatusUnauthorized)
		ctx.JSON(iris.Map{"message": "Invalid password"})
		return
	}

	returnUser(existingUser, ctx)
}

// ListUsers returns a paginated user listing.
func ListUsers(ctx iris.Context) {
	page, perPage := utils.Paginate(ctx)

	var total int64
	storage.DB.Model(&models.User{}).Count(&total)

	var users []models.User
	if err := storage.DB.Preload("Role").
		Offset((page - 1) * perPage).Limit(perPage).
		Order("id").
		Find(&users).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, users, page, perPage, total)
}

func GetUser(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var user models.User
	if err := storage.DB.Preload("Role").First(&user, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	ctx.JSON(user)
}

func UpdateUser(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var user models.User
	if err := storage.DB.First(&user, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var input UpdateUserInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.Email != "" {
		user.Email = strings.ToLower(input.Email)
	}
	if input.Password != "" {
		hashed, hashErr := hashAndSaltPassword(input.Password)
		if hashErr != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
		user.Password = hashed
	}
	if input.Phone != "" {
		user.Phone = input.Phone
	}
	if input.Address != "" {
		user.Address = input.Address
	}
	if input.AvatarURL != "" {
		user.AvatarURL = input.AvatarURL
	}

	if err := storage.DB.Save(&user).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(user)
}

func DeleteUser(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var user models.User
	if err := storage.DB.First(&user, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	if err := storage.DB.Delete(&user).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.StatusCode(iris.StatusNoContent)
}

func getAndHandleUserExists(user *models.User, username string) (exists bool, err error) {
	userExistsQuery := storage.DB.Where("username = ?", username).Limit(1).Find(&user)
	if userExistsQuery.Error != nil {
		if errors.Is(userExistsQuery.Error, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, userExistsQuery.Error
	}
	return userExistsQuery.RowsAffected > 0, nil
}

func hashAndSaltPassword(password string) (hashedPassword string, err error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func returnUser(user models.User, ctx iris.Context) {
	tokenPair, tokenErr := utils.CreateTokenPair(user.ID)
	if tokenErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"ID":           user.ID,
		"username":     user.Username,
		"email":        user.Email,
		"phone":        user.Phone,
		"address":      user.Address,
		"avatar_url":   user.AvatarURL,
		"role_id":      user.RoleID,
		"accessToken":  string(tokenPair.AccessToken),
		"refreshToken": string(tokenPair.RefreshToken),
	})
}
