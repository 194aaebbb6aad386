package utils

import (
	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
)

func CreateNotFound(ctx iris.Context) {
	ctx.StatusCode(iris.StatusNotFound)
	ctx.JSON(iris.Map{"message": "Resource not found"})
}

func CreateInternalServerError(ctx iris.Context) {
	ctx.StatusCode(iris.StatusInternalServerError)
	ctx.JSON(iris.Map{"message": "Internal server error"})
}

func CreateUsernameAlreadyRegistered(ctx iris.Context) {
	ctx.StatusCode(iris.StatusConflict)
	ctx.JSON(iris.Map{"message": "Username already registered"})
}

// HandleValidationErrors turns validator/v10 errors into a 400 with one entry
// per failing field; any other read error becomes a plain 400 message.
func HandleValidationErrors(err error, ctx iris.Context) {
	if errs, ok := err.(validator.ValidationErrors); ok {
		validationErrors := make([]iris.Map, 0, len(errs))
		for _, validationErr := range errs {
			validationErrors = append(validationErrors, iris.Map{
				"field": validationErr.Field(),
				"tag":   validationErr.Tag(),
				"value": validationErr.Param(),
			})
		}

		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Validation failed", "errors": validationErrors})
		return
	}

	ctx.StatusCode(iris.StatusBadRequest)
	ctx.JSON(iris.Map{"message": err.Error()})
}
