package routes

import (
	"strconv"

	"travel-api-server/services"
	"travel-api-server/utils"

	"github.com/kataras/iris/v12"
)

// paymentAmount reads and validates the amount header the mobile clients
// send when opening a gateway session.
func paymentAmount(ctx iris.Context) (string, bool) {
	amount := ctx.GetHeader("amount")
	value, err := strconv.ParseInt(amount, 10, 64)
	if err != nil || value <= 0 {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_amount", "amount header must be a positive integer")
		return "", false
	}
	return amount, true
}

// CreateMoMoPayment opens a MoMo payment session and relays the gateway
// response verbatim.
func CreateMoMoPayment(ctx iris.Context) {
	amount, ok := paymentAmount(ctx)
	if !ok {
		return
	}

	body, err := services.MoMo.CreatePayment(amount)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadGateway, "gateway_error", err.Error())
		return
	}

	ctx.ContentType("application/json")
	ctx.Write(body)
}

// CreateZaloPayPayment opens a ZaloPay order and relays the gateway
// response verbatim.
func CreateZaloPayPayment(ctx iris.Context) {
	amount, ok := paymentAmount(ctx)
	if !ok {
		return
	}

	body, err := services.ZaloPay.CreateOrder(amount)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadGateway, "gateway_error", err.Error())
		return
	}

	ctx.ContentType("application/json")
	ctx.Write(body)
}
