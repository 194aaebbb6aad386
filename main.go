package main

import (
	"fmt"
	"log"
	"os"

	"travel-api-server/routes"
	"travel-api-server/services"
	"travel-api-server/storage"
	"travel-api-server/utils"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func main() {
	// Only load .env in development
	if os.Getenv("RENDER") == "" {
		godotenv.Load()
	}

	storage.InitializeDB()
	storage.InitializeRedis()
	services.InitializePaymentGateways()

	app := iris.New()
	app.Validator = validator.New()

	// CORS configuration
	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With, amount")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("REFRESH_TOKEN_SECRET")))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})

	refreshTokenVerifier.Extractors = append(refreshTokenVerifier.Extractors, func(ctx iris.Context) string {
		var tokenInput utils.RefreshTokenInput
		err := ctx.ReadJSON(&tokenInput)
		if err != nil {
			return ""
		}
		return tokenInput.RefreshToken
	})

	app.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"status": "ok"})
	})

	user := app.Party("/api/users")
	{
		user.Post("/register", routes.Register)
		user.Post("/login", routes.Login)
		user.Get("/", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.ListUsers)
		user.Get("/{id:uint}", accessTokenVerifierMiddleware, routes.GetUser)
		user.Patch("/{id:uint}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.UpdateUser)
		user.Delete("/{id:uint}", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.DeleteUser)
	}

	role := app.Party("/api/roles", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
	{
		role.Get("/", routes.ListRoles)
		role.Get("/{id:uint}", routes.GetRole)
		role.Post("/", routes.CreateRole)
		role.Put("/{id:uint}", routes.UpdateRole)
		role.Delete("/{id:uint}", routes.DeleteRole)
	}

	provider := app.Party("/api/service-providers")
	{
		provider.Get("/", routes.ListProviders)
		provider.Get("/{id:uint}", routes.GetProvider)
		provider.Post("/", accessTokenVerifierMiddleware, routes.CreateProvider)
		provider.Patch("/{id:uint}", accessTokenVerifierMiddleware, routes.UpdateProvider)
		provider.Delete("/{id:uint}", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.DeleteProvider)
	}

	customer := app.Party("/api/customers")
	{
		customer.Get("/", accessTokenVerifierMiddleware, routes.ListCustomers)
		customer.Get("/{id:uint}", accessTokenVerifierMiddleware, routes.GetCustomer)
		customer.Post("/", accessTokenVerifierMiddleware, routes.CreateCustomer)
		customer.Patch("/{id:uint}", accessTokenVerifierMiddleware, routes.UpdateCustomer)
		customer.Delete("/{id:uint}", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.DeleteCustomer)
	}

	serviceType := app.Party("/api/service-types")
	{
		serviceType.Get("/", routes.ListServiceTypes)
		serviceType.Get("/{id:uint}", routes.GetServiceType)
		serviceType.Post("/", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.CreateServiceType)
		serviceType.Put("/{id:uint}", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.UpdateServiceType)
		serviceType.Delete("/{id:uint}", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.DeleteServiceType)
	}

	province := app.Party("/api/provinces")
	{
		province.Get("/", routes.ListProvinces)
		province.Get("/{id:uint}", routes.GetProvince)
		province.Post("/", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.CreateProvince)
		province.Put("/{id:uint}", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.UpdateProvince)
		province.Delete("/{id:uint}", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.DeleteProvince)
	}

	discount := app.Party("/api/discounts")
	{
		discount.Get("/", routes.ListDiscounts)
		discount.Get("/{id:uint}", routes.GetDiscount)
		discount.Post("/", accessTokenVerifierMiddleware, routes.CreateDiscount)
		discount.Put("/{id:uint}", accessTokenVerifierMiddleware, routes.UpdateDiscount)
		discount.Delete("/{id:uint}", accessTokenVerifierMiddleware, routes.DeleteDiscount)
	}

	service := app.Party("/api/services")
	{
		service.Get("/", routes.ListServices)
		service.Get("/{id:uint}", routes.GetService)
		service.Post("/", accessTokenVerifierMiddleware, routes.CreateService)
		service.Patch("/{id:uint}", accessTokenVerifierMiddleware, routes.UpdateService)
		service.Delete("/{id:uint}", accessTokenVerifierMiddleware, routes.DeleteService)
	}

	image := app.Party("/api/images")
	{
		image.Get("/", routes.ListImages)
		image.Get("/{id:uint}", routes.GetImage)
		image.Post("/", accessTokenVerifierMiddleware, routes.CreateImage)
		image.Post("/upload", accessTokenVerifierMiddleware, routes.UploadImage)
		image.Delete("/{id:uint}", accessTokenVerifierMiddleware, routes.DeleteImage)
	}

	schedule := app.Party("/api/service-schedules")
	{
		schedule.Get("/", routes.ListSchedules)
		schedule.Get("/{id:uint}", routes.GetSchedule)
		schedule.Post("/", accessTokenVerifierMiddleware, routes.CreateSchedule)
		schedule.Patch("/{id:uint}", accessTokenVerifierMiddleware, routes.UpdateSchedule)
		schedule.Delete("/{id:uint}", accessTokenVerifierMiddleware, routes.DeleteSchedule)
	}

	booking := app.Party("/api/bookings", accessTokenVerifierMiddleware)
	{
		booking.Get("/", routes.ListBookings)
		booking.Get("/customer-bookings", routes.CustomerBookings)
		booking.Get("/customer-bookings-notyetpaid", routes.CustomerBookingsNotYetPaid)
		booking.Get("/{id:uint}", routes.GetBooking)
		booking.Post("/", routes.CreateBooking)
		booking.Post("/{id:uint}/confirm-payment", routes.ConfirmBookingPayment)
		booking.Delete("/{id:uint}", routes.CancelBooking)
	}

	app.Get("/api/customers-by-schedule/{schedule_id:uint}", accessTokenVerifierMiddleware, routes.CustomersBySchedule)

	review := app.Party("/api/reviews")
	{
		review.Get("/", routes.ListReviews)
		review.Get("/service-reviews", routes.ServiceReviews)
		review.Get("/{id:uint}", routes.GetReview)
		review.Post("/", accessTokenVerifierMiddleware, routes.CreateReview)
		review.Patch("/{id:uint}", accessTokenVerifierMiddleware, routes.UpdateReview)
		review.Delete("/{id:uint}", accessTokenVerifierMiddleware, routes.DeleteReview)
	}

	revenue := app.Party("/api/revenue", accessTokenVerifierMiddleware)
	{
		revenue.Get("/{provider_id:uint}/monthly-revenue", routes.MonthlyRevenue)
		revenue.Get("/yearly-revenue", utils.AdminOnlyMiddleware, routes.YearlyRevenue)
	}

	app.Post("/api/payment", accessTokenVerifierMiddleware, routes.CreateMoMoPayment)
	app.Post("/api/zalo/payment", accessTokenVerifierMiddleware, routes.CreateZaloPayPayment)

	app.Post("/api/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken)

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	addr := "0.0.0.0:" + port

	fmt.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}
