package routes

import (
	"time"

	"salonbook-client/config"
	"salonbook-client/controllers"
	"salonbook-client/services"
	"salonbook-client/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Dependencies are the services the screen API is built on. Invites may be
// nil when Twilio is not configured.
type Dependencies struct {
	Session       *services.SessionContext
	Salons        *services.SalonService
	Checkout      *services.CheckoutService
	Bookings      *services.BookingService
	Wallet        *services.WalletService
	Poller        *services.PaymentPoller
	Notifications *services.NotificationService
	Invites       *services.InviteService

	CORSOrigins []string
	Logger      *zap.Logger
}

func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()

	origins := deps.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(utils.ErrorHandler(deps.Logger))
	r.Use(config.PerformanceLogger(deps.Logger))

	authController := controllers.AuthController{Session: deps.Session}
	profileController := controllers.ProfileController{Session: deps.Session}
	salonController := controllers.SalonController{Salons: deps.Salons}
	checkoutController := controllers.CheckoutController{Checkout: deps.Checkout}
	bookingController := controllers.BookingController{Bookings: deps.Bookings}
	walletController := controllers.WalletController{Wallet: deps.Wallet, Poller: deps.Poller}
	notificationController := controllers.NotificationController{Notifications: deps.Notifications}
	inviteController := controllers.InviteController{Invites: deps.Invites}

	requireLogin := controllers.RequireLogin(deps.Session)

	auth := r.Group("/auth")
	{
		auth.POST("/otp/send", authController.SendOTP)
		auth.POST("/otp/verify", authController.VerifyOTP)
		auth.POST("/logout", authController.Logout)
	}

	r.GET("/session", profileController.GetSession)
	r.POST("/session/bootstrap", profileController.Bootstrap)

	device := r.Group("/device")
	{
		device.POST("/location", profileController.SetLocation)
		device.POST("/push-token", profileController.SetPushToken)
	}

	profile := r.Group("/profile", requireLogin)
	{
		profile.GET("", profileController.GetProfile)
		profile.POST("/refresh", profileController.RefreshProfile)
	}

	salons := r.Group("/salons")
	{
		salons.GET("/nearby", salonController.Nearby)
		salons.GET("/most-reviewed", salonController.MostReviewed)
		salons.GET("/:id", salonController.Detail)
	}
	r.GET("/places/autocomplete", salonController.Autocomplete)

	checkout := r.Group("/checkout")
	{
		checkout.POST("", checkoutController.Start)
		checkout.GET("", checkoutController.View)
		checkout.DELETE("", checkoutController.Discard)
		checkout.GET("/dates", checkoutController.Dates)
		checkout.PUT("/services/:serviceId", checkoutController.SetQuantity)
		checkout.POST("/date", checkoutController.SelectDate)
		checkout.POST("/time", checkoutController.SelectTime)
		checkout.POST("/seat", checkoutController.SelectSeat)
		checkout.POST("/promo", checkoutController.ApplyPromo)
		checkout.POST("/confirm", checkoutController.Confirm)
	}

	bookings := r.Group("/bookings", requireLogin)
	{
		bookings.GET("", bookingController.List)
		bookings.POST("/refresh", bookingController.Refresh)
		bookings.POST("/:id/cancel", bookingController.Cancel)
		bookings.POST("/:id/review", bookingController.Review)
	}

	wallet := r.Group("/wallet", requireLogin)
	{
		wallet.GET("", walletController.Overview)
		wallet.POST("/top-up", walletController.TopUp)
		wallet.POST("/payments/:id", walletController.WatchPayment)
		wallet.GET("/payments/:id", walletController.PaymentState)
		wallet.DELETE("/payments/:id", walletController.StopPayment)
	}

	notifications := r.Group("/notifications")
	{
		notifications.GET("", notificationController.List)
		notifications.POST("", notificationController.Create)
		notifications.DELETE("", notificationController.Clear)
		notifications.DELETE("/:id", notificationController.Delete)
		notifications.POST("/:id/read", notificationController.MarkRead)
	}

	r.POST("/invites", requireLogin, inviteController.Invite)

	return r
}
