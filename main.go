package main

import (
	"context"
	"log"

	"salonbook-client/backend"
	"salonbook-client/config"
	"salonbook-client/models"
	"salonbook-client/routes"
	"salonbook-client/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	logger := config.InitLogger(cfg.Env)
	defer logger.Sync()

	if cfg.DeviceSecret == "" {
		logger.Warn("DEVICE_SECRET is not set; the stored auth token is sealed with an empty key")
	}

	db, err := config.ConnectDB(cfg.DBURL)
	if err != nil {
		logger.Fatal("Failed to connect to device storage", zap.Error(err))
	}
	if err := db.AutoMigrate(
		&models.DeviceEntry{},
		&models.Notification{},
	); err != nil {
		logger.Fatal("Failed to migrate device storage", zap.Error(err))
	}

	api := backend.New(backend.Config{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.APITimeout,
		Logger:  logger.Named("backend"),
	})
	maps := services.NewGoogleMaps(cfg.GoogleAPIKey, cfg.PlacesRatePerSec, logger.Named("maps"))

	session := services.NewSessionContext(services.SessionConfig{
		API:          api,
		Store:        services.NewGormDeviceStore(db),
		Geocoder:     maps,
		DeviceSecret: cfg.DeviceSecret,
		DefaultLocation: models.Location{
			Latitude:  cfg.DefaultLatitude,
			Longitude: cfg.DefaultLongitude,
		},
		Logger: logger.Named("session"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*cfg.APITimeout)
	state := session.Bootstrap(ctx)
	cancel()
	logger.Info("Session restored",
		zap.Bool("loggedIn", state.LoggedIn),
		zap.String("route", state.Route),
		zap.String("city", state.Location.City),
	)

	bookings := services.NewBookingService(api, session, logger.Named("bookings"))
	notifications := services.NewNotificationService(db, logger.Named("notifications"))

	poller := services.NewPaymentPoller(api, cfg.PaymentPollInterval, cfg.PaymentPollTimeout, logger.Named("payments"))
	poller.OnApproved(func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, cfg.APITimeout)
		defer cancel()
		if _, err := session.RefreshProfile(ctx); err != nil {
			logger.Warn("Profile refresh after top-up failed", zap.Error(err))
		}
	})
	defer poller.Shutdown()

	reminders := services.NewReminderService(bookings, notifications, func() bool {
		return session.Profile() != nil
	}, cfg.ReminderLead, logger.Named("reminders"))
	if err := reminders.StartScheduler(cfg.ReminderSchedule); err != nil {
		logger.Fatal("Failed to start reminder scheduler", zap.Error(err))
	}
	defer reminders.Stop()

	var invites *services.InviteService
	if cfg.TwilioAccountSID != "" && cfg.TwilioAuthToken != "" {
		invites = services.NewInviteService(services.InviteConfig{
			AccountSID:     cfg.TwilioAccountSID,
			AuthToken:      cfg.TwilioAuthToken,
			PhoneNumber:    cfg.TwilioPhoneNumber,
			WhatsAppNumber: cfg.TwilioWhatsAppNumber,
		}, session, logger.Named("invites"))
	} else {
		logger.Info("Twilio not configured; invites disabled")
	}

	r := routes.SetupRouter(routes.Dependencies{
		Session:       session,
		Salons:        services.NewSalonService(api, session, maps, logger.Named("salons")),
		Checkout:      services.NewCheckoutService(api, session, logger.Named("checkout")),
		Bookings:      bookings,
		Wallet:        services.NewWalletService(api, session, logger.Named("wallet")),
		Poller:        poller,
		Notifications: notifications,
		Invites:       invites,
		CORSOrigins:   cfg.CORSOrigins,
		Logger:        logger,
	})
	printRoutes(r, logger)

	logger.Info("Server starting", zap.String("port", cfg.Port), zap.String("api", cfg.APIBaseURL))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}

func printRoutes(r *gin.Engine, logger *zap.Logger) {
	for _, route := range r.Routes() {
		logger.Debug("route", zap.String("method", route.Method), zap.String("path", route.Path))
	}
}
