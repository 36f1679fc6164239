package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"winetrail/config"
	"winetrail/cron"
	"winetrail/database"
	"winetrail/database/repository"
	"winetrail/handlers"
	"winetrail/metrics"
	"winetrail/middleware"
	"winetrail/routes"
	"winetrail/services/booking"
	"winetrail/services/events"
	"winetrail/services/itinerary"
	"winetrail/services/notification"
	"winetrail/services/tasks"
	"winetrail/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	metrics.Register()
	stripe.Key = config.AppConfig.StripeSecretKey

	if err := database.InitDB(logger); err != nil {
		logger.Sugar().Fatalf("main: failed to connect to MongoDB: %v", err)
	}
	db := database.Database()
	cacheClient := utils.GetCacheClient()
	cartClient := utils.GetCartClient()

	// repositories.
	catalog := repository.NewCachedCatalog(
		repository.NewMongoWineryRepo(db, logger), cacheClient, config.AppConfig.CatalogCacheTTL, logger)
	bookingRepo := repository.NewMongoBookingRepo(db, logger)
	userRepo := repository.NewMongoUserRepo(db, logger)

	// notifications.
	var pusher notification.Pusher
	if client := utils.FirebaseInit(); client != nil {
		pusher = notification.NewFCMPusher(client)
	}
	mailer := notification.NewSMTPMailer(config.AppConfig.SMTPHost, config.AppConfig.SMTPPort,
		config.AppConfig.SMTPUser, config.AppConfig.SMTPPassword, config.AppConfig.EmailFrom)
	notifier := notification.NewFanout(mailer, pusher, catalog, userRepo, logger)

	// domain events.
	var publisher events.Publisher = events.Discard{}
	if brokers := config.KafkaBrokerList(); len(brokers) > 0 {
		producer := events.NewProducer(brokers, config.AppConfig.KafkaBookingTopic, logger)
		defer producer.Close()
		publisher = producer
	} else {
		logger.Info("main: no Kafka brokers configured, booking events disabled")
	}

	// reminders.
	taskClient := asynq.NewClient(cron.RedisOpt())
	defer taskClient.Close()
	reminders := tasks.NewAsynqReminderScheduler(taskClient, config.AppConfig.ReminderLeadTime, logger)
	worker := cron.InitReminderWorker(bookingRepo, notifier, logger)

	// services.
	gateway := booking.NewStripeGateway(config.AppConfig.StripeWebhookSecret)
	bookingService := booking.NewBookingService(
		catalog,
		bookingRepo,
		gateway,
		notifier,
		publisher,
		reminders,
		booking.CheckoutConfig{
			Currency:   config.AppConfig.Currency,
			SuccessURL: config.AppConfig.CheckoutSuccessURL,
			CancelURL:  config.AppConfig.CheckoutCancelURL,
		},
		logger,
	)
	carts := itinerary.NewCartSessions(cartClient, config.AppConfig.CartTTL, logger)

	wineryHandler := handlers.NewWineryHandler(catalog)
	itineraryHandler := handlers.NewItineraryHandler(carts, catalog, bookingService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	adminHandler := handlers.NewAdminHandler(bookingService)
	webhookHandler := handlers.NewWebhookHandler(gateway, bookingService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		// Catalog endpoints.
		ListWineriesHandler:    wineryHandler.ListWineriesHandler,
		GetWineryHandler:       wineryHandler.GetWineryHandler,
		GetAvailabilityHandler: wineryHandler.GetAvailabilityHandler,

		// Itinerary endpoints.
		CreateItineraryHandler:   itineraryHandler.CreateItineraryHandler,
		GetItineraryHandler:      itineraryHandler.GetItineraryHandler,
		AddWineryHandler:         itineraryHandler.AddWineryHandler,
		UpdateSelectionHandler:   itineraryHandler.UpdateSelectionHandler,
		RemoveWineryHandler:      itineraryHandler.RemoveWineryHandler,
		ClearItineraryHandler:    itineraryHandler.ClearItineraryHandler,
		CheckoutItineraryHandler: itineraryHandler.CheckoutItineraryHandler,

		// Booking endpoints.
		CreateBookingHandler: bookingHandler.CreateBookingHandler,
		ListBookingsHandler:  bookingHandler.ListBookingsHandler,
		GetBookingHandler:    bookingHandler.GetBookingHandler,
		CancelBookingHandler: bookingHandler.CancelBookingHandler,

		// Admin endpoints.
		UpdateBookingStatusHandler: adminHandler.UpdateBookingStatusHandler,

		// Payment callbacks.
		StripeWebhookHandler: webhookHandler.StripeWebhookHandler,
	}

	healthCtx, stopHealth := context.WithCancel(context.Background())
	defer stopHealth()
	utils.StartHealthMonitor(healthCtx, 30*time.Second, []*redis.Client{cacheClient, cartClient}, database.MongoClient)

	// Create the Gin router.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	worker.Shutdown()
	if err := database.Disconnect(ctx); err != nil {
		logger.Warn("main: mongo disconnect", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
