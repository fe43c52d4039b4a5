package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"detailing/config"
	"detailing/cron"
	"detailing/database"
	"detailing/database/repository"
	"detailing/handlers"
	"detailing/metrics"
	"detailing/routes"
	"detailing/services/booking"
	"detailing/services/calendar"
	"detailing/services/catalog"
	"detailing/services/expense"
	"detailing/services/notification"
	"detailing/services/schedule"
	"detailing/services/storage"
	"detailing/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	cfg := config.AppConfig

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB()
	cacheClient := utils.GetCacheClient()

	// repositories.
	bookingRepo := repository.NewMongoBookingRepo()
	serviceRepo := repository.NewMongoServiceRepo()
	expenseRepo := repository.NewMongoExpenseRepo()
	if err := repository.EnsureIndexes(bookingRepo, serviceRepo, expenseRepo); err != nil {
		logger.Fatal("main: failed to create indexes", zap.Error(err))
	}

	rules, err := schedule.RulesFromConfig(cfg)
	if err != nil {
		logger.Fatal("main: invalid business hours configuration", zap.Error(err))
	}

	// Busy sources. The calendar is optional; without it only stored bookings block time.
	sources := []schedule.SourceConfig{{
		Source: &schedule.BookingSource{
			Bookings:        bookingRepo,
			Durations:       serviceRepo,
			Location:        rules.Location,
			DefaultDuration: cfg.DefaultDuration,
			Logger:          logger,
		},
		Timeout: time.Duration(cfg.StoreTimeoutSec) * time.Second,
	}}

	var bookingCalendar calendar.BookingCalendar
	calendarClient, err := calendar.NewClient(context.Background(), cfg.GoogleCredentialsFile, cfg.CalendarID, cfg.ServiceTimezone)
	if err != nil {
		logger.Warn("main: calendar integration disabled", zap.Error(err))
	} else {
		bookingCalendar = calendarClient
		sources = append(sources, schedule.SourceConfig{
			Source:  &schedule.CalendarSource{Events: calendarClient, Location: rules.Location},
			Timeout: time.Duration(cfg.CalendarTimeoutSec) * time.Second,
		})
	}

	appMetrics := metrics.New()
	aggregator := schedule.NewAggregator(logger, sources...).WithObserver(appMetrics)
	engine := schedule.NewEngine(rules, aggregator, serviceRepo, logger)

	// e-mail queue.
	queue := asynq.NewClient(cron.QueueRedisOpt())
	defer queue.Close()
	notifier := notification.NewQueueNotifier(queue, cfg.OwnerEmail, rules.Location)
	sender := notification.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom)
	worker := cron.InitEmailWorker(sender, bookingRepo)

	var images storage.ImageStore
	if cfg.CloudinaryCloudName != "" {
		images, err = utils.Cloudinary()
		if err != nil {
			logger.Warn("main: image storage disabled", zap.Error(err))
			images = nil
		}
	}

	// services.
	bookingService := &booking.DefaultBookingService{
		Engine:   engine,
		Repo:     bookingRepo,
		Locker:   booking.NewRedisLocker(cacheClient),
		Cache:    booking.NewRedisMonthCache(cacheClient),
		Calendar: bookingCalendar,
		Notifier: notifier,
		Recorder: appMetrics,
		Logger:   logger,
	}
	catalogService := &catalog.DefaultCatalogService{Repo: serviceRepo, Images: images, Logger: logger}
	expenseService := &expense.DefaultExpenseService{Repo: expenseRepo}

	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()
	utils.StartHealthMonitor(monitorCtx, 30*time.Second, []*redis.Client{cacheClient}, database.MongoClient, bookingCalendar != nil)

	// Assemble the handler bundle.
	handlerBundle := handlers.NewHandlerBundle(
		cfg.AdminKey,
		handlers.NewBookingHandler(bookingService),
		handlers.NewCatalogHandler(catalogService),
		handlers.NewExpenseHandler(expenseService),
		handlers.NewStorageHandler(images),
	)
	handlerBundle.Metrics = gin.WrapH(appMetrics.Handler())
	handlerBundle.RequestMetrics = appMetrics.Middleware()
	if cfg.AdminKey == "" {
		logger.Warn("main: ADMIN_KEY not set, admin routes will reject every request")
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	routes.RegisterRoutes(router, handlerBundle, cfg.MaxRequestsPerMin)

	// Start the HTTP server.
	port := cfg.AppPort
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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	worker.Shutdown()
	if err := database.Disconnect(ctx); err != nil {
		logger.Warn("main: mongo disconnect failed", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
