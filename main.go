package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"zapagenda/config"
	cronjobs "zapagenda/cron"
	"zapagenda/database"
	appointmentRepo "zapagenda/database/repository/appointment"
	knowledgeRepo "zapagenda/database/repository/knowledge"
	"zapagenda/handlers"
	"zapagenda/routes"
	"zapagenda/services/booking"
	ai "zapagenda/services/intelligence"
	"zapagenda/services/messenger"
	"zapagenda/services/settings"
	"zapagenda/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	loc := config.Location()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// Repositories.
	apptRepo := appointmentRepo.NewMongoAppointmentRepo()
	if err := apptRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure appointment indexes: %v", err)
	}
	kRepo := knowledgeRepo.NewMongoKnowledgeRepo()

	// Services.
	settingsProvider := settings.NewCachedProvider(kRepo,
		time.Duration(config.AppConfig.SettingsCacheTTLSeconds)*time.Second)
	stateStore := booking.NewRedisStateStore(utils.GetStateCacheClient(),
		time.Duration(config.AppConfig.ConversationTTLMinutes)*time.Minute)
	historyStore := ai.NewRedisHistoryStore(utils.GetHistoryCacheClient(),
		time.Duration(config.AppConfig.ConversationTTLMinutes)*time.Minute)
	usageTracker := booking.NewRedisUsageTracker(utils.GetCacheClient())

	extractor, err := ai.NewGeminiClient(config.AppConfig.GeminiAPIKey, config.AppConfig.SystemPrompt)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize extractor: %v", err)
	}

	bookingEngine := &booking.DefaultBookingEngine{
		Appointments: apptRepo,
		Knowledge:    kRepo,
		Settings:     settingsProvider,
		States:       stateStore,
		History:      historyStore,
		Extractor:    extractor,
		Usage:        usageTracker,
		Loc:          loc,
	}

	gateway := messenger.NewHTTPGateway(config.AppConfig.GatewayURL)

	// Reminder pipeline: cron tick scans the lead window, asynq worker
	// delivers the messages.
	queueClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	defer queueClient.Close()

	scanner := cronjobs.NewReminderScanner(apptRepo, queueClient,
		time.Duration(config.AppConfig.ReminderLeadMinutes)*time.Minute)
	scanCron := scanner.Start()
	defer scanCron.Stop()

	cronjobs.InitReminderWorker(apptRepo, gateway)

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetStateCacheClient(), utils.GetHistoryCacheClient()},
		database.MongoClient,
	)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Messages:     handlers.NewMessageHandler(bookingEngine),
		Appointments: handlers.NewAppointmentHandler(apptRepo, loc),
		Knowledge:    handlers.NewKnowledgeHandler(kRepo, settingsProvider),
	}

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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
