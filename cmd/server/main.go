package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tripcanvas/service-travel/internal/application"
	"github.com/tripcanvas/service-travel/internal/auth"
	"github.com/tripcanvas/service-travel/internal/config"
	"github.com/tripcanvas/service-travel/internal/database"
	"github.com/tripcanvas/service-travel/internal/events"
	"github.com/tripcanvas/service-travel/internal/handler"
	"github.com/tripcanvas/service-travel/internal/health"
	"github.com/tripcanvas/service-travel/internal/logger"
	"github.com/tripcanvas/service-travel/internal/maps"
	"github.com/tripcanvas/service-travel/internal/metrics"
	"github.com/tripcanvas/service-travel/internal/middleware"
	"github.com/tripcanvas/service-travel/internal/repository"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "service-travel")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-travel",
		zap.String("port", cfg.Port),
	)

	// Connect to database
	db, err := database.Connect(cfg.DBConfig, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(
			&repository.UserModel{},
			&repository.UserPreferencesModel{},
			&repository.TripModel{},
			&repository.TripDayModel{},
			&repository.ItineraryItemModel{},
			&repository.TransportationModel{},
			&repository.FeedbackModel{},
			&repository.ConversationModel{},
			&repository.PlaceModel{},
		); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
	}

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWTConfig.Secret, cfg.JWTConfig.TTL)

	// Initialize Kafka producer (nil when no brokers are configured)
	producer := events.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
	defer func() { _ = producer.Close() }()

	// Initialize Google Maps client and metrics
	mapsClient := maps.NewClient(cfg.Google.APIKey, cfg.Google.Language)
	if !mapsClient.HasKey() {
		log.Warn("google api key not configured, route estimates will always use the local fallback")
	}
	m := metrics.New("travel")

	// Initialize repositories
	userRepo := repository.NewGormUserRepository(db)
	prefsRepo := repository.NewGormPreferencesRepository(db)
	tripRepo := repository.NewGormTripRepository(db)
	transportationRepo := repository.NewGormTransportationRepository(db)
	feedbackRepo := repository.NewGormFeedbackRepository(db)
	chatRepo := repository.NewGormChatRepository(db)
	placeRepo := repository.NewGormPlaceRepository(db)

	// Initialize application services
	authService := application.NewAuthService(userRepo, jwtManager, log)
	userService := application.NewUserService(userRepo, prefsRepo, log)
	tripService := application.NewTripService(tripRepo, userRepo, producer, log)
	transportationService := application.NewTransportationService(transportationRepo, tripRepo, log)
	feedbackService := application.NewFeedbackService(feedbackRepo, tripRepo, log)
	chatService := application.NewChatService(chatRepo, log)
	placeService := application.NewPlaceService(mapsClient, placeRepo, m, log)
	routeService := application.NewRouteService(mapsClient, m, log)

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService, userService)
	userHandler := handler.NewUserHandler(userService)
	tripHandler := handler.NewTripHandler(tripService)
	transportationHandler := handler.NewTransportationHandler(transportationService)
	feedbackHandler := handler.NewFeedbackHandler(feedbackService)
	chatHandler := handler.NewChatHandler(chatService)
	placeHandler := handler.NewPlaceHandler(placeService)
	routeHandler := handler.NewRouteHandler(routeService)

	// Setup Gin router
	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.Recovery(log))
	router.Use(middleware.Logger(log))
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(cfg.CORSOrigins))
	router.Use(middleware.SecurityHeaders())
	router.Use(m.GinMiddleware())

	// Register health and metrics routes
	healthHandler := health.NewHandler(db, "service-travel")
	healthHandler.RegisterRoutes(router)
	m.RegisterRoutes(router)

	// Register routes
	authHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	userHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	tripHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	transportationHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	feedbackHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	chatHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	placeHandler.RegisterRoutes(&router.RouterGroup)
	routeHandler.RegisterRoutes(&router.RouterGroup)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-travel...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-travel stopped")
}
