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
	"gorm.io/gorm"

	"github.com/unn-housing/service-booking/internal/application"
	"github.com/unn-housing/service-booking/internal/auth"
	"github.com/unn-housing/service-booking/internal/config"
	"github.com/unn-housing/service-booking/internal/database"
	"github.com/unn-housing/service-booking/internal/events"
	"github.com/unn-housing/service-booking/internal/handler"
	"github.com/unn-housing/service-booking/internal/health"
	"github.com/unn-housing/service-booking/internal/logger"
	"github.com/unn-housing/service-booking/internal/middleware"
	"github.com/unn-housing/service-booking/internal/repository"
)

const serviceName = "service-booking"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, serviceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-booking",
		zap.String("port", cfg.Port),
		zap.String("env", cfg.AppEnv),
	)

	// Connect to database
	db, err := database.Connect(cfg.DBConfig, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if err := migrateSchema(db, cfg.DBConfig.DatabaseURL(), log); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(
		cfg.JWTConfig.Secret,
		cfg.JWTConfig.AccessTTL,
		cfg.JWTConfig.RefreshTTL,
	)

	// Initialize event publisher
	var publisher events.Publisher = events.NopPublisher{}
	if cfg.KafkaConfig.Enabled() {
		publisher = events.NewProducer(cfg.KafkaConfig.Brokers, cfg.KafkaConfig.Topic, log)
		log.Info("publishing booking events", zap.Strings("brokers", cfg.KafkaConfig.Brokers), zap.String("topic", cfg.KafkaConfig.Topic))
	} else {
		log.Warn("no Kafka brokers configured, booking events are discarded")
	}
	defer func() { _ = publisher.Close() }()

	// Initialize repositories
	userRepo := repository.NewGormUserRepository(db)
	lodgeRepo := repository.NewGormLodgeRepository(db)
	bookingRepo := repository.NewGormBookingRepository(db)
	reviewRepo := repository.NewGormReviewRepository(db)

	// Initialize application services
	bookingService := application.NewBookingService(
		bookingRepo,
		userRepo,
		lodgeRepo,
		publisher,
		cfg.DefaultTotalRent,
		log,
	)
	lodgeService := application.NewLodgeService(lodgeRepo, log)
	reviewService := application.NewReviewService(reviewRepo, lodgeRepo, log)
	authService := application.NewAuthService(userRepo, jwtManager, log)
	userService := application.NewUserService(userRepo, log)

	// Setup Gin router
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins))
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	health.NewHandler(db, serviceName).RegisterRoutes(router)

	// Register routes
	handler.NewAuthHandler(authService).RegisterRoutes(&router.RouterGroup)
	handler.NewBookingHandler(bookingService).RegisterRoutes(&router.RouterGroup, jwtManager)
	handler.NewAdminBookingHandler(bookingService).RegisterRoutes(&router.RouterGroup, jwtManager)
	handler.NewLodgeHandler(lodgeService).RegisterRoutes(&router.RouterGroup, jwtManager)
	handler.NewReviewHandler(reviewService).RegisterRoutes(&router.RouterGroup, jwtManager)
	handler.NewUserHandler(userService).RegisterRoutes(&router.RouterGroup, jwtManager)

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

	log.Info("shutting down service-booking...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-booking stopped")
}

// migrateSchema applies the SQL migrations to PostgreSQL, which carry the booking
// exclusion constraint, in every environment. SQLite is auto-migrated.
func migrateSchema(db *gorm.DB, dbURL string, log *zap.Logger) error {
	if database.IsPostgresDSN(dbURL) {
		return database.RunMigrations(dbURL, "migrations", log)
	}
	if err := repository.AutoMigrate(db); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	log.Info("database migration completed (auto-migrate)")
	return nil
}
