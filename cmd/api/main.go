package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amirhossein-jamali/pool-access-controller/internal/domain/lock"
	portmessaging "github.com/amirhossein-jamali/pool-access-controller/internal/domain/port/messaging"
	checkinUseCase "github.com/amirhossein-jamali/pool-access-controller/internal/domain/usecase/checkin"
	occupancyUseCase "github.com/amirhossein-jamali/pool-access-controller/internal/domain/usecase/occupancy"

	"github.com/amirhossein-jamali/pool-access-controller/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/pool-access-controller/internal/infrastructure/adapter/api/routes"
	"github.com/amirhossein-jamali/pool-access-controller/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/pool-access-controller/internal/infrastructure/adapter/database/migration"
	"github.com/amirhossein-jamali/pool-access-controller/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/pool-access-controller/internal/infrastructure/adapter/messaging"
	"github.com/amirhossein-jamali/pool-access-controller/internal/infrastructure/adapter/repository"
	timeProvider "github.com/amirhossein-jamali/pool-access-controller/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/pool-access-controller/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create logger
	appLogger := logger.NewFromConfig(cfg.Logger.Output, cfg.Logger.Level, cfg.Environment == config.Production)

	// Setup database configuration
	dbConfig := &database.Config{
		Driver:          "postgres",
		Host:            cfg.Database.Host,
		Port:            database.ParsePort(cfg.Database.Port),
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		QueryTimeout:    cfg.Database.QueryTimeout,
		LogLevel:        cfg.Logger.Level,
		RetryAttempts:   cfg.Database.RetryAttempts,
		RetryDelay:      int(cfg.Database.RetryDelay / time.Second),
	}

	// Initialize time provider
	tp := timeProvider.NewRealTimeProvider()

	// Connect to the database
	dbManager := database.NewManager(dbConfig, appLogger, tp)
	if _, err = dbManager.Connect(); err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer dbManager.Close()

	// Run migrations
	migrationMgr := migration.NewMigrationManager(dbManager.DB(), appLogger, tp)
	if err = migrationMgr.MigrateAll(); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Seed the default slot catalog
	if err = migration.SeedDefaultSlots(context.Background(), dbManager.DB(), appLogger, tp); err != nil {
		appLogger.Error("Failed to seed default slot catalog", map[string]any{
			"error": err.Error(),
		})
	}

	// Initialize repositories
	tokenRepo := repository.NewTokenRepository(dbManager.DB(), tp, appLogger)
	slotRepo := repository.NewSlotRepository(dbManager.DB(), appLogger)
	attendanceRepo := repository.NewAttendanceRepository(dbManager.DB(), appLogger)

	// Occupancy event publisher
	var publisher portmessaging.Publisher
	if cfg.Kafka.Enabled {
		publisher, err = messaging.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, appLogger)
		if err != nil {
			appLogger.Error("Failed to create Kafka publisher", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	} else {
		publisher = messaging.NewNoopPublisher()
	}
	defer publisher.Close()

	// Lock registry for slot+date serialization
	lockTimeout := time.Duration(cfg.CheckIn.LockTimeoutMs) * time.Millisecond
	locks := lock.NewRegistry(tp, appLogger).
		WithLease(lockTimeout).
		WithCommitTimeout(time.Duration(cfg.CheckIn.CommitTimeoutMs) * time.Millisecond).
		WithMaxOptimisticRetries(cfg.CheckIn.MaxOptimisticRetries)

	// Initialize use cases
	coordinator := checkinUseCase.NewCoordinator(
		tokenRepo,
		slotRepo,
		attendanceRepo,
		publisher,
		locks,
		tp,
		appLogger,
	).
		WithLockTimeout(lockTimeout).
		WithGraceMinutes(cfg.CheckIn.GraceMinutes)

	checkInService := checkinUseCase.NewService(coordinator, appLogger)
	occupancy := occupancyUseCase.NewUseCase(slotRepo, attendanceRepo, tp, appLogger)

	// Initialize API handlers
	checkInHandler := handler.NewCheckInHandler(checkInService, appLogger)
	slotHandler := handler.NewSlotHandler(occupancy, tp, appLogger)
	healthHandler := handler.NewHealthHandler(dbManager.DB())

	// Initialize Gin router
	router := gin.New()

	// Setup middlewares and routes
	routes.SetupMiddlewares(router, appLogger, cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst)
	routes.SetupRoutes(router, checkInHandler, slotHandler, healthHandler)

	// Create HTTP server with configurable timeout values
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"port": cfg.Server.Port,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missingConfigs []string

	if cfg.Server.Port == 0 {
		missingConfigs = append(missingConfigs, "server.port")
	}
	if cfg.Server.ReadTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.readTimeout")
	}
	if cfg.Server.WriteTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.writeTimeout")
	}
	if cfg.Server.ShutdownTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.shutdownTimeout")
	}

	if cfg.Database.Host == "" {
		missingConfigs = append(missingConfigs, "database.host (or PAC_DB_HOST environment variable)")
	}
	if cfg.Database.Port == "" {
		missingConfigs = append(missingConfigs, "database.port (or PAC_DB_PORT environment variable)")
	}
	if cfg.Database.Username == "" {
		missingConfigs = append(missingConfigs, "database.username (or PAC_DB_USERNAME environment variable)")
	}
	if cfg.Database.Database == "" {
		missingConfigs = append(missingConfigs, "database.database (or PAC_DB_NAME environment variable)")
	}

	if cfg.CheckIn.LockTimeoutMs == 0 {
		missingConfigs = append(missingConfigs, "checkIn.lockTimeoutMs")
	}
	if cfg.CheckIn.GraceMinutes < 0 {
		missingConfigs = append(missingConfigs, "checkIn.graceMinutes")
	}
	if cfg.CheckIn.MaxOptimisticRetries == 0 {
		missingConfigs = append(missingConfigs, "checkIn.maxOptimisticRetries")
	}

	if cfg.Kafka.Enabled {
		if len(cfg.Kafka.Brokers) == 0 {
			missingConfigs = append(missingConfigs, "kafka.brokers")
		}
		if cfg.Kafka.Topic == "" {
			missingConfigs = append(missingConfigs, "kafka.topic")
		}
	}

	if cfg.Environment == "" {
		missingConfigs = append(missingConfigs, "environment")
	} else if cfg.Environment != config.Development &&
		cfg.Environment != config.Production &&
		cfg.Environment != config.Test {
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			cfg.Environment, config.Development, config.Production, config.Test)
	}

	if cfg.Logger.Level == "" {
		missingConfigs = append(missingConfigs, "logger.level")
	}

	if len(missingConfigs) > 0 {
		return fmt.Errorf("missing required configurations: %v", missingConfigs)
	}

	return nil
}
