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
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"workspace-service/internal/config"
	"workspace-service/internal/database"
	"workspace-service/internal/job"
	"workspace-service/internal/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := initLogger(cfg.Server.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Set Gin mode
	if cfg.Server.Env == "production" || cfg.Server.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Starting Workspace Service",
		zap.Int("port", cfg.Server.Port),
		zap.String("env", cfg.Server.Env),
	)

	// Initialize database
	db, err := database.NewDB(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	logger.Info("Database connected successfully")

	// Initialize Redis (optional: cache and realtime delivery degrade without it)
	redisClient := database.NewRedis(cfg, logger)

	// Setup router with all dependencies
	r, services := router.Setup(router.Config{
		DB:     db,
		Redis:  redisClient,
		Logger: logger,
		Cfg:    cfg,
	})

	// Background jobs: stale group sweep and notification retention
	scheduler := cron.New()
	flushJob := job.NewFlushJob(services.Dispatch, logger)
	if _, err := scheduler.AddJob(fmt.Sprintf("@every %ds", cfg.App.SweepIntervalSeconds), flushJob); err != nil {
		logger.Fatal("Failed to schedule flush job", zap.Error(err))
	}
	cleanupJob := job.NewCleanupJob(services.Notification, logger)
	if _, err := scheduler.AddJob("@daily", cleanupJob); err != nil {
		logger.Fatal("Failed to schedule cleanup job", zap.Error(err))
	}
	scheduler.Start()
	logger.Info("Background jobs scheduled",
		zap.Int("sweep_interval_seconds", cfg.App.SweepIntervalSeconds),
		zap.Int("cleanup_days", cfg.App.CleanupDays),
	)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Workspace Service started successfully",
			zap.String("address", srv.Addr),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Stop the scheduler, then drain in-flight requests
	cronCtx := scheduler.Stop()
	<-cronCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	if redisClient != nil {
		redisClient.Close()
	}

	logger.Info("Server exited gracefully")
}

// initLogger initializes the zap logger with the specified level
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      zapLevel == zapcore.DebugLevel,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}
