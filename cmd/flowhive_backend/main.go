package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/flowhive/flowhive_backend/internal/adapters/companies"
	"github.com/flowhive/flowhive_backend/internal/adapters/email"
	"github.com/flowhive/flowhive_backend/internal/adapters/realtime"
	"github.com/flowhive/flowhive_backend/internal/adapters/storage"
	"github.com/flowhive/flowhive_backend/internal/core/ports/gateways"
	"github.com/flowhive/flowhive_backend/internal/core/services"
	"github.com/flowhive/flowhive_backend/internal/handlers"
	"github.com/flowhive/flowhive_backend/internal/middleware"
	"github.com/flowhive/flowhive_backend/internal/platform/config"
	"github.com/flowhive/flowhive_backend/internal/repositories/database/pgsql"
	"github.com/flowhive/flowhive_backend/internal/utils"
	"github.com/flowhive/flowhive_backend/pkg/database"
)

const shutdownTimeout = 15 * time.Second

// @title Flowhive Backend API
// @version 1.0
// @description Field operations backend: activities, analytics, reports and meeting minutes.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("Server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return err
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	logger.Info("Running database migrations...")
	if err := database.RunMigrations(cfg.DatabaseURL, "file://migrations", logger); err != nil {
		return err
	}

	hub, rdb, err := newRealtimeHub(cfg, logger)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
	}

	fileStore := newFileStore(cfg, logger)
	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()

	container := services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(dbPool), services.GatewayProvider{
		Email:       email.NewResendClient(cfg.ResendBaseURL, cfg.ResendAPIKey, cfg.ResendFromEmail, cfg.ResendFromName),
		Photos:      fileStore,
		Attachments: fileStore,
		Companies:   companies.NewClient(cfg.CompaniesAPIURL),
		Notifier:    hub,
		Logger:      logger,
	})

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.MaxMultipartMemory = cfg.MaxUploadSize

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	if err := r.SetTrustedProxies(nil); err != nil {
		return err
	}
	if err := handlers.RegisterRoutes(r, cfg, container, hub, posthogClient); err != nil {
		return err
	}

	hubDone := make(chan struct{})
	go func() {
		defer close(hubDone)
		if err := hub.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Realtime hub stopped", slog.String("error", err.Error()))
		}
	}()

	if err := container.Scheduler.Start(); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := container.Scheduler.Stop(shutdownCtx); err != nil {
		logger.Warn("Scheduler did not stop cleanly", slog.String("error", err.Error()))
	}
	hub.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", slog.String("error", err.Error()))
	}
	stop()
	<-hubDone
	logger.Info("Server stopped")
	return nil
}

// newRealtimeHub builds the websocket hub, relaying through Redis when REDIS_URL is set.
func newRealtimeHub(cfg *config.Config, logger *slog.Logger) (*realtime.Hub, *redis.Client, error) {
	opts := []realtime.HubOption{realtime.WithAllowedOrigins(cfg.AllowedOrigins)}
	if cfg.RedisURL == "" {
		logger.Info("REDIS_URL not set, realtime events stay in this process")
		return realtime.NewHub(logger, opts...), nil, nil
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	if cfg.RedisPassword != "" {
		redisOpts.Password = cfg.RedisPassword
	}
	if cfg.RedisDB != 0 {
		redisOpts.DB = cfg.RedisDB
	}
	rdb := redis.NewClient(redisOpts)
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, nil, err
	}
	logger.Info("Realtime hub relaying through Redis")
	return realtime.NewHub(logger, append(opts, realtime.WithRedis(rdb))...), rdb, nil
}

func newFileStore(cfg *config.Config, logger *slog.Logger) gateways.FileStore {
	if cfg.CloudinaryEnabled() {
		logger.Info("Uploads stored in Cloudinary")
		return storage.NewCloudinaryStore(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	}
	logger.Info("Uploads stored on local disk", slog.String("dir", cfg.UploadDir))
	return storage.NewLocalStore(cfg.UploadDir, "/uploads", cfg.MaxUploadSize)
}
