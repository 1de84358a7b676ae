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

	portssvc "github.com/SscSPs/produce_settlement_app/internal/core/ports/services"
	"github.com/SscSPs/produce_settlement_app/internal/core/services"
	"github.com/SscSPs/produce_settlement_app/internal/handlers"
	"github.com/SscSPs/produce_settlement_app/internal/middleware"
	"github.com/SscSPs/produce_settlement_app/internal/platform/analytics"
	"github.com/SscSPs/produce_settlement_app/internal/platform/config"
	"github.com/SscSPs/produce_settlement_app/internal/platform/notify"
	"github.com/SscSPs/produce_settlement_app/internal/platform/storage"
	"github.com/SscSPs/produce_settlement_app/pkg/logging"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// @title Produce Settlement API
// @version 1.0
// @description Records produce delivered by producers and the settlements that pay for it.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger := logging.Setup(os.Stdout, cfg.LogLevel, cfg.IsProduction)

	if err := run(cfg, logger); err != nil {
		logger.Error("Server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, closeDB, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeDB()

	publisher, closePublisher, err := newPublisher(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closePublisher()

	tracker, err := analytics.NewTracker(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := tracker.Close(); err != nil {
			logger.Error("Error flushing analytics", slog.String("error", err.Error()))
		}
	}()

	container := services.NewServiceContainer(cfg, repos, notify.Fanout{publisher, tracker})

	loginLimiter, err := middleware.NewLoginRateLimiter(cfg.LoginRateLimit)
	if err != nil {
		return err
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// Global middleware (logging, metrics, analytics, recovery, cors)
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		middleware.MetricsMiddleware(),
		middleware.AnalyticsMiddleware(tracker),
		gin.Recovery(),
		cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"X-RateLimit-Limit", "X-RateLimit-Remaining"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
	)
	if err := r.SetTrustedProxies(nil); err != nil {
		return err
	}

	handlers.RegisterRoutes(r, cfg, loginLimiter, container)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("db_driver", cfg.DBDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("Server exited")
	return nil
}

// newPublisher returns the Redis publisher when REDIS_URL is set and a
// logging publisher otherwise.
func newPublisher(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portssvc.SettlementEventPublisher, func(), error) {
	if cfg.RedisURL == "" {
		logger.Info("REDIS_URL not set, settlement events are only logged")
		return notify.LogPublisher{Logger: logger}, func() {}, nil
	}
	rdb, err := notify.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Publishing settlement events to Redis", slog.String("key", cfg.SettlementEventsKey))
	return notify.NewRedisPublisher(rdb, cfg.SettlementEventsKey), func() {
		if err := rdb.Close(); err != nil {
			logger.Error("Error closing Redis client", slog.String("error", err.Error()))
		}
	}, nil
}
