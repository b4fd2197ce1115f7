package main

import (
	"log/slog"
	"os"

	"github.com/SscSPs/internet_banking/internal/core/ports/repositories"
	"github.com/SscSPs/internet_banking/internal/core/services"
	"github.com/SscSPs/internet_banking/internal/handlers"
	"github.com/SscSPs/internet_banking/internal/middleware"
	"github.com/SscSPs/internet_banking/internal/platform/config"
	"github.com/SscSPs/internet_banking/internal/repositories/memory"
	"github.com/SscSPs/internet_banking/internal/utils"
	"github.com/gin-gonic/gin"
)

// @title Internet Banking API
// @version 1.0
// @description Session-scoped account with deposits, withdrawals and a statement.

// @host localhost:8080
// @BasePath /api/v1
func main() {
	// Initialize structured logger
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	level.Set(cfg.LogLevel)

	repos := repositories.RepositoryProvider{
		SessionRepo: memory.NewSessionRepository(cfg.SessionTTL, cfg.SessionCleanupInterval),
	}
	serviceContainer := services.NewServiceContainer(cfg, repos)
	logger.Info("Session store ready",
		slog.Duration("ttl", cfg.SessionTTL),
		slog.String("timezone", cfg.TimeZone))

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer posthogClient.Close()

	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Failed to create rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, analytics)
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		middleware.PosthogMiddleware(posthogClient),
	)

	err = r.SetTrustedProxies(nil)
	if err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, rateLimiter)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
