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

	"github.com/SAP-F-2025/online-test-service/internal/auth"
	"github.com/SAP-F-2025/online-test-service/internal/cache"
	"github.com/SAP-F-2025/online-test-service/internal/config"
	"github.com/SAP-F-2025/online-test-service/internal/events"
	"github.com/SAP-F-2025/online-test-service/internal/handlers"
	"github.com/SAP-F-2025/online-test-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/online-test-service/internal/services"
	"github.com/SAP-F-2025/online-test-service/internal/utils"
	"github.com/SAP-F-2025/online-test-service/internal/validator"
	"github.com/SAP-F-2025/online-test-service/pkg"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := utils.NewLogger(cfg.IsProduction())
	if err := run(cfg, logger); err != nil {
		logger.LogError(err, "Server stopped with error")
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger utils.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		return err
	}
	if err := postgres.AutoMigrate(db); err != nil {
		return err
	}
	repo := postgres.NewRepository(db)
	defer func() {
		if err := repo.Close(); err != nil {
			logger.LogError(err, "Failed to close database")
		}
	}()

	// Results are served from the database when redis is unavailable
	var resultCache cache.CacheService
	redisClient, err := pkg.NewRedisClient(ctx, cfg)
	if err != nil {
		logger.Warn("Redis unavailable, result caching disabled", "error", err)
	} else {
		defer redisClient.Close()
		resultCache = cache.NewRedisCache(redisClient, logger.Slog())
	}

	publisher, err := cfg.Events.CreateEventPublisher(logger.Slog())
	if err != nil {
		logger.LogError(err, "Failed to create event publisher, falling back to in-memory publisher")
		publisher = events.NewMockEventPublisher(logger.Slog())
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.LogError(err, "Failed to close event publisher")
		}
	}()

	var google auth.GoogleVerifier
	if cfg.GoogleClientID != "" {
		google = auth.NewTokenInfoVerifier(cfg.GoogleClientID)
	} else {
		logger.Info("GOOGLE_CLIENT_ID not set, Google sign-in disabled")
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	serviceManager := services.NewServiceManager(services.Dependencies{
		Repo:           repo,
		Cache:          resultCache,
		Publisher:      publisher,
		Validator:      validator.New(),
		Tokens:         tokens,
		Google:         google,
		Logger:         logger.Slog(),
		PublicURL:      cfg.PublicURL,
		ResultCacheTTL: cfg.ResultCacheTTL,
	})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), utils.LoggerMiddleware(logger))
	handlers.NewHandlerManager(serviceManager, repo, tokens, logger).SetupRoutes(router)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
