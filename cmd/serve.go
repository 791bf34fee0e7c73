package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"helpify.com/helpify/internal/auth"
	config "helpify.com/helpify/internal/configs"
	httpapi "helpify.com/helpify/internal/http"
	"helpify.com/helpify/internal/ratelimit"
	repository "helpify.com/helpify/internal/repositories"
	"helpify.com/helpify/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the Helpify HTTP API and shuts it down gracefully on SIGINT/SIGTERM",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}

		cfg := config.Load()

		logger, err := config.NewLogger(cfg.LogLevel)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		database := config.NewDatabaseClient(cfg.DatabaseDriver, cfg.DatabaseDSN)
		repos := repository.New(database)

		var store ratelimit.WindowStore = ratelimit.NewMemoryStore()
		if cfg.RateLimitBackend == "redis" {
			redisClient, err := config.NewRedisClient(cfg)
			if err != nil {
				return err
			}
			defer redisClient.Close()
			store = ratelimit.NewRedisStore(redisClient, cfg.RedisKeyPrefix)
		}
		limiter, err := ratelimit.New(store, cfg.RateLimit, time.Minute)
		if err != nil {
			return err
		}

		tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)

		handler := httpapi.NewHandler(
			services.NewAccountService(repos, tokens, logger),
			services.NewTaskService(repos, logger),
			services.NewApplicationService(repos, logger),
			services.NewMessageService(repos, logger),
			services.NewNotificationService(repos, logger),
			repos,
		)

		e := echo.New()
		e.HideBanner = true
		httpapi.Register(e, handler, limiter, tokens, logger)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		go func() {
			logger.Info("HTTP server listening",
				zap.String("addr", cfg.AppURL),
				zap.String("database_driver", cfg.DatabaseDriver),
				zap.String("rate_limit_backend", cfg.RateLimitBackend),
			)
			if err := e.Start(cfg.AppURL); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("server stopped", zap.Error(err))
				stop()
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Warn("HTTP server shutdown", zap.Error(err))
		}

		if sqlDB, err := database.DB(); err == nil {
			_ = sqlDB.Close()
		}

		logger.Info("HTTP server shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
