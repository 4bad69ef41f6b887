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

	"github.com/SscSPs/karangnongko_farm/internal/core/domain"
	"github.com/SscSPs/karangnongko_farm/internal/core/services"
	"github.com/SscSPs/karangnongko_farm/internal/handlers"
	"github.com/SscSPs/karangnongko_farm/internal/middleware"
	"github.com/SscSPs/karangnongko_farm/internal/platform/config"
	"github.com/SscSPs/karangnongko_farm/internal/repositories"
	"github.com/SscSPs/karangnongko_farm/internal/scheduler"
	"github.com/gin-gonic/gin"
)

// @title Karangnongko Farm API
// @version 1.0
// @description Livestock roster, daily check-in journal and schedule for the Karangnongko goat farm.

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

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("Server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx := context.Background()
	repos, closeRepos, err := repositories.Open(ctx, cfg, logger)
	defer closeRepos()
	if err != nil {
		return err
	}

	serviceContainer, err := services.NewServiceContainer(ctx, cfg, repos, nil)
	if err != nil {
		return err
	}

	if session, err := serviceContainer.Auth.Restore(ctx); err != nil {
		logger.Error("Failed to restore session, starting anonymous", slog.String("error", err.Error()))
	} else if session != nil {
		logger.Info("Session restored", slog.String("username", session.Username))
	}

	// Load both collections now so the first request does not pay for seeding
	if _, err := serviceContainer.Goat.ListGoats(ctx, domain.BarnFilterAll); err != nil {
		logger.Error("Failed to load goat roster", slog.String("error", err.Error()))
	}
	if _, err := serviceContainer.Checkin.ListCheckins(ctx); err != nil {
		logger.Error("Failed to load check-in journal", slog.String("error", err.Error()))
	}

	reminder := scheduler.NewScheduler(cfg.ReminderCron, cfg.Location, serviceContainer.Checkin, serviceContainer.Calendar, logger)
	if err := reminder.Start(); err != nil {
		return err
	}
	defer reminder.Stop()
	reminder.RemindCheckin(ctx)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, metrics, recovery, cors)
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		middleware.MetricsMiddleware(),
		gin.Recovery(),
		middleware.CORSMiddleware(cfg.CORSOrigins),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		return err
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return err
	case <-stop:
	}
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("Server stopped")
	return nil
}
