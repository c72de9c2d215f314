package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/cesargomez89/mekkompis/internal/app"
	"github.com/cesargomez89/mekkompis/internal/auth"
	"github.com/cesargomez89/mekkompis/internal/config"
	"github.com/cesargomez89/mekkompis/internal/constants"
	httpapp "github.com/cesargomez89/mekkompis/internal/http"
	"github.com/cesargomez89/mekkompis/internal/logger"
	"github.com/cesargomez89/mekkompis/internal/storage"
	"github.com/cesargomez89/mekkompis/internal/store"
)

func main() {
	cfg := config.Load()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// Initialize Logger
	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	// Initialize DB
	db, err := store.NewSQLiteDB(cfg.DBPath)
	if err != nil {
		appLogger.Error("Failed to init DB", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	files, err := storage.NewStore(cfg.UploadDir, appLogger)
	if err != nil {
		appLogger.Error("Failed to init upload dir", "error", err)
		os.Exit(1)
	}

	// Authentication gate, fixed for the lifetime of the process
	gate := auth.NewGate(cfg.JWTSecret, cfg.AuthPasswordHash)
	switch {
	case gate.Enabled():
		appLogger.Info("Authentication enabled")
	case cfg.AuthPartial():
		appLogger.Warn("Only one of JWT_SECRET and AUTH_PASSWORD_HASH is set, authentication stays disabled")
	default:
		appLogger.Info("Authentication disabled (local development)")
	}

	// Upload sweep
	sweeper := app.NewUploadSweeper(db, files, appLogger.WithComponent("sweeper"))
	if cfg.SweepOnStart {
		n, err := sweeper.Sweep(context.Background())
		if err != nil {
			appLogger.Warn("Startup upload sweep failed", "error", err)
		} else {
			appLogger.Info("Startup upload sweep finished", "removed", n)
		}
	}
	if cfg.SweepSchedule != "" {
		c := cron.New()
		if _, err := c.AddFunc(cfg.SweepSchedule, sweeper.Run); err != nil {
			appLogger.Error("Failed to schedule upload sweep", "error", err)
			os.Exit(1)
		}
		c.Start()
		defer c.Stop()
	}

	// Routes
	h := &httpapp.Handler{
		Motorcycles:  app.NewMotorcycleService(db, files, appLogger),
		Jobs:         app.NewJobService(db, files, appLogger),
		Images:       app.NewImageService(db, files, appLogger),
		Notes:        app.NewNoteService(db, appLogger),
		Shopping:     app.NewShoppingService(db, appLogger),
		Features:     app.NewFeatureService(db, appLogger),
		Gate:         gate,
		LoginLimiter: httpapp.NewRateLimiter(constants.LoginRatePerMinute, constants.LoginBurst, nil),
		Logger:       appLogger,
	}
	router := httpapp.NewRouter(h, httpapp.RouterConfig{
		AllowedOrigins: cfg.AllowedOrigins,
		UploadDir:      files.Dir(),
		Metrics:        httpapp.NewMetrics("mekkompis"),
	})

	// Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       time.Minute,
		WriteTimeout:      time.Minute,
		IdleTimeout:       2 * time.Minute,
	}

	go func() {
		appLogger.Info("Server listening", "addr", srv.Addr, "db", cfg.DBPath, "uploads", files.Dir())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", "error", err)
	}

	appLogger.Info("Server exiting")
}
