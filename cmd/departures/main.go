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

	"github.com/cesargomez89/mekkompis/internal/config"
	"github.com/cesargomez89/mekkompis/internal/constants"
	httpapp "github.com/cesargomez89/mekkompis/internal/http"
	"github.com/cesargomez89/mekkompis/internal/httpclient"
	"github.com/cesargomez89/mekkompis/internal/logger"
	"github.com/cesargomez89/mekkompis/internal/transit"
)

func main() {
	cfg := config.LoadTransit()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	client := httpclient.NewClient(nil, constants.TransitMinInterval)
	tokens := transit.NewTokenSource(cfg.AuthURL, cfg.ClientID, cfg.ClientSecret, client, nil, appLogger)
	h := transit.NewHandler(transit.NewClient(cfg.APIBase, tokens, client, appLogger), appLogger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           transit.NewRouter(h, cfg.FrontendURL, httpapp.NewMetrics("departures")),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	go func() {
		appLogger.Info("Departure board listening", "addr", srv.Addr, "frontend", cfg.FrontendURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", "error", err)
	}
}
