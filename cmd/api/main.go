// @title Event Listing API
// @version 1.0
// @description Read-only listing of events with their categories and venues.
// @BasePath /
package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"eventlist/config"
	_ "eventlist/docs"
	"eventlist/internal/clock"
	transporthttp "eventlist/internal/delivery/http"
	"eventlist/internal/delivery/http/controllers"
	"eventlist/internal/repository/postgres"
	"eventlist/internal/sanitize"
	"eventlist/internal/services"
	"eventlist/migrations"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger := config.NewLogger(cfg)

	startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("open db", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.PingContext(startupCtx); err != nil {
		logger.Error("db ping", "err", err)
		os.Exit(1)
	}
	if err := migrations.Apply(startupCtx, db); err != nil {
		logger.Error("apply migrations", "err", err)
		os.Exit(1)
	}

	clk := clock.NewSystem()
	sanitizer := sanitize.New()
	categoryRepo := postgres.NewCategoryRepository(db)
	venueRepo := postgres.NewVenueRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	postRepo := postgres.NewEventPostRepository(db)

	eventSvc := services.NewEventService(eventRepo, categoryRepo, venueRepo, sanitizer, clk, cfg.RequestTimeout)
	postSvc := services.NewEventPostService(postRepo, eventRepo, sanitizer, cfg.RequestTimeout)

	eventController := controllers.NewEventController(logger, eventSvc, postSvc, clk)
	router := transporthttp.NewRouter(eventController)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           transporthttp.NewHandler(router, logger, cfg.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("api listening", "port", cfg.Port, "env", cfg.Environment)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
		}
	case <-stopCtx.Done():
		logger.Info("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server shutdown error", "err", err)
	}
	logger.Info("server stopped")
}
