package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpRouter "currency-converter-service/internal/adapter/http"
	"currency-converter-service/internal/adapter/repository"
	"currency-converter-service/internal/config"
	"currency-converter-service/internal/domain/ports"
	"currency-converter-service/internal/metrics"
	"currency-converter-service/internal/service"
	"currency-converter-service/pkg/logger"
)

func main() {
	log := logger.NewLogger(os.Getenv("LOG_LEVEL"))
	defer log.Sync()
	log.Info("Starting currency converter service")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	appMetrics := metrics.NewMetrics()

	var rateSource ports.RateSource = repository.NewOpenERAPI(
		cfg.RateAPI.BaseURL,
		cfg.RateAPI.Timeout,
		log,
	)

	// No retries by default; when enabled the wrapper retries transient
	// failures only.
	if cfg.RateAPI.MaxRetries > 0 {
		rateSource = repository.NewRetryingSource(rateSource, cfg.RateAPI.MaxRetries, cfg.RateAPI.RetryInterval, log)
	}

	converterService := service.NewConverterService(rateSource, service.Options{
		MaxWindowDays:     cfg.History.MaxWindowDays,
		HistoryWorkers:    cfg.History.Workers,
		RequestsPerSecond: cfg.History.RequestsPerSecond,
	}, log)

	handler := httpRouter.NewHandler(converterService, log, appMetrics)

	router := httpRouter.NewRouter(handler, log, appMetrics)
	routes := router.SetupRoutes()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      routes,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("Server exited")
}
