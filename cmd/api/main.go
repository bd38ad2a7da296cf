package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rkaushal27/stargaze-booking/internal/admin"
	"github.com/rkaushal27/stargaze-booking/internal/api/router"
	"github.com/rkaushal27/stargaze-booking/internal/appointments"
	"github.com/rkaushal27/stargaze-booking/internal/availability"
	"github.com/rkaushal27/stargaze-booking/internal/blocking"
	"github.com/rkaushal27/stargaze-booking/internal/booking"
	appconfig "github.com/rkaushal27/stargaze-booking/internal/config"
	"github.com/rkaushal27/stargaze-booking/internal/observability/metrics"
	"github.com/rkaushal27/stargaze-booking/internal/payments"
	"github.com/rkaushal27/stargaze-booking/pkg/logging"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := appconfig.Load()

	// Initialize logger
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting stargaze-booking API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	// Initialize repositories
	var (
		apptRepo    appointments.Repository
		blockRepo   blocking.Repository
		attemptRepo booking.Repository
	)
	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			cancel()
			logger.Error("failed to create database pool", "error", err)
			os.Exit(1)
		}
		if err := pool.Ping(ctx); err != nil {
			cancel()
			logger.Error("failed to reach database", "error", err)
			os.Exit(1)
		}
		cancel()
		defer pool.Close()

		apptRepo = appointments.NewPostgresRepository(pool)
		blockRepo = blocking.NewPostgresRepository(pool)
		attemptRepo = booking.NewPostgresRepository(pool)
		logger.Info("using postgres repositories")
	} else {
		apptRepo = appointments.NewInMemoryRepository()
		blockRepo = blocking.NewInMemoryRepository()
		attemptRepo = booking.NewInMemoryRepository()
		logger.Warn("DATABASE_URL not set, using in-memory repositories")
	}

	// Metrics
	registry := prometheus.NewRegistry()
	bookingMetrics := metrics.NewBookingMetrics(registry)
	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	// Payment provider client
	paymentClient := payments.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret, logger).
		WithBaseURL(cfg.RazorpayBaseURL).
		WithTimeout(cfg.PaymentTimeout)

	// Services
	apptService := appointments.NewService(apptRepo, logger)
	blockService := blocking.NewService(blockRepo, logger)
	availService := availability.NewService(apptRepo, blockRepo)
	bookingService := booking.NewService(
		availService,
		paymentClient,
		paymentClient,
		apptService,
		attemptRepo,
		cfg.SessionPriceMinor,
		cfg.Currency,
		bookingMetrics,
		logger,
	)

	// Handlers
	routerCfg := &router.Config{
		Logger:              logger,
		AvailabilityHandler: availability.NewHandler(availService, logger),
		AppointmentsHandler: appointments.NewHandler(apptService, logger),
		BlockingHandler:     blocking.NewHandler(blockService, logger),
		PaymentsHandler:     payments.NewHandler(paymentClient, paymentClient, cfg.SessionPriceMinor, cfg.Currency, bookingMetrics, logger),
		BookingHandler:      booking.NewHandler(bookingService, logger),
		AdminHandler:        admin.NewHandler(cfg.AdminPassword, cfg.AdminJWTSecret, cfg.AdminTokenTTL, logger),
		AdminAuthSecret:     cfg.AdminJWTSecret,
		MetricsHandler:      metricsHandler,
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
		RateLimitPerSecond:  cfg.RateLimitPerSecond,
		RateLimitBurst:      cfg.RateLimitBurst,
	}
	r := router.New(routerCfg)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
