package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	_ "github.com/lib/pq"

	httpapi "carlink-backend/internal/api/http"
	"carlink-backend/internal/config"
	"carlink-backend/internal/geo"
	"carlink-backend/internal/logger"
	"carlink-backend/internal/repository/postgres"
	"carlink-backend/internal/security"
	"carlink-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting CarLink Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)

	// Initialize Email Service
	emailSvc := service.NewEmailService(cfg.Email.APIKey, cfg.Email.From, cfg.Email.FromName)

	// Initialize Services
	authSvc := service.NewAuthService(
		store.UserRepository,
		store.RefreshTokenRepository,
		tokenManager,
		cfg.JWT.RefreshTokenExpiry,
	)
	rentalSvc := service.NewRentalService(
		store.RentalRepository,
		store.CarRepository,
		store.PaymentRepository,
		store.UserRepository,
		store.DriverAssignmentRepository,
		emailSvc,
		cfg.Billing,
	)
	distributionSvc := service.NewDistributionService(
		store.DistributionRepository,
		store.PaymentRepository,
		store.RentalRepository,
		store.CarRepository,
	)
	paymentSvc := service.NewPaymentService(
		store.PaymentRepository,
		store.RentalRepository,
		store.CarRepository,
		store.UserRepository,
		distributionSvc,
		emailSvc,
		cfg.Billing,
	)
	driverSvc := service.NewDriverService(store.DriverAssignmentRepository, store.UserRepository)

	// Reverse-geocoding proxy client
	geoClient := geo.NewClient(cfg.Geocode.BaseURL, time.Duration(cfg.Geocode.TimeoutSeconds)*time.Second)

	// Initialize HTTP handlers
	authHandler := httpapi.NewAuthHandler(authSvc)
	rentalHandler := httpapi.NewRentalHandler(rentalSvc)
	paymentHandler := httpapi.NewPaymentHandler(paymentSvc, distributionSvc)
	driverHandler := httpapi.NewDriverHandler(driverSvc)
	geocodeHandler := httpapi.NewGeocodeHandler(geoClient)

	router := httpapi.NewRouter(tokenManager, authHandler, rentalHandler, paymentHandler, driverHandler, geocodeHandler)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
