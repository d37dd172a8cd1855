package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jmolenaar/wealth-tracker/internal/api"
	"github.com/jmolenaar/wealth-tracker/internal/config"
	"github.com/jmolenaar/wealth-tracker/internal/database"
	"github.com/jmolenaar/wealth-tracker/internal/marketdata"
	"github.com/jmolenaar/wealth-tracker/internal/repository"
	"github.com/jmolenaar/wealth-tracker/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Create repositories
	assetRepo := repository.NewAssetRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	priceRepo := repository.NewPriceRepository(db)
	rateRepo := repository.NewRateRepository(db)
	settingsRepo, err := repository.NewSettingsRepository(db, cfg.App.EncryptionKey)
	if err != nil {
		log.Fatalf("Failed to create settings repository: %v", err)
	}

	// Create services
	marketClient := marketdata.NewClient()
	assetService := service.NewAssetService(assetRepo)
	transactionService := service.NewTransactionService(transactionRepo, assetRepo)
	valuationService := service.NewValuationService(
		assetRepo,
		transactionRepo,
		priceRepo,
		rateRepo,
		settingsRepo,
		cfg.App.BaseCurrency,
	)
	priceService := service.NewPriceService(
		assetRepo,
		priceRepo,
		rateRepo,
		settingsRepo,
		marketClient,
		cfg.App.BaseCurrency,
	)
	settingsService := service.NewSettingsService(settingsRepo, cfg.App.BaseCurrency)

	// Schedule the daily price refresh
	scheduler := cron.New()
	_, err = scheduler.AddFunc(cfg.MarketData.RefreshSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		result, err := priceService.RefreshAllPrices(ctx)
		if err != nil {
			log.Printf("Scheduled price refresh failed: %v", err)
			return
		}
		log.Printf("Scheduled price refresh: %d assets updated, %d errors", result.TotalUpdated, result.TotalErrors)
	})
	if err != nil {
		log.Fatalf("Invalid price refresh schedule %q: %v", cfg.MarketData.RefreshSchedule, err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create router
	router := api.NewRouter(db, api.Services{
		Asset:       assetService,
		Transaction: transactionService,
		Valuation:   valuationService,
		Price:       priceService,
		Settings:    settingsService,
	}, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
